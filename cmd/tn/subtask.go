package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/tasknest/internal/ids"
	"github.com/amonks/tasknest/todo"
	"github.com/spf13/cobra"
)

var subtaskCmd = &cobra.Command{
	Use:     "subtask",
	Aliases: []string{"subtasks", "st"},
	Short:   "Manage the checklist of a todo",
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add <todo-id> <title>",
	Short: "Add a subtask",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubtaskAdd,
}

var subtaskToggleCmd = &cobra.Command{
	Use:   "toggle <todo-id> <subtask-id>",
	Short: "Toggle completion of a subtask",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubtaskToggle,
}

var subtaskRemoveCmd = &cobra.Command{
	Use:     "remove <todo-id> <subtask-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a subtask",
	Args:    cobra.ExactArgs(2),
	RunE:    runSubtaskRemove,
}

func init() {
	rootCmd.AddCommand(subtaskCmd)
	subtaskCmd.AddCommand(subtaskAddCmd, subtaskToggleCmd, subtaskRemoveCmd)
}

func runSubtaskAdd(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		t, p, err := s.reg.ResolveTodo(args[0])
		if err != nil {
			return err
		}
		st, err := s.reg.AddSubtask(ctx, p.ID, t.ID, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added subtask %s to %s: %s\n", st.ID, t.Title, st.Title)
		return nil
	})
}

func runSubtaskToggle(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		t, p, err := s.reg.ResolveTodo(args[0])
		if err != nil {
			return err
		}
		subtaskID, err := resolveSubtask(t, args[1])
		if err != nil {
			return err
		}
		st, err := s.reg.ToggleSubtask(ctx, p.ID, t.ID, subtaskID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", completionIcon(st.Completed), st.Title)
		return nil
	})
}

func runSubtaskRemove(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		t, p, err := s.reg.ResolveTodo(args[0])
		if err != nil {
			return err
		}
		subtaskID, err := resolveSubtask(t, args[1])
		if err != nil {
			return err
		}
		st, _ := t.Subtask(subtaskID)
		if err := s.reg.RemoveSubtask(ctx, p.ID, t.ID, subtaskID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed subtask %s: %s\n", st.ID, st.Title)
		return nil
	})
}

// resolveSubtask maps a subtask ID prefix to the subtask's ID.
func resolveSubtask(t *todo.Todo, ref string) (string, error) {
	subtaskIDs := make([]string, 0, len(t.Subtasks))
	for _, st := range t.Subtasks {
		if st.ID == ref {
			return st.ID, nil
		}
		subtaskIDs = append(subtaskIDs, st.ID)
	}
	id, err := ids.NewIndex(subtaskIDs).Resolve(ref)
	switch {
	case errors.Is(err, ids.ErrAmbiguous):
		return "", fmt.Errorf("%w: %s", todo.ErrAmbiguousIDPrefix, ref)
	case err != nil:
		return "", fmt.Errorf("%w: %s", todo.ErrSubtaskNotFound, ref)
	}
	for _, candidate := range subtaskIDs {
		if strings.EqualFold(candidate, id) {
			return candidate, nil
		}
	}
	return id, nil
}
