package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amonks/tasknest/internal/editor"
	"github.com/amonks/tasknest/internal/ui"
	"github.com/amonks/tasknest/storage"
	"github.com/amonks/tasknest/todo"
	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:     "todo",
	Aliases: []string{"todos", "t"},
	Short:   "Manage todos",
}

// todo add
var todoAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a todo",
	Long: `Add a todo to a project (the selected project unless --project is given).

By default, opens $EDITOR to edit a TOML representation of the todo when
running interactively without field flags. Use --no-edit to skip the editor,
or --edit to force it. --from-json reads the todo as JSON from a file, or
from stdin when given '-'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTodoAdd,
}

var (
	todoAddDescription string
	todoAddDue         string
	todoAddPriority    string
	todoAddCategory    string
	todoAddNotes       string
	todoAddTags        []string
	todoAddDeps        []string
	todoAddSubtasks    []string
	todoAddRecurrence  string
	todoAddProject     string
	todoAddFromJSON    string
	todoAddEdit        bool
	todoAddNoEdit      bool
)

// todo update
var todoUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a todo",
	Long: `Update a todo. Only the given fields change.

By default, opens $EDITOR when running interactively and no field flags are
given. --from-json reads a partial update as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runTodoUpdate,
}

var (
	todoUpdateTitle       string
	todoUpdateDescription string
	todoUpdateDue         string
	todoUpdatePriority    string
	todoUpdateCategory    string
	todoUpdateNotes       string
	todoUpdateTags        []string
	todoUpdateDeps        []string
	todoUpdateRecurrence  string
	todoUpdateCompleted   bool
	todoUpdateFromJSON    string
	todoUpdateEdit        bool
	todoUpdateNoEdit      bool
)

var todoUpdateFieldFlags = []string{
	"title", "description", "due", "priority", "category", "notes",
	"tags", "deps", "recurrence", "completed", "from-json",
}

// todo delete
var todoDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoDelete,
}

// todo toggle
var todoToggleCmd = &cobra.Command{
	Use:     "toggle <id>...",
	Aliases: []string{"done"},
	Short:   "Toggle completion of one or more todos",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTodoToggle,
}

// todo show
var todoShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoShow,
}

var todoShowJSON bool

// todo start
var todoStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Start the timer of a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoStart,
}

// todo stop
var todoStopCmd = &cobra.Command{
	Use:   "stop <id>",
	Short: "Stop the timer of a todo and add the elapsed time",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoStop,
}

// todo move
var todoMoveCmd = &cobra.Command{
	Use:   "move <id> <project>",
	Short: "Move a todo to another project",
	Args:  cobra.ExactArgs(2),
	RunE:  runTodoMove,
}

// todo deps
var todoDepsCmd = &cobra.Command{
	Use:   "deps <id>",
	Short: "Show the dependency tree of a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoDeps,
}

var todoDepsPending bool

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoAddCmd, todoUpdateCmd, todoDeleteCmd, todoToggleCmd, todoShowCmd,
		todoListCmd, todoStartCmd, todoStopCmd, todoMoveCmd, todoDepsCmd)

	// todo add flags
	todoAddCmd.Flags().StringVarP(&todoAddDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	todoAddCmd.Flags().StringVar(&todoAddDue, "due", "", "Due date (YYYY-MM-DD)")
	todoAddCmd.Flags().StringVarP(&todoAddPriority, "priority", "p", "", "Priority (low, medium, high)")
	todoAddCmd.Flags().StringVarP(&todoAddCategory, "category", "c", "", "Category")
	todoAddCmd.Flags().StringVarP(&todoAddNotes, "notes", "n", "", "Notes in markdown (use '-' to read from stdin)")
	todoAddCmd.Flags().StringSliceVar(&todoAddTags, "tags", nil, "Tags (comma-separated or repeated)")
	todoAddCmd.Flags().StringArrayVar(&todoAddDeps, "deps", nil, "IDs of todos this one depends on")
	todoAddCmd.Flags().StringArrayVarP(&todoAddSubtasks, "subtask", "s", nil, "Subtask title (repeatable)")
	todoAddCmd.Flags().StringVarP(&todoAddRecurrence, "recurrence", "r", "", "Recurrence (daily, weekly, monthly, yearly)")
	todoAddCmd.Flags().StringVarP(&todoAddProject, "project", "P", "", "Project ID, name, or ID prefix")
	todoAddCmd.Flags().StringVar(&todoAddFromJSON, "from-json", "", "Read the todo as JSON from a file ('-' for stdin)")
	todoAddCmd.Flags().BoolVarP(&todoAddEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	todoAddCmd.Flags().BoolVar(&todoAddNoEdit, "no-edit", false, "Do not open $EDITOR")

	// todo update flags
	todoUpdateCmd.Flags().StringVar(&todoUpdateTitle, "title", "", "New title")
	todoUpdateCmd.Flags().StringVarP(&todoUpdateDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	todoUpdateCmd.Flags().StringVar(&todoUpdateDue, "due", "", "New due date (YYYY-MM-DD, empty to clear)")
	todoUpdateCmd.Flags().StringVarP(&todoUpdatePriority, "priority", "p", "", "New priority")
	todoUpdateCmd.Flags().StringVarP(&todoUpdateCategory, "category", "c", "", "New category")
	todoUpdateCmd.Flags().StringVarP(&todoUpdateNotes, "notes", "n", "", "New notes (use '-' to read from stdin)")
	todoUpdateCmd.Flags().StringSliceVar(&todoUpdateTags, "tags", nil, "Replace tags")
	todoUpdateCmd.Flags().StringArrayVar(&todoUpdateDeps, "deps", nil, "Replace dependencies")
	todoUpdateCmd.Flags().StringVarP(&todoUpdateRecurrence, "recurrence", "r", "", "New recurrence (none to stop repeating)")
	todoUpdateCmd.Flags().BoolVar(&todoUpdateCompleted, "completed", false, "Set completion")
	todoUpdateCmd.Flags().StringVar(&todoUpdateFromJSON, "from-json", "", "Read the update as JSON from a file ('-' for stdin)")
	todoUpdateCmd.Flags().BoolVarP(&todoUpdateEdit, "edit", "e", false, "Open $EDITOR (default if interactive without field flags)")
	todoUpdateCmd.Flags().BoolVar(&todoUpdateNoEdit, "no-edit", false, "Do not open $EDITOR")

	// todo show flags
	todoShowCmd.Flags().BoolVar(&todoShowJSON, "json", false, "Output as JSON")

	// todo deps flags
	todoDepsCmd.Flags().BoolVar(&todoDepsPending, "pending", false, "Only list incomplete dependencies")

	addTodoFlagAliases(todoAddCmd, todoUpdateCmd)
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		p, err := targetProject(s, todoAddProject)
		if err != nil {
			return err
		}

		input, err := todoAddInput(cmd, s, args)
		if err != nil {
			return err
		}
		if input.Dependencies, err = resolveTodoRefs(s, input.Dependencies); err != nil {
			return err
		}

		created, err := s.reg.AddTodo(ctx, p.ID, input)
		if err != nil {
			return err
		}
		highlight := todoHighlighter(s)
		fmt.Fprintf(cmd.OutOrStdout(), "Created todo %s in %s: %s\n", highlight(created.ID), p.Name, created.Title)
		return nil
	})
}

func todoAddInput(cmd *cobra.Command, s *session, args []string) (todo.CreateInput, error) {
	if cmd.Flags().Changed("from-json") {
		r, closeFn, err := openInput(todoAddFromJSON, cmd.InOrStdin())
		if err != nil {
			return todo.CreateInput{}, err
		}
		defer closeFn()
		input, err := todo.DecodeCreateInput(r)
		if err != nil {
			return todo.CreateInput{}, err
		}
		if input.Priority == "" {
			input.Priority = s.defaults.Priority
		}
		if input.Category == "" {
			input.Category = s.defaults.Category
		}
		return input, nil
	}

	input := s.defaults
	if len(args) > 0 {
		input.Title = args[0]
	}
	var err error
	if input.Description, err = resolveTextFromStdin(todoAddDescription, cmd.InOrStdin()); err != nil {
		return input, err
	}
	if input.Notes, err = resolveTextFromStdin(todoAddNotes, cmd.InOrStdin()); err != nil {
		return input, err
	}
	if input.DueDate, err = todo.ParseDate(todoAddDue); err != nil {
		return input, err
	}
	if cmd.Flags().Changed("priority") {
		if input.Priority, err = todo.ParsePriority(todoAddPriority); err != nil {
			return input, err
		}
	}
	if cmd.Flags().Changed("category") {
		if input.Category, err = todo.ParseCategory(todoAddCategory); err != nil {
			return input, err
		}
	}
	if input.Recurrence, err = todo.ParseRecurrence(todoAddRecurrence); err != nil {
		return input, err
	}
	input.Tags = todoAddTags
	input.Dependencies = todoAddDeps
	input.Subtasks = todoAddSubtasks

	hasFieldFlags := hasChangedFlags(cmd, "description", "due", "priority", "category", "notes",
		"tags", "deps", "subtask", "recurrence")
	if !shouldUseEditor(hasFieldFlags, todoAddEdit, todoAddNoEdit, editor.IsInteractive()) {
		if input.Title == "" {
			return input, fmt.Errorf("%w (use --edit to open the editor)", todo.ErrEmptyTitle)
		}
		return input, nil
	}

	data := editor.DefaultCreateData(input.Priority, input.Category)
	data.Title = input.Title
	data.Description = input.Description
	data.Due = input.DueDate.String()
	data.Recurrence = input.Recurrence
	data.Tags = input.Tags
	data.Dependencies = input.Dependencies
	data.Subtasks = input.Subtasks
	data.Notes = input.Notes
	parsed, err := editor.EditTodo(data)
	if err != nil {
		return input, err
	}
	return parsed.ToCreateInput(), nil
}

func runTodoUpdate(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		t, p, err := s.reg.ResolveTodo(args[0])
		if err != nil {
			return err
		}
		input, err := todoUpdateInput(cmd, t)
		if err != nil {
			return err
		}
		if input.IsEmpty() {
			return fmt.Errorf("nothing to update (use --edit to open the editor)")
		}
		if input.Dependencies != nil {
			deps, err := resolveTodoRefs(s, *input.Dependencies)
			if err != nil {
				return err
			}
			input.Dependencies = &deps
		}

		updated, err := s.reg.UpdateTodo(ctx, p.ID, t.ID, input)
		if err != nil {
			return err
		}
		highlight := todoHighlighter(s)
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", highlight(updated.ID), updated.Title)
		return nil
	})
}

func todoUpdateInput(cmd *cobra.Command, existing *todo.Todo) (todo.UpdateInput, error) {
	if cmd.Flags().Changed("from-json") {
		r, closeFn, err := openInput(todoUpdateFromJSON, cmd.InOrStdin())
		if err != nil {
			return todo.UpdateInput{}, err
		}
		defer closeFn()
		return todo.DecodeUpdateInput(r)
	}

	hasFieldFlags := hasChangedFlags(cmd, todoUpdateFieldFlags...)
	if shouldUseEditor(hasFieldFlags, todoUpdateEdit, todoUpdateNoEdit, editor.IsInteractive()) {
		parsed, err := editor.EditTodo(editor.DataFromTodo(existing))
		if err != nil {
			return todo.UpdateInput{}, err
		}
		return parsed.ToUpdateInput(), nil
	}

	var input todo.UpdateInput
	flags := cmd.Flags()
	if flags.Changed("title") {
		input.Title = &todoUpdateTitle
	}
	if flags.Changed("description") {
		desc, err := resolveTextFromStdin(todoUpdateDescription, cmd.InOrStdin())
		if err != nil {
			return input, err
		}
		input.Description = &desc
	}
	if flags.Changed("notes") {
		notes, err := resolveTextFromStdin(todoUpdateNotes, cmd.InOrStdin())
		if err != nil {
			return input, err
		}
		input.Notes = &notes
	}
	if flags.Changed("due") {
		due, err := todo.ParseDate(todoUpdateDue)
		if err != nil {
			return input, err
		}
		input.DueDate = &due
	}
	if flags.Changed("priority") {
		priority, err := todo.ParsePriority(todoUpdatePriority)
		if err != nil {
			return input, err
		}
		input.Priority = &priority
	}
	if flags.Changed("category") {
		category, err := todo.ParseCategory(todoUpdateCategory)
		if err != nil {
			return input, err
		}
		input.Category = &category
	}
	if flags.Changed("recurrence") {
		recurrence, err := todo.ParseRecurrence(todoUpdateRecurrence)
		if err != nil {
			return input, err
		}
		input.Recurrence = &recurrence
	}
	if flags.Changed("tags") {
		tags := append([]string{}, todoUpdateTags...)
		input.Tags = &tags
	}
	if flags.Changed("deps") {
		deps := append([]string{}, todoUpdateDeps...)
		input.Dependencies = &deps
	}
	if flags.Changed("completed") {
		input.Completed = &todoUpdateCompleted
	}
	return input, nil
}

func runTodoDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		for _, ref := range args {
			t, p, err := s.reg.ResolveTodo(ref)
			if err != nil {
				return err
			}
			id, title := t.ID, t.Title
			if err := s.reg.DeleteTodo(ctx, p.ID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", id, title)
		}
		return nil
	})
}

func runTodoToggle(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		for _, ref := range args {
			t, p, err := s.reg.ResolveTodo(ref)
			if err != nil {
				return err
			}
			toggled, err := s.reg.ToggleTodo(ctx, p.ID, t.ID)
			if err != nil {
				return err
			}
			verb := "Reopened"
			if toggled.Completed {
				verb = "Completed"
			}
			highlight := todoHighlighter(s)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", verb, highlight(toggled.ID), toggled.Title)
		}
		return nil
	})
}

func runTodoShow(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		var records []storage.TodoRecord
		highlight := todoHighlighter(s)
		for i, ref := range args {
			t, p, err := s.reg.ResolveTodo(ref)
			if err != nil {
				return err
			}
			if todoShowJSON {
				records = append(records, storage.NewTodoRecord(t))
				continue
			}
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			printTodoDetail(cmd.OutOrStdout(), s, t, p, highlight)
		}
		if todoShowJSON {
			return encodeJSON(cmd.OutOrStdout(), records)
		}
		return nil
	})
}

func runTodoStart(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		t, p, err := s.reg.ResolveTodo(args[0])
		if err != nil {
			return err
		}
		if t.Completed {
			return fmt.Errorf("todo %s is completed", t.ID)
		}
		wasTiming := t.IsTiming()
		started, err := s.reg.StartTimer(ctx, p.ID, t.ID)
		if err != nil {
			return err
		}
		if wasTiming {
			running := s.now().Sub(*started.TimerStartedAt)
			fmt.Fprintf(cmd.OutOrStdout(), "Timer already running for %s (started %s ago)\n", started.Title, ui.FormatDurationShort(running))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Started timer for %s\n", started.Title)
		return nil
	})
}

func runTodoStop(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		t, p, err := s.reg.ResolveTodo(args[0])
		if err != nil {
			return err
		}
		if !t.IsTiming() {
			fmt.Fprintf(cmd.OutOrStdout(), "No timer running for %s\n", t.Title)
			return nil
		}
		stopped, err := s.reg.StopTimer(ctx, p.ID, t.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stopped timer for %s (total %s)\n", stopped.Title, ui.FormatTimeSpent(stopped.TimeSpent))
		return nil
	})
}

func runTodoMove(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		t, from, err := s.reg.ResolveTodo(args[0])
		if err != nil {
			return err
		}
		to, err := s.reg.ResolveProject(args[1])
		if err != nil {
			return err
		}
		moved, err := s.reg.MoveTodo(ctx, from.ID, t.ID, to.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", moved.Title, to.Name)
		return nil
	})
}

func runTodoDeps(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		t, _, err := s.reg.ResolveTodo(args[0])
		if err != nil {
			return err
		}
		highlight := todoHighlighter(s)
		if todoDepsPending {
			pending, err := s.reg.PendingDependencies(t.ID)
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not blocked.\n", t.Title)
				return nil
			}
			for _, dep := range pending {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", completionIcon(dep.Completed), dep.Title, highlight(dep.ID))
			}
			return nil
		}
		tree, err := s.reg.DepTree(t.ID)
		if err != nil {
			return err
		}
		printDepTree(cmd.OutOrStdout(), tree, highlight)
		return nil
	})
}

// targetProject resolves ref, defaulting to the selected project. When all
// projects are selected, the default project is used.
func targetProject(s *session, ref string) (*todo.Project, error) {
	if ref != "" {
		return s.reg.ResolveProject(ref)
	}
	id := s.reg.SelectedProjectID()
	if id == todo.AllProjectsID {
		id = todo.DefaultProjectID
	}
	return s.reg.ResolveProject(id)
}

// resolveTodoRefs expands todo ID prefixes. Refs that match nothing are
// passed through so the registry can report them.
func resolveTodoRefs(s *session, refs []string) ([]string, error) {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		t, _, err := s.reg.ResolveTodo(ref)
		switch {
		case err == nil:
			out = append(out, t.ID)
		case errors.Is(err, todo.ErrAmbiguousIDPrefix):
			return nil, err
		default:
			out = append(out, ref)
		}
	}
	return out, nil
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
