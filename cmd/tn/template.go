package main

import (
	"context"
	"fmt"

	"github.com/amonks/tasknest/internal/ui"
	"github.com/amonks/tasknest/storage"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"templates", "tpl"},
	Short:   "Manage reusable todo templates",
}

var templateCreateCmd = &cobra.Command{
	Use:   "create <todo-id>",
	Short: "Save a todo as a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateCreate,
}

var templateApplyCmd = &cobra.Command{
	Use:   "apply <template-id>",
	Short: "Create a todo from a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateApply,
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	Args:    cobra.NoArgs,
	RunE:    runTemplateList,
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <template-id>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDelete,
}

var (
	templateApplyProject string
	templateListJSON     bool
)

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateCreateCmd, templateApplyCmd, templateListCmd, templateDeleteCmd)

	templateApplyCmd.Flags().StringVarP(&templateApplyProject, "project", "P", "", "Project ID, name, or ID prefix")
	templateListCmd.Flags().BoolVar(&templateListJSON, "json", false, "Output as JSON")
}

func runTemplateCreate(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		t, p, err := s.reg.ResolveTodo(args[0])
		if err != nil {
			return err
		}
		tpl, err := s.reg.CreateTemplate(ctx, p.ID, t.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created template %s: %s\n", tpl.ID, tpl.Title)
		return nil
	})
}

func runTemplateApply(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		tpl, err := s.reg.ResolveTemplate(args[0])
		if err != nil {
			return err
		}
		p, err := targetProject(s, templateApplyProject)
		if err != nil {
			return err
		}
		created, err := s.reg.ApplyTemplate(ctx, tpl.ID, p.ID)
		if err != nil {
			return err
		}
		highlight := todoHighlighter(s)
		fmt.Fprintf(cmd.OutOrStdout(), "Created todo %s in %s: %s\n", highlight(created.ID), p.Name, created.Title)
		return nil
	})
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		templates := s.reg.Templates()
		if templateListJSON {
			records := make([]storage.TodoRecord, 0, len(templates))
			for _, tpl := range templates {
				records = append(records, storage.NewTodoRecord(tpl))
			}
			return encodeJSON(cmd.OutOrStdout(), records)
		}
		if len(templates) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
			return nil
		}
		builder := ui.NewTableBuilder([]string{"ID", "PRI", "CATEGORY", "SUBTASKS", "TITLE"}, len(templates))
		for _, tpl := range templates {
			builder.AddRow(
				tpl.ID,
				string(tpl.Priority),
				string(tpl.Category),
				fmt.Sprintf("%d", len(tpl.Subtasks)),
				ui.TruncateTableCell(tpl.Title),
			)
		}
		fmt.Fprint(cmd.OutOrStdout(), builder.String())
		return nil
	})
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		tpl, err := s.reg.ResolveTemplate(args[0])
		if err != nil {
			return err
		}
		id, title := tpl.ID, tpl.Title
		if err := s.reg.DeleteTemplate(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s: %s\n", id, title)
		return nil
	})
}
