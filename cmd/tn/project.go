package main

import (
	"context"
	"fmt"

	"github.com/amonks/tasknest/internal/ids"
	"github.com/amonks/tasknest/internal/ui"
	"github.com/amonks/tasknest/todo"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects", "p"},
	Short:   "Manage projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var (
	projectCreateCategory string
	projectCreateSelect   bool
)

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project>",
	Short: "Delete a project and its todos",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

var projectSelectCmd = &cobra.Command{
	Use:   "select <project|all>",
	Short: "Select the project that commands default to",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectSelect,
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename <project> <name>",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectRename,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with their progress",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectListJSON bool

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectCreateCmd, projectDeleteCmd, projectSelectCmd, projectRenameCmd, projectListCmd)

	projectCreateCmd.Flags().StringVarP(&projectCreateCategory, "category", "c", string(todo.CategoryGeneral), "Project category")
	projectCreateCmd.Flags().BoolVar(&projectCreateSelect, "select", false, "Select the new project")
	projectListCmd.Flags().BoolVar(&projectListJSON, "json", false, "Output as JSON")
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	category, err := todo.ParseCategory(projectCreateCategory)
	if err != nil {
		return err
	}
	return withSession(cmd, func(ctx context.Context, s *session) error {
		p, err := s.reg.CreateProject(ctx, args[0], category)
		if err != nil {
			return err
		}
		if projectCreateSelect {
			if err := s.reg.SelectProject(ctx, p.ID); err != nil {
				return err
			}
		}
		highlight := projectHighlighter(s)
		fmt.Fprintf(cmd.OutOrStdout(), "Created project %s: %s\n", highlight(p.ID), p.Name)
		return nil
	})
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		p, err := s.reg.ResolveProject(args[0])
		if err != nil {
			return err
		}
		name, count := p.Name, len(p.Todos)
		if err := s.reg.DeleteProject(ctx, p.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s (%d todos)\n", name, count)
		return nil
	})
}

func runProjectSelect(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		if args[0] == todo.AllProjectsID {
			if err := s.reg.SelectProject(ctx, todo.AllProjectsID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Selected all projects")
			return nil
		}
		p, err := s.reg.ResolveProject(args[0])
		if err != nil {
			return err
		}
		if err := s.reg.SelectProject(ctx, p.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Selected project %s\n", p.Name)
		return nil
	})
}

func runProjectRename(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		p, err := s.reg.ResolveProject(args[0])
		if err != nil {
			return err
		}
		old := p.Name
		renamed, err := s.reg.RenameProject(ctx, p.ID, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed project %s to %s\n", old, renamed.Name)
		return nil
	})
}

type projectSummary struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  todo.Category `json:"category"`
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
	Selected  bool          `json:"selected"`
}

func runProjectList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		selected := s.reg.SelectedProjectID()
		projects := s.reg.Projects()
		summaries := make([]projectSummary, 0, len(projects))
		for _, p := range projects {
			progress := s.reg.GetProjectProgress(p.ID)
			summaries = append(summaries, projectSummary{
				ID:        p.ID,
				Name:      p.Name,
				Category:  p.Category,
				Completed: progress.Completed,
				Total:     progress.Total,
				Selected:  p.ID == selected,
			})
		}
		if projectListJSON {
			return encodeJSON(cmd.OutOrStdout(), summaries)
		}

		highlight := projectHighlighter(s)
		builder := ui.NewTableBuilder([]string{"", "ID", "NAME", "CATEGORY", "PROGRESS"}, len(summaries))
		for _, p := range summaries {
			marker := ""
			if p.Selected || selected == todo.AllProjectsID {
				marker = "*"
			}
			progress := todo.Progress{Completed: p.Completed, Total: p.Total}
			builder.AddRow(
				marker,
				highlight(p.ID),
				ui.TruncateTableCell(p.Name),
				string(p.Category),
				fmt.Sprintf("%d/%d (%d%%)", p.Completed, p.Total, progress.Percent()),
			)
		}
		fmt.Fprint(cmd.OutOrStdout(), builder.String())
		return nil
	})
}

func projectHighlighter(s *session) func(string) string {
	projects := s.reg.Projects()
	projectIDs := make([]string, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}
	return logHighlighter(ids.UniquePrefixLengths(projectIDs), ui.HighlightID)
}
