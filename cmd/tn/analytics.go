package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amonks/tasknest/analytics"
	"github.com/amonks/tasknest/internal/ui"
	"github.com/amonks/tasknest/registry"
	"github.com/amonks/tasknest/todo"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:     "analytics",
	Aliases: []string{"stats"},
	Short:   "Show completion and time analytics across all projects",
	Args:    cobra.NoArgs,
	RunE:    runAnalytics,
}

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Show the Eisenhower matrix (urgent/important quadrants)",
	Args:  cobra.NoArgs,
	RunE:  runMatrix,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show how many todos fall in each category",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var (
	analyticsJSON          bool
	matrixIncludeCompleted bool
	matrixJSON             bool
	categoriesJSON         bool
)

func init() {
	rootCmd.AddCommand(analyticsCmd, matrixCmd, categoriesCmd)

	analyticsCmd.Flags().BoolVar(&analyticsJSON, "json", false, "Output as JSON")
	matrixCmd.Flags().BoolVar(&matrixIncludeCompleted, "include-completed", false, "Include completed todos")
	matrixCmd.Flags().BoolVar(&matrixJSON, "json", false, "Output as JSON")
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "Output as JSON")
}

// analyticsSummary is the JSON form of the analytics command.
type analyticsSummary struct {
	analytics.Analytics
	CompletionRate int     `json:"completionRate"`
	TotalTimeSpent float64 `json:"totalTimeSpent"`
	OverdueTasks   int     `json:"overdueTasks"`
	DueTodayTasks  int     `json:"dueTodayTasks"`
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		a := s.reg.GetAnalytics()
		if analyticsJSON {
			return encodeJSON(cmd.OutOrStdout(), analyticsSummary{
				Analytics:      a,
				CompletionRate: a.CompletionRate(),
				TotalTimeSpent: a.TotalTimeSpent.Seconds(),
				OverdueTasks:   a.OverdueTasks,
				DueTodayTasks:  a.DueTodayTasks,
			})
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Tasks:          %d\n", a.TotalTasks)
		fmt.Fprintf(w, "Completed:      %d (%d%%)\n", a.CompletedTasks, a.CompletionRate())
		fmt.Fprintf(w, "Urgent:         %d\n", a.UrgentTasks)
		fmt.Fprintf(w, "Important:      %d\n", a.ImportantTasks)
		fmt.Fprintf(w, "Overdue:        %d\n", a.OverdueTasks)
		fmt.Fprintf(w, "Due today:      %d\n", a.DueTodayTasks)
		fmt.Fprintf(w, "Time spent:     %s\n", ui.FormatTimeSpent(a.TotalTimeSpent))
		fmt.Fprintf(w, "Average time:   %s\n", ui.FormatTimeSpent(secondsDuration(a.AverageTimeSpent)))
		return nil
	})
}

func runMatrix(cmd *cobra.Command, args []string) error {
	includeCompleted := func(opts *registry.Options) {
		if cmd.Flags().Changed("include-completed") {
			opts.Matrix.IncludeCompleted = matrixIncludeCompleted
		}
	}
	return withSession(cmd, func(ctx context.Context, s *session) error {
		matrix := s.reg.EisenhowerMatrix()
		if matrixJSON {
			out := make(map[analytics.Quadrant][]string, len(analytics.Quadrants()))
			for _, q := range analytics.Quadrants() {
				titles := []string{}
				for _, t := range matrix[q] {
					titles = append(titles, t.Title)
				}
				out[q] = titles
			}
			return encodeJSON(cmd.OutOrStdout(), out)
		}

		highlight := todoHighlighter(s)
		quadrants := analytics.Quadrants()
		boxes := make([]string, len(quadrants))
		for i, q := range quadrants {
			boxes[i] = renderQuadrant(q, matrix[q], highlight)
		}
		top := lipgloss.JoinHorizontal(lipgloss.Top, boxes[0], boxes[1])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, boxes[2], boxes[3])
		fmt.Fprintln(cmd.OutOrStdout(), lipgloss.JoinVertical(lipgloss.Left, top, bottom))
		return nil
	}, includeCompleted)
}

const quadrantWidth = 38

var quadrantStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	Padding(0, 1).
	Width(quadrantWidth)

func renderQuadrant(q analytics.Quadrant, items []todo.Todo, highlight func(string) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)", q.Title(), len(items))
	if len(items) == 0 {
		b.WriteString("\n  -")
	}
	for i := range items {
		t := &items[i]
		fmt.Fprintf(&b, "\n%s %s %s", completionIcon(t.Completed), highlight(t.ID), t.Title)
	}
	return quadrantStyle.Render(b.String())
}

func runCategories(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		counts := s.reg.CategoryDistribution()
		if categoriesJSON {
			return encodeJSON(cmd.OutOrStdout(), counts)
		}
		builder := ui.NewTableBuilder([]string{"CATEGORY", "TODOS"}, len(counts))
		for _, c := range counts {
			builder.AddRow(string(c.Category), fmt.Sprintf("%d", c.Count))
		}
		fmt.Fprint(cmd.OutOrStdout(), builder.String())
		return nil
	})
}

func secondsDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second)).Round(time.Second)
}
