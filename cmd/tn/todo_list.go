package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/amonks/tasknest/internal/listflags"
	"github.com/amonks/tasknest/storage"
	"github.com/amonks/tasknest/todo"
	"github.com/spf13/cobra"
)

var todoListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos",
	Long: `List the todos of the selected project, or of every project when
"all" is selected or --project all is given. Completed todos are hidden
unless --all or a --filter is given.

Filters: all, active, completed, urgent, important, overdue, due-today, timing.
Sort keys: priority, dueDate (or due-date), created, modified.`,
	Args: cobra.NoArgs,
	RunE: runTodoList,
}

var (
	todoListFilter   string
	todoListSort     string
	todoListSearch   string
	todoListProject  string
	todoListCategory string
	todoListAll      bool
	todoListJSON     bool
)

func init() {
	todoListCmd.Flags().StringVarP(&todoListFilter, "filter", "f", "", "Filter todos (default active)")
	todoListCmd.Flags().StringVarP(&todoListSort, "sort", "s", string(todo.SortPriority), "Sort key")
	todoListCmd.Flags().StringVarP(&todoListSearch, "search", "q", "", "Only todos whose title, description, or notes contain every word")
	todoListCmd.Flags().StringVarP(&todoListProject, "project", "P", "", "Project ID, name, or prefix ('all' for every project)")
	todoListCmd.Flags().StringVarP(&todoListCategory, "category", "c", "", "Only todos of this category")
	todoListCmd.Flags().BoolVar(&todoListJSON, "json", false, "Output as JSON")
	listflags.AddAllFlag(todoListCmd, &todoListAll)
}

func runTodoList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		kind, err := listFilterKind(cmd.Flags().Changed("filter"), todoListFilter, todoListAll)
		if err != nil {
			return err
		}
		key, err := todo.ParseSortKey(todoListSort)
		if err != nil {
			return err
		}
		var category todo.Category
		if todoListCategory != "" {
			if category, err = todo.ParseCategory(todoListCategory); err != nil {
				return err
			}
		}

		items, err := scopedTodos(s, todoListProject)
		if err != nil {
			return err
		}
		total := len(items)
		now := s.now()
		items = todo.Filter(items, kind, now)
		items = filterTodos(items, func(t *todo.Todo) bool {
			if category != "" && t.Category != category {
				return false
			}
			return todo.MatchesQuery(t, todoListSearch)
		})
		items = s.reg.SortTodos(items, key)

		if todoListJSON {
			records := make([]storage.TodoRecord, 0, len(items))
			for i := range items {
				records = append(records, storage.NewTodoRecord(&items[i]))
			}
			return encodeJSON(cmd.OutOrStdout(), records)
		}

		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), todoEmptyListMessage(total, kind, todoListSearch))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), formatTodoTable(items, todoHighlighter(s), now))
		return nil
	})
}

// listFilterKind picks the filter for todo list: an explicit --filter wins,
// then --all, then active.
func listFilterKind(filterChanged bool, filter string, all bool) (todo.FilterKind, error) {
	switch {
	case filterChanged:
		return todo.ParseFilterKind(filter)
	case all:
		return todo.FilterAll, nil
	default:
		return todo.FilterActive, nil
	}
}

// scopedTodos returns the todos of the referenced project, or of the
// visible scope when ref is empty.
func scopedTodos(s *session, ref string) ([]todo.Todo, error) {
	switch ref {
	case "":
		return s.reg.VisibleTodos(), nil
	case todo.AllProjectsID:
		return s.reg.AllTodos(), nil
	}
	p, err := s.reg.ResolveProject(ref)
	if err != nil {
		return nil, err
	}
	items := make([]todo.Todo, 0, len(p.Todos))
	for i := range p.Todos {
		items = append(items, p.Todos[i].Clone())
	}
	return items, nil
}

func filterTodos(items []todo.Todo, keep func(*todo.Todo) bool) []todo.Todo {
	out := items[:0]
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

func todoEmptyListMessage(total int, kind todo.FilterKind, search string) string {
	if total == 0 {
		return "No todos found."
	}
	var criteria []string
	if kind != todo.FilterAll {
		criteria = append(criteria, fmt.Sprintf("filter %q", kind))
	}
	if search != "" {
		criteria = append(criteria, fmt.Sprintf("search %q", search))
	}
	if len(criteria) == 0 {
		return "No todos found."
	}
	return fmt.Sprintf("No todos match %s (%d total).", strings.Join(criteria, " and "), total)
}
