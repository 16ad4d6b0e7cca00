package main

import (
	"fmt"
	"strings"

	"github.com/amonks/tasknest/analytics"
	"github.com/amonks/tasknest/internal/validation"
	"github.com/amonks/tasknest/todo"
	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Help about any command",
	Args:  cobra.ArbitraryArgs,
	RunE:  runHelp,
}

var helpValuesCmd = &cobra.Command{
	Use:   "values",
	Short: "Show accepted priorities, categories, filters, and sort keys",
	Args:  cobra.NoArgs,
	RunE:  runHelpValues,
}

func init() {
	rootCmd.SetHelpCommand(helpCmd)
	helpCmd.AddCommand(helpValuesCmd)
}

func runHelp(cmd *cobra.Command, args []string) error {
	root := cmd.Root()
	if len(args) == 0 {
		return root.Help()
	}

	target, _, err := root.Find(args)
	if err != nil || target == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Unknown help topic %q\n", strings.Join(args, " "))
		return root.Help()
	}
	return target.Help()
}

func runHelpValues(cmd *cobra.Command, args []string) error {
	var builder strings.Builder
	fmt.Fprintf(&builder, "priorities:  %s\n", validation.FormatValidValues(todo.ValidPriorities()))
	fmt.Fprintf(&builder, "categories:  %s\n", validation.FormatValidValues(todo.ValidCategories()))
	fmt.Fprintf(&builder, "recurrences: none, %s\n", validation.FormatValidValues(todo.ValidRecurrences()))
	fmt.Fprintf(&builder, "filters:     %s\n", validation.FormatValidValues(todo.ValidFilterKinds()))
	fmt.Fprintf(&builder, "sort keys:   %s\n", validation.FormatValidValues(todo.ValidSortKeys()))
	fmt.Fprintf(&builder, "quadrants:   %s\n", validation.FormatValidValues(analytics.Quadrants()))
	_, err := fmt.Fprint(cmd.OutOrStdout(), builder.String())
	return err
}
