// Package listflags holds flags shared by list commands.
package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag that includes completed entries.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().BoolP("all", "a", false, "Include completed todos")
		return
	}

	cmd.Flags().BoolVarP(target, "all", "a", false, "Include completed todos")
}
