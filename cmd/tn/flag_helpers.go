package main

import "github.com/spf13/cobra"

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

// shouldUseEditor decides whether to open $EDITOR: --edit forces it,
// --no-edit or any field flag skips it, otherwise only when interactive.
func shouldUseEditor(hasFieldFlags, editFlag, noEditFlag, interactive bool) bool {
	if editFlag {
		return true
	}
	if noEditFlag || hasFieldFlags {
		return false
	}
	return interactive
}
