package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestHasChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "example"}
	cmd.Flags().String("title", "", "")
	cmd.Flags().String("due", "", "")

	if hasChangedFlags(cmd, "title", "due") {
		t.Fatal("expected no changed flags")
	}

	if err := cmd.Flags().Set("due", "2024-03-15"); err != nil {
		t.Fatalf("set due: %v", err)
	}

	if !hasChangedFlags(cmd, "title", "due") {
		t.Fatal("expected changed flags")
	}
}

func TestShouldUseEditor(t *testing.T) {
	tests := []struct {
		name          string
		hasFieldFlags bool
		edit          bool
		noEdit        bool
		interactive   bool
		want          bool
	}{
		{name: "interactive without flags", interactive: true, want: true},
		{name: "non-interactive without flags", want: false},
		{name: "field flags skip editor", hasFieldFlags: true, interactive: true, want: false},
		{name: "edit forces editor", hasFieldFlags: true, edit: true, want: true},
		{name: "no-edit skips editor", noEdit: true, interactive: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldUseEditor(tt.hasFieldFlags, tt.edit, tt.noEdit, tt.interactive)
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
