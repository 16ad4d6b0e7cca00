package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/amonks/tasknest/internal/kv"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every project, todo, and template as JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace all data with an exported JSON document",
	Long: `Replace all data with an exported JSON document read from a file, or
from stdin when given '-'. A malformed document is rejected and nothing
changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send reminders for urgent and due-today todos",
	Args:  cobra.NoArgs,
	RunE:  runRemind,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show where data is stored",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

var exportOutput string

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, remindCmd, infoCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		data, err := s.reg.Export()
		if err != nil {
			return err
		}
		if exportOutput == "" {
			_, err := cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(exportOutput, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOutput)
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	r, closeFn, err := openInput(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer closeFn()
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	return withSession(cmd, func(ctx context.Context, s *session) error {
		if err := s.reg.Import(ctx, data); err != nil {
			return err
		}
		todos := 0
		for _, p := range s.reg.Projects() {
			todos += len(p.Todos)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects, %d todos, %d templates\n",
			len(s.reg.Projects()), todos, len(s.reg.Templates()))
		return nil
	})
}

func runRemind(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		sent := s.reg.Remind()
		if len(sent) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing needs attention.")
			return nil
		}
		for _, message := range sent {
			fmt.Fprintln(cmd.OutOrStdout(), message)
		}
		return nil
	})
}

func runInfo(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		w := cmd.OutOrStdout()
		cfg := s.storeCfg
		fmt.Fprintf(w, "Backend:   %s\n", cfg.Backend)
		fmt.Fprintf(w, "Namespace: %s\n", cfg.Namespace)
		fmt.Fprintf(w, "Key:       %s\n", s.storageKey())
		switch cfg.Backend {
		case kv.BackendFile:
			if fs, ok := s.store.(*kv.FileStore); ok {
				fmt.Fprintf(w, "Directory: %s\n", fs.Dir())
			}
		case kv.BackendSQLite:
			fmt.Fprintf(w, "Database:  %s\n", cfg.SQLitePath)
		case kv.BackendRedis:
			fmt.Fprintf(w, "Address:   %s\n", cfg.RedisAddr)
		case kv.BackendFirestore:
			fmt.Fprintf(w, "Project:   %s\n", cfg.FirestoreProject)
		}
		return nil
	})
}
