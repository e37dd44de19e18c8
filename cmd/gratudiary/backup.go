package main

import (
	"errors"
	"fmt"
	"os"

	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/spf13/cobra"
)

func newExportCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save the journal to a backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			backup, err := a.journal.ExportBackup(cmd.Context(), user.ID)
			if err != nil {
				if errors.Is(err, errorvalues.ErrNothingToExport) {
					return errors.New("no entries to export yet")
				}
				return err
			}
			path := output
			if path == "" {
				path = backup.Filename
			}
			if path == "-" {
				_, err = cmd.OutOrStdout().Write(backup.Data)
				return err
			}
			if err := os.WriteFile(path, backup.Data, 0600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s.\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, - for stdout (default gratudiary_backup_<date>.json)")
	return cmd
}

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <backup-file>",
		Short: "Replace the journal with the contents of a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			blob, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			n, err := a.journal.ImportBackup(cmd.Context(), user.ID, blob)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries.\n", n)
			return nil
		},
	}
}
