package cmd

import (
	"bufio"
	"fmt"

	"codesync/core/reconcile"
	"codesync/feature/codes"

	"github.com/spf13/cobra"
)

var (
	importSnapshot  string
	importParameter string
	importDryRun    bool
	importYes       bool
	importTable     bool
)

// importCmd applies a snapshot's codes to the catalog.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Apply a snapshot's classification codes to the catalog",
	Long: `Matches element types on category and type name (case-insensitive) and
writes the snapshot code into each matched type. All writes happen in one
session that is committed at the end.

Examples:
  # Ask for the snapshot interactively
  codesync import

  # Preview without committing
  codesync import --snapshot Tower_TypeCodes.json --dry-run

  # Non-interactive
  codesync import --snapshot Tower_TypeCodes.json --yes`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importSnapshot, "snapshot", "s", "", "Snapshot name or path")
	importCmd.Flags().StringVar(&importParameter, "parameter", "", "Code parameter name (default classification_code)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Roll back instead of committing")
	importCmd.Flags().BoolVar(&importYes, "yes", false, "Skip the confirmation prompt")
	importCmd.Flags().BoolVar(&importTable, "table", false, "Print problems as a table")
	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	in, out := bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout()

	name := importSnapshot
	if name == "" {
		answer, err := promptLine(in, out, "Snapshot to import: ")
		if err != nil {
			return err
		}
		if answer == "" {
			return codes.ErrCancelled
		}
		name = answer
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if !importDryRun && !importYes {
		question := fmt.Sprintf("Apply %s to catalog %q?", name, a.service.Catalog().Title())
		if !confirm(in, out, question) {
			return codes.ErrCancelled
		}
	}

	summary, err := a.service.Import(ctx, name, reconcile.Options{
		Parameter: importParameter,
		DryRun:    importDryRun,
	})
	if err != nil {
		return err
	}

	return printSummary(out, summary, importTable)
}
