package cmd

import (
	"bufio"
	"fmt"

	"codesync/feature/codes"

	"github.com/spf13/cobra"
)

var (
	namesParameter string
	namesDryRun    bool
	namesYes       bool
	namesTable     bool
)

// namesCmd derives full names on instances from their type's code and description.
var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Derive full names on instances",
	Long: `Writes "<code>_<description>" (or just the code when the description is
empty) of each instance's type into the instance's full name parameter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		in, out := bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if !namesDryRun && !namesYes {
			question := fmt.Sprintf("Derive names in catalog %q?", a.service.Catalog().Title())
			if !confirm(in, out, question) {
				return codes.ErrCancelled
			}
		}

		summary, err := a.service.DeriveNames(ctx, codes.NameOptions{
			Target: namesParameter,
			DryRun: namesDryRun,
		})
		if err != nil {
			return err
		}
		return printSummary(out, summary, namesTable)
	},
}

func init() {
	namesCmd.Flags().StringVar(&namesParameter, "parameter", "", "Target instance parameter (default full_name)")
	namesCmd.Flags().BoolVar(&namesDryRun, "dry-run", false, "Roll back instead of committing")
	namesCmd.Flags().BoolVar(&namesYes, "yes", false, "Skip the confirmation prompt")
	namesCmd.Flags().BoolVar(&namesTable, "table", false, "Print problems as a table")
	RootCmd.AddCommand(namesCmd)
}
