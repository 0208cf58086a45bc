package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportOutput    string
	exportParameter string
)

// exportCmd writes the catalog's codes to a snapshot.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export classification codes to a snapshot",
	Long: `Exports every element type with a non-empty classification code.

Without --output the snapshot is written next to the catalog file as
<title>_TypeCodes.json (or into catalog.export_dir / the home directory when
the catalog is not file based). A .yaml or .yml output name writes YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		name, count, err := a.service.Export(ctx, exportOutput, exportParameter)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", count, name)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Snapshot name or path")
	exportCmd.Flags().StringVar(&exportParameter, "parameter", "", "Code parameter name (default classification_code)")
	RootCmd.AddCommand(exportCmd)
}
