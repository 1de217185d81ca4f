package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xavierca1/playbook-leads/internal/importer"
	"github.com/xavierca1/playbook-leads/internal/infra/database"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import leads from a form spreadsheet",
	Long: `Import leads from the first sheet of a spreadsheet.

Rows without name or email are skipped. When an email appears more than once
only the most recent row is kept. Imported leads start in status LEAD.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		if importDryRun {
			leads, report, err := importer.New(nil, logger).Parse(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d filas, %d omitidas, %d duplicadas, %d a importar\n",
				report.Rows, report.Skipped, report.Duplicates, len(leads))
			return nil
		}

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		report, err := importer.New(database.NewLeadRepository(db), logger).Import(ctx, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d filas, %d omitidas, %d duplicadas, %d importadas\n",
			report.Rows, report.Skipped, report.Duplicates, report.Imported)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and report without writing")
}
