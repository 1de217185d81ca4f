package main

import (
	"github.com/spf13/cobra"

	"github.com/xavierca1/playbook-leads/internal/console"
	"github.com/xavierca1/playbook-leads/internal/tui"
)

var exportDir string

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the admin console: status board, table and hidden leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := loggedInClient(ctx)
		if err != nil {
			return err
		}

		notices := &console.Notices{}
		c := console.New(client, notices, logger.Named("console"))
		return tui.Run(ctx, c, notices, tui.WithExportDir(exportDir))
	},
}

func init() {
	consoleCmd.Flags().StringVar(&exportDir, "export-dir", ".", "Directory for exported workbooks")
}
