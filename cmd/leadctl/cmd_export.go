package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
	"github.com/xavierca1/playbook-leads/internal/export"
)

var (
	exportFilter string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download leads as an XLSX workbook",
	Long: `Download leads as an XLSX workbook.

--status ALL exports every lead except the hidden ones; any other value must be
a status label and exports exactly the leads carrying it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFilter != export.FilterAll && !entity.IsValidStatus(exportFilter) {
			return fmt.Errorf("unknown status %q", exportFilter)
		}

		ctx := cmd.Context()
		client, err := loggedInClient(ctx)
		if err != nil {
			return err
		}

		data, err := client.ExportLeads(ctx, exportFilter)
		if err != nil {
			return err
		}

		path := filepath.Join(exportOut, export.Filename(exportFilter, time.Now()))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("export written", zap.String("path", path), zap.Int("bytes", len(data)))
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFilter, "status", "s", export.FilterAll, "Status filter")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "Output directory")
}
