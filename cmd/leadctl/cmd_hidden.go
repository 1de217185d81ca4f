package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/xavierca1/playbook-leads/internal/console"
)

var hiddenCmd = &cobra.Command{
	Use:   "hidden",
	Short: "List leads parked as not interested",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := loggedInClient(ctx)
		if err != nil {
			return err
		}

		leads, err := client.ListHiddenLeads(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(leads) == 0 {
			fmt.Fprintln(out, "No hay leads ocultos")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Fecha", "Nombre", "Email", "Teléfono", "Estado", "Notas")
		for _, lead := range leads {
			t.Row(
				lead.CreatedAt.Format("02/01/2006"),
				lead.Name,
				lead.Email,
				lead.Phone,
				lead.EffectiveStatus(),
				console.NotesPreview(lead.Notes, 40),
			)
		}
		fmt.Fprintln(out, t)
		return nil
	},
}
