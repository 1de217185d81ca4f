package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xavierca1/playbook-leads/internal/infra/adminapi"
	"github.com/xavierca1/playbook-leads/internal/infra/integration/sheets"
	"github.com/xavierca1/playbook-leads/internal/intake"
)

var form intake.Form

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the landing form, as a visitor would",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := adminapi.NewClient(apiURL)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		submitter := intake.NewSubmitter(client, sheets.NewClient(cfg.SheetsScriptURL), logger.Named("intake"))
		submitter.OnComplete = func(context.Context, intake.Outcome) {
			fmt.Fprintln(out, "Descarga el Playbook:", cfg.PlaybookURL)
		}

		result, err := submitter.Submit(cmd.Context(), form)
		if err != nil {
			return err
		}
		if !result.Delivered {
			return fmt.Errorf("no se pudo enviar el formulario: %w", result.Err)
		}
		fmt.Fprintln(out, "¡Gracias! Hemos recibido tus datos.")
		return nil
	},
}

func init() {
	f := submitCmd.Flags()
	f.StringVar(&form.Name, "name", "", "Name")
	f.StringVar(&form.Phone, "phone", "", "Phone")
	f.StringVar(&form.Email, "email", "", "Email")
	f.StringVar(&form.Clinic, "clinic", "", "Clinic")
	f.StringVar(&form.Revenue, "revenue", "", "Yearly revenue bracket")
	f.StringVar(&form.Challenge, "challenge", "", "Main challenge")
	_ = submitCmd.MarkFlagRequired("name")
	_ = submitCmd.MarkFlagRequired("phone")
	_ = submitCmd.MarkFlagRequired("email")
}
