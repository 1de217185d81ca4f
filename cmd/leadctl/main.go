// Command leadctl is the operator CLI: the terminal admin console, exports,
// form submissions, admin provisioning and spreadsheet imports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/config"
	"github.com/xavierca1/playbook-leads/internal/infra/adminapi"
	applog "github.com/xavierca1/playbook-leads/internal/logger"
)

var (
	verbose  bool
	apiURL   string
	username string
	password string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "leadctl",
	Short:         "Operator tools for the Playbook 50K lead service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if apiURL == "" {
			apiURL = cfg.AdminAPIURL
		}

		// the console owns the terminal, so it only logs when asked to
		if cmd.Name() == "console" && !verbose {
			logger = zap.NewNop()
			return nil
		}
		l, err := applog.New(cfg.Env)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Admin API base URL (default ADMIN_API_URL)")

	for _, cmd := range []*cobra.Command{consoleCmd, exportCmd, hiddenCmd} {
		cmd.Flags().StringVarP(&username, "username", "u", os.Getenv("ADMIN_USERNAME"), "Admin username")
		cmd.Flags().StringVarP(&password, "password", "p", os.Getenv("ADMIN_PASSWORD"), "Admin password")
	}

	rootCmd.AddCommand(consoleCmd, exportCmd, hiddenCmd, submitCmd, createAdminCmd, importCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loggedInClient opens an admin API session with the global credentials.
func loggedInClient(ctx context.Context) (*adminapi.Client, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("credentials required: use --username/--password or ADMIN_USERNAME/ADMIN_PASSWORD")
	}
	client, err := adminapi.NewClient(apiURL)
	if err != nil {
		return nil, err
	}
	if err := client.Login(ctx, username, password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return client, nil
}
