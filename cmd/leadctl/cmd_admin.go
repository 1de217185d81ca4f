package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
	"github.com/xavierca1/playbook-leads/internal/infra/database"
	"github.com/xavierca1/playbook-leads/internal/usecase"
)

var (
	newAdminUser string
	newAdminPass string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin or reset its password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if newAdminUser == "" || newAdminPass == "" {
			return fmt.Errorf("--username and --password are required")
		}

		hash, err := usecase.HashPassword(newAdminPass)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		admin := &entity.Admin{
			ID:           uuid.New().String(),
			Username:     newAdminUser,
			PasswordHash: hash,
		}
		if err := database.NewAdminRepository(db).Upsert(ctx, admin); err != nil {
			return fmt.Errorf("save admin: %w", err)
		}

		logger.Info("admin saved", zap.String("username", admin.Username), zap.String("id", admin.ID))
		fmt.Fprintf(cmd.OutOrStdout(), "Admin %q listo\n", admin.Username)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&newAdminUser, "username", os.Getenv("ADMIN_USERNAME"), "Admin username")
	createAdminCmd.Flags().StringVar(&newAdminPass, "password", os.Getenv("ADMIN_PASSWORD"), "Admin password (min 8 characters)")
}

// openDatabase connects and brings the schema up to date.
func openDatabase(ctx context.Context) (*sql.DB, error) {
	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.ApplyMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
