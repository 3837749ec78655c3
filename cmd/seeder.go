package cmd

import (
	"fmt"

	"github.com/frahmantamala/finance-app/internal/category"
	"github.com/frahmantamala/finance-app/internal/core/database"
	"github.com/frahmantamala/finance-app/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed template categories and the admin account",
	Long: `Creates the template categories copied into every new user's set and,
when seed.admin_email is configured, makes sure that account exists with the
Admin role. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		lg := logger.LoggerWrapper()

		db, err := database.Open(cfg.Database, lg)
		if err != nil {
			return err
		}
		defer db.Close()

		svc := newServices(cfg, db, lg)

		created, err := svc.Category.SeedTemplates(ctx, category.DefaultNames)
		if err != nil {
			return fmt.Errorf("seed template categories: %w", err)
		}
		lg.Info("template categories seeded", "created", created, "total", len(category.DefaultNames))

		if cfg.Seed.AdminEmail == "" {
			lg.Warn("seed.admin_email not set, skipping admin account")
			return nil
		}
		admin, err := svc.User.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if _, err := svc.Category.AssignDefaultCategoriesToUser(ctx, admin.ID); err != nil {
			return fmt.Errorf("assign admin categories: %w", err)
		}
		lg.Info("admin account ready", "user_id", admin.ID, "email", admin.Email)
		return nil
	},
}
