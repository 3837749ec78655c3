package cmd

import (
	"fmt"

	migrations "github.com/frahmantamala/finance-app/db"
	"github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/core/database"
	"github.com/frahmantamala/finance-app/pkg/logger"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "Apply the embedded SQL migrations (postgres) or auto-migrate (sqlite)",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
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

	if cfg.Database.Driver == internal.DriverSQLite {
		if migrateRollback {
			return fmt.Errorf("rollback is not supported for sqlite")
		}
		if err := database.AutoMigrate(db.Gorm); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		lg.Info("sqlite schema migrated")
		return nil
	}

	goose.SetBaseFS(migrations.Migrations)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if migrateRollback {
		if err := goose.DownContext(ctx, db.SQL.DB, "migrations"); err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		lg.Info("rolled back latest migration")
		return nil
	}
	if err := goose.UpContext(ctx, db.SQL.DB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	lg.Info("migrations applied")
	return nil
}
