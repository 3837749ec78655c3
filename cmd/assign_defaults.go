package cmd

import (
	"fmt"

	"github.com/frahmantamala/finance-app/internal/core/database"
	"github.com/frahmantamala/finance-app/pkg/logger"
	"github.com/spf13/cobra"
)

var assignDefaultsCmd = &cobra.Command{
	Use:   "assign-defaults <user-id>",
	Short: "Copy the template categories into a user's set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		userID := args[0]
		svc := newServices(cfg, db, lg)
		if _, err := svc.User.GetByID(cmd.Context(), userID); err != nil {
			return fmt.Errorf("user %s: %w", userID, err)
		}
		created, err := svc.Category.AssignDefaultCategoriesToUser(cmd.Context(), userID)
		if err != nil {
			return err
		}
		cmd.Printf("assigned %d categories to %s\n", created, userID)
		return nil
	},
}
