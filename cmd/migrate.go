package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edenhq/meeting-api/internal/database"
	"github.com/edenhq/meeting-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage database migrations for the Meeting Intelligence API.

The schema is managed with GORM auto-migration: running up brings every
table in the model set to its current definition.

Available subcommands:
  up      - Apply all pending migrations
  status  - Show current migration status`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Long: `Apply all pending database migrations.

This brings every table up to the current model definitions, creating
missing tables, columns and indexes. Existing data is preserved.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Display the current status of database migrations.

Lists each managed table and whether it exists in the database.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() { _ = db.Close() }()

	fmt.Fprintf(cmd.OutOrStdout(), "Applying migrations to %s\n", cfg.Database.Path)
	if err := db.MigrateAll(); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() { _ = db.Close() }()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s\n\n", cfg.Database.Path)

	migrator := db.DB.Migrator()
	for _, model := range database.ManagedModels() {
		name := fmt.Sprintf("%T", model)
		if migrator.HasTable(model) {
			fmt.Fprintf(out, "  [present] %s\n", name)
		} else {
			fmt.Fprintf(out, "  [missing] %s\n", name)
		}
	}
	return nil
}
