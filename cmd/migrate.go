package cmd

import (
	"database/sql"
	"errors"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openMigrationDB()
		if err != nil {
			return err
		}
		defer db.Close()

		return goose.Up(db, ".")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openMigrationDB()
		if err != nil {
			return err
		}
		defer db.Close()

		return goose.Down(db, ".")
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the migration status",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openMigrationDB()
		if err != nil {
			return err
		}
		defer db.Close()

		return goose.Status(db, ".")
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func openMigrationDB() (*sql.DB, error) {
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("MYSQL_DSN"))
	if dsn == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
