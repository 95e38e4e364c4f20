package commands

import (
	"fitsocial/cmd/fitctl/output"
	"fitsocial/pkg/config"
	"fitsocial/pkg/database"

	"github.com/spf13/cobra"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status|create NAME]",
	Short: "Run database migrations",
	Long: `Run goose migrations against the database configured by DB_* variables.

Examples:
  fitctl migrate up
  fitctl migrate down
  fitctl migrate status
  fitctl migrate create add_workout_logs --dir ./migrations`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"up", "down", "status", "create"},
	RunE: func(cmd *cobra.Command, args []string) error {
		command := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := database.OpenSQL(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(db, migrationsDir, command, args[1:]...); err != nil {
			return err
		}

		switch command {
		case "up":
			output.Success(cmd.OutOrStdout(), "Migrations applied successfully")
		case "down":
			output.Success(cmd.OutOrStdout(), "Migrations rolled back successfully")
		case "create":
			output.Success(cmd.OutOrStdout(), "Created migration: %s", args[1])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "migrations", "Directory with migration files")
}
