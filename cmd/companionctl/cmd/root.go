// Package cmd implements the companionctl commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/companion/config"
	"github.com/finance-tracker/companion/internal/infra/db"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "companionctl",
	Short: "Administer the finance companion",
	Long: `companionctl issues and revokes API tokens and prints ledger and goal
summaries straight from the configured database.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(tokenCmd, summaryCmd, goalsCmd)
}

// openDatabase connects and migrates the configured database. The caller
// closes it.
func openDatabase() (*config.Config, *db.Database, error) {
	cfg := config.Load()

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(); err != nil {
		_ = database.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return cfg, database, nil
}
