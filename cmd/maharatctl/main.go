// Command maharatctl is the operator CLI: schema migration, seeding,
// notification backfills and job queue maintenance.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alimarchal/maharat-sub001/internal/config"
	"github.com/alimarchal/maharat-sub001/internal/infra"
	"github.com/alimarchal/maharat-sub001/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "maharatctl",
	Short: "Operator tooling for the Maharat back-office API",
	Long: `maharatctl runs maintenance tasks against the same database and Redis
the API uses. Configuration comes from the environment (and .env), exactly
as for the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Setup(cfg.Env, cfg.LogLevel)
		return nil
	},
}

func openDB() (*gorm.DB, error) {
	return infra.NewDatabase(cfg.DatabaseURL, infra.DatabaseOptions{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
