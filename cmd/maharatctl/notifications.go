package main

import (
	"errors"
	"fmt"

	"github.com/alimarchal/maharat-sub001/internal/infra"
	"github.com/alimarchal/maharat-sub001/internal/repository"
	"github.com/alimarchal/maharat-sub001/internal/service"
	"github.com/alimarchal/maharat-sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	defaultsAll  bool
	defaultsUser string
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Notification settings maintenance",
}

var setupDefaultsCmd = &cobra.Command{
	Use:   "setup-defaults",
	Short: "Create missing default notification settings",
	Long: `setup-defaults stores enabled=true for every active (type, channel) pair
a user has no setting for. Existing settings are never changed.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if defaultsAll == (defaultsUser != "") {
			return errors.New("pass exactly one of --all or --user")
		}
		ctx := cmd.Context()

		db, err := openDB()
		if err != nil {
			return err
		}
		rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()

		users := repository.NewUserRepository(db)
		svc := service.NewNotificationSettingsService(
			repository.NewNotificationSettingRepository(db),
			users,
			service.NewRedisSettingsCache(rdb, cfg.SettingsCacheTTL),
			worker.NewDispatcher(rdb),
		)

		var ids []uuid.UUID
		if defaultsAll {
			if ids, err = users.IDs(ctx); err != nil {
				return err
			}
		} else {
			id, err := uuid.Parse(defaultsUser)
			if err != nil {
				return fmt.Errorf("--user: %w", err)
			}
			ids = []uuid.UUID{id}
		}

		total := 0
		for _, id := range ids {
			n, err := svc.SetupDefaults(ctx, id)
			if err != nil {
				return fmt.Errorf("user %s: %w", id, err)
			}
			total += n
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d users processed, %d settings created\n", len(ids), total)
		return nil
	},
}

func init() {
	setupDefaultsCmd.Flags().BoolVar(&defaultsAll, "all", false, "Process every user")
	setupDefaultsCmd.Flags().StringVar(&defaultsUser, "user", "", "Process one user by id")

	notificationsCmd.AddCommand(setupDefaultsCmd)
	rootCmd.AddCommand(notificationsCmd)
}
