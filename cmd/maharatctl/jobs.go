package main

import (
	"fmt"

	"github.com/alimarchal/maharat-sub001/internal/infra"
	"github.com/alimarchal/maharat-sub001/internal/worker"

	"github.com/spf13/cobra"
)

var (
	replayQueue string
	replayLimit int
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Background job queue maintenance",
}

var jobsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show queue and dead letter depths",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()

		out := cmd.OutOrStdout()
		for _, q := range worker.Queues {
			pending, err := rdb.LLen(ctx, q).Result()
			if err != nil {
				return err
			}
			dead, err := worker.DLQLength(ctx, rdb, q)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-28s pending=%d dead=%d\n", q, pending, dead)
		}
		retrying, err := rdb.ZCard(ctx, worker.RetrySetKey).Result()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-28s waiting=%d\n", worker.RetrySetKey, retrying)
		return nil
	},
}

var jobsReplayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Move dead jobs back onto their queue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !knownQueue(replayQueue) {
			return fmt.Errorf("unknown queue %q", replayQueue)
		}
		ctx := cmd.Context()
		rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()

		n, err := worker.ReplayDLQ(ctx, rdb, replayQueue, replayLimit)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d jobs replayed onto %s\n", n, replayQueue)
		return nil
	},
}

func knownQueue(q string) bool {
	for _, known := range worker.Queues {
		if q == known {
			return true
		}
	}
	return false
}

func init() {
	jobsReplayCmd.Flags().StringVar(&replayQueue, "queue", worker.QueueEmail, "Queue whose dead letters to replay")
	jobsReplayCmd.Flags().IntVar(&replayLimit, "limit", 0, "Maximum jobs to replay (0 = all)")

	jobsCmd.AddCommand(jobsStatusCmd, jobsReplayCmd)
	rootCmd.AddCommand(jobsCmd)
}
