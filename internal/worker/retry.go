package worker

// retry.go
// Failed jobs wait in a sorted set scored by their next run time. A ticker
// goroutine moves due jobs back onto their original queue.

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	RetrySetKey       = "jobs:retry"
	retryTickInterval = 5 * time.Second
	retryBatchSize    = 50
)

type retryEntry struct {
	Queue string `json:"queue"`
	Job   Job    `json:"job"`
}

func scheduleRetry(ctx context.Context, rdb Client, queue string, job Job, at time.Time) error {
	member, err := json.Marshal(retryEntry{Queue: queue, Job: job})
	if err != nil {
		return err
	}
	return rdb.ZAdd(ctx, RetrySetKey, redis.Z{Score: float64(at.Unix()), Member: member}).Err()
}

// StartRetryScheduler promotes due retries until ctx is cancelled.
func StartRetryScheduler(ctx context.Context, rdb Client) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()
		log.Info().Msg("retry scheduler started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry scheduler shutting down")
				return
			case now := <-ticker.C:
				if n, err := promoteDue(ctx, rdb, now); err != nil {
					log.Error().Err(err).Msg("retry scheduler: promote failed")
				} else if n > 0 {
					log.Debug().Int("count", n).Msg("retry scheduler: jobs requeued")
				}
			}
		}
	}()
}

// promoteDue requeues every retry scheduled at or before now. ZREM decides
// ownership so two schedulers never requeue the same entry.
func promoteDue(ctx context.Context, rdb Client, now time.Time) (int, error) {
	members, err := rdb.ZRangeByScore(ctx, RetrySetKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: retryBatchSize,
	}).Result()
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, m := range members {
		removed, err := rdb.ZRem(ctx, RetrySetKey, m).Result()
		if err != nil {
			return moved, err
		}
		if removed == 0 {
			continue
		}
		var entry retryEntry
		if err := json.Unmarshal([]byte(m), &entry); err != nil {
			log.Error().Err(err).Msg("retry scheduler: dropping malformed entry")
			continue
		}
		if err := push(ctx, rdb, entry.Queue, entry.Job); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}
