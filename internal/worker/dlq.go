package worker

// dlq.go: jobs that exhaust their attempts are parked in dlq:<queue> for
// inspection and manual replay.

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry wraps a dead job with debugging metadata.
type DLQEntry struct {
	OriginalQueue string `json:"original_queue"`
	Job           Job    `json:"job"`
	Reason        string `json:"reason"`
	FailedAt      string `json:"failed_at"` // RFC 3339
}

// SendToDLQ pushes a dead job to its queue's dead letter list.
func SendToDLQ(ctx context.Context, rdb Client, queue string, job Job, reason string) {
	entry := DLQEntry{
		OriginalQueue: queue,
		Job:           job,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}

	key := DLQPrefix + queue
	if err := rdb.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: failed to push")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("job_type", job.Type).
		Str("reason", reason).
		Int("attempts", job.Attempts).
		Msg("dlq: job moved to dead letter queue")
}

// DLQLength returns the number of dead jobs for queue.
func DLQLength(ctx context.Context, rdb Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// ReplayDLQ moves up to limit dead jobs back onto queue with their attempt
// counter reset, oldest first.
func ReplayDLQ(ctx context.Context, rdb Client, queue string, limit int) (int, error) {
	replayed := 0
	for limit <= 0 || replayed < limit {
		raw, err := rdb.RPop(ctx, DLQPrefix+queue).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return replayed, err
		}
		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("dlq: dropping malformed entry")
			continue
		}
		entry.Job.Attempts = 0
		if err := push(ctx, rdb, queue, entry.Job); err != nil {
			return replayed, err
		}
		replayed++
	}
	return replayed, nil
}
