package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/metrics"
	"github.com/alimarchal/maharat-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueNotificationDefaults = "jobs:notification_defaults"
	QueueEmail                = "jobs:email"

	JobNotificationDefaults = "notification_defaults"
	JobEmail                = "email"

	// MaxAttempts is how many times a job runs before it is dead-lettered.
	MaxAttempts = 3
)

// Queues lists every queue the pool consumes.
var Queues = []string{QueueNotificationDefaults, QueueEmail}

// Client is the subset of *redis.Client the queue needs.
type Client interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	RPop(ctx context.Context, key string) *redis.StringCmd
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	ZRangeByScore(ctx context.Context, key string, opt *redis.ZRangeBy) *redis.StringSliceCmd
	ZRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
}

// Job is the envelope for every async task.
type Job struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues jobs into Redis lists; the pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb Client
}

func NewDispatcher(rdb Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

var _ service.Jobs = (*Dispatcher)(nil)

// NotificationDefaultsPayload names the user whose defaults to create.
type NotificationDefaultsPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

func (d *Dispatcher) EnqueueNotificationDefaults(ctx context.Context, userID uuid.UUID) error {
	return d.enqueue(ctx, QueueNotificationDefaults, JobNotificationDefaults, NotificationDefaultsPayload{UserID: userID})
}

func (d *Dispatcher) EnqueueEmail(ctx context.Context, msg service.EmailMessage) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, msg)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return push(ctx, d.rdb, queue, Job{ID: uuid.NewString(), Type: jobType, Payload: data})
}

func push(ctx context.Context, rdb Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// Handler runs one job payload. A returned error schedules a retry.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Pool runs handlers for jobs popped from Queues.
type Pool struct {
	rdb      Client
	handlers map[string]Handler
	backoff  func(attempt int) time.Duration
	wg       sync.WaitGroup
}

func NewPool(rdb Client) *Pool {
	return &Pool{rdb: rdb, handlers: map[string]Handler{}, backoff: defaultBackoff}
}

// Handle registers h for jobs of jobType.
func (p *Pool) Handle(jobType string, h Handler) { p.handlers[jobType] = h }

// Start launches n goroutines consuming every queue. Each blocks on BRPOP so
// an idle pool costs no CPU. Wait returns once ctx is cancelled and all
// workers have exited.
func (p *Pool) Start(ctx context.Context, n int) {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", n)
}

func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		if ctx.Err() != nil {
			log.Info().Msgf("worker %d shutting down", id)
			return
		}
		result, err := p.rdb.BRPop(ctx, 5*time.Second, Queues...).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Warn().Err(err).Int("worker", id).Msg("BRPOP failed")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		p.process(ctx, result[0], result[1])
	}
}

// process runs one raw job and routes failures to the retry set or the DLQ.
func (p *Pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		quoted, _ := json.Marshal(raw)
		SendToDLQ(ctx, p.rdb, queue, Job{Type: "unknown", Payload: quoted}, "malformed job")
		return
	}

	h, ok := p.handlers[job.Type]
	if !ok {
		metrics.JobsProcessedTotal.WithLabelValues(job.Type, "dead").Inc()
		SendToDLQ(ctx, p.rdb, queue, job, fmt.Sprintf("no handler for job type %q", job.Type))
		return
	}

	job.Attempts++
	err := h(ctx, job.Payload)
	if err == nil {
		metrics.JobsProcessedTotal.WithLabelValues(job.Type, "ok").Inc()
		return
	}

	log.Warn().Err(err).Str("queue", queue).Str("type", job.Type).Int("attempt", job.Attempts).Msg("job failed")
	// Shutdown may have cancelled ctx mid-job; the failure must still be recorded.
	persist := context.WithoutCancel(ctx)
	if job.Attempts >= MaxAttempts {
		metrics.JobsProcessedTotal.WithLabelValues(job.Type, "dead").Inc()
		SendToDLQ(persist, p.rdb, queue, job, err.Error())
		return
	}
	metrics.JobsProcessedTotal.WithLabelValues(job.Type, "retry").Inc()
	if err := scheduleRetry(persist, p.rdb, queue, job, time.Now().Add(p.backoff(job.Attempts))); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to schedule retry")
	}
}

func defaultBackoff(attempt int) time.Duration {
	return time.Duration(attempt*attempt) * 5 * time.Second
}
