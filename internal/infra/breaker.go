package infra

import (
	"errors"
	"sync"
	"time"
)

// ErrBreakerOpen is returned without calling through while the breaker is open.
var ErrBreakerOpen = errors.New("breaker open: downstream marked unavailable")

// BreakerState is closed (calls flow), open (calls fail fast) or half-open
// (one probe at a time decides).
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	default:
		return "half-open"
	}
}

// Breaker trips after Threshold consecutive failures and stays open for
// Cooldown before letting a probe through. A successful probe closes it.
type Breaker struct {
	Threshold int
	Cooldown  time.Duration

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
	now      func() time.Time
}

func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &Breaker{Threshold: threshold, Cooldown: cooldown, now: time.Now}
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Breaker) stateLocked() BreakerState {
	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.Cooldown {
		b.state = BreakerHalfOpen
	}
	return b.state
}

// Do runs fn unless the breaker is open.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	if b.stateLocked() == BreakerOpen {
		b.mu.Unlock()
		return ErrBreakerOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		b.state = BreakerClosed
		b.failures = 0
		return nil
	}
	b.failures++
	if b.state == BreakerHalfOpen || b.failures >= b.Threshold {
		b.state = BreakerOpen
		b.openedAt = b.now()
		b.failures = 0
	}
	return err
}
