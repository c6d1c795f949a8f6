// Package breaker implements a per-dependency circuit breaker with the
// classic closed/open/half-open state machine. A shared Registry keeps one
// breaker per dependency name so every caller in the process sees the same
// state.
package breaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned without invoking the wrapped call while the circuit
// is open and the cooldown has not elapsed.
var ErrOpen = errors.New("circuit breaker is open")

// State of a breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// Config holds breaker thresholds. Zero values fall back to defaults.
type Config struct {
	FailureThreshold int           `mapstructure:"failure_threshold"`
	SuccessThreshold int           `mapstructure:"success_threshold"`
	ResetTimeout     time.Duration `mapstructure:"reset_timeout"`
	CallTimeout      time.Duration `mapstructure:"call_timeout"`
}

func (c Config) withDefaults() Config {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 5
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = 2
	}
	if c.ResetTimeout <= 0 {
		c.ResetTimeout = 30 * time.Second
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 60 * time.Second
	}
	return c
}

// Breaker guards calls to a single named dependency.
type Breaker struct {
	name string
	cfg  Config

	mu            sync.Mutex
	state         State
	failures      int
	successes     int
	nextAttemptAt time.Time
	probing       bool // a half-open probe is in flight
}

func newBreaker(name string, cfg Config) *Breaker {
	return &Breaker{name: name, cfg: cfg.withDefaults()}
}

// Do runs fn through the breaker. The call is bounded by the configured
// timeout; a timed-out call counts as a failure. While the circuit is open,
// Do returns ErrOpen without invoking fn.
func (b *Breaker) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := b.allow(time.Now()); err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, b.cfg.CallTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(callCtx)
	}()

	var err error
	select {
	case err = <-done:
	case <-callCtx.Done():
		err = callCtx.Err()
	}

	b.record(time.Now(), err)
	return err
}

// allow decides whether a call may proceed, transitioning open -> half-open
// once the cooldown has elapsed. Half-open probes are admitted one at a
// time; concurrent callers are rejected until the probe resolves.
func (b *Breaker) allow(now time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if now.Before(b.nextAttemptAt) {
			return ErrOpen
		}
		b.state = StateHalfOpen
		b.successes = 0
		b.probing = true
		return nil
	case StateHalfOpen:
		if b.probing {
			return ErrOpen
		}
		b.probing = true
		return nil
	}
	return nil
}

func (b *Breaker) record(now time.Time, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.probing = false
	}

	if err == nil {
		switch b.state {
		case StateClosed:
			b.failures = 0
		case StateHalfOpen:
			b.successes++
			if b.successes >= b.cfg.SuccessThreshold {
				b.state = StateClosed
				b.failures = 0
				b.successes = 0
			}
		}
		return
	}

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip(now)
		}
	case StateHalfOpen:
		b.trip(now)
	}
}

func (b *Breaker) trip(now time.Time) {
	b.state = StateOpen
	b.failures = 0
	b.successes = 0
	b.nextAttemptAt = now.Add(b.cfg.ResetTimeout)
}

// Status is a point-in-time snapshot of one breaker, exposed for
// introspection.
type Status struct {
	Name          string    `json:"name"`
	State         string    `json:"state"`
	Failures      int       `json:"failures"`
	Successes     int       `json:"successes"`
	NextAttemptAt time.Time `json:"next_attempt_at,omitempty"`
}

func (b *Breaker) status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Status{
		Name:      b.name,
		State:     b.state.String(),
		Failures:  b.failures,
		Successes: b.successes,
	}
	if b.state == StateOpen {
		s.NextAttemptAt = b.nextAttemptAt
	}
	return s
}

// Registry holds one breaker per dependency name. It is safe for concurrent
// use and is meant to be created once in main and injected into every
// component issuing guarded calls.
type Registry struct {
	cfg Config

	mu sync.Mutex
	m  map[string]*Breaker
}

// NewRegistry creates a registry whose breakers share the given config.
func NewRegistry(cfg Config) *Registry {
	return &Registry{cfg: cfg, m: make(map[string]*Breaker)}
}

// Get returns the breaker for a dependency, creating it on first use.
func (r *Registry) Get(name string) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.m[name]
	if !ok {
		b = newBreaker(name, r.cfg)
		r.m[name] = b
	}
	return b
}

// Do runs fn through the named dependency's breaker.
func (r *Registry) Do(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	return r.Get(name).Do(ctx, fn)
}

// Snapshot returns the current state of every known breaker.
func (r *Registry) Snapshot() []Status {
	r.mu.Lock()
	breakers := make([]*Breaker, 0, len(r.m))
	for _, b := range r.m {
		breakers = append(breakers, b)
	}
	r.mu.Unlock()

	statuses := make([]Status, 0, len(breakers))
	for _, b := range breakers {
		statuses = append(statuses, b.status())
	}
	return statuses
}
