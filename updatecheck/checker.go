// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package updatecheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/habitpair/pwa"
)

// Defaults used by New
const (
	DefaultInterval    = 60 * time.Second
	DefaultReloadDelay = 2 * time.Second
)

// ErrCheckInFlight is returned by Check when another check has not finished
var ErrCheckInFlight = errors.New("version check already in flight")

// State is the checker's knowledge of the running deployment
type State int

const (
	StateUnknown State = iota
	StateKnown
	StateStale
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateKnown:
		return "known"
	case StateStale:
		return "stale"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Fetcher retrieves the current version descriptor
type Fetcher interface {
	Fetch(ctx context.Context) (pwa.Descriptor, error)
}

// Worker is a service worker waiting to take over
type Worker interface {
	PostMessage(msg pwa.WorkerMessage) error
}

type Option func(*Checker)

func WithInterval(d time.Duration) Option {
	return func(c *Checker) { c.interval = d }
}

func WithReloadDelay(d time.Duration) Option {
	return func(c *Checker) { c.reloadDelay = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// Checker polls a version descriptor and reloads the client once a new
// deployment is seen. The first successful fetch records the deployment
// id; any later id that differs marks the client stale and schedules a
// single reload after the reload delay.
type Checker struct {
	fetcher     Fetcher
	reload      func()
	interval    time.Duration
	reloadDelay time.Duration
	logger      *slog.Logger
	afterFunc   func(d time.Duration, f func())
	now         func() time.Time

	inFlight  atomic.Bool
	scheduled atomic.Bool
	reloaded  atomic.Bool

	mu           sync.Mutex
	state        State
	deploymentID string
	latest       pwa.Descriptor
	waiting      Worker
	activated    bool
}

// New returns a checker that calls reload when the client must restart
func New(fetcher Fetcher, reload func(), opts ...Option) *Checker {
	c := &Checker{
		fetcher:     fetcher,
		reload:      reload,
		interval:    DefaultInterval,
		reloadDelay: DefaultReloadDelay,
		logger:      slog.Default(),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checker) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// DeploymentID returns the first deployment id seen, or "" before any
// successful check
func (c *Checker) DeploymentID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deploymentID
}

// Latest returns the descriptor that made the checker stale. ok is false
// while no new deployment has been seen.
func (c *Checker) Latest() (d pwa.Descriptor, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest, c.state == StateStale
}

// Check fetches the descriptor once. Overlapping calls return
// ErrCheckInFlight without fetching. A failed fetch is logged and leaves
// the state unchanged.
func (c *Checker) Check(ctx context.Context) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.logger.Debug("version check skipped, previous check still running")
		return ErrCheckInFlight
	}
	defer c.inFlight.Store(false)

	d, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.logger.Warn("version check failed", "error", err)
		return fmt.Errorf("version check: %w", err)
	}

	c.mu.Lock()
	switch c.state {
	case StateUnknown:
		c.state = StateKnown
		c.deploymentID = d.DeploymentID
		c.mu.Unlock()
		c.logger.Info("initial version", "deployment_id", d.DeploymentID, "commit", d.Commit)
		return nil
	case StateStale:
		c.mu.Unlock()
		return nil
	}

	if d.DeploymentID == c.deploymentID {
		c.mu.Unlock()
		c.logger.Debug("version up to date", "deployment_id", d.DeploymentID)
		return nil
	}

	old := c.deploymentID
	c.state = StateStale
	c.latest = d
	c.mu.Unlock()

	c.logger.Info("new deployment detected",
		"old", old,
		"new", d.DeploymentID,
		"commit", d.Commit,
		"built", d.Age(c.now()),
		"reload_in", c.reloadDelay,
	)
	c.scheduleReload()
	return nil
}

// Run checks immediately and then every interval until ctx is done
func (c *Checker) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		// Errors are already logged by Check
		_ = c.Check(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// HandleWorkerMessage reacts to a message posted by the service worker.
// SW_ACTIVATED means a new worker now controls the page, so the page
// reloads the same way a new deployment does.
func (c *Checker) HandleWorkerMessage(msg pwa.WorkerMessage) {
	if msg.Type != pwa.MessageSWActivated {
		c.logger.Debug("ignoring worker message", "type", msg.Type)
		return
	}

	c.mu.Lock()
	c.activated = true
	c.mu.Unlock()

	c.logger.Info("service worker activated")
	c.scheduleReload()
}

// SetWaitingWorker records an installed worker that has not taken over yet
func (c *Checker) SetWaitingWorker(w Worker) {
	c.mu.Lock()
	c.waiting = w
	c.mu.Unlock()
}

// UpdateAvailable reports whether the client is running an old deployment
func (c *Checker) UpdateAvailable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiting != nil || c.activated || c.state == StateStale
}

// ApplyUpdate asks the waiting worker to take over and reloads. Without a
// waiting worker it just reloads.
func (c *Checker) ApplyUpdate() {
	c.mu.Lock()
	w := c.waiting
	c.waiting = nil
	c.mu.Unlock()

	if w != nil {
		if err := w.PostMessage(pwa.WorkerMessage{Type: pwa.MessageSkipWaiting}); err != nil {
			c.logger.Error("failed to message waiting worker", "error", err)
		}
	} else {
		c.logger.Info("no waiting worker, reloading")
	}
	c.fireReload()
}

// Reloaded reports whether the reload callback has run
func (c *Checker) Reloaded() bool {
	return c.reloaded.Load()
}

func (c *Checker) scheduleReload() {
	if !c.scheduled.CompareAndSwap(false, true) {
		return
	}
	c.afterFunc(c.reloadDelay, c.fireReload)
}

func (c *Checker) fireReload() {
	if !c.reloaded.CompareAndSwap(false, true) {
		return
	}
	c.reload()
}
