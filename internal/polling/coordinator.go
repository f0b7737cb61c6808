package polling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/agentctl/internal/metrics"
	"github.com/bnema/agentctl/internal/ports"
	"github.com/bnema/agentctl/internal/store"
)

var ErrUnknownKind = errors.New("unknown poll kind")

const (
	DefaultDeploymentInterval = 5 * time.Second
	DefaultBalancesInterval   = 5 * time.Second
	DefaultStakingInterval    = 30 * time.Second
)

type TickResult string

const (
	TickApplied   TickResult = "ok"
	TickFailed    TickResult = "error"
	TickSkipped   TickResult = "skipped"
	TickPaused    TickResult = "paused"
	TickDiscarded TickResult = "discarded"
)

// Coordinator owns one refresh loop per store kind. Pauses are reference
// counted per kind and a loop never overlaps itself.
type Coordinator struct {
	clock   ports.Clock
	logger  zerolog.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	loops map[store.Kind]*loop
}

type loop struct {
	kind     store.Kind
	interval time.Duration
	fetch    func(ctx context.Context) (apply func(observedAt time.Time), err error)
	fail     func(err error)
	clear    func()

	inFlight atomic.Bool
	kick     chan struct{}

	// commitMu orders a pause against a result being applied.
	commitMu sync.Mutex
	mu       sync.Mutex
	pauses   int
	epoch    uint64
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(clock ports.Clock, logger zerolog.Logger, m *metrics.Metrics) *Coordinator {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Coordinator{
		clock:   clock,
		logger:  logger,
		metrics: m,
		loops:   make(map[store.Kind]*loop),
	}
}

// Register binds a fetcher to the snapshot it refreshes. A non-positive
// interval falls back to the default for the kind.
func Register[T any](c *Coordinator, target *store.Snapshot[T], interval time.Duration, fetch func(ctx context.Context) (T, error)) {
	kind := target.Kind()
	if interval <= 0 {
		interval = defaultInterval(kind)
	}

	l := &loop{
		kind:     kind,
		interval: interval,
		fetch: func(ctx context.Context) (func(time.Time), error) {
			value, err := fetch(ctx)
			if err != nil {
				return nil, err
			}
			return func(observedAt time.Time) { target.Replace(value, observedAt) }, nil
		},
		fail:  target.SetErr,
		clear: target.Clear,
		kick:  make(chan struct{}, 1),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loops[kind] = l
}

func (c *Coordinator) StartPolling(ctx context.Context, kind store.Kind) error {
	l, err := c.loop(kind)
	if err != nil {
		return err
	}

	l.mu.Lock()
	if l.cancel != nil {
		l.mu.Unlock()
		return nil
	}
	loopCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	done := l.done
	l.mu.Unlock()

	go c.run(loopCtx, l, done)
	return nil
}

func (c *Coordinator) StartAll(ctx context.Context) error {
	for _, kind := range store.Kinds {
		if err := c.StartPolling(ctx, kind); err != nil {
			return fmt.Errorf("start %s polling: %w", kind, err)
		}
	}
	return nil
}

// StopPolling halts the loop, waits for it to exit and resets its store to
// unknown. Pause counts are kept.
func (c *Coordinator) StopPolling(kind store.Kind) error {
	l, err := c.loop(kind)
	if err != nil {
		return err
	}

	l.halt()
	l.clear()
	return nil
}

func (c *Coordinator) StopAll() {
	for _, kind := range store.Kinds {
		if err := c.StopPolling(kind); err != nil && !errors.Is(err, ErrUnknownKind) {
			c.logger.Warn().Err(err).Str("kind", string(kind)).Msg("stop polling")
		}
	}
}

// Run starts every registered loop and blocks until ctx is done. Stores keep
// their last values on return.
func (c *Coordinator) Run(ctx context.Context) error {
	c.mu.Lock()
	loops := make([]*loop, 0, len(c.loops))
	for _, l := range c.loops {
		loops = append(loops, l)
	}
	c.mu.Unlock()

	for _, l := range loops {
		if err := c.StartPolling(ctx, l.kind); err != nil {
			return err
		}
	}
	<-ctx.Done()

	for _, l := range loops {
		l.halt()
	}
	return nil
}

func (c *Coordinator) PausePolling(kind store.Kind) {
	l, err := c.loop(kind)
	if err != nil {
		return
	}

	l.commitMu.Lock()
	l.mu.Lock()
	l.pauses++
	if l.pauses == 1 {
		l.epoch++
	}
	count := l.pauses
	l.mu.Unlock()
	l.commitMu.Unlock()

	c.metrics.SetPollPaused(string(kind), count)
	c.logger.Debug().Str("kind", string(kind)).Int("pauses", count).Msg("polling paused")
}

// ResumePolling releases one pause. The last release schedules an immediate
// fresh tick. Extra resumes are ignored.
func (c *Coordinator) ResumePolling(kind store.Kind) {
	l, err := c.loop(kind)
	if err != nil {
		return
	}

	l.mu.Lock()
	if l.pauses == 0 {
		l.mu.Unlock()
		return
	}
	l.pauses--
	count := l.pauses
	l.mu.Unlock()

	c.metrics.SetPollPaused(string(kind), count)
	c.logger.Debug().Str("kind", string(kind)).Int("pauses", count).Msg("polling resumed")
	if count == 0 {
		l.requestTick()
	}
}

func (c *Coordinator) IsPaused(kind store.Kind) bool {
	return c.PauseCount(kind) > 0
}

func (c *Coordinator) PauseCount(kind store.Kind) int {
	l, err := c.loop(kind)
	if err != nil {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pauses
}

// Refresh asks the loop for an immediate tick. Requests coalesce.
func (c *Coordinator) Refresh(kind store.Kind) {
	if l, err := c.loop(kind); err == nil {
		l.requestTick()
	}
}

// Tick runs one tick on the caller's goroutine under the same in-flight
// guard as the background loop.
func (c *Coordinator) Tick(ctx context.Context, kind store.Kind) (TickResult, error) {
	l, err := c.loop(kind)
	if err != nil {
		return "", err
	}
	return c.tick(ctx, l), nil
}

func (c *Coordinator) run(ctx context.Context, l *loop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	c.tick(ctx, l)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-l.kick:
		}
		c.tick(ctx, l)
	}
}

func (c *Coordinator) tick(ctx context.Context, l *loop) TickResult {
	result := c.doTick(ctx, l)
	c.metrics.ObservePollTick(string(l.kind), string(result))
	return result
}

func (c *Coordinator) doTick(ctx context.Context, l *loop) TickResult {
	l.mu.Lock()
	paused := l.pauses > 0
	epoch := l.epoch
	l.mu.Unlock()
	if paused {
		return TickPaused
	}

	if !l.inFlight.CompareAndSwap(false, true) {
		return TickSkipped
	}
	defer l.inFlight.Store(false)

	apply, err := l.fetch(ctx)

	l.commitMu.Lock()
	defer l.commitMu.Unlock()

	l.mu.Lock()
	stale := l.pauses > 0 || l.epoch != epoch
	l.mu.Unlock()
	if stale {
		c.logger.Debug().Str("kind", string(l.kind)).Msg("discarding poll result fetched across a pause")
		return TickDiscarded
	}
	if ctx.Err() != nil {
		return TickDiscarded
	}

	if err != nil {
		l.fail(err)
		c.logger.Warn().Err(err).Str("kind", string(l.kind)).Msg("poll tick failed")
		return TickFailed
	}

	apply(c.clock.Now())
	return TickApplied
}

func (c *Coordinator) loop(kind store.Kind) (*loop, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.loops[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return l, nil
}

// halt cancels the background goroutine and waits for it. Results of any
// tick still running are discarded.
func (l *loop) halt() {
	l.commitMu.Lock()
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.epoch++
	l.mu.Unlock()
	l.commitMu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (l *loop) requestTick() {
	select {
	case l.kick <- struct{}{}:
	default:
	}
}

func defaultInterval(kind store.Kind) time.Duration {
	switch kind {
	case store.KindStaking:
		return DefaultStakingInterval
	case store.KindBalances:
		return DefaultBalancesInterval
	default:
		return DefaultDeploymentInterval
	}
}
