package usecase

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/live-dattacks/internal/domain/livescore"
	"github.com/riskibarqy/live-dattacks/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultLivePollInterval = 3 * time.Second
	defaultLivePollWorkers  = 4
)

// LiveFeed fetches the raw in-play fixture list.
type LiveFeed interface {
	FetchInplay(ctx context.Context) ([]livescore.RawFixture, error)
}

type LivePollerConfig struct {
	Interval time.Duration
	// Workers bounds concurrently running cycles, including superseded ones
	// still unwinding after cancellation.
	Workers int
	Logger  *logging.Logger
	Now     func() time.Time
}

// LivePoller owns the live table. One coordinator goroutine (Run) starts poll
// cycles, cancels the previous cycle before each new one and is the only
// writer of the published LiveState.
type LivePoller struct {
	feed     LiveFeed
	deriver  *livescore.Deriver
	interval time.Duration
	workers  int
	logger   *logging.Logger
	now      func() time.Time

	state   atomic.Pointer[livescore.LiveState]
	started atomic.Bool

	subsMu  sync.Mutex
	subs    map[uint64]chan livescore.LiveState
	nextSub uint64
	closed  bool

	// coordinator-owned
	seq         uint64
	cancelCycle context.CancelFunc
	results     chan cycleResult
}

type cycleResult struct {
	seq      uint64
	fixtures []livescore.FixtureMetrics
	err      error
}

func NewLivePoller(feed LiveFeed, deriver *livescore.Deriver, cfg LivePollerConfig) *LivePoller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultLivePollInterval
	}
	workers := cfg.Workers
	if workers < 2 {
		workers = defaultLivePollWorkers
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	if deriver == nil {
		deriver = livescore.NewDeriver(nil)
	}

	p := &LivePoller{
		feed:     feed,
		deriver:  deriver,
		interval: interval,
		workers:  workers,
		logger:   logger,
		now:      now,
		subs:     make(map[uint64]chan livescore.LiveState),
		results:  make(chan cycleResult),
	}
	initial := livescore.InitialLiveState()
	p.state.Store(&initial)
	return p
}

// Run polls until ctx is cancelled. It issues the first cycle immediately and
// one per tick afterwards. On return the in-flight cycle is cancelled and a
// final stopped snapshot has been published.
func (p *LivePoller) Run(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return ErrPollerAlreadyStarted
	}

	pool, err := ants.NewPool(p.workers, ants.WithNonblocking(true))
	if err != nil {
		return crerr.Wrap(err, "create live poll worker pool")
	}
	defer pool.Release()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.InfoContext(ctx, "live poller started", "interval", p.interval.String(), "workers", p.workers)
	p.startCycle(ctx, pool)

	for {
		select {
		case <-ctx.Done():
			p.shutdown()
			p.logger.Info("live poller stopped", "cycles", p.seq)
			return nil
		case <-ticker.C:
			p.startCycle(ctx, pool)
		case res := <-p.results:
			p.apply(ctx, res)
		}
	}
}

// Snapshot returns the latest state. The returned value is a copy.
func (p *LivePoller) Snapshot() livescore.LiveState {
	return cloneState(*p.state.Load())
}

// Subscribe returns a channel receiving every published snapshot. The channel
// keeps only the latest unread snapshot and is closed by the returned cancel
// func or when the poller stops.
func (p *LivePoller) Subscribe() (<-chan livescore.LiveState, func()) {
	ch := make(chan livescore.LiveState, 1)

	p.subsMu.Lock()
	defer p.subsMu.Unlock()

	if p.closed {
		ch <- p.Snapshot()
		close(ch)
		return ch, func() {}
	}

	p.nextSub++
	key := p.nextSub
	p.subs[key] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.subsMu.Lock()
			defer p.subsMu.Unlock()
			if current, ok := p.subs[key]; ok {
				delete(p.subs, key)
				close(current)
			}
		})
	}
}

func (p *LivePoller) startCycle(ctx context.Context, pool *ants.Pool) {
	if p.cancelCycle != nil {
		p.cancelCycle()
	}

	p.seq++
	seq := p.seq
	cycleCtx, cancel := context.WithCancel(ctx)
	p.cancelCycle = cancel

	p.update(func(s *livescore.LiveState) {
		s.Phase = livescore.PhaseLoading
	}, false)

	if err := pool.Submit(func() { p.runCycle(cycleCtx, seq) }); err != nil {
		cancel()
		p.apply(ctx, cycleResult{seq: seq, err: crerr.Wrap(err, "schedule live poll cycle")})
	}
}

func (p *LivePoller) runCycle(ctx context.Context, seq uint64) {
	ctx, span := usecaseTracer.Start(ctx, "usecase.LivePoller.cycle")
	span.SetAttributes(attribute.Int64("live.cycle", int64(seq)))
	defer span.End()

	res := cycleResult{seq: seq}
	raw, err := p.feed.FetchInplay(ctx)
	if err != nil {
		res.err = err
		span.RecordError(err)
	} else {
		res.fixtures = p.derive(ctx, raw)
	}

	select {
	case p.results <- res:
	case <-ctx.Done():
	}
}

func (p *LivePoller) derive(ctx context.Context, raw []livescore.RawFixture) []livescore.FixtureMetrics {
	_, span := startUsecaseSpan(ctx, "usecase.LivePoller.derive")
	defer span.End()
	span.SetAttributes(attribute.Int("live.fixtures", len(raw)))

	return p.deriver.DeriveAll(raw)
}

// apply folds a finished cycle into the state. Results of superseded cycles
// and cancellations are dropped without a transition.
func (p *LivePoller) apply(ctx context.Context, res cycleResult) {
	if res.seq != p.seq {
		p.logger.DebugContext(ctx, "dropping superseded live poll result", "cycle", res.seq, "current", p.seq)
		return
	}
	if isCancellation(res.err) {
		return
	}

	if res.err != nil {
		p.logger.WarnContext(ctx, "live poll cycle failed", "cycle", res.seq, "error", res.err)
		p.update(func(s *livescore.LiveState) {
			s.Phase = livescore.PhaseError
			s.Loading = false
			s.Error = failureMessage(res.err)
			s.Cycle = res.seq
			s.UpdatedAt = p.now()
		}, true)
		return
	}

	fixtures := res.fixtures
	if fixtures == nil {
		fixtures = []livescore.FixtureMetrics{}
	}
	p.update(func(s *livescore.LiveState) {
		s.Phase = livescore.PhaseReady
		s.Loading = false
		s.Error = ""
		s.Fixtures = fixtures
		s.Cycle = res.seq
		s.UpdatedAt = p.now()
	}, true)
}

func (p *LivePoller) shutdown() {
	if p.cancelCycle != nil {
		p.cancelCycle()
		p.cancelCycle = nil
	}
	p.update(func(s *livescore.LiveState) {
		s.Phase = livescore.PhaseStopped
	}, true)

	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	p.closed = true
	for key, ch := range p.subs {
		delete(p.subs, key)
		close(ch)
	}
}

// update stores a modified copy of the current state. Only the coordinator calls it.
func (p *LivePoller) update(mutate func(*livescore.LiveState), publish bool) {
	next := *p.state.Load()
	mutate(&next)
	p.state.Store(&next)
	if publish {
		p.publish(next)
	}
}

func (p *LivePoller) publish(state livescore.LiveState) {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()

	for _, ch := range p.subs {
		snapshot := cloneState(state)
		select {
		case ch <- snapshot:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

func cloneState(state livescore.LiveState) livescore.LiveState {
	state.Fixtures = slices.Clone(state.Fixtures)
	if state.Fixtures == nil {
		state.Fixtures = []livescore.FixtureMetrics{}
	}
	return state
}

func isCancellation(err error) bool {
	return err != nil && errors.Is(err, context.Canceled)
}

func failureMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "fetch error"
}
