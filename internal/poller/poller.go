package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/logging"
	"github.com/preston-bernstein/sebango-service/internal/metrics"
)

const defaultInterval = 5 * time.Minute

// Reloader refreshes one season's cached roster.
type Reloader interface {
	Reload(ctx context.Context, year int) ([]players.Player, error)
}

// Poller keeps a season roster warm by reloading it on an interval.
type Poller struct {
	reloader Reloader
	year     int
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the roster warmer.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// maxConsecutiveFailures is how many failed reloads in a row still count as ready.
const maxConsecutiveFailures = 2

// IsReady reports whether the season has loaded at least once and reloads are not failing repeatedly.
func (s Status) IsReady() bool {
	return !s.LastSuccess.IsZero() && s.ConsecutiveFailures <= maxConsecutiveFailures
}

// New constructs a Poller that reloads year every interval.
func New(reloader Reloader, year int, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		reloader: reloader,
		year:     year,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start loads the season once, then reloads it every interval until ctx ends or Stop is called.
// Calls after the first are no-ops.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)

	go p.loop(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	logging.Info(p.logger, "roster warmer started",
		slog.Int(logging.FieldYear, p.year),
		slog.Duration("interval", p.interval),
	)
	defer logging.Info(p.logger, "roster warmer stopped", slog.Int(logging.FieldYear, p.year))
	defer p.stopTicker()

	p.reload(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-p.ticker.C:
			p.reload(ctx)
		}
	}
}

// Stop halts the loop; it is safe to call more than once.
func (p *Poller) Stop(context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.startMu.Lock()
		p.stopTicker()
		p.startMu.Unlock()
	})
	return nil
}

func (p *Poller) reload(ctx context.Context) {
	start := time.Now()
	items, err := p.reloader.Reload(ctx, p.year)
	elapsed := time.Since(start)
	p.metrics.RecordPollerCycle(elapsed, err)
	p.record(start, err)

	if err != nil {
		logging.Error(p.logger, "roster reload failed", err,
			logging.FieldYear, p.year,
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
		return
	}
	logging.Debug(p.logger, "roster reloaded",
		logging.FieldYear, p.year,
		logging.FieldCount, len(items),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) record(at time.Time, err error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
	if err != nil {
		p.status.ConsecutiveFailures++
		p.status.LastError = err.Error()
		return
	}
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

// Status returns a copy of the current health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Year reports the season the poller keeps warm.
func (p *Poller) Year() int {
	return p.year
}
