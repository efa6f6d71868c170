package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	loads       int
	errors      int
	lastLatency time.Duration
}

// Recorder keeps in-memory counters for roster loads, drill questions and lineup decodes,
// and forwards every event to OpenTelemetry when configured. A nil Recorder is a no-op.
type Recorder struct {
	mu     sync.Mutex
	stats  map[string]*sourceStats
	drill  DrillSnapshot
	lineup LineupSnapshot
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*sourceStats),
		otel:  otel,
	}
}

// RecordRosterLoad counts a roster load from source and stores its latency.
func (r *Recorder) RecordRosterLoad(source string, year int, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[source]
	if !ok {
		stats = &sourceStats{}
		r.stats[source] = stats
	}
	stats.loads++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRosterLoad(source, year, duration, err)
	}
}

// RecordDrillQuestion counts a generated question and how many selection attempts it took.
func (r *Recorder) RecordDrillQuestion(attempts int, fallback bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.drill.Questions++
	r.drill.Attempts += attempts
	if fallback {
		r.drill.Fallbacks++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDrillQuestion(attempts, fallback)
	}
}

// RecordDrillAnswer counts a judged answer.
func (r *Recorder) RecordDrillAnswer(correct bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.drill.Answers++
	if correct {
		r.drill.Correct++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDrillAnswer(correct)
	}
}

// RecordLineupDecode counts a lineup restore attempt and the tokens it had to skip.
func (r *Recorder) RecordLineupDecode(restored bool, skipped int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.lineup.Decodes++
	if restored {
		r.lineup.Restored++
	}
	r.lineup.SkippedTokens += skipped
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLineupDecode(restored, skipped)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// Snapshot is a copy of the roster load stats for one source.
type Snapshot struct {
	Loads       int
	Errors      int
	LastLatency time.Duration
}

// DrillSnapshot is a copy of the drill counters.
type DrillSnapshot struct {
	Questions int
	Fallbacks int
	Attempts  int
	Answers   int
	Correct   int
}

// LineupSnapshot is a copy of the lineup counters.
type LineupSnapshot struct {
	Decodes       int
	Restored      int
	SkippedTokens int
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Loads:       stats.loads,
		Errors:      stats.errors,
		LastLatency: stats.lastLatency,
	}
}

func (r *Recorder) Drill() DrillSnapshot {
	if r == nil {
		return DrillSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drill
}

func (r *Recorder) Lineup() LineupSnapshot {
	if r == nil {
		return LineupSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lineup
}
