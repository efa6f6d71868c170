package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRecorderTracksRosterLoadsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRosterLoad("fs", 2025, 10*time.Millisecond, nil)
	rec.RecordRosterLoad("fs", 2024, 15*time.Millisecond, errors.New("boom"))
	rec.RecordRosterLoad("fixture", 2025, time.Millisecond, nil)

	snap := rec.Snapshot("fs")
	if snap.Loads != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.LastLatency != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", snap.LastLatency)
	}
	if got := rec.Snapshot("fixture").Loads; got != 1 {
		t.Fatalf("expected 1 fixture load, got %d", got)
	}
	if got := rec.Snapshot("unknown"); got != (Snapshot{}) {
		t.Fatalf("expected zero snapshot for unknown source, got %+v", got)
	}
}

func TestRecorderTracksDrill(t *testing.T) {
	rec := NewRecorder()
	rec.RecordDrillQuestion(1, false)
	rec.RecordDrillQuestion(10, true)
	rec.RecordDrillAnswer(true)
	rec.RecordDrillAnswer(false)

	got := rec.Drill()
	want := DrillSnapshot{Questions: 2, Fallbacks: 1, Attempts: 11, Answers: 2, Correct: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestRecorderTracksLineup(t *testing.T) {
	rec := NewRecorder()
	rec.RecordLineupDecode(true, 2)
	rec.RecordLineupDecode(false, 0)

	got := rec.Lineup()
	if got.Decodes != 2 || got.Restored != 1 || got.SkippedTokens != 2 {
		t.Fatalf("unexpected lineup snapshot %+v", got)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var rec *Recorder
	rec.RecordRosterLoad("fs", 2025, time.Millisecond, nil)
	rec.RecordDrillQuestion(1, false)
	rec.RecordDrillAnswer(true)
	rec.RecordLineupDecode(true, 0)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordPollerCycle(time.Millisecond, nil)

	if rec.Snapshot("fs") != (Snapshot{}) || rec.Drill() != (DrillSnapshot{}) || rec.Lineup() != (LineupSnapshot{}) {
		t.Fatalf("expected zero snapshots from nil recorder")
	}
}

func TestRecorderConcurrentUse(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.RecordDrillQuestion(1, false)
			rec.RecordRosterLoad("fixture", 2025, time.Millisecond, nil)
		}()
	}
	wg.Wait()

	if got := rec.Drill().Questions; got != 20 {
		t.Fatalf("expected 20 questions, got %d", got)
	}
	if got := rec.Snapshot("fixture").Loads; got != 20 {
		t.Fatalf("expected 20 loads, got %d", got)
	}
}
