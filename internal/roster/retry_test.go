package roster

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
)

type flakySource struct {
	failures int
	err      error
	calls    int
}

func (f *flakySource) Name() string { return "flaky" }

func (f *flakySource) LoadPlayers(_ context.Context, year int) ([]players.Player, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return []players.Player{{Year: year, NumberDisp: "1", NumberCalc: 1}}, nil
}

func (f *flakySource) Years(context.Context) ([]int, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return []int{2025}, nil
}

func TestRetryingSourceRecoversFromTransientErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &flakySource{failures: 2, err: errors.New("disk busy")}
	src := NewRetryingSource(inner, logger, 3, time.Millisecond)

	items, err := src.LoadPlayers(context.Background(), 2025)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if len(items) != 1 || inner.calls != 3 {
		t.Fatalf("expected 3 calls and one player, got %d calls %d players", inner.calls, len(items))
	}
	if strings.Count(buf.String(), "roster load retry") != 2 {
		t.Fatalf("expected two retry logs, got %s", buf.String())
	}
}

func TestRetryingSourceGivesUp(t *testing.T) {
	boom := errors.New("boom")
	inner := &flakySource{failures: 10, err: boom}
	src := NewRetryingSource(inner, nil, 2, time.Millisecond)

	if _, err := src.Years(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected last error, got %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", inner.calls)
	}
}

func TestRetryingSourceDoesNotRetryMissingYear(t *testing.T) {
	inner := &flakySource{failures: 10, err: ErrYearNotFound}
	src := NewRetryingSource(inner, nil, 5, time.Millisecond)

	if _, err := src.LoadPlayers(context.Background(), 1999); !errors.Is(err, ErrYearNotFound) {
		t.Fatalf("expected ErrYearNotFound, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", inner.calls)
	}
}

func TestRetryingSourceHonorsContext(t *testing.T) {
	inner := &flakySource{failures: 10, err: errors.New("slow disk")}
	src := NewRetryingSource(inner, nil, 5, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := src.LoadPlayers(ctx, 2025); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestRetryingSourceKeepsInnerName(t *testing.T) {
	src := NewRetryingSource(&flakySource{}, nil, 0, 0)
	if got := SourceName(src); got != "flaky" {
		t.Fatalf("expected inner name, got %s", got)
	}
}
