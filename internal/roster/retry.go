package roster

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingSource retries transient load failures with linear backoff.
// ErrYearNotFound and context errors are returned immediately.
type retryingSource struct {
	inner       Source
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingSource wraps inner with retries. Non-positive maxAttempts or backoff use the defaults.
func NewRetryingSource(inner Source, logger *slog.Logger, maxAttempts int, backoff time.Duration) Source {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingSource{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

// Name reports the wrapped source's name so metrics stay labelled by origin.
func (r *retryingSource) Name() string { return SourceName(r.inner) }

func (r *retryingSource) LoadPlayers(ctx context.Context, year int) ([]players.Player, error) {
	var items []players.Player
	err := r.retry(ctx, "roster load", func() error {
		var err error
		items, err = r.inner.LoadPlayers(ctx, year)
		return err
	}, slog.Int(logging.FieldYear, year))
	return items, err
}

func (r *retryingSource) Years(ctx context.Context) ([]int, error) {
	var years []int
	err := r.retry(ctx, "roster years", func() error {
		var err error
		years, err = r.inner.Years(ctx)
		return err
	})
	return years, err
}

func (r *retryingSource) retry(ctx context.Context, op string, fn func() error, attrs ...any) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if permanent(lastErr) || attempt == r.maxAttempts {
			break
		}

		r.logWarn(ctx, op+" retry", append(attrs, "attempt", attempt, "max_attempts", r.maxAttempts, "error", lastErr)...)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}
	if !permanent(lastErr) {
		r.logWarn(ctx, op+" failed", append(attrs, "attempts", r.maxAttempts, "error", lastErr)...)
	}
	return lastErr
}

func permanent(err error) bool {
	return errors.Is(err, ErrYearNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (r *retryingSource) logWarn(ctx context.Context, msg string, args ...any) {
	logging.Warn(logging.FromContext(ctx, r.logger), msg, args...)
}
