package drill

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/drill"
	"github.com/preston-bernstein/sebango-service/internal/logging"
	"github.com/preston-bernstein/sebango-service/internal/metrics"
)

// Roster is the slice of the players service the drill needs.
type Roster interface {
	Players(ctx context.Context, year int, filter players.RoleFilter) ([]players.Player, error)
	PlayerByNumber(ctx context.Context, year int, numberDisp string) (players.Player, error)
}

// Issued is a generated question together with how it was produced.
type Issued struct {
	ID       string         `json:"id"`
	Year     int            `json:"year"`
	Mode     drill.Mode     `json:"mode"`
	Question drill.Question `json:"question"`
	Attempts int            `json:"attempts"`
	Fallback bool           `json:"fallback"`
}

// AnswerRequest identifies a previously issued question by its operands and operators.
type AnswerRequest struct {
	Players     []string            `json:"players"`
	Operators   []drill.Operator    `json:"operators"`
	NameDisplay players.NameDisplay `json:"name"`
	Answer      int                 `json:"answer"`
}

// Checked is the verdict for an AnswerRequest.
type Checked struct {
	Question drill.Question `json:"question"`
	Result   drill.Result   `json:"result"`
}

// Service issues drill questions from a season roster and judges answers.
type Service struct {
	roster  Roster
	logger  *slog.Logger
	metrics *metrics.Recorder

	// guards generator, whose random source may not be safe for concurrent use
	mu        sync.Mutex
	generator *drill.Generator
}

// NewService constructs a Service. A nil generator uses drill.NewGenerator(nil).
func NewService(roster Roster, generator *drill.Generator, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if generator == nil {
		generator = drill.NewGenerator(nil)
	}
	return &Service{
		roster:    roster,
		generator: generator,
		logger:    logger,
		metrics:   recorder,
	}
}

// NewQuestion generates a question for mode from the year's roster.
func (s *Service) NewQuestion(ctx context.Context, year int, mode drill.Mode) (Issued, error) {
	if err := mode.Validate(); err != nil {
		return Issued{}, err
	}
	all, err := s.roster.Players(ctx, year, players.FilterAll)
	if err != nil {
		return Issued{}, err
	}

	s.mu.Lock()
	q, sel, err := s.generator.Generate(all, mode)
	s.mu.Unlock()
	if err != nil {
		return Issued{}, err
	}

	s.metrics.RecordDrillQuestion(sel.Attempts, sel.Fallback)
	if sel.Fallback {
		logging.FromContext(ctx, s.logger).Info("drill question used fallback operator",
			logging.FieldYear, year,
			logging.FieldAttempts, sel.Attempts,
			logging.FieldFallback, true,
		)
	}

	return Issued{
		ID:       uuid.NewString(),
		Year:     year,
		Mode:     mode,
		Question: q,
		Attempts: sel.Attempts,
		Fallback: sel.Fallback,
	}, nil
}

// Check rebuilds the question described by req and judges req.Answer against it.
func (s *Service) Check(ctx context.Context, year int, req AnswerRequest) (Checked, error) {
	if n := len(req.Players); n < drill.MinPlayerNum || n > drill.MaxPlayerNum {
		return Checked{}, fmt.Errorf("%w: %d players", drill.ErrInvalidMode, n)
	}
	if len(req.Operators) != len(req.Players)-1 {
		return Checked{}, fmt.Errorf("%w: %d operators for %d players", drill.ErrInvalidMode, len(req.Operators), len(req.Players))
	}
	display := players.DefaultNameDisplay
	if req.NameDisplay != "" {
		parsed, ok := players.ParseNameDisplay(string(req.NameDisplay))
		if !ok {
			return Checked{}, fmt.Errorf("%w: name display %q", drill.ErrInvalidMode, string(req.NameDisplay))
		}
		display = parsed
	}

	operands := make([]players.Player, 0, len(req.Players))
	for _, number := range req.Players {
		p, err := s.roster.PlayerByNumber(ctx, year, number)
		if err != nil {
			return Checked{}, fmt.Errorf("player %q: %w", number, err)
		}
		operands = append(operands, p)
	}

	s.mu.Lock()
	q, err := s.generator.GenerateQuestionWithOperators(operands, req.Operators, display, req.Operators)
	s.mu.Unlock()
	if err != nil {
		return Checked{}, err
	}

	session := drill.NewSession()
	if err := session.Begin(q); err != nil {
		return Checked{}, err
	}
	if err := session.Answer(req.Answer); err != nil {
		return Checked{}, err
	}
	result, err := session.Submit()
	if err != nil {
		return Checked{}, err
	}

	s.metrics.RecordDrillAnswer(result.Correct)
	logging.FromContext(ctx, s.logger).Debug("drill answer checked",
		logging.FieldYear, year,
		"correct", result.Correct,
	)
	return Checked{Question: session.Question(), Result: result}, nil
}
