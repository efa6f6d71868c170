package lineup

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/lineup"
	"github.com/preston-bernstein/sebango-service/internal/logging"
	"github.com/preston-bernstein/sebango-service/internal/metrics"
)

// Roster is the slice of the players service lineup restores need.
type Roster interface {
	Players(ctx context.Context, year int, filter players.RoleFilter) ([]players.Player, error)
}

// Restored is the outcome of decoding a shared lineup.
type Restored struct {
	Restored bool          `json:"restored"`
	Lineup   *lineup.State `json:"lineup"`
	Report   lineup.Report `json:"report"`
}

// Service restores and shares lineups against a season roster.
type Service struct {
	roster  Roster
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func NewService(roster Roster, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{roster: roster, logger: logger, metrics: recorder}
}

// Restore decodes params against the year's full roster, training players included.
// Without a lineup parameter nothing is restored and the roster is not loaded.
func (s *Service) Restore(ctx context.Context, year int, params url.Values) (Restored, error) {
	if !params.Has(lineup.ParamLineup) {
		s.metrics.RecordLineupDecode(false, 0)
		return Restored{}, nil
	}

	all, err := s.roster.Players(ctx, year, players.FilterAll)
	if err != nil {
		return Restored{}, err
	}

	state, report := lineup.DecodeWithReport(params, all)
	s.metrics.RecordLineupDecode(state != nil, report.Skipped)
	if report.Skipped > 0 || report.Missing > 0 {
		logging.FromContext(ctx, s.logger).Info("lineup restored with gaps",
			logging.FieldYear, year,
			logging.FieldCount, report.Tokens,
			logging.FieldSkipped, report.Skipped,
			"missing", report.Missing,
		)
	}
	return Restored{Restored: state != nil, Lineup: state, Report: report}, nil
}

// Share encodes state into query parameters and their rendered query string. A state with a slot
// that would not decode back is rejected with lineup.ErrUnencodableSlot.
func (s *Service) Share(state lineup.State) (url.Values, string, error) {
	params, dropped := lineup.EncodeWithReport(state)
	if dropped > 0 {
		return nil, "", fmt.Errorf("%w: %d slots", lineup.ErrUnencodableSlot, dropped)
	}
	return params, lineup.QueryString(params), nil
}
