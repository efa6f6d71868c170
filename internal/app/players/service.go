package players

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/logging"
	"github.com/preston-bernstein/sebango-service/internal/metrics"
	"github.com/preston-bernstein/sebango-service/internal/roster"
)

// Store defines the contract for caching season rosters.
type Store interface {
	ListPlayers(year int) ([]players.Player, bool)
	GetPlayer(year int, numberDisp string) (players.Player, bool)
	SetPlayers(year int, items []players.Player)
	Invalidate(year int)
}

// Service serves season rosters, loading them from a Source on cache miss.
type Service struct {
	store      Store
	source     roster.Source
	sourceName string
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// NewService constructs a Service. logger and recorder may be nil.
func NewService(store Store, source roster.Source, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		store:      store,
		source:     source,
		sourceName: roster.SourceName(source),
		logger:     logger,
		metrics:    recorder,
	}
}

// Players returns the year's players allowed by filter, ordered by calculation number then display number.
func (s *Service) Players(ctx context.Context, year int, filter players.RoleFilter) ([]players.Player, error) {
	items, err := s.roster(ctx, year)
	if err != nil {
		return nil, err
	}
	out := players.Filter(items, filter)
	sortPlayers(out)
	return out, nil
}

// PlayerByNumber returns the player wearing numberDisp in year.
func (s *Service) PlayerByNumber(ctx context.Context, year int, numberDisp string) (players.Player, error) {
	if p, ok := s.store.GetPlayer(year, numberDisp); ok {
		return p, nil
	}
	items, err := s.roster(ctx, year)
	if err != nil {
		return players.Player{}, err
	}
	for _, p := range items {
		if p.NumberDisp == numberDisp {
			return p, nil
		}
	}
	return players.Player{}, players.ErrPlayerNotFound
}

// PlayersByCalcNumber returns everyone in year, staff included, whose calculation number is n.
// "0" and "00" both count as 0.
func (s *Service) PlayersByCalcNumber(ctx context.Context, year, n int) ([]players.Player, error) {
	items, err := s.roster(ctx, year)
	if err != nil {
		return nil, err
	}
	out := make([]players.Player, 0, 2)
	for _, p := range items {
		if p.NumberCalc == n {
			out = append(out, p)
		}
	}
	sortPlayers(out)
	return out, nil
}

// Years lists the seasons the source can serve.
func (s *Service) Years(ctx context.Context) ([]int, error) {
	return s.source.Years(ctx)
}

// Reload fetches year from the source and replaces the cached copy.
// A failed fetch keeps the cached copy, except when the source no longer has the year.
func (s *Service) Reload(ctx context.Context, year int) ([]players.Player, error) {
	return s.fetch(ctx, year)
}

func (s *Service) roster(ctx context.Context, year int) ([]players.Player, error) {
	if items, ok := s.store.ListPlayers(year); ok {
		return items, nil
	}
	return s.fetch(ctx, year)
}

func (s *Service) fetch(ctx context.Context, year int) ([]players.Player, error) {
	start := time.Now()
	items, err := s.source.LoadPlayers(ctx, year)
	elapsed := time.Since(start)
	s.metrics.RecordRosterLoad(s.sourceName, year, elapsed, err)
	if err != nil {
		if errors.Is(err, roster.ErrYearNotFound) {
			s.store.Invalidate(year)
		}
		logging.Warn(s.logger, "roster load failed",
			logging.FieldSource, s.sourceName,
			logging.FieldYear, year,
			"error", err,
		)
		return nil, err
	}

	s.store.SetPlayers(year, items)
	logging.Info(s.logger, "roster loaded",
		logging.FieldSource, s.sourceName,
		logging.FieldYear, year,
		logging.FieldCount, len(items),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return append([]players.Player(nil), items...), nil
}

func sortPlayers(items []players.Player) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].NumberCalc != items[j].NumberCalc {
			return items[i].NumberCalc < items[j].NumberCalc
		}
		return items[i].NumberDisp < items[j].NumberDisp
	})
}
