package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/roster"
)

// StubSource is an in-memory roster.Source.
type StubSource struct {
	mu    sync.Mutex
	Data  map[int][]players.Player
	Err   error
	calls int
}

// NewStubSource serves SampleRoster for SampleYear.
func NewStubSource() *StubSource {
	return &StubSource{Data: map[int][]players.Player{SampleYear: SampleRoster()}}
}

func (s *StubSource) Name() string { return "stub" }

func (s *StubSource) LoadPlayers(ctx context.Context, year int) ([]players.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return nil, s.Err
	}
	items, ok := s.Data[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", roster.ErrYearNotFound, year)
	}
	return append([]players.Player(nil), items...), nil
}

func (s *StubSource) Years(context.Context) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	years := make([]int, 0, len(s.Data))
	for y := range s.Data {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

// SetErr makes subsequent calls fail with err (nil clears it).
func (s *StubSource) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}

// Calls reports how many LoadPlayers calls reached the source.
func (s *StubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
