package store

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
)

// DefaultCapacity is the number of seasons kept when no capacity is given.
const DefaultCapacity = 8

type season struct {
	items    []players.Player
	byNumber map[string]players.Player
}

// MemoryStore keeps a bounded, thread-safe cache of season rosters.
// Least recently used seasons are evicted once capacity is reached.
type MemoryStore struct {
	seasons *lru.Cache[int, *season]
}

// NewMemoryStore constructs an empty MemoryStore holding up to capacity seasons.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New[int, *season](capacity)
	if err != nil {
		// only returned for a non-positive size, which is excluded above
		panic(err)
	}
	return &MemoryStore{seasons: cache}
}

// ListPlayers returns a copy of the cached roster for year.
func (s *MemoryStore) ListPlayers(year int) ([]players.Player, bool) {
	entry, ok := s.seasons.Get(year)
	if !ok {
		return nil, false
	}
	return append([]players.Player(nil), entry.items...), true
}

// GetPlayer retrieves a cached player by display number.
func (s *MemoryStore) GetPlayer(year int, numberDisp string) (players.Player, bool) {
	entry, ok := s.seasons.Get(year)
	if !ok {
		return players.Player{}, false
	}
	p, ok := entry.byNumber[numberDisp]
	return p, ok
}

// SetPlayers replaces the cached roster for year.
// When two entries share a display number the first one is indexed.
func (s *MemoryStore) SetPlayers(year int, items []players.Player) {
	entry := &season{
		items:    append([]players.Player(nil), items...),
		byNumber: make(map[string]players.Player, len(items)),
	}
	for _, p := range entry.items {
		if _, dup := entry.byNumber[p.NumberDisp]; !dup {
			entry.byNumber[p.NumberDisp] = p
		}
	}
	s.seasons.Add(year, entry)
}

// Invalidate drops the cached roster for year.
func (s *MemoryStore) Invalidate(year int) {
	s.seasons.Remove(year)
}

// Years returns the cached seasons, ascending.
func (s *MemoryStore) Years() []int {
	years := s.seasons.Keys()
	sort.Ints(years)
	return years
}
