package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
)

// FSSource loads rosters from static JSON files.
type FSSource struct {
	basePath string
}

// NewFSSource constructs a filesystem source rooted at basePath.
func NewFSSource(basePath string) *FSSource {
	return &FSSource{basePath: basePath}
}

// Name implements Named.
func (s *FSSource) Name() string { return "fs" }

// LoadPlayers reads {basePath}/players/{year}.json, a JSON array of players.
// Entries without a year inherit the file's year.
func (s *FSSource) LoadPlayers(ctx context.Context, year int) ([]players.Player, error) {
	if s == nil {
		return nil, errors.New("roster source not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := PlayersPath(s.basePath, year)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %d", ErrYearNotFound, year)
		}
		return nil, err
	}
	defer f.Close()

	var items []players.Player
	if err := json.NewDecoder(f).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for i := range items {
		if items[i].Year == 0 {
			items[i].Year = year
		}
	}
	return items, nil
}

// Years lists the seasons that have a roster file, ascending.
func (s *FSSource) Years(ctx context.Context) ([]int, error) {
	if s == nil {
		return nil, errors.New("roster source not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.basePath, playersDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []int{}, nil
		}
		return nil, err
	}
	years := make([]int, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}
