package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/roster"
)

// WriteRoster writes items as the year's roster file under base, the layout roster.FSSource reads.
func WriteRoster(t *testing.T, base string, year int, items []players.Player) string {
	t.Helper()
	path := roster.PlayersPath(base, year)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create roster dir: %v", err)
	}
	b, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("failed to encode roster %d: %v", year, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("failed to write roster %d: %v", year, err)
	}
	return path
}
