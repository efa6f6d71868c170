package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
)

// ErrYearNotFound is returned when no roster exists for the requested season.
var ErrYearNotFound = errors.New("roster year not found")

// Source loads season rosters.
type Source interface {
	LoadPlayers(ctx context.Context, year int) ([]players.Player, error)
	Years(ctx context.Context) ([]int, error)
}

// Named is implemented by sources that report a stable name for logs and metrics.
type Named interface {
	Name() string
}

// SourceName returns a lower-cased name for src, deriving it from the type when src is not Named.
func SourceName(src Source) string {
	if src == nil {
		return "none"
	}
	if n, ok := src.(Named); ok && n.Name() != "" {
		return strings.ToLower(n.Name())
	}
	return strings.ToLower(fmt.Sprintf("%T", src))
}
