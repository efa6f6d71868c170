package server

import (
	"log/slog"

	"github.com/preston-bernstein/sebango-service/internal/config"
	"github.com/preston-bernstein/sebango-service/internal/roster"
	"github.com/preston-bernstein/sebango-service/internal/roster/fixture"
)

func selectSource(cfg config.Config, logger *slog.Logger) roster.Source {
	switch cfg.Roster.Source {
	case config.SourceFixture, "":
		return fixture.New()
	case config.SourceFS:
		return roster.NewRetryingSource(roster.NewFSSource(cfg.Roster.DataDir), logger, 0, 0)
	default:
		if logger != nil {
			logger.Warn("unknown roster source, falling back to fixture", slog.String("source", cfg.Roster.Source))
		}
		return fixture.New()
	}
}
