package server

import (
	"context"

	"github.com/preston-bernstein/sebango-service/internal/poller"
)

// Poller is the roster warmer lifecycle the server drives; its Status backs /ready.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

var _ Poller = (*poller.Poller)(nil)
