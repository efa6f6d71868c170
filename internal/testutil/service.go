package testutil

import (
	appplayers "github.com/preston-bernstein/sebango-service/internal/app/players"
	"github.com/preston-bernstein/sebango-service/internal/store"
)

// NewPlayersService builds a players service over src with a fresh in-memory store.
func NewPlayersService(src *StubSource) *appplayers.Service {
	if src == nil {
		src = NewStubSource()
	}
	return appplayers.NewService(store.NewMemoryStore(0), src, nil, nil)
}
