package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/http/requestutil"
	"github.com/preston-bernstein/sebango-service/internal/logging"
)

// RosterReloader refreshes a season's cached roster from its source.
type RosterReloader interface {
	Reload(ctx context.Context, year int) ([]players.Player, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	reloader RosterReloader
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token rejects every request.
func NewAdminHandler(reloader RosterReloader, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		reloader: reloader,
		token:    token,
		logger:   logger,
	}
}

// ReloadRoster drops the cached roster for the path year and loads it again.
// Requires "Authorization: Bearer <ADMIN_TOKEN>".
func (h *AdminHandler) ReloadRoster(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.reloader == nil {
		writeError(w, r, http.StatusServiceUnavailable, "roster reload not configured", h.logger)
		return
	}

	year, ok := parseYear(w, r, h.logger)
	if !ok {
		return
	}

	logger := loggerFromContext(r, h.logger)
	items, err := h.reloader.Reload(r.Context(), year)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":    year,
		"players": len(items),
		"status":  "ok",
	}, logger)
	logging.Info(logger, "admin roster reloaded",
		slog.Int(logging.FieldYear, year),
		slog.Int(logging.FieldCount, len(items)),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := []byte(r.Header.Get("Authorization"))
	return subtle.ConstantTimeCompare(got, []byte("Bearer "+h.token)) == 1
}
