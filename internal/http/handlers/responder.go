package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/drill"
	"github.com/preston-bernstein/sebango-service/internal/http/middleware"
	"github.com/preston-bernstein/sebango-service/internal/http/requestutil"
	"github.com/preston-bernstein/sebango-service/internal/lineup"
	"github.com/preston-bernstein/sebango-service/internal/logging"
	"github.com/preston-bernstein/sebango-service/internal/roster"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps service errors onto status codes. Unexpected errors are logged
// and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, roster.ErrYearNotFound):
		writeError(w, r, http.StatusNotFound, "season not found", logger)
	case errors.Is(err, players.ErrPlayerNotFound):
		writeError(w, r, http.StatusNotFound, "player not found", logger)
	case errors.Is(err, drill.ErrInsufficientPlayers):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error(), logger)
	case errors.Is(err, drill.ErrInvalidMode),
		errors.Is(err, drill.ErrInvalidOperator),
		errors.Is(err, drill.ErrNonIntegerResult),
		errors.Is(err, lineup.ErrUnencodableSlot):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	default:
		logging.Error(logger, "request failed", err)
		writeError(w, r, http.StatusInternalServerError, "internal error", logger)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
