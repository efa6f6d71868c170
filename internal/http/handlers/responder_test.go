package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/drill"
	"github.com/preston-bernstein/sebango-service/internal/lineup"
	"github.com/preston-bernstein/sebango-service/internal/logging"
	"github.com/preston-bernstein/sebango-service/internal/roster"
	"github.com/preston-bernstein/sebango-service/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()

	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteErrorOmitsMissingRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusBadRequest, "bad", nil)
	if strings.Contains(rr.Body.String(), "requestId") {
		t.Fatalf("expected no requestId field, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestWriteServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("load: %w", roster.ErrYearNotFound), http.StatusNotFound},
		{players.ErrPlayerNotFound, http.StatusNotFound},
		{&drill.InsufficientPlayersError{Need: 4, Have: 1}, http.StatusUnprocessableEntity},
		{drill.ErrInvalidMode, http.StatusBadRequest},
		{drill.ErrInvalidOperator, http.StatusBadRequest},
		{drill.ErrNonIntegerResult, http.StatusBadRequest},
		{fmt.Errorf("%w: 1 slots", lineup.ErrUnencodableSlot), http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		logger, buf := testutil.NewBufferLogger()
		rr := httptest.NewRecorder()
		writeServiceError(rr, httptest.NewRequest(http.MethodGet, "/", nil), tc.err, logger)
		if rr.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, rr.Code)
		}
		logged := strings.Contains(buf.String(), "request failed")
		if logged != (tc.want == http.StatusInternalServerError) {
			t.Fatalf("%v: unexpected logging state %v", tc.err, logged)
		}
	}
}

func TestLoggerFromContextPrefersRequestLogger(t *testing.T) {
	fallback, _ := testutil.NewBufferLogger()
	if loggerFromContext(nil, fallback) != fallback {
		t.Fatalf("expected fallback for nil request")
	}
	scoped, _ := testutil.NewBufferLogger()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logging.WithLogger(context.Background(), scoped))
	if loggerFromContext(req, fallback) != scoped {
		t.Fatalf("expected request-scoped logger")
	}
}
