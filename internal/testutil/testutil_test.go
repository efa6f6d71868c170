package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/roster"
)

func TestFixturesHelper(t *testing.T) {
	p := SamplePlayer("00", 0, players.RoleRoster)
	if p.NumberDisp != "00" || p.Name == "" || p.NameKana == "" || p.Year != SampleYear {
		t.Fatalf("unexpected player fixture %+v", p)
	}
	items := SampleRoster()
	if got := len(players.Filter(items, players.FilterRoster)); got != 7 {
		t.Fatalf("expected 7 roster players, got %d", got)
	}
	if got := len(players.Filter(items, players.FilterAll)); got != len(items) {
		t.Fatalf("expected all players to pass FilterAll, got %d", got)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestServeJSONAndStatusError(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		_, _ = io.Copy(w, r.Body)
	})
	rr := ServeJSON(t, echo, http.MethodPost, "/echo", map[string]int{"answer": 7})
	AssertStatus(t, rr, http.StatusOK)
	var body map[string]int
	DecodeJSON(t, rr, &body)
	if body["answer"] != 7 {
		t.Fatalf("expected echoed payload, got %v", body)
	}

	rr = httptest.NewRecorder()
	rr.WriteHeader(http.StatusBadRequest)
	rr.WriteString(strings.Repeat("x", 600))
	err := statusError(rr, http.StatusOK)
	if err == nil || !strings.Contains(err.Error(), "body=") || len(err.Error()) > 400 {
		t.Fatalf("expected truncated body snippet in error, got %v", err)
	}
	if statusError(rr, http.StatusBadRequest) != nil {
		t.Fatalf("expected nil error when status matches")
	}
}

func TestStubSource(t *testing.T) {
	ctx := context.Background()
	src := NewStubSource()

	got, err := src.LoadPlayers(ctx, SampleYear)
	if err != nil || len(got) != len(SampleRoster()) {
		t.Fatalf("expected sample roster, got %d err %v", len(got), err)
	}
	if _, err := src.LoadPlayers(ctx, 1999); !errors.Is(err, roster.ErrYearNotFound) {
		t.Fatalf("expected ErrYearNotFound, got %v", err)
	}
	years, err := src.Years(ctx)
	if err != nil || len(years) != 1 || years[0] != SampleYear {
		t.Fatalf("unexpected years %v err %v", years, err)
	}

	boom := errors.New("boom")
	src.SetErr(boom)
	if _, err := src.LoadPlayers(ctx, SampleYear); !errors.Is(err, boom) {
		t.Fatalf("expected error passthrough, got %v", err)
	}
	if src.Calls() != 3 {
		t.Fatalf("expected 3 calls, got %d", src.Calls())
	}
	if roster.SourceName(src) != "stub" {
		t.Fatalf("expected stub name")
	}
}

func TestNewPlayersService(t *testing.T) {
	svc := NewPlayersService(nil)
	items, err := svc.Players(context.Background(), SampleYear, players.FilterRoster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 7 {
		t.Fatalf("expected 7 players, got %d", len(items))
	}
}

func TestWriteRoster(t *testing.T) {
	base := t.TempDir()
	path := WriteRoster(t, base, 2024, SampleRoster())
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected roster file, got %v", err)
	}
	var decoded []players.Player
	if err := json.Unmarshal(data, &decoded); err != nil || len(decoded) != len(SampleRoster()) {
		t.Fatalf("unexpected roster contents: %v", err)
	}

	got, err := roster.NewFSSource(base).LoadPlayers(context.Background(), 2024)
	if err != nil || len(got) != len(decoded) {
		t.Fatalf("expected fs source to read written roster, got %d err %v", len(got), err)
	}
}

func TestServerStubs(t *testing.T) {
	p := &StubPoller{Err: errors.New("stop")}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if start, stop := p.Calls(); start != 1 || stop != 1 {
		t.Fatalf("unexpected call counts %d/%d", start, stop)
	}
	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	if err := sh.ListenAndServe(); !errors.Is(err, sh.ListenErr) {
		t.Fatalf("expected listen error, got %v", err)
	}
	if err := sh.Shutdown(context.Background()); !errors.Is(err, sh.ShutdownErr) {
		t.Fatalf("expected shutdown error, got %v", err)
	}
	if sh.Handler() == nil || sh.Addr() == "" {
		t.Fatalf("expected default handler and addr")
	}
	if listen, shutdown := sh.Calls(); listen != 1 || shutdown != 1 {
		t.Fatalf("expected listen/shutdown calls, got %d/%d", listen, shutdown)
	}

	b := &StubHTTPServer{Block: true, AddrVal: ":1234"}
	done := make(chan error, 1)
	go func() { done <- b.ListenAndServe() }()
	if err := b.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("expected ErrServerClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("blocking server did not return after shutdown")
	}
	if b.Addr() != ":1234" {
		t.Fatalf("expected addr passthrough")
	}
	// a second shutdown must not panic on the closed channel
	_ = b.Shutdown(context.Background())
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}
