package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	appdrill "github.com/preston-bernstein/sebango-service/internal/app/drill"
	applineup "github.com/preston-bernstein/sebango-service/internal/app/lineup"
	appplayers "github.com/preston-bernstein/sebango-service/internal/app/players"
	"github.com/preston-bernstein/sebango-service/internal/drill"
	"github.com/preston-bernstein/sebango-service/internal/http/handlers"
	"github.com/preston-bernstein/sebango-service/internal/http/requestutil"
	"github.com/preston-bernstein/sebango-service/internal/metrics"
	"github.com/preston-bernstein/sebango-service/internal/store"
	"github.com/preston-bernstein/sebango-service/internal/testutil"
)

func newRouter(t testing.TB, token string) (http.Handler, *metrics.Recorder) {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	ps := appplayers.NewService(store.NewMemoryStore(0), testutil.NewStubSource(), logger, rec)
	ds := appdrill.NewService(ps, drill.NewGenerator(drill.NewSeededSource(1)), logger, rec)
	ls := applineup.NewService(ps, logger, rec)
	h := handlers.NewHandler(ps, ds, ls, logger, nil)
	var admin *handlers.AdminHandler
	if token != "" {
		admin = handlers.NewAdminHandler(ps, token, logger)
	}
	return NewRouter(h, admin, logger, rec), rec
}

func TestRouterServesDirectory(t *testing.T) {
	router, rec := newRouter(t, "")
	rr := testutil.Serve(router, http.MethodGet, "/years/2025/players/00", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	if rr.Header().Get(requestutil.HeaderRequestID) == "" {
		t.Fatalf("expected request id header")
	}
	if got := rec.Snapshot("stub"); got.Loads != 1 {
		t.Fatalf("expected one roster load, got %+v", got)
	}
}

func TestRouterEchoesRequestIDInErrors(t *testing.T) {
	router, _ := newRouter(t, "")
	req := httptest.NewRequest(http.MethodGet, "/years/1999/players", nil)
	req.Header.Set(requestutil.HeaderRequestID, "req-42")
	rr := testutil.ServeRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusNotFound)
	if rr.Header().Get(requestutil.HeaderRequestID) != "req-42" {
		t.Fatalf("expected request id echoed in header")
	}
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["requestId"] != "req-42" || body["error"] != "season not found" {
		t.Fatalf("unexpected error body %v", body)
	}
}

func TestRouterUnknownRouteAndMethod(t *testing.T) {
	router, _ := newRouter(t, "")
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/schedule", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodPut, "/years/2025/lineup", nil), http.StatusMethodNotAllowed)
}

func TestRouterDrillRoundTrip(t *testing.T) {
	router, rec := newRouter(t, "")
	rr := testutil.Serve(router, http.MethodGet, "/years/2025/drill?count=2&ops=add", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var issued struct {
		Players   []string `json:"players"`
		Operators []string `json:"operators"`
	}
	testutil.DecodeJSON(t, rr, &issued)
	if len(issued.Players) != 2 || len(issued.Operators) != 1 || issued.Operators[0] != "add" {
		t.Fatalf("unexpected question %+v", issued)
	}

	answer := map[string]any{"players": issued.Players, "operators": issued.Operators, "answer": -1}
	rr = testutil.ServeJSON(t, router, http.MethodPost, "/years/2025/drill/answer", answer)
	testutil.AssertStatus(t, rr, http.StatusOK)

	d := rec.Drill()
	if d.Questions != 1 || d.Answers != 1 || d.Correct != 0 {
		t.Fatalf("unexpected drill metrics %+v", d)
	}
}

func TestRouterLineupMetrics(t *testing.T) {
	router, rec := newRouter(t, "")
	rr := testutil.Serve(router, http.MethodGet, "/years/2025/lineup?lineup=1c00.2f1", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rec.Lineup(); got.Decodes != 1 || got.Restored != 1 {
		t.Fatalf("unexpected lineup metrics %+v", got)
	}
}

func TestRouterAdminMountedOnlyWithToken(t *testing.T) {
	router, _ := newRouter(t, "")
	rr := testutil.Serve(router, http.MethodPost, "/admin/rosters/2025/reload", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	router, _ = newRouter(t, "secret")
	req := httptest.NewRequest(http.MethodPost, "/admin/rosters/2025/reload", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), http.StatusOK)
}
