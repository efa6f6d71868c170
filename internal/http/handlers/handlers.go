package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	appdrill "github.com/preston-bernstein/sebango-service/internal/app/drill"
	applineup "github.com/preston-bernstein/sebango-service/internal/app/lineup"
	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/drill"
	"github.com/preston-bernstein/sebango-service/internal/lineup"
	"github.com/preston-bernstein/sebango-service/internal/poller"
)

const maxBodyBytes = 64 << 10

// PlayerService is what the directory endpoints need from the players service.
type PlayerService interface {
	Players(ctx context.Context, year int, filter players.RoleFilter) ([]players.Player, error)
	PlayerByNumber(ctx context.Context, year int, numberDisp string) (players.Player, error)
	PlayersByCalcNumber(ctx context.Context, year, n int) ([]players.Player, error)
	Years(ctx context.Context) ([]int, error)
}

// DrillService issues and checks drill questions.
type DrillService interface {
	NewQuestion(ctx context.Context, year int, mode drill.Mode) (appdrill.Issued, error)
	Check(ctx context.Context, year int, req appdrill.AnswerRequest) (appdrill.Checked, error)
}

// LineupService restores and shares lineups.
type LineupService interface {
	Restore(ctx context.Context, year int, params url.Values) (applineup.Restored, error)
	Share(state lineup.State) (url.Values, string, error)
}

// Handler wires HTTP routes to the application services.
type Handler struct {
	players  PlayerService
	drill    DrillService
	lineup   LineupService
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the service is always ready.
func NewHandler(ps PlayerService, ds DrillService, ls LineupService, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		players:  ps,
		drill:    ds,
		lineup:   ls,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// NotFound answers unknown routes with the JSON error body.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}

// Years lists the seasons with a roster.
func (h *Handler) Years(w http.ResponseWriter, r *http.Request) {
	years, err := h.players.Years(r.Context())
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"years": years}, h.logger)
}

// playerView is a Player plus its name rendered for the requested display mode.
type playerView struct {
	players.Player
	DisplayName string `json:"displayName"`
}

func viewPlayers(items []players.Player, display players.NameDisplay) []playerView {
	out := make([]playerView, len(items))
	for i, p := range items {
		out[i] = playerView{Player: p, DisplayName: players.FormatName(p, display)}
	}
	return out
}

// Players lists a season's directory, roster players only unless role=all.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r, h.logger)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter, ok := h.roleFilter(w, r, q.Get("role"))
	if !ok {
		return
	}
	display, ok := h.nameDisplay(w, r, q.Get("name"))
	if !ok {
		return
	}

	items, err := h.players.Players(r.Context(), year, filter)
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":    year,
		"players": viewPlayers(items, display),
	}, h.logger)
}

// Player returns one player by display number ("0" and "00" are distinct).
func (h *Handler) Player(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r, h.logger)
	if !ok {
		return
	}
	number, err := url.PathUnescape(chi.URLParam(r, "number"))
	if err != nil || number == "" || strings.ContainsAny(number, " \t/") {
		writeError(w, r, http.StatusBadRequest, "invalid player number", h.logger)
		return
	}
	display, ok := h.nameDisplay(w, r, r.URL.Query().Get("name"))
	if !ok {
		return
	}

	p, err := h.players.PlayerByNumber(r.Context(), year, number)
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, playerView{Player: p, DisplayName: players.FormatName(p, display)}, h.logger)
}

// Numbers returns everyone whose calculation number is calc, for the uniform-number counter.
func (h *Handler) Numbers(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r, h.logger)
	if !ok {
		return
	}
	calc, err := strconv.Atoi(chi.URLParam(r, "calc"))
	if err != nil || calc < 0 {
		writeError(w, r, http.StatusBadRequest, "invalid number", h.logger)
		return
	}
	display, ok := h.nameDisplay(w, r, r.URL.Query().Get("name"))
	if !ok {
		return
	}

	items, err := h.players.PlayersByCalcNumber(r.Context(), year, calc)
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":    year,
		"number":  calc,
		"players": viewPlayers(items, display),
	}, h.logger)
}

// questionView is an issued question with the answer withheld. Operands are identified by
// display number so the answer endpoint can rebuild the question.
type questionView struct {
	ID               string           `json:"id"`
	Year             int              `json:"year"`
	Mode             drill.Mode       `json:"mode"`
	Players          []string         `json:"players"`
	Operators        []drill.Operator `json:"operators"`
	QuestionSentence string           `json:"questionSentence"`
	Attempts         int              `json:"attempts"`
	Fallback         bool             `json:"fallback"`
}

// Drill issues a question. Query: role=roster|all, count=2..4, ops=add,sub,..., name=kanji|kana|both.
func (h *Handler) Drill(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r, h.logger)
	if !ok {
		return
	}
	mode, ok := h.drillMode(w, r)
	if !ok {
		return
	}

	issued, err := h.drill.NewQuestion(r.Context(), year, mode)
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	numbers := make([]string, len(issued.Question.Players))
	for i, p := range issued.Question.Players {
		numbers[i] = p.NumberDisp
	}
	writeJSON(w, http.StatusOK, questionView{
		ID:               issued.ID,
		Year:             issued.Year,
		Mode:             issued.Mode,
		Players:          numbers,
		Operators:        issued.Question.Operators,
		QuestionSentence: issued.Question.QuestionSentence,
		Attempts:         issued.Attempts,
		Fallback:         issued.Fallback,
	}, h.logger)
}

// DrillAnswer judges an answer for the question described in the body.
func (h *Handler) DrillAnswer(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r, h.logger)
	if !ok {
		return
	}
	var req appdrill.AnswerRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	checked, err := h.drill.Check(r.Context(), year, req)
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, checked, h.logger)
}

// Lineup restores a shared lineup from its query parameters.
func (h *Handler) Lineup(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r, h.logger)
	if !ok {
		return
	}
	restored, err := h.lineup.Restore(r.Context(), year, r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, restored, h.logger)
}

// ShareLineup encodes a lineup state into share parameters.
func (h *Handler) ShareLineup(w http.ResponseWriter, r *http.Request) {
	if _, ok := parseYear(w, r, h.logger); !ok {
		return
	}
	var state lineup.State
	if !h.decodeBody(w, r, &state) {
		return
	}

	params, query, err := h.lineup.Share(state)
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":  query,
		"params": params,
	}, h.logger)
}

func parseYear(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid year", logger)
		return 0, false
	}
	return year, true
}

func (h *Handler) roleFilter(w http.ResponseWriter, r *http.Request, raw string) (players.RoleFilter, bool) {
	if raw == "" {
		return players.FilterRoster, true
	}
	f := players.RoleFilter(raw)
	if !f.Valid() {
		writeError(w, r, http.StatusBadRequest, "invalid role (expected roster or all)", h.logger)
		return "", false
	}
	return f, true
}

func (h *Handler) nameDisplay(w http.ResponseWriter, r *http.Request, raw string) (players.NameDisplay, bool) {
	display, ok := players.ParseNameDisplay(raw)
	if raw != "" && !ok {
		writeError(w, r, http.StatusBadRequest, "invalid name display (expected kanji, kana or both)", h.logger)
		return "", false
	}
	return display, true
}

func (h *Handler) drillMode(w http.ResponseWriter, r *http.Request) (drill.Mode, bool) {
	q := r.URL.Query()
	mode := drill.DefaultMode()

	var ok bool
	if mode.Role, ok = h.roleFilter(w, r, q.Get("role")); !ok {
		return mode, false
	}
	if mode.NameDisplay, ok = h.nameDisplay(w, r, q.Get("name")); !ok {
		return mode, false
	}
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid count", h.logger)
			return mode, false
		}
		mode.PlayerNum = n
	}
	if raw := q.Get("ops"); raw != "" {
		ops, err := drill.ParseOperators(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
			return mode, false
		}
		mode.Operators = ops
	}
	if err := mode.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return mode, false
	}
	return mode, true
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return false
	}
	return true
}
