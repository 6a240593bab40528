// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/scoutdesk/internal/app"
	"github.com/okian/scoutdesk/internal/domain/board"
	"github.com/okian/scoutdesk/internal/domain/dedupe"
	"github.com/okian/scoutdesk/internal/domain/model"
	"github.com/okian/scoutdesk/internal/domain/types"
	"github.com/okian/scoutdesk/pkg/logger"
)

const maxBodyBytes = 1 << 20

// BoardDependencies serves the read models.
type BoardDependencies interface {
	Board(ctx context.Context, f board.Filter) (types.BoardView, error)
	Performance(ctx context.Context) (types.PerformanceView, error)
}

// PlayerDependencies covers players and the scouting list.
type PlayerDependencies interface {
	CreatePlayer(ctx context.Context, in service.PlayerInput) (model.Player, error)
	GetPlayer(ctx context.Context, id string) (model.Player, error)
	ListPlayers(ctx context.Context, search string) ([]model.Player, error)
	MarkForScouting(ctx context.Context, playerID string) (model.ShortlistEntry, error)
	UnmarkForScouting(ctx context.Context, playerID string) error
}

// ScoutDependencies covers scout profiles.
type ScoutDependencies interface {
	CreateScout(ctx context.Context, in service.ScoutInput) (model.Scout, error)
	ListScouts(ctx context.Context) ([]model.Scout, error)
}

// AssignmentDependencies covers assignment writes and listing.
type AssignmentDependencies interface {
	AssignScout(ctx context.Context, in service.AssignInput) (model.Assignment, error)
	UpdateAssignment(ctx context.Context, id string, in service.AssignmentPatch) (model.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error
	ListAssignments(ctx context.Context, scoutID string) ([]model.Assignment, error)
}

// ReportDependencies covers scouting reports.
type ReportDependencies interface {
	SubmitReport(ctx context.Context, in service.ReportInput) (model.Report, error)
	ListReports(ctx context.Context, scoutID, playerID string) ([]model.Report, error)
}

// ShortlistDependencies covers user shortlists.
type ShortlistDependencies interface {
	CreateShortlist(ctx context.Context, in service.ShortlistInput) (model.Shortlist, error)
	ListShortlists(ctx context.Context) ([]model.Shortlist, error)
	ShortlistEntries(ctx context.Context, shortlistID string) ([]model.ShortlistEntry, error)
	AddToShortlist(ctx context.Context, shortlistID, playerID string) (model.ShortlistEntry, error)
	RemoveFromShortlist(ctx context.Context, shortlistID, playerID string) error
}

// IdempotencyDependencies tracks Idempotency-Key headers from first use
// until the guarded write succeeds or fails.
type IdempotencyDependencies interface {
	ClaimIdempotencyKey(ctx context.Context, key string) dedupe.State
	CompleteIdempotencyKey(ctx context.Context, key string)
	ReleaseIdempotencyKey(ctx context.Context, key string)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	BoardDependencies
	PlayerDependencies
	ScoutDependencies
	AssignmentDependencies
	ReportDependencies
	ShortlistDependencies
	IdempotencyDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	boardHandler      *BoardHandler
	playersHandler    *PlayersHandler
	scoutsHandler     *ScoutsHandler
	assignmentHandler *AssignmentsHandler
	reportsHandler    *ReportsHandler
	shortlistsHandler *ShortlistsHandler
	idempotency       IdempotencyDependencies
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		boardHandler:      NewBoardHandler(deps),
		playersHandler:    NewPlayersHandler(deps),
		scoutsHandler:     NewScoutsHandler(deps),
		assignmentHandler: NewAssignmentsHandler(deps),
		reportsHandler:    NewReportsHandler(deps),
		shortlistsHandler: NewShortlistsHandler(deps),
		idempotency:       deps,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	write := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return MetricsMiddleware(Idempotent(s.idempotency, h), endpoint)
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /board", MetricsMiddleware(s.boardHandler.HandleBoard, "board"))
	mux.HandleFunc("GET /performance", MetricsMiddleware(s.boardHandler.HandlePerformance, "performance"))

	mux.HandleFunc("GET /players", MetricsMiddleware(s.playersHandler.HandleList, "players"))
	mux.HandleFunc("POST /players", write(s.playersHandler.HandleCreate, "players"))
	mux.HandleFunc("GET /players/{id}", MetricsMiddleware(s.playersHandler.HandleGet, "player"))

	mux.HandleFunc("GET /scouts", MetricsMiddleware(s.scoutsHandler.HandleList, "scouts"))
	mux.HandleFunc("POST /scouts", write(s.scoutsHandler.HandleCreate, "scouts"))

	mux.HandleFunc("GET /assignments", MetricsMiddleware(s.assignmentHandler.HandleList, "assignments"))
	mux.HandleFunc("POST /assignments", write(s.assignmentHandler.HandleCreate, "assignments"))
	mux.HandleFunc("PATCH /assignments/{id}", write(s.assignmentHandler.HandleUpdate, "assignment"))
	mux.HandleFunc("DELETE /assignments/{id}", MetricsMiddleware(s.assignmentHandler.HandleDelete, "assignment"))

	mux.HandleFunc("GET /reports", MetricsMiddleware(s.reportsHandler.HandleList, "reports"))
	mux.HandleFunc("POST /reports", write(s.reportsHandler.HandleCreate, "reports"))

	mux.HandleFunc("GET /shortlists", MetricsMiddleware(s.shortlistsHandler.HandleList, "shortlists"))
	mux.HandleFunc("POST /shortlists", write(s.shortlistsHandler.HandleCreate, "shortlists"))
	mux.HandleFunc("GET /shortlists/{id}/players", MetricsMiddleware(s.shortlistsHandler.HandleEntries, "shortlist_players"))
	mux.HandleFunc("POST /shortlists/{id}/players/{playerID}", write(s.shortlistsHandler.HandleAdd, "shortlist_players"))
	mux.HandleFunc("DELETE /shortlists/{id}/players/{playerID}", MetricsMiddleware(s.shortlistsHandler.HandleRemove, "shortlist_players"))

	mux.HandleFunc("POST /scouting-list/{playerID}", write(s.playersHandler.HandleMark, "scouting_list"))
	mux.HandleFunc("DELETE /scouting-list/{playerID}", MetricsMiddleware(s.playersHandler.HandleUnmark, "scouting_list"))
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail maps err onto a status code by its sentinel kind.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrMissingPath), errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		logger.Get().Error(r.Context(), "request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// decode reads a JSON request body into v.
func decode(w http.ResponseWriter, r *http.Request, op string, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return wrapKind(op, ErrBadRequest, err)
	}
	return nil
}

// pathValue returns the named wildcard or an ErrMissingPath error.
func pathValue(r *http.Request, op, name string) (string, error) {
	v := r.PathValue(name)
	if v == "" {
		return "", wrapKind(op, ErrMissingPath, errors.New(name))
	}
	return v, nil
}
