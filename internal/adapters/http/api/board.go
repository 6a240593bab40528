package api

import (
	"net/http"

	"github.com/okian/scoutdesk/internal/domain/board"
)

// BoardHandler serves the kanban board and scout performance.
type BoardHandler struct {
	deps BoardDependencies
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(deps BoardDependencies) *BoardHandler {
	return &BoardHandler{deps: deps}
}

// HandleBoard handles GET /board?scout_id=&q= requests.
func (h *BoardHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_board"
	q := r.URL.Query()
	view, err := h.deps.Board(r.Context(), board.Filter{
		ScoutID: q.Get("scout_id"),
		Search:  q.Get("q"),
	})
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandlePerformance handles GET /performance requests.
func (h *BoardHandler) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_performance"
	view, err := h.deps.Performance(r.Context())
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}
