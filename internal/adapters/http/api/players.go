package api

import (
	"net/http"

	service "github.com/okian/scoutdesk/internal/app"
)

// PlayersHandler handles player and scouting-list requests.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleList handles GET /players?q= requests.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_players"
	players, err := h.deps.ListPlayers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleCreate handles POST /players requests.
func (h *PlayersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_player"
	var in service.PlayerInput
	if err := decode(w, r, op, &in); err != nil {
		fail(w, r, err)
		return
	}
	p, err := h.deps.CreatePlayer(r.Context(), in)
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleGet handles GET /players/{id} requests.
func (h *PlayersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_player"
	id, err := pathValue(r, op, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	p, err := h.deps.GetPlayer(r.Context(), id)
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleMark handles POST /scouting-list/{playerID} requests.
func (h *PlayersHandler) HandleMark(w http.ResponseWriter, r *http.Request) {
	const op = "api.mark_for_scouting"
	playerID, err := pathValue(r, op, "playerID")
	if err != nil {
		fail(w, r, err)
		return
	}
	e, err := h.deps.MarkForScouting(r.Context(), playerID)
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// HandleUnmark handles DELETE /scouting-list/{playerID} requests.
func (h *PlayersHandler) HandleUnmark(w http.ResponseWriter, r *http.Request) {
	const op = "api.unmark_for_scouting"
	playerID, err := pathValue(r, op, "playerID")
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := h.deps.UnmarkForScouting(r.Context(), playerID); err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
