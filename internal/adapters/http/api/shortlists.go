package api

import (
	"net/http"

	service "github.com/okian/scoutdesk/internal/app"
)

// ShortlistsHandler handles shortlist requests.
type ShortlistsHandler struct {
	deps ShortlistDependencies
}

// NewShortlistsHandler creates a new shortlists handler.
func NewShortlistsHandler(deps ShortlistDependencies) *ShortlistsHandler {
	return &ShortlistsHandler{deps: deps}
}

// HandleList handles GET /shortlists requests.
func (h *ShortlistsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_shortlists"
	out, err := h.deps.ListShortlists(r.Context())
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /shortlists requests.
func (h *ShortlistsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_shortlist"
	var in service.ShortlistInput
	if err := decode(w, r, op, &in); err != nil {
		fail(w, r, err)
		return
	}
	sl, err := h.deps.CreateShortlist(r.Context(), in)
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, sl)
}

// HandleEntries handles GET /shortlists/{id}/players requests.
func (h *ShortlistsHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_shortlist_players"
	id, err := pathValue(r, op, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.deps.ShortlistEntries(r.Context(), id)
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleAdd handles POST /shortlists/{id}/players/{playerID} requests.
func (h *ShortlistsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_to_shortlist"
	id, playerID, err := membership(r, op)
	if err != nil {
		fail(w, r, err)
		return
	}
	e, err := h.deps.AddToShortlist(r.Context(), id, playerID)
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// HandleRemove handles DELETE /shortlists/{id}/players/{playerID} requests.
func (h *ShortlistsHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	const op = "api.remove_from_shortlist"
	id, playerID, err := membership(r, op)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := h.deps.RemoveFromShortlist(r.Context(), id, playerID); err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func membership(r *http.Request, op string) (string, string, error) {
	id, err := pathValue(r, op, "id")
	if err != nil {
		return "", "", err
	}
	playerID, err := pathValue(r, op, "playerID")
	if err != nil {
		return "", "", err
	}
	return id, playerID, nil
}
