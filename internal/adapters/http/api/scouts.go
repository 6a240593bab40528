package api

import (
	"net/http"

	service "github.com/okian/scoutdesk/internal/app"
)

// ScoutsHandler handles scout profile requests.
type ScoutsHandler struct {
	deps ScoutDependencies
}

// NewScoutsHandler creates a new scouts handler.
func NewScoutsHandler(deps ScoutDependencies) *ScoutsHandler {
	return &ScoutsHandler{deps: deps}
}

// HandleList handles GET /scouts requests.
func (h *ScoutsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_scouts"
	scouts, err := h.deps.ListScouts(r.Context())
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, scouts)
}

// HandleCreate handles POST /scouts requests.
func (h *ScoutsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_scout"
	var in service.ScoutInput
	if err := decode(w, r, op, &in); err != nil {
		fail(w, r, err)
		return
	}
	sc, err := h.deps.CreateScout(r.Context(), in)
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}
