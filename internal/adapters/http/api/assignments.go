package api

import (
	"net/http"

	service "github.com/okian/scoutdesk/internal/app"
)

// AssignmentsHandler handles assignment requests.
type AssignmentsHandler struct {
	deps AssignmentDependencies
}

// NewAssignmentsHandler creates a new assignments handler.
func NewAssignmentsHandler(deps AssignmentDependencies) *AssignmentsHandler {
	return &AssignmentsHandler{deps: deps}
}

// HandleList handles GET /assignments?scout_id= requests.
func (h *AssignmentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_assignments"
	out, err := h.deps.ListAssignments(r.Context(), r.URL.Query().Get("scout_id"))
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /assignments requests.
func (h *AssignmentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.assign_scout"
	var in service.AssignInput
	if err := decode(w, r, op, &in); err != nil {
		fail(w, r, err)
		return
	}
	a, err := h.deps.AssignScout(r.Context(), in)
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// HandleUpdate handles PATCH /assignments/{id} requests.
func (h *AssignmentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_assignment"
	id, err := pathValue(r, op, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	var in service.AssignmentPatch
	if err := decode(w, r, op, &in); err != nil {
		fail(w, r, err)
		return
	}
	a, err := h.deps.UpdateAssignment(r.Context(), id, in)
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleDelete handles DELETE /assignments/{id} requests.
func (h *AssignmentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_assignment"
	id, err := pathValue(r, op, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := h.deps.DeleteAssignment(r.Context(), id); err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
