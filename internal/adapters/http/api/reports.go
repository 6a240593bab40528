package api

import (
	"net/http"

	service "github.com/okian/scoutdesk/internal/app"
)

// ReportsHandler handles scouting report requests.
type ReportsHandler struct {
	deps ReportDependencies
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps ReportDependencies) *ReportsHandler {
	return &ReportsHandler{deps: deps}
}

// HandleList handles GET /reports?scout_id=&player_id= requests.
func (h *ReportsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_reports"
	q := r.URL.Query()
	out, err := h.deps.ListReports(r.Context(), q.Get("scout_id"), q.Get("player_id"))
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /reports requests.
func (h *ReportsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_report"
	var in service.ReportInput
	if err := decode(w, r, op, &in); err != nil {
		fail(w, r, err)
		return
	}
	rep, err := h.deps.SubmitReport(r.Context(), in)
	if err != nil {
		fail(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}
