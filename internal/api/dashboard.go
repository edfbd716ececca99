package api

import "net/http"

// Dashboard handles GET /api/dashboard. The aggregator degrades to a
// fallback payload on storage failure, so this always answers 200.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.aggregator.Summary(r.Context()))
}
