package handlers

import "net/http"

// Health reports liveness. The campaign count doubles as a readiness
// signal that the journal replay completed at boot.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"campaigns": a.Ledger.Count(),
	})
}
