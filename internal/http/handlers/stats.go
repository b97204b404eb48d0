package handlers

import "net/http"

// StatsSummary reports the registry size and the undisbursed escrow total.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"campaigns":        a.Ledger.Count(),
		"contract_balance": a.Ledger.Balance(),
	})
}
