package handlers

import "net/http"

// CampaignFinalize triggers the one-time outcome decision. Deliberately
// unauthenticated: any party may settle a campaign whose deadline
// passed, so a vanished owner cannot strand escrowed funds.
func (a *App) CampaignFinalize(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	state, err := a.Ledger.Finalize(r.Context(), id)
	if err != nil {
		a.ledgerError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaign_id": id,
		"state":       string(state),
	})
}

func (a *App) CampaignWithdraw(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	caller := a.currentUserID(r)
	if err := a.Ledger.Withdraw(r.Context(), id, caller); err != nil {
		a.ledgerError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaign_id": id,
		"state":       "withdrawn",
	})
}

func (a *App) CampaignRefund(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	caller := a.currentUserID(r)
	if err := a.Ledger.ClaimRefund(r.Context(), id, caller); err != nil {
		a.ledgerError(w, err)
		return
	}
	amount, err := a.Ledger.Contribution(id, caller)
	if err != nil {
		a.ledgerError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaign_id": id,
		"contributor": caller,
		"refunded":    amount,
	})
}
