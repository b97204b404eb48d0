package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type donationRequest struct {
	Amount int64 `json:"amount"`
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	contributor := a.currentUserID(r)
	total, err := a.Ledger.RecordContribution(r.Context(), id, contributor, req.Amount)
	if err != nil {
		a.ledgerError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"campaign_id": id,
		"contributor": contributor,
		"total":       total,
	})
}

func (a *App) DonatorsList(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	addresses, amounts, err := a.Ledger.Donators(id)
	if err != nil {
		a.ledgerError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"addresses": addresses,
		"amounts":   amounts,
	})
}

func (a *App) ContributionGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	donor := chi.URLParam(r, "donor")
	amount, err := a.Ledger.Contribution(id, donor)
	if err != nil {
		a.ledgerError(w, err)
		return
	}
	refunded, err := a.Ledger.Refunded(id, donor)
	if err != nil {
		a.ledgerError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaign_id": id,
		"contributor": donor,
		"amount":      amount,
		"refunded":    refunded,
	})
}
