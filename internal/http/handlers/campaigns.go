package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
)

type createCampaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Target      int64  `json:"target"`
	Deadline    string `json:"deadline"` // RFC3339
}

type campaignResponse struct {
	ID              int64  `json:"id"`
	Owner           string `json:"owner"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Image           string `json:"image"`
	Target          int64  `json:"target"`
	Deadline        string `json:"deadline"`
	AmountCollected int64  `json:"amount_collected"`
	State           string `json:"state"`
	CreatedAt       string `json:"created_at"`
}

func toCampaignResponse(c domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:              c.ID,
		Owner:           c.Owner,
		Title:           c.Title,
		Description:     c.Description,
		Image:           c.Image,
		Target:          c.Target,
		Deadline:        c.Deadline.UTC().Format(time.RFC3339),
		AmountCollected: c.AmountCollected,
		State:           string(c.State),
		CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_parameters", "deadline must be RFC3339")
		return
	}

	owner := a.currentUserID(r)
	id, err := a.Ledger.CreateCampaign(r.Context(), owner, req.Title, req.Description, req.Image, req.Target, deadline)
	if err != nil {
		a.ledgerError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": id})
}

// CampaignsList serves the paginated bulk view. Donor detail is kept
// out of this view; it is available on the single-campaign endpoint.
func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		a.error(w, http.StatusBadRequest, "invalid_parameters", "offset must be a non-negative integer")
		return
	}
	limit, err := queryInt(r, "limit", a.PageSizeDefault)
	if err != nil || limit <= 0 {
		a.error(w, http.StatusBadRequest, "invalid_parameters", "limit must be a positive integer")
		return
	}
	if limit > a.PageSizeMax {
		limit = a.PageSizeMax
	}

	campaigns := a.Ledger.Campaigns(offset, limit)
	items := make([]campaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, toCampaignResponse(c))
	}
	a.json(w, http.StatusOK, map[string]any{
		"items": items,
		"count": a.Ledger.Count(),
	})
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	c, err := a.Ledger.Campaign(id)
	if err != nil {
		a.ledgerError(w, err)
		return
	}
	addresses, amounts, err := a.Ledger.Donators(id)
	if err != nil {
		a.ledgerError(w, err)
		return
	}

	resp := struct {
		campaignResponse
		Donators []string `json:"donators"`
		Amounts  []int64  `json:"amounts"`
	}{
		campaignResponse: toCampaignResponse(c),
		Donators:         addresses,
		Amounts:          amounts,
	}
	a.json(w, http.StatusOK, resp)
}

func (a *App) campaignID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		a.error(w, http.StatusBadRequest, "invalid_parameters", "campaign id must be a non-negative integer")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
