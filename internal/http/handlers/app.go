package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/ledger"
	"server/internal/middleware"
)

// App bundles the dependencies the HTTP handlers need.
type App struct {
	Ledger *ledger.Store
	Logger zerolog.Logger

	PageSizeDefault int
	PageSizeMax     int
}

func NewApp(store *ledger.Store, logger zerolog.Logger, pageSizeDefault, pageSizeMax int) *App {
	if pageSizeDefault <= 0 {
		pageSizeDefault = 20
	}
	if pageSizeMax < pageSizeDefault {
		pageSizeMax = pageSizeDefault
	}
	return &App{
		Ledger:          store,
		Logger:          logger,
		PageSizeDefault: pageSizeDefault,
		PageSizeMax:     pageSizeMax,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}

// ledgerError maps a ledger failure onto the HTTP surface. Timing and
// state-transition violations are conflicts: retrying the identical
// request cannot succeed.
func (a *App) ledgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidParameters):
		a.error(w, http.StatusBadRequest, "invalid_parameters", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrCampaignNotActive):
		a.error(w, http.StatusConflict, "campaign_not_active", err.Error())
	case errors.Is(err, domain.ErrDeadlinePassed):
		a.error(w, http.StatusConflict, "deadline_passed", err.Error())
	case errors.Is(err, domain.ErrTooEarly):
		a.error(w, http.StatusConflict, "too_early", err.Error())
	case errors.Is(err, domain.ErrAlreadyFinalized):
		a.error(w, http.StatusConflict, "already_finalized", err.Error())
	case errors.Is(err, domain.ErrNotSuccessful):
		a.error(w, http.StatusConflict, "not_successful", err.Error())
	case errors.Is(err, domain.ErrNotFailed):
		a.error(w, http.StatusConflict, "not_failed", err.Error())
	case errors.Is(err, domain.ErrAlreadyWithdrawn):
		a.error(w, http.StatusConflict, "already_withdrawn", err.Error())
	case errors.Is(err, domain.ErrNothingToRefund):
		a.error(w, http.StatusConflict, "nothing_to_refund", err.Error())
	default:
		a.Logger.Error().Err(err).Msg("ledger operation failed")
		a.error(w, http.StatusInternalServerError, "internal", "operation failed")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
