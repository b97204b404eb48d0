// Package finalize runs the deadline sweeper: a poll loop that settles
// campaigns whose deadline has elapsed by calling the ledger's ordinary
// finalize operation. Finalize is caller-agnostic, so the sweeper is
// just a caller that never forgets.
package finalize

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/ledger"
)

const scanPageSize = 200

// Sweeper periodically finalizes overdue campaigns.
type Sweeper struct {
	store    *ledger.Store
	log      zerolog.Logger
	interval time.Duration
	now      func() time.Time
}

func NewSweeper(store *ledger.Store, log zerolog.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Sweeper{store: store, log: log, interval: interval, now: time.Now}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("finalize sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("finalize sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep finalizes every Active campaign whose deadline has passed and
// returns how many transitions it made. Races with manual finalize
// calls are benign: losing just means ErrAlreadyFinalized, which the
// sweeper ignores.
func (s *Sweeper) Sweep(ctx context.Context) int {
	var finalized int
	for offset := 0; ; offset += scanPageSize {
		page := s.store.Campaigns(offset, scanPageSize)
		if len(page) == 0 {
			return finalized
		}
		for _, c := range page {
			if c.State != domain.CampaignActive || s.now().Before(c.Deadline) {
				continue
			}
			state, err := s.store.Finalize(ctx, c.ID)
			switch {
			case err == nil:
				finalized++
				s.log.Info().Int64("campaign_id", c.ID).Str("state", string(state)).Msg("campaign settled by sweeper")
			case errors.Is(err, domain.ErrAlreadyFinalized), errors.Is(err, domain.ErrTooEarly):
				// lost a race, nothing to do
			default:
				s.log.Error().Err(err).Int64("campaign_id", c.ID).Msg("sweep finalize failed")
			}
		}
	}
}
