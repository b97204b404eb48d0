package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// Transferer moves escrowed funds to a recipient. Implementations hand
// the payout to the external settlement layer; the ledger only cares
// whether the hand-off succeeded.
type Transferer interface {
	Transfer(ctx context.Context, campaignID int64, recipient string, amount int64) error
}

// EventSink receives every journal event the ledger emits, in order.
type EventSink interface {
	Emit(ctx context.Context, event domain.LedgerEvent)
}

type discardSink struct{}

func (discardSink) Emit(context.Context, domain.LedgerEvent) {}

// Options configures a Store. Zero fields fall back to defaults:
// time.Now, a no-op transferer, and a discarding event sink.
type Options struct {
	Logger   zerolog.Logger
	Clock    func() time.Time
	Transfer Transferer
	Sink     EventSink
}

type noopTransferer struct{}

func (noopTransferer) Transfer(context.Context, int64, string, int64) error { return nil }

// Store is the fund-custody ledger: campaign registry, per-contributor
// donation ledger, escrow state machine, and payout bookkeeping, all
// behind one mutex so every mutation runs as an atomic unit. Reads take
// the read lock and always observe a consistent snapshot.
//
// The only external call made during a mutation is Transferer.Transfer,
// and it runs after the state flip with the mutex released: a payout
// callback that re-enters the store observes the terminal state and is
// rejected instead of double-spending.
type Store struct {
	mu       sync.RWMutex
	log      zerolog.Logger
	now      func() time.Time
	transfer Transferer
	sink     EventSink

	campaigns     []*domain.Campaign
	contributions map[int64]map[string]*domain.Contribution
	donators      map[int64][]string // insertion order per campaign
	disbursed     map[int64]int64
	seq           int64
}

// New builds an empty ledger store.
func New(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Transfer == nil {
		opts.Transfer = noopTransferer{}
	}
	if opts.Sink == nil {
		opts.Sink = discardSink{}
	}
	return &Store{
		log:           opts.Logger,
		now:           opts.Clock,
		transfer:      opts.Transfer,
		sink:          opts.Sink,
		contributions: make(map[int64]map[string]*domain.Contribution),
		donators:      make(map[int64][]string),
		disbursed:     make(map[int64]int64),
	}
}

// CreateCampaign registers a new campaign and returns its sequential id.
func (s *Store) CreateCampaign(ctx context.Context, owner, title, description, image string, target int64, deadline time.Time) (int64, error) {
	if owner == "" {
		return 0, fmt.Errorf("owner is required: %w", domain.ErrInvalidParameters)
	}
	if target <= 0 {
		return 0, fmt.Errorf("target must be positive: %w", domain.ErrInvalidParameters)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !deadline.After(now) {
		return 0, fmt.Errorf("deadline must be in the future: %w", domain.ErrInvalidParameters)
	}

	c := &domain.Campaign{
		ID:          int64(len(s.campaigns)),
		Owner:       owner,
		Title:       title,
		Description: description,
		Image:       image,
		Target:      target,
		Deadline:    deadline,
		State:       domain.CampaignActive,
		CreatedAt:   now,
	}
	s.campaigns = append(s.campaigns, c)

	s.emit(ctx, domain.LedgerEvent{
		Kind:        domain.EventCampaignCreated,
		CampaignID:  c.ID,
		Actor:       owner,
		Target:      target,
		Deadline:    deadline,
		Title:       title,
		Description: description,
		Image:       image,
	})
	s.log.Info().Int64("campaign_id", c.ID).Str("owner", owner).Int64("target", target).Msg("campaign created")
	return c.ID, nil
}

// RecordContribution adds amount to the contributor's cumulative stake
// and to the campaign total, returning the new cumulative stake. The
// deadline, not the finalize call, decides eligibility: contributions
// at or past the deadline are rejected even before anyone finalizes.
func (s *Store) RecordContribution(ctx context.Context, campaignID int64, contributor string, amount int64) (int64, error) {
	if contributor == "" {
		return 0, fmt.Errorf("contributor is required: %w", domain.ErrInvalidParameters)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive: %w", domain.ErrInvalidParameters)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.campaign(campaignID)
	if err != nil {
		return 0, err
	}
	if c.State != domain.CampaignActive {
		return 0, fmt.Errorf("campaign %d is %s: %w", campaignID, c.State, domain.ErrCampaignNotActive)
	}
	if !s.now().Before(c.Deadline) {
		return 0, fmt.Errorf("campaign %d closed at %s: %w", campaignID, c.Deadline.Format(time.RFC3339), domain.ErrDeadlinePassed)
	}

	total := s.credit(campaignID, contributor, amount)
	c.AmountCollected += amount

	s.emit(ctx, domain.LedgerEvent{
		Kind:       domain.EventContributionRecorded,
		CampaignID: campaignID,
		Actor:      contributor,
		Amount:     amount,
	})
	s.log.Info().Int64("campaign_id", campaignID).Str("contributor", contributor).Int64("amount", amount).Msg("contribution recorded")
	return total, nil
}

// Finalize decides a campaign's outcome once its deadline has elapsed:
// Successful when the collected amount reached the target, Failed
// otherwise. The transition happens exactly once and is irreversible;
// any caller may trigger it.
func (s *Store) Finalize(ctx context.Context, campaignID int64) (domain.CampaignState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.campaign(campaignID)
	if err != nil {
		return "", err
	}
	if c.State != domain.CampaignActive {
		return "", fmt.Errorf("campaign %d already %s: %w", campaignID, c.State, domain.ErrAlreadyFinalized)
	}
	if s.now().Before(c.Deadline) {
		return "", fmt.Errorf("campaign %d runs until %s: %w", campaignID, c.Deadline.Format(time.RFC3339), domain.ErrTooEarly)
	}

	if c.AmountCollected >= c.Target {
		c.State = domain.CampaignSuccessful
	} else {
		c.State = domain.CampaignFailed
	}

	s.emit(ctx, domain.LedgerEvent{
		Kind:       domain.EventCampaignFinalized,
		CampaignID: campaignID,
		State:      c.State,
	})
	s.log.Info().Int64("campaign_id", campaignID).Str("state", string(c.State)).Int64("collected", c.AmountCollected).Int64("target", c.Target).Msg("campaign finalized")
	return c.State, nil
}

// Withdraw pays the full collected amount to the campaign owner. The
// state flips to Withdrawn before the transfer runs, so a re-entrant
// call issued from inside the transfer fails with ErrAlreadyWithdrawn.
// A failed transfer rolls the state back and leaves the ledger as if
// the call never happened.
func (s *Store) Withdraw(ctx context.Context, campaignID int64, caller string) error {
	s.mu.Lock()
	c, err := s.campaign(campaignID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if caller != c.Owner {
		s.mu.Unlock()
		return fmt.Errorf("caller %q is not the owner of campaign %d: %w", caller, campaignID, domain.ErrUnauthorized)
	}
	if c.State == domain.CampaignWithdrawn {
		s.mu.Unlock()
		return fmt.Errorf("campaign %d: %w", campaignID, domain.ErrAlreadyWithdrawn)
	}
	if c.State != domain.CampaignSuccessful {
		s.mu.Unlock()
		return fmt.Errorf("campaign %d is %s: %w", campaignID, c.State, domain.ErrNotSuccessful)
	}

	c.State = domain.CampaignWithdrawn
	amount := c.AmountCollected
	owner := c.Owner
	s.mu.Unlock()

	if err := s.transfer.Transfer(ctx, campaignID, owner, amount); err != nil {
		s.mu.Lock()
		c.State = domain.CampaignSuccessful
		s.mu.Unlock()
		return fmt.Errorf("withdraw campaign %d: %w", campaignID, err)
	}

	s.mu.Lock()
	s.disbursed[campaignID] += amount
	s.emit(ctx, domain.LedgerEvent{
		Kind:       domain.EventFundsWithdrawn,
		CampaignID: campaignID,
		Actor:      owner,
		Amount:     amount,
	})
	s.mu.Unlock()
	s.log.Info().Int64("campaign_id", campaignID).Str("owner", owner).Int64("amount", amount).Msg("funds withdrawn")
	return nil
}

// ClaimRefund pays the caller back their exact cumulative contribution
// to a Failed campaign, at most once. The refunded marker is set before
// the transfer runs, closing the same re-entry window as Withdraw, and
// is cleared again if the transfer fails.
func (s *Store) ClaimRefund(ctx context.Context, campaignID int64, caller string) error {
	s.mu.Lock()
	c, err := s.campaign(campaignID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if c.State != domain.CampaignFailed {
		s.mu.Unlock()
		return fmt.Errorf("campaign %d is %s: %w", campaignID, c.State, domain.ErrNotFailed)
	}
	contrib := s.contributions[campaignID][caller]
	if contrib == nil || contrib.Amount == 0 || contrib.Refunded {
		s.mu.Unlock()
		return fmt.Errorf("campaign %d, contributor %q: %w", campaignID, caller, domain.ErrNothingToRefund)
	}

	contrib.Refunded = true
	amount := contrib.Amount
	s.mu.Unlock()

	if err := s.transfer.Transfer(ctx, campaignID, caller, amount); err != nil {
		s.mu.Lock()
		contrib.Refunded = false
		s.mu.Unlock()
		return fmt.Errorf("refund campaign %d to %q: %w", campaignID, caller, err)
	}

	s.mu.Lock()
	s.disbursed[campaignID] += amount
	s.emit(ctx, domain.LedgerEvent{
		Kind:       domain.EventRefundClaimed,
		CampaignID: campaignID,
		Actor:      caller,
		Amount:     amount,
	})
	s.mu.Unlock()
	s.log.Info().Int64("campaign_id", campaignID).Str("contributor", caller).Int64("amount", amount).Msg("refund claimed")
	return nil
}

// campaign returns the mutable record. Callers must hold the lock.
func (s *Store) campaign(id int64) (*domain.Campaign, error) {
	if id < 0 || id >= int64(len(s.campaigns)) {
		return nil, fmt.Errorf("campaign %d: %w", id, domain.ErrNotFound)
	}
	return s.campaigns[id], nil
}

// credit adds to a contributor's cumulative stake. Callers must hold the lock.
func (s *Store) credit(campaignID int64, contributor string, amount int64) int64 {
	byContributor, ok := s.contributions[campaignID]
	if !ok {
		byContributor = make(map[string]*domain.Contribution)
		s.contributions[campaignID] = byContributor
	}
	contrib, ok := byContributor[contributor]
	if !ok {
		contrib = &domain.Contribution{CampaignID: campaignID, Contributor: contributor}
		byContributor[contributor] = contrib
		s.donators[campaignID] = append(s.donators[campaignID], contributor)
	}
	contrib.Amount += amount
	return contrib.Amount
}

// emit assigns the next journal sequence number and hands the event to
// the sink. Callers must hold the lock so the sink sees events in the
// same order the mutations were applied.
func (s *Store) emit(ctx context.Context, ev domain.LedgerEvent) {
	s.seq++
	ev.Seq = s.seq
	ev.OccurredAt = s.now()
	s.sink.Emit(ctx, ev)
}
