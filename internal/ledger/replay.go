package ledger

import (
	"fmt"

	"server/internal/domain"
)

// Replay rebuilds the store from a journal, applying events in slice
// order without re-emitting them and without invoking any transfer.
// The store must be empty; a journal that does not describe a legal
// history is rejected with an error naming the offending event.
func (s *Store) Replay(events []domain.LedgerEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.campaigns) > 0 {
		return fmt.Errorf("replay into a non-empty ledger")
	}

	for _, ev := range events {
		if err := s.apply(ev); err != nil {
			return fmt.Errorf("replay event seq %d (%s): %w", ev.Seq, ev.Kind, err)
		}
		if ev.Seq > s.seq {
			s.seq = ev.Seq
		}
	}
	return nil
}

func (s *Store) apply(ev domain.LedgerEvent) error {
	switch ev.Kind {
	case domain.EventCampaignCreated:
		if ev.CampaignID != int64(len(s.campaigns)) {
			return fmt.Errorf("campaign id %d out of sequence", ev.CampaignID)
		}
		s.campaigns = append(s.campaigns, &domain.Campaign{
			ID:          ev.CampaignID,
			Owner:       ev.Actor,
			Title:       ev.Title,
			Description: ev.Description,
			Image:       ev.Image,
			Target:      ev.Target,
			Deadline:    ev.Deadline,
			State:       domain.CampaignActive,
			CreatedAt:   ev.OccurredAt,
		})

	case domain.EventContributionRecorded:
		c, err := s.campaign(ev.CampaignID)
		if err != nil {
			return err
		}
		s.credit(ev.CampaignID, ev.Actor, ev.Amount)
		c.AmountCollected += ev.Amount

	case domain.EventCampaignFinalized:
		c, err := s.campaign(ev.CampaignID)
		if err != nil {
			return err
		}
		if c.State != domain.CampaignActive {
			return fmt.Errorf("campaign %d finalized twice", ev.CampaignID)
		}
		if ev.State != domain.CampaignSuccessful && ev.State != domain.CampaignFailed {
			return fmt.Errorf("campaign %d finalized to %q", ev.CampaignID, ev.State)
		}
		c.State = ev.State

	case domain.EventFundsWithdrawn:
		c, err := s.campaign(ev.CampaignID)
		if err != nil {
			return err
		}
		if c.State != domain.CampaignSuccessful {
			return fmt.Errorf("withdrawal from %s campaign %d", c.State, ev.CampaignID)
		}
		c.State = domain.CampaignWithdrawn
		s.disbursed[ev.CampaignID] += ev.Amount

	case domain.EventRefundClaimed:
		c, err := s.campaign(ev.CampaignID)
		if err != nil {
			return err
		}
		if c.State != domain.CampaignFailed {
			return fmt.Errorf("refund from %s campaign %d", c.State, ev.CampaignID)
		}
		contrib := s.contributions[ev.CampaignID][ev.Actor]
		if contrib == nil || contrib.Refunded {
			return fmt.Errorf("refund for %q not owed", ev.Actor)
		}
		contrib.Refunded = true
		s.disbursed[ev.CampaignID] += ev.Amount

	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	return nil
}
