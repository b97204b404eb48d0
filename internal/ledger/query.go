package ledger

import "server/internal/domain"

// Campaign returns a copy of the campaign record.
func (s *Store) Campaign(id int64) (domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.campaign(id)
	if err != nil {
		return domain.Campaign{}, err
	}
	return *c, nil
}

// Campaigns returns a slice of campaign records in creation order,
// starting at offset and holding at most limit items. An offset at or
// past the end yields an empty slice. Donor detail is intentionally
// absent from this view.
func (s *Store) Campaigns(offset, limit int) []domain.Campaign {
	if offset < 0 || limit <= 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset >= len(s.campaigns) {
		return nil
	}
	end := offset + limit
	if end > len(s.campaigns) {
		end = len(s.campaigns)
	}
	out := make([]domain.Campaign, 0, end-offset)
	for _, c := range s.campaigns[offset:end] {
		out = append(out, *c)
	}
	return out
}

// Count returns the number of campaigns ever created.
func (s *Store) Count() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.campaigns))
}

// Contribution returns the contributor's cumulative stake in the
// campaign, zero if they never donated.
func (s *Store) Contribution(campaignID int64, contributor string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.campaign(campaignID); err != nil {
		return 0, err
	}
	contrib := s.contributions[campaignID][contributor]
	if contrib == nil {
		return 0, nil
	}
	return contrib.Amount, nil
}

// Donators returns parallel slices of contributor identities and their
// cumulative amounts, in first-donation order.
func (s *Store) Donators(campaignID int64) ([]string, []int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.campaign(campaignID); err != nil {
		return nil, nil, err
	}
	order := s.donators[campaignID]
	addresses := make([]string, 0, len(order))
	amounts := make([]int64, 0, len(order))
	for _, contributor := range order {
		addresses = append(addresses, contributor)
		amounts = append(amounts, s.contributions[campaignID][contributor].Amount)
	}
	return addresses, amounts, nil
}

// Refunded reports whether the contributor's stake in the campaign has
// already been paid back.
func (s *Store) Refunded(campaignID int64, contributor string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.campaign(campaignID); err != nil {
		return false, err
	}
	contrib := s.contributions[campaignID][contributor]
	return contrib != nil && contrib.Refunded, nil
}

// Balance returns the total undisbursed escrow across all campaigns:
// everything collected minus everything withdrawn or refunded.
func (s *Store) Balance() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, c := range s.campaigns {
		total += c.AmountCollected - s.disbursed[c.ID]
	}
	return total
}
