package repo

import (
	"context"
	"fmt"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// PayoutRepositoryPG records disbursements in PostgreSQL for audit.
type PayoutRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewPayoutRepository creates a new payout repo.
func NewPayoutRepository(sql infra.SQLExecutor) *PayoutRepositoryPG {
	return &PayoutRepositoryPG{sql: sql}
}

// Record inserts one payout row.
func (r *PayoutRepositoryPG) Record(ctx context.Context, campaignID int64, recipient string, amount int64) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertPayout, campaignID, recipient, amount)
	if err != nil {
		return fmt.Errorf("record payout for campaign %d: %w", campaignID, err)
	}
	return nil
}

var _ domain.PayoutRepository = (*PayoutRepositoryPG)(nil)
