package domain

import "context"

// LedgerEventRepository persists the append-only ledger journal.
type LedgerEventRepository interface {
	Append(ctx context.Context, event LedgerEvent) error
	LoadAll(ctx context.Context) ([]LedgerEvent, error)
}

// PayoutRepository records disbursements (withdrawals and refunds) for
// audit. Which kind a payout was follows from the journal.
type PayoutRepository interface {
	Record(ctx context.Context, campaignID int64, recipient string, amount int64) error
}
