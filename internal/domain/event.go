package domain

import "time"

// LedgerEventKind enumerates the journal entry types.
type LedgerEventKind string

const (
	EventCampaignCreated      LedgerEventKind = "campaign_created"
	EventContributionRecorded LedgerEventKind = "contribution_recorded"
	EventCampaignFinalized    LedgerEventKind = "campaign_finalized"
	EventFundsWithdrawn       LedgerEventKind = "funds_withdrawn"
	EventRefundClaimed        LedgerEventKind = "refund_claimed"
)

// LedgerEvent is one journal entry. Every successful mutation of the
// ledger emits exactly one; replaying the journal in Seq order rebuilds
// the full ledger state. Unused fields stay zero for kinds that do not
// carry them.
type LedgerEvent struct {
	Seq         int64
	Kind        LedgerEventKind
	CampaignID  int64
	Actor       string // owner on create/withdraw, contributor on donate/refund
	Amount      int64  // donated, withdrawn, or refunded amount
	Target      int64
	Deadline    time.Time
	State       CampaignState // resulting state on finalize
	Title       string
	Description string
	Image       string
	OccurredAt  time.Time
}
