package domain

import "time"

// CampaignState enumerates the escrow lifecycle states. Transitions go
// through the ledger only: Active -> Successful | Failed at finalize,
// Successful -> Withdrawn on the owner payout. Failed is permanent.
type CampaignState string

const (
	CampaignActive     CampaignState = "active"
	CampaignSuccessful CampaignState = "successful"
	CampaignFailed     CampaignState = "failed"
	CampaignWithdrawn  CampaignState = "withdrawn"
)

// Terminal reports whether the state admits no further finalize decision.
func (s CampaignState) Terminal() bool {
	return s != CampaignActive
}

// Campaign is a fundraising unit holding escrowed contributions until
// its deadline decides success or failure. Amounts are int64 minor
// units. All fields except AmountCollected and State are immutable
// after creation.
type Campaign struct {
	ID              int64
	Owner           string
	Title           string
	Description     string
	Image           string
	Target          int64
	Deadline        time.Time
	AmountCollected int64
	State           CampaignState
	CreatedAt       time.Time
}

// Contribution is one contributor's cumulative stake in a campaign,
// not an individual donation. The amount is preserved after a refund
// for auditability; Refunded marks that the payout already happened.
type Contribution struct {
	CampaignID  int64
	Contributor string
	Amount      int64
	Refunded    bool
}
