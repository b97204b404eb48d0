// Package custody connects the ledger's escrow hooks to persistence:
// the journal sink writes every ledger event to the event repository,
// and the transferer records each disbursement before handing it to the
// external settlement layer.
package custody

import (
	"context"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// JournalSink appends ledger events to the journal. Append failures are
// logged but never fail the mutation: the serialized in-memory ledger
// is authoritative, the journal is durability and audit.
type JournalSink struct {
	events domain.LedgerEventRepository
	log    zerolog.Logger
}

func NewJournalSink(events domain.LedgerEventRepository, log zerolog.Logger) *JournalSink {
	return &JournalSink{events: events, log: log}
}

func (s *JournalSink) Emit(ctx context.Context, ev domain.LedgerEvent) {
	if err := s.events.Append(ctx, ev); err != nil {
		s.log.Error().Err(err).Int64("seq", ev.Seq).Str("kind", string(ev.Kind)).Msg("journal append failed")
	}
}

// AuditTransferer fulfils ledger payouts by recording them. Actual
// settlement (transaction submission, gas) belongs to the external
// layer; a recording failure aborts the payout so the ledger rolls the
// state change back.
type AuditTransferer struct {
	payouts domain.PayoutRepository
	log     zerolog.Logger
}

func NewAuditTransferer(payouts domain.PayoutRepository, log zerolog.Logger) *AuditTransferer {
	return &AuditTransferer{payouts: payouts, log: log}
}

func (t *AuditTransferer) Transfer(ctx context.Context, campaignID int64, recipient string, amount int64) error {
	if err := t.payouts.Record(ctx, campaignID, recipient, amount); err != nil {
		return err
	}
	t.log.Info().Int64("campaign_id", campaignID).Str("recipient", recipient).Int64("amount", amount).Msg("payout handed to settlement")
	return nil
}
