package repo

import (
	"context"
	"fmt"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// LedgerEventRepositoryPG persists the ledger journal in PostgreSQL.
type LedgerEventRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewLedgerEventRepository creates a new journal repo.
func NewLedgerEventRepository(sql infra.SQLExecutor) *LedgerEventRepositoryPG {
	return &LedgerEventRepositoryPG{sql: sql}
}

// Append inserts one journal entry.
func (r *LedgerEventRepositoryPG) Append(ctx context.Context, ev domain.LedgerEvent) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertLedgerEvent,
		ev.Seq, string(ev.Kind), ev.CampaignID, ev.Actor, ev.Amount,
		ev.Target, ev.Deadline, string(ev.State),
		ev.Title, ev.Description, ev.Image, ev.OccurredAt)
	if err != nil {
		return fmt.Errorf("append ledger event seq %d: %w", ev.Seq, err)
	}
	return nil
}

// LoadAll returns the full journal in sequence order.
func (r *LedgerEventRepositoryPG) LoadAll(ctx context.Context) ([]domain.LedgerEvent, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectLedgerEvents)
	if err != nil {
		return nil, fmt.Errorf("load ledger events: %w", err)
	}
	defer rows.Close()

	var events []domain.LedgerEvent
	for rows.Next() {
		var ev domain.LedgerEvent
		var kind, state string
		if err := rows.Scan(&ev.Seq, &kind, &ev.CampaignID, &ev.Actor, &ev.Amount,
			&ev.Target, &ev.Deadline, &state,
			&ev.Title, &ev.Description, &ev.Image, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}
		ev.Kind = domain.LedgerEventKind(kind)
		ev.State = domain.CampaignState(state)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger events: %w", err)
	}
	return events, nil
}

var _ domain.LedgerEventRepository = (*LedgerEventRepositoryPG)(nil)
