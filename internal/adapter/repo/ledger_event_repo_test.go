package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"server/internal/domain"
	"server/internal/sqlinline"
)

type execCall struct {
	query string
	args  []any
}

type fakeSQL struct {
	execs   []execCall
	rows    [][]any
	execErr error
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{query: query, args: args})
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return fakeRow{}
}

func (f *fakeSQL) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	if query != sqlinline.QSelectLedgerEvents {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	return &fakeRows{rows: f.rows}, nil
}

type fakeRow struct{}

func (fakeRow) Scan(...any) error { return pgx.ErrNoRows }

type rowsBase struct{}

func (rowsBase) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (rowsBase) Conn() *pgx.Conn                              { return nil }
func (rowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (rowsBase) Values() ([]any, error)                       { return nil, fmt.Errorf("not supported") }
func (rowsBase) RawValues() [][]byte                          { return nil }

type fakeRows struct {
	rowsBase
	rows [][]any
	idx  int
}

func (f *fakeRows) Close()     {}
func (f *fakeRows) Err() error { return nil }

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.rows[f.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan arity mismatch: %d != %d", len(dest), len(row))
	}
	for i, src := range row {
		switch d := dest[i].(type) {
		case *int64:
			*d = src.(int64)
		case *string:
			*d = src.(string)
		case *time.Time:
			*d = src.(time.Time)
		default:
			return fmt.Errorf("unsupported scan dest %T", dest[i])
		}
	}
	return nil
}

func TestAppendWritesJournalRow(t *testing.T) {
	sql := &fakeSQL{}
	events := NewLedgerEventRepository(sql)

	deadline := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	err := events.Append(context.Background(), domain.LedgerEvent{
		Seq:        1,
		Kind:       domain.EventCampaignCreated,
		CampaignID: 0,
		Actor:      "alice",
		Target:     100,
		Deadline:   deadline,
		Title:      "clean water",
		OccurredAt: deadline.Add(-30 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if len(sql.execs) != 1 {
		t.Fatalf("execs = %d, want 1", len(sql.execs))
	}
	call := sql.execs[0]
	if call.query != sqlinline.QInsertLedgerEvent {
		t.Fatalf("unexpected query: %s", call.query)
	}
	if len(call.args) != 12 {
		t.Fatalf("args = %d, want 12", len(call.args))
	}
	if call.args[0] != int64(1) || call.args[1] != "campaign_created" || call.args[3] != "alice" {
		t.Fatalf("args = %v", call.args)
	}
}

func TestAppendPropagatesError(t *testing.T) {
	sql := &fakeSQL{execErr: fmt.Errorf("connection reset")}
	events := NewLedgerEventRepository(sql)

	if err := events.Append(context.Background(), domain.LedgerEvent{Seq: 7}); err == nil {
		t.Fatal("expected append error")
	}
}

func TestLoadAllScansEvents(t *testing.T) {
	occurred := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deadline := occurred.Add(24 * time.Hour)
	sql := &fakeSQL{rows: [][]any{
		{int64(1), "campaign_created", int64(0), "alice", int64(0), int64(10), deadline, "", "t", "d", "img", occurred},
		{int64(2), "contribution_recorded", int64(0), "bob", int64(4), int64(0), time.Time{}, "", "", "", "", occurred},
		{int64(3), "campaign_finalized", int64(0), "", int64(0), int64(0), time.Time{}, "failed", "", "", "", deadline},
	}}
	events := NewLedgerEventRepository(sql)

	got, err := events.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("events = %d, want 3", len(got))
	}
	if got[0].Kind != domain.EventCampaignCreated || got[0].Actor != "alice" || got[0].Target != 10 {
		t.Fatalf("event[0] = %+v", got[0])
	}
	if got[1].Amount != 4 {
		t.Fatalf("event[1].Amount = %d, want 4", got[1].Amount)
	}
	if got[2].State != domain.CampaignFailed {
		t.Fatalf("event[2].State = %s, want failed", got[2].State)
	}
}

func TestPayoutRecord(t *testing.T) {
	sql := &fakeSQL{}
	payouts := NewPayoutRepository(sql)

	if err := payouts.Record(context.Background(), 3, "bob", 250); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(sql.execs) != 1 || sql.execs[0].query != sqlinline.QInsertPayout {
		t.Fatalf("execs = %+v", sql.execs)
	}
	if sql.execs[0].args[1] != "bob" || sql.execs[0].args[2] != int64(250) {
		t.Fatalf("args = %v", sql.execs[0].args)
	}
}
