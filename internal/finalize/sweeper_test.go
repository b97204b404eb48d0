package finalize

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/ledger"
)

func TestSweepFinalizesOverdueCampaigns(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := ledger.New(ledger.Options{Logger: zerolog.Nop(), Clock: clock})
	ctx := context.Background()

	overdueWon, err := store.CreateCampaign(ctx, "alice", "t", "d", "i", 5, now.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	overdueLost, err := store.CreateCampaign(ctx, "bob", "t", "d", "i", 5, now.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	running, err := store.CreateCampaign(ctx, "carol", "t", "d", "i", 5, now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordContribution(ctx, overdueWon, "dave", 5); err != nil {
		t.Fatal(err)
	}

	now = now.Add(10 * time.Minute)

	sweeper := NewSweeper(store, zerolog.Nop(), time.Second)
	sweeper.now = clock

	if got := sweeper.Sweep(ctx); got != 2 {
		t.Fatalf("Sweep finalized %d campaigns, want 2", got)
	}

	c, _ := store.Campaign(overdueWon)
	if c.State != domain.CampaignSuccessful {
		t.Fatalf("funded campaign state = %s, want successful", c.State)
	}
	c, _ = store.Campaign(overdueLost)
	if c.State != domain.CampaignFailed {
		t.Fatalf("unfunded campaign state = %s, want failed", c.State)
	}
	c, _ = store.Campaign(running)
	if c.State != domain.CampaignActive {
		t.Fatalf("running campaign state = %s, want active", c.State)
	}

	// A second sweep finds nothing left to settle.
	if got := sweeper.Sweep(ctx); got != 0 {
		t.Fatalf("second Sweep finalized %d campaigns, want 0", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	store := ledger.New(ledger.Options{Logger: zerolog.Nop()})
	sweeper := NewSweeper(store, zerolog.Nop(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
