package cleanup

import (
	"testing"
	"time"

	"cinemabackend/internal/data"
)

func TestPruneSessions(t *testing.T) {
	store, err := data.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	now := time.Now()

	stale, err := store.Sessions().Insert(data.Session{Date: now.Add(-40 * 24 * time.Hour)})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	staleWithTicket, err := store.Sessions().Insert(data.Session{Date: now.Add(-40 * 24 * time.Hour)})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	recent, err := store.Sessions().Insert(data.Session{Date: now.Add(-24 * time.Hour)})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if _, err := store.Tickets().Insert(data.Ticket{SessionID: staleWithTicket.ID}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	deleted, err := PruneSessions(store, now)
	if err != nil {
		t.Fatalf("PruneSessions failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deletion, got %d", deleted)
	}

	if _, err := store.Sessions().GetByID(stale.ID); !data.IsNotFound(err) {
		t.Errorf("Stale ticketless session should be gone, got %v", err)
	}
	if _, err := store.Sessions().GetByID(staleWithTicket.ID); err != nil {
		t.Errorf("Session with sales history must survive: %v", err)
	}
	if _, err := store.Sessions().GetByID(recent.ID); err != nil {
		t.Errorf("Recent session must survive: %v", err)
	}
}

func TestPruneSessionsCapsPerRun(t *testing.T) {
	store, err := data.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	old := time.Now().Add(-60 * 24 * time.Hour)

	for i := 0; i < maxDeletionsPerRun+5; i++ {
		if _, err := store.Sessions().Insert(data.Session{Date: old}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	deleted, err := PruneSessions(store, time.Now())
	if err != nil {
		t.Fatalf("PruneSessions failed: %v", err)
	}
	if deleted != maxDeletionsPerRun {
		t.Errorf("Expected cap of %d deletions, got %d", maxDeletionsPerRun, deleted)
	}

	remaining, err := store.Sessions().List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 5 {
		t.Errorf("Expected 5 sessions left, got %d", len(remaining))
	}
}

func TestNextRunTime(t *testing.T) {
	beforeTwo := time.Date(2026, 9, 1, 1, 0, 0, 0, time.Local)
	if got := nextRunTime(beforeTwo); got.Hour() != cleanupHour || got.Day() != 1 {
		t.Errorf("Expected same-day 2 AM run, got %v", got)
	}

	afterTwo := time.Date(2026, 9, 1, 14, 0, 0, 0, time.Local)
	if got := nextRunTime(afterTwo); got.Hour() != cleanupHour || got.Day() != 2 {
		t.Errorf("Expected next-day 2 AM run, got %v", got)
	}
}
