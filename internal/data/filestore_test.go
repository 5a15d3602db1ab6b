package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	return store, dir
}

func TestInsertAssignsMonotonicIDs(t *testing.T) {
	store, _ := newTestStore(t)

	for i, title := range []string{"Heat", "Alien", "Ran"} {
		movie, err := store.Movies().Insert(Movie{Title: title, Duration: 100})
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if movie.ID != i+1 {
			t.Errorf("Expected id %d, got %d", i+1, movie.ID)
		}
	}

	// Deleting a middle record must not disturb the max+1 rule.
	if err := store.Movies().Delete(2); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	movie, err := store.Movies().Insert(Movie{Title: "Stalker", Duration: 160})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if movie.ID != 4 {
		t.Errorf("Expected id 4 after deleting id 2, got %d", movie.ID)
	}
}

func TestMissingFileIsEmptyCollection(t *testing.T) {
	store, _ := newTestStore(t)

	rooms, err := store.Rooms().List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("Expected empty collection, got %d rooms", len(rooms))
	}
}

func TestMalformedTicketFileDegradesToEmpty(t *testing.T) {
	store, dir := newTestStore(t)

	garbage := []byte(`{"not": "an array"`)
	if err := os.WriteFile(filepath.Join(dir, "tickets.json"), garbage, 0664); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "log.json"), garbage, 0664); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tickets, err := store.Tickets().List()
	if err != nil {
		t.Fatalf("Tickets should tolerate malformed JSON, got %v", err)
	}
	if len(tickets) != 0 {
		t.Errorf("Expected empty ticket collection, got %d", len(tickets))
	}

	entries, err := store.Logs().List()
	if err != nil {
		t.Fatalf("Audit log should tolerate malformed JSON, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty audit log, got %d", len(entries))
	}
}

func TestMalformedStrictFileFails(t *testing.T) {
	store, dir := newTestStore(t)

	garbage := []byte(`{"not": "an array"`)
	if err := os.WriteFile(filepath.Join(dir, "rooms.json"), garbage, 0664); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := store.Rooms().List()
	if !IsPersistence(err) {
		t.Errorf("Expected persistence error for malformed rooms.json, got %v", err)
	}
}

func TestUpdateUnknownRecord(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Movies().Update(Movie{ID: 42, Title: "Ghost"}); !IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
	if err := store.Movies().Delete(42); !IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestTicketsListBySession(t *testing.T) {
	store, _ := newTestStore(t)

	for _, sessionID := range []int{1, 1, 2} {
		if _, err := store.Tickets().Insert(Ticket{
			SessionID: sessionID,
			Seat:      Seat{Row: 0, Col: sessionID},
			DateTime:  time.Now(),
		}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	tickets, err := store.Tickets().ListBySession(1)
	if err != nil {
		t.Fatalf("ListBySession failed: %v", err)
	}
	if len(tickets) != 2 {
		t.Errorf("Expected 2 tickets in session 1, got %d", len(tickets))
	}
}

func TestSettingsDefaults(t *testing.T) {
	store, _ := newTestStore(t)

	settings, err := store.Settings().Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if settings.MaxCancelDays != DefaultSettings().MaxCancelDays {
		t.Errorf("Expected default settings, got %+v", settings)
	}

	if err := store.Settings().Put(Settings{MaxCancelDays: 7}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	settings, err = store.Settings().Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if settings.MaxCancelDays != 7 {
		t.Errorf("Expected 7, got %d", settings.MaxCancelDays)
	}
}

func TestUserGetByEmailCaseInsensitive(t *testing.T) {
	store, _ := newTestStore(t)

	inserted, err := store.Users().Insert(User{Name: "Ada", Email: "Ada@Example.com", Role: "customer"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	found, err := store.Users().GetByEmail("ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.ID != inserted.ID {
		t.Errorf("Expected user %d, got %d", inserted.ID, found.ID)
	}
}

func TestRoomGridRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	grid := Grid{}.Resize(2, 3)
	grid[0][1] = nil
	grid[1][2] = &SeatCell{Type: SeatAccessibility}

	inserted, err := store.Rooms().Insert(Room{Name: "Mixed", Seats: grid})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	loaded, err := store.Rooms().GetByID(inserted.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if loaded.Seats.SeatAt(0, 1) != nil {
		t.Error("Expected nil cell to survive the round trip")
	}
	if cell := loaded.Seats.SeatAt(1, 2); cell == nil || cell.Type != SeatAccessibility {
		t.Errorf("Expected accessibility seat, got %+v", cell)
	}
}
