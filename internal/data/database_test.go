package data

import (
	"path/filepath"
	"testing"
	"time"
)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cinema.db"))
	if err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteTicketRoundTrip(t *testing.T) {
	store := newSQLiteTestStore(t)

	inserted, err := store.Tickets().Insert(Ticket{
		MovieID:   1,
		SessionID: 1,
		RoomID:    1,
		UserID:    GuestUserID,
		Seat:      Seat{Row: 2, Col: 3},
		BarItems: []BarItem{
			{ID: 1, Name: "Popcorn", Price: 5.25, Quantity: 2},
		},
		TicketPrice:   9.50,
		BarTotal:      10.50,
		BuyTotal:      20.00,
		PaymentMethod: "card",
		Reference:     "ref-123",
		DateTime:      time.Now().Truncate(time.Second),
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if inserted.ID == 0 {
		t.Error("Expected a ticket id to be assigned")
	}

	loaded, err := store.Tickets().GetByID(inserted.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if loaded.Seat.Key() != "2-3" {
		t.Errorf("Expected seat 2-3, got %s", loaded.Seat.Key())
	}
	if len(loaded.BarItems) != 1 || loaded.BarItems[0].Name != "Popcorn" {
		t.Errorf("Bar items did not survive the round trip: %+v", loaded.BarItems)
	}
	if loaded.Reference != "ref-123" {
		t.Errorf("Expected reference ref-123, got %q", loaded.Reference)
	}
}

// The unique seat index is what closes the double-booking race in strict
// mode: the second insert for the same session and seat must fail as a
// conflict no matter what the callers observed beforehand.
func TestSQLiteSeatUniqueness(t *testing.T) {
	store := newSQLiteTestStore(t)

	first := Ticket{
		SessionID: 7,
		Seat:      Seat{Row: 0, Col: 0},
		Reference: "ref-1",
		DateTime:  time.Now(),
	}
	if _, err := store.Tickets().Insert(first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	second := first
	second.Reference = "ref-2"
	if _, err := store.Tickets().Insert(second); !IsConflict(err) {
		t.Errorf("Expected conflict for double-sold seat, got %v", err)
	}

	// Same seat in another session is fine.
	third := first
	third.SessionID = 8
	third.Reference = "ref-3"
	if _, err := store.Tickets().Insert(third); err != nil {
		t.Errorf("Same seat in another session should insert, got %v", err)
	}
}

func TestSQLiteSessionDateRoundTrip(t *testing.T) {
	store := newSQLiteTestStore(t)

	date := time.Date(2026, 9, 10, 20, 0, 0, 0, time.UTC)
	inserted, err := store.Sessions().Insert(Session{MovieID: 1, Room: 1, Date: date, Language: "EN"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	loaded, err := store.Sessions().GetByID(inserted.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !loaded.Date.Equal(date) {
		t.Errorf("Expected date %v, got %v", date, loaded.Date)
	}
}

func TestSQLiteSettingsUpsert(t *testing.T) {
	store := newSQLiteTestStore(t)

	settings, err := store.Settings().Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if settings.MaxCancelDays != DefaultSettings().MaxCancelDays {
		t.Errorf("Expected defaults, got %+v", settings)
	}

	for _, days := range []int{4, 6} {
		if err := store.Settings().Put(Settings{MaxCancelDays: days}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		settings, err = store.Settings().Get()
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if settings.MaxCancelDays != days {
			t.Errorf("Expected %d, got %d", days, settings.MaxCancelDays)
		}
	}
}

func TestSQLiteRoomGridRoundTrip(t *testing.T) {
	store := newSQLiteTestStore(t)

	grid := Grid{}.Resize(2, 2)
	grid[0][0] = nil
	grid[1][1] = &SeatCell{Type: SeatAccessibility}

	inserted, err := store.Rooms().Insert(Room{Name: "IMAX", SoundType: "atmos", Seats: grid})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	loaded, err := store.Rooms().GetByID(inserted.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if loaded.Seats.SeatAt(0, 0) != nil {
		t.Error("Expected nil cell to survive the round trip")
	}
	if cell := loaded.Seats.SeatAt(1, 1); cell == nil || cell.Type != SeatAccessibility {
		t.Errorf("Expected accessibility seat, got %+v", cell)
	}
}
