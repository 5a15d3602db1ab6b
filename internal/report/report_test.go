package report

import (
	"math"
	"testing"
	"time"

	"cinemabackend/internal/data"
)

func TestBuildSummary(t *testing.T) {
	store, err := data.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	movie, err := store.Movies().Insert(data.Movie{Title: "Heat", Duration: 120})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	grid := data.Grid{}.Resize(2, 2)
	grid[1][1] = nil // 3 usable seats
	room, err := store.Rooms().Insert(data.Room{Name: "Room 1", Seats: grid})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	session, err := store.Sessions().Insert(data.Session{
		MovieID: movie.ID,
		Room:    room.ID,
		Date:    time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	empty, err := store.Sessions().Insert(data.Session{
		MovieID: movie.ID,
		Room:    room.ID,
		Date:    time.Now().Add(96 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	for i, price := range []float64{9.50, 12.00} {
		if _, err := store.Tickets().Insert(data.Ticket{
			SessionID:   session.ID,
			RoomID:      room.ID,
			MovieID:     movie.ID,
			Seat:        data.Seat{Row: 0, Col: i},
			TicketPrice: price,
			BarTotal:    5.25,
			BuyTotal:    price + 5.25,
		}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	summary, err := NewService(store).Build(Range{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if summary.TicketsSold != 2 {
		t.Errorf("Expected 2 tickets sold, got %d", summary.TicketsSold)
	}
	if math.Abs(summary.TicketRevenue-21.50) > 0.01 {
		t.Errorf("Expected ticket revenue 21.50, got %.2f", summary.TicketRevenue)
	}
	if math.Abs(summary.BarRevenue-10.50) > 0.01 {
		t.Errorf("Expected bar revenue 10.50, got %.2f", summary.BarRevenue)
	}
	if math.Abs(summary.TotalRevenue-32.00) > 0.01 {
		t.Errorf("Expected total revenue 32.00, got %.2f", summary.TotalRevenue)
	}

	if len(summary.Sessions) != 2 {
		t.Fatalf("Expected 2 session rows, got %d", len(summary.Sessions))
	}
	first := summary.Sessions[0]
	if first.SessionID != session.ID || first.TicketsSold != 2 || first.Capacity != 3 {
		t.Errorf("Unexpected session row: %+v", first)
	}
	if first.MovieTitle != "Heat" {
		t.Errorf("Expected movie title, got %q", first.MovieTitle)
	}
	second := summary.Sessions[1]
	if second.SessionID != empty.ID || second.TicketsSold != 0 || second.TotalRevenue != 0 {
		t.Errorf("Unexpected empty session row: %+v", second)
	}

	// A bounded range keeps only sessions inside it.
	from := time.Now().Add(72 * time.Hour)
	bounded, err := NewService(store).Build(Range{From: &from})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(bounded.Sessions) != 1 || bounded.Sessions[0].SessionID != empty.ID {
		t.Errorf("Expected only the later session in range, got %+v", bounded.Sessions)
	}
	if bounded.TicketsSold != 0 {
		t.Errorf("Expected no tickets in range, got %d", bounded.TicketsSold)
	}
}
