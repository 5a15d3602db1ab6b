package room

import (
	"strings"
	"testing"
	"time"

	"cinemabackend/internal/data"
)

func newTestService(t *testing.T) (*Service, data.Store) {
	t.Helper()
	store, err := data.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	return NewService(store), store
}

func TestCreateRoomWithDefaultGrid(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(CreateInput{Name: "Main Hall", Rows: 4, Cols: 6})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(created.Seats) != 4 || len(created.Seats[0]) != 6 {
		t.Errorf("Expected 4x6 grid, got %dx%d", len(created.Seats), len(created.Seats[0]))
	}
	for _, row := range created.Seats {
		for _, cell := range row {
			if cell == nil || cell.Type != data.SeatNormal {
				t.Fatalf("Expected all normal seats in default grid, got %+v", cell)
			}
		}
	}
}

func TestCreateRoomNameTooLong(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(CreateInput{Name: strings.Repeat("x", 26), Rows: 2, Cols: 2})
	if !data.IsValidation(err) {
		t.Errorf("Expected validation error for 26-char name, got %v", err)
	}
}

func TestCreateRoomDuplicateName(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(CreateInput{Name: "IMAX", Rows: 2, Cols: 2}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Case-insensitive match.
	_, err := svc.Create(CreateInput{Name: "imax", Rows: 2, Cols: 2})
	if !data.IsConflict(err) {
		t.Errorf("Expected conflict for duplicate name, got %v", err)
	}
}

func TestCreateRoomRaggedGrid(t *testing.T) {
	svc, _ := newTestService(t)

	ragged := data.Grid{
		{{Type: data.SeatNormal}, {Type: data.SeatNormal}},
		{{Type: data.SeatNormal}},
	}
	_, err := svc.Create(CreateInput{Name: "Ragged", Seats: ragged})
	if !data.IsValidation(err) {
		t.Errorf("Expected validation error for ragged grid, got %v", err)
	}
}

func TestResizePreservesSurvivingCells(t *testing.T) {
	svc, _ := newTestService(t)

	grid := data.Grid{}.Resize(2, 2)
	grid[0][1] = &data.SeatCell{Type: data.SeatAccessibility}
	grid[1][0] = nil // aisle

	created, err := svc.Create(CreateInput{Name: "Small", Seats: grid})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	resized, err := svc.Resize(created.ID, 3, 3)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	if cell := resized.Seats.SeatAt(0, 1); cell == nil || cell.Type != data.SeatAccessibility {
		t.Errorf("Accessibility seat should survive resize, got %+v", cell)
	}
	if cell := resized.Seats.SeatAt(1, 0); cell != nil {
		t.Errorf("Aisle cell should survive resize, got %+v", cell)
	}
	if cell := resized.Seats.SeatAt(2, 2); cell == nil || cell.Type != data.SeatNormal {
		t.Errorf("New cells should default to normal seats, got %+v", cell)
	}
}

func TestResizeShrinksGrid(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(CreateInput{Name: "Shrink", Rows: 4, Cols: 4})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	resized, err := svc.Resize(created.ID, 2, 2)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if len(resized.Seats) != 2 || len(resized.Seats[0]) != 2 {
		t.Errorf("Expected 2x2 grid, got %dx%d", len(resized.Seats), len(resized.Seats[0]))
	}
	if cell := resized.Seats.SeatAt(3, 3); cell != nil {
		t.Errorf("Out-of-range cell should be gone, got %+v", cell)
	}
}

func TestDeleteRoomWithUpcomingSession(t *testing.T) {
	svc, store := newTestService(t)

	created, err := svc.Create(CreateInput{Name: "Busy", Rows: 2, Cols: 2})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Sessions().Insert(data.Session{
		Room: created.ID,
		Date: time.Now().Add(48 * time.Hour),
	}); err != nil {
		t.Fatalf("Failed to seed session: %v", err)
	}

	if err := svc.Delete(created.ID); !data.IsConflict(err) {
		t.Errorf("Expected conflict deleting a room with upcoming sessions, got %v", err)
	}
}

func TestDeleteRoomWithTickets(t *testing.T) {
	svc, store := newTestService(t)

	created, err := svc.Create(CreateInput{Name: "Sold", Rows: 2, Cols: 2})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Tickets().Insert(data.Ticket{
		RoomID: created.ID,
		Seat:   data.Seat{Row: 0, Col: 0},
	}); err != nil {
		t.Fatalf("Failed to seed ticket: %v", err)
	}

	if err := svc.Delete(created.ID); !data.IsConflict(err) {
		t.Errorf("Expected conflict deleting a room with tickets, got %v", err)
	}
}

func TestDeleteUnreferencedRoom(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(CreateInput{Name: "Empty", Rows: 2, Cols: 2})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(created.ID); !data.IsNotFound(err) {
		t.Errorf("Expected room to be gone, got %v", err)
	}
}
