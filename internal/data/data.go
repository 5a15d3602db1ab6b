package data

import (
	"fmt"
	"strings"
	"time"
)

const TimeFormat = time.RFC3339

// Seat type identifiers for grid cells.
const (
	SeatNormal        = "normal"
	SeatAccessibility = "accessibility"
)

// Sentinel user id for purchases without an account.
const GuestUserID = 0

// SeatCell is a single position in a room grid. A nil cell means the
// position holds no seat (aisle, gap, removed seat).
type SeatCell struct {
	Type string `json:"type"`
}

// Grid is a rectangular seat layout: rows of cells, all rows equal length.
type Grid [][]*SeatCell

// Validate checks rectangularity and cell types.
func (g Grid) Validate() error {
	if len(g) == 0 {
		return Validationf("seat grid must have at least one row")
	}
	width := len(g[0])
	if width == 0 {
		return Validationf("seat grid rows must have at least one column")
	}
	for i, row := range g {
		if len(row) != width {
			return Validationf("seat grid row %d has %d cells, expected %d", i, len(row), width)
		}
		for j, cell := range row {
			if cell == nil {
				continue
			}
			if cell.Type != SeatNormal && cell.Type != SeatAccessibility {
				return Validationf("seat grid cell %d-%d has unknown type %q", i, j, cell.Type)
			}
		}
	}
	return nil
}

// SeatAt returns the cell at the given position, or nil if the position is
// outside the grid or holds no seat.
func (g Grid) SeatAt(row, col int) *SeatCell {
	if row < 0 || row >= len(g) {
		return nil
	}
	if col < 0 || col >= len(g[row]) {
		return nil
	}
	return g[row][col]
}

// Resize returns a copy of the grid with the given dimensions. Cells whose
// indices survive the resize keep their assignment; new cells default to a
// normal seat.
func (g Grid) Resize(rows, cols int) Grid {
	out := make(Grid, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]*SeatCell, cols)
		for j := 0; j < cols; j++ {
			if i < len(g) && j < len(g[i]) {
				out[i][j] = g[i][j]
			} else {
				out[i][j] = &SeatCell{Type: SeatNormal}
			}
		}
	}
	return out
}

type Room struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	SoundType string `json:"soundType"`
	VideoType string `json:"videoType"`
	Seats     Grid   `json:"seats"`
}

type Movie struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"` // minutes
	Image    string `json:"image,omitempty"`
}

type Session struct {
	ID       int       `json:"id"`
	MovieID  int       `json:"movieId"`
	Room     int       `json:"room"`
	Date     time.Time `json:"date"`
	Language string    `json:"language"`
}

// Seat addresses one grid position on a ticket.
type Seat struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Key returns the "row-col" occupancy set key for the seat.
func (s Seat) Key() string {
	return fmt.Sprintf("%d-%d", s.Row, s.Col)
}

// BarItem is a concession product attached to a ticket, with the quantity
// and unit price captured at purchase time.
type BarItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Ticket struct {
	ID            int       `json:"id"`
	MovieID       int       `json:"movie_id"`
	SessionID     int       `json:"session_id"`
	RoomID        int       `json:"room_id"`
	UserID        int       `json:"user_id"`
	Seat          Seat      `json:"seat"`
	BarItems      []BarItem `json:"bar_items"`
	TicketPrice   float64   `json:"ticket_price"`
	BarTotal      float64   `json:"bar_total"`
	BuyTotal      float64   `json:"buy_total"`
	PaymentMethod string    `json:"payment_method"`
	PaymentInfo   string    `json:"payment_info,omitempty"`
	Reference     string    `json:"reference"`
	DateTime      time.Time `json:"datetime"`
}

type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
	Image string  `json:"image,omitempty"`
}

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Settings holds the mutable global configuration.
type Settings struct {
	MaxCancelDays int `json:"max_cancel_days"`
}

// DefaultSettings applies when no settings were ever stored.
func DefaultSettings() Settings {
	return Settings{MaxCancelDays: 2}
}

// LogEntry is one append-only audit log record.
type LogEntry struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userID"`
	UserName    string    `json:"userName"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// ValidateRoomName enforces the admin-form constraints on room names.
func ValidateRoomName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Validationf("room name is required")
	}
	if len(name) > 25 {
		return Validationf("room name must be at most 25 characters")
	}
	return nil
}
