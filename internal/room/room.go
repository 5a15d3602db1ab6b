// Package room is the seat-layout store: rectangular grids of normal,
// accessibility and absent seats.
package room

import (
	"strings"
	"time"

	"cinemabackend/internal/data"
)

type Service struct {
	store data.Store
}

func NewService(store data.Store) *Service {
	return &Service{store: store}
}

// CreateInput describes a new room. When Seats is nil the grid is built as
// Rows x Cols of normal seats.
type CreateInput struct {
	Name      string    `json:"name"`
	SoundType string    `json:"soundType"`
	VideoType string    `json:"videoType"`
	Rows      int       `json:"rows,omitempty"`
	Cols      int       `json:"cols,omitempty"`
	Seats     data.Grid `json:"seats,omitempty"`
}

func (s *Service) List() ([]data.Room, error) {
	return s.store.Rooms().List()
}

func (s *Service) Get(id int) (*data.Room, error) {
	return s.store.Rooms().GetByID(id)
}

func (s *Service) Create(input CreateInput) (data.Room, error) {
	if err := data.ValidateRoomName(input.Name); err != nil {
		return data.Room{}, err
	}

	seats := input.Seats
	if seats == nil {
		if input.Rows <= 0 || input.Cols <= 0 {
			return data.Room{}, data.Validationf("either a seat grid or positive rows/cols are required")
		}
		seats = data.Grid{}.Resize(input.Rows, input.Cols)
	}
	if err := seats.Validate(); err != nil {
		return data.Room{}, err
	}

	if err := s.checkDuplicateName(input.Name, 0); err != nil {
		return data.Room{}, err
	}

	return s.store.Rooms().Insert(data.Room{
		Name:      strings.TrimSpace(input.Name),
		SoundType: input.SoundType,
		VideoType: input.VideoType,
		Seats:     seats,
	})
}

// Update replaces name, sound/video types and the seat grid. The id is
// immutable. A changed grid must still be rectangular.
func (s *Service) Update(room data.Room) (data.Room, error) {
	if err := data.ValidateRoomName(room.Name); err != nil {
		return data.Room{}, err
	}
	if err := room.Seats.Validate(); err != nil {
		return data.Room{}, err
	}
	if _, err := s.store.Rooms().GetByID(room.ID); err != nil {
		return data.Room{}, err
	}
	if err := s.checkDuplicateName(room.Name, room.ID); err != nil {
		return data.Room{}, err
	}
	if err := s.store.Rooms().Update(room); err != nil {
		return data.Room{}, err
	}
	return room, nil
}

// Resize changes the grid dimensions, preserving every cell whose indices
// survive; new cells default to normal seats.
func (s *Service) Resize(id, rows, cols int) (data.Room, error) {
	if rows <= 0 || cols <= 0 {
		return data.Room{}, data.Validationf("rows and cols must be positive")
	}
	existing, err := s.store.Rooms().GetByID(id)
	if err != nil {
		return data.Room{}, err
	}
	existing.Seats = existing.Seats.Resize(rows, cols)
	if err := s.store.Rooms().Update(*existing); err != nil {
		return data.Room{}, err
	}
	return *existing, nil
}

// Delete removes a room unless upcoming sessions or tickets still reference
// it. The legacy app only advised against this; here it is enforced.
func (s *Service) Delete(id int) error {
	if _, err := s.store.Rooms().GetByID(id); err != nil {
		return err
	}

	sessions, err := s.store.Sessions().List()
	if err != nil {
		return err
	}
	now := time.Now()
	for _, session := range sessions {
		if session.Room == id && session.Date.After(now) {
			return data.Conflictf("room %d still has upcoming session %d", id, session.ID)
		}
	}

	tickets, err := s.store.Tickets().List()
	if err != nil {
		return err
	}
	for _, ticket := range tickets {
		if ticket.RoomID == id {
			return data.Conflictf("room %d still has ticket %d", id, ticket.ID)
		}
	}

	return s.store.Rooms().Delete(id)
}

func (s *Service) checkDuplicateName(name string, excludeID int) error {
	rooms, err := s.store.Rooms().List()
	if err != nil {
		return err
	}
	for _, existing := range rooms {
		if existing.ID != excludeID && strings.EqualFold(existing.Name, strings.TrimSpace(name)) {
			return data.Conflictf("a room named %q already exists", existing.Name)
		}
	}
	return nil
}
