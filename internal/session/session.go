// Package session schedules showings and guards against per-room overlap.
package session

import (
	"time"

	"cinemabackend/internal/data"
)

type Service struct {
	store data.Store
}

func NewService(store data.Store) *Service {
	return &Service{store: store}
}

// Input describes a session to create or the new state of one to update.
type Input struct {
	MovieID  int       `json:"movieId"`
	Room     int       `json:"room"`
	Date     time.Time `json:"date"`
	Language string    `json:"language"`
}

// Filter narrows List results. Zero values mean "no constraint"; Date
// matches the calendar day in local time.
type Filter struct {
	MovieID int
	Room    int
	Date    *time.Time
}

func (s *Service) List(filter Filter) ([]data.Session, error) {
	sessions, err := s.store.Sessions().List()
	if err != nil {
		return nil, err
	}

	var result []data.Session
	for _, session := range sessions {
		if filter.MovieID != 0 && session.MovieID != filter.MovieID {
			continue
		}
		if filter.Room != 0 && session.Room != filter.Room {
			continue
		}
		if filter.Date != nil {
			y1, m1, d1 := session.Date.Local().Date()
			y2, m2, d2 := filter.Date.Local().Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		result = append(result, session)
	}
	return result, nil
}

func (s *Service) Get(id int) (*data.Session, error) {
	return s.store.Sessions().GetByID(id)
}

func (s *Service) Create(input Input) (data.Session, error) {
	candidate := data.Session{
		MovieID:  input.MovieID,
		Room:     input.Room,
		Date:     input.Date,
		Language: input.Language,
	}
	if err := s.validate(candidate, 0); err != nil {
		return data.Session{}, err
	}
	return s.store.Sessions().Insert(candidate)
}

// Update rewrites a session. Sessions with sold tickets cannot change.
func (s *Service) Update(id int, input Input) (data.Session, error) {
	if _, err := s.store.Sessions().GetByID(id); err != nil {
		return data.Session{}, err
	}
	if err := s.checkNoTickets(id); err != nil {
		return data.Session{}, err
	}

	candidate := data.Session{
		ID:       id,
		MovieID:  input.MovieID,
		Room:     input.Room,
		Date:     input.Date,
		Language: input.Language,
	}
	if err := s.validate(candidate, id); err != nil {
		return data.Session{}, err
	}
	if err := s.store.Sessions().Update(candidate); err != nil {
		return data.Session{}, err
	}
	return candidate, nil
}

// Delete removes a session. Sessions with sold tickets cannot be removed.
func (s *Service) Delete(id int) error {
	if _, err := s.store.Sessions().GetByID(id); err != nil {
		return err
	}
	if err := s.checkNoTickets(id); err != nil {
		return err
	}
	return s.store.Sessions().Delete(id)
}

// EndTime computes when a session finishes, from its movie's duration.
func (s *Service) EndTime(session data.Session) (time.Time, error) {
	movie, err := s.store.Movies().GetByID(session.MovieID)
	if err != nil {
		return time.Time{}, err
	}
	return session.Date.Add(time.Duration(movie.Duration) * time.Minute), nil
}

func (s *Service) validate(candidate data.Session, excludeID int) error {
	if candidate.Date.Before(time.Now()) {
		return data.Validationf("session date must be in the future")
	}

	movie, err := s.store.Movies().GetByID(candidate.MovieID)
	if err != nil {
		return err
	}
	if _, err := s.store.Rooms().GetByID(candidate.Room); err != nil {
		return err
	}

	return s.checkOverlap(candidate, movie.Duration, excludeID)
}

// checkOverlap rejects the candidate when its [start, end) interval crosses
// any other session in the same room. Each compared session uses its own
// movie's duration; when that movie cannot be resolved, the candidate
// movie's duration is used instead.
func (s *Service) checkOverlap(candidate data.Session, durationMinutes, excludeID int) error {
	start := candidate.Date
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	sessions, err := s.store.Sessions().List()
	if err != nil {
		return err
	}

	for _, other := range sessions {
		if other.ID == excludeID || other.Room != candidate.Room {
			continue
		}

		otherMinutes := durationMinutes
		if otherMovie, err := s.store.Movies().GetByID(other.MovieID); err == nil {
			otherMinutes = otherMovie.Duration
		}
		otherStart := other.Date
		otherEnd := otherStart.Add(time.Duration(otherMinutes) * time.Minute)

		if start.Before(otherEnd) && end.After(otherStart) {
			return data.Conflictf("room %d already has session %d from %s to %s",
				candidate.Room, other.ID,
				otherStart.Local().Format("2006-01-02 15:04"),
				otherEnd.Local().Format("15:04"))
		}
	}
	return nil
}

func (s *Service) checkNoTickets(sessionID int) error {
	tickets, err := s.store.Tickets().ListBySession(sessionID)
	if err != nil {
		return err
	}
	if len(tickets) > 0 {
		return data.Conflictf("session %d has %d sold ticket(s)", sessionID, len(tickets))
	}
	return nil
}
