// Package movie holds the catalog the session schedule builds on.
package movie

import (
	"strings"

	"cinemabackend/internal/data"
)

type Service struct {
	store data.Store
}

func NewService(store data.Store) *Service {
	return &Service{store: store}
}

func (s *Service) List() ([]data.Movie, error) {
	return s.store.Movies().List()
}

func (s *Service) Get(id int) (*data.Movie, error) {
	return s.store.Movies().GetByID(id)
}

func (s *Service) Create(movie data.Movie) (data.Movie, error) {
	if err := validate(movie); err != nil {
		return data.Movie{}, err
	}
	return s.store.Movies().Insert(movie)
}

func (s *Service) Update(movie data.Movie) (data.Movie, error) {
	if err := validate(movie); err != nil {
		return data.Movie{}, err
	}
	if _, err := s.store.Movies().GetByID(movie.ID); err != nil {
		return data.Movie{}, err
	}
	if err := s.store.Movies().Update(movie); err != nil {
		return data.Movie{}, err
	}
	return movie, nil
}

// Delete removes a movie unless sessions still reference it.
func (s *Service) Delete(id int) error {
	if _, err := s.store.Movies().GetByID(id); err != nil {
		return err
	}
	sessions, err := s.store.Sessions().List()
	if err != nil {
		return err
	}
	for _, session := range sessions {
		if session.MovieID == id {
			return data.Conflictf("movie %d is still scheduled in session %d", id, session.ID)
		}
	}
	return s.store.Movies().Delete(id)
}

func validate(movie data.Movie) error {
	if strings.TrimSpace(movie.Title) == "" {
		return data.Validationf("movie title is required")
	}
	if movie.Duration <= 0 {
		return data.Validationf("movie duration must be a positive number of minutes")
	}
	return nil
}
