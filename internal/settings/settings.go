// Package settings exposes the mutable global configuration.
package settings

import (
	"cinemabackend/internal/data"
)

type Service struct {
	repo data.SettingsRepository
}

func NewService(repo data.SettingsRepository) *Service {
	return &Service{repo: repo}
}

// Get always re-reads the stored settings. Callers must not cache the result
// across requests: the cancellation window is evaluated against the value in
// effect at request time.
func (s *Service) Get() (data.Settings, error) {
	return s.repo.Get()
}

func (s *Service) Update(settings data.Settings) (data.Settings, error) {
	if settings.MaxCancelDays < 1 {
		return data.Settings{}, data.Validationf("max_cancel_days must be at least 1")
	}
	if err := s.repo.Put(settings); err != nil {
		return data.Settings{}, err
	}
	return settings, nil
}
