package settings

import (
	"testing"

	"cinemabackend/internal/data"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := data.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	return NewService(store.Settings())
}

func TestGetDefaults(t *testing.T) {
	svc := newTestService(t)

	settings, err := svc.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if settings.MaxCancelDays != data.DefaultSettings().MaxCancelDays {
		t.Errorf("Expected defaults, got %+v", settings)
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)

	updated, err := svc.Update(data.Settings{MaxCancelDays: 5})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.MaxCancelDays != 5 {
		t.Errorf("Expected 5, got %d", updated.MaxCancelDays)
	}

	// Re-read to confirm persistence.
	settings, err := svc.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if settings.MaxCancelDays != 5 {
		t.Errorf("Expected persisted 5, got %d", settings.MaxCancelDays)
	}
}

func TestUpdateRejectsNonPositiveWindow(t *testing.T) {
	svc := newTestService(t)

	for _, days := range []int{0, -3} {
		if _, err := svc.Update(data.Settings{MaxCancelDays: days}); !data.IsValidation(err) {
			t.Errorf("Expected validation error for %d days, got %v", days, err)
		}
	}
}
