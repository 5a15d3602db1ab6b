package user

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
	return NewService(store.Users())
}

func TestResolve(t *testing.T) {
	svc := newTestService(t)

	ada, err := svc.Create("Ada", "ada@example.com", "customer")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if got := svc.Resolve("ada@example.com"); got.ID != ada.ID {
		t.Errorf("Expected user %d, got %+v", ada.ID, got)
	}
	if got := svc.Resolve("ADA@EXAMPLE.COM"); got.ID != ada.ID {
		t.Errorf("Email lookup should be case-insensitive, got %+v", got)
	}
	if got := svc.Resolve(""); got.ID != data.GuestUserID {
		t.Errorf("Empty email should resolve to guest, got %+v", got)
	}
	if got := svc.Resolve("nobody@example.com"); got.ID != data.GuestUserID {
		t.Errorf("Unknown email should resolve to guest, got %+v", got)
	}
}

func TestGetByIDGuest(t *testing.T) {
	svc := newTestService(t)

	guest, err := svc.GetByID(data.GuestUserID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if guest.Name != Guest.Name {
		t.Errorf("Expected guest sentinel, got %+v", guest)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create("", "x@example.com", ""); !data.IsValidation(err) {
		t.Errorf("Expected validation error for empty name, got %v", err)
	}
	if _, err := svc.Create("Bob", "not-an-email", ""); !data.IsValidation(err) {
		t.Errorf("Expected validation error for bad email, got %v", err)
	}
	if _, err := svc.Create("Bob", "bob@example.com", "superuser"); !data.IsValidation(err) {
		t.Errorf("Expected validation error for unknown role, got %v", err)
	}

	created, err := svc.Create("Bob", "bob@example.com", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Role != "customer" {
		t.Errorf("Expected default role customer, got %q", created.Role)
	}

	if _, err := svc.Create("Bobby", "BOB@example.com", ""); !data.IsConflict(err) {
		t.Errorf("Expected conflict for duplicate email, got %v", err)
	}
}
