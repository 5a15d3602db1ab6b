// Package user resolves accounts for ticket attribution.
package user

import (
	"strings"

	"cinemabackend/internal/data"
	"cinemabackend/internal/logger"
)

// Guest is the account used when a purchase cannot be attributed.
var Guest = data.User{ID: data.GuestUserID, Name: "Guest", Role: "customer"}

type Service struct {
	users data.UserRepository
}

func NewService(users data.UserRepository) *Service {
	return &Service{users: users}
}

// Resolve maps an email to a user. An empty or unknown email yields the
// guest sentinel so an unattributed purchase still goes through.
func (s *Service) Resolve(email string) data.User {
	email = strings.TrimSpace(email)
	if email == "" {
		return Guest
	}
	found, err := s.users.GetByEmail(email)
	if err != nil {
		if !data.IsNotFound(err) {
			logger.LogError("User lookup failed for %s: %v", email, err)
		}
		return Guest
	}
	return *found
}

func (s *Service) GetByID(id int) (data.User, error) {
	if id == data.GuestUserID {
		return Guest, nil
	}
	found, err := s.users.GetByID(id)
	if err != nil {
		return data.User{}, err
	}
	return *found, nil
}

func (s *Service) List() ([]data.User, error) {
	return s.users.List()
}

func (s *Service) Create(name, email, role string) (data.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return data.User{}, data.Validationf("user name is required")
	}
	if !strings.Contains(email, "@") {
		return data.User{}, data.Validationf("invalid email address")
	}
	if role == "" {
		role = "customer"
	}
	if role != "customer" && role != "employee" && role != "admin" {
		return data.User{}, data.Validationf("unknown role %q", role)
	}
	if existing, err := s.users.GetByEmail(email); err == nil && existing != nil {
		return data.User{}, data.Conflictf("a user with email %s already exists", email)
	}
	return s.users.Insert(data.User{Name: name, Email: email, Role: role})
}
