package middleware

import (
	"context"
	"net/http"
)

// Action identifiers checked against the capability table.
const (
	ActionManageRooms    = "rooms:manage"
	ActionManageMovies   = "movies:manage"
	ActionManageSessions = "sessions:manage"
	ActionManageBar      = "bar:manage"
	ActionManageSettings = "settings:manage"
	ActionManageUsers    = "users:manage"
	ActionViewLogs       = "logs:view"
	ActionViewReports    = "reports:view"
	ActionSellTickets    = "tickets:sell"
	ActionEditTickets    = "tickets:edit"
	ActionCancelTickets  = "tickets:cancel"
)

// roleCapabilities is the single place role checks happen. Every guarded
// endpoint consults this table instead of sprinkling role comparisons
// around handlers.
var roleCapabilities = map[string]map[string]bool{
	"admin": {
		ActionManageRooms:    true,
		ActionManageMovies:   true,
		ActionManageSessions: true,
		ActionManageBar:      true,
		ActionManageSettings: true,
		ActionManageUsers:    true,
		ActionViewLogs:       true,
		ActionViewReports:    true,
		ActionSellTickets:    true,
		ActionEditTickets:    true,
		ActionCancelTickets:  true,
	},
	"employee": {
		ActionViewReports:   true,
		ActionSellTickets:   true,
		ActionEditTickets:   true,
		ActionCancelTickets: true,
	},
	"customer": {
		ActionSellTickets:   true,
		ActionCancelTickets: true,
	},
}

// RoleAllowed consults the capability table.
func RoleAllowed(role, action string) bool {
	capabilities, known := roleCapabilities[role]
	if !known {
		return false
	}
	return capabilities[action]
}

// RequestRole reads the caller's role. Authentication is handled upstream;
// absent a role header the caller is a customer.
func RequestRole(r *http.Request) string {
	role := r.Header.Get("X-User-Role")
	if role == "" {
		return "customer"
	}
	return role
}

// GetRole retrieves the role stored by RequireAction.
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return "customer"
}

// RequireAction guards a handler behind one capability-table action.
func RequireAction(action string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := RequestRole(r)
		if !RoleAllowed(role, action) {
			WriteAPIError(w, r, http.StatusForbidden, "forbidden",
				"Your role does not permit this action", "")
			return
		}
		ctx := context.WithValue(r.Context(), RoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
