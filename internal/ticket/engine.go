// Package ticket maps seats to sessions and owns the ticket lifecycle:
// purchase, edit, cancellation.
package ticket

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"cinemabackend/internal/auditlog"
	"cinemabackend/internal/bar"
	"cinemabackend/internal/data"
	"cinemabackend/internal/logger"
	"cinemabackend/internal/policy"
	"cinemabackend/internal/settings"
	"cinemabackend/internal/user"
)

type Engine struct {
	store    data.Store
	bar      *bar.Service
	users    *user.Service
	settings *settings.Service
	audit    *auditlog.Sink

	// strict serializes seat-changing operations per session. Off by
	// default: the file backend keeps the legacy unguarded behavior.
	strict bool
	locks  *sessionLocks
}

func NewEngine(store data.Store, barSvc *bar.Service, users *user.Service,
	settingsSvc *settings.Service, audit *auditlog.Sink, strict bool) *Engine {
	return &Engine{
		store:    store,
		bar:      barSvc,
		users:    users,
		settings: settingsSvc,
		audit:    audit,
		strict:   strict,
		locks:    newSessionLocks(),
	}
}

// PurchaseInput is a seat purchase request. BarItems only need id and
// quantity; names and prices come from the catalog.
type PurchaseInput struct {
	SessionID     int            `json:"session_id"`
	Seat          data.Seat      `json:"seat"`
	Email         string         `json:"email,omitempty"`
	BarItems      []data.BarItem `json:"bar_items"`
	TicketPrice   float64        `json:"ticket_price"`
	PaymentMethod string         `json:"payment_method"`
	PaymentInfo   string         `json:"payment_info,omitempty"`
}

// EditInput rewrites a ticket's bar items, and optionally moves it to a new
// session and/or seat. When SessionID names a different session, Seat is
// required: the old coordinates are never carried over unvalidated.
type EditInput struct {
	ID        int            `json:"id"`
	SessionID int            `json:"session_id,omitempty"`
	Seat      *data.Seat     `json:"seat,omitempty"`
	BarItems  []data.BarItem `json:"bar_items"`
}

func (e *Engine) List() ([]data.Ticket, error) {
	return e.store.Tickets().List()
}

func (e *Engine) Get(id int) (*data.Ticket, error) {
	return e.store.Tickets().GetByID(id)
}

// ComputeOccupancy returns the set of "row-col" keys claimed by tickets of
// the given session. Always computed from the current ticket collection,
// never a cached snapshot.
func (e *Engine) ComputeOccupancy(sessionID int) (map[string]bool, error) {
	tickets, err := e.store.Tickets().ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	occupancy := make(map[string]bool, len(tickets))
	for _, ticket := range tickets {
		occupancy[ticket.Seat.Key()] = true
	}
	return occupancy, nil
}

// IsSeatSelectable reports whether a seat can be picked: the grid cell must
// exist and must not already be occupied.
func IsSeatSelectable(room *data.Room, seat data.Seat, occupancy map[string]bool) bool {
	if room.Seats.SeatAt(seat.Row, seat.Col) == nil {
		return false
	}
	return !occupancy[seat.Key()]
}

// Purchase validates the seat against the current ticket set, prices the bar
// selection from the catalog, persists the ticket and decrements bar stock.
func (e *Engine) Purchase(input PurchaseInput) (data.Ticket, error) {
	if e.strict {
		defer e.locks.lock(input.SessionID)()
	}

	if input.TicketPrice < 0 {
		return data.Ticket{}, data.Validationf("ticket price cannot be negative")
	}
	if input.PaymentMethod == "" {
		return data.Ticket{}, data.Validationf("payment method is required")
	}

	session, err := e.store.Sessions().GetByID(input.SessionID)
	if err != nil {
		return data.Ticket{}, err
	}
	room, err := e.store.Rooms().GetByID(session.Room)
	if err != nil {
		return data.Ticket{}, err
	}

	if room.Seats.SeatAt(input.Seat.Row, input.Seat.Col) == nil {
		return data.Ticket{}, data.Validationf("seat %s does not exist in room %s", input.Seat.Key(), room.Name)
	}

	// Re-check against the live collection right before writing. Without
	// strict mode two concurrent purchases can still both pass here.
	occupancy, err := e.ComputeOccupancy(input.SessionID)
	if err != nil {
		return data.Ticket{}, err
	}
	if occupancy[input.Seat.Key()] {
		return data.Ticket{}, data.Conflictf("seat %s is already occupied in session %d", input.Seat.Key(), input.SessionID)
	}

	items, barTotal, err := e.bar.ResolveItems(input.BarItems)
	if err != nil {
		return data.Ticket{}, err
	}

	buyer := e.users.Resolve(input.Email)

	ticket := data.Ticket{
		MovieID:       session.MovieID,
		SessionID:     session.ID,
		RoomID:        room.ID,
		UserID:        buyer.ID,
		Seat:          input.Seat,
		BarItems:      items,
		TicketPrice:   input.TicketPrice,
		BarTotal:      barTotal,
		BuyTotal:      bar.RoundCents(input.TicketPrice + barTotal),
		PaymentMethod: input.PaymentMethod,
		PaymentInfo:   input.PaymentInfo,
		Reference:     uuid.NewString(),
		DateTime:      time.Now(),
	}

	inserted, err := e.store.Tickets().Insert(ticket)
	if err != nil {
		return data.Ticket{}, err
	}

	if err := e.bar.DecrementStock(items); err != nil {
		logger.LogError("Stock decrement failed after ticket %d purchase: %v", inserted.ID, err)
	}

	e.audit.Append(buyer.ID, buyer.Name,
		fmt.Sprintf("Purchased ticket %d, seat %s, session %d.", inserted.ID, inserted.Seat.Key(), inserted.SessionID))

	return inserted, nil
}

// Edit rewrites a ticket. The bar item delta is computed before overwriting
// and goes to the audit log together with a session-change description when
// the ticket moved.
func (e *Engine) Edit(input EditInput) (data.Ticket, error) {
	ticket, err := e.store.Tickets().GetByID(input.ID)
	if err != nil {
		return data.Ticket{}, err
	}

	targetSessionID := ticket.SessionID
	if input.SessionID != 0 {
		targetSessionID = input.SessionID
	}
	if e.strict {
		defer e.locks.lockPair(ticket.SessionID, targetSessionID)()
	}

	oldItems := ticket.BarItems
	newItems, barTotal, err := e.bar.ResolveItems(input.BarItems)
	if err != nil {
		return data.Ticket{}, err
	}

	var sessionMsg string
	if targetSessionID != ticket.SessionID {
		if input.Seat == nil {
			return data.Ticket{}, data.Validationf("a seat must be re-selected when moving a ticket to another session")
		}

		oldSession, err := e.store.Sessions().GetByID(ticket.SessionID)
		if err != nil {
			return data.Ticket{}, err
		}
		newSession, err := e.store.Sessions().GetByID(targetSessionID)
		if err != nil {
			return data.Ticket{}, err
		}
		newRoom, err := e.store.Rooms().GetByID(newSession.Room)
		if err != nil {
			return data.Ticket{}, err
		}

		if err := e.checkSeatFree(newRoom, *input.Seat, newSession.ID, ticket.ID); err != nil {
			return data.Ticket{}, err
		}

		sessionMsg = SessionChangeMessage(*oldSession, *newSession)
		ticket.SessionID = newSession.ID
		ticket.RoomID = newRoom.ID
		ticket.MovieID = newSession.MovieID
		ticket.Seat = *input.Seat
	} else if input.Seat != nil && *input.Seat != ticket.Seat {
		room, err := e.store.Rooms().GetByID(ticket.RoomID)
		if err != nil {
			return data.Ticket{}, err
		}
		if err := e.checkSeatFree(room, *input.Seat, ticket.SessionID, ticket.ID); err != nil {
			return data.Ticket{}, err
		}
		ticket.Seat = *input.Seat
	}

	ticket.BarItems = newItems
	ticket.BarTotal = barTotal
	ticket.BuyTotal = bar.RoundCents(ticket.TicketPrice + barTotal)

	if err := e.store.Tickets().Update(*ticket); err != nil {
		return data.Ticket{}, err
	}

	description := DiffBarItems(oldItems, newItems).Message()
	if sessionMsg != "" {
		description = sessionMsg + " " + description
	}
	e.audit.Append(ticket.UserID, e.userName(ticket.UserID),
		fmt.Sprintf("Edited ticket %d. %s", ticket.ID, description))

	return *ticket, nil
}

// Cancel hard-deletes a ticket when the cancellation window still allows it
// and records the refund method in the audit log.
func (e *Engine) Cancel(id int, refundMethod string) error {
	if refundMethod == "" {
		return data.Validationf("refund method is required")
	}

	ticket, err := e.store.Tickets().GetByID(id)
	if err != nil {
		return err
	}
	if e.strict {
		defer e.locks.lock(ticket.SessionID)()
	}

	session, err := e.store.Sessions().GetByID(ticket.SessionID)
	if err != nil && !data.IsNotFound(err) {
		return err
	}

	// The window is read fresh on every request; an admin change takes
	// effect immediately.
	current, err := e.settings.Get()
	if err != nil {
		return err
	}
	if session != nil && !policy.CanCancel(session.Date, time.Now(), current.MaxCancelDays) {
		return data.Conflictf("ticket %d can no longer be cancelled: sessions close %d day(s) in advance",
			id, current.MaxCancelDays)
	}

	if err := e.store.Tickets().Delete(id); err != nil {
		return err
	}

	e.audit.Append(ticket.UserID, e.userName(ticket.UserID),
		fmt.Sprintf("Cancelled ticket %d for session %d. Refund issued via %s.", id, ticket.SessionID, refundMethod))
	return nil
}

func (e *Engine) checkSeatFree(room *data.Room, seat data.Seat, sessionID, excludeTicketID int) error {
	if room.Seats.SeatAt(seat.Row, seat.Col) == nil {
		return data.Validationf("seat %s does not exist in room %s", seat.Key(), room.Name)
	}
	tickets, err := e.store.Tickets().ListBySession(sessionID)
	if err != nil {
		return err
	}
	for _, other := range tickets {
		if other.ID != excludeTicketID && other.Seat == seat {
			return data.Conflictf("seat %s is already occupied in session %d", seat.Key(), sessionID)
		}
	}
	return nil
}

func (e *Engine) userName(userID int) string {
	owner, err := e.users.GetByID(userID)
	if err != nil {
		return user.Guest.Name
	}
	return owner.Name
}
