package data

import (
	"database/sql"
	"errors"
	"fmt"
)

// =============================================================================
// ROOM REPOSITORY (sqlite)
// =============================================================================

type sqlRooms struct{ store *SQLiteStore }

func (r *sqlRooms) List() ([]Room, error) {
	rows, err := r.store.query(`SELECT id, name, sound_type, video_type, seats_json FROM rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "iterate rooms", Err: err}
	}
	return result, nil
}

func (r *sqlRooms) GetByID(id int) (*Room, error) {
	row := r.store.queryRow(`SELECT id, name, sound_type, video_type, seats_json FROM rooms WHERE id = ?`, id)
	room, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "room", ID: id}
	}
	return room, err
}

func (r *sqlRooms) Insert(room Room) (Room, error) {
	seatsJSON, err := marshalJSON(room.Seats)
	if err != nil {
		return Room{}, &PersistenceError{Op: "marshal room seats", Err: err}
	}

	res, err := r.store.exec(
		`INSERT INTO rooms (name, sound_type, video_type, seats_json) VALUES (?, ?, ?, ?)`,
		room.Name, room.SoundType, room.VideoType, seatsJSON,
	)
	if err != nil {
		return Room{}, err
	}
	id, _ := res.LastInsertId()
	room.ID = int(id)
	return room, nil
}

func (r *sqlRooms) Update(room Room) error {
	seatsJSON, err := marshalJSON(room.Seats)
	if err != nil {
		return &PersistenceError{Op: "marshal room seats", Err: err}
	}

	res, err := r.store.exec(
		`UPDATE rooms SET name = ?, sound_type = ?, video_type = ?, seats_json = ? WHERE id = ?`,
		room.Name, room.SoundType, room.VideoType, seatsJSON, room.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "room", ID: room.ID}
	}
	return nil
}

func (r *sqlRooms) Delete(id int) error {
	res, err := r.store.exec(`DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "room", ID: id}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (*Room, error) {
	var room Room
	var soundType, videoType, seatsJSON sql.NullString

	if err := row.Scan(&room.ID, &room.Name, &soundType, &videoType, &seatsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "scan room", Err: err}
	}

	room.SoundType = soundType.String
	room.VideoType = videoType.String
	if err := unmarshalNullableJSON(seatsJSON, &room.Seats); err != nil {
		return nil, &PersistenceError{Op: "parse room seats", Err: err}
	}
	return &room, nil
}

// =============================================================================
// SESSION REPOSITORY (sqlite)
// =============================================================================

type sqlSessions struct{ store *SQLiteStore }

const sessionColumns = `id, movie_id, room_id, date, language`

func (s *sqlSessions) List() ([]Session, error) {
	rows, err := s.store.query(fmt.Sprintf(`SELECT %s FROM sessions ORDER BY date`, sessionColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "iterate sessions", Err: err}
	}
	return result, nil
}

func (s *sqlSessions) GetByID(id int) (*Session, error) {
	row := s.store.queryRow(fmt.Sprintf(`SELECT %s FROM sessions WHERE id = ?`, sessionColumns), id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "session", ID: id}
	}
	return session, err
}

func (s *sqlSessions) Insert(session Session) (Session, error) {
	res, err := s.store.exec(
		`INSERT INTO sessions (movie_id, room_id, date, language) VALUES (?, ?, ?, ?)`,
		session.MovieID, session.Room, formatTime(session.Date), session.Language,
	)
	if err != nil {
		return Session{}, err
	}
	id, _ := res.LastInsertId()
	session.ID = int(id)
	return session, nil
}

func (s *sqlSessions) Update(session Session) error {
	res, err := s.store.exec(
		`UPDATE sessions SET movie_id = ?, room_id = ?, date = ?, language = ? WHERE id = ?`,
		session.MovieID, session.Room, formatTime(session.Date), session.Language, session.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "session", ID: session.ID}
	}
	return nil
}

func (s *sqlSessions) Delete(id int) error {
	res, err := s.store.exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "session", ID: id}
	}
	return nil
}

func scanSession(row rowScanner) (*Session, error) {
	var session Session
	var dateStr string
	var language sql.NullString

	if err := row.Scan(&session.ID, &session.MovieID, &session.Room, &dateStr, &language); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "scan session", Err: err}
	}

	date, err := parseTime(dateStr)
	if err != nil {
		return nil, &PersistenceError{Op: "parse session date", Err: err}
	}
	session.Date = date
	session.Language = language.String
	return &session, nil
}

// =============================================================================
// TICKET REPOSITORY (sqlite)
// =============================================================================

type sqlTickets struct{ store *SQLiteStore }

const ticketColumns = `id, movie_id, session_id, room_id, user_id, seat_row, seat_col,
	bar_items_json, ticket_price, bar_total, buy_total, payment_method, payment_info, reference, datetime`

func (t *sqlTickets) List() ([]Ticket, error) {
	rows, err := t.store.query(fmt.Sprintf(`SELECT %s FROM tickets ORDER BY id`, ticketColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTickets(rows)
}

func (t *sqlTickets) ListBySession(sessionID int) ([]Ticket, error) {
	rows, err := t.store.query(
		fmt.Sprintf(`SELECT %s FROM tickets WHERE session_id = ? ORDER BY id`, ticketColumns), sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTickets(rows)
}

func (t *sqlTickets) GetByID(id int) (*Ticket, error) {
	row := t.store.queryRow(fmt.Sprintf(`SELECT %s FROM tickets WHERE id = ?`, ticketColumns), id)
	ticket, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "ticket", ID: id}
	}
	return ticket, err
}

func (t *sqlTickets) Insert(ticket Ticket) (Ticket, error) {
	barJSON, err := marshalJSON(ticket.BarItems)
	if err != nil {
		return Ticket{}, &PersistenceError{Op: "marshal bar items", Err: err}
	}

	res, err := t.store.exec(
		`INSERT INTO tickets (movie_id, session_id, room_id, user_id, seat_row, seat_col,
			bar_items_json, ticket_price, bar_total, buy_total, payment_method, payment_info, reference, datetime)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ticket.MovieID, ticket.SessionID, ticket.RoomID, ticket.UserID,
		ticket.Seat.Row, ticket.Seat.Col, barJSON,
		ticket.TicketPrice, ticket.BarTotal, ticket.BuyTotal,
		ticket.PaymentMethod, ticket.PaymentInfo, ticket.Reference, formatTime(ticket.DateTime),
	)
	if err != nil {
		if IsConflict(err) {
			return Ticket{}, Conflictf("seat %s is already occupied in session %d", ticket.Seat.Key(), ticket.SessionID)
		}
		return Ticket{}, err
	}
	id, _ := res.LastInsertId()
	ticket.ID = int(id)
	return ticket, nil
}

func (t *sqlTickets) Update(ticket Ticket) error {
	barJSON, err := marshalJSON(ticket.BarItems)
	if err != nil {
		return &PersistenceError{Op: "marshal bar items", Err: err}
	}

	res, err := t.store.exec(
		`UPDATE tickets SET movie_id = ?, session_id = ?, room_id = ?, user_id = ?, seat_row = ?, seat_col = ?,
			bar_items_json = ?, ticket_price = ?, bar_total = ?, buy_total = ?,
			payment_method = ?, payment_info = ?, reference = ?, datetime = ?
		 WHERE id = ?`,
		ticket.MovieID, ticket.SessionID, ticket.RoomID, ticket.UserID,
		ticket.Seat.Row, ticket.Seat.Col, barJSON,
		ticket.TicketPrice, ticket.BarTotal, ticket.BuyTotal,
		ticket.PaymentMethod, ticket.PaymentInfo, ticket.Reference, formatTime(ticket.DateTime),
		ticket.ID,
	)
	if err != nil {
		if IsConflict(err) {
			return Conflictf("seat %s is already occupied in session %d", ticket.Seat.Key(), ticket.SessionID)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "ticket", ID: ticket.ID}
	}
	return nil
}

func (t *sqlTickets) Delete(id int) error {
	res, err := t.store.exec(`DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "ticket", ID: id}
	}
	return nil
}

func collectTickets(rows *sql.Rows) ([]Ticket, error) {
	var result []Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "iterate tickets", Err: err}
	}
	return result, nil
}

func scanTicket(row rowScanner) (*Ticket, error) {
	var ticket Ticket
	var barJSON, paymentMethod, paymentInfo, reference sql.NullString
	var dateStr string

	err := row.Scan(
		&ticket.ID, &ticket.MovieID, &ticket.SessionID, &ticket.RoomID, &ticket.UserID,
		&ticket.Seat.Row, &ticket.Seat.Col, &barJSON,
		&ticket.TicketPrice, &ticket.BarTotal, &ticket.BuyTotal,
		&paymentMethod, &paymentInfo, &reference, &dateStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "scan ticket", Err: err}
	}

	ticket.PaymentMethod = paymentMethod.String
	ticket.PaymentInfo = paymentInfo.String
	ticket.Reference = reference.String
	if err := unmarshalNullableJSON(barJSON, &ticket.BarItems); err != nil {
		return nil, &PersistenceError{Op: "parse bar items", Err: err}
	}
	date, err := parseTime(dateStr)
	if err != nil {
		return nil, &PersistenceError{Op: "parse ticket datetime", Err: err}
	}
	ticket.DateTime = date
	return &ticket, nil
}
