package data

import "fmt"

// =============================================================================
// SCHEMA DEFINITIONS
// =============================================================================

const roomsTableSchema = `
    CREATE TABLE IF NOT EXISTS rooms (
        id INTEGER PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        sound_type TEXT DEFAULT '',
        video_type TEXT DEFAULT '',
        seats_json TEXT NOT NULL DEFAULT '[]'
    );`

const moviesTableSchema = `
    CREATE TABLE IF NOT EXISTS movies (
        id INTEGER PRIMARY KEY,
        title TEXT NOT NULL,
        duration INTEGER NOT NULL,
        image TEXT DEFAULT ''
    );`

const sessionsTableSchema = `
    CREATE TABLE IF NOT EXISTS sessions (
        id INTEGER PRIMARY KEY,
        movie_id INTEGER NOT NULL,
        room_id INTEGER NOT NULL,
        date TEXT NOT NULL,
        language TEXT DEFAULT ''
    );
    CREATE INDEX IF NOT EXISTS idx_sessions_room ON sessions(room_id);
    CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);`

// The UNIQUE index over (session_id, seat_row, seat_col) is the strict-mode
// guarantee: the second writer of the same seat fails instead of winning.
const ticketsTableSchema = `
    CREATE TABLE IF NOT EXISTS tickets (
        id INTEGER PRIMARY KEY,
        movie_id INTEGER NOT NULL,
        session_id INTEGER NOT NULL,
        room_id INTEGER NOT NULL,
        user_id INTEGER NOT NULL DEFAULT 0,
        seat_row INTEGER NOT NULL,
        seat_col INTEGER NOT NULL,
        bar_items_json TEXT NOT NULL DEFAULT '[]',
        ticket_price REAL NOT NULL DEFAULT 0,
        bar_total REAL NOT NULL DEFAULT 0,
        buy_total REAL NOT NULL DEFAULT 0,
        payment_method TEXT DEFAULT '',
        payment_info TEXT DEFAULT '',
        reference TEXT DEFAULT '',
        datetime TEXT NOT NULL,
        UNIQUE(session_id, seat_row, seat_col)
    );
    CREATE INDEX IF NOT EXISTS idx_tickets_session ON tickets(session_id);
    CREATE INDEX IF NOT EXISTS idx_tickets_user ON tickets(user_id);`

const productsTableSchema = `
    CREATE TABLE IF NOT EXISTS products (
        id INTEGER PRIMARY KEY,
        name TEXT NOT NULL,
        price REAL NOT NULL DEFAULT 0,
        stock INTEGER NOT NULL DEFAULT 0,
        image TEXT DEFAULT ''
    );`

const usersTableSchema = `
    CREATE TABLE IF NOT EXISTS users (
        id INTEGER PRIMARY KEY,
        name TEXT NOT NULL,
        email TEXT NOT NULL UNIQUE,
        role TEXT NOT NULL DEFAULT 'customer'
    );`

const settingsTableSchema = `
    CREATE TABLE IF NOT EXISTS settings (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        max_cancel_days INTEGER NOT NULL DEFAULT 2
    );`

const auditLogTableSchema = `
    CREATE TABLE IF NOT EXISTS audit_log (
        id INTEGER PRIMARY KEY,
        user_id INTEGER NOT NULL DEFAULT 0,
        user_name TEXT DEFAULT '',
        description TEXT NOT NULL,
        date TEXT NOT NULL
    );`

// =============================================================================
// TABLE CREATION
// =============================================================================

func (s *SQLiteStore) createTables() error {
	tables := []struct {
		name   string
		schema string
	}{
		{"rooms", roomsTableSchema},
		{"movies", moviesTableSchema},
		{"sessions", sessionsTableSchema},
		{"tickets", ticketsTableSchema},
		{"products", productsTableSchema},
		{"users", usersTableSchema},
		{"settings", settingsTableSchema},
		{"audit_log", auditLogTableSchema},
	}

	for _, table := range tables {
		if _, err := s.db.Exec(table.schema); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}
	return nil
}
