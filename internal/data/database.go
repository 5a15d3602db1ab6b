package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"cinemabackend/internal/logger"
)

// Database connection pool configuration
const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = time.Hour
	connMaxIdleTime = time.Minute * 15
	queryTimeout    = time.Second * 30
)

// SQLiteStore is the strict-mode backend: an embedded transactional store
// with a UNIQUE(session_id, seat_row, seat_col) index, so a double-sold seat
// is rejected at write time instead of silently persisted.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database with retry logic, applies pragmas and
// creates the schema.
func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	store := &SQLiteStore{}
	if err := store.openWithRetry(dataSourceName, 3); err != nil {
		return nil, err
	}
	if err := store.createTables(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) openWithRetry(dataSourceName string, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		s.db, err = sql.Open("sqlite", dataSourceName)
		if err != nil {
			logger.LogWarn("Database connection attempt %d failed: %v", attempt, err)
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * time.Second)
				continue
			}
			return fmt.Errorf("failed to open database after %d attempts: %w", maxRetries, err)
		}

		// Configure connection pool
		s.db.SetMaxOpenConns(maxOpenConns)
		s.db.SetMaxIdleConns(maxIdleConns)
		s.db.SetConnMaxLifetime(connMaxLifetime)
		s.db.SetConnMaxIdleTime(connMaxIdleTime)

		// Test the connection
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		err = s.db.PingContext(ctx)
		cancel()

		if err != nil {
			logger.LogWarn("Database ping attempt %d failed: %v", attempt, err)
			s.db.Close()
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * time.Second)
				continue
			}
			return fmt.Errorf("failed to ping database after %d attempts: %w", maxRetries, err)
		}

		if err := s.enablePragmas(); err != nil {
			logger.LogWarn("Failed to enable some database optimizations: %v", err)
			// Don't fail initialization for pragma errors
		}

		logger.LogInfo("Database connection established successfully (attempt %d)", attempt)
		return nil
	}

	return fmt.Errorf("failed to initialize database after %d attempts", maxRetries)
}

func (s *SQLiteStore) enablePragmas() error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000",
		"PRAGMA temp_store = MEMORY",
	}

	var lastErr error
	for _, pragma := range pragmas {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		_, err := s.db.ExecContext(ctx, pragma)
		cancel()

		if err != nil {
			logger.LogWarn("Failed to execute %s: %v", pragma, err)
			lastErr = err
		}
	}
	return lastErr
}

// Close closes the database connection gracefully.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) Rooms() RoomRepository        { return &sqlRooms{s} }
func (s *SQLiteStore) Movies() MovieRepository      { return &sqlMovies{s} }
func (s *SQLiteStore) Sessions() SessionRepository  { return &sqlSessions{s} }
func (s *SQLiteStore) Tickets() TicketRepository    { return &sqlTickets{s} }
func (s *SQLiteStore) Products() ProductRepository  { return &sqlProducts{s} }
func (s *SQLiteStore) Users() UserRepository        { return &sqlUsers{s} }
func (s *SQLiteStore) Settings() SettingsRepository { return &sqlSettings{s} }
func (s *SQLiteStore) Logs() LogRepository          { return &sqlLogs{s} }

// =============================================================================
// GENERIC DATABASE OPERATIONS
// =============================================================================

func (s *SQLiteStore) exec(query string, args ...interface{}) (sql.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.LogError("Database exec failed: query=%s, error=%v", query, err)
		return nil, wrapDBError("exec", err)
	}
	return result, nil
}

func (s *SQLiteStore) query(query string, args ...interface{}) (*sql.Rows, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.LogError("Database query failed: query=%s, error=%v", query, err)
		return nil, wrapDBError("query", err)
	}
	return rows, nil
}

func (s *SQLiteStore) queryRow(query string, args ...interface{}) *sql.Row {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.db.QueryRowContext(ctx, query, args...)
}

// wrapDBError keeps unique-constraint violations distinguishable: they are
// conflicts, not generic persistence failures.
func wrapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return Conflictf("conflicting record already exists: %v", err)
	}
	return &PersistenceError{Op: op, Err: err}
}

// =============================================================================
// UTILITY FUNCTIONS (JSON AND TIME HANDLING)
// =============================================================================

func marshalJSON(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(raw), nil
}

func unmarshalNullableJSON(nullStr sql.NullString, v interface{}) error {
	if !nullStr.Valid || nullStr.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(nullStr.String), v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.Format(TimeFormat)
}

func parseTime(timeStr string) (time.Time, error) {
	return time.Parse(TimeFormat, timeStr)
}
