// Package auditlog is the append-only record of state-changing actions.
package auditlog

import (
	"time"

	"cinemabackend/internal/data"
	"cinemabackend/internal/logger"
)

// Sink appends audit entries. Appending is best-effort: a failure is logged
// and swallowed so it never fails the operation being audited.
type Sink struct {
	logs data.LogRepository
}

func NewSink(logs data.LogRepository) *Sink {
	return &Sink{logs: logs}
}

// Append records an action. Entry ids are assigned monotonically by the
// repository (max+1).
func (s *Sink) Append(userID int, userName, description string) {
	entry := data.LogEntry{
		UserID:      userID,
		UserName:    userName,
		Description: description,
		Date:        time.Now(),
	}
	if _, err := s.logs.Append(entry); err != nil {
		logger.LogError("Failed to append audit log entry (%q): %v", description, err)
	}
}

func (s *Sink) List() ([]data.LogEntry, error) {
	return s.logs.List()
}
