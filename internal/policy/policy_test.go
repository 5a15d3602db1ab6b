package policy

import (
	"testing"
	"time"
)

func TestCanCancel(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		sessionDate   time.Time
		maxCancelDays int
		want          bool
	}{
		{"well before the window", now.Add(72 * time.Hour), 2, true},
		{"exactly at the window", now.Add(48 * time.Hour), 2, true},
		{"inside the window", now.Add(24 * time.Hour), 2, false},
		{"session already started", now.Add(-time.Hour), 2, false},
		{"fractional days count", now.Add(84 * time.Hour), 3, true}, // 3.5 days out
		{"fractional days too close", now.Add(60 * time.Hour), 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCancel(tt.sessionDate, now, tt.maxCancelDays); got != tt.want {
				t.Errorf("CanCancel(%v, now, %d) = %v, want %v",
					tt.sessionDate, tt.maxCancelDays, got, tt.want)
			}
		})
	}
}
