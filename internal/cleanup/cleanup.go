// Package cleanup prunes stale sessions in the background so the
// collections do not grow without bound.
package cleanup

import (
	"context"
	"time"

	"cinemabackend/internal/data"
	"cinemabackend/internal/logger"
)

const (
	// Sessions older than this with no sold tickets are eligible for pruning.
	retentionPeriod = 30 * 24 * time.Hour
	// Cap per run so a backlog never turns into one huge delete burst.
	maxDeletionsPerRun = 25
	cleanupHour        = 2 // 2 AM local
)

// StartRoutine runs a daily prune until the context is cancelled.
func StartRoutine(ctx context.Context, store data.Store) {
	logger.LogInfo("Session cleanup routine started (retention %v)", retentionPeriod)
	for {
		next := nextRunTime(time.Now())
		select {
		case <-ctx.Done():
			logger.LogInfo("Session cleanup routine stopped")
			return
		case <-time.After(time.Until(next)):
		}

		deleted, err := PruneSessions(store, time.Now())
		if err != nil {
			logger.LogError("Session cleanup failed: %v", err)
			continue
		}
		if deleted > 0 {
			logger.LogInfo("Session cleanup removed %d stale session(s)", deleted)
		}
	}
}

// nextRunTime returns the next cleanupHour strictly after now.
func nextRunTime(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), cleanupHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// PruneSessions deletes past sessions beyond the retention period that have
// no tickets. Sessions with tickets are kept so sales history stays intact.
func PruneSessions(store data.Store, now time.Time) (int, error) {
	sessions, err := store.Sessions().List()
	if err != nil {
		return 0, err
	}
	cutoff := now.Add(-retentionPeriod)

	deleted := 0
	for _, sess := range sessions {
		if deleted >= maxDeletionsPerRun {
			break
		}
		if !sess.Date.Before(cutoff) {
			continue
		}
		tickets, err := store.Tickets().ListBySession(sess.ID)
		if err != nil {
			return deleted, err
		}
		if len(tickets) > 0 {
			continue
		}
		if err := store.Sessions().Delete(sess.ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
