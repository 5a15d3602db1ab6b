package ticket

import "sync"

// sessionLocks serializes seat-changing operations per session in strict
// mode. The default file backend intentionally skips this to preserve the
// legacy read-modify-write contract.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[int]*sync.Mutex)}
}

func (l *sessionLocks) get(sessionID int) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, exists := l.locks[sessionID]
	if !exists {
		lock = &sync.Mutex{}
		l.locks[sessionID] = lock
	}
	return lock
}

// lock acquires the per-session mutex and returns the unlock func.
func (l *sessionLocks) lock(sessionID int) func() {
	lock := l.get(sessionID)
	lock.Lock()
	return lock.Unlock
}

// lockPair acquires two session mutexes in id order so concurrent edits
// moving tickets between the same pair of sessions cannot deadlock.
func (l *sessionLocks) lockPair(a, b int) func() {
	if a == b {
		return l.lock(a)
	}
	if a > b {
		a, b = b, a
	}
	first, second := l.get(a), l.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
