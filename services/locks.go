package services

import "sync"

// SeasonLocker serializes mutating operations per season. Schedule
// generation, score submission and playoff seeding for one season must
// never interleave, or two "season just finished" checks could both seed
// the bracket. One instance is shared by all services.
type SeasonLocker struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func NewSeasonLocker() *SeasonLocker {
	return &SeasonLocker{locks: make(map[int]*sync.Mutex)}
}

// Lock acquires the season's mutex and returns the unlock function.
func (l *SeasonLocker) Lock(seasonID int) func() {
	l.mu.Lock()
	m, ok := l.locks[seasonID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[seasonID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
