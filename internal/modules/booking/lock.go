package booking

import "sync"

// roomLocks hands out one mutex per room id so that the overlap check and
// the insert behind it form a critical section per room. Bookings against
// different rooms never serialize against each other.
type roomLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[int64]*sync.Mutex)}
}

// acquire locks the room's mutex and returns the matching unlock.
func (r *roomLocks) acquire(roomID int64) func() {
	r.mu.Lock()
	l, ok := r.locks[roomID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[roomID] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}
