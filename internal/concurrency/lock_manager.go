package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. The settlement engine uses it to
// serialize closes of the same hunt within one process.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it on first use.
// Locks are never evicted; the key space (one per active hunt) stays small.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
