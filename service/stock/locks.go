package stock

import "sync"

// itemLocks hands out one mutex per item id. Holding the mutex across
// the whole read-validate-write transaction serializes mutations (and
// deletes) on the same item; different items proceed concurrently.
type itemLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newItemLocks() *itemLocks {
	return &itemLocks{locks: make(map[uint]*sync.Mutex)}
}

func (l *itemLocks) forItem(id uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}
