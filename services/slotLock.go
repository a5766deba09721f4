package services

import (
	"sort"
	"sync"
	"time"

	"go-restaurant-booking/helpers"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// slotLocks serialises check-then-write sequences per (table, date).
// Entries are reference counted and dropped once released.
type slotLocks struct {
	mu    sync.Mutex
	locks map[string]*slotLock
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

func newSlotLocks() *slotLocks {
	return &slotLocks{locks: make(map[string]*slotLock)}
}

// lockTable locks the day before, the day and the day after for each (table, date)
// pair, since a window crossing midnight can collide with a neighbouring day.
// Keys are taken in sorted order.
func (l *slotLocks) lockTable(pairs ...tableDate) func() {
	seen := make(map[string]bool)
	var keys []string
	for _, p := range pairs {
		for _, d := range helpers.NeighbourDates(p.date) {
			key := p.tableID.Hex() + "|" + helpers.FormatDate(d)
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)

	held := make([]*slotLock, 0, len(keys))
	for _, key := range keys {
		l.mu.Lock()
		entry, ok := l.locks[key]
		if !ok {
			entry = &slotLock{}
			l.locks[key] = entry
		}
		entry.refs++
		l.mu.Unlock()
		entry.mu.Lock()
		held = append(held, entry)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.mu.Lock()
			held[i].refs--
			if held[i].refs == 0 {
				delete(l.locks, keys[i])
			}
			l.mu.Unlock()
		}
	}
}

type tableDate struct {
	tableID primitive.ObjectID
	date    time.Time
}
