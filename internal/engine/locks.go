package engine

import (
	"context"
	"sort"
	"sync"
)

// ticketLocks serializes assignment operations per ticket id. Each id maps to
// a one-slot channel used as a cancellable mutex, so a caller whose deadline
// expires while queued gives up without ever touching the ticket.
type ticketLocks struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newTicketLocks() *ticketLocks {
	return &ticketLocks{slots: make(map[string]chan struct{})}
}

func (l *ticketLocks) slot(id string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[id]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[id] = s
	}
	return s
}

// Acquire takes the lock for one ticket, or fails when ctx is done first.
func (l *ticketLocks) Acquire(ctx context.Context, id string) error {
	select {
	case l.slot(id) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ErrTimeout
	}
}

func (l *ticketLocks) Release(id string) {
	<-l.slot(id)
}

// AcquireAll takes the locks for a set of tickets in sorted id order, which
// keeps two overlapping bulk operations from deadlocking each other. On
// failure every lock taken so far is released.
func (l *ticketLocks) AcquireAll(ctx context.Context, ids []string) error {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	for i, id := range sorted {
		if err := l.Acquire(ctx, id); err != nil {
			for j := 0; j < i; j++ {
				l.Release(sorted[j])
			}
			return err
		}
	}
	return nil
}

func (l *ticketLocks) ReleaseAll(ids []string) {
	for _, id := range ids {
		l.Release(id)
	}
}
