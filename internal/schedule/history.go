package schedule

import (
	"sync"
	"time"
)

const (
	// MaxHistorySize bounds the undo stack; the oldest snapshot is
	// evicted when a push would exceed it.
	MaxHistorySize = 10

	// debounceWindow coalesces mutations belonging to one user gesture
	// into a single history entry.
	debounceWindow = 300 * time.Millisecond
)

type snapshot struct {
	onCall []OnCallShift
	onDuty []OnDutyShift
}

// History wraps a Store's mutations for one year with a bounded, debounced
// undo stack of full-state snapshots. Undo is O(1): pop and restore.
//
// The debounce is a plain timestamp comparison, not a deferred timer, so
// the mutation path stays fully synchronous: a mutation arriving within
// the window is applied immediately but records no new snapshot.
type History struct {
	store *Store
	year  string

	mu       sync.Mutex
	stack    []snapshot
	lastPush time.Time

	now func() time.Time // injectable for tests
}

func NewHistory(store *Store, year string) *History {
	return &History{store: store, year: year, now: time.Now}
}

func (h *History) Year() string { return h.year }

// Store exposes the underlying store for read-only queries.
func (h *History) Store() *Store { return h.store }

// pushLocked records the current year state unless still inside the
// debounce window of the previous push.
func (h *History) pushLocked() {
	now := h.now()
	if !h.lastPush.IsZero() && now.Sub(h.lastPush) < debounceWindow {
		return
	}
	yd := h.store.Year(h.year)
	h.stack = append(h.stack, snapshot{onCall: yd.OnCall, onDuty: yd.OnDuty})
	if len(h.stack) > MaxHistorySize {
		h.stack = h.stack[len(h.stack)-MaxHistorySize:]
	}
	h.lastPush = now
}

// SetOnCall snapshots the pre-mutation state, then commits the new list.
func (h *History) SetOnCall(list []OnCallShift) {
	h.mu.Lock()
	h.pushLocked()
	h.mu.Unlock()
	h.store.SetOnCall(h.year, list)
}

// SetOnDuty snapshots the pre-mutation state, then commits the new list.
func (h *History) SetOnDuty(list []OnDutyShift) {
	h.mu.Lock()
	h.pushLocked()
	h.mu.Unlock()
	h.store.SetOnDuty(h.year, list)
}

// Undo pops the most recent snapshot and restores it verbatim as the new
// current state. Undo itself pushes nothing: repeated calls walk further
// back. Reports whether anything was undone.
func (h *History) Undo() bool {
	h.mu.Lock()
	if len(h.stack) == 0 {
		h.mu.Unlock()
		return false
	}
	top := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	// Reset the gesture window so the next mutation records a snapshot.
	h.lastPush = time.Time{}
	h.mu.Unlock()

	h.store.SetOnCall(h.year, top.onCall)
	h.store.SetOnDuty(h.year, top.onDuty)
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack) > 0
}

// Save forces an immediate flush to the persistence layer, bypassing any
// debounce considerations. Used for explicit "Save" actions.
func (h *History) Save() {
	h.store.Save()
}
