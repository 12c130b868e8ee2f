package schedule

import "sync"

// Engine ties a team's Store to per-year History managers so every caller
// mutates through the same undo stack for a given year.
type Engine struct {
	store *Store

	mu   sync.Mutex
	hist map[string]*History
}

func NewEngine(store *Store) *Engine {
	return &Engine{store: store, hist: map[string]*History{}}
}

func (e *Engine) Store() *Store { return e.store }

// History returns the year's mutation entry point, creating it on first use.
func (e *Engine) History(year string) *History {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.hist[year]
	if !ok {
		h = NewHistory(e.store, year)
		e.hist[year] = h
	}
	return h
}
