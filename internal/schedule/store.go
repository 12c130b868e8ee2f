package schedule

import (
	"context"
	"encoding/json"
	"sync"

	"dutyboard/internal/storage"
	"dutyboard/pkg/logx"
)

// Store owns the per-team, per-year shift lists for the lifetime of the
// process. The persistence layer is a passive mirror: every mutation
// happens in memory first and is then flushed.
//
// Schedule data is non-critical, so persistence faults never propagate:
// a missing or corrupt blob loads as an empty schedule and failed saves
// are logged and swallowed.
type Store struct {
	teamKey string
	kv      storage.Store // nil when persistence is disabled
	log     logx.Logger

	mu    sync.Mutex
	years map[string]YearData
}

func storageKey(teamKey string) string { return "schedule:" + teamKey }

// NewStore loads the team's year-indexed schedule map eagerly.
// It never fails; see Store for the degradation rules.
func NewStore(kv storage.Store, teamKey string, log logx.Logger) *Store {
	if log.IsZero() {
		log = logx.Nop()
	}
	s := &Store{teamKey: teamKey, kv: kv, log: log, years: map[string]YearData{}}
	s.load()
	return s
}

func (s *Store) TeamKey() string { return s.teamKey }

func (s *Store) load() {
	if s.kv == nil {
		return
	}
	b, ok, err := s.kv.Get(context.Background(), storageKey(s.teamKey))
	if err != nil {
		s.log.Warn("schedule load failed; starting empty", logx.String("team", s.teamKey), logx.Err(err))
		return
	}
	if !ok {
		return
	}
	var years map[string]YearData
	if err := json.Unmarshal(b, &years); err != nil {
		s.log.Warn("schedule blob unparsable; starting empty", logx.String("team", s.teamKey), logx.Err(err))
		return
	}
	if years != nil {
		s.years = years
	}
}

// Year returns the stored lists for a 4-digit year, empty lists when the
// year was never touched. Switching years is a pure read; nothing is
// discarded, so revisiting a year reproduces its last saved state.
func (s *Store) Year(year string) YearData {
	s.mu.Lock()
	defer s.mu.Unlock()
	yd := s.years[year]
	return YearData{
		OnCall: append([]OnCallShift(nil), yd.OnCall...),
		OnDuty: append([]OnDutyShift(nil), yd.OnDuty...),
	}
}

// Years lists the years that currently hold data, unordered.
func (s *Store) Years() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.years))
	for y := range s.years {
		out = append(out, y)
	}
	return out
}

// SetOnCall replaces the year's on-call list in memory and flushes.
func (s *Store) SetOnCall(year string, list []OnCallShift) {
	s.mu.Lock()
	yd := s.years[year]
	yd.OnCall = append([]OnCallShift(nil), list...)
	s.years[year] = yd
	s.mu.Unlock()
	s.Save()
}

// SetOnDuty replaces the year's on-duty list in memory and flushes.
func (s *Store) SetOnDuty(year string, list []OnDutyShift) {
	s.mu.Lock()
	yd := s.years[year]
	yd.OnDuty = append([]OnDutyShift(nil), list...)
	s.years[year] = yd
	s.mu.Unlock()
	s.Save()
}

// Save writes the full year-indexed map to the persistence collaborator.
// Failures are logged, not returned.
func (s *Store) Save() {
	if s.kv == nil {
		return
	}
	s.mu.Lock()
	b, err := json.Marshal(s.years)
	s.mu.Unlock()
	if err != nil {
		s.log.Warn("schedule marshal failed; not saved", logx.String("team", s.teamKey), logx.Err(err))
		return
	}
	if err := s.kv.Put(context.Background(), storageKey(s.teamKey), b); err != nil {
		s.log.Warn("schedule save failed", logx.String("team", s.teamKey), logx.Err(err))
	}
}
