package schedule

import (
	"context"
	"sync"
	"testing"

	logx "dutyboard/pkg/logx"
)

// memKV is an in-memory stand-in for the persistence collaborator.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error // returned by Get/Put when set
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, false, m.err
	}
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Close() error { return nil }

func TestStoreLoadMissingKey(t *testing.T) {
	t.Parallel()
	s := NewStore(newMemKV(), "platform", logx.Nop())
	yd := s.Year("2025")
	if len(yd.OnCall) != 0 || len(yd.OnDuty) != 0 {
		t.Fatalf("expected empty year, got %+v", yd)
	}
}

func TestStoreLoadCorruptBlob(t *testing.T) {
	t.Parallel()
	kv := newMemKV()
	kv.data["schedule:platform"] = []byte("invalid json")

	s := NewStore(kv, "platform", logx.Nop())
	yd := s.Year("2025")
	if len(yd.OnCall) != 0 || len(yd.OnDuty) != 0 {
		t.Fatalf("corrupt blob must load as empty, got %+v", yd)
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	kv := newMemKV()
	s := NewStore(kv, "platform", logx.Nop())
	s.SetOnCall("2025", []OnCallShift{{ID: "oc1", Start: "2025-01-01", End: "2025-01-07", Type: ShiftWeek, AssigneeID: "member-1", Called: true}})
	s.SetOnDuty("2025", []OnDutyShift{{ID: "od1", Start: "2025-01-01", End: "2025-01-05", AssigneeID: "member-2", Notes: "n"}})

	reloaded := NewStore(kv, "platform", logx.Nop())
	yd := reloaded.Year("2025")
	if len(yd.OnCall) != 1 || yd.OnCall[0].ID != "oc1" || !yd.OnCall[0].Called {
		t.Fatalf("on-call did not survive reload: %+v", yd.OnCall)
	}
	if len(yd.OnDuty) != 1 || yd.OnDuty[0].Notes != "n" {
		t.Fatalf("on-duty did not survive reload: %+v", yd.OnDuty)
	}
}

func TestStoreYearIsolation(t *testing.T) {
	t.Parallel()
	s := NewStore(newMemKV(), "platform", logx.Nop())
	s.SetOnCall("2024", []OnCallShift{{ID: "old", Start: "2024-01-01", End: "2024-01-07"}})
	s.SetOnCall("2025", []OnCallShift{{ID: "new", Start: "2025-01-01", End: "2025-01-07"}})
	s.SetOnCall("2025", nil)

	if got := s.Year("2024").OnCall; len(got) != 1 || got[0].ID != "old" {
		t.Fatalf("2024 changed by 2025 mutations: %+v", got)
	}
	if got := s.Year("2025").OnCall; len(got) != 0 {
		t.Fatalf("expected empty 2025, got %+v", got)
	}
}

func TestStoreSaveFailureSwallowed(t *testing.T) {
	t.Parallel()
	kv := newMemKV()
	s := NewStore(kv, "platform", logx.Nop())
	kv.err = context.DeadlineExceeded

	// Must not panic or propagate; in-memory state still advances.
	s.SetOnCall("2025", []OnCallShift{{ID: "oc1", Start: "2025-01-01", End: "2025-01-07"}})
	if got := s.Year("2025").OnCall; len(got) != 1 {
		t.Fatalf("in-memory state lost on save failure: %+v", got)
	}
}

func TestStoreWithoutPersistence(t *testing.T) {
	t.Parallel()
	s := NewStore(nil, "platform", logx.Nop())
	s.SetOnCall("2025", []OnCallShift{{ID: "oc1", Start: "2025-01-01", End: "2025-01-07"}})
	if got := s.Year("2025").OnCall; len(got) != 1 {
		t.Fatalf("nil storage must still work in memory: %+v", got)
	}
}

func TestStoreYearReturnsCopy(t *testing.T) {
	t.Parallel()
	s := NewStore(nil, "platform", logx.Nop())
	s.SetOnCall("2025", []OnCallShift{{ID: "oc1", Start: "2025-01-01", End: "2025-01-07"}})
	yd := s.Year("2025")
	yd.OnCall[0].ID = "mutated"
	if s.Year("2025").OnCall[0].ID != "oc1" {
		t.Fatal("Year must return a copy, not internal state")
	}
}
