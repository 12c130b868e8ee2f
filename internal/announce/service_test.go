package announce

import (
	"context"
	"strings"
	"testing"

	"dutyboard/internal/roster"
	"dutyboard/internal/schedule"
	logx "dutyboard/pkg/logx"
)

func testService() *Service {
	r := roster.New([]schedule.Member{
		{ID: "member-1", FullName: "John Doe", Email: "john.doe@example.com"},
		{ID: "member-2", FullName: "Jane Roe", Email: "jane.roe@example.com"},
	})
	store := schedule.NewStore(nil, "platform", logx.Nop())
	store.SetOnDuty("2025", []schedule.OnDutyShift{
		{ID: "od1", Start: "2025-03-03", End: "2025-03-09", AssigneeID: "member-1"},
	})
	store.SetOnCall("2025", []schedule.OnCallShift{
		{ID: "oc1", Start: "2025-03-03", End: "2025-03-09", Type: schedule.ShiftWeek, AssigneeID: "member-2"},
	})
	return New(Config{Enabled: true}, store, r, nil, logx.Nop())
}

func TestComposeBothAssigned(t *testing.T) {
	t.Parallel()
	msg := testService().Compose("2025-03-05")
	if !strings.Contains(msg, "2025-03-05") {
		t.Fatalf("message lacks date: %q", msg)
	}
	if !strings.Contains(msg, "On duty: John Doe") || !strings.Contains(msg, "On call: Jane Roe") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestComposeNobodyAssigned(t *testing.T) {
	t.Parallel()
	if msg := testService().Compose("2025-07-01"); msg != "" {
		t.Fatalf("expected empty message for an uncovered day, got %q", msg)
	}
}

func TestComposeOnlyOnCall(t *testing.T) {
	t.Parallel()
	s := testService()
	s.store.SetOnDuty("2025", nil)
	msg := s.Compose("2025-03-05")
	if strings.Contains(msg, "On duty") || !strings.Contains(msg, "On call: Jane Roe") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestApplyRejectsBadSpec(t *testing.T) {
	t.Parallel()
	s := testService()
	s.sender = nopSender{}
	if err := s.Apply(context.Background(), Config{Enabled: true, Spec: "not a cron spec"}); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestStartBadTimezone(t *testing.T) {
	t.Parallel()
	s := testService()
	s.sender = nopSender{}
	s.cfg.Timezone = "Mars/Olympus"
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

type nopSender struct{}

func (nopSender) SendText(_ context.Context, _ string) error { return nil }
