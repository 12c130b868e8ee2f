package schedule

import "testing"

func TestTodayAssignments(t *testing.T) {
	t.Parallel()
	byID := MembersByID(testMembers)
	onDuty := []OnDutyShift{
		{ID: "od1", Start: "2025-03-03", End: "2025-03-09", AssigneeID: "member-1"},
		{ID: "od2", Start: "2025-03-10", End: "2025-03-16", AssigneeID: "member-2"},
	}
	onCall := []OnCallShift{
		{ID: "oc1", Start: "2025-03-01", End: "2025-03-07", Type: ShiftWeek, AssigneeID: "member-2"},
	}

	a := TodayAssignments(onDuty, onCall, byID, "2025-03-05")
	if a.Day == nil || a.Day.ID != "member-1" {
		t.Fatalf("Day = %+v, want member-1", a.Day)
	}
	if a.Night == nil || a.Night.ID != "member-2" {
		t.Fatalf("Night = %+v, want member-2", a.Night)
	}

	// Boundary days are included.
	a = TodayAssignments(onDuty, onCall, byID, "2025-03-16")
	if a.Day == nil || a.Day.ID != "member-2" {
		t.Fatalf("Day on range end = %+v, want member-2", a.Day)
	}
	if a.Night != nil {
		t.Fatalf("Night = %+v, want nil past the on-call range", a.Night)
	}
}

func TestTodayAssignmentsGap(t *testing.T) {
	t.Parallel()
	a := TodayAssignments(nil, nil, MembersByID(testMembers), "2025-12-31")
	if a.Day != nil || a.Night != nil {
		t.Fatalf("expected no assignments for an empty schedule, got %+v", a)
	}
}

func TestTodayAssignmentsUnknownAssignee(t *testing.T) {
	t.Parallel()
	onCall := []OnCallShift{{ID: "oc1", Start: "2025-03-01", End: "2025-03-07", AssigneeID: "left-the-team"}}
	a := TodayAssignments(nil, onCall, MembersByID(testMembers), "2025-03-05")
	if a.Night != nil {
		t.Fatalf("unknown assignee must resolve to nil, got %+v", a.Night)
	}
}

// Overlapping shifts resolve to the first match in list order, regardless
// of shift type.
func TestTodayAssignmentsOverlapFirstWins(t *testing.T) {
	t.Parallel()
	onCall := []OnCallShift{
		{ID: "oc1", Start: "2025-03-01", End: "2025-03-07", Type: ShiftWeek, AssigneeID: "member-1"},
		{ID: "oc2", Start: "2025-03-07", End: "2025-03-09", Type: ShiftWeekend, AssigneeID: "member-2"},
	}
	// Both shifts cover 2025-03-07; the weekend-typed one is listed second.
	a := TodayAssignments(nil, onCall, MembersByID(testMembers), "2025-03-07")
	if a.Night == nil || a.Night.ID != "member-1" {
		t.Fatalf("Night = %+v, want first-listed member-1", a.Night)
	}

	// Reversing the list flips the winner.
	rev := []OnCallShift{onCall[1], onCall[0]}
	a = TodayAssignments(nil, rev, MembersByID(testMembers), "2025-03-07")
	if a.Night == nil || a.Night.ID != "member-2" {
		t.Fatalf("Night = %+v, want first-listed member-2", a.Night)
	}
}
