package schedule

import (
	"fmt"
	"sync"
	"time"
)

// Default length of a freshly added shift, in days.
const defaultShiftDays = 7

var (
	idMu     sync.Mutex
	idLastMS int64
)

// NewShiftID generates "<prefix>_<millis>". Within a single process the
// millisecond part is forced strictly monotonic so rapid calls (e.g. a
// tabular import loop) never collide.
func NewShiftID(prefix string) string {
	idMu.Lock()
	defer idMu.Unlock()
	ms := time.Now().UnixMilli()
	if ms <= idLastMS {
		ms = idLastMS + 1
	}
	idLastMS = ms
	return fmt.Sprintf("%s_%d", prefix, ms)
}

// defaultAssignee picks the first roster member, or "" with an empty roster.
// An empty assignee is not an error; the shift stays editable.
func defaultAssignee(members []Member) string {
	if len(members) == 0 {
		return ""
	}
	return members[0].ID
}

func defaultRange(today Date) Range {
	end, err := AddDays(today, defaultShiftDays-1)
	if err != nil {
		// today came from time.Now via DateOf, so this cannot happen;
		// fall back to a degenerate-but-valid single week anyway.
		return Range{Start: today, End: today}
	}
	return Range{Start: today, End: end}
}

// AddOnCall appends a new week-long on-call shift starting today and
// returns the new list. The input list is never mutated.
func AddOnCall(list []OnCallShift, members []Member, today Date) []OnCallShift {
	r := defaultRange(today)
	next := append(append([]OnCallShift(nil), list...), OnCallShift{
		ID:         NewShiftID("oc"),
		Start:      r.Start,
		End:        r.End,
		Type:       ShiftWeek,
		AssigneeID: defaultAssignee(members),
	})
	return next
}

// AddOnCallAfter inserts a new shift immediately after the shift with
// referenceID, starting on that shift's end date and lasting exactly as
// long. Unknown reference ids are a no-op.
func AddOnCallAfter(list []OnCallShift, referenceID string, members []Member) []OnCallShift {
	idx := -1
	for i := range list {
		if list[i].ID == referenceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list
	}
	ref := list[idx]
	days, err := ref.Range().Days()
	if err != nil {
		return list
	}
	end, err := AddDays(ref.End, days-1)
	if err != nil {
		return list
	}
	s := OnCallShift{
		ID:         NewShiftID("oc"),
		Start:      ref.End,
		End:        end,
		Type:       ref.Type,
		AssigneeID: defaultAssignee(members),
	}
	next := make([]OnCallShift, 0, len(list)+1)
	next = append(next, list[:idx+1]...)
	next = append(next, s)
	next = append(next, list[idx+1:]...)
	return next
}

// SplitOnCall replaces the target shift with two halves occupying its
// position, ids "<id>_a" and "<id>_b". Single-day shifts and unknown ids
// are no-ops.
func SplitOnCall(list []OnCallShift, targetID string) []OnCallShift {
	idx := -1
	for i := range list {
		if list[i].ID == targetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list
	}
	t := list[idx]
	first, second, err := MidpointSplit(t.Range())
	if err != nil {
		return list
	}
	a := OnCallShift{ID: t.ID + "_a", Start: first.Start, End: first.End, Type: t.Type, AssigneeID: t.AssigneeID, Called: t.Called}
	b := OnCallShift{ID: t.ID + "_b", Start: second.Start, End: second.End, Type: t.Type, AssigneeID: t.AssigneeID, Called: t.Called}
	next := make([]OnCallShift, 0, len(list)+1)
	next = append(next, list[:idx]...)
	next = append(next, a, b)
	next = append(next, list[idx+1:]...)
	return next
}

// DeleteOnCall removes the shift with the given id; unknown ids are a
// no-op so the UI may race a delete against another action.
func DeleteOnCall(list []OnCallShift, id string) []OnCallShift {
	for i := range list {
		if list[i].ID == id {
			next := make([]OnCallShift, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			return next
		}
	}
	return list
}

// OnCallPatch carries the fields UpdateOnCall may change; nil means keep.
type OnCallPatch struct {
	Start      *Date
	End        *Date
	Type       *ShiftType
	AssigneeID *string
	Called     *bool
}

// UpdateOnCall shallow-merges patch into the matching shift. Unknown ids
// are a no-op.
func UpdateOnCall(list []OnCallShift, id string, patch OnCallPatch) []OnCallShift {
	for i := range list {
		if list[i].ID != id {
			continue
		}
		next := append([]OnCallShift(nil), list...)
		s := &next[i]
		if patch.Start != nil {
			s.Start = *patch.Start
		}
		if patch.End != nil {
			s.End = *patch.End
		}
		if patch.Type != nil {
			s.Type = *patch.Type
		}
		if patch.AssigneeID != nil {
			s.AssigneeID = *patch.AssigneeID
		}
		if patch.Called != nil {
			s.Called = *patch.Called
		}
		return next
	}
	return list
}

// ---- on-duty variants ----

// AddOnDuty appends a new week-long on-duty shift starting today.
func AddOnDuty(list []OnDutyShift, members []Member, today Date) []OnDutyShift {
	r := defaultRange(today)
	return append(append([]OnDutyShift(nil), list...), OnDutyShift{
		ID:         NewShiftID("od"),
		Start:      r.Start,
		End:        r.End,
		AssigneeID: defaultAssignee(members),
	})
}

// AddOnDutyAfter mirrors AddOnCallAfter for the on-duty list.
func AddOnDutyAfter(list []OnDutyShift, referenceID string, members []Member) []OnDutyShift {
	idx := -1
	for i := range list {
		if list[i].ID == referenceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list
	}
	ref := list[idx]
	days, err := ref.Range().Days()
	if err != nil {
		return list
	}
	end, err := AddDays(ref.End, days-1)
	if err != nil {
		return list
	}
	s := OnDutyShift{
		ID:         NewShiftID("od"),
		Start:      ref.End,
		End:        end,
		AssigneeID: defaultAssignee(members),
	}
	next := make([]OnDutyShift, 0, len(list)+1)
	next = append(next, list[:idx+1]...)
	next = append(next, s)
	next = append(next, list[idx+1:]...)
	return next
}

// SplitOnDuty mirrors SplitOnCall for the on-duty list.
func SplitOnDuty(list []OnDutyShift, targetID string) []OnDutyShift {
	idx := -1
	for i := range list {
		if list[i].ID == targetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list
	}
	t := list[idx]
	first, second, err := MidpointSplit(t.Range())
	if err != nil {
		return list
	}
	a := OnDutyShift{ID: t.ID + "_a", Start: first.Start, End: first.End, AssigneeID: t.AssigneeID, Notes: t.Notes}
	b := OnDutyShift{ID: t.ID + "_b", Start: second.Start, End: second.End, AssigneeID: t.AssigneeID, Notes: t.Notes}
	next := make([]OnDutyShift, 0, len(list)+1)
	next = append(next, list[:idx]...)
	next = append(next, a, b)
	next = append(next, list[idx+1:]...)
	return next
}

// DeleteOnDuty mirrors DeleteOnCall for the on-duty list.
func DeleteOnDuty(list []OnDutyShift, id string) []OnDutyShift {
	for i := range list {
		if list[i].ID == id {
			next := make([]OnDutyShift, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			return next
		}
	}
	return list
}

// OnDutyPatch carries the fields UpdateOnDuty may change; nil means keep.
type OnDutyPatch struct {
	Start      *Date
	End        *Date
	AssigneeID *string
	Notes      *string
}

// UpdateOnDuty shallow-merges patch into the matching shift.
func UpdateOnDuty(list []OnDutyShift, id string, patch OnDutyPatch) []OnDutyShift {
	for i := range list {
		if list[i].ID != id {
			continue
		}
		next := append([]OnDutyShift(nil), list...)
		s := &next[i]
		if patch.Start != nil {
			s.Start = *patch.Start
		}
		if patch.End != nil {
			s.End = *patch.End
		}
		if patch.AssigneeID != nil {
			s.AssigneeID = *patch.AssigneeID
		}
		if patch.Notes != nil {
			s.Notes = *patch.Notes
		}
		return next
	}
	return list
}
