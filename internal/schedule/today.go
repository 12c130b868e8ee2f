package schedule

// Assignments is the resolved "who is responsible right now" pair.
// Either pointer is nil when no shift of that kind covers today, or when
// the covering shift's assignee id has no matching roster member.
type Assignments struct {
	Day   *Member // from the on-duty list
	Night *Member // from the on-call list
}

// TodayAssignments containment-tests today against both shift lists.
//
// When several shifts overlap today the first match in list order wins;
// shift type plays no part in the tie-break.
func TodayAssignments(onDuty []OnDutyShift, onCall []OnCallShift, byID map[string]Member, today Date) Assignments {
	var a Assignments
	for _, s := range onDuty {
		if !s.Range().Contains(today) {
			continue
		}
		if m, ok := byID[s.AssigneeID]; ok {
			a.Day = &m
		}
		break
	}
	for _, s := range onCall {
		if !s.Range().Contains(today) {
			continue
		}
		if m, ok := byID[s.AssigneeID]; ok {
			a.Night = &m
		}
		break
	}
	return a
}
