package schedule

// Member is a roster entry. Members are owned by the roster collaborator;
// the engine only reads them. Shifts reference members by AssigneeID as a
// weak reference: an id with no matching member keeps the shift valid, it
// just resolves to no assignee.
type Member struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Team     string `json:"team,omitempty"`
}

// ShiftType labels the rotation cadence an on-call shift was created for.
// It does not constrain which calendar days the range may cover: a "week"
// shift may span a weekend and vice versa.
type ShiftType string

const (
	ShiftWeek    ShiftType = "week"
	ShiftWeekend ShiftType = "weekend"
)

// OnCallShift is an inclusive date range during which a member is the
// after-hours/escalation contact. Called marks whether the on-call person
// was actually paged.
type OnCallShift struct {
	ID         string    `json:"id"`
	Start      Date      `json:"start"`
	End        Date      `json:"end"`
	Type       ShiftType `json:"type"`
	AssigneeID string    `json:"assignee_id"`
	Called     bool      `json:"called"`
}

func (s OnCallShift) Range() Range { return Range{Start: s.Start, End: s.End} }

// OnDutyShift is an inclusive date range during which a member is the
// primary daytime responder.
type OnDutyShift struct {
	ID         string `json:"id"`
	Start      Date   `json:"start"`
	End        Date   `json:"end"`
	AssigneeID string `json:"assignee_id"`
	Notes      string `json:"notes,omitempty"`
}

func (s OnDutyShift) Range() Range { return Range{Start: s.Start, End: s.End} }

// YearData holds one year's shift lists. The engine does not require the
// lists to be sorted or non-overlapping; overlap resolution happens at
// read time in the today-assignment resolver.
type YearData struct {
	OnCall []OnCallShift `json:"on_call"`
	OnDuty []OnDutyShift `json:"on_duty"`
}

// MembersByID builds the id lookup used by the resolver and tabular export.
func MembersByID(members []Member) map[string]Member {
	m := make(map[string]Member, len(members))
	for _, mem := range members {
		m[mem.ID] = mem
	}
	return m
}

// MembersByEmail builds the reverse lookup used by tabular import.
func MembersByEmail(members []Member) map[string]Member {
	m := make(map[string]Member, len(members))
	for _, mem := range members {
		if mem.Email != "" {
			m[mem.Email] = mem
		}
	}
	return m
}
