// Package tabular converts shift lists to and from the flat row/column
// representation used for bulk edit and backup. The column sets are the
// durable interchange contract: exports must re-import cleanly even after
// the file has been edited in an external spreadsheet tool.
package tabular

import (
	"strings"

	"dutyboard/internal/schedule"
)

// OnCallRow is one exported on-call shift. Called is the literal "yes"
// or "no"; import treats anything other than "yes" as false.
type OnCallRow struct {
	Start         string
	End           string
	Type          string
	AssigneeEmail string
	Called        string
}

// OnDutyRow is one exported on-duty shift.
type OnDutyRow struct {
	Start         string
	End           string
	AssigneeEmail string
	Notes         string
}

// OnCallRows renders one row per shift. When an assignee id has no roster
// member the raw id is emitted in the email column, so a round trip
// through an external tool does not silently lose the identifier.
func OnCallRows(list []schedule.OnCallShift, byID map[string]schedule.Member) []OnCallRow {
	rows := make([]OnCallRow, 0, len(list))
	for _, s := range list {
		email := s.AssigneeID
		if m, ok := byID[s.AssigneeID]; ok {
			email = m.Email
		}
		called := "no"
		if s.Called {
			called = "yes"
		}
		rows = append(rows, OnCallRow{
			Start:         string(s.Start),
			End:           string(s.End),
			Type:          string(s.Type),
			AssigneeEmail: email,
			Called:        called,
		})
	}
	return rows
}

// OnDutyRows renders one row per on-duty shift, same email fallback rule.
func OnDutyRows(list []schedule.OnDutyShift, byID map[string]schedule.Member) []OnDutyRow {
	rows := make([]OnDutyRow, 0, len(list))
	for _, s := range list {
		email := s.AssigneeID
		if m, ok := byID[s.AssigneeID]; ok {
			email = m.Email
		}
		rows = append(rows, OnDutyRow{
			Start:         string(s.Start),
			End:           string(s.End),
			AssigneeEmail: email,
			Notes:         s.Notes,
		})
	}
	return rows
}

// OnCallFromRows rebuilds shifts from imported rows. Every row gets a
// fresh id. Emails with no roster match become an empty assignee id, not
// an error: the caller can still see and reassign the orphaned shift.
func OnCallFromRows(rows []OnCallRow, byEmail map[string]schedule.Member) []schedule.OnCallShift {
	list := make([]schedule.OnCallShift, 0, len(rows))
	for _, r := range rows {
		assignee := ""
		if m, ok := byEmail[r.AssigneeEmail]; ok {
			assignee = m.ID
		}
		typ := schedule.ShiftType(r.Type)
		if typ != schedule.ShiftWeekend {
			typ = schedule.ShiftWeek
		}
		list = append(list, schedule.OnCallShift{
			ID:         schedule.NewShiftID("oc"),
			Start:      schedule.Date(r.Start),
			End:        schedule.Date(r.End),
			Type:       typ,
			AssigneeID: assignee,
			Called:     strings.EqualFold(strings.TrimSpace(r.Called), "yes"),
		})
	}
	return list
}

// OnDutyFromRows mirrors OnCallFromRows for the on-duty list.
func OnDutyFromRows(rows []OnDutyRow, byEmail map[string]schedule.Member) []schedule.OnDutyShift {
	list := make([]schedule.OnDutyShift, 0, len(rows))
	for _, r := range rows {
		assignee := ""
		if m, ok := byEmail[r.AssigneeEmail]; ok {
			assignee = m.ID
		}
		list = append(list, schedule.OnDutyShift{
			ID:         schedule.NewShiftID("od"),
			Start:      schedule.Date(r.Start),
			End:        schedule.Date(r.End),
			AssigneeID: assignee,
			Notes:      r.Notes,
		})
	}
	return list
}
