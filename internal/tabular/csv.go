package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"dutyboard/internal/schedule"
)

var (
	onCallHeader = []string{"start", "end", "type", "assignee_email", "called"}
	onDutyHeader = []string{"start", "end", "assignee_email", "notes"}
)

// EncodeOnCallCSV writes rows with a header line.
func EncodeOnCallCSV(rows []OnCallRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(onCallHeader)
	for _, r := range rows {
		_ = w.Write([]string{r.Start, r.End, r.Type, r.AssigneeEmail, r.Called})
	}
	w.Flush()
	return buf.Bytes()
}

// EncodeOnDutyCSV writes rows with a header line.
func EncodeOnDutyCSV(rows []OnDutyRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(onDutyHeader)
	for _, r := range rows {
		_ = w.Write([]string{r.Start, r.End, r.AssigneeEmail, r.Notes})
	}
	w.Flush()
	return buf.Bytes()
}

// DecodeOnCallCSV parses a CSV buffer into rows. A header line is
// detected by the first column not parsing as a date, so both headered
// and bare files import. Short records are an error; externally edited
// files are still expected to keep the column count.
func DecodeOnCallCSV(b []byte) ([]OnCallRow, error) {
	records, err := readRecords(b, len(onCallHeader))
	if err != nil {
		return nil, err
	}
	rows := make([]OnCallRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, OnCallRow{
			Start:         rec[0],
			End:           rec[1],
			Type:          rec[2],
			AssigneeEmail: rec[3],
			Called:        rec[4],
		})
	}
	return rows, nil
}

// DecodeOnDutyCSV parses a CSV buffer into on-duty rows.
func DecodeOnDutyCSV(b []byte) ([]OnDutyRow, error) {
	records, err := readRecords(b, len(onDutyHeader))
	if err != nil {
		return nil, err
	}
	rows := make([]OnDutyRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, OnDutyRow{
			Start:         rec[0],
			End:           rec[1],
			AssigneeEmail: rec[2],
			Notes:         rec[3],
		})
	}
	return rows, nil
}

func readRecords(b []byte, want int) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = want
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) > 0 && !schedule.Date(records[0][0]).Valid() {
		records = records[1:] // header line
	}
	return records, nil
}

// ExportOnCall renders a shift list straight to a CSV buffer.
func ExportOnCall(list []schedule.OnCallShift, byID map[string]schedule.Member) []byte {
	return EncodeOnCallCSV(OnCallRows(list, byID))
}

// ExportOnDuty renders an on-duty list straight to a CSV buffer.
func ExportOnDuty(list []schedule.OnDutyShift, byID map[string]schedule.Member) []byte {
	return EncodeOnDutyCSV(OnDutyRows(list, byID))
}

// ImportOnCall parses a CSV buffer into a fresh shift list.
func ImportOnCall(b []byte, byEmail map[string]schedule.Member) ([]schedule.OnCallShift, error) {
	rows, err := DecodeOnCallCSV(b)
	if err != nil {
		return nil, err
	}
	return OnCallFromRows(rows, byEmail), nil
}

// ImportOnDuty parses a CSV buffer into a fresh on-duty list.
func ImportOnDuty(b []byte, byEmail map[string]schedule.Member) ([]schedule.OnDutyShift, error) {
	rows, err := DecodeOnDutyCSV(b)
	if err != nil {
		return nil, err
	}
	return OnDutyFromRows(rows, byEmail), nil
}
