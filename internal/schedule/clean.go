package schedule

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nibzard/ganttboard/internal/workbook"
)

// CleanReport counts what Clean kept and dropped.
type CleanReport struct {
	Total          int
	Kept           int
	DroppedMissing int // a required cell was blank
	DroppedNumber  int // the task number did not parse
	DroppedDates   int // a date did not parse
}

// Dropped returns the total number of dropped rows.
func (r CleanReport) Dropped() int {
	return r.DroppedMissing + r.DroppedNumber + r.DroppedDates
}

// dateLayouts are tried in order for textual dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02.01.2006",
	"02.01.2006 15:04:05",
	"01/02/2006",
}

var errEmpty = errors.New("empty value")

// Clean converts a raw table into records. Rows with a blank required cell
// are dropped first; rows whose number or dates do not parse are dropped
// next. Nothing is reported to the user beyond the returned counts.
func Clean(raw *workbook.RawTable) (*Table, CleanReport) {
	report := CleanReport{Total: len(raw.Rows)}
	table := &Table{Records: make([]Record, 0, len(raw.Rows))}

	for _, row := range raw.Rows {
		if hasMissing(row) {
			report.DroppedMissing++
			continue
		}
		number, err := ParseNumber(row.Cells[workbook.Number])
		if err != nil {
			report.DroppedNumber++
			continue
		}
		start, errStart := parseDate(row.Cells[workbook.Start], raw.Date1904)
		end, errEnd := parseDate(row.Cells[workbook.End], raw.Date1904)
		if errStart != nil || errEnd != nil {
			report.DroppedDates++
			continue
		}
		table.Add(Record{
			Number: number,
			Name:   NormalizeName(row.Cells[workbook.Name]),
			Start:  start,
			End:    end,
		})
	}

	report.Kept = table.Len()
	return table, report
}

func hasMissing(row workbook.Row) bool {
	for col := range workbook.Columns {
		if row.Missing(col) {
			return true
		}
	}
	return false
}

// Clean drops records that would not survive the raw cleaning pass: blank
// names, zero dates or a non-finite number. On a table produced by Clean it
// removes nothing. It returns the number of removed records.
func (t *Table) Clean() int {
	kept := t.Records[:0]
	for _, r := range t.Records {
		if strings.TrimSpace(r.Name) == "" || r.Start.IsZero() || r.End.IsZero() ||
			math.IsNaN(r.Number) || math.IsInf(r.Number, 0) {
			continue
		}
		kept = append(kept, r)
	}
	removed := len(t.Records) - len(kept)
	t.Records = kept
	return removed
}

// ParseNumber parses a task number. A comma is accepted as decimal separator.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmpty
	}
	n, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("parse task number %q: %w", s, err)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("parse task number %q: not a finite number", s)
	}
	return n, nil
}

// ParseDate parses a date cell: an Excel serial number or one of the
// textual layouts. The result is a wall-clock time in the local zone.
func ParseDate(s string) (time.Time, error) {
	return parseDate(s, false)
}

func parseDate(s string, date1904 bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmpty
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || math.IsNaN(serial) || math.IsInf(serial, 0) {
			return time.Time{}, fmt.Errorf("parse date %q: serial out of range", s)
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
		}
		return localWall(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			if layout == time.RFC3339 {
				return t.In(time.Local), nil
			}
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: unrecognized format", s)
}

// localWall reinterprets the wall clock of t in the local zone. Spreadsheet
// dates carry no zone and are compared against the local clock.
func localWall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}
