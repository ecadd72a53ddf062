package schedule

import "time"

// Classify returns the status of r at now. The number check comes first; a
// sub-task ending exactly at now is on time.
func Classify(r Record, now time.Time) Status {
	if r.IsMain() {
		return StatusMain
	}
	if r.End.Before(now) {
		return StatusDelayed
	}
	return StatusOnTime
}

// Classify returns the status of every record in table order.
func (t *Table) Classify(now time.Time) []Status {
	statuses := make([]Status, 0, t.Len())
	if t == nil {
		return statuses
	}
	for _, r := range t.Records {
		statuses = append(statuses, Classify(r, now))
	}
	return statuses
}

// Row is a record prepared for one render pass.
type Row struct {
	Record
	Status  Status
	Display string
}

// Rows classifies and formats every record in table order. now must be
// captured once per pass by the caller.
func (t *Table) Rows(now time.Time, limit int) []Row {
	rows := make([]Row, 0, t.Len())
	if t == nil {
		return rows
	}
	for _, r := range t.Records {
		rows = append(rows, Row{
			Record:  r,
			Status:  Classify(r, now),
			Display: DisplayName(r, limit),
		})
	}
	return rows
}

// Counts tallies rows per status.
func Counts(rows []Row) map[Status]int {
	counts := map[Status]int{
		StatusMain:    0,
		StatusOnTime:  0,
		StatusDelayed: 0,
	}
	for _, r := range rows {
		counts[r.Status]++
	}
	return counts
}

// Filter returns the rows with the given status.
func Filter(rows []Row, status Status) []Row {
	var filtered []Row
	for _, r := range rows {
		if r.Status == status {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
