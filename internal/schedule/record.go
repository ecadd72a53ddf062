package schedule

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Status is the derived classification of a task.
type Status string

const (
	StatusMain    Status = "Main Task"
	StatusOnTime  Status = "On Time"
	StatusDelayed Status = "Delayed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusMain, StatusOnTime, StatusDelayed}

// ParseStatus matches a status name case-insensitively, accepting the
// short forms main, ontime/on-time and delayed.
func ParseStatus(s string) (Status, error) {
	switch normalizeKey(s) {
	case "maintask", "main":
		return StatusMain, nil
	case "ontime":
		return StatusOnTime, nil
	case "delayed":
		return StatusDelayed, nil
	}
	return "", fmt.Errorf("invalid status %q, must be one of: main, on-time, delayed", s)
}

// Record is one task row.
type Record struct {
	// ID identifies the row for the lifetime of the session. It is not exported.
	ID     string    `json:"-"`
	Number float64   `json:"task_number"`
	Name   string    `json:"task_name"`
	Start  time.Time `json:"start_date"`
	End    time.Time `json:"end_date"`
}

// IsMain reports whether the task number has no fractional part.
func (r Record) IsMain() bool {
	return r.Number == math.Trunc(r.Number)
}

// Table is the session's task store.
type Table struct {
	Records []Record
}

// NewTable wraps records, assigning row IDs where missing.
func NewTable(records []Record) *Table {
	t := &Table{Records: make([]Record, 0, len(records))}
	for _, r := range records {
		t.Add(r)
	}
	return t
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Clone returns a deep copy sharing no state with t.
func (t *Table) Clone() *Table {
	c := &Table{Records: make([]Record, len(t.Records))}
	copy(c.Records, t.Records)
	return c
}

// Get returns the record with the given ID, or nil if not found.
func (t *Table) Get(id string) *Record {
	for i := range t.Records {
		if t.Records[i].ID == id {
			return &t.Records[i]
		}
	}
	return nil
}

// Index returns the position of the record with the given ID, or -1.
func (t *Table) Index(id string) int {
	for i := range t.Records {
		if t.Records[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends a record and returns its ID.
func (t *Table) Add(r Record) string {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	t.Records = append(t.Records, r)
	return r.ID
}

// Update applies fn to the record with the given ID.
func (t *Table) Update(id string, fn func(*Record)) error {
	r := t.Get(id)
	if r == nil {
		return fmt.Errorf("record %q not found", id)
	}
	keep := r.ID
	fn(r)
	r.ID = keep
	return nil
}

// Delete removes the record with the given ID.
func (t *Table) Delete(id string) error {
	i := t.Index(id)
	if i < 0 {
		return fmt.Errorf("record %q not found", id)
	}
	t.Records = append(t.Records[:i], t.Records[i+1:]...)
	return nil
}

// Sorted returns the records ordered by ascending task number. Records with
// equal numbers keep their table order.
func (t *Table) Sorted() []Record {
	sorted := make([]Record, len(t.Records))
	copy(sorted, t.Records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})
	return sorted
}

// Span returns the earliest start and latest end date. ok is false for an
// empty table.
func (t *Table) Span() (from, to time.Time, ok bool) {
	for i, r := range t.Records {
		if i == 0 || r.Start.Before(from) {
			from = r.Start
		}
		if i == 0 || r.End.After(to) {
			to = r.End
		}
	}
	return from, to, len(t.Records) > 0
}

// NextMainNumber returns the integer after the largest task number, for new rows.
func (t *Table) NextMainNumber() float64 {
	max := 0.0
	for _, r := range t.Records {
		if r.Number > max {
			max = r.Number
		}
	}
	return math.Floor(max) + 1
}
