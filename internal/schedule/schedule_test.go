package schedule

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/ganttboard/internal/testutil"
	"github.com/nibzard/ganttboard/internal/workbook"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func rawRow(number, name, start, end string) workbook.Row {
	return workbook.Row{Cells: [4]string{number, name, start, end}}
}

func TestClassify(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		record Record
		want   Status
	}{
		{"integer number is main even when late", Record{Number: 3, End: day(2020, 1, 1)}, StatusMain},
		{"integer number is main when future", Record{Number: 1, End: day(2030, 1, 1)}, StatusMain},
		{"sub-task ending after now", Record{Number: 1.1, End: day(2024, 7, 1)}, StatusOnTime},
		{"sub-task ending exactly now", Record{Number: 1.2, End: now}, StatusOnTime},
		{"sub-task ending before now", Record{Number: 2.5, End: day(2024, 5, 31)}, StatusDelayed},
		{"sub-task one second late", Record{Number: 2.1, End: now.Add(-time.Second)}, StatusDelayed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.record, now); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}

	table := NewTable(nil)
	for _, tt := range tests {
		table.Add(tt.record)
	}
	statuses := table.Classify(now)
	if len(statuses) != len(tests) {
		t.Fatalf("Table.Classify() returned %d statuses, want %d", len(statuses), len(tests))
	}
	for i, tt := range tests {
		if statuses[i] != tt.want {
			t.Errorf("Table.Classify()[%d] = %q, want %q", i, statuses[i], tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short", "Foundation", 30, "Foundation"},
		{"exactly at limit", strings.Repeat("a", 30), 30, strings.Repeat("a", 30)},
		{"one over limit", strings.Repeat("a", 31), 30, strings.Repeat("a", 30) + "..."},
		{"empty", "", 30, ""},
		{"cyrillic counted by character", "Устройство временного ограждения строительной площадки", 30, "Устройство временного огражден..."},
		{"zero limit", "abc", 0, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.limit)
			if got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateIsFixedPoint(t *testing.T) {
	for _, s := range []string{"short", strings.Repeat("ж", 29), strings.Repeat("ж", 30)} {
		once := Truncate(s, 30)
		if Truncate(once, 30) != once {
			t.Errorf("Truncate not stable for %q", s)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		record Record
		want   string
	}{
		{Record{Number: 2, Name: "Foundation"}, "2.0) Foundation"},
		{Record{Number: 2.1, Name: "Pour concrete for the east wing slab"}, "2.1) Pour concrete for the east win..."},
		{Record{Number: 10, Name: strings.Repeat("b", 30)}, "10.0) " + strings.Repeat("b", 30)},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.record, DefaultNameLimit); got != tt.want {
			t.Errorf("DisplayName(%v) = %q, want %q", tt.record.Number, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		1:    "1.0",
		2.1:  "2.1",
		1.15: "1.15",
		12:   "12.0",
		0:    "0.0",
		-3:   "-3.0",
		10.5: "10.5",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1", 1, false},
		{" 2.1 ", 2.1, false},
		{"3,2", 3.2, false},
		{"", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseNumber(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"45301", day(2024, 1, 10), false},
		{"45301.5", time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local), false},
		{"2024-01-10", day(2024, 1, 10), false},
		{"2024-01-10 08:30:00", time.Date(2024, 1, 10, 8, 30, 0, 0, time.Local), false},
		{"10.01.2024", day(2024, 1, 10), false},
		{"01/10/2024", day(2024, 1, 10), false},
		{"", time.Time{}, true},
		{"soon", time.Time{}, true},
		{"2024-13-45", time.Time{}, true},
		{"-5", time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClean(t *testing.T) {
	raw := &workbook.RawTable{Rows: []workbook.Row{
		rawRow("1", "Main", "2024-01-01", "2024-02-01"),
		rawRow("1.1", "", "2024-01-01", "2024-02-01"),
		rawRow("1.2", "No end", "2024-01-01", ""),
		rawRow("x", "Bad number", "2024-01-01", "2024-02-01"),
		rawRow("1.3", "Bad start", "not a date", "2024-02-01"),
		rawRow("1.4", "Bad end", "2024-01-01", "31/31/2024"),
		rawRow("2", "  Second\nmain  ", "45301", "45400"),
	}}

	table, report := Clean(raw)

	want := CleanReport{Total: 7, Kept: 2, DroppedMissing: 2, DroppedNumber: 1, DroppedDates: 2}
	if report != want {
		t.Errorf("report = %+v, want %+v", report, want)
	}
	if report.Dropped() != 5 {
		t.Errorf("Dropped() = %d, want 5", report.Dropped())
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if table.Records[1].Name != "Second main" {
		t.Errorf("Name = %q, want normalized %q", table.Records[1].Name, "Second main")
	}
	for _, r := range table.Records {
		if r.ID == "" {
			t.Errorf("record %v has no ID", r.Number)
		}
		if r.Name == "" || r.Start.IsZero() || r.End.IsZero() {
			t.Errorf("record %v survived with missing fields", r.Number)
		}
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	raw := &workbook.RawTable{Rows: []workbook.Row{
		rawRow("1", "Main", "2024-01-01", "2024-02-01"),
		rawRow("1.1", "", "2024-01-01", "2024-02-01"),
		rawRow("1.2", "Sub", "2024-01-01", "2024-03-01"),
	}}
	table, _ := Clean(raw)
	before := table.Len()

	if removed := table.Clean(); removed != 0 {
		t.Errorf("second Clean removed %d rows, want 0", removed)
	}
	if table.Len() != before {
		t.Errorf("Len() = %d after second Clean, want %d", table.Len(), before)
	}

	table.Add(Record{Number: 3, Name: " ", Start: day(2024, 1, 1), End: day(2024, 1, 2)})
	table.Add(Record{Number: math.NaN(), Name: "nan", Start: day(2024, 1, 1), End: day(2024, 1, 2)})
	if removed := table.Clean(); removed != 2 {
		t.Errorf("Clean removed %d rows, want 2", removed)
	}
}

func TestCleanWorkbookFixture(t *testing.T) {
	path := testutil.WriteScheduleWorkbook(t, t.TempDir(), testutil.SampleRows())
	raw, err := workbook.Load(path, workbook.DefaultOptions())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	table, report := Clean(raw)
	if report.Kept != 5 || report.Dropped() != 0 {
		t.Fatalf("report = %+v, want 5 kept", report)
	}

	now := day(2025, 1, 1)
	rows := table.Rows(now, DefaultNameLimit)
	want := []Status{StatusMain, StatusDelayed, StatusOnTime, StatusMain, StatusDelayed}
	for i, r := range rows {
		if r.Status != want[i] {
			t.Errorf("row %d (%s) status = %q, want %q", i, r.Display, r.Status, want[i])
		}
	}
	if !rows[0].Start.Equal(day(2024, 1, 10)) {
		t.Errorf("first start = %v, want 2024-01-10", rows[0].Start)
	}
	if rows[1].Display != "1.1) Устройство временного огражден..." {
		t.Errorf("Display = %q", rows[1].Display)
	}

	counts := Counts(rows)
	if counts[StatusMain] != 2 || counts[StatusOnTime] != 1 || counts[StatusDelayed] != 2 {
		t.Errorf("Counts() = %v", counts)
	}
	if got := len(Filter(rows, StatusDelayed)); got != 2 {
		t.Errorf("Filter(Delayed) = %d rows, want 2", got)
	}
}

func TestRowsDoesNotMutateRecords(t *testing.T) {
	table := NewTable([]Record{{Number: 1.1, Name: strings.Repeat("x", 40), Start: day(2024, 1, 1), End: day(2024, 2, 1)}})
	table.Rows(day(2024, 1, 15), DefaultNameLimit)
	rows := table.Rows(day(2024, 1, 15), DefaultNameLimit)

	if table.Records[0].Name != strings.Repeat("x", 40) {
		t.Errorf("record name was modified: %q", table.Records[0].Name)
	}
	if strings.Count(rows[0].Display, ")") != 1 {
		t.Errorf("Display %q is prefixed more than once", rows[0].Display)
	}
}

func TestTableOperations(t *testing.T) {
	table := NewTable([]Record{
		{Number: 2, Name: "B"},
		{Number: 1.1, Name: "A1"},
		{Number: 1, Name: "A"},
		{Number: 1.1, Name: "A1 duplicate"},
	})

	sorted := table.Sorted()
	wantNames := []string{"A", "A1", "A1 duplicate", "B"}
	for i, r := range sorted {
		if r.Name != wantNames[i] {
			t.Errorf("Sorted()[%d] = %q, want %q", i, r.Name, wantNames[i])
		}
	}
	if table.Records[0].Name != "B" {
		t.Error("Sorted() reordered the table")
	}

	id := table.Records[1].ID
	if err := table.Update(id, func(r *Record) { r.Name = "Renamed"; r.ID = "changed" }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := table.Get(id); got == nil || got.Name != "Renamed" {
		t.Errorf("Get() after Update = %+v", got)
	}

	clone := table.Clone()
	clone.Records[0].Name = "Clone only"
	if table.Records[0].Name == "Clone only" {
		t.Error("Clone() shares records with the original")
	}

	if err := table.Delete(id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if table.Len() != 3 || table.Get(id) != nil {
		t.Errorf("Delete() left %d records", table.Len())
	}
	if err := table.Delete(id); err == nil {
		t.Error("Delete() of missing id should fail")
	}
	if err := table.Update("missing", func(*Record) {}); err == nil {
		t.Error("Update() of missing id should fail")
	}

	if got := table.NextMainNumber(); got != 3 {
		t.Errorf("NextMainNumber() = %v, want 3", got)
	}
}

func TestSpan(t *testing.T) {
	if _, _, ok := NewTable(nil).Span(); ok {
		t.Error("Span() of empty table should not be ok")
	}

	table := NewTable([]Record{
		{Number: 1, Start: day(2024, 3, 1), End: day(2024, 4, 1)},
		{Number: 2, Start: day(2024, 1, 1), End: day(2024, 2, 1)},
		{Number: 3, Start: day(2024, 2, 1), End: day(2024, 9, 1)},
	})
	from, to, ok := table.Span()
	if !ok || !from.Equal(day(2024, 1, 1)) || !to.Equal(day(2024, 9, 1)) {
		t.Errorf("Span() = %v, %v, %v", from, to, ok)
	}
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"main":      StatusMain,
		"Main Task": StatusMain,
		"on-time":   StatusOnTime,
		"On Time":   StatusOnTime,
		"DELAYED":   StatusDelayed,
	}
	for in, want := range tests {
		got, err := ParseStatus(in)
		if err != nil || got != want {
			t.Errorf("ParseStatus(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseStatus("late"); err == nil {
		t.Error("ParseStatus(late) should fail")
	}
}

func TestSaveCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultOutputFile)
	now := day(2024, 6, 1)

	table := NewTable([]Record{
		{Number: 1, Name: "Main, with comma", Start: day(2024, 1, 1), End: day(2024, 12, 31)},
		{Number: 1.1, Name: strings.Repeat("long ", 10), Start: day(2024, 1, 1), End: day(2024, 5, 1)},
		{Number: 1.2, Name: "Timed", Start: time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local), End: day(2024, 7, 1)},
	})

	if err := os.WriteFile(path, []byte("stale\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := SaveCSV(path, table, now); err != nil {
		t.Fatalf("SaveCSV() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "Task Number,Task Name,Start Date,End Date,Status\n" +
		"1.0,\"Main, with comma\",2024-01-01,2024-12-31,Main Task\n" +
		"1.1," + strings.Repeat("long ", 10) + ",2024-01-01,2024-05-01,Delayed\n" +
		"1.2,Timed,2024-01-01 09:30:00,2024-07-01,On Time\n"
	if string(data) != want {
		t.Errorf("saved CSV =\n%s\nwant\n%s", data, want)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the snapshot", len(entries))
	}
}

func TestSaveCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.csv")
	now := day(2024, 6, 1)
	table := NewTable([]Record{
		{Number: 1, Name: "Main", Start: day(2024, 1, 1), End: day(2024, 12, 31)},
		{Number: 1.1, Name: "Sub", Start: day(2024, 1, 1), End: day(2024, 5, 1)},
	})
	if err := SaveCSV(path, table, now); err != nil {
		t.Fatalf("SaveCSV() error = %v", err)
	}

	raw, err := workbook.Load(path, workbook.DefaultOptions())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	reloaded, report := Clean(raw)
	if report.Kept != 2 {
		t.Fatalf("reloaded %d rows, want 2", report.Kept)
	}
	for i, r := range reloaded.Records {
		orig := table.Records[i]
		if r.Number != orig.Number || r.Name != orig.Name || !r.Start.Equal(orig.Start) || !r.End.Equal(orig.End) {
			t.Errorf("row %d = %+v, want %+v", i, r, orig)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := Record{Number: 1.1, Name: "Sub", Start: day(2024, 1, 1), End: day(2024, 2, 1)}
	if errs := ValidateRecord(valid); len(errs) != 0 {
		t.Errorf("ValidateRecord(valid) = %v", errs)
	}

	tests := []struct {
		name     string
		record   Record
		wantPath string
	}{
		{"blank name", Record{Number: 1, Name: "  ", Start: day(2024, 1, 1), End: day(2024, 2, 1)}, "task_name"},
		{"zero start", Record{Number: 1, Name: "x", End: day(2024, 2, 1)}, "start_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRecord(tt.record)
			if len(errs) == 0 {
				t.Fatal("ValidateRecord() returned no errors")
			}
			var ve *ValidationError
			if !errors.As(errs[0], &ve) {
				t.Fatalf("error %v is not a *ValidationError", errs[0])
			}
			if ve.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", ve.Path, tt.wantPath)
			}
		})
	}
}

func TestCleanedRowsValidate(t *testing.T) {
	raw := &workbook.RawTable{Rows: []workbook.Row{
		rawRow("0", "Общие положения", "2024-01-01", "2024-02-01"),
		rawRow("-1.5", "Negative", "2024-01-01", "2024-02-01"),
	}}
	table, report := Clean(raw)
	if report.Kept != 2 {
		t.Fatalf("Kept = %d, want 2", report.Kept)
	}
	for _, r := range table.Records {
		if errs := ValidateRecord(r); len(errs) != 0 {
			t.Errorf("ValidateRecord(%v) = %v", r.Number, errs)
		}
	}
	if result := table.Validate(); !result.Valid {
		t.Errorf("Validate() = %+v, want valid", result)
	}
}

func TestTableValidate(t *testing.T) {
	table := NewTable([]Record{
		{Number: 1, Name: "Main", Start: day(2024, 1, 1), End: day(2024, 2, 1)},
		{Number: 1.1, Name: "", Start: day(2024, 1, 1), End: day(2024, 2, 1)},
		{Number: 1.2, Name: "Backwards", Start: day(2024, 3, 1), End: day(2024, 2, 1)},
	})

	result := table.Validate()
	if result.Valid {
		t.Fatal("Validate() should fail for a blank name")
	}
	found := false
	for _, err := range result.Errors {
		if strings.HasPrefix(err.Error(), "tasks[1].task_name") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors %v do not point at tasks[1].task_name", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "tasks[2].end_date") {
		t.Errorf("Warnings = %v, want one for tasks[2].end_date", result.Warnings)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"#":              "",
		"/task_name":     "task_name",
		"#/tasks/2/name": "tasks[2].name",
		"/a~1b":          "a/b",
	}
	for in, want := range tests {
		if got := jsonPointerToPath(in); got != want {
			t.Errorf("jsonPointerToPath(%q) = %q, want %q", in, got, want)
		}
	}
}
