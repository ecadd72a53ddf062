package chart

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/ganttboard/internal/schedule"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func sampleRows(now time.Time) []schedule.Row {
	table := schedule.NewTable([]schedule.Record{
		{Number: 2, Name: "Second main", Start: day(2024, 3, 1), End: day(2024, 6, 30)},
		{Number: 1.1, Name: "Late sub-task", Start: day(2024, 1, 10), End: day(2024, 2, 15)},
		{Number: 1, Name: "First main", Start: day(2024, 1, 10), End: day(2024, 3, 31)},
		{Number: 1.2, Name: "Future sub-task", Start: day(2024, 2, 1), End: day(2024, 8, 20)},
	})
	return table.Rows(now, schedule.DefaultNameLimit)
}

func TestHeight(t *testing.T) {
	if Height(0) != 50 {
		t.Errorf("Height(0) = %d, want 50", Height(0))
	}
	if Height(10) != 250 {
		t.Errorf("Height(10) = %d, want 250", Height(10))
	}
	for n := 0; n < 50; n++ {
		if Height(n+1) < Height(n) {
			t.Fatalf("Height decreases at %d", n)
		}
	}
}

func TestParseScale(t *testing.T) {
	tests := map[string]Scale{"month": ScaleMonth, "Quarter": ScaleQuarter, " YEAR ": ScaleYear, "q": ScaleQuarter}
	for in, want := range tests {
		got, err := ParseScale(in)
		if err != nil || got != want {
			t.Errorf("ParseScale(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseScale("week"); err == nil {
		t.Error("ParseScale(week) should fail")
	}
	if ScaleYear.Next() != ScaleMonth || ScaleMonth.Next() != ScaleQuarter {
		t.Error("Next() does not cycle Month, Quarter, Year")
	}
}

func TestPeriodStarts(t *testing.T) {
	tests := []struct {
		name  string
		from  time.Time
		to    time.Time
		scale Scale
		want  []time.Time
	}{
		{
			name: "months", from: day(2024, 1, 10), to: day(2024, 4, 1), scale: ScaleMonth,
			want: []time.Time{day(2024, 2, 1), day(2024, 3, 1), day(2024, 4, 1)},
		},
		{
			name: "month start is inclusive", from: day(2024, 1, 1), to: day(2024, 2, 15), scale: ScaleMonth,
			want: []time.Time{day(2024, 1, 1), day(2024, 2, 1)},
		},
		{
			name: "quarters", from: day(2024, 2, 10), to: day(2024, 12, 31), scale: ScaleQuarter,
			want: []time.Time{day(2024, 4, 1), day(2024, 7, 1), day(2024, 10, 1)},
		},
		{
			name: "years", from: day(2023, 6, 1), to: day(2025, 1, 1), scale: ScaleYear,
			want: []time.Time{day(2024, 1, 1), day(2025, 1, 1)},
		},
		{
			name: "no start in range", from: day(2024, 1, 10), to: day(2024, 1, 20), scale: ScaleMonth,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeriodStarts(tt.from, tt.to, tt.scale)
			if len(got) != len(tt.want) {
				t.Fatalf("PeriodStarts() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !got[i].Equal(tt.want[i]) {
					t.Errorf("PeriodStarts()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuild(t *testing.T) {
	now := day(2024, 5, 1)
	c := Build(sampleRows(now), ScaleMonth, now)

	if c.Title != "Gantt Chart" {
		t.Errorf("Title = %q", c.Title)
	}
	if c.Height != Height(4) {
		t.Errorf("Height = %d, want %d", c.Height, Height(4))
	}

	wantOrder := []float64{1, 1.1, 1.2, 2}
	wantColor := []string{"blue", "red", "green", "blue"}
	for i, b := range c.Bars {
		if b.Number != wantOrder[i] {
			t.Errorf("bar %d number = %v, want %v", i, b.Number, wantOrder[i])
		}
		if b.Color.Name != wantColor[i] {
			t.Errorf("bar %d (%s) color = %s, want %s", i, b.Label, b.Color.Name, wantColor[i])
		}
	}
	if c.Bars[0].Label != "1.0) First main" {
		t.Errorf("first label = %q", c.Bars[0].Label)
	}

	// Boundaries span the data, 2024-01-10 through 2024-08-20.
	if len(c.Boundaries) != 7 || !c.Boundaries[0].Equal(day(2024, 2, 1)) || !c.Boundaries[6].Equal(day(2024, 8, 1)) {
		t.Errorf("Boundaries = %v", c.Boundaries)
	}
	if !c.From.Equal(day(2024, 1, 1)) {
		t.Errorf("From = %v, want aligned to 2024-01-01", c.From)
	}
	if len(c.Ticks) != 8 || c.Ticks[0].Label != "Jan 2024" || c.Ticks[7].Label != "Aug 2024" {
		t.Errorf("Ticks = %v, want Jan 2024 through Aug 2024", c.Ticks)
	}
	if c.NowLabel != "2024-05-01" {
		t.Errorf("NowLabel = %q", c.NowLabel)
	}
}

func TestBuildScales(t *testing.T) {
	now := day(2024, 5, 1)
	rows := sampleRows(now)

	quarter := Build(rows, ScaleQuarter, now)
	if len(quarter.Boundaries) != 2 || len(quarter.Ticks) != 3 || quarter.Ticks[1].Label != "Apr 2024" {
		t.Errorf("quarter boundaries = %v, ticks = %v", quarter.Boundaries, quarter.Ticks)
	}

	year := Build(rows, ScaleYear, now)
	if len(year.Boundaries) != 0 {
		t.Errorf("year boundaries = %v, want none inside 2024", year.Boundaries)
	}
	if len(year.Ticks) != 1 || year.Ticks[0].Label != "2024" {
		t.Errorf("year ticks = %v, want 2024", year.Ticks)
	}
	for _, tick := range year.Ticks {
		if len(tick.Label) != 4 {
			t.Errorf("year tick label %q is not year-only", tick.Label)
		}
	}
	if year.NowLabel != quarter.NowLabel {
		t.Error("now annotation depends on scale")
	}
}

func TestBuildExtendsAxisToNow(t *testing.T) {
	now := day(2026, 3, 15)
	c := Build(sampleRows(now), ScaleYear, now)

	if !c.To.Equal(now) {
		t.Errorf("To = %v, want now %v", c.To, now)
	}
	if p := c.Position(now); p != 1 {
		t.Errorf("Position(now) = %v, want 1", p)
	}
	if len(c.Boundaries) != 0 {
		t.Errorf("Boundaries = %v, want only data-range boundaries", c.Boundaries)
	}
	if len(c.Ticks) != 3 || c.Ticks[2].Label != "2026" {
		t.Errorf("Ticks = %v, want 2024 through 2026", c.Ticks)
	}
}

func TestBuildEmpty(t *testing.T) {
	now := day(2024, 5, 1)
	c := Build(nil, ScaleMonth, now)

	if c.Height != 50 || len(c.Bars) != 0 || len(c.Boundaries) != 0 {
		t.Errorf("empty chart = %+v", c)
	}
	if !c.From.Before(now) || !c.To.After(now) {
		t.Errorf("axis [%v, %v] does not surround now", c.From, c.To)
	}
	if out := RenderText(c, 80); !strings.Contains(out, "No tasks to display.") || !strings.Contains(out, "2024-05-01") {
		t.Errorf("RenderText(empty) =\n%s", out)
	}
}

func TestRenderText(t *testing.T) {
	now := day(2024, 5, 1)
	c := Build(sampleRows(now), ScaleMonth, now)
	out := RenderText(c, 100)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Title, blank line, four bars, tick marks, tick labels, now annotation.
	if len(lines) != 9 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Gantt Chart") {
		t.Errorf("title line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "1.0) First main") {
		t.Errorf("first bar line = %q", lines[2])
	}
	for _, line := range lines[2:6] {
		if !strings.ContainsRune(line, glyphBar) || !strings.ContainsRune(line, glyphNow) {
			t.Errorf("bar line missing bar or now marker: %q", line)
		}
	}
	if !strings.Contains(lines[7], "Feb 2024") {
		t.Errorf("tick labels = %q", lines[7])
	}
	if !strings.Contains(lines[8], "2024-05-01") {
		t.Errorf("now annotation = %q", lines[8])
	}
}

func TestWriteSVG(t *testing.T) {
	now := day(2024, 5, 1)
	c := Build(sampleRows(now), ScaleQuarter, now)
	c.Bars[0].Label = "1.0) Walls & <roof>"

	var buf bytes.Buffer
	if err := WriteSVG(&buf, c); err != nil {
		t.Fatalf("WriteSVG() error = %v", err)
	}
	svg := buf.String()

	for _, want := range []string{
		"<svg",
		"<title>Gantt Chart</title>",
		`fill="blue"`,
		`fill="red"`,
		`fill="green"`,
		`stroke="red" stroke-width="2"`,
		">2024-05-01</text>",
		">Apr 2024</text>",
		"1.1) Late sub-task",
		"1.0) Walls &amp; &lt;roof&gt;</text>",
		"</g>",
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if got := strings.Count(svg, `height="14"`); got != 4 {
		t.Errorf("SVG has %d bars, want 4", got)
	}
}
