// Package chart lays out the Gantt timeline for a set of classified rows and
// renders it to the terminal or to SVG.
package chart

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nibzard/ganttboard/internal/schedule"
)

// Title is the chart heading.
const Title = "Gantt Chart"

// NowLayout formats the now annotation.
const NowLayout = "2006-01-02"

// Scale is the time granularity of axis ticks and period boundaries.
type Scale string

const (
	ScaleMonth   Scale = "Month"
	ScaleQuarter Scale = "Quarter"
	ScaleYear    Scale = "Year"
)

// Scales lists every scale in selector order.
var Scales = []Scale{ScaleMonth, ScaleQuarter, ScaleYear}

// ParseScale matches a scale name case-insensitively.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month", "m":
		return ScaleMonth, nil
	case "quarter", "q":
		return ScaleQuarter, nil
	case "year", "y":
		return ScaleYear, nil
	}
	return "", fmt.Errorf("invalid time scale %q, must be one of: month, quarter, year", s)
}

// Months returns the period length.
func (s Scale) Months() int {
	switch s {
	case ScaleQuarter:
		return 3
	case ScaleYear:
		return 12
	}
	return 1
}

// TickFormat returns the time layout of tick labels.
func (s Scale) TickFormat() string {
	if s == ScaleYear {
		return "2006"
	}
	return "Jan 2006"
}

// Next returns the scale after s, wrapping around.
func (s Scale) Next() Scale {
	for i, sc := range Scales {
		if sc == s {
			return Scales[(i+1)%len(Scales)]
		}
	}
	return ScaleMonth
}

// Color is a palette entry.
type Color struct {
	Name string
	Hex  string
}

// Palette maps each status to its bar color.
var Palette = map[schedule.Status]Color{
	schedule.StatusOnTime:  {Name: "green", Hex: "#008000"},
	schedule.StatusDelayed: {Name: "red", Hex: "#FF0000"},
	schedule.StatusMain:    {Name: "blue", Hex: "#0000FF"},
}

// NowColor is the color of the now marker and its annotation.
var NowColor = Color{Name: "red", Hex: "#FF0000"}

// Bar is one task on the timeline.
type Bar struct {
	Label  string
	Number float64
	Status schedule.Status
	Color  Color
	Start  time.Time
	End    time.Time
}

// Tick is a labelled axis position.
type Tick struct {
	At    time.Time
	Label string
}

// Chart is a renderer-independent timeline layout.
type Chart struct {
	Title      string
	Scale      Scale
	Bars       []Bar
	Ticks      []Tick
	Boundaries []time.Time
	Now        time.Time
	NowLabel   string
	// From and To bound the time axis. They cover every bar and Now, and
	// From is aligned to a period start.
	From   time.Time
	To     time.Time
	Height int
}

// Height returns the chart height in pixels for n rows.
func Height(n int) int {
	if n < 0 {
		n = 0
	}
	return 50 + 20*n
}

// Build lays out rows at the given scale. Bars are sorted by ascending task
// number. now must be the same instant the rows were classified at.
func Build(rows []schedule.Row, scale Scale, now time.Time) *Chart {
	if scale == "" {
		scale = ScaleMonth
	}

	sorted := make([]schedule.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})

	c := &Chart{
		Title:    Title,
		Scale:    scale,
		Bars:     make([]Bar, 0, len(sorted)),
		Now:      now,
		NowLabel: now.Format(NowLayout),
		Height:   Height(len(sorted)),
	}

	var minStart, maxEnd time.Time
	for i, r := range sorted {
		c.Bars = append(c.Bars, Bar{
			Label:  r.Display,
			Number: r.Number,
			Status: r.Status,
			Color:  Palette[r.Status],
			Start:  r.Start,
			End:    r.End,
		})
		if i == 0 || r.Start.Before(minStart) {
			minStart = r.Start
		}
		if i == 0 || r.End.After(maxEnd) {
			maxEnd = r.End
		}
	}

	c.From, c.To = now, now
	if len(sorted) > 0 {
		c.Boundaries = PeriodStarts(minStart, maxEnd, scale)
		if minStart.Before(c.From) {
			c.From = minStart
		}
		if maxEnd.After(c.To) {
			c.To = maxEnd
		}
	}
	if !c.To.After(c.From) {
		c.From = c.From.AddDate(0, 0, -1)
		c.To = c.To.AddDate(0, 0, 1)
	}
	c.From = periodStart(c.From, scale)

	for _, at := range PeriodStarts(c.From, c.To, scale) {
		c.Ticks = append(c.Ticks, Tick{At: at, Label: at.Format(scale.TickFormat())})
	}
	return c
}

// PeriodStarts returns every period start in [from, to]. Quarters start in
// January, April, July and October.
func PeriodStarts(from, to time.Time, scale Scale) []time.Time {
	if to.Before(from) {
		return nil
	}
	step := scale.Months()
	at := periodStart(from, scale)
	if at.Before(from) {
		at = at.AddDate(0, step, 0)
	}

	var starts []time.Time
	for !at.After(to) {
		starts = append(starts, at)
		at = at.AddDate(0, step, 0)
	}
	return starts
}

// periodStart returns the start of the period containing t.
func periodStart(t time.Time, scale Scale) time.Time {
	month := int(t.Month()) - 1
	month -= month % scale.Months()
	return time.Date(t.Year(), time.Month(month+1), 1, 0, 0, 0, 0, t.Location())
}

// Position returns where t falls on the axis, from 0 at From to 1 at To.
func (c *Chart) Position(t time.Time) float64 {
	span := c.To.Sub(c.From)
	if span <= 0 {
		return 0
	}
	p := float64(t.Sub(c.From)) / float64(span)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
