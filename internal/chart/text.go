package chart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	minPlotWidth  = 10
	maxLabelWidth = 40

	glyphBar      = '█'
	glyphBoundary = '│'
	glyphNow      = '┃'
	glyphTick     = '╵'
)

type cellKind int

const (
	cellBlank cellKind = iota
	cellBoundary
	cellBar
	cellNow
)

type cell struct {
	r    rune
	kind cellKind
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	boundaryStyle = lipgloss.NewStyle().Faint(true)
	nowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(NowColor.Hex)).Bold(true)
	axisStyle     = lipgloss.NewStyle().Faint(true)
)

// RenderText draws the chart for a terminal of the given width.
func RenderText(c *Chart, width int) string {
	labelWidth := 0
	for _, b := range c.Bars {
		if w := runewidth.StringWidth(b.Label); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}
	plotWidth := width - labelWidth - 1
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}

	col := func(p float64) int {
		return int(p*float64(plotWidth-1) + 0.5)
	}
	nowCol := col(c.Position(c.Now))

	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title + " · " + string(c.Scale)))
	b.WriteString("\n\n")

	if len(c.Bars) == 0 {
		b.WriteString(axisStyle.Render("No tasks to display."))
		b.WriteString("\n")
	}

	for _, bar := range c.Bars {
		cells := make([]cell, plotWidth)
		for i := range cells {
			cells[i] = cell{r: ' '}
		}
		for _, at := range c.Boundaries {
			cells[col(c.Position(at))] = cell{r: glyphBoundary, kind: cellBoundary}
		}
		from, to := col(c.Position(bar.Start)), col(c.Position(bar.End))
		if to < from {
			from, to = to, from
		}
		for i := from; i <= to; i++ {
			cells[i] = cell{r: glyphBar, kind: cellBar}
		}
		cells[nowCol] = cell{r: glyphNow, kind: cellNow}

		label := runewidth.FillRight(runewidth.Truncate(bar.Label, labelWidth, "…"), labelWidth)
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(renderCells(cells, lipgloss.NewStyle().Foreground(lipgloss.Color(bar.Color.Hex))))
		b.WriteString("\n")
	}

	pad := strings.Repeat(" ", labelWidth+1)
	b.WriteString(pad)
	b.WriteString(axisStyle.Render(tickMarks(c, plotWidth, col)))
	b.WriteString("\n")
	b.WriteString(pad)
	b.WriteString(axisStyle.Render(placeLabels(c, plotWidth, col)))
	b.WriteString("\n")
	b.WriteString(pad)
	b.WriteString(nowStyle.Render(annotation(c.NowLabel, nowCol, plotWidth)))
	b.WriteString("\n")

	return b.String()
}

// renderCells styles runs of equal kind together.
func renderCells(cells []cell, barStyle lipgloss.Style) string {
	var out strings.Builder
	var run strings.Builder
	kind := cellBlank
	flush := func() {
		if run.Len() == 0 {
			return
		}
		switch kind {
		case cellBoundary:
			out.WriteString(boundaryStyle.Render(run.String()))
		case cellBar:
			out.WriteString(barStyle.Render(run.String()))
		case cellNow:
			out.WriteString(nowStyle.Render(run.String()))
		default:
			out.WriteString(run.String())
		}
		run.Reset()
	}
	for _, c := range cells {
		if c.kind != kind {
			flush()
			kind = c.kind
		}
		run.WriteRune(c.r)
	}
	flush()
	return out.String()
}

func tickMarks(c *Chart, width int, col func(float64) int) string {
	row := []rune(strings.Repeat("─", width))
	for _, t := range c.Ticks {
		row[col(c.Position(t.At))] = glyphTick
	}
	return string(row)
}

// placeLabels writes tick labels left to right, skipping any that would
// overlap the previous one.
func placeLabels(c *Chart, width int, col func(float64) int) string {
	row := []rune(strings.Repeat(" ", width))
	next := 0
	for _, t := range c.Ticks {
		at := col(c.Position(t.At))
		label := []rune(t.Label)
		if at < next || at+len(label) > width {
			continue
		}
		copy(row[at:], label)
		next = at + len(label) + 1
	}
	return strings.TrimRight(string(row), " ")
}

// annotation centres label under col, clamped to the plot.
func annotation(label string, col, width int) string {
	start := col - len(label)/2
	if start+len(label) > width {
		start = width - len(label)
	}
	if start < 0 {
		start = 0
	}
	return strings.Repeat(" ", start) + label
}
