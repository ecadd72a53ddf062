package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nibzard/ganttboard/internal/chart"
	"github.com/nibzard/ganttboard/internal/schedule"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#008000")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
)

// Column widths of the data table.
const (
	widthNumber = 11
	widthDate   = 19
	widthStatus = 9
)

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.access)
		return b.String()
	}

	// One render pass, one now.
	now := m.opts.Now()
	table := m.table()
	rows := table.Rows(now, m.opts.NameLimit)

	writeSelectors(&b, m.access, m.scale)
	writeOverview(&b, rows, m.opts.Source)

	var body strings.Builder
	if m.access == AccessEditor {
		body.WriteString("You are in editor mode. You can update the project schedule:\n\n")
		m.writeGrid(&body, rows)
	} else {
		body.WriteString("You are in viewer mode. Here is the project schedule:\n\n")
		writeTable(&body, rows, m.width)
	}
	body.WriteString("\n")
	body.WriteString(chart.RenderText(chart.Build(rows, m.scale, now), m.width))

	var tail strings.Builder
	if m.editing {
		tail.WriteString(fmt.Sprintf("Editing %s: %s\n", columnTitles[m.cursorCol], m.input.View()))
	}
	writeMessage(&tail, m.message, m.messageErr)
	writeFooter(&tail, m.access)

	head := b.String()
	footer := tail.String()
	m.viewport.Width = m.width
	m.viewport.Height = max(3, m.height-lipgloss.Height(head)-lipgloss.Height(footer))
	m.viewport.SetContent(body.String())
	if m.access == AccessEditor {
		m.ensureCursorVisible()
	}

	return head + m.viewport.View() + "\n" + footer
}

// ensureCursorVisible scrolls so the grid row under the cursor is shown.
// The grid starts after the mode line, a blank line, the header and the rule.
func (m *tuiModel) ensureCursorVisible() {
	line := 4 + m.cursorRow
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func writeTitle(b *strings.Builder) {
	title := "Project Schedule Gantt Chart"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeSelectors(b *strings.Builder, access Access, scale chart.Scale) {
	b.WriteString("Access Level: ")
	for _, a := range []Access{AccessViewer, AccessEditor} {
		b.WriteString(option(string(a), a == access))
	}
	b.WriteString("   Time Scale: ")
	for _, s := range chart.Scales {
		b.WriteString(option(string(s), s == scale))
	}
	b.WriteString("\n")
}

func option(label string, selected bool) string {
	if selected {
		return selectedStyle.Render("[" + label + "]")
	}
	return dimStyle.Render(" " + label + " ")
}

func writeOverview(b *strings.Builder, rows []schedule.Row, source string) {
	counts := schedule.Counts(rows)
	b.WriteString(fmt.Sprintf("Tasks: %d  Main Task: %d  On Time: %d  Delayed: %d",
		len(rows),
		counts[schedule.StatusMain],
		counts[schedule.StatusOnTime],
		counts[schedule.StatusDelayed],
	))
	if source != "" {
		b.WriteString(dimStyle.Render("  " + source))
	}
	b.WriteString("\n\n")
}

func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// writeTable renders the viewer table with formatted task names.
func writeTable(b *strings.Builder, rows []schedule.Row, width int) {
	nameWidth := max(20, width-widthDate*2-widthStatus-4)

	header := strings.Join([]string{
		cell("Task Name", nameWidth),
		cell("Start Date", widthDate),
		cell("End Date", widthDate),
		cell("Status", widthStatus),
	}, " ")
	b.WriteString(headerStyle.Render(header) + "\n")
	b.WriteString(strings.Repeat("─", runewidth.StringWidth(header)) + "\n")

	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("No tasks.") + "\n")
		return
	}
	for _, r := range rows {
		b.WriteString(strings.Join([]string{
			cell(r.Display, nameWidth),
			cell(schedule.FormatDate(r.Start), widthDate),
			cell(schedule.FormatDate(r.End), widthDate),
			statusCell(r.Status),
		}, " "))
		b.WriteString("\n")
	}
}

// writeGrid renders the editable grid with the cursor cell highlighted.
func (m *tuiModel) writeGrid(b *strings.Builder, rows []schedule.Row) {
	nameWidth := max(20, m.width-widthNumber-widthDate*2-widthStatus-5)
	widths := [editableColumns]int{widthNumber, nameWidth, widthDate, widthDate}

	headers := make([]string, 0, editableColumns+1)
	for col, title := range columnTitles {
		headers = append(headers, cell(title, widths[col]))
	}
	headers = append(headers, cell("Status", widthStatus))
	header := strings.Join(headers, " ")
	b.WriteString(headerStyle.Render(header) + "\n")
	b.WriteString(strings.Repeat("─", runewidth.StringWidth(header)) + "\n")

	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("No tasks. Press n to add one.") + "\n")
		return
	}
	for i, r := range rows {
		cells := make([]string, 0, editableColumns+1)
		for col := 0; col < editableColumns; col++ {
			text := cell(cellValue(r.Record, col), widths[col])
			if i == m.cursorRow && col == m.cursorCol {
				text = cursorStyle.Render(text)
			}
			cells = append(cells, text)
		}
		cells = append(cells, statusCell(r.Status))
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}
}

func statusCell(status schedule.Status) string {
	color := chart.Palette[status]
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex)).Render(cell(string(status), widthStatus))
}

func writeMessage(b *strings.Builder, message string, isErr bool) {
	if message == "" {
		return
	}
	if isErr {
		b.WriteString(errorStyle.Render(message) + "\n")
		return
	}
	if message == SavedMessage {
		b.WriteString(successStyle.Render(message) + "\n")
		return
	}
	b.WriteString(message + "\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c      Quit\n")
	b.WriteString("  h, ?           Toggle this help screen\n")
	b.WriteString("  a, tab         Switch access level (Viewer/Editor)\n")
	b.WriteString("  t              Cycle time scale\n")
	b.WriteString("  1 / 2 / 3      Month / Quarter / Year\n")
	b.WriteString("  pgup, pgdown   Scroll\n\n")
	b.WriteString("Editor\n\n")
	b.WriteString("  arrows, j/k    Move between cells\n")
	b.WriteString("  enter, e       Edit cell (enter to commit, esc to cancel)\n")
	b.WriteString("  n              Add row\n")
	b.WriteString("  d, delete      Delete row\n")
	b.WriteString("  ctrl+s         Save changes\n\n")
}

func writeFooter(b *strings.Builder, access Access) {
	if access == AccessEditor {
		b.WriteString(dimStyle.Render("Press h for help | ctrl+s to save | q to quit"))
		return
	}
	b.WriteString(dimStyle.Render("Press h for help | a for editor | q to quit"))
}
