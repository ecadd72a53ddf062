package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/ganttboard/internal/schedule"
)

// Editable grid columns. Status is derived and has no column here.
const (
	colNumber = iota
	colName
	colStart
	colEnd
	editableColumns
)

var columnTitles = [editableColumns]string{"Task Number", "Task Name", "Start Date", "End Date"}

// newTaskDuration is the initial length of a row added in the editor.
const newTaskDuration = 7 * 24 * time.Hour

func (m *tuiModel) enterEditor() {
	if m.edited == nil {
		m.edited = m.original.Clone()
	}
	m.clampCursor()
}

// updateEditor handles editor-only keys outside cell editing.
func (m *tuiModel) updateEditor(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left":
		m.moveCursor(0, -1)
	case "right":
		m.moveCursor(0, 1)
	case "home":
		m.cursorRow = 0
	case "end":
		m.cursorRow = m.edited.Len() - 1
		m.clampCursor()
	case "enter", "e":
		return true, m.startEditing()
	case "n":
		m.addRow()
	case "d", "delete":
		m.deleteRow()
	case "ctrl+s":
		return true, m.save()
	default:
		return false, nil
	}
	return true, nil
}

func (m *tuiModel) moveCursor(dRow, dCol int) {
	m.cursorRow += dRow
	m.cursorCol += dCol
	m.clampCursor()
}

func (m *tuiModel) clampCursor() {
	if m.edited == nil {
		return
	}
	if m.cursorRow >= m.edited.Len() {
		m.cursorRow = m.edited.Len() - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	if m.cursorCol >= editableColumns {
		m.cursorCol = editableColumns - 1
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
}

// current returns the record under the cursor, or nil for an empty table.
func (m *tuiModel) current() *schedule.Record {
	if m.edited == nil || m.cursorRow >= m.edited.Len() {
		return nil
	}
	return &m.edited.Records[m.cursorRow]
}

func cellValue(r schedule.Record, col int) string {
	switch col {
	case colNumber:
		return schedule.FormatNumber(r.Number)
	case colName:
		return r.Name
	case colStart:
		return schedule.FormatDate(r.Start)
	case colEnd:
		return schedule.FormatDate(r.End)
	}
	return ""
}

func (m *tuiModel) startEditing() tea.Cmd {
	r := m.current()
	if r == nil {
		m.setMessage("No row to edit. Press n to add one.", true)
		return nil
	}
	m.editing = true
	m.input.SetValue(cellValue(*r, m.cursorCol))
	m.input.CursorEnd()
	m.input.Placeholder = columnTitles[m.cursorCol]
	return m.input.Focus()
}

func (m *tuiModel) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
}

// updateEditing routes keys to the cell input.
func (m *tuiModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEditing()
		m.setMessage("Edit cancelled.", false)
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		if err := m.commitEdit(m.input.Value()); err != nil {
			m.setMessage(err.Error(), true)
			return m, nil
		}
		m.stopEditing()
		m.setMessage("", false)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitEdit applies value to the cell under the cursor. The edit is refused
// when the value does not parse or the record would fail validation.
func (m *tuiModel) commitEdit(value string) error {
	r := m.current()
	if r == nil {
		return fmt.Errorf("no row selected")
	}
	candidate := *r

	switch m.cursorCol {
	case colNumber:
		n, err := schedule.ParseNumber(value)
		if err != nil {
			return err
		}
		candidate.Number = n
	case colName:
		candidate.Name = schedule.NormalizeName(value)
	case colStart, colEnd:
		t, err := schedule.ParseDate(value)
		if err != nil {
			return err
		}
		if m.cursorCol == colStart {
			candidate.Start = t
		} else {
			candidate.End = t
		}
	}

	if errs := schedule.ValidateRecord(candidate); len(errs) > 0 {
		return errs[0]
	}

	if err := m.edited.Update(r.ID, func(rec *schedule.Record) { *rec = candidate }); err != nil {
		return err
	}
	m.logger.Info("cell edited", "row", m.cursorRow, "column", columnTitles[m.cursorCol], "value", value)
	return nil
}

func (m *tuiModel) addRow() {
	now := m.opts.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	record := schedule.Record{
		Number: m.edited.NextMainNumber(),
		Name:   "New task",
		Start:  start,
		End:    start.Add(newTaskDuration),
	}
	m.edited.Add(record)
	m.cursorRow = m.edited.Len() - 1
	m.cursorCol = colName
	m.logger.Info("row added", "task_number", schedule.FormatNumber(record.Number))
}

func (m *tuiModel) deleteRow() {
	r := m.current()
	if r == nil {
		return
	}
	number := r.Number
	if err := m.edited.Delete(r.ID); err != nil {
		m.setMessage(err.Error(), true)
		return
	}
	m.clampCursor()
	m.setMessage(fmt.Sprintf("Deleted task %s.", schedule.FormatNumber(number)), false)
	m.logger.Info("row deleted", "task_number", schedule.FormatNumber(number))
}

// save writes the edited table. A failure ends the session.
func (m *tuiModel) save() tea.Cmd {
	now := m.opts.Now()
	if err := schedule.SaveCSV(m.opts.OutputFile, m.edited, now); err != nil {
		m.saveErr = fmt.Errorf("save changes: %w", err)
		m.logger.Error("save failed", "path", m.opts.OutputFile, "err", err)
		return tea.Quit
	}
	m.setMessage(SavedMessage, false)
	m.logger.Info("snapshot saved", "path", m.opts.OutputFile, "rows", m.edited.Len())
	return nil
}
