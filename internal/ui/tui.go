// Package ui provides the interactive schedule dashboard.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/ganttboard/internal/chart"
	"github.com/nibzard/ganttboard/internal/logging"
	"github.com/nibzard/ganttboard/internal/schedule"
)

// SavedMessage acknowledges a successful save.
const SavedMessage = "Changes saved successfully!"

const (
	defaultWidth  = 100
	defaultHeight = 30
)

// Options configures the dashboard.
type Options struct {
	Access     Access
	Scale      chart.Scale
	NameLimit  int
	OutputFile string
	// Source is the schedule path shown in the header.
	Source string
	Logger *log.Logger
	// Now returns the render time. It is called once per render pass.
	Now func() time.Time
}

// Run starts the dashboard on table. A failed save ends the session and is
// returned.
func Run(ctx context.Context, table *schedule.Table, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	return runProgram(ctx, newTUIModel(table, opts))
}

func runProgram(ctx context.Context, model *tuiModel) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.saveErr != nil {
		return m.saveErr
	}
	return nil
}

type tuiModel struct {
	opts     Options
	logger   *log.Logger
	original *schedule.Table
	// edited is seeded from original the first time editor mode is entered
	// and kept for the rest of the session.
	edited *schedule.Table

	access   Access
	scale    chart.Scale
	width    int
	height   int
	viewport viewport.Model
	showHelp bool

	cursorRow int
	cursorCol int
	editing   bool
	input     textinput.Model

	message    string
	messageErr bool
	saveErr    error
}

func newTUIModel(table *schedule.Table, opts Options) *tuiModel {
	if opts.Access == "" {
		opts.Access = AccessViewer
	}
	if opts.Scale == "" {
		opts.Scale = chart.ScaleMonth
	}
	if opts.NameLimit <= 0 {
		opts.NameLimit = schedule.DefaultNameLimit
	}
	if opts.OutputFile == "" {
		opts.OutputFile = schedule.DefaultOutputFile
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if table == nil {
		table = schedule.NewTable(nil)
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 256

	m := &tuiModel{
		opts:     opts,
		logger:   logger,
		original: table,
		access:   opts.Access,
		scale:    opts.Scale,
		width:    defaultWidth,
		height:   defaultHeight,
		viewport: viewport.New(defaultWidth, defaultHeight),
		input:    input,
	}
	if m.access == AccessEditor {
		m.enterEditor()
	}
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	m.logger.Info("session started", "access", m.access, "scale", m.scale, "rows", m.original.Len())
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		if msg.String() != "ctrl+s" {
			m.message = ""
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?", "h":
			m.showHelp = !m.showHelp
			return m, nil
		case "a", "tab":
			m.setAccess(m.access.Toggle())
			return m, nil
		case "t":
			m.setScale(m.scale.Next())
			return m, nil
		case "1":
			m.setScale(chart.ScaleMonth)
			return m, nil
		case "2":
			m.setScale(chart.ScaleQuarter)
			return m, nil
		case "3":
			m.setScale(chart.ScaleYear)
			return m, nil
		}
		if m.access == AccessEditor {
			if handled, cmd := m.updateEditor(msg); handled {
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *tuiModel) setAccess(access Access) {
	if access == m.access {
		return
	}
	m.access = access
	if access == AccessEditor {
		m.enterEditor()
	}
	m.viewport.GotoTop()
	m.logger.Info("access changed", "access", access)
}

func (m *tuiModel) setScale(scale chart.Scale) {
	if scale == m.scale {
		return
	}
	m.scale = scale
	m.logger.Debug("scale changed", "scale", scale)
}

// table returns the table the current mode renders.
func (m *tuiModel) table() *schedule.Table {
	if m.access == AccessEditor {
		return m.edited
	}
	return m.original
}

func (m *tuiModel) setMessage(msg string, isErr bool) {
	m.message = msg
	m.messageErr = isErr
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
