package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/ganttboard/internal/schedule"
)

// listEntry is one task in json and yaml output.
type listEntry struct {
	Number  float64         `json:"task_number" yaml:"task_number"`
	Name    string          `json:"task_name" yaml:"task_name"`
	Display string          `json:"display_name" yaml:"display_name"`
	Start   string          `json:"start_date" yaml:"start_date"`
	End     string          `json:"end_date" yaml:"end_date"`
	Status  schedule.Status `json:"status" yaml:"status"`
}

// lsCommand lists tasks by number with their derived status.
func lsCommand(args []string) error {
	// Parse ls-specific flags
	fs := newFlagSet("ls")
	statusFilter := fs.String("status", "", "Filter by status (main|on-time|delayed)")
	output := fs.String("o", "table", "Output format (table|json|yaml)")

	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	format := strings.ToLower(strings.TrimSpace(*output))
	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q, must be table, json or yaml", *output)
	}

	table, _, err := loadSchedule(cfg, commandLogger(cfg))
	if err != nil {
		return err
	}

	rows := table.Rows(now(), cfg.NameLimit)
	if *statusFilter != "" {
		status, err := schedule.ParseStatus(*statusFilter)
		if err != nil {
			return err
		}
		rows = schedule.Filter(rows, status)
	}
	sortRows(rows)

	switch format {
	case "json":
		return writeJSON(stdout, rows)
	case "yaml":
		return writeYAML(stdout, rows)
	}
	printRows(stdout, rows, *statusFilter == "")
	return nil
}

// sortRows sorts rows by task number, keeping table order for equal numbers.
func sortRows(rows []schedule.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Number < rows[j].Number
	})
}

func toEntries(rows []schedule.Row) []listEntry {
	entries := make([]listEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, listEntry{
			Number:  r.Number,
			Name:    r.Name,
			Display: r.Display,
			Start:   schedule.FormatDate(r.Start),
			End:     schedule.FormatDate(r.End),
			Status:  r.Status,
		})
	}
	return entries
}

func writeJSON(w io.Writer, rows []schedule.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toEntries(rows))
}

func writeYAML(w io.Writer, rows []schedule.Row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toEntries(rows)); err != nil {
		return err
	}
	return enc.Close()
}

// printRows prints an aligned table, followed by the status counts when
// the list is unfiltered.
func printRows(w io.Writer, rows []schedule.Row, summary bool) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	nameWidth := runewidth.StringWidth("Task Name")
	for _, r := range rows {
		nameWidth = max(nameWidth, runewidth.StringWidth(r.Display))
	}
	dateWidth := len("Start Date")
	for _, r := range rows {
		dateWidth = max(dateWidth, len(schedule.FormatDate(r.Start)), len(schedule.FormatDate(r.End)))
	}

	line := func(name, start, end, status string) {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			runewidth.FillRight(name, nameWidth),
			runewidth.FillRight(start, dateWidth),
			runewidth.FillRight(end, dateWidth),
			status)
	}
	line("Task Name", "Start Date", "End Date", "Status")
	for _, r := range rows {
		line(r.Display, schedule.FormatDate(r.Start), schedule.FormatDate(r.End), string(r.Status))
	}

	if summary {
		counts := schedule.Counts(rows)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Tasks: %d  Main Task: %d  On Time: %d  Delayed: %d\n",
			len(rows),
			counts[schedule.StatusMain],
			counts[schedule.StatusOnTime],
			counts[schedule.StatusDelayed])
	}
}
