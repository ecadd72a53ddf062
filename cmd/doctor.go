package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nibzard/ganttboard/internal/config"
	"github.com/nibzard/ganttboard/internal/logging"
	"github.com/nibzard/ganttboard/internal/schedule"
	"github.com/nibzard/ganttboard/internal/workbook"
)

// doctorCommand checks config, workbook layout and record validity.
func doctorCommand(args []string) error {
	// Parse doctor-specific flags
	fs := newFlagSet("doctor")
	verbose := fs.Bool("v", false, "Verbose output")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	cfg := cws.Config
	w := stdout

	fmt.Fprintln(w, "ganttboard doctor")
	fmt.Fprintln(w, "=================")
	fmt.Fprintln(w)

	allOK := true

	// Check config
	fmt.Fprintln(w, "Config:")
	if file := cws.GetConfigFile(); file != "" {
		fmt.Fprintf(w, "  File: %s\n", file)
	} else {
		fmt.Fprintln(w, "  File: (none, using defaults)")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	if cfg.Editor() {
		fmt.Fprintf(w, "  Access: editor, saves to %s\n", cfg.OutputFile)
	} else {
		fmt.Fprintln(w, "  Access: viewer")
	}
	if !logging.ValidLevel(cfg.LogLevel) {
		fmt.Fprintf(w, "  ⚠️  Unknown log level %q, using info\n", cfg.LogLevel)
	}
	if !logging.ValidFormatter(cfg.LogFormat) {
		fmt.Fprintf(w, "  ⚠️  Unknown log format %q, using text\n", cfg.LogFormat)
	}
	fmt.Fprintln(w)

	// Check workbook
	fmt.Fprintf(w, "Schedule file: %s\n", cfg.WorkbookFile)
	table, ok := doctorWorkbook(cfg, *verbose)
	if !ok {
		allOK = false
	}
	fmt.Fprintln(w)

	// Check records
	if table != nil {
		fmt.Fprintln(w, "Records:")
		result := table.Validate()
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  ⚠️  %s\n", warning)
		}
		if result.Valid {
			fmt.Fprintln(w, "  ✅ Valid")
		} else {
			fmt.Fprintln(w, "  ❌ Validation failed:")
			for _, e := range result.Errors {
				fmt.Fprintf(w, "     - %v\n", e)
			}
			allOK = false
		}
		fmt.Fprintln(w)
	}

	// Check log directory
	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.WorkbookFile)
	if err != nil {
		fmt.Fprintf(w, "Log directory: %s\n", cfg.LogDir)
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintf(w, "Log directory: %s\n", logDir)
		if info, err := os.Stat(logDir); err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(w, "  ⚠️  Not found (will be created by tui)")
			} else {
				fmt.Fprintf(w, "  ❌ Error: %v\n", err)
				allOK = false
			}
		} else if !info.IsDir() {
			fmt.Fprintln(w, "  ❌ Error: path is not a directory")
			allOK = false
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
	}
	fmt.Fprintln(w)

	// Overall status
	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. ganttboard may not show the full schedule.")
	return fmt.Errorf("doctor checks failed")
}

// doctorWorkbook loads and cleans the schedule, printing what it finds. The
// table is nil when the file could not be read.
func doctorWorkbook(cfg *config.Config, verbose bool) (*schedule.Table, bool) {
	w := stdout

	info, err := os.Stat(cfg.WorkbookFile)
	switch {
	case err != nil && os.IsNotExist(err):
		fmt.Fprintln(w, "  ❌ Not found")
		return nil, false
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return nil, false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return nil, false
	}

	raw, err := workbook.Load(cfg.WorkbookFile, cfg.WorkbookOptions())
	if err != nil {
		var missing *workbook.MissingColumnsError
		switch {
		case errors.Is(err, workbook.ErrSheetNotFound):
			fmt.Fprintf(w, "  ❌ Sheet %q not found\n", cfg.Sheet)
		case errors.As(err, &missing):
			fmt.Fprintf(w, "  ❌ Header row %d of sheet %q lacks columns:\n", cfg.HeaderRow, missing.Sheet)
			for _, h := range missing.Headers {
				fmt.Fprintf(w, "     - %s\n", h)
			}
		default:
			fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
		}
		return nil, false
	}
	fmt.Fprintf(w, "  ✅ Sheet %q, %d data rows\n", raw.Sheet, len(raw.Rows))

	table, report := schedule.Clean(raw)
	ok := true
	if report.Kept == 0 {
		fmt.Fprintln(w, "  ❌ No usable tasks")
		ok = false
	} else {
		fmt.Fprintf(w, "  ✅ Kept %d tasks\n", report.Kept)
	}
	if report.Dropped() > 0 {
		fmt.Fprintf(w, "  ⚠️  Dropped %d rows (missing cells: %d, bad number: %d, bad dates: %d)\n",
			report.Dropped(), report.DroppedMissing, report.DroppedNumber, report.DroppedDates)
	}
	if verbose {
		if from, to, ok := table.Span(); ok {
			fmt.Fprintf(w, "  Span: %s to %s\n", from.Format(time.DateOnly), to.Format(time.DateOnly))
		}
		counts := make(map[schedule.Status]int)
		for _, status := range table.Classify(now()) {
			counts[status]++
		}
		for _, status := range schedule.Statuses {
			fmt.Fprintf(w, "  %s: %d\n", status, counts[status])
		}
	}
	return table, ok
}
