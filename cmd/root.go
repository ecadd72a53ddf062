// Package cmd implements the CLI command structure for ganttboard.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/ganttboard/internal/config"
	"github.com/nibzard/ganttboard/internal/logging"
	"github.com/nibzard/ganttboard/internal/schedule"
	"github.com/nibzard/ganttboard/internal/ui"
	"github.com/nibzard/ganttboard/internal/workbook"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams and clock, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	now              = time.Now
)

var commands = map[string]bool{
	"tui":     true,
	"ls":      true,
	"chart":   true,
	"export":  true,
	"doctor":  true,
	"config":  true,
	"tail":    true,
	"version": true,
	"help":    true,
}

// Run executes the ganttboard CLI.
func Run(ctx context.Context, args []string) error {
	// Determine the subcommand
	// If no args or first arg is a flag or a file, use "tui" as default
	subcommand := "tui"
	remainingArgs := args
	if len(args) > 0 {
		first := args[0]
		switch first {
		case "-h", "-help", "--help":
			printUsage(stdout)
			return nil
		case "-v", "-version", "--version":
			return versionCommand()
		}
		if !strings.HasPrefix(first, "-") {
			if commands[first] {
				subcommand = first
				remainingArgs = args[1:]
			} else if fi, err := os.Stat(first); err != nil || fi.IsDir() {
				fmt.Fprintf(stderr, "Unknown command: %s\n", first)
				printUsage(stderr)
				return fmt.Errorf("unknown command: %s", first)
			}
		}
	}

	var err error
	switch subcommand {
	case "tui":
		err = tuiCommand(ctx, remainingArgs)
	case "ls":
		err = lsCommand(remainingArgs)
	case "chart":
		err = chartCommand(remainingArgs)
	case "export":
		err = exportCommand(remainingArgs)
	case "doctor":
		err = doctorCommand(remainingArgs)
	case "config":
		err = configCommand(remainingArgs)
	case "tail":
		err = tailCommand(ctx, remainingArgs)
	case "version":
		err = versionCommand()
	case "help":
		printUsage(stdout)
	}
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// newFlagSet returns a flag set for a subcommand that reports to stderr.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("ganttboard "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// loadConfig layers the configuration and parses the command's flags. At
// most one positional argument, the schedule file, is accepted.
func loadConfig(fs *flag.FlagSet, args []string) (*config.Config, error) {
	cfg, err := config.Load(fs, args)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadSchedule reads and cleans the configured schedule file.
func loadSchedule(cfg *config.Config, logger *log.Logger) (*schedule.Table, schedule.CleanReport, error) {
	raw, err := workbook.Load(cfg.WorkbookFile, cfg.WorkbookOptions())
	if err != nil {
		return nil, schedule.CleanReport{}, fmt.Errorf("loading schedule: %w", err)
	}
	table, report := schedule.Clean(raw)
	logger.Info("schedule loaded", "path", raw.Source, "sheet", raw.Sheet, "rows", report.Total, "kept", report.Kept)
	if report.Dropped() > 0 {
		logger.Debug("rows dropped",
			"missing", report.DroppedMissing,
			"number", report.DroppedNumber,
			"dates", report.DroppedDates)
	}
	return table, report, nil
}

// commandLogger returns the stderr logger used by non-interactive commands.
func commandLogger(cfg *config.Config) *log.Logger {
	return logging.New(stderr, cfg.LogOptions())
}

// tuiCommand launches the dashboard.
func tuiCommand(ctx context.Context, args []string) error {
	fs := newFlagSet("tui")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	access := ui.AccessViewer
	if cfg.Editor() {
		access = ui.AccessEditor
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY; use ls or chart for plain output")
	}

	session, err := logging.NewSessionLog(cfg.LogDir, cfg.WorkbookFile)
	if err != nil {
		return fmt.Errorf("creating session log: %w", err)
	}
	defer session.Close()
	logger := session.Logger(cfg.LogOptions())

	table, _, err := loadSchedule(cfg, logger)
	if err != nil {
		logger.Error("load failed", "err", err)
		return err
	}

	err = ui.Run(ctx, table, ui.Options{
		Access:     access,
		Scale:      cfg.TimeScale(),
		NameLimit:  cfg.NameLimit,
		OutputFile: cfg.OutputFile,
		Source:     cfg.WorkbookFile,
		Logger:     logger,
		Now:        now,
	})
	if err != nil {
		logger.Error("session ended with error", "err", err)
		return err
	}
	logger.Info("session ended")
	return nil
}

// tailCommand tails the latest session log.
func tailCommand(ctx context.Context, args []string) error {
	// Parse tail-specific flags
	fs := newFlagSet("tail")
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.WorkbookFile)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(stdout)

	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "ganttboard version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "ganttboard - Project schedule Gantt dashboard")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ganttboard [command] [options] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options must come before the file argument:")
	fmt.Fprintln(w, "  ganttboard ls -status delayed schedule.xlsx")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui [file]          Launch the dashboard (default command)")
	fmt.Fprintln(w, "  ls [file]           List tasks with their status")
	fmt.Fprintln(w, "  chart [file]        Print the Gantt chart or write it as SVG")
	fmt.Fprintln(w, "  export [file]       Write the cleaned schedule as a CSV snapshot")
	fmt.Fprintln(w, "  doctor [file]       Check config, workbook layout and task records")
	fmt.Fprintln(w, "  config show|init    Show the effective config or write an example file")
	fmt.Fprintln(w, "  tail                Tail the latest session log")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (accepted by every command):")
	fmt.Fprintln(w, "  -sheet string")
	fmt.Fprintln(w, "        Sheet name (default \"БХ\")")
	fmt.Fprintln(w, "  -header-row int")
	fmt.Fprintln(w, "        Zero-based header row index (default 3)")
	fmt.Fprintln(w, "  -index-column int")
	fmt.Fprintln(w, "        Zero-based index column, -1 for none (default 0)")
	fmt.Fprintln(w, "  -out string")
	fmt.Fprintln(w, "        CSV snapshot path (default \"updated_project_schedule.csv\")")
	fmt.Fprintln(w, "  -name-limit int")
	fmt.Fprintln(w, "        Task name display length (default 30)")
	fmt.Fprintln(w, "  -access string")
	fmt.Fprintln(w, "        Access level (viewer, editor)")
	fmt.Fprintln(w, "  -scale string")
	fmt.Fprintln(w, "        Time scale (month, quarter, year)")
	fmt.Fprintln(w, "  -log-dir string")
	fmt.Fprintln(w, "        Session log directory (default \"~/.ganttboard\")")
	fmt.Fprintln(w, "  -log-level string")
	fmt.Fprintln(w, "        Log level (debug, info, warn, error)")
	fmt.Fprintln(w, "  -log-format string")
	fmt.Fprintln(w, "        Log format (text, json, logfmt)")
	fmt.Fprintln(w, "  -log-timestamps")
	fmt.Fprintln(w, "        Show timestamps in logs")
	fmt.Fprintln(w, "  -log-caller")
	fmt.Fprintln(w, "        Show caller location in logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (main|on-time|delayed)")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Output format (table|json|yaml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chart Options (use with 'chart' command):")
	fmt.Fprintln(w, "  -width int")
	fmt.Fprintln(w, "        Terminal chart width in columns (default 100)")
	fmt.Fprintln(w, "  -svg string")
	fmt.Fprintln(w, "        Write the chart as SVG to this path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Init Options (use with 'config init'):")
	fmt.Fprintln(w, "  -user")
	fmt.Fprintln(w, "        Write the user config instead of ./ganttboard.toml")
	fmt.Fprintln(w, "  -force")
	fmt.Fprintln(w, "        Overwrite an existing file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
