package config

import (
	"flag"
)

// flagFields maps flag names to config field names.
var flagFields = map[string]string{
	"sheet":          "sheet",
	"header-row":     "header_row",
	"index-column":   "index_column",
	"out":            "output_file",
	"name-limit":     "name_limit",
	"access":         "access",
	"scale":          "scale",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines config flags on fs, parses args and applies the flags
// that were set. The first positional argument, if any, is the schedule file.
// Flags a command has already defined on fs are left alone.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("ganttboard", flag.ContinueOnError)
	}

	stringVar := func(p *string, name, usage string) {
		if fs.Lookup(name) == nil {
			fs.StringVar(p, name, *p, usage)
		}
	}
	intVar := func(p *int, name, usage string) {
		if fs.Lookup(name) == nil {
			fs.IntVar(p, name, *p, usage)
		}
	}
	boolVar := func(p *bool, name, usage string) {
		if fs.Lookup(name) == nil {
			fs.BoolVar(p, name, *p, usage)
		}
	}

	// Workbook layout
	stringVar(&cfg.Sheet, "sheet", "Sheet name")
	intVar(&cfg.HeaderRow, "header-row", "Zero-based header row index")
	intVar(&cfg.IndexColumn, "index-column", "Zero-based index column, -1 for none")

	// Output and presentation
	stringVar(&cfg.OutputFile, "out", "CSV snapshot path")
	intVar(&cfg.NameLimit, "name-limit", "Task name display length")
	stringVar(&cfg.Access, "access", "Access level (viewer, editor)")
	stringVar(&cfg.Scale, "scale", "Time scale (month, quarter, year)")

	// Logging
	stringVar(&cfg.LogDir, "log-dir", "Session log directory")
	stringVar(&cfg.LogLevel, "log-level", "Log level (debug, info, warn, error)")
	stringVar(&cfg.LogFormat, "log-format", "Log format (text, json, logfmt)")
	boolVar(&cfg.LogTimestamps, "log-timestamps", "Show timestamps in logs")
	boolVar(&cfg.LogCaller, "log-caller", "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})

	if fs.NArg() > 0 {
		cfg.WorkbookFile = fs.Arg(0)
		sources["workbook_file"] = SourceFlag
	}

	return nil
}
