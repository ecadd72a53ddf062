package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nibzard/ganttboard/internal/config"
)

const projectConfigFile = "ganttboard.toml"

// configCommand dispatches config show and config init.
func configCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("config requires a subcommand: show or init")
	}
	switch args[0] {
	case "show":
		return configShowCommand(args[1:])
	case "init":
		return configInitCommand(args[1:])
	default:
		return fmt.Errorf("unknown config subcommand: %s", args[0])
	}
}

// configShowCommand prints the effective configuration and where each value
// came from.
func configShowCommand(args []string) error {
	fs := newFlagSet("config show")
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config

	if files := cws.Files; len(files) > 0 {
		fmt.Fprintln(stdout, "Config files:")
		for _, f := range files {
			fmt.Fprintf(stdout, "  %s\n", f)
		}
	} else {
		fmt.Fprintln(stdout, "Config files: (none)")
	}
	fmt.Fprintln(stdout)

	for _, field := range effectiveFields(cfg) {
		fmt.Fprintf(stdout, "%-16s = %-40s (%s)\n", field.key, field.value, cws.Sources[field.key])
	}
	return nil
}

type configField struct {
	key   string
	value string
}

func effectiveFields(cfg *config.Config) []configField {
	return []configField{
		{"workbook_file", strconv.Quote(cfg.WorkbookFile)},
		{"sheet", strconv.Quote(cfg.Sheet)},
		{"header_row", strconv.Itoa(cfg.HeaderRow)},
		{"index_column", strconv.Itoa(cfg.IndexColumn)},
		{"columns.number", strconv.Quote(cfg.Columns.Number)},
		{"columns.name", strconv.Quote(cfg.Columns.Name)},
		{"columns.start", strconv.Quote(cfg.Columns.Start)},
		{"columns.end", strconv.Quote(cfg.Columns.End)},
		{"output_file", strconv.Quote(cfg.OutputFile)},
		{"name_limit", strconv.Itoa(cfg.NameLimit)},
		{"access", strconv.Quote(cfg.Access)},
		{"scale", strconv.Quote(cfg.Scale)},
		{"log_dir", strconv.Quote(cfg.LogDir)},
		{"log_level", strconv.Quote(cfg.LogLevel)},
		{"log_format", strconv.Quote(cfg.LogFormat)},
		{"log_timestamps", strconv.FormatBool(cfg.LogTimestamps)},
		{"log_caller", strconv.FormatBool(cfg.LogCaller)},
	}
}

// configInitCommand writes the example config to the project or user file.
func configInitCommand(args []string) error {
	fs := newFlagSet("config init")
	user := fs.Bool("user", false, "Write the user config instead of ./"+projectConfigFile)
	force := fs.Bool("force", false, "Overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	path := projectConfigFile
	if *user {
		p, err := config.UserConfigPath()
		if err != nil {
			return fmt.Errorf("resolving user config path: %w", err)
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}
