package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/ganttboard/internal/chart"
	"github.com/nibzard/ganttboard/internal/logging"
	"github.com/nibzard/ganttboard/internal/workbook"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultWorkbookFile = "data/ГРАФИК_ПРОИЗВОДСТВА_РАБОТ_без_денег.xlsx"
	DefaultLogDir       = "~/.ganttboard"
	DefaultAccess       = "viewer"
	DefaultScale        = "month"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Columns holds the source header names of the four required columns.
type Columns struct {
	Number string `toml:"number"`
	Name   string `toml:"name"`
	Start  string `toml:"start"`
	End    string `toml:"end"`
}

// Config holds the full configuration for ganttboard.
type Config struct {
	// Source workbook
	WorkbookFile string  `toml:"workbook_file"`
	Sheet        string  `toml:"sheet"`
	HeaderRow    int     `toml:"header_row"`
	IndexColumn  int     `toml:"index_column"`
	Columns      Columns `toml:"columns"`

	// Editor snapshot
	OutputFile string `toml:"output_file"`

	// Presentation
	NameLimit int    `toml:"name_limit"`
	Access    string `toml:"access"`
	Scale     string `toml:"scale"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// ProjectRoot is the directory relative paths resolve against.
	ProjectRoot string `toml:"-"`
}

// WorkbookOptions returns the loader options for the configured layout.
func (c *Config) WorkbookOptions() workbook.Options {
	return workbook.Options{
		Sheet:       c.Sheet,
		HeaderRow:   c.HeaderRow,
		IndexColumn: c.IndexColumn,
		Headers: workbook.Headers{
			Number: c.Columns.Number,
			Name:   c.Columns.Name,
			Start:  c.Columns.Start,
			End:    c.Columns.End,
		},
	}
}

// LogOptions returns the logger options for the configured level and format.
func (c *Config) LogOptions() logging.Options {
	return logging.NewOptions(c.LogLevel, c.LogFormat, c.LogTimestamps, c.LogCaller)
}

// TimeScale returns the configured chart scale.
func (c *Config) TimeScale() chart.Scale {
	scale, err := chart.ParseScale(c.Scale)
	if err != nil {
		return chart.ScaleMonth
	}
	return scale
}

// Editor reports whether the dashboard starts in editor mode.
func (c *Config) Editor() bool {
	return strings.EqualFold(strings.TrimSpace(c.Access), "editor")
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Access)) {
	case "viewer", "editor":
	default:
		return fmt.Errorf("invalid access %q, must be viewer or editor", c.Access)
	}
	if _, err := chart.ParseScale(c.Scale); err != nil {
		return err
	}
	if strings.TrimSpace(c.Sheet) == "" {
		return fmt.Errorf("sheet must not be empty")
	}
	if c.HeaderRow < 0 {
		return fmt.Errorf("invalid header_row %d, must not be negative", c.HeaderRow)
	}
	if c.IndexColumn < -1 {
		return fmt.Errorf("invalid index_column %d, must be -1 (none) or a column index", c.IndexColumn)
	}
	if c.NameLimit <= 0 {
		return fmt.Errorf("invalid name_limit %d, must be positive", c.NameLimit)
	}
	for key, header := range map[string]string{
		"columns.number": c.Columns.Number,
		"columns.name":   c.Columns.Name,
		"columns.start":  c.Columns.Start,
		"columns.end":    c.Columns.End,
	} {
		if strings.TrimSpace(header) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if !logging.ValidFormatter(c.LogFormat) {
		return fmt.Errorf("invalid log_format %q, must be text, json or logfmt", c.LogFormat)
	}
	return nil
}
