package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from GANTTBOARD_* environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setInt := func(env, field string, target *int) error {
		v := os.Getenv(env)
		if v == "" {
			return nil
		}
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", env, v, err)
		}
		*target = i
		sources[field] = SourceEnv
		return nil
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString("GANTTBOARD_WORKBOOK", "workbook_file", &cfg.WorkbookFile)
	setString("GANTTBOARD_SHEET", "sheet", &cfg.Sheet)
	if err := setInt("GANTTBOARD_HEADER_ROW", "header_row", &cfg.HeaderRow); err != nil {
		return err
	}
	if err := setInt("GANTTBOARD_INDEX_COLUMN", "index_column", &cfg.IndexColumn); err != nil {
		return err
	}
	setString("GANTTBOARD_OUTPUT", "output_file", &cfg.OutputFile)
	if err := setInt("GANTTBOARD_NAME_LIMIT", "name_limit", &cfg.NameLimit); err != nil {
		return err
	}
	setString("GANTTBOARD_ACCESS", "access", &cfg.Access)
	setString("GANTTBOARD_SCALE", "scale", &cfg.Scale)

	// Logging configuration
	setString("GANTTBOARD_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("GANTTBOARD_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("GANTTBOARD_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("GANTTBOARD_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("GANTTBOARD_LOG_CALLER", "log_caller", &cfg.LogCaller)
	return nil
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
