package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.ganttboard/ganttboard.toml or OS-specific config dir)
// 3. Project config file (ganttboard.toml or .ganttboard.toml in current directory)
// 4. Environment variables
// 5. CLI flags; the first positional argument replaces workbook_file
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}
	cws := &ConfigWithSources{Config: cfg, Sources: sources}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		cws.Files = append(cws.Files, userConfigFile)
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		cws.Files = append(cws.Files, projectConfigFile)
	}

	// 4. Override from environment
	if err := loadFromEnv(cfg, sources); err != nil {
		return nil, err
	}

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"workbook_file",
		"sheet",
		"header_row",
		"index_column",
		"columns.number",
		"columns.name",
		"columns.start",
		"columns.end",
		"output_file",
		"name_limit",
		"access",
		"scale",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// loadConfigFile decodes a TOML file over cfg. Only keys present in the file
// replace current values and have their source updated.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	fileCfg := *cfg
	md, err := toml.DecodeFile(path, &fileCfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	*cfg = fileCfg
	for _, key := range md.Keys() {
		name := key.String()
		if _, ok := sources[name]; ok {
			sources[name] = source
		}
	}
	return nil
}

// finalizeConfig computes derived values and resolves paths.
func finalizeConfig(cfg *Config) error {
	// Expand ~ and environment variables in paths
	cfg.WorkbookFile = expandPath(cfg.WorkbookFile)
	cfg.OutputFile = expandPath(cfg.OutputFile)
	cfg.LogDir = expandPath(cfg.LogDir)

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	// Make paths absolute if they're relative
	if cfg.WorkbookFile != "" && !filepath.IsAbs(cfg.WorkbookFile) {
		cfg.WorkbookFile = filepath.Join(cfg.ProjectRoot, cfg.WorkbookFile)
	}
	if cfg.OutputFile != "" && !filepath.IsAbs(cfg.OutputFile) {
		cfg.OutputFile = filepath.Join(cfg.ProjectRoot, cfg.OutputFile)
	}

	return nil
}

// expandPath expands a leading ~ and $VAR references.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded != "~" && !strings.HasPrefix(expanded, "~/") && !strings.HasPrefix(expanded, `~\`) {
		return expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	return filepath.Join(home, expanded[1:])
}
