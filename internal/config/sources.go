package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/nibzard/ganttboard/internal/schedule"
	"github.com/nibzard/ganttboard/internal/workbook"
)

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	for _, name := range []string{"ganttboard.toml", ".ganttboard.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.ganttboard/ganttboard.toml first, then falls back to OS-specific
// config directories.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, ".ganttboard", "ganttboard.toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, "ganttboard", "ganttboard.toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	headers := workbook.DefaultHeaders()

	cfg.WorkbookFile = DefaultWorkbookFile
	cfg.Sheet = workbook.DefaultSheet
	cfg.HeaderRow = workbook.DefaultHeaderRow
	cfg.IndexColumn = workbook.DefaultIndexColumn
	cfg.Columns = Columns{
		Number: headers.Number,
		Name:   headers.Name,
		Start:  headers.Start,
		End:    headers.End,
	}
	cfg.OutputFile = schedule.DefaultOutputFile
	cfg.NameLimit = schedule.DefaultNameLimit
	cfg.Access = DefaultAccess
	cfg.Scale = DefaultScale
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// UserConfigPath returns where `config init -user` writes the user config.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ganttboard", "ganttboard.toml"), nil
}

// GetConfigFile returns the highest priority config file that was read.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
