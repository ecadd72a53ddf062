// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.ganttboard/ganttboard.toml or OS-specific config directory)
// 3. Project config file (ganttboard.toml or .ganttboard.toml in the working directory)
// 4. Environment variables (GANTTBOARD_*)
// 5. CLI flags and the positional schedule file
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.ganttboard/ganttboard.toml (preferred)
// - Windows: %APPDATA%\ganttboard\ganttboard.toml
// - macOS: ~/Library/Application Support/ganttboard/ganttboard.toml
// - Linux/BSD: $XDG_CONFIG_HOME/ganttboard/ganttboard.toml or ~/.config/ganttboard/ganttboard.toml
//
// Project-level config locations (overrides user config):
// - ./ganttboard.toml (preferred)
// - ./.ganttboard.toml
package config
