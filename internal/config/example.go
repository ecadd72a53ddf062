package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# ganttboard configuration file
# Values can be overridden by GANTTBOARD_* environment variables or CLI flags

# Schedule workbook (.xlsx, or a .csv snapshot saved by the editor)
workbook_file = "data/ГРАФИК_ПРОИЗВОДСТВА_РАБОТ_без_денег.xlsx"

# Sheet holding the schedule
sheet = "БХ"

# Zero-based row holding the column headers
header_row = 3

# Zero-based column holding the row index, ignored when matching headers (-1 for none)
index_column = 0

# Editor snapshot path (overwritten on every save)
output_file = "updated_project_schedule.csv"

# Task name characters shown before "..."
name_limit = 30

# Initial access level: viewer or editor
access = "viewer"

# Initial time scale: month, quarter or year
scale = "month"

# Session log directory (supports ~ and $VAR expansion)
log_dir = "~/.ganttboard"

# Logging: debug, info, warn, error / text, json, logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false

# Header names of the required columns
[columns]
number = "№ п/п"
name = "Наименование работ"
start = "Начало работ*"
end = "Окончание работ"
`
}
