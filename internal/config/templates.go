package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Options Tracker Configuration

[storage]
# SQLite database holding imported activity snapshots
# db_path = "~/.config/options-tracker/snapshots.db"

[export]
# Directory CSV exports are written to
dir = "."
# Include cancelled trades in exports
include_cancelled = false
# Combine same-day fills of the same contract into one row
aggregate = false

[display]
# Time zone activity dates are read in: "Local" or an IANA name
timezone = "Local"
# Enable colored output
color_enabled = true
# Show cancelled trades in tables
show_cancelled = false
# Combine same-day fills in tables
aggregate = false

[logging]
# Log level: debug, info, warn, error
level = "info"
# Write a rotating log file next to this config
file = true
# Rotate after this many megabytes
max_size = 10
# Rotated files to keep
max_backups = 3
# Days to keep rotated files
max_age = 30
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
