// Command options-tracker reports on options activity captured from a
// brokerage web session.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"options-tracker/internal/cli"
	"options-tracker/internal/config"
	apperrors "options-tracker/internal/errors"
)

func main() {
	// A .env file is optional.
	_ = godotenv.Load()

	configDir := configDirFromArgs(os.Args[1:])
	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errorHint(err, configDir); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}

	logger := cli.NewLogger(cfg, os.Stderr)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Debug().Err(err).Msg("Command failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errorHint(err, cfg.Dir); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}

// errorHint suggests a next step for errors the user can fix.
func errorHint(err error, configDir string) string {
	var ve *apperrors.ValidationError
	if apperrors.As(err, &ve) {
		return fmt.Sprintf("Fix %s in %s", ve.Field, config.Path(configDir))
	}
	if apperrors.Is(err, apperrors.ErrSnapshotNotFound) {
		return "List stored snapshots with 'options-tracker snapshots list'."
	}
	return ""
}

// configDirFromArgs finds --config before cobra parses flags, so the logger
// is built from the right file.
func configDirFromArgs(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--":
			return ""
		case arg == "--config" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}
