// Package cli provides the command-line interface for the options tracker.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-tracker/internal/config"
	apperrors "options-tracker/internal/errors"
	"options-tracker/internal/ledger"
	"options-tracker/internal/logging"
	"options-tracker/internal/models"
	"options-tracker/internal/store"
	"options-tracker/pkg/id"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-01-13"
)

const storeTimeout = 30 * time.Second

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.SnapshotStore

	// Now is the clock used for imports and export file names.
	Now func() time.Time
	// OpenStore opens the snapshot store at path.
	OpenStore func(path string) (store.SnapshotStore, error)

	dbPath string
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	return NewRootCmdWithApp(&App{
		Config: cfg,
		Logger: logger,
	})
}

// NewRootCmdWithApp creates the root command around prepared dependencies.
func NewRootCmdWithApp(app *App) *cobra.Command {
	if app.Now == nil {
		app.Now = time.Now
	}
	if app.OpenStore == nil {
		app.OpenStore = func(path string) (store.SnapshotStore, error) {
			return store.NewSQLiteStore(path)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "options-tracker",
		Short: "Options activity tracker - P&L, win rate and CSV export",
		Long: `Options Tracker turns captured brokerage activity into an options trading report.

Import the activity API response saved from the browser, then review realized
P&L, win rate, premium and fees, browse the trades table, or export a CSV.

Use 'options-tracker help <command>' for more information about a command.
Use 'options-tracker examples' to see common workflows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.prepare(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-tracker)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("db", "", "snapshot database path (overrides config)")
	rootCmd.PersistentFlags().String("snapshot", "", "snapshot ID to report on (default: latest)")

	addCoreCommands(rootCmd, app)
	addImportCommands(rootCmd, app)
	addReportCommands(rootCmd, app)
	addExportCommands(rootCmd, app)
	addSnapshotCommands(rootCmd, app)
	addHelpCommands(rootCmd, app)

	return rootCmd
}

// prepare applies global flags before any command runs.
func (a *App) prepare(cmd *cobra.Command) error {
	if dir, _ := cmd.Flags().GetString("config"); dir != "" {
		cfg, err := config.Load(dir)
		if err != nil {
			return err
		}
		a.Config = cfg
		a.Logger = NewLogger(cfg, cmd.ErrOrStderr())
	}
	if a.Config == nil {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		a.Config = cfg
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		a.Logger = a.Logger.Level(zerolog.DebugLevel)
	}

	a.dbPath = a.Config.Storage.DBPath
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		a.dbPath = db
	}

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.Logger))
	return nil
}

// NewLogger builds the application logger from configuration.
func NewLogger(cfg *config.Config, console io.Writer) zerolog.Logger {
	return logging.NewLoggerWithConfig(logging.LogConfig{
		Level:      cfg.Logging.Level,
		Console:    true,
		File:       cfg.Logging.File,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		NoColor:    !cfg.Display.ColorEnabled,
		Out:        console,
	})
}

// store opens the snapshot store on first use.
func (a *App) store() (store.SnapshotStore, error) {
	if a.Store != nil {
		return a.Store, nil
	}
	s, err := a.OpenStore(a.dbPath)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open snapshot store %s", a.dbPath)
	}
	a.Logger.Debug().Str("path", a.dbPath).Msg("Snapshot store opened")
	a.Store = s
	return s, nil
}

// Close releases the snapshot store.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	err := a.Store.Close()
	a.Store = nil
	return err
}

// location returns the zone activity dates are read in.
func (a *App) location() *time.Location {
	loc, err := a.Config.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

// loadSnapshot returns the snapshot named by --snapshot, or the latest one.
func (a *App) loadSnapshot(cmd *cobra.Command) (*models.Snapshot, error) {
	s, err := a.store()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
	defer cancel()

	if snapshotID, _ := cmd.Flags().GetString("snapshot"); snapshotID != "" {
		if !id.Valid(snapshotID) {
			return nil, notASnapshotID("get", snapshotID)
		}
		return s.GetSnapshot(ctx, snapshotID)
	}
	return s.LatestSnapshot(ctx)
}

// loadLedger builds the ledger for the selected snapshot. A missing latest
// snapshot yields an empty ledger rather than an error.
func (a *App) loadLedger(cmd *cobra.Command) (*ledger.Ledger, *models.Snapshot, error) {
	logger := logging.FromContext(cmd.Context())

	snap, err := a.loadSnapshot(cmd)
	if err != nil {
		explicit, _ := cmd.Flags().GetString("snapshot")
		if explicit == "" && apperrors.Is(err, apperrors.ErrSnapshotNotFound) {
			return ledger.FromSnapshot(nil, a.location(), a.Now(), logger), nil, nil
		}
		return nil, nil, err
	}

	logger = logging.WithSnapshot(logger, snap.ID)
	return ledger.FromSnapshot(snap, a.location(), a.Now(), logger), snap, nil
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Options Tracker v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config, app.dbPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			path := config.Path(app.Config.Dir)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": path})
			} else {
				output.Println(path)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config, dbPath string) {
	output.Bold("Storage")
	output.Printf("  Database:         %s\n", dbPath)
	output.Println()

	output.Bold("Export")
	output.Printf("  Directory:        %s\n", cfg.Export.Dir)
	output.Printf("  Include Cancelled: %v\n", cfg.Export.IncludeCancelled)
	output.Printf("  Aggregate:        %v\n", cfg.Export.Aggregate)
	output.Println()

	output.Bold("Display")
	output.Printf("  Timezone:         %s\n", cfg.Display.Timezone)
	output.Printf("  Color:            %v\n", cfg.Display.ColorEnabled)
	output.Printf("  Show Cancelled:   %v\n", cfg.Display.ShowCancelled)
	output.Printf("  Aggregate:        %v\n", cfg.Display.Aggregate)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:            %s\n", cfg.Logging.Level)
	if cfg.Logging.File {
		output.Printf("  File:             %s\n", cfg.Logging.FilePath)
	} else {
		output.Printf("  File:             %s\n", "disabled")
	}
}

// notASnapshotID rejects ids that cannot name a stored snapshot without
// touching the store.
func notASnapshotID(op, snapshotID string) error {
	return apperrors.Wrapf(apperrors.NewStoreError(op, snapshotID, apperrors.ErrSnapshotNotFound),
		"%q is not a snapshot ID", snapshotID)
}

// errNoSnapshot is returned by commands that need stored data.
var errNoSnapshot = fmt.Errorf("%w: run 'options-tracker import <file>' first", apperrors.ErrSnapshotNotFound)
