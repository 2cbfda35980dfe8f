package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"options-tracker/internal/logging"
)

// addExportCommands adds the CSV export command.
func addExportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExportCmd(app))
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export option trades to CSV",
		Long: `Export option trades to CSV, most recent first.

The file is named options_trades_<date>.csv and written to the configured export
directory unless -o is given. Use -o - to write to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			logger := logging.WithOperation(logging.FromContext(cmd.Context()), "export")
			start := time.Now()

			l, snap, err := app.loadLedger(cmd)
			if err != nil {
				output.Error("Failed to load snapshot: %v", err)
				return err
			}
			if snap == nil {
				output.Warning("No data yet.")
				return errNoSnapshot
			}

			opts := viewOptions(cmd, app.Config.Export.IncludeCancelled, app.Config.Export.Aggregate)
			path, _ := cmd.Flags().GetString("output")
			if path == "-" {
				return l.WriteExport(output.Writer(), opts)
			}

			data := l.Export(opts)
			rows := bytes.Count(data, []byte("\n"))
			if path == "" {
				path = filepath.Join(app.Config.Export.Dir, l.ExportName())
			}

			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					output.Error("Failed to create export directory: %v", err)
					return err
				}
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				output.Error("Failed to write file: %v", err)
				return fmt.Errorf("failed to write export: %w", err)
			}
			logging.LogExport(logging.WithSnapshot(logger, snap.ID), path, rows, time.Since(start))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"path":     path,
					"rows":     rows,
					"snapshot": snap.ID,
				})
			}
			output.Success("✓ Exported %d trades to %s", rows, path)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file (- for stdout)")
	cmd.Flags().Bool("cancelled", false, "include cancelled trades")
	cmd.Flags().Bool("aggregate", false, "combine same-day fills of the same contract")
	return cmd
}
