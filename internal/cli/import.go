package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"options-tracker/internal/capture"
	"options-tracker/internal/ledger"
	"options-tracker/internal/logging"
	"options-tracker/internal/models"
	"options-tracker/pkg/utils"
)

// addImportCommands adds the capture import command.
func addImportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newImportCmd(app))
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file|-]",
		Short: "Import a captured activity response",
		Long: `Import the JSON response of the brokerage activity API and store it as a snapshot.

The input is either the raw response ({"data":{"getTransactions":...}}) or an
export of the browser extension storage. Reads stdin when the file is "-" or
omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			logger := logging.WithOperation(logging.FromContext(cmd.Context()), "import")

			source := "-"
			if len(args) == 1 {
				source = args[0]
			}

			payload, err := decodeSource(cmd.InOrStdin(), source)
			if err != nil {
				output.Error("Failed to read capture: %v", err)
				return err
			}

			s, err := app.store()
			if err != nil {
				return err
			}

			snap := &models.Snapshot{
				CapturedAt: app.Now(),
				Source:     sourceName(source),
				Orders:     payload.Orders,
				Histories:  payload.Histories,
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			err = utils.Retry(ctx, utils.DefaultRetryConfig(), func() error {
				return s.SaveSnapshot(ctx, snap)
			})
			if err != nil {
				output.Error("Failed to save snapshot: %v", err)
				return err
			}
			logging.LogImport(logger, snap.ID, snap.Source, len(snap.Orders), len(snap.Histories))

			l := ledger.FromSnapshot(snap, app.location(), app.Now(), logger)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"snapshot":      snap.ID,
					"source":        snap.Source,
					"orders":        len(snap.Orders),
					"histories":     len(snap.Histories),
					"option_trades": len(l.All()),
					"status":        l.StatusLine(),
				})
			}

			output.Success("✓ Imported snapshot %s", snap.ID)
			output.Printf("  Orders:        %d\n", len(snap.Orders))
			output.Printf("  Histories:     %d\n", len(snap.Histories))
			output.Println()
			output.Println(l.StatusLine())
			return nil
		},
	}
}

func decodeSource(stdin io.Reader, source string) (capture.Payload, error) {
	if source == "-" {
		return capture.Decode(stdin, "stdin")
	}
	if _, err := os.Stat(source); err != nil {
		return capture.Payload{}, err
	}
	return capture.DecodeFile(source)
}

func sourceName(source string) string {
	if source == "-" {
		return "stdin"
	}
	return source
}
