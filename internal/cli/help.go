package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExamplesCmd())
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		Long:  "Display examples of common workflows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Common Workflow Examples")
			output.Println()

			examples := []struct {
				title    string
				commands []string
			}{
				{
					title: "Import a Capture",
					commands: []string{
						"options-tracker import activity.json   # Store the saved API response",
						"pbpaste | options-tracker import -     # Import from the clipboard",
						"options-tracker status                 # Check what was captured",
					},
				},
				{
					title: "Review Performance",
					commands: []string{
						"options-tracker summary                # P&L, win rate, premium, fees",
						"options-tracker pnl                    # Cumulative P&L over time",
						"options-tracker trades --aggregate     # Combine same-day fills",
						"options-tracker trades --cancelled     # Include cancelled orders",
					},
				},
				{
					title: "Export",
					commands: []string{
						"options-tracker export                 # options_trades_<date>.csv",
						"options-tracker export -o - --aggregate > trades.csv",
					},
				},
				{
					title: "Older Snapshots",
					commands: []string{
						"options-tracker snapshots list         # Imported snapshots",
						"options-tracker summary --snapshot <id>",
						"options-tracker snapshots delete <id>",
					},
				},
			}

			for _, ex := range examples {
				output.Bold(ex.title)
				for _, c := range ex.commands {
					parts := strings.SplitN(c, "#", 2)
					if len(parts) == 2 {
						output.Printf("  %s %s\n", output.Cyan(strings.TrimSpace(parts[0])), output.DimText(strings.TrimSpace(parts[1])))
					} else {
						output.Printf("  %s\n", output.Cyan(c))
					}
				}
				output.Println()
			}

			return nil
		},
	}
}
