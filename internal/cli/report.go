package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"options-tracker/internal/ledger"
	"options-tracker/internal/metrics"
	"options-tracker/internal/models"
)

const emptyTip = "Save the activity API response and run 'options-tracker import <file>'."

// addReportCommands adds the read-only report commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStatusCmd(app))
	rootCmd.AddCommand(newSummaryCmd(app))
	rootCmd.AddCommand(newTradesCmd(app))
	rootCmd.AddCommand(newPnLCmd(app))
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what the latest capture holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			l, snap, err := app.loadLedger(cmd)
			if err != nil {
				output.Error("Failed to load snapshot: %v", err)
				return err
			}
			orders, histories := l.Counts()

			if output.IsJSON() {
				result := map[string]interface{}{
					"orders":        orders,
					"histories":     histories,
					"option_trades": len(l.All()),
					"status":        l.StatusLine(),
				}
				if snap != nil {
					result["snapshot"] = snap.ID
					result["captured_at"] = snap.CapturedAt
				}
				return output.JSON(result)
			}

			if snap == nil {
				output.Println(l.StatusLine())
				output.Dim(emptyTip)
				return nil
			}

			output.Bold("Snapshot %s", snap.ID)
			output.Printf("  Captured:      %s\n", FormatDateTime(snap.CapturedAt, app.location()))
			output.Printf("  Source:        %s\n", snap.Source)
			output.Printf("  Orders:        %d\n", orders)
			output.Printf("  Histories:     %d\n", histories)
			output.Println()
			output.Success("%s", l.StatusLine())
			return nil
		},
	}
}

// summaryView is the JSON shape of the summary command.
type summaryView struct {
	Snapshot string                `json:"snapshot,omitempty"`
	Metrics  models.Metrics        `json:"metrics"`
	Actions  []metrics.ActionCount `json:"actions"`
	Types    metrics.TypeSplit     `json:"types"`
}

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show P&L, win rate, premium and fees",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			l, snap, err := app.loadLedger(cmd)
			if err != nil {
				output.Error("Failed to load snapshot: %v", err)
				return err
			}

			m := l.Metrics()
			actions := metrics.ActionStats(m)
			types := metrics.TypeShare(m)

			if output.IsJSON() {
				view := summaryView{Metrics: m, Actions: actions, Types: types}
				if snap != nil {
					view.Snapshot = snap.ID
				}
				return output.JSON(view)
			}

			if l.Empty() {
				output.Warning("No option trades found.")
				output.Dim(emptyTip)
				return nil
			}

			output.Box("Summary", []string{
				fmt.Sprintf("Total P&L:          %s", output.FormatPnL(m.TotalPnL)),
				fmt.Sprintf("Total Trades:       %d", m.TotalTrades),
				fmt.Sprintf("Win Rate:           %s", FormatWinRate(m.WinRate)),
				fmt.Sprintf("Wins / Losses:      %d / %d", m.Wins, m.Losses()),
				fmt.Sprintf("Premium Collected:  %s", output.Green(FormatPremium(m.PremiumCollected))),
				fmt.Sprintf("Total Fees:         %s", output.Red(FormatFees(m.TotalFees))),
			})
			output.Println()

			if len(actions) > 0 {
				output.Bold("Actions")
				for _, a := range actions {
					count := fmt.Sprintf("%d", a.Count)
					if a.Action.IsSell() {
						count = output.Green(count)
					} else {
						count = output.Yellow(count)
					}
					output.Printf("  %-15s %s\n", a.Action, count)
				}
				output.Println()
			}

			output.Bold("Types")
			output.Printf("  %-15s %d (%s%%)\n", "Puts", types.Puts, types.PutShare.String())
			output.Printf("  %-15s %d (%s%%)\n", "Calls", types.Calls, types.CallShare.String())

			if len(m.ByTicker) > 0 {
				output.Println()
				output.Bold("P&L by Ticker")
				table := NewTable(output, "Ticker", "P&L")
				for _, tp := range m.ByTicker {
					table.AddRow(tp.Ticker, output.FormatPnL(tp.PnL))
				}
				table.Render()
			}
			return nil
		},
	}
}

func newTradesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "List option trades",
		Long:  "List option trades, most recent first. Cancelled trades are hidden unless --cancelled is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			l, _, err := app.loadLedger(cmd)
			if err != nil {
				output.Error("Failed to load snapshot: %v", err)
				return err
			}

			opts := viewOptions(cmd, app.Config.Display.ShowCancelled, app.Config.Display.Aggregate)
			rows := l.View(opts)

			if output.IsJSON() {
				return output.JSON(rows)
			}

			if l.Empty() {
				output.Warning("No option trades found.")
				output.Dim(emptyTip)
				return nil
			}

			renderTrades(output, rows, opts.Aggregate)
			output.Println()
			output.Dim("%d rows", len(rows))
			return nil
		},
	}

	cmd.Flags().Bool("cancelled", false, "include cancelled trades")
	cmd.Flags().Bool("aggregate", false, "combine same-day fills of the same contract")
	return cmd
}

// viewOptions reads the --cancelled and --aggregate flags over config defaults.
func viewOptions(cmd *cobra.Command, showCancelled, aggregate bool) ledger.ViewOptions {
	if cmd.Flags().Changed("cancelled") {
		showCancelled, _ = cmd.Flags().GetBool("cancelled")
	}
	if cmd.Flags().Changed("aggregate") {
		aggregate, _ = cmd.Flags().GetBool("aggregate")
	}
	return ledger.ViewOptions{ShowCancelled: showCancelled, Aggregate: aggregate}
}

func renderTrades(output *Output, rows []models.AggregatedTrade, aggregated bool) {
	table := NewTable(output, "Date", "Ticker", "Type", "Action", "Exp", "Qty", "Price", "P&L", "Status")
	for _, r := range rows {
		action := FormatAction(r.Action)
		if r.Action.IsSell() {
			action = output.Green(action)
		} else if r.Action != models.ActionNone {
			action = output.Yellow(action)
		}

		amount := FormatAmountCell(r.Amount)
		if !r.Amount.IsZero() {
			amount = output.ColoredString(output.PnLColor(r.Amount), amount)
		}

		status := ""
		if r.IsCancelled() {
			status = output.Red(models.StatusCancelled)
		}

		table.AddRow(
			r.Date,
			output.BoldText(r.Ticker),
			string(r.Type),
			action,
			r.Expiry,
			FormatQuantityCell(r, aggregated),
			FormatPrice(r.Price),
			amount,
			status,
		)
	}
	table.Render()
}

func newPnLCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pnl",
		Short: "Show cumulative realized P&L over time",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			l, _, err := app.loadLedger(cmd)
			if err != nil {
				output.Error("Failed to load snapshot: %v", err)
				return err
			}

			series := l.Metrics().PnLSeries
			if output.IsJSON() {
				return output.JSON(series)
			}

			if len(series) < 2 {
				output.Warning("No executed option trades yet.")
				return nil
			}

			output.Bold("%s", PnLTitle(series))
			table := NewTable(output, "Date", "Ticker", "Amount", "Cumulative")
			for _, p := range series {
				amount := ""
				if p.Ticker != "" {
					amount = output.FormatPnL(p.Amount)
				}
				table.AddRow(p.Label, p.Ticker, amount, output.FormatPnL(p.Cumulative))
			}
			table.Render()
			return nil
		},
	}
}

// PnLTitle is the heading of the cumulative P&L view, naming the first
// executed trade date.
func PnLTitle(series []models.PnLPoint) string {
	first := ""
	if len(series) > 1 {
		first = series[1].Label
	}
	return "Cumulative P&L since " + first
}
