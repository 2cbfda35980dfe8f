package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"options-tracker/internal/logging"
	"options-tracker/internal/store"
	"options-tracker/pkg/id"
)

// addSnapshotCommands adds snapshot management commands.
func addSnapshotCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "snapshots",
		Aliases: []string{"snapshot"},
		Short:   "Manage imported snapshots",
		Long:    "List and delete imported activity snapshots.",
	}

	cmd.AddCommand(newSnapshotsListCmd(app))
	cmd.AddCommand(newSnapshotsDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newSnapshotsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			s, err := app.store()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			limit, _ := cmd.Flags().GetInt("limit")
			source, _ := cmd.Flags().GetString("source")
			days, _ := cmd.Flags().GetInt("days")

			filter := store.SnapshotFilter{Source: source, Limit: limit}
			if days > 0 {
				filter.StartDate = app.Now().AddDate(0, 0, -days)
			}

			infos, err := s.ListSnapshots(ctx, filter)
			if err != nil {
				output.Error("Failed to list snapshots: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(infos)
			}

			if len(infos) == 0 {
				output.Info("No snapshots imported yet.")
				output.Dim(emptyTip)
				return nil
			}

			table := NewTable(output, "ID", "Captured", "Source", "Orders", "Histories")
			for _, info := range infos {
				table.AddRow(
					info.ID,
					FormatDateTime(info.CapturedAt, app.location()),
					TruncateString(info.Source, 40),
					fmt.Sprintf("%d", info.Orders),
					fmt.Sprintf("%d", info.Histories),
				)
			}
			table.Render()

			if last := s.GetLastImport(); !last.IsZero() {
				output.Println()
				output.Dim("Last import: %s", FormatDateTime(last, app.location()))
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "maximum snapshots to list (0 for all)")
	cmd.Flags().String("source", "", "only snapshots imported from this source")
	cmd.Flags().Int("days", 0, "only snapshots captured in the last N days")
	return cmd
}

func newSnapshotsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete snapshots",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			s, err := app.store()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(len(args))*storeTimeout)
			defer cancel()

			logger := logging.WithOperation(logging.FromContext(cmd.Context()), "delete")
			for _, snapshotID := range args {
				if !id.Valid(snapshotID) {
					err := notASnapshotID("delete", snapshotID)
					output.Error("%v", err)
					return err
				}
			}

			deleted := make([]string, 0, len(args))
			for _, snapshotID := range args {
				if err := s.DeleteSnapshot(ctx, snapshotID); err != nil {
					output.Error("Failed to delete %s: %v", snapshotID, err)
					return err
				}
				deleteLog := logging.WithSnapshot(logger, snapshotID)
				deleteLog.Info().Msg("Snapshot deleted")
				deleted = append(deleted, snapshotID)
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"deleted": deleted})
			}
			for _, snapshotID := range deleted {
				output.Success("✓ Deleted snapshot %s", snapshotID)
			}
			return nil
		},
	}
}
