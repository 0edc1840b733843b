package commands

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"indiamap/internal/geo"
)

func featuresCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Load the dataset and list its states",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.LoadDataset(cmd.Context()); err != nil {
				return err
			}
			snap, _ := appCtx.Store().Snapshot()
			out := cmd.OutOrStdout()

			details := make([]geo.Details, 0, len(snap.Features()))
			for _, f := range snap.Features() {
				details = append(details, f.Details())
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(details)
			}

			header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
			cell := lipgloss.NewStyle().Padding(0, 1)
			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return header
					}
					return cell
				}).
				Headers("ID", "NAME", "ISO", "CAPITAL", "POPULATION", "AREA")
			for _, d := range details {
				t.Row(d.ID, d.Name, d.ISO, d.Capital, d.Population, d.Area)
			}
			fmt.Fprintln(out, t.Render())
			fmt.Fprintf(out, "%d states from %s\n", len(details), appCtx.Store().Source())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
