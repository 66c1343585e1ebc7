package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/eligibility"
	"github.com/abhisek/currimap/internal/progress"
	"github.com/abhisek/currimap/internal/ui/components"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show credit totals and progress per block",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		cur, err := ws.curriculum()
		if err != nil {
			return err
		}
		rec, err := ws.svc.Record(cmd.Context(), cur)
		if err != nil {
			return err
		}
		sum := eligibility.Summarize(cur, rec)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", cur.Name)
		bar := components.NewCreditBar(sum.CompletedCredits, sum.InProgressCredits, sum.TotalCredits, 60)
		lipgloss.Fprintln(out, bar.View())
		fmt.Fprintf(out, "%d completed · %d in progress · %d available · %d courses\n\n",
			sum.Completed, sum.InProgress, sum.Available, sum.Courses)

		t := newTable("BLOCK", "NAME", "DONE", "TAKING", "CREDITS")
		for _, b := range cur.Blocks {
			done, taking, credits := 0, 0, 0
			for _, c := range b.Courses {
				switch rec.Status(c.Code) {
				case progress.Completed:
					done++
					credits += c.Credits
				case progress.InProgress:
					taking++
				}
			}
			t.Row(fmt.Sprint(b.ID), b.Name,
				fmt.Sprintf("%d/%d", done, len(b.Courses)), fmt.Sprint(taking),
				fmt.Sprintf("%d/%d", credits, b.TotalCredits))
		}
		lipgloss.Fprintln(out, t.Render())

		if !rec.LastUpdated.IsZero() {
			fmt.Fprintf(out, "Last updated %s\n", rec.LastUpdated.Local().Format("Jan 02, 2006 15:04"))
		}
		return nil
	},
}
