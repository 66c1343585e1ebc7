package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent progress changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		course, _ := cmd.Flags().GetString("course")

		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		cur, err := ws.curriculum()
		if err != nil {
			return err
		}
		if course != "" {
			if course, err = courseCode(cur, course); err != nil {
				return err
			}
		}
		changes, err := ws.store.History().List(cmd.Context(), cur.ID, store.QueryOpts{
			Limit:  limit,
			Course: course,
		})
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes recorded yet.")
			return nil
		}

		t := newTable("#", "WHEN", "COURSE", "STATUS", "GRADE")
		for _, c := range changes {
			when := c.At.Local().Format("2006-01-02 15:04")
			if c.Reset {
				t.Row(fmt.Sprint(c.Sequence), when, "", "progress reset", "")
				continue
			}
			grade := ""
			if c.Grade != nil {
				grade = fmt.Sprintf("%.1f", *c.Grade)
			}
			t.Row(fmt.Sprint(c.Sequence), when, c.Code, c.Status.Label(), grade)
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of changes to show (0 = all)")
	historyCmd.Flags().String("course", "", "Only show changes to this course")
}
