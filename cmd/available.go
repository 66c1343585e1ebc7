package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
)

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "List the courses you can start now",
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
		courses, err := ws.svc.Available(cmd.Context(), cur)
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No courses are available right now.")
			return nil
		}

		t := newTable("CODE", "NAME", "CR", "BLOCK")
		credits := 0
		for _, c := range courses {
			block := ""
			if b, ok := cur.BlockOf(c.Code); ok {
				block = b.Name
			}
			t.Row(c.Code, c.Name, fmt.Sprint(c.Credits), block)
			credits += c.Credits
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), t.Render())
		fmt.Fprintf(cmd.OutOrStdout(), "%s, %d credits\n", plural(len(courses), "course"), credits)
		return nil
	},
}
