package cmd

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/eligibility"
	"github.com/abhisek/currimap/internal/progress"
	"github.com/spf13/cobra"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Inspect courses of the current curriculum",
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses with their status and eligibility",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		block, _ := cmd.Flags().GetInt("block")
		statusFlag, _ := cmd.Flags().GetString("status")

		var filter progress.Status
		if statusFlag != "" {
			st, err := progress.ParseStatus(statusFlag)
			if err != nil {
				return err
			}
			filter = st
		}

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

		t := newTable("BLOCK", "CODE", "NAME", "CR", "STATE", "GRADE")
		shown := 0
		for _, b := range cur.Blocks {
			if block != 0 && b.ID != block {
				continue
			}
			for _, c := range b.Courses {
				if filter != "" && rec.Status(c.Code) != filter {
					continue
				}
				grade := ""
				if g, ok := rec.Grade(c.Code); ok {
					grade = fmt.Sprintf("%.1f", g)
				}
				t.Row(fmt.Sprint(b.ID), c.Code, c.Name, fmt.Sprint(c.Credits),
					stateText(eligibility.StateOf(cur, rec, c.Code)), grade)
				shown++
			}
		}
		if shown == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No matching courses.")
			return nil
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var courseShowCmd = &cobra.Command{
	Use:   "show <code>",
	Short: "Show a course, its requirements and what it unlocks",
	Args:  cobra.ExactArgs(1),
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
		code, err := courseCode(cur, args[0])
		if err != nil {
			return err
		}
		c, _ := cur.Course(code)
		rec, err := ws.svc.Record(cmd.Context(), cur)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s\n", c.Code, c.Name)
		if b, ok := cur.BlockOf(code); ok {
			fmt.Fprintf(out, "  Block:    %d %s\n", b.ID, b.Name)
		}
		fmt.Fprintf(out, "  Credits:  %d\n", c.Credits)
		fmt.Fprintf(out, "  State:    %s\n", stateText(eligibility.StateOf(cur, rec, code)))
		if e, ok := rec.Entry(code); ok {
			if e.EnrolledAt != nil {
				fmt.Fprintf(out, "  Started:  %s\n", e.EnrolledAt.Local().Format("Jan 02, 2006"))
			}
			if e.CompletedAt != nil {
				fmt.Fprintf(out, "  Finished: %s\n", e.CompletedAt.Local().Format("Jan 02, 2006"))
			}
			if e.Grade != nil {
				fmt.Fprintf(out, "  Grade:    %.1f\n", *e.Grade)
			}
		}

		writeRelated(out, "Prerequisites", cur, rec, c.Prerequisites)
		writeRelated(out, "Corequisites", cur, rec, c.Corequisites)

		if rec.Status(code) == progress.NotStarted {
			v := eligibility.Check(cur, rec, code)
			if !v.Eligible {
				fmt.Fprintln(out, "\nMissing")
				for _, req := range v.Unmet {
					fmt.Fprintf(out, "  %s %s (%s)\n", req.Kind, req.Code, req.Status.Label())
				}
			}
		}

		if deps := cur.Dependents(code); len(deps) > 0 {
			fmt.Fprintln(out, "\nUnlocks")
			for _, d := range deps {
				fmt.Fprintf(out, "  %s %s\n", d.Code, d.Name)
			}
		}
		return nil
	},
}

func writeRelated(out io.Writer, heading string, cur *curriculum.Curriculum, rec *progress.Record, codes []string) {
	if len(codes) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s\n", heading)
	for _, code := range codes {
		name := "(not in curriculum)"
		if c, ok := cur.Course(code); ok {
			name = c.Name
		}
		fmt.Fprintf(out, "  %s %s %s\n", eligibility.StateOf(cur, rec, code).Icon(), code, name)
	}
}

func init() {
	courseListCmd.Flags().Int("block", 0, "Only list courses of this block ID")
	courseListCmd.Flags().String("status", "", "Only list courses with this status (not-started, in-progress, completed)")

	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseShowCmd)
}
