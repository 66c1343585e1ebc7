package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/currimap/internal/eligibility"
	"github.com/abhisek/currimap/internal/progress"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Change course status and grades",
}

var statusSetCmd = &cobra.Command{
	Use:   "set <code> <status>",
	Short: "Set a course's status (not-started, in-progress, completed)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := progress.ParseStatus(args[1])
		if err != nil {
			return err
		}
		grade, err := gradeFlag(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

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

		if status != progress.NotStarted && !force {
			v, err := ws.svc.Check(cmd.Context(), cur, code)
			if err != nil {
				return err
			}
			rec, err := ws.svc.Record(cmd.Context(), cur)
			if err != nil {
				return err
			}
			if !v.Eligible && rec.Status(code) == progress.NotStarted {
				return fmt.Errorf("%w: %s (use --force to record it anyway)", eligibility.ErrNotEligible, describeUnmet(v))
			}
		}

		if err := ws.svc.SetStatus(cmd.Context(), cur, code, status, grade); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", code, status.Label())
		return nil
	},
}

var statusCycleCmd = &cobra.Command{
	Use:     "cycle <code>",
	Aliases: []string{"toggle"},
	Short:   "Advance a course to its next status",
	Args:    cobra.ExactArgs(1),
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
		next, err := ws.svc.Toggle(cmd.Context(), cur, code)
		if errors.Is(err, eligibility.ErrNotEligible) {
			v, cerr := ws.svc.Check(cmd.Context(), cur, code)
			if cerr == nil {
				return fmt.Errorf("%w: %s", err, describeUnmet(v))
			}
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", code, next.Label())
		return nil
	},
}

var statusGradeCmd = &cobra.Command{
	Use:   "grade <code> [grade]",
	Short: "Record a course grade; omit the grade to clear it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var grade *float64
		if len(args) == 2 {
			g, err := parseGrade(args[1])
			if err != nil {
				return err
			}
			grade = &g
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
		code, err := courseCode(cur, args[0])
		if err != nil {
			return err
		}
		if err := ws.svc.SetGrade(cmd.Context(), cur, code, grade); err != nil {
			return err
		}
		if grade == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s grade cleared\n", code)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s grade %.1f\n", code, *grade)
		}
		return nil
	},
}

// describeUnmet lists the unmet requirements of a verdict on one line.
func describeUnmet(v eligibility.Verdict) string {
	parts := make([]string, 0, len(v.Unmet))
	for _, req := range v.Unmet {
		parts = append(parts, fmt.Sprintf("%s %s", req.Kind, req.Code))
	}
	return v.Code + " needs " + strings.Join(parts, ", ")
}

func gradeFlag(cmd *cobra.Command) (*float64, error) {
	if !cmd.Flags().Changed("grade") {
		return nil, nil
	}
	raw, _ := cmd.Flags().GetString("grade")
	g, err := parseGrade(raw)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func init() {
	statusSetCmd.Flags().String("grade", "", "Grade to record with the status")
	statusSetCmd.Flags().Bool("force", false, "Record the status even if requirements are unmet")

	statusCmd.AddCommand(statusSetCmd)
	statusCmd.AddCommand(statusCycleCmd)
	statusCmd.AddCommand(statusGradeCmd)
}
