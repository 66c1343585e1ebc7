package cmd

import (
	"errors"
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/spf13/cobra"
)

var curriculaCmd = &cobra.Command{
	Use:   "curricula",
	Short: "List and validate curricula",
}

var curriculaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available curricula",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return fmt.Errorf("load curricula: %w", err)
		}

		t := newTable("ID", "NAME", "UNIVERSITY", "VERSION", "BLOCKS", "COURSES", "CREDITS")
		for _, cur := range catalog.List() {
			marker := ""
			if cur.ID == cfg.Curriculum {
				marker = " *"
			}
			t.Row(cur.ID+marker, cur.Name, cur.University, cur.Version,
				fmt.Sprint(len(cur.Blocks)), fmt.Sprint(len(cur.Courses())), fmt.Sprint(cur.TotalCredits()))
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var curriculaValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check curriculum documents for schema and structural problems",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			cur, err := curriculum.LoadFile(path)
			if err == nil {
				err = cur.Validate()
			}
			if err != nil {
				failed++
				fmt.Fprintf(out, "✗ %s\n  %v\n", path, err)
				continue
			}
			fmt.Fprintf(out, "✓ %s (%s, %d courses, %d credits)\n",
				path, cur.ID, len(cur.Courses()), cur.TotalCredits())
		}
		if failed > 0 {
			return errors.New(plural(failed, "invalid document"))
		}
		return nil
	},
}

func init() {
	curriculaCmd.AddCommand(curriculaListCmd)
	curriculaCmd.AddCommand(curriculaValidateCmd)
}
