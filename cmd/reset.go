package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all progress for the current curriculum",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		cur, err := ws.curriculum()
		if err != nil {
			return err
		}

		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "Erase all progress for %s? [y/N] ", cur.Name)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		ws.svc.Reset(cmd.Context(), cur)
		fmt.Fprintf(cmd.OutOrStdout(), "Progress for %s erased.\n", cur.ID)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
