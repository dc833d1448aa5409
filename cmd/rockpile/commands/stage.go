package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (c *CLI) newStageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage <name>",
		Short: "Report a stage's artifact flow and submodules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.Stage(configPath(cmd), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			inbound, _ := cmd.Flags().GetBool("inbound")
			produced, _ := cmd.Flags().GetBool("produced")
			submodules, _ := cmd.Flags().GetBool("submodules")
			all := !inbound && !produced && !submodules

			if all || inbound {
				printSection(out, "inbound", report.Inbound, all)
			}
			if all || produced {
				printSection(out, "produced", report.Produced, all)
			}
			if all || submodules {
				printSection(out, "submodules", report.Submodules, all)
			}
			return nil
		},
	}
	cmd.Flags().Bool("inbound", false, "Print only the inbound artifacts")
	cmd.Flags().Bool("produced", false, "Print only the produced artifacts")
	cmd.Flags().Bool("submodules", false, "Print only the required submodules")
	return cmd
}

// printSection prints one list. With headers (the default view) every entry
// is indented under its section name; single-section views print bare names
// so the output can be piped into other tooling.
func printSection(out io.Writer, name string, entries []string, withHeader bool) {
	if withHeader {
		_, _ = fmt.Fprintf(out, "%s:\n", name)
		for _, entry := range entries {
			_, _ = fmt.Fprintf(out, "  %s\n", entry)
		}
		return
	}
	for _, entry := range entries {
		_, _ = fmt.Fprintln(out, entry)
	}
}
