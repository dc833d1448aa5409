package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Print the stage build order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			waves, _ := cmd.Flags().GetBool("waves")
			if waves {
				plan, err := c.app.Waves(configPath(cmd))
				if err != nil {
					return err
				}
				for i, wave := range plan {
					_, _ = fmt.Fprintf(out, "%d: %s\n", i+1, strings.Join(wave, " "))
				}
				return nil
			}

			order, err := c.app.BuildOrder(configPath(cmd))
			if err != nil {
				return err
			}
			for _, stage := range order {
				_, _ = fmt.Fprintln(out, stage)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("waves", "w", false, "Group stages into parallel waves")
	return cmd
}
