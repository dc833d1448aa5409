package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Export the dependency graph as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			graph, err := c.app.Graph(configPath(cmd))
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(graph, "", "  ")
			if err != nil {
				return zerr.Wrap(err, "failed to encode dependency graph")
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
}
