package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the build-system include and stage manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			stageDepsDir, _ := cmd.Flags().GetString("stage-deps-dir")
			return c.app.Generate(cmd.Context(), configPath(cmd), output, stageDepsDir)
		},
	}
	cmd.Flags().StringP("output", "o", "cmake/topology_generated.cmake", "Path of the generated include")
	cmd.Flags().String("stage-deps-dir", "", "Directory for per-stage dependency manifests (skipped when empty)")
	return cmd
}
