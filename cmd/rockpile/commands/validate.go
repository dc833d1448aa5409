package commands

import (
	"fmt"

	"github.com/ronmichel/rockpile/internal/core/domain"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the topology document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			issues, err := c.app.Validate(configPath(cmd))
			if err != nil {
				return err
			}
			if len(issues) > 0 {
				for _, issue := range issues {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), issue)
				}
				return zerr.With(domain.ErrInvalidTopology, "issues", len(issues))
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "topology is valid")
			return nil
		},
	}
}
