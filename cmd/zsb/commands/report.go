package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zsb/internal/app"
)

func (c *CLI) newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate the recorded results into reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			matrixPath, _ := cmd.Flags().GetString("matrix")
			return c.app.Summary(cmd.Context(), app.SummaryOptions{
				ConfigPath: configPath(cmd),
				MatrixPath: matrixPath,
			})
		},
	}
	cmd.Flags().String("matrix", "", "Matrix listing the run was built from")
	return cmd
}

func (c *CLI) newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Compare the local results with the latest published ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Diff(cmd.Context(), app.DiffOptions{ConfigPath: configPath(cmd)})
		},
	}
}

func (c *CLI) newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the loaded catalog as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Catalog(cmd.Context(), configPath(cmd))
		},
	}
}

func (c *CLI) newRunnersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runners",
		Short: "Print the CI runner indices as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Runners(cmd.Context())
		},
	}
}
