package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zsb/internal/app"
)

func (c *CLI) newMatrixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print every board and sample pair as a build listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shard, _ := cmd.Flags().GetString("shard")
			return c.app.Matrix(cmd.Context(), app.MatrixOptions{
				ConfigPath: configPath(cmd),
				Shard:      shard,
			})
		},
	}
	cmd.Flags().String("shard", "", "Only list shard i of N (i/N)")
	return cmd
}
