package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zsb/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the work tree and recorded artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			work, _ := cmd.Flags().GetBool("work")
			output, _ := cmd.Flags().GetBool("output")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{ConfigPath: configPath(cmd)}

			switch {
			case all:
				opts.Work = true
				opts.Output = true
			case work || output:
				opts.Work = work
				opts.Output = output
			default:
				opts.Work = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("work", "w", false, "Remove the .zsb work tree")
	cmd.Flags().BoolP("output", "o", false, "Remove the artifact tree")
	cmd.Flags().BoolP("all", "a", false, "Remove both the work tree and the artifact tree")

	return cmd
}
