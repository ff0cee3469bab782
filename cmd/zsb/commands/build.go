package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zsb/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build BOARD_DIR BOARD SAMPLE",
		Short: "Build one sample for one board and record its result",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, _ := cmd.Flags().GetInt("job")
			jobs, _ := cmd.Flags().GetInt("jobs")
			verbose, _ := cmd.Flags().GetBool("verbose")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				ConfigPath: configPath(cmd),
				BoardDir:   args[0],
				Board:      args[1],
				Sample:     args[2],
				Job:        job,
				Jobs:       jobs,
				Verbose:    verbose,
			})
		},
	}
	cmd.Flags().IntP("job", "j", 0, "1-based position of this target in the matrix")
	cmd.Flags().IntP("jobs", "J", 0, "Number of targets in the matrix")
	cmd.Flags().BoolP("verbose", "v", false, "Mirror toolchain output to stdout")
	return cmd
}
