package commands

import (
	"runtime"

	"github.com/spf13/cobra"
	"go.trai.ch/zsb/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the whole matrix, one subprocess per target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			failFast, _ := cmd.Flags().GetBool("fail-fast")
			shard, _ := cmd.Flags().GetString("shard")
			outputMode, _ := cmd.Flags().GetString("output")
			ci, _ := cmd.Flags().GetBool("ci")

			if ci {
				outputMode = "linear"
			}

			return c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath: configPath(cmd),
				Jobs:       jobs,
				FailFast:   failFast,
				Shard:      shard,
				OutputMode: outputMode,
			})
		},
	}
	cmd.Flags().Int("jobs", runtime.NumCPU(), "Number of targets built concurrently")
	cmd.Flags().Bool("fail-fast", false, "Cancel the remaining targets after the first failure")
	cmd.Flags().String("shard", "", "Only build shard i of N (i/N)")
	cmd.Flags().StringP("output", "o", "auto", "Output mode: auto, linear or quiet")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output=linear)")
	return cmd
}
