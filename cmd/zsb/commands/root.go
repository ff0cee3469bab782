// Package commands implements the CLI commands for zsb.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/zsb/internal/app"
	"go.trai.ch/zsb/internal/build"
)

// DefaultConfigPath is the catalog read when --config is not given.
const DefaultConfigPath = "config.yaml"

// CLI represents the command line interface for zsb.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Run(ctx context.Context, opts app.RunOptions) error
	Matrix(ctx context.Context, opts app.MatrixOptions) error
	Summary(ctx context.Context, opts app.SummaryOptions) error
	Diff(ctx context.Context, opts app.DiffOptions) error
	Catalog(ctx context.Context, configPath string) error
	Runners(ctx context.Context) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	SetLogJSON(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "zsb",
		Short:         "Build every Zephyr sample on every board and report the results",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", DefaultConfigPath, "Path to the build catalog")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write log records as JSON")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		logJSON, _ := cmd.Flags().GetBool("log-json")
		a.SetLogJSON(logJSON)
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newMatrixCmd())
	rootCmd.AddCommand(c.newSummaryCmd())
	rootCmd.AddCommand(c.newDiffCmd())
	rootCmd.AddCommand(c.newCatalogCmd())
	rootCmd.AddCommand(c.newRunnersCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
