// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every command.
type rootFlagValues struct {
	configPath string
	verbose    bool
	input      string
}

// NewRootCommand builds the routec command tree. Running routec without a
// subcommand shows the route summary.
func NewRootCommand(app *App) *cobra.Command {
	rootFlags := &rootFlagValues{}
	showFlags := &showFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "routec",
		Short: "Compile hierarchical route files into router configuration",
		Long: TitleStyle.Render("routec") + SubtitleStyle.Render(" - Compile hierarchical route files into router configuration") + `

routec reads a tree of routes from YAML, TOML, JSON or CUE files, resolves
inherited paths, controllers and HTTP methods, and writes the flat list of
route definitions a router loads at startup.

` + SubtitleStyle.Render("Examples:") + `
  routec -i routes.yaml                 Show the route summary
  routec show -p redirect --style tree  Show extra properties as a tree
  routec compile -o routes.json         Write compiled routes to a file
  routec compile --watch --show         Recompile whenever a route file changes
  routec config init                    Create a default configuration file`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app, rootFlags, showFlags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/routec/config.cue)")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.input, "input", "i", "", "route file to read (default from config 'input')")
	bindShowFlags(rootCmd, showFlags)

	rootCmd.AddCommand(newShowCommand(app, rootFlags))
	rootCmd.AddCommand(newCompileCommand(app, rootFlags))
	rootCmd.AddCommand(newConfigCommand(app, rootFlags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the command's exit code.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(ExitFailure)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}
