// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/routec/routec/internal/compiler"
	"github.com/routec/routec/internal/issue"
	"github.com/routec/routec/internal/summary"
	"github.com/routec/routec/pkg/routefile"
)

// compileFlagValues holds the flags of `routec compile`.
type compileFlagValues struct {
	output  string
	pretty  bool
	show    bool
	watch   bool
	summary summaryFlagValues
}

func newCompileCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &compileFlagValues{}
	compileCmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the route tree into router configuration JSON",
		Long: `Compile the route tree into router configuration JSON.

The output is a JSON array with one [definition, isDefault, shouldRegister]
entry per non-virtual route, in tree order. Without --output the JSON is
written to standard output.

With --show the route summary is printed too; -p, -R and --style shape it
as they do for 'routec show'. The summary goes to standard error when the
JSON is written to standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, app, rootFlags, flags)
		},
	}

	compileCmd.Flags().StringVarP(&flags.output, "output", "o", "", "file to write the compiled routes to")
	compileCmd.Flags().BoolVar(&flags.pretty, "pretty", false, "indent the JSON output (default from config)")
	compileCmd.Flags().BoolVar(&flags.show, "show", false, "also print the route summary")
	compileCmd.Flags().BoolVar(&flags.watch, "watch", false, "recompile whenever a route file changes")
	bindSummaryFlags(compileCmd, &flags.summary)

	return compileCmd
}

func runCompile(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *compileFlagValues) error {
	s, err := app.newSession(cmd.Context(), rootFlags)
	if err != nil {
		return err
	}

	pretty := s.cfg.Compile.Pretty
	if cmd.Flags().Changed("pretty") {
		pretty = flags.pretty
	}

	var formatter *summary.Formatter
	if flags.show {
		opts, err := summaryOptions(s.cfg.Display, &flags.summary)
		if err != nil {
			return err
		}
		formatter = summary.New(opts)
	}
	c := compiler.New(compiler.WithLogger(s.logger))

	compile := func(ctx context.Context) (*routefile.Result, error) {
		res, err := app.loadRoutes(ctx, s)
		if err != nil {
			return nil, err
		}
		entries := c.Compile(res.Tree)
		data, err := compiler.Encode(entries, pretty)
		if err != nil {
			return nil, fmt.Errorf("failed to encode compiled routes: %w", err)
		}

		if flags.output == "" {
			if formatter != nil {
				// Keep stdout parseable.
				fmt.Fprint(app.stderr, formatter.Format(res.Tree.Routes, 0))
			}
			fmt.Fprintf(app.stdout, "%s\n", data)
			return res, nil
		}

		if err := os.WriteFile(flags.output, data, 0o644); err != nil {
			wrapped := issue.NewErrorContext().
				WithOperation("write compiled routes").
				WithResource(flags.output).
				WithSuggestion("Check that the output directory exists and is writable").
				Wrap(err).
				BuildError()
			return nil, app.report(wrapped, issue.OutputWriteFailedId, s.cfg.UI.ColorScheme, s.verbose)
		}
		if formatter != nil {
			fmt.Fprint(app.stdout, formatter.Format(res.Tree.Routes, 0))
		}
		fmt.Fprintf(app.stderr, "%s Compiled %d routes to %s\n",
			SuccessStyle.Render("✓"), len(entries), CmdStyle.Render(flags.output))
		return res, nil
	}

	if flags.watch {
		return app.watchRoutes(cmd.Context(), s, compile)
	}
	_, err = compile(cmd.Context())
	return err
}
