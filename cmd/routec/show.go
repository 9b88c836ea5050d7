// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/routec/routec/internal/config"
	"github.com/routec/routec/internal/summary"
	"github.com/routec/routec/pkg/routefile"
)

type (
	// summaryFlagValues holds the flags shaping a route summary.
	summaryFlagValues struct {
		properties []string
		replace    bool
		style      string
	}

	// showFlagValues holds the flags of `routec show`.
	showFlagValues struct {
		summary summaryFlagValues
		watch   bool
	}
)

func newShowCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &showFlagValues{}
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the route tree as a readable summary",
		Long: `Show the route tree as a readable summary.

Each route is listed under its parent with the properties configured in
'display.properties'. Use -p to add properties and -R to show only the
properties given with -p.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app, rootFlags, flags)
		},
	}
	bindShowFlags(showCmd, flags)
	return showCmd
}

func bindShowFlags(cmd *cobra.Command, flags *showFlagValues) {
	bindSummaryFlags(cmd, &flags.summary)
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "show again whenever a route file changes")
}

func bindSummaryFlags(cmd *cobra.Command, flags *summaryFlagValues) {
	cmd.Flags().StringArrayVarP(&flags.properties, "property", "p", nil, "additional property to display (repeatable)")
	cmd.Flags().BoolVarP(&flags.replace, "replace", "R", false, "display only the properties given with -p")
	cmd.Flags().StringVar(&flags.style, "style", "", "summary layout: plain or tree (default from config)")
}

func runShow(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *showFlagValues) error {
	s, err := app.newSession(cmd.Context(), rootFlags)
	if err != nil {
		return err
	}
	opts, err := summaryOptions(s.cfg.Display, &flags.summary)
	if err != nil {
		return err
	}
	formatter := summary.New(opts)

	show := func(ctx context.Context) (*routefile.Result, error) {
		res, err := app.loadRoutes(ctx, s)
		if err != nil {
			return nil, err
		}
		fmt.Fprint(app.stdout, formatter.Format(res.Tree.Routes, 0))
		return res, nil
	}

	if flags.watch {
		return app.watchRoutes(cmd.Context(), s, show)
	}
	_, err = show(cmd.Context())
	return err
}

// summaryOptions builds the formatter settings from configuration and flags.
func summaryOptions(display config.DisplayConfig, flags *summaryFlagValues) (summary.Options, error) {
	style := summary.Style(display.Style)
	if flags.style != "" {
		style = summary.Style(flags.style)
	}
	if style == "" {
		style = summary.StylePlain
	}
	if isValid, errs := style.IsValid(); !isValid {
		return summary.Options{}, errs[0]
	}

	properties := display.Properties
	if len(properties) == 0 {
		properties = summary.DefaultProperties()
	}

	return summary.Options{
		IndentStep:      display.IndentStep,
		PropertyOffset:  display.PropertyOffset,
		Properties:      summary.MergeProperties(properties, flags.properties, flags.replace),
		VirtualTemplate: display.VirtualTemplate.String(),
		NoPath:          display.NoPath,
		EmptyPath:       display.EmptyPath,
		Style:           style,
	}, nil
}
