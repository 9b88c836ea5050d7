// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/routec/routec/internal/config"
	"github.com/routec/routec/internal/issue"
	"github.com/routec/routec/pkg/routefile"
)

type (
	// App wires CLI services and shared dependencies. All cobra handlers
	// receive an App and load configuration and routes through it.
	App struct {
		Config ConfigProvider
		Routes RouteLoader
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Routes RouteLoader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		LoadWithPath(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// RouteLoader reads a route file and its includes into a route tree.
	RouteLoader interface {
		Load(ctx context.Context, path string, opts ...routefile.Option) (*routefile.Result, error)
	}

	// RouteLoaderFunc adapts a function to RouteLoader.
	RouteLoaderFunc func(ctx context.Context, path string, opts ...routefile.Option) (*routefile.Result, error)

	// session holds the settings resolved for one command invocation.
	session struct {
		cfg        *config.Config
		configPath string
		input      string
		verbose    bool
		logger     *slog.Logger
	}
)

// Load calls f.
func (f RouteLoaderFunc) Load(ctx context.Context, path string, opts ...routefile.Option) (*routefile.Result, error) {
	return f(ctx, path, opts...)
}

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Routes == nil {
		deps.Routes = RouteLoaderFunc(routefile.Load)
	}

	return &App{
		Config: deps.Config,
		Routes: deps.Routes,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

// newSession loads configuration and resolves the flags shared by every
// command. Flags win over configuration.
func (a *App) newSession(ctx context.Context, rootFlags *rootFlagValues) (*session, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err != nil {
		return nil, a.report(err, issue.ConfigLoadFailedId, config.ColorSchemeAuto, rootFlags.verbose)
	}

	s := &session{
		cfg:        cfg,
		configPath: rootFlags.configPath,
		input:      rootFlags.input,
		verbose:    rootFlags.verbose || cfg.UI.Verbose,
	}
	if s.input == "" {
		s.input = cfg.Input.String()
	}
	s.logger = newLogger(a.stderr, s.verbose)
	return s, nil
}

// loadRoutes reads the session's input file.
func (a *App) loadRoutes(ctx context.Context, s *session) (*routefile.Result, error) {
	if s.input == "" {
		err := issue.NewErrorContext().
			WithOperation("load route file").
			WithSuggestion("Pass a route file with --input").
			WithSuggestion("Set 'input' in the configuration file").
			Wrap(errNoInput).
			BuildError()
		return nil, a.report(err, issue.RouteFileNotFoundId, s.cfg.UI.ColorScheme, s.verbose)
	}

	res, err := a.Routes.Load(ctx, s.input,
		routefile.WithMethodPrefix(s.cfg.Compile.MethodPrefix),
		routefile.WithLogger(s.logger),
	)
	if err != nil {
		wrapped := issue.NewErrorContext().
			WithOperation("load route file").
			WithResource(s.input).
			WithSuggestion("Run with --verbose to see the full error chain").
			Wrap(err).
			BuildError()
		return nil, a.report(wrapped, routeIssueID(err), s.cfg.UI.ColorScheme, s.verbose)
	}
	s.logger.Debug("route tree loaded", "input", s.input, "files", len(res.Files))
	return res, nil
}

// report renders err and its catalog entry to stderr and returns the error
// the command exits with. Verbose output includes the error chain.
func (a *App) report(err error, issueID issue.Id, scheme config.ColorScheme, verbose bool) error {
	svcErr := newServiceError(err, issueID,
		fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose)))
	renderServiceError(a.stderr, svcErr, glamourStyle(scheme))
	return &ExitError{Code: ExitFailure, Err: svcErr}
}
