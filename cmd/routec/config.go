// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/routec/routec/internal/config"
	"github.com/routec/routec/internal/issue"
)

// newConfigCommand creates the `routec config` command tree.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage routec configuration",
		Long: `Manage routec configuration.

Configuration is stored in:
  - Linux: ~/.config/routec/config.cue
  - macOS: ~/Library/Application Support/routec/config.cue
  - Windows: %APPDATA%\routec\config.cue

A config.cue in the current directory is used when the user file is absent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, rootFlags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd.Context(), app, rootFlags)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

// loadConfig loads the effective configuration and the file it came from.
func loadConfig(ctx context.Context, app *App, rootFlags *rootFlagValues) (*config.Config, string, error) {
	cfg, source, err := app.Config.LoadWithPath(ctx, config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err != nil {
		return nil, "", app.report(err, issue.ConfigLoadFailedId, config.ColorSchemeAuto, rootFlags.verbose)
	}
	return cfg, source, nil
}

func showConfig(ctx context.Context, app *App, rootFlags *rootFlagValues) error {
	cfg, source, err := loadConfig(ctx, app, rootFlags)
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	line := func(indent, key string, value any) {
		fmt.Fprintf(app.stdout, "%s%s: %s\n", indent, keyStyle.Render(key), valueStyle.Render(fmt.Sprint(value)))
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	if source == "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), source)
	}
	fmt.Fprintln(app.stdout)

	line("", "input", cfg.Input)

	fmt.Fprintf(app.stdout, "\n%s:\n", keyStyle.Render("compile"))
	line("  ", "pretty", cfg.Compile.Pretty)
	line("  ", "method_prefix", cfg.Compile.MethodPrefix)

	fmt.Fprintf(app.stdout, "\n%s:\n", keyStyle.Render("display"))
	line("  ", "indent_step", cfg.Display.IndentStep)
	line("  ", "property_offset", cfg.Display.PropertyOffset)
	line("  ", "properties", strings.Join(cfg.Display.Properties, ", "))
	line("  ", "virtual_template", cfg.Display.VirtualTemplate)
	line("  ", "no_path", cfg.Display.NoPath)
	line("  ", "empty_path", cfg.Display.EmptyPath)
	line("  ", "style", cfg.Display.Style)

	fmt.Fprintf(app.stdout, "\n%s:\n", keyStyle.Render("ui"))
	line("  ", "verbose", cfg.UI.Verbose)
	line("  ", "color_scheme", cfg.UI.ColorScheme)

	return nil
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	return nil
}
