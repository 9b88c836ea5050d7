// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/routec/routec/internal/issue"
	"github.com/routec/routec/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "routec"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variable overrides (ROUTEC_DISPLAY_STYLE).
	EnvPrefix = "ROUTEC"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the routec configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// newViper returns a Viper instance carrying the defaults and environment
// overrides.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("input", defaults.Input)
	v.SetDefault("compile.pretty", defaults.Compile.Pretty)
	v.SetDefault("compile.method_prefix", defaults.Compile.MethodPrefix)
	v.SetDefault("display.indent_step", defaults.Display.IndentStep)
	v.SetDefault("display.property_offset", defaults.Display.PropertyOffset)
	v.SetDefault("display.properties", defaults.Display.Properties)
	v.SetDefault("display.virtual_template", defaults.Display.VirtualTemplate)
	v.SetDefault("display.no_path", defaults.Display.NoPath)
	v.SetDefault("display.empty_path", defaults.Display.EmptyPath)
	v.SetDefault("display.style", defaults.Display.Style)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()
	resolvedPath := ""

	// If a custom config file path is set via --config flag, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'routec config show' to see default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", loadError(opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		localCuePath := ConfigFileName + "." + ConfigFileExt
		switch {
		case fileExists(cuePath):
			resolvedPath = cuePath
		case fileExists(localCuePath):
			resolvedPath = localCuePath
		}
		// If no config file found, use defaults (no error)
		if resolvedPath != "" {
			if err := loadCUEIntoViper(v, resolvedPath); err != nil {
				return nil, "", loadError(resolvedPath, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema, so typed validation runs
	// on the merged result.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("virtual_template must contain {path}").
			WithSuggestion("Check " + EnvPrefix + "_* environment variables for typos").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("Run 'routec config dump' to see a valid configuration file").
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper. Config fields are optional, so values
// need not be concrete.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecodeString[map[string]any](
		configSchema,
		data,
		"#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// ConfigFilePath returns the path of the user config file, whether or not it exists.
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig creates a default config file if it doesn't exist.
// It returns the config file path and whether a file was written.
func CreateDefaultConfig() (string, bool, error) {
	if err := EnsureConfigDir(); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", false, err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// Save writes the current configuration to file
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath, err := ConfigFilePath()
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// routec configuration file\n\n")

	fmt.Fprintf(&sb, "input: %q\n", cfg.Input)

	sb.WriteString("\ncompile: {\n")
	fmt.Fprintf(&sb, "\tpretty: %v\n", cfg.Compile.Pretty)
	fmt.Fprintf(&sb, "\tmethod_prefix: %q\n", cfg.Compile.MethodPrefix)
	sb.WriteString("}\n")

	sb.WriteString("\ndisplay: {\n")
	fmt.Fprintf(&sb, "\tindent_step: %d\n", cfg.Display.IndentStep)
	fmt.Fprintf(&sb, "\tproperty_offset: %d\n", cfg.Display.PropertyOffset)
	quoted := make([]string, 0, len(cfg.Display.Properties))
	for _, p := range cfg.Display.Properties {
		quoted = append(quoted, fmt.Sprintf("%q", p))
	}
	fmt.Fprintf(&sb, "\tproperties: [%s]\n", strings.Join(quoted, ", "))
	fmt.Fprintf(&sb, "\tvirtual_template: %q\n", cfg.Display.VirtualTemplate)
	fmt.Fprintf(&sb, "\tno_path: %q\n", cfg.Display.NoPath)
	fmt.Fprintf(&sb, "\tempty_path: %q\n", cfg.Display.EmptyPath)
	fmt.Fprintf(&sb, "\tstyle: %q\n", cfg.Display.Style)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	return sb.String()
}
