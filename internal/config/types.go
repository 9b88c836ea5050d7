// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DisplayStylePlain renders the route summary as indented text.
	// Defined locally to avoid coupling config to internal/summary.
	DisplayStylePlain DisplayStyle = "plain"
	// DisplayStyleTree renders the route summary as a box-drawing tree.
	DisplayStyleTree DisplayStyle = "tree"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// pathPlaceholder must appear in every virtual route template.
	pathPlaceholder = "{path}"
)

var (
	// ErrInvalidDisplayStyle is returned when a DisplayStyle value is not recognized.
	ErrInvalidDisplayStyle = errors.New("invalid display style")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidInputFilePath is returned when an InputFilePath value is empty or whitespace-only.
	ErrInvalidInputFilePath = errors.New("invalid input file path")
	// ErrInvalidVirtualTemplate is returned when a VirtualTemplate lacks the {path} placeholder.
	ErrInvalidVirtualTemplate = errors.New("invalid virtual route template")
	// ErrInvalidIndent is returned when an indentation width is negative.
	ErrInvalidIndent = errors.New("invalid indentation")
	// ErrInvalidDisplayConfig is the sentinel error wrapped by InvalidDisplayConfigError.
	ErrInvalidDisplayConfig = errors.New("invalid display config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// DisplayStyle selects the layout of the route summary.
	DisplayStyle string

	// InvalidDisplayStyleError is returned when a DisplayStyle value is not recognized.
	// It wraps ErrInvalidDisplayStyle for errors.Is() compatibility.
	InvalidDisplayStyleError struct {
		Value DisplayStyle
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InputFilePath is the route file read when no input is given on the
	// command line. A valid path must be non-empty and not whitespace-only.
	InputFilePath string

	// InvalidInputFilePathError is returned when an InputFilePath value is
	// empty or whitespace-only. It wraps ErrInvalidInputFilePath for errors.Is().
	InvalidInputFilePathError struct {
		Value InputFilePath
	}

	// VirtualTemplate formats the path of virtual routes in the summary.
	// Every {path} placeholder is replaced by the display path.
	VirtualTemplate string

	// InvalidVirtualTemplateError is returned when a VirtualTemplate has no
	// {path} placeholder. It wraps ErrInvalidVirtualTemplate for errors.Is().
	InvalidVirtualTemplateError struct {
		Value VirtualTemplate
	}

	// InvalidIndentError is returned when an indentation setting is negative.
	// It wraps ErrInvalidIndent for errors.Is() compatibility.
	InvalidIndentError struct {
		Field string
		Value int
	}

	// InvalidDisplayConfigError is returned when a DisplayConfig has invalid fields.
	// It wraps ErrInvalidDisplayConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidDisplayConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Input is the default route file
		Input InputFilePath `json:"input" mapstructure:"input"`
		// Compile configures compiled output
		Compile CompileConfig `json:"compile" mapstructure:"compile"`
		// Display configures the route summary
		Display DisplayConfig `json:"display" mapstructure:"display"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// CompileConfig configures the compile command.
	CompileConfig struct {
		// Pretty indents the JSON output
		Pretty bool `json:"pretty" mapstructure:"pretty"`
		// MethodPrefix is used when the route file declares none
		MethodPrefix string `json:"method_prefix" mapstructure:"method_prefix"`
	}

	// DisplayConfig configures the route summary.
	DisplayConfig struct {
		// IndentStep is added per nesting level
		IndentStep int `json:"indent_step" mapstructure:"indent_step"`
		// PropertyOffset indents property lines under their route
		PropertyOffset int `json:"property_offset" mapstructure:"property_offset"`
		// Properties lists the attributes shown under each route
		Properties []string `json:"properties" mapstructure:"properties"`
		// VirtualTemplate wraps the path of virtual routes
		VirtualTemplate VirtualTemplate `json:"virtual_template" mapstructure:"virtual_template"`
		// NoPath marks routes without a path
		NoPath string `json:"no_path" mapstructure:"no_path"`
		// EmptyPath marks routes with a blank path
		EmptyPath string `json:"empty_path" mapstructure:"empty_path"`
		// Style selects plain or tree layout
		Style DisplayStyle `json:"style" mapstructure:"style"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// IsValid returns whether the DisplayConfig has valid fields.
func (c DisplayConfig) IsValid() (bool, []error) {
	var errs []error
	if c.IndentStep < 0 {
		errs = append(errs, &InvalidIndentError{Field: "indent_step", Value: c.IndentStep})
	}
	if c.PropertyOffset < 0 {
		errs = append(errs, &InvalidIndentError{Field: "property_offset", Value: c.PropertyOffset})
	}
	if valid, fieldErrs := c.VirtualTemplate.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Style.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidDisplayConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDisplayConfigError.
func (e *InvalidDisplayConfigError) Error() string {
	return fmt.Sprintf("invalid display config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidDisplayConfig for errors.Is() compatibility.
func (e *InvalidDisplayConfigError) Unwrap() error { return ErrInvalidDisplayConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Input.IsValid(), Display.IsValid() and UI.IsValid().
// CompileConfig holds a bool and a free-form prefix and needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Input.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Display.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the InputFilePath.
func (p InputFilePath) String() string { return string(p) }

// IsValid returns whether the InputFilePath is non-empty and not whitespace-only,
// and a list of validation errors if it is not.
func (p InputFilePath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidInputFilePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidInputFilePathError.
func (e *InvalidInputFilePathError) Error() string {
	return fmt.Sprintf("invalid input file path %q: must not be empty", e.Value)
}

// Unwrap returns ErrInvalidInputFilePath for errors.Is() compatibility.
func (e *InvalidInputFilePathError) Unwrap() error { return ErrInvalidInputFilePath }

// String returns the string representation of the VirtualTemplate.
func (t VirtualTemplate) String() string { return string(t) }

// IsValid returns whether the VirtualTemplate contains the {path} placeholder,
// and a list of validation errors if it does not.
func (t VirtualTemplate) IsValid() (bool, []error) {
	if !strings.Contains(string(t), pathPlaceholder) {
		return false, []error{&InvalidVirtualTemplateError{Value: t}}
	}
	return true, nil
}

// Error implements the error interface for InvalidVirtualTemplateError.
func (e *InvalidVirtualTemplateError) Error() string {
	return fmt.Sprintf("invalid virtual route template %q: must contain %s", e.Value, pathPlaceholder)
}

// Unwrap returns ErrInvalidVirtualTemplate for errors.Is() compatibility.
func (e *InvalidVirtualTemplateError) Unwrap() error { return ErrInvalidVirtualTemplate }

// Error implements the error interface for InvalidIndentError.
func (e *InvalidIndentError) Error() string {
	return fmt.Sprintf("invalid %s %d: must not be negative", e.Field, e.Value)
}

// Unwrap returns ErrInvalidIndent for errors.Is() compatibility.
func (e *InvalidIndentError) Unwrap() error { return ErrInvalidIndent }

// Error implements the error interface for InvalidDisplayStyleError.
func (e *InvalidDisplayStyleError) Error() string {
	return fmt.Sprintf("invalid display style %q (valid: plain, tree)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidDisplayStyleError) Unwrap() error {
	return ErrInvalidDisplayStyle
}

// String returns the string representation of the DisplayStyle.
func (s DisplayStyle) String() string { return string(s) }

// IsValid returns whether the DisplayStyle is one of the defined styles,
// and a list of validation errors if it is not.
func (s DisplayStyle) IsValid() (bool, []error) {
	switch s {
	case DisplayStylePlain, DisplayStyleTree:
		return true, nil
	default:
		return false, []error{&InvalidDisplayStyleError{Value: s}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

func joinErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Input: "src/routes/index.yaml",
		Compile: CompileConfig{
			Pretty:       false,
			MethodPrefix: "handle_",
		},
		Display: DisplayConfig{
			IndentStep:      2,
			PropertyOffset:  1,
			Properties:      []string{"name", "controller", "method", "http"},
			VirtualTemplate: "«" + pathPlaceholder + "»",
			NoPath:          "---",
			EmptyPath:       "-",
			Style:           DisplayStylePlain,
		},
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}
