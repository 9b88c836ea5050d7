// SPDX-License-Identifier: MPL-2.0

package routefile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Supported route file formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCUE  Format = "cue"
	FormatJSON Format = "json"
)

// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid route file format")

type (
	// Format identifies the syntax of a route file.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	// It wraps ErrInvalidFormat for errors.Is() compatibility.
	InvalidFormatError struct {
		Value Format
	}
)

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid route file format %q (valid: yaml, toml, cue, json)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error {
	return ErrInvalidFormat
}

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid returns whether the Format is one of the supported formats,
// and a list of validation errors if it is not.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatYAML, FormatTOML, FormatCUE, FormatJSON:
		return true, nil
	default:
		return false, []error{&InvalidFormatError{Value: f}}
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "yml" {
		return FormatYAML, nil
	}
	f := Format(ext)
	if isValid, errs := f.IsValid(); !isValid {
		return "", fmt.Errorf("%s: %w", path, errs[0])
	}
	return f, nil
}
