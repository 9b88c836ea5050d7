// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
	"github.com/hashicorp/go-multierror"
)

// ValidationError is a single schema violation at a known location.
type ValidationError struct {
	// FilePath is the file being validated.
	FilePath string

	// CUEPath is the JSON path to the invalid value (e.g., "routes[0].http").
	CUEPath string

	// Message is the validation error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.CUEPath != "" {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.CUEPath, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// FormatError converts a CUE error into *ValidationError values with JSON path
// prefixes.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - routes.cue: routes[0].routes[2].http: conflicting values
//   - config.cue: display.style: conflicting values "plain" and "fancy"
//
// A single violation is returned as *ValidationError. Several violations are
// aggregated into a *multierror.Error whose message lists one per line.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := cueerrors.Errors(err)
	if len(cueErrors) == 0 {
		// Not a CUE error
		return fmt.Errorf("%s: %w", filePath, err)
	}

	var result *multierror.Error
	for _, e := range cueErrors {
		pathStr := formatPath(cueerrors.Path(e))
		msg := e.Error()

		// CUE sometimes includes the path in the message itself
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		result = multierror.Append(result, &ValidationError{
			FilePath: filePath,
			CUEPath:  pathStr,
			Message:  msg,
		})
	}

	if len(result.Errors) == 1 {
		return result.Errors[0]
	}
	result.ErrorFormat = listFormat(filePath)
	return result
}

// listFormat renders aggregated violations under a single file header.
func listFormat(filePath string) multierror.ErrorFormatFunc {
	return func(errs []error) string {
		lines := make([]string, 0, len(errs))
		for _, err := range errs {
			var ve *ValidationError
			if errors.As(err, &ve) && ve.CUEPath != "" {
				lines = append(lines, ve.CUEPath+": "+ve.Message)
				continue
			}
			if errors.As(err, &ve) {
				lines = append(lines, ve.Message)
				continue
			}
			lines = append(lines, err.Error())
		}
		return fmt.Sprintf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
	}
}

// formatPath converts a CUE error path to JSON-path notation.
// CUE reports paths as flat string slices (e.g., ["routes", "0", "path"]);
// purely numeric elements are list indices, giving "routes[0].path".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}

// CheckFileSize verifies that data does not exceed the specified maximum size.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
