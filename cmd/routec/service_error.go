// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/routec/routec/internal/config"
	"github.com/routec/routec/internal/dag"
	"github.com/routec/routec/internal/issue"
	"github.com/routec/routec/pkg/routefile"
)

// errNoInput is returned when neither --input nor the configuration names a
// route file.
var errNoInput = errors.New("no route file given")

// ServiceError is an error that carries optional rendering information for
// the CLI layer. Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError prints any styled message first, then the issue help
// section rendered with the given glamour style.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, style string) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(style)
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// An ActionableError lists its suggestions; in verbose mode it also shows the
// full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// routeIssueID picks the catalog entry explaining a route loading failure.
// Zero means no entry applies.
func routeIssueID(err error) issue.Id {
	switch {
	case errors.Is(err, dag.ErrCycle):
		return issue.IncludeCycleId
	case errors.Is(err, routefile.ErrInvalidFormat):
		return issue.UnsupportedFormatId
	case errors.Is(err, routefile.ErrParse):
		return issue.RouteFileParseErrorId
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, errNoInput):
		return issue.RouteFileNotFoundId
	default:
		return 0
	}
}

// glamourStyle maps the configured color scheme to a glamour standard style.
func glamourStyle(scheme config.ColorScheme) string {
	if scheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}
