// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. The issue catalog holds Markdown guidance for the failure
// classes routec reports (missing route files, parse errors, include cycles,
// configuration and output problems), rendered for the terminal with glamour.
package issue
