// SPDX-License-Identifier: MPL-2.0

// Package routetree defines the in-memory route definition tree consumed by the
// route compiler and the summary formatter.
//
// A Tree is the top-level route collection produced by a route file loader. It
// is not itself a route: it only carries the method prefix naming convention and
// the top-level routes. Each Node carries optional attributes with explicit
// presence. Absent, empty and the "inherit parent path" sentinel are distinct
// states and are never collapsed through truthiness checks.
//
// Trees are read-only once built. Consumers must not mutate nodes they did not
// create.
package routetree
