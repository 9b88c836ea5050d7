// SPDX-License-Identifier: MPL-2.0

// Package compiler flattens a route tree into the ordered list of entries a
// router configuration loader consumes.
//
// The walk is pre-order and sequential. Every route starts from a private copy
// of the definition resolved for its parent, applies its own attributes through
// a fixed attribute-to-property table, and hands a copy of the result (without
// its name) to each child. Virtual routes shape their descendants but are never
// emitted. Routes without an explicit name get one synthesized from controller
// and action; within one compilation the first route to claim a name keeps it.
package compiler
