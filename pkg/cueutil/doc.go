// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE schema validation utilities.
//
// Route files and the configuration file are validated against embedded CUE
// schemas. Two entry points cover the formats routec reads:
//
//   - ParseAndDecode compiles CUE (or JSON) source text, unifies it with a
//     schema definition, validates it and decodes it into a Go value.
//   - ValidateAndDecode does the same for documents that were already decoded
//     from YAML or TOML into Go maps.
//
// # Usage
//
//	//go:embed routefile_schema.cue
//	var schema string
//
//	result, err := cueutil.ParseAndDecodeString[map[string]any](
//	    schema,
//	    data,
//	    "#RouteFile",
//	    cueutil.WithFilename("routes.cue"),
//	)
//	if err != nil {
//	    return nil, err // error text carries the JSON path of the bad field
//	}
package cueutil
