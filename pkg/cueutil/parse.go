// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseResult contains the result of a successful CUE parse operation.
type ParseResult[T any] struct {
	// Value is the decoded Go value.
	Value *T

	// Unified is the unified CUE value, available for callers that need to
	// inspect fields the Go type does not capture.
	Unified cue.Value
}

// ParseAndDecode performs the 3-step CUE parsing flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to the Go type T
//
// schemaPath names the root definition (e.g. "#RouteFile", "#Config").
// Errors carry the filename and the JSON path of the offending value.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := applyOptions(opts)
	filename := options.displayName()

	// Early file size check to prevent OOM attacks from large files
	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaRoot, err := compileSchema(ctx, schema, schemaPath)
	if err != nil {
		return nil, err
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	return validateAndDecode[T](schemaRoot.Unify(userValue), options)
}

// ParseAndDecodeString is a convenience wrapper that accepts schema as string.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, opts...)
}

// ValidateAndDecode validates an already-decoded Go value (typically a
// map[string]any produced by a YAML or TOML decoder) against the schema
// definition and decodes the unified result into T.
//
// The file size limit does not apply: callers check size before decoding.
func ValidateAndDecode[T any](schema string, doc any, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := applyOptions(opts)
	filename := options.displayName()

	ctx := cuecontext.New()

	schemaRoot, err := compileSchema(ctx, []byte(schema), schemaPath)
	if err != nil {
		return nil, err
	}

	userValue := ctx.Encode(doc)
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	return validateAndDecode[T](schemaRoot.Unify(userValue), options)
}

func applyOptions(opts []Option) parseOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// displayName returns the filename used in error messages.
func (o parseOptions) displayName() string {
	if o.filename == "" {
		return "<input>"
	}
	return o.filename
}

// compileSchema compiles the schema and looks up its root definition.
func compileSchema(ctx *cue.Context, schema []byte, schemaPath string) (cue.Value, error) {
	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}
	return schemaRoot, nil
}

func validateAndDecode[T any](unified cue.Value, options parseOptions) (*ParseResult[T], error) {
	filename := options.displayName()

	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{
		Value:   &result,
		Unified: unified,
	}, nil
}
