// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one compiled router configuration entry.
type Entry struct {
	// Definition holds the resolved router properties, keyed by router
	// vocabulary (uri, action, methods, ...).
	Definition *Definition
	// IsDefault mirrors the source route's default-route flag.
	IsDefault bool
	// ShouldRegister is false for default routes, which the router keeps as a
	// fallback instead of registering them as addressable routes.
	ShouldRegister bool
}

// MarshalJSON encodes the entry as [definition, isDefault, shouldRegister].
func (e Entry) MarshalJSON() ([]byte, error) {
	def := e.Definition
	if def == nil {
		def = NewDefinition()
	}
	defJSON, err := def.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	buf.Write(defJSON)
	fmt.Fprintf(&buf, ",%t,%t]", e.IsDefault, e.ShouldRegister)
	return buf.Bytes(), nil
}

// Encode serializes entries as a JSON array. Pretty output is indented with
// four spaces. Slashes and HTML characters are written unescaped.
func Encode(entries []Entry, pretty bool) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "    ")
	}
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("encode compiled routes: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
