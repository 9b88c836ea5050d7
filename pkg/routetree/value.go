// SPDX-License-Identifier: MPL-2.0

package routetree

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

const (
	// KindAbsent is the zero Value kind: the attribute is not set.
	KindAbsent ValueKind = iota
	// KindString is a scalar string attribute.
	KindString
	// KindList is an ordered list of strings.
	KindList
	// KindBool is a boolean attribute.
	KindBool
	// KindJSON is structured data kept in compact JSON form. Route files
	// produce it only for unknown attributes, which are displayed but never
	// compiled.
	KindJSON
)

type (
	// ValueKind identifies which variant a Value holds.
	ValueKind int

	// Value is an optional route attribute value. The zero Value is absent.
	// Values are immutable: list contents are copied on construction and on read.
	Value struct {
		kind ValueKind
		str  string
		list []string
		flag bool
		doc  string
	}
)

// String returns a human-readable name for the kind.
func (k ValueKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindBool:
		return "bool"
	case KindJSON:
		return "json"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// StringValue returns a present scalar string value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// ListValue returns a present list value. The input slice is copied.
func ListValue(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{kind: KindList, list: slices.Clone(items)}
}

// BoolValue returns a present boolean value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// JSONValue returns a present value holding data in compact JSON form.
func JSONValue(data any) (Value, error) {
	doc, err := encodeJSON(data)
	if err != nil {
		return Value{}, err
	}
	return Value{kind: KindJSON, doc: doc}, nil
}

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// IsSet reports whether the value is present.
func (v Value) IsSet() bool { return v.kind != KindAbsent }

// IsList reports whether the value holds a list.
func (v Value) IsList() bool { return v.kind == KindList }

// Str returns the scalar string and whether v holds one.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// List returns a copy of the list items and whether v holds a list.
func (v Value) List() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// Bool returns the boolean and whether v holds one.
func (v Value) Bool() (bool, bool) {
	return v.flag, v.kind == KindBool
}

// AsList coerces a scalar string into a single-element list. Lists are returned
// unchanged and other kinds are returned as-is.
func (v Value) AsList() Value {
	if v.kind == KindString {
		return ListValue(v.str)
	}
	return v
}

// Text renders v as plain text for name synthesis: strings verbatim, anything
// else in its compact JSON form.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.str
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(data)
}

// Equal reports whether two values hold the same variant and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindList:
		return slices.Equal(v.list, other.list)
	case KindBool:
		return v.flag == other.flag
	case KindJSON:
		return v.doc == other.doc
	default:
		return true
	}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	if v.kind == KindList {
		v.list = slices.Clone(v.list)
	}
	return v
}

// GoString implements fmt.GoStringer for readable test failures.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("StringValue(%q)", v.str)
	case KindList:
		quoted := make([]string, len(v.list))
		for i, item := range v.list {
			quoted[i] = fmt.Sprintf("%q", item)
		}
		return "ListValue(" + strings.Join(quoted, ", ") + ")"
	case KindBool:
		return fmt.Sprintf("BoolValue(%t)", v.flag)
	case KindJSON:
		return fmt.Sprintf("JSONValue(%s)", v.doc)
	default:
		return "Value{}"
	}
}

// MarshalJSON encodes v as a JSON string, array of strings, boolean, the
// held JSON document, or null when absent. HTML characters are not escaped.
func (v Value) MarshalJSON() ([]byte, error) {
	var raw any
	switch v.kind {
	case KindString:
		raw = v.str
	case KindList:
		raw = v.list
	case KindBool:
		raw = v.flag
	case KindJSON:
		return []byte(v.doc), nil
	default:
		return []byte("null"), nil
	}

	doc, err := encodeJSON(raw)
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

func encodeJSON(raw any) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(raw); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
