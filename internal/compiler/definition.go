// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/routec/routec/pkg/routetree"
)

type (
	// Definition is the ordered set of resolved router properties for one
	// route. Keys keep their first insertion position, so serialized output
	// lists inherited properties before the ones a route adds itself.
	//
	// A Definition handed to a child is always a Clone: mutations never reach
	// the parent or a sibling.
	Definition struct {
		keys   []string
		values map[string]routetree.Value
	}

	// Property is a single key/value pair of a Definition.
	Property struct {
		Key   string
		Value routetree.Value
	}
)

// NewDefinition builds a Definition from properties, in order.
func NewDefinition(props ...Property) *Definition {
	d := &Definition{values: make(map[string]routetree.Value, len(props))}
	for _, p := range props {
		d.Set(p.Key, p.Value)
	}
	return d
}

// Get returns the value stored under key.
func (d *Definition) Get(key string) (routetree.Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is set.
func (d *Definition) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Set stores value under key, keeping the original position of an existing key.
func (d *Definition) Set(key string, value routetree.Value) {
	if d.values == nil {
		d.values = make(map[string]routetree.Value)
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value.Clone()
}

// Delete removes key. Deleting a missing key is a no-op.
func (d *Definition) Delete(key string) {
	if _, exists := d.values[key]; !exists {
		return
	}
	delete(d.values, key)
	d.keys = slices.DeleteFunc(d.keys, func(k string) bool { return k == key })
}

// Keys returns the property names in insertion order.
func (d *Definition) Keys() []string {
	return slices.Clone(d.keys)
}

// Len returns the number of properties.
func (d *Definition) Len() int {
	return len(d.keys)
}

// Properties returns the key/value pairs in insertion order.
func (d *Definition) Properties() []Property {
	props := make([]Property, 0, len(d.keys))
	for _, k := range d.keys {
		props = append(props, Property{Key: k, Value: d.values[k].Clone()})
	}
	return props
}

// Clone returns a deep copy of d.
func (d *Definition) Clone() *Definition {
	c := &Definition{
		keys:   slices.Clone(d.keys),
		values: make(map[string]routetree.Value, len(d.values)),
	}
	for k, v := range d.values {
		c.values[k] = v.Clone()
	}
	return c
}

// Equal reports whether both definitions hold the same keys, in the same order,
// with equal values.
func (d *Definition) Equal(other *Definition) bool {
	if d == nil || other == nil {
		return d == other
	}
	if !slices.Equal(d.keys, other.keys) {
		return false
	}
	for _, k := range d.keys {
		if !d.values[k].Equal(other.values[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the definition as a JSON object with keys in insertion
// order.
func (d *Definition) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := d.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
