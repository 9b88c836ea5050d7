// SPDX-License-Identifier: MPL-2.0

package routefile

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"

	"github.com/routec/routec/pkg/routetree"
)

var (
	errNotScalar  = errors.New("expected a string or number")
	errPathIsTrue = errors.New("path may be a string, a number or false, not true")

	errNotDisplayable = errors.New("value cannot be displayed")
)

// toValue converts a decoded document value into a route attribute value.
// Numbers become their string form; nil means absent.
func toValue(raw any) (routetree.Value, error) {
	switch v := raw.(type) {
	case nil:
		return routetree.Value{}, nil
	case bool:
		return routetree.BoolValue(v), nil
	case []any:
		items := make([]string, 0, len(v))
		for i, item := range v {
			s, err := scalarString(item)
			if err != nil {
				return routetree.Value{}, fmt.Errorf("item %d: %w", i, err)
			}
			items = append(items, s)
		}
		return routetree.ListValue(items...), nil
	case []string:
		return routetree.ListValue(v...), nil
	}

	s, err := scalarString(raw)
	if err != nil {
		return routetree.Value{}, err
	}
	return routetree.StringValue(s), nil
}

// toExtraValue converts an unknown attribute. Anything that is not a scalar or
// a list of scalars is kept as JSON for display.
func toExtraValue(raw any) (routetree.Value, error) {
	if v, err := toValue(raw); err == nil {
		return v, nil
	}
	v, err := routetree.JSONValue(raw)
	if err != nil {
		return routetree.Value{}, fmt.Errorf("%w: %w", errNotDisplayable, err)
	}
	return v, nil
}

// toPath converts a decoded path value: nil is absent, false is the inherit
// sentinel, anything scalar is a path string.
func toPath(raw any) (routetree.Path, error) {
	switch v := raw.(type) {
	case nil:
		return routetree.NoPath(), nil
	case bool:
		if v {
			return routetree.NoPath(), errPathIsTrue
		}
		return routetree.InheritPath(), nil
	}

	s, err := scalarString(raw)
	if err != nil {
		return routetree.NoPath(), err
	}
	return routetree.PathOf(s), nil
}

func scalarString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case bool, nil, []any, map[string]any:
		return "", fmt.Errorf("%w, got %T", errNotScalar, raw)
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return "", fmt.Errorf("%w: %w", errNotScalar, err)
		}
		return s, nil
	}
}
