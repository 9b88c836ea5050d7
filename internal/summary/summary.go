// SPDX-License-Identifier: MPL-2.0

// Package summary renders a route tree as an indented, human-readable report.
package summary

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/routec/routec/pkg/routetree"
)

// PathPlaceholder is replaced by the display path in VirtualTemplate.
const PathPlaceholder = "{path}"

const (
	// StylePlain renders one line per route and property, indented by spaces.
	StylePlain Style = "plain"
	// StyleTree renders the same labels as a box-drawing tree.
	StyleTree Style = "tree"
)

// ErrInvalidStyle is the sentinel error wrapped by InvalidStyleError.
var ErrInvalidStyle = errors.New("invalid summary style")

// flagAttrs are the route flags that are always present on a node.
var flagAttrs = map[string]bool{
	routetree.AttrVirtual:      true,
	routetree.AttrDefaultRoute: true,
}

type (
	// Style selects the report layout.
	Style string

	// InvalidStyleError is returned when a Style value is not recognized.
	// It wraps ErrInvalidStyle for errors.Is() compatibility.
	InvalidStyleError struct {
		Value Style
	}

	// Options controls how routes are displayed.
	Options struct {
		// IndentStep is added to the indentation for each nesting level.
		IndentStep int
		// PropertyOffset indents property lines relative to their route.
		PropertyOffset int
		// Properties are the attributes shown under each route, in order.
		Properties []string
		// VirtualTemplate wraps the path of virtual routes. Every
		// PathPlaceholder is replaced by the display path.
		VirtualTemplate string
		// NoPath is shown for routes that declare no path.
		NoPath string
		// EmptyPath is shown for routes whose path is blank or false.
		EmptyPath string
		// Style selects the layout.
		Style Style
	}

	// Formatter renders route trees. It holds no per-call state.
	Formatter struct {
		opts Options
	}
)

func (e *InvalidStyleError) Error() string {
	return fmt.Sprintf("invalid summary style %q (valid: plain, tree)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidStyleError) Unwrap() error {
	return ErrInvalidStyle
}

// String returns the string representation of the Style.
func (s Style) String() string { return string(s) }

// IsValid returns whether the Style is a known layout,
// and a list of validation errors if it is not.
func (s Style) IsValid() (bool, []error) {
	switch s {
	case StylePlain, StyleTree:
		return true, nil
	default:
		return false, []error{&InvalidStyleError{Value: s}}
	}
}

// DefaultProperties are the attributes shown when none are configured.
func DefaultProperties() []string {
	return []string{
		routetree.AttrName,
		routetree.AttrController,
		routetree.AttrMethod,
		routetree.AttrHTTP,
	}
}

// DefaultOptions returns the stock display settings.
func DefaultOptions() Options {
	return Options{
		IndentStep:      2,
		PropertyOffset:  1,
		Properties:      DefaultProperties(),
		VirtualTemplate: "«" + PathPlaceholder + "»",
		NoPath:          "---",
		EmptyPath:       "-",
		Style:           StylePlain,
	}
}

// New creates a Formatter. An empty Style means StylePlain.
func New(opts Options) *Formatter {
	opts.Properties = slices.Clone(opts.Properties)
	if opts.Style == "" {
		opts.Style = StylePlain
	}
	return &Formatter{opts: opts}
}

// MergeProperties returns the properties to display given the defaults and
// the extra properties requested. With replace the extras are used as is;
// otherwise they are appended to the defaults, skipping duplicates. An empty
// extra list always yields the defaults.
func MergeProperties(defaults, extra []string, replace bool) []string {
	if len(extra) == 0 {
		return slices.Clone(defaults)
	}
	if replace {
		return slices.Clone(extra)
	}
	merged := slices.Clone(defaults)
	for _, p := range extra {
		if !slices.Contains(merged, p) {
			merged = append(merged, p)
		}
	}
	return merged
}

// Format renders routes starting at the given indentation.
func (f *Formatter) Format(routes []*routetree.Node, indent int) string {
	if f.opts.Style == StyleTree {
		return f.formatTree(routes, indent)
	}
	var b strings.Builder
	f.formatPlain(&b, routes, indent)
	return b.String()
}

func (f *Formatter) formatPlain(b *strings.Builder, routes []*routetree.Node, indent int) {
	pathPad := strings.Repeat(" ", max(indent, 0))
	propPad := strings.Repeat(" ", max(indent+f.opts.PropertyOffset, 0))

	for _, route := range routes {
		if route == nil {
			continue
		}
		b.WriteString(pathPad)
		b.WriteString(f.displayPath(route))
		b.WriteByte('\n')

		for _, line := range f.propertyLines(route) {
			b.WriteString(propPad)
			b.WriteString(line)
			b.WriteByte('\n')
		}

		if route.HasChildren() {
			f.formatPlain(b, route.Routes, indent+f.opts.IndentStep)
		}
	}
}

func (f *Formatter) formatTree(routes []*routetree.Node, indent int) string {
	tree := treeprint.New()
	f.addBranches(tree, routes)

	out := tree.String()
	if indent <= 0 {
		return out
	}
	pad := strings.Repeat(" ", indent)
	lines := strings.SplitAfter(out, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(pad)
		b.WriteString(line)
	}
	return b.String()
}

func (f *Formatter) addBranches(parent treeprint.Tree, routes []*routetree.Node) {
	for _, route := range routes {
		if route == nil {
			continue
		}
		branch := parent.AddBranch(f.displayPath(route))
		for _, line := range f.propertyLines(route) {
			branch.AddNode(line)
		}
		f.addBranches(branch, route.Routes)
	}
}

// displayPath resolves the label shown for a route.
func (f *Formatter) displayPath(route *routetree.Node) string {
	var path string
	if route.Path.IsSet() {
		// The inherit sentinel is present but has no text.
		s, _ := route.Path.Value()
		path = strings.TrimSpace(s)
		if path == "" {
			path = f.opts.EmptyPath
		}
	} else {
		path = f.opts.NoPath
	}

	if route.Virtual {
		path = strings.ReplaceAll(f.opts.VirtualTemplate, PathPlaceholder, path)
	}
	return path
}

// propertyLines renders each configured attribute present on route.
func (f *Formatter) propertyLines(route *routetree.Node) []string {
	var lines []string
	for _, prop := range f.opts.Properties {
		value, ok := route.Attr(prop)
		if !ok {
			continue
		}
		if flag, isBool := value.Bool(); isBool && !flag && flagAttrs[prop] {
			// Unset flags read as false; only shown when raised.
			continue
		}
		data, err := value.MarshalJSON()
		if err != nil {
			continue
		}
		lines = append(lines, prop+": "+string(data))
	}
	return lines
}
