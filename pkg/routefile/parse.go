// SPDX-License-Identifier: MPL-2.0

package routefile

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"

	"github.com/routec/routec/pkg/cueutil"
	"github.com/routec/routec/pkg/routetree"
)

//go:embed routefile_schema.cue
var routefileSchema string

// ErrParse is the sentinel wrapped by ParseError.
var ErrParse = errors.New("route file parse error")

type (
	// ParseError reports a route file that is malformed or does not match the
	// route schema. It unwraps to both ErrParse and the underlying error.
	ParseError struct {
		File string
		Err  error
	}

	// Document is a single parsed route file. Include directives are kept
	// unresolved; Load splices them.
	Document struct {
		// Filename is the name used in error messages.
		Filename string
		// MethodPrefix is the declared method prefix, if HasMethodPrefix.
		MethodPrefix    string
		HasMethodPrefix bool
		// Routes are the top-level route items in source order.
		Routes []*Route
	}

	// Route is one route item of a document.
	Route struct {
		// Node carries the item's attributes. Its Routes field is unused;
		// children live in Route.Routes.
		Node *routetree.Node
		// Include is the referenced route file, relative to the document.
		Include string
		// Routes are the inline child items.
		Routes []*Route

		spliceOnly bool
	}

	rawFile struct {
		MethodPrefix *string    `mapstructure:"method_prefix"`
		Routes       []rawRoute `mapstructure:"routes"`
	}

	rawRoute struct {
		Path          any            `mapstructure:"path"`
		Virtual       bool           `mapstructure:"virtual"`
		DefaultRoute  bool           `mapstructure:"defaultRoute"`
		Name          any            `mapstructure:"name"`
		Controller    any            `mapstructure:"controller"`
		Method        any            `mapstructure:"method"`
		HTTP          any            `mapstructure:"http"`
		Redirect      any            `mapstructure:"redirect"`
		RedirectRoute any            `mapstructure:"redirectRoute"`
		Include       string         `mapstructure:"include"`
		Routes        []rawRoute     `mapstructure:"routes"`
		Extra         map[string]any `mapstructure:",remain"`
	}
)

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// SpliceOnly reports whether the item holds nothing but an include directive
// and is replaced in place by the included routes.
func (r *Route) SpliceOnly() bool { return r.spliceOnly }

// Parse parses a single route document. Include directives are not followed.
func Parse(data []byte, format Format, filename string) (*Document, error) {
	return parse(data, format, filename, cueutil.DefaultMaxFileSize)
}

func parse(data []byte, format Format, filename string, maxFileSize int64) (*Document, error) {
	if isValid, errs := format.IsValid(); !isValid {
		return nil, errs[0]
	}
	if err := cueutil.CheckFileSize(data, maxFileSize, filename); err != nil {
		return nil, err
	}

	doc, err := decodeValidated(data, format, filename, maxFileSize)
	if err != nil {
		return nil, &ParseError{File: filename, Err: err}
	}

	var raw rawFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &raw,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("internal error: %w", err)
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, &ParseError{File: filename, Err: fmt.Errorf("%s: %w", filename, err)}
	}

	out := &Document{Filename: filename}
	if raw.MethodPrefix != nil {
		out.MethodPrefix = *raw.MethodPrefix
		out.HasMethodPrefix = true
	}

	var errs *multierror.Error
	out.Routes = convertRoutes(raw.Routes, "routes", filename, &errs)
	if err := errs.ErrorOrNil(); err != nil {
		return nil, &ParseError{File: filename, Err: err}
	}
	return out, nil
}

// Tree builds a route tree from the document alone, dropping include
// directives. defaultPrefix applies when the document declares no prefix.
func (d *Document) Tree(defaultPrefix string) *routetree.Tree {
	prefix := defaultPrefix
	if d.HasMethodPrefix {
		prefix = d.MethodPrefix
	}
	return &routetree.Tree{
		MethodPrefix: prefix,
		Routes:       buildNodes(d.Routes, nil),
	}
}

// decodeValidated turns the document into generic maps and validates it
// against #RouteFile.
func decodeValidated(data []byte, format Format, filename string, maxFileSize int64) (map[string]any, error) {
	opts := []cueutil.Option{cueutil.WithFilename(filename), cueutil.WithMaxFileSize(maxFileSize)}

	switch format {
	case FormatCUE, FormatJSON:
		result, err := cueutil.ParseAndDecodeString[map[string]any](routefileSchema, data, "#RouteFile", opts...)
		if err != nil {
			return nil, err
		}
		return *result.Value, nil
	case FormatYAML:
		doc := map[string]any{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return validateDoc(doc, opts)
	case FormatTOML:
		doc := map[string]any{}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return validateDoc(doc, opts)
	default:
		return nil, &InvalidFormatError{Value: format}
	}
}

func validateDoc(doc map[string]any, opts []cueutil.Option) (map[string]any, error) {
	if doc == nil {
		// An empty YAML document decodes to nil.
		doc = map[string]any{}
	}
	if _, err := cueutil.ValidateAndDecode[map[string]any](routefileSchema, doc, "#RouteFile", opts...); err != nil {
		return nil, err
	}
	return doc, nil
}

// convertRoutes turns raw items into routes, collecting every conversion
// error under its JSON path.
func convertRoutes(raws []rawRoute, loc, filename string, errs **multierror.Error) []*Route {
	routes := make([]*Route, 0, len(raws))
	for i := range raws {
		routes = append(routes, convertRoute(&raws[i], fmt.Sprintf("%s[%d]", loc, i), filename, errs))
	}
	return routes
}

func convertRoute(raw *rawRoute, loc, filename string, errs **multierror.Error) *Route {
	fail := func(field string, err error) {
		*errs = multierror.Append(*errs, &cueutil.ValidationError{
			FilePath: filename,
			CUEPath:  loc + "." + field,
			Message:  err.Error(),
		})
	}
	value := func(field string, v any) routetree.Value {
		out, err := toValue(v)
		if err != nil {
			fail(field, err)
		}
		return out
	}

	path, err := toPath(raw.Path)
	if err != nil {
		fail(routetree.AttrPath, err)
	}

	node := &routetree.Node{
		Path:          path,
		Virtual:       raw.Virtual,
		DefaultRoute:  raw.DefaultRoute,
		Name:          value(routetree.AttrName, raw.Name),
		Controller:    value(routetree.AttrController, raw.Controller),
		Method:        value(routetree.AttrMethod, raw.Method),
		HTTP:          value(routetree.AttrHTTP, raw.HTTP),
		Redirect:      value(routetree.AttrRedirect, raw.Redirect),
		RedirectRoute: value(routetree.AttrRedirectRoute, raw.RedirectRoute),
	}
	for key, v := range raw.Extra {
		if node.Extra == nil {
			node.Extra = make(map[string]routetree.Value, len(raw.Extra))
		}
		extra, err := toExtraValue(v)
		if err != nil {
			fail(key, err)
		}
		node.Extra[key] = extra
	}

	route := &Route{
		Node:    node,
		Include: raw.Include,
		Routes:  convertRoutes(raw.Routes, loc+".routes", filename, errs),
	}
	route.spliceOnly = raw.Include != "" && isBare(raw)
	return route
}

// isBare reports whether raw declares nothing besides include.
func isBare(raw *rawRoute) bool {
	return raw.Path == nil && !raw.Virtual && !raw.DefaultRoute &&
		raw.Name == nil && raw.Controller == nil && raw.Method == nil &&
		raw.HTTP == nil && raw.Redirect == nil && raw.RedirectRoute == nil &&
		len(raw.Routes) == 0 && len(raw.Extra) == 0
}

// buildNodes materializes routes into fresh tree nodes. resolve returns the
// routes spliced for an include directive; nil drops includes.
func buildNodes(routes []*Route, resolve func(include string) []*routetree.Node) []*routetree.Node {
	nodes := make([]*routetree.Node, 0, len(routes))
	for _, r := range routes {
		if r.spliceOnly {
			if resolve != nil {
				nodes = append(nodes, resolve(r.Include)...)
			}
			continue
		}

		n := *r.Node
		n.Extra = maps.Clone(r.Node.Extra)
		n.Routes = buildNodes(r.Routes, resolve)
		if r.Include != "" && resolve != nil {
			n.Routes = append(n.Routes, resolve(r.Include)...)
		}
		if len(n.Routes) == 0 {
			n.Routes = nil
		}
		nodes = append(nodes, &n)
	}
	return nodes
}
