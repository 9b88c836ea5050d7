// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"log/slog"
	"strings"

	"github.com/routec/routec/pkg/routetree"
)

// Router property names produced by the compiler.
const (
	PropName            = "name"
	PropController      = "controller"
	PropAction          = "action"
	PropMethods         = "methods"
	PropURI             = "uri"
	PropRedirect        = "redirect"
	PropRedirectIsRoute = "redirect_is_route"
)

// defaultActionName is the synthesized action fragment that never contributes
// to an auto-generated route name.
const defaultActionName = "_default"

const pathSeparator = "/"

type (
	// propertyMapping binds a route attribute to the router property it feeds.
	propertyMapping struct {
		source string
		target string
	}

	// nameRegistry records the auto-generated names handed out during one
	// compilation run.
	nameRegistry map[string]struct{}

	// Option configures a Compiler.
	Option func(*Compiler)

	// Compiler turns a route tree into an ordered list of router entries.
	// A Compiler holds no per-run state and may be used concurrently.
	Compiler struct {
		logger *slog.Logger
	}

	// run holds the state of a single compilation.
	run struct {
		prefix  string
		names   nameRegistry
		entries []Entry
		logger  *slog.Logger
	}
)

// propertyMap lists the route attributes in the order they are resolved.
var propertyMap = []propertyMapping{
	{routetree.AttrName, PropName},
	{routetree.AttrController, PropController},
	{routetree.AttrMethod, PropAction},
	{routetree.AttrHTTP, PropMethods},
	{routetree.AttrPath, PropURI},
	{routetree.AttrRedirect, PropRedirect},
	{routetree.AttrRedirectRoute, PropRedirectIsRoute},
}

// listProperties are router properties that always hold a list.
var listProperties = map[string]bool{
	PropMethods: true,
}

// WithLogger sets the logger used for debug output. A nil logger disables it.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles tree with a default Compiler.
func Compile(tree *routetree.Tree) []Entry {
	return New().Compile(tree)
}

// Compile walks tree in pre-order and returns one entry per non-virtual route.
// Each call uses its own name registry, so repeated calls on the same tree
// return identical results.
func (c *Compiler) Compile(tree *routetree.Tree) []Entry {
	entries := []Entry{}
	if !tree.HasChildren() {
		return entries
	}

	r := &run{
		prefix:  tree.MethodPrefix,
		names:   make(nameRegistry),
		entries: entries,
		logger:  c.logger,
	}
	for _, node := range tree.Routes {
		r.compileNode(node, NewDefinition())
	}
	return r.entries
}

// compileNode resolves node against the definition inherited from its parent,
// emits it unless virtual, and recurses into its children.
func (r *run) compileNode(node *routetree.Node, inherited *Definition) {
	if node == nil {
		return
	}

	isDefault := node.DefaultRoute
	def := inherited.Clone()

	for _, m := range propertyMap {
		if m.source == routetree.AttrPath {
			applyPath(def, node.Path)
			continue
		}
		value, ok := node.Attr(m.source)
		if !ok {
			continue
		}
		if listProperties[m.target] {
			value = value.AsList()
		}
		def.Set(m.target, value)
	}

	if !node.Virtual && !def.Has(PropName) {
		r.assignName(def)
	}

	if !node.Virtual {
		r.entries = append(r.entries, Entry{
			Definition:     def,
			IsDefault:      isDefault,
			ShouldRegister: !isDefault,
		})
	}

	if !node.HasChildren() {
		return
	}

	// Names never inherit. Emitted entries keep def, so children get a copy.
	childDef := def.Clone()
	childDef.Delete(PropName)
	for _, child := range node.Routes {
		r.compileNode(child, childDef)
	}
}

// applyPath resolves the node path into the uri property.
func applyPath(def *Definition, p routetree.Path) {
	segment, ok := p.Value()
	if !ok {
		// Absent or the inherit sentinel: keep the parent uri as is.
		return
	}
	if !strings.Contains(segment, pathSeparator) {
		segment = pathSeparator + segment + pathSeparator
	}

	current, exists := def.Get(PropURI)
	if !exists {
		def.Set(PropURI, routetree.StringValue(segment))
		return
	}
	base, _ := current.Str()
	def.Set(PropURI, routetree.StringValue(joinPath(base, segment)))
}

// joinPath appends segment to base, dropping the doubled separator created at
// the join. Separators elsewhere in either string are left untouched.
func joinPath(base, segment string) string {
	if strings.HasSuffix(base, pathSeparator) && strings.HasPrefix(segment, pathSeparator) {
		segment = segment[len(pathSeparator):]
	}
	return base + segment
}

// assignName synthesizes a name from controller and action. The first route to
// produce a given name keeps it; later collisions stay unnamed.
func (r *run) assignName(def *Definition) {
	var name string
	if controller, ok := def.Get(PropController); ok {
		name = controller.Text()
	}
	if action, ok := def.Get(PropAction); ok {
		aname := action.Text()
		if r.prefix != "" {
			aname = strings.ReplaceAll(aname, r.prefix, "_")
		}
		if aname != defaultActionName {
			name += aname
		}
	}

	if _, taken := r.names[name]; taken {
		if r.logger != nil {
			r.logger.Debug("route name already assigned, leaving route unnamed", "name", name)
		}
		return
	}
	r.names[name] = struct{}{}
	def.Set(PropName, routetree.StringValue(name))
}
