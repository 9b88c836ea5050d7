// SPDX-License-Identifier: MPL-2.0

package routetree

// DefaultMethodPrefix is the controller method naming convention used when a
// route file does not declare its own prefix.
const DefaultMethodPrefix = "handle_"

// Source attribute names understood by Node.Attr.
const (
	AttrPath          = "path"
	AttrVirtual       = "virtual"
	AttrDefaultRoute  = "defaultRoute"
	AttrName          = "name"
	AttrController    = "controller"
	AttrMethod        = "method"
	AttrHTTP          = "http"
	AttrRedirect      = "redirect"
	AttrRedirectRoute = "redirectRoute"
)

const (
	// PathAbsent means the node declares no path and inherits its parent's uri.
	PathAbsent PathKind = iota
	// PathInherit is the explicit "use the parent path verbatim" sentinel,
	// written as `path: false` in route files.
	PathInherit
	// PathSet means the node declares a path string (which may be empty).
	PathSet
)

type (
	// PathKind distinguishes the three states of a node path.
	PathKind int

	// Path is a node's path declaration. The zero Path is absent.
	Path struct {
		kind  PathKind
		value string
	}

	// Node is a single route definition in the tree.
	Node struct {
		// Path is the path segment or full path for this route.
		Path Path
		// Virtual nodes only propagate attributes to their descendants.
		Virtual bool
		// DefaultRoute marks a fallback route.
		DefaultRoute bool

		Name          Value
		Controller    Value
		Method        Value
		HTTP          Value
		Redirect      Value
		RedirectRoute Value

		// Extra holds attributes the tree model does not know about. They are
		// displayed by the summary formatter and ignored by the compiler.
		Extra map[string]Value

		// Routes are the child routes, in source order.
		Routes []*Node
	}

	// Tree is the top-level route collection. It is not a route and never
	// produces a compiled entry.
	Tree struct {
		// MethodPrefix is the controller method naming convention replaced by
		// "_" when route names are synthesized.
		MethodPrefix string
		// Routes are the top-level routes, in source order.
		Routes []*Node
	}
)

// NoPath returns an absent path.
func NoPath() Path { return Path{} }

// InheritPath returns the "reuse parent path" sentinel.
func InheritPath() Path { return Path{kind: PathInherit} }

// PathOf returns a declared path, which may be empty.
func PathOf(s string) Path { return Path{kind: PathSet, value: s} }

// Kind returns the path state.
func (p Path) Kind() PathKind { return p.kind }

// IsSet reports whether the node declares any path, including the sentinel.
func (p Path) IsSet() bool { return p.kind != PathAbsent }

// Value returns the declared path string and whether one is declared.
// The inherit sentinel reports ("", false).
func (p Path) Value() (string, bool) {
	return p.value, p.kind == PathSet
}

// AsValue exposes the path as an attribute value: a string when declared,
// false for the inherit sentinel, and absent otherwise.
func (p Path) AsValue() Value {
	switch p.kind {
	case PathSet:
		return StringValue(p.value)
	case PathInherit:
		return BoolValue(false)
	default:
		return Value{}
	}
}

// HasChildren reports whether the node has any child routes.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Routes) > 0
}

// Attr looks up an attribute by its source name. The bool result reports
// presence. virtual and defaultRoute are always present.
func (n *Node) Attr(name string) (Value, bool) {
	var v Value
	switch name {
	case AttrPath:
		v = n.Path.AsValue()
	case AttrVirtual:
		v = BoolValue(n.Virtual)
	case AttrDefaultRoute:
		v = BoolValue(n.DefaultRoute)
	case AttrName:
		v = n.Name
	case AttrController:
		v = n.Controller
	case AttrMethod:
		v = n.Method
	case AttrHTTP:
		v = n.HTTP
	case AttrRedirect:
		v = n.Redirect
	case AttrRedirectRoute:
		v = n.RedirectRoute
	default:
		v = n.Extra[name]
	}
	return v, v.IsSet()
}

// HasChildren reports whether the tree has any top-level routes.
func (t *Tree) HasChildren() bool {
	return t != nil && len(t.Routes) > 0
}

// Walk visits every node of the tree in pre-order. Returning false from fn
// stops the descent into that node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	if t == nil {
		return
	}
	for _, n := range t.Routes {
		walk(n, 0, fn)
	}
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, child := range n.Routes {
		walk(child, depth+1, fn)
	}
}
