// SPDX-License-Identifier: MPL-2.0

package routetree

import (
	"slices"
	"testing"
)

func TestPath_States(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      Path
		wantKind  PathKind
		wantSet   bool
		wantValue string
		wantOK    bool
		wantAttr  Value
	}{
		{"absent", NoPath(), PathAbsent, false, "", false, Value{}},
		{"inherit sentinel", InheritPath(), PathInherit, true, "", false, BoolValue(false)},
		{"empty string", PathOf(""), PathSet, true, "", true, StringValue("")},
		{"segment", PathOf("users"), PathSet, true, "users", true, StringValue("users")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.path.Kind(); got != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", got, tt.wantKind)
			}
			if got := tt.path.IsSet(); got != tt.wantSet {
				t.Errorf("IsSet() = %v, want %v", got, tt.wantSet)
			}
			value, ok := tt.path.Value()
			if value != tt.wantValue || ok != tt.wantOK {
				t.Errorf("Value() = (%q, %v), want (%q, %v)", value, ok, tt.wantValue, tt.wantOK)
			}
			if got := tt.path.AsValue(); !got.Equal(tt.wantAttr) {
				t.Errorf("AsValue() = %#v, want %#v", got, tt.wantAttr)
			}
		})
	}
}

func TestNode_Attr(t *testing.T) {
	t.Parallel()

	n := &Node{
		Path:       PathOf("users"),
		Virtual:    true,
		Controller: StringValue("users"),
		HTTP:       ListValue("GET", "POST"),
		Extra:      map[string]Value{"auth": StringValue("admin")},
	}

	tests := []struct {
		attr    string
		want    Value
		present bool
	}{
		{AttrPath, StringValue("users"), true},
		{AttrVirtual, BoolValue(true), true},
		{AttrDefaultRoute, BoolValue(false), true},
		{AttrController, StringValue("users"), true},
		{AttrHTTP, ListValue("GET", "POST"), true},
		{AttrName, Value{}, false},
		{AttrMethod, Value{}, false},
		{"auth", StringValue("admin"), true},
		{"unknown", Value{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			t.Parallel()

			got, ok := n.Attr(tt.attr)
			if ok != tt.present {
				t.Errorf("Attr(%q) presence = %v, want %v", tt.attr, ok, tt.present)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Attr(%q) = %#v, want %#v", tt.attr, got, tt.want)
			}
		})
	}
}

func TestNode_HasChildren(t *testing.T) {
	t.Parallel()

	var nilNode *Node
	if nilNode.HasChildren() {
		t.Error("nil node should report no children")
	}
	if (&Node{}).HasChildren() {
		t.Error("empty node should report no children")
	}
	if !(&Node{Routes: []*Node{{}}}).HasChildren() {
		t.Error("node with a child should report children")
	}
}

func TestTree_WalkPreOrder(t *testing.T) {
	t.Parallel()

	d := &Node{Name: StringValue("D")}
	b := &Node{Name: StringValue("B"), Routes: []*Node{d}}
	c := &Node{Name: StringValue("C")}
	a := &Node{Name: StringValue("A"), Routes: []*Node{b, c}}
	tree := &Tree{Routes: []*Node{a}}

	var visited []string
	var depths []int
	tree.Walk(func(n *Node, depth int) bool {
		name, _ := n.Name.Str()
		visited = append(visited, name)
		depths = append(depths, depth)
		return true
	})

	if want := []string{"A", "B", "D", "C"}; !slices.Equal(visited, want) {
		t.Errorf("visit order = %v, want %v", visited, want)
	}
	if want := []int{0, 1, 2, 1}; !slices.Equal(depths, want) {
		t.Errorf("depths = %v, want %v", depths, want)
	}
}

func TestTree_WalkSkipsChildren(t *testing.T) {
	t.Parallel()

	tree := &Tree{Routes: []*Node{
		{Name: StringValue("A"), Routes: []*Node{{Name: StringValue("B")}}},
		{Name: StringValue("C")},
	}}

	var visited []string
	tree.Walk(func(n *Node, _ int) bool {
		name, _ := n.Name.Str()
		visited = append(visited, name)
		return name != "A"
	})

	if want := []string{"A", "C"}; !slices.Equal(visited, want) {
		t.Errorf("visit order = %v, want %v", visited, want)
	}
}
