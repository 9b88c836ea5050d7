// SPDX-License-Identifier: MPL-2.0

package routefile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"

	"github.com/routec/routec/internal/dag"
	"github.com/routec/routec/pkg/routetree"
)

var treeOpts = cmp.AllowUnexported(routetree.Path{})

const yamlDoc = `
method_prefix: act_
routes:
  - path: users
    controller: users
    virtual: true
    routes:
      - path: false
        method: act_index
        http: GET
      - path: 404
        method: act_missing
        defaultRoute: true
        http: [GET, POST]
        weight: heavy
`

const tomlDoc = `
method_prefix = "act_"

[[routes]]
path = "users"
controller = "users"
virtual = true

  [[routes.routes]]
  path = false
  method = "act_index"
  http = "GET"

  [[routes.routes]]
  path = 404
  method = "act_missing"
  defaultRoute = true
  http = ["GET", "POST"]
  weight = "heavy"
`

const cueDoc = `
method_prefix: "act_"
routes: [{
	path:       "users"
	controller: "users"
	virtual:    true
	routes: [{
		path:   false
		method: "act_index"
		http:   "GET"
	}, {
		path:         404
		method:       "act_missing"
		defaultRoute: true
		http: ["GET", "POST"]
		weight: "heavy"
	}]
}]
`

const jsonDoc = `{
  "method_prefix": "act_",
  "routes": [{
    "path": "users",
    "controller": "users",
    "virtual": true,
    "routes": [
      {"path": false, "method": "act_index", "http": "GET"},
      {"path": 404, "method": "act_missing", "defaultRoute": true, "http": ["GET", "POST"], "weight": "heavy"}
    ]
  }]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
	return path
}

func TestParse_FormatParity(t *testing.T) {
	t.Parallel()

	want := &routetree.Tree{
		MethodPrefix: "act_",
		Routes: []*routetree.Node{{
			Path:       routetree.PathOf("users"),
			Controller: routetree.StringValue("users"),
			Virtual:    true,
			Routes: []*routetree.Node{
				{
					Path:   routetree.InheritPath(),
					Method: routetree.StringValue("act_index"),
					HTTP:   routetree.StringValue("GET"),
				},
				{
					Path:         routetree.PathOf("404"),
					Method:       routetree.StringValue("act_missing"),
					DefaultRoute: true,
					HTTP:         routetree.ListValue("GET", "POST"),
					Extra:        map[string]routetree.Value{"weight": routetree.StringValue("heavy")},
				},
			},
		}},
	}

	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"yaml", FormatYAML, yamlDoc},
		{"toml", FormatTOML, tomlDoc},
		{"cue", FormatCUE, cueDoc},
		{"json", FormatJSON, jsonDoc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse([]byte(tt.data), tt.format, "routes."+tt.name)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(want, doc.Tree(routetree.DefaultMethodPrefix), treeOpts); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  Format
		data    string
		wantErr string
	}{
		{
			name:    "schema type error carries JSON path",
			format:  FormatYAML,
			data:    "routes:\n  - path: users\n    virtual: yes-please\n",
			wantErr: "routes[0]",
		},
		{
			name:    "unknown top-level key",
			format:  FormatYAML,
			data:    "prefix: handle_\n",
			wantErr: "prefix",
		},
		{
			name:    "empty include",
			format:  FormatJSON,
			data:    `{"routes": [{"include": ""}]}`,
			wantErr: "include",
		},
		{
			name:    "malformed yaml",
			format:  FormatYAML,
			data:    "routes: [\n",
			wantErr: "routes.yaml",
		},
		{
			name:    "malformed toml",
			format:  FormatTOML,
			data:    "[[routes]\n",
			wantErr: "routes.toml",
		},
		{
			name:    "unsupported format",
			format:  Format("ini"),
			data:    "",
			wantErr: "invalid route file format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data), tt.format, "routes."+string(tt.format))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_AggregatesSchemaErrors(t *testing.T) {
	t.Parallel()

	data := "routes:\n  - virtual: maybe\n  - path: b\n    redirectRoute: nope\n"
	_, err := Parse([]byte(data), FormatYAML, "routes.yaml")
	if err == nil {
		t.Fatal("expected error")
	}

	if !errors.Is(err, ErrParse) {
		t.Errorf("error should wrap ErrParse, got: %v", err)
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected *multierror.Error, got %T: %v", err, err)
	}
	if len(merr.Errors) < 2 {
		t.Fatalf("expected at least 2 errors, got %d: %v", len(merr.Errors), err)
	}
	for _, loc := range []string{"routes[0].virtual", "routes[1].redirectRoute"} {
		if !strings.Contains(err.Error(), loc) {
			t.Errorf("error should mention %s, got: %v", loc, err)
		}
	}
}

func TestParse_KeepsStructuredExtras(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{
			name:   "yaml",
			format: FormatYAML,
			data:   "routes:\n  - path: a\n    meta: {auth: admin}\n    routes:\n      - tags: [{y: 2}]\n",
		},
		{
			name:   "toml",
			format: FormatTOML,
			data:   "[[routes]]\npath = \"a\"\nmeta = { auth = \"admin\" }\n\n[[routes.routes]]\ntags = [{ y = 2 }]\n",
		},
		{
			name:   "cue",
			format: FormatCUE,
			data:   "routes: [{\n\tpath: \"a\"\n\tmeta: {auth: \"admin\"}\n\troutes: [{tags: [{y: 2}]}]\n}]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse([]byte(tt.data), tt.format, "routes."+string(tt.format))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			tree := doc.Tree("")
			if len(tree.Routes) != 1 || len(tree.Routes[0].Routes) != 1 {
				t.Fatalf("unexpected tree shape: %#v", tree.Routes)
			}

			checks := []struct {
				node *routetree.Node
				attr string
				want string
			}{
				{tree.Routes[0], "meta", `{"auth":"admin"}`},
				{tree.Routes[0].Routes[0], "tags", `[{"y":2}]`},
			}
			for _, c := range checks {
				v, ok := c.node.Attr(c.attr)
				if !ok {
					t.Fatalf("%s should be kept", c.attr)
				}
				if v.Kind() != routetree.KindJSON {
					t.Errorf("%s kind = %v, want json", c.attr, v.Kind())
				}
				if got := v.Text(); got != c.want {
					t.Errorf("%s = %s, want %s", c.attr, got, c.want)
				}
			}
		})
	}
}

func TestDocument_TreeDropsIncludes(t *testing.T) {
	t.Parallel()

	data := "routes:\n  - include: other.yaml\n  - path: a\n    include: more.yaml\n"
	doc, err := Parse([]byte(data), FormatYAML, "routes.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !doc.Routes[0].SpliceOnly() || doc.Routes[1].SpliceOnly() {
		t.Errorf("SpliceOnly = %v, %v; want true, false", doc.Routes[0].SpliceOnly(), doc.Routes[1].SpliceOnly())
	}
	if doc.HasMethodPrefix {
		t.Error("document declares no method prefix")
	}

	tree := doc.Tree("x_")
	if tree.MethodPrefix != "x_" {
		t.Errorf("MethodPrefix = %q, want x_", tree.MethodPrefix)
	}
	if len(tree.Routes) != 1 || tree.Routes[0].HasChildren() {
		t.Fatalf("expected one childless route, got %d", len(tree.Routes))
	}
}

func TestLoad_Includes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "admin"), 0o755); err != nil {
		t.Fatal(err)
	}
	root := writeFile(t, dir, "index.yaml", `
routes:
  - path: users
    controller: users
    include: users.yaml
    routes:
      - path: false
        method: handle_index
  - include: admin/routes.toml
`)
	writeFile(t, dir, "users.yaml", "method_prefix: ignored_\nroutes:\n  - path: \":id\"\n    method: handle_show\n")
	writeFile(t, dir, "admin/routes.toml", "[[routes]]\npath = \"admin\"\ncontroller = \"admin\"\n")

	result, err := Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := &routetree.Tree{
		MethodPrefix: routetree.DefaultMethodPrefix,
		Routes: []*routetree.Node{
			{
				Path:       routetree.PathOf("users"),
				Controller: routetree.StringValue("users"),
				Routes: []*routetree.Node{
					{Path: routetree.InheritPath(), Method: routetree.StringValue("handle_index")},
					{Path: routetree.PathOf(":id"), Method: routetree.StringValue("handle_show")},
				},
			},
			{Path: routetree.PathOf("admin"), Controller: routetree.StringValue("admin")},
		},
	}
	if diff := cmp.Diff(want, result.Tree, treeOpts); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	wantFiles := []string{root, filepath.Join(dir, "users.yaml"), filepath.Join(dir, "admin", "routes.toml")}
	if diff := cmp.Diff(wantFiles, result.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_SharedIncludeIsReadOnceAndSplicedTwice(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := writeFile(t, dir, "index.yaml", `
routes:
  - path: v1
    include: common.yaml
  - path: v2
    include: common.yaml
`)
	writeFile(t, dir, "common.yaml", "routes:\n  - path: health\n")

	result, err := Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Files) != 2 {
		t.Errorf("Files = %v, want 2 entries", result.Files)
	}
	for _, n := range result.Tree.Routes {
		if len(n.Routes) != 1 {
			t.Fatalf("expected spliced child under each route, got %d", len(n.Routes))
		}
	}
	if result.Tree.Routes[0].Routes[0] == result.Tree.Routes[1].Routes[0] {
		t.Error("spliced routes should be distinct nodes")
	}
}

func TestLoad_IncludeCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := writeFile(t, dir, "a.yaml", "routes:\n  - include: b.yaml\n")
	writeFile(t, dir, "b.yaml", "routes:\n  - path: b\n    include: a.yaml\n")

	_, err := Load(context.Background(), root)
	if !errors.Is(err, dag.ErrCycle) {
		t.Fatalf("expected include cycle error, got %v", err)
	}
	var cycleErr *dag.CycleError
	if !errors.As(err, &cycleErr) || len(cycleErr.Cycle) != 2 {
		t.Errorf("expected a two-file cycle, got %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "routes.ini", "")
	writeFile(t, dir, "big.yaml", "routes:\n  - path: "+strings.Repeat("a", 64)+"\n")
	writeFile(t, dir, "dangling.yaml", "routes:\n  - include: nowhere.yaml\n")

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), filepath.Join(dir, "missing.yaml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("missing include", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), filepath.Join(dir, "dangling.yaml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), filepath.Join(dir, "routes.ini"))
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("file size limit", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), filepath.Join(dir, "big.yaml"), WithMaxFileSize(32))
		if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
			t.Errorf("expected size limit error, got %v", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Load(ctx, filepath.Join(dir, "big.yaml"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestLoad_MethodPrefix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bare := writeFile(t, dir, "bare.yaml", "routes: []\n")
	declared := writeFile(t, dir, "declared.yaml", "method_prefix: \"\"\nroutes: []\n")

	result, err := Load(context.Background(), bare, WithMethodPrefix("on_"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Tree.MethodPrefix != "on_" {
		t.Errorf("MethodPrefix = %q, want on_", result.Tree.MethodPrefix)
	}

	result, err = Load(context.Background(), declared, WithMethodPrefix("on_"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Tree.MethodPrefix != "" {
		t.Errorf("declared empty prefix should win, got %q", result.Tree.MethodPrefix)
	}
}
