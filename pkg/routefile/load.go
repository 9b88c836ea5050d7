// SPDX-License-Identifier: MPL-2.0

package routefile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/routec/routec/internal/dag"
	"github.com/routec/routec/pkg/cueutil"
	"github.com/routec/routec/pkg/routetree"
)

type (
	// Result is the outcome of loading a route file and its includes.
	Result struct {
		// Tree is the fully spliced route tree.
		Tree *routetree.Tree
		// Files lists every file read, root first, in discovery order.
		Files []string
	}

	// Option configures Load.
	Option func(*loadOptions)

	loadOptions struct {
		methodPrefix string
		maxFileSize  int64
		logger       *slog.Logger
	}

	loader struct {
		opts  loadOptions
		docs  map[string]*Document
		files []string
		graph *dag.Graph
	}
)

// WithMethodPrefix sets the method prefix used when the root file declares
// none. Default is routetree.DefaultMethodPrefix.
func WithMethodPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.methodPrefix = prefix
	}
}

// WithMaxFileSize sets the per-file size limit.
// Default is cueutil.DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *loadOptions) {
		o.maxFileSize = size
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *loadOptions) {
		o.logger = logger
	}
}

// Load reads the route file at path, follows its includes and returns the
// spliced route tree. Only the root file's method_prefix is honored.
func Load(ctx context.Context, path string, opts ...Option) (*Result, error) {
	options := loadOptions{
		methodPrefix: routetree.DefaultMethodPrefix,
		maxFileSize:  cueutil.DefaultMaxFileSize,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve route file path %s: %w", path, err)
	}

	l := &loader{
		opts:  options,
		docs:  make(map[string]*Document),
		graph: dag.New(),
	}
	if err := l.discover(ctx, root); err != nil {
		return nil, err
	}
	if _, err := l.graph.TopologicalSort(); err != nil {
		return nil, err
	}

	rootDoc := l.docs[root]
	tree := rootDoc.Tree(options.methodPrefix)
	tree.Routes = l.build(root)

	return &Result{Tree: tree, Files: l.files}, nil
}

// discover reads root and every file it transitively includes, recording
// include edges. Each file is read once.
func (l *loader) discover(ctx context.Context, root string) error {
	queue := []string{root}
	l.graph.AddNode(root)

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		file := queue[0]
		queue = queue[1:]
		if _, seen := l.docs[file]; seen {
			continue
		}

		doc, err := l.read(file)
		if err != nil {
			return err
		}
		l.docs[file] = doc
		l.files = append(l.files, file)

		for _, inc := range includesOf(doc.Routes) {
			target := resolveInclude(file, inc)
			l.graph.AddEdge(file, target)
			if _, seen := l.docs[target]; !seen {
				queue = append(queue, target)
			}
		}
	}
	return nil
}

func (l *loader) read(file string) (*Document, error) {
	format, err := FormatFromPath(file)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read route file at %s: %w", file, err)
	}
	doc, err := parse(data, format, file, l.opts.maxFileSize)
	if err != nil {
		return nil, err
	}
	l.opts.logger.Debug("loaded route file", "path", file, "format", format, "routes", len(doc.Routes))
	return doc, nil
}

// build materializes the routes of file with includes spliced. The include
// graph is acyclic by the time this runs.
func (l *loader) build(file string) []*routetree.Node {
	return buildNodes(l.docs[file].Routes, func(include string) []*routetree.Node {
		return l.build(resolveInclude(file, include))
	})
}

// includesOf returns every include directive in routes, depth first.
func includesOf(routes []*Route) []string {
	var out []string
	for _, r := range routes {
		if r.Include != "" {
			out = append(out, r.Include)
		}
		out = append(out, includesOf(r.Routes)...)
	}
	return out
}

func resolveInclude(from, include string) string {
	if filepath.IsAbs(include) {
		return filepath.Clean(include)
	}
	return filepath.Join(filepath.Dir(from), include)
}
