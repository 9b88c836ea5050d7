// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when route files change.
//
// A Watcher follows an explicit set of route files (the root file and every
// file it includes) and, optionally, doublestar glob patterns under a base
// directory. Events inside the debounce window are coalesced so the callback
// fires once with the full set of changed paths.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the delay before firing the callback after the last
// filesystem event. Editors often write then rename a temp file, which must
// coalesce into one recompile.
const defaultDebounce = 300 * time.Millisecond

// defaultIgnores lists path patterns that never trigger a recompile.
var defaultIgnores = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.#*",
	"**/.DS_Store",
}

// ErrInvalidWatchConfig is the sentinel wrapped by InvalidWatchConfigError.
var ErrInvalidWatchConfig = errors.New("invalid watch config")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Files are route files to follow. Their parent directories are
		// watched and any event on one of them triggers the callback.
		Files []string

		// Patterns are doublestar globs relative to BaseDir (e.g.
		// "**/*.yaml"). When set, BaseDir is watched recursively.
		Patterns []string

		// Ignore are additional globs merged with the built-in ignores.
		Ignore []string

		// Debounce is the quiet period after the last event. Zero or
		// negative values fall back to defaultDebounce.
		Debounce time.Duration

		// BaseDir anchors Patterns and the relative paths passed to
		// OnChange. Empty means the current working directory.
		BaseDir string

		// OnChange receives the deduplicated changed paths, relative to
		// BaseDir when they live under it and absolute otherwise.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives watcher diagnostics. nil uses slog.Default().
		Logger *slog.Logger
	}

	// InvalidWatchConfigError collects every invalid Config field.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}

	// Watcher fires a debounced callback when followed files change. Run
	// must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		ignores  []string
		logger   *slog.Logger
		debounce time.Duration
		baseDir  string
		started  atomic.Bool

		mu    sync.Mutex
		files map[string]struct{}
		dirs  map[string]struct{}
	}
)

func (e *InvalidWatchConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid watch config (%d errors): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// Validate reports every invalid field of c.
func (c Config) Validate() error {
	var errs []error
	for i, f := range c.Files {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, fmt.Errorf("files[%d]: must not be empty", i))
		}
	}
	errs = append(errs, patternErrors(c.Patterns, "patterns")...)
	errs = append(errs, patternErrors(c.Ignore, "ignore")...)
	if c.BaseDir != "" && strings.TrimSpace(c.BaseDir) == "" {
		errs = append(errs, errors.New("base_dir: must not be whitespace only"))
	}
	if len(errs) > 0 {
		return &InvalidWatchConfigError{FieldErrors: errs}
	}
	return nil
}

// New validates cfg, creates the fsnotify watcher and registers the
// directories to follow.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  slices.Concat(defaultIgnores, cfg.Ignore),
		logger:   logger,
		debounce: debounce,
		baseDir:  absBase,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}

	if len(cfg.Patterns) > 0 || len(cfg.Files) == 0 {
		err = w.addDirectories()
	}
	if err == nil {
		err = w.SetFiles(cfg.Files)
	}
	if err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("watch: close after init failure", "error", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// SetFiles replaces the set of followed route files. Directories of new files
// are added to the watch list; directories are never removed, so a file that
// drops out of the include graph stops triggering but its directory stays
// watched.
func (w *Watcher) SetFiles(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := make(map[string]struct{}, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("watch: resolve %q: %w", f, err)
		}
		next[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files = next
	return nil
}

// Files returns the followed route files, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Sorted(maps.Keys(w.files))
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and propagates fatal watcher errors.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire may be scheduled after ctx is cancelled; the callback receives ctx
	// and must check it for cancellation-sensitive work. Only one callback
	// runs at a time.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("watch: previous run still in progress, retrying")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		w.logger.Debug("watch: files changed", "files", changed)
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("watch: callback failed", "error", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		localTimer := timer
		mu.Unlock()
		if localTimer != nil {
			localTimer.Stop()
		}
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("watch: close fsnotify", "error", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			name, ok := w.match(evt.Name)
			if !ok {
				continue
			}
			if evt.Has(fsnotify.Create) && len(w.cfg.Patterns) > 0 {
				w.maybeAddDir(evt.Name)
			}

			mu.Lock()
			pending[name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("watch: fsnotify error", "error", err)
		}
	}
}

// match reports whether an event on path should trigger the callback and
// returns the name to report for it.
func (w *Watcher) match(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	name := abs
	rel, relErr := filepath.Rel(w.baseDir, abs)
	underBase := relErr == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
	if underBase {
		name = rel
	}
	if w.isIgnored(name) {
		return "", false
	}

	w.mu.Lock()
	_, followed := w.files[abs]
	noFiles := len(w.files) == 0
	w.mu.Unlock()
	if followed {
		return name, true
	}
	if !underBase {
		return "", false
	}
	if len(w.cfg.Patterns) == 0 {
		return name, noFiles
	}
	return name, w.matchesPatterns(rel)
}

// addDirectories walks BaseDir and adds every non-ignored directory.
func (w *Watcher) addDirectories() error {
	walkErr := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			w.logger.Warn("watch: skipping inaccessible path", "path", path, "error", walkDirErr)
			return nil //nolint:nilerr // inaccessible paths are skipped
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.baseDir, path)
		if relErr != nil {
			return nil //nolint:nilerr // skip paths that cannot be made relative
		}
		if w.isIgnored(rel) || w.isIgnored(rel+"/") {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		w.mu.Lock()
		w.dirs[path] = struct{}{}
		w.mu.Unlock()
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk directory tree: %w", walkErr)
	}
	return nil
}

// maybeAddDir extends a recursive watch to a directory created after startup.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil || w.isIgnored(rel) || w.isIgnored(rel+"/") {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.dirs[path]; ok {
		return
	}
	if addErr := w.fsw.Add(path); addErr != nil {
		w.logger.Warn("watch: add new directory", "path", path, "error", addErr)
		return
	}
	w.dirs[path] = struct{}{}
}

func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, rel)
}

func (w *Watcher) matchesPatterns(rel string) bool {
	return matchAny(w.cfg.Patterns, rel)
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

func matchAny(patterns []string, path string) bool {
	normalized := filepath.ToSlash(path)
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

func patternErrors(patterns []string, label string) []error {
	var errs []error
	for i, pat := range patterns {
		if pat == "" {
			errs = append(errs, fmt.Errorf("%s[%d]: must not be empty", label, i))
			continue
		}
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, fmt.Errorf("%s[%d]: invalid glob %q: %w", label, i, pat, doublestar.ErrBadPattern))
		}
	}
	return errs
}
