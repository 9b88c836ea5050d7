// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/routec/routec/internal/watch"
	"github.com/routec/routec/pkg/routefile"
)

// runFunc performs one show or compile pass and reports the files it read.
type runFunc func(ctx context.Context) (*routefile.Result, error)

// watchRoutes runs once, then again whenever the input file or one of its
// includes changes, until ctx is cancelled. Failed runs are reported and
// watching continues so the user can fix the file and save again.
func (a *App) watchRoutes(ctx context.Context, s *session, run runFunc) error {
	files := []string{s.input}
	if res, err := run(ctx); err == nil {
		files = res.Files
	}

	var w *watch.Watcher
	onChange := func(ctx context.Context, changed []string) error {
		fmt.Fprintf(a.stderr, "%s Detected %d change(s), reloading %s\n",
			CmdStyle.Render("→"), len(changed), s.input)
		res, err := run(ctx)
		if err != nil {
			// Already rendered by run.
			return nil
		}
		return w.SetFiles(res.Files)
	}

	w, err := watch.New(watch.Config{
		Files:    files,
		BaseDir:  filepath.Dir(s.input),
		OnChange: onChange,
		Logger:   s.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Fprintf(a.stderr, "%s Watching %d route file(s) for changes (Ctrl+C to stop)\n",
		CmdStyle.Render("→"), len(files))
	return w.Run(ctx)
}
