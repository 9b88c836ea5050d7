// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/routec/routec/internal/config"
)

const usersRoutes = `method_prefix: handle_
routes:
  - path: users
    controller: users
    routes:
      - path: false
        method: handle_list
        http: GET
`

type staticConfig struct {
	cfg  *config.Config
	path string
	err  error
}

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	return s.cfg, s.err
}

func (s staticConfig) LoadWithPath(context.Context, config.LoadOptions) (*config.Config, string, error) {
	return s.cfg, s.path, s.err
}

// testConfig returns the default configuration pointed at input.
func testConfig(input string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Input = config.InputFilePath(input)
	return cfg
}

func writeRouteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// runCLI executes the routec command tree with args and captured output.
func runCLI(t *testing.T, deps Dependencies, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	deps.Stdout = &out
	deps.Stderr = &errOut
	app, appErr := NewApp(deps)
	if appErr != nil {
		t.Fatalf("NewApp() error: %v", appErr)
	}

	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}
