// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/routec/routec/internal/config"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got := getVersionString(); got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestRootCommand_Tree(t *testing.T) {
	t.Parallel()

	app, err := NewApp(Dependencies{Config: staticConfig{cfg: config.DefaultConfig()}})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	root := NewRootCommand(app)

	for _, name := range []string{"show", "compile", "config"} {
		if sub, _, err := root.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "verbose", "input"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
	if root.PersistentFlags().ShorthandLookup("i") == nil || root.PersistentFlags().ShorthandLookup("v") == nil {
		t.Error("persistent shorthands -i and -v should be registered")
	}
}

func TestRootCommand_DefaultsToShow(t *testing.T) {
	t.Parallel()

	input := writeRouteFile(t, t.TempDir(), "routes.yaml", usersRoutes)
	stdout, _, err := runCLI(t, Dependencies{Config: staticConfig{cfg: testConfig(input)}})
	if err != nil {
		t.Fatalf("routec error: %v", err)
	}

	want := "users\n" +
		" controller: \"users\"\n" +
		"  -\n" +
		"   method: \"handle_list\"\n" +
		"   http: \"GET\"\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}

func TestRootCommand_ConfigLoadFailure(t *testing.T) {
	t.Parallel()

	cfgErr := errors.New("bad config")
	_, stderr, err := runCLI(t, Dependencies{Config: staticConfig{err: cfgErr}}, "show")
	if !errors.Is(err, cfgErr) {
		t.Fatalf("error = %v, want it to wrap %v", err, cfgErr)
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitFailure {
		t.Errorf("error should be an ExitError with code %d, got %#v", ExitFailure, err)
	}
	if strings.TrimSpace(stderr) == "" {
		t.Error("stderr should carry the config issue help")
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, Dependencies{Config: staticConfig{cfg: config.DefaultConfig()}}, "unexpected")
	if err == nil {
		t.Fatal("expected an error for a positional argument")
	}
}
