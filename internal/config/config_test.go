// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/routec/routec/internal/issue"
	"github.com/routec/routec/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input != "src/routes/index.yaml" {
		t.Errorf("Input = %q, want src/routes/index.yaml", cfg.Input)
	}
	if cfg.Compile.Pretty {
		t.Error("Compile.Pretty should default to false")
	}
	if cfg.Compile.MethodPrefix != "handle_" {
		t.Errorf("Compile.MethodPrefix = %q, want handle_", cfg.Compile.MethodPrefix)
	}
	if cfg.Display.IndentStep != 2 || cfg.Display.PropertyOffset != 1 {
		t.Errorf("indentation = %d/%d, want 2/1", cfg.Display.IndentStep, cfg.Display.PropertyOffset)
	}
	if !slices.Equal(cfg.Display.Properties, []string{"name", "controller", "method", "http"}) {
		t.Errorf("Display.Properties = %v", cfg.Display.Properties)
	}
	if cfg.Display.VirtualTemplate != "«{path}»" {
		t.Errorf("Display.VirtualTemplate = %q", cfg.Display.VirtualTemplate)
	}
	if cfg.Display.NoPath != "---" || cfg.Display.EmptyPath != "-" {
		t.Errorf("markers = %q/%q, want ---/-", cfg.Display.NoPath, cfg.Display.EmptyPath)
	}
	if cfg.Display.Style != DisplayStylePlain {
		t.Errorf("Display.Style = %q, want plain", cfg.Display.Style)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI.ColorScheme = %q, want auto", cfg.UI.ColorScheme)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config should be valid: %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	tmpDir := t.TempDir()
	switch runtime.GOOS {
	case "windows":
		t.Cleanup(testutil.MustSetenv(t, "APPDATA", tmpDir))
	case "darwin":
		t.Cleanup(testutil.SetHomeDir(t, tmpDir))
	default:
		t.Cleanup(testutil.MustSetenv(t, "XDG_CONFIG_HOME", tmpDir))
	}

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if !strings.HasPrefix(dir, tmpDir) || filepath.Base(dir) != AppName {
		t.Errorf("ConfigDir() = %q, want %s/.../%s", dir, tmpDir, AppName)
	}

	SetConfigDirOverride("/custom/dir")
	if dir, _ := ConfigDir(); dir != "/custom/dir" {
		t.Errorf("ConfigDir() with override = %q", dir)
	}
	Reset()
	if dir, _ := ConfigDir(); dir == "/custom/dir" {
		t.Error("Reset() should clear the override")
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Cleanup(testutil.MustChdir(t, tmpDir))

	cfg, path, err := NewProvider().LoadWithPath(context.Background(), LoadOptions{ConfigDirPath: tmpDir})
	if err != nil {
		t.Fatalf("LoadWithPath() error = %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Cleanup(testutil.MustChdir(t, tmpDir))
	cfgPath := testutil.MustWriteFile(t, tmpDir, "config.cue", `
input: "routes/main.toml"
compile: pretty: true
display: {
	style: "tree"
	properties: ["name", "redirect"]
}
`)

	cfg, path, err := NewProvider().LoadWithPath(context.Background(), LoadOptions{ConfigDirPath: tmpDir})
	if err != nil {
		t.Fatalf("LoadWithPath() error = %v", err)
	}
	if path != cfgPath {
		t.Errorf("resolved path = %q, want %q", path, cfgPath)
	}

	want := DefaultConfig()
	want.Input = "routes/main.toml"
	want.Compile.Pretty = true
	want.Display.Style = DisplayStyleTree
	want.Display.Properties = []string{"name", "redirect"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FallsBackToWorkingDirectory(t *testing.T) {
	cfgDir := t.TempDir()
	workDir := t.TempDir()
	t.Cleanup(testutil.MustChdir(t, workDir))
	testutil.MustWriteFile(t, workDir, "config.cue", `ui: verbose: true`)

	cfg, path, err := NewProvider().LoadWithPath(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("LoadWithPath() error = %v", err)
	}
	if path != "config.cue" {
		t.Errorf("resolved path = %q, want config.cue", path)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should come from ./config.cue")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Cleanup(testutil.MustChdir(t, tmpDir))
	t.Cleanup(testutil.MustSetenv(t, "ROUTEC_DISPLAY_STYLE", "tree"))
	t.Cleanup(testutil.MustSetenv(t, "ROUTEC_COMPILE_PRETTY", "true"))

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: tmpDir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Display.Style != DisplayStyleTree {
		t.Errorf("Display.Style = %q, want tree", cfg.Display.Style)
	}
	if !cfg.Compile.Pretty {
		t.Error("Compile.Pretty should be overridden to true")
	}
}

func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Cleanup(testutil.MustChdir(t, tmpDir))
	t.Cleanup(testutil.MustSetenv(t, "ROUTEC_DISPLAY_VIRTUAL_TEMPLATE", "no placeholder"))

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: tmpDir})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Operation != "validate configuration" {
		t.Errorf("expected actionable validation error, got %v", err)
	}
}

func TestLoad_CustomPath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	cfgPath := testutil.MustWriteFile(t, tmpDir, "custom.cue", `compile: method_prefix: "on_"`)

	cfg, path, err := NewProvider().LoadWithPath(context.Background(), LoadOptions{ConfigFilePath: cfgPath})
	if err != nil {
		t.Fatalf("LoadWithPath() error = %v", err)
	}
	if path != cfgPath {
		t.Errorf("resolved path = %q, want %q", path, cfgPath)
	}
	if cfg.Compile.MethodPrefix != "on_" {
		t.Errorf("Compile.MethodPrefix = %q, want on_", cfg.Compile.MethodPrefix)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	t.Parallel()

	nonExistentPath := filepath.Join(t.TempDir(), "missing.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: nonExistentPath})
	if err == nil {
		t.Fatal("expected error for non-existent config file")
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "load configuration") {
		t.Errorf("error should contain 'load configuration', got: %s", errStr)
	}
	if !strings.Contains(errStr, nonExistentPath) {
		t.Errorf("error should contain the path, got: %s", errStr)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("expected error to be *issue.ActionableError")
	}
	if !slices.Contains(ae.Suggestions, "Verify the file path is correct") {
		t.Errorf("unexpected suggestions: %v", ae.Suggestions)
	}
}

func TestLoad_CustomPath_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax error", `this is not valid CUE syntax {{{{`, "load configuration"},
		{"unknown key", `output: "x"`, "output"},
		{"bad style", `display: style: "fancy"`, "display.style"},
		{"negative indent", `display: indent_step: -1`, "display.indent_step"},
		{"template without placeholder", `display: virtual_template: "<>"`, "display.virtual_template"},
		{"empty input", `input: ""`, "input"},
		{"bad color scheme", `ui: color_scheme: "neon"`, "ui.color_scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfgPath := testutil.MustWriteFile(t, t.TempDir(), "config.cue", tt.content)
			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: cfgPath})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateCUE_RoundTrips(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Input = "api/routes.cue"
	cfg.Display.Style = DisplayStyleTree
	cfg.Display.Properties = []string{"name", "uri"}
	cfg.UI.ColorScheme = ColorSchemeDark

	cfgPath := testutil.MustWriteFile(t, t.TempDir(), "config.cue", GenerateCUE(cfg))
	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: cfgPath})
	if err != nil {
		t.Fatalf("Load() error = %v\n%s", err, GenerateCUE(cfg))
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateDefaultConfigAndSave(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	tmpDir := t.TempDir()
	SetConfigDirOverride(filepath.Join(tmpDir, "routec"))

	path, created, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if !created {
		t.Error("first call should create the file")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, created, err = CreateDefaultConfig(); err != nil || created {
		t.Errorf("second call: created=%v err=%v, want false/nil", created, err)
	}

	cfg := DefaultConfig()
	cfg.Compile.Pretty = true
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded.Compile.Pretty {
		t.Error("saved value was not persisted")
	}
}
