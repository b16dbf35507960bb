package main

// Notes:
// - runTitles: we test the embedded registry, a registry file, an asset
//   directory override, and error exit codes.
// - registryFor: we test source precedence.
// These are acceptable gaps: config-file driven lookups reuse loadConfig,
// which is tested in render_test.go.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdfeedback"
	"github.com/alnah/go-mdfeedback/internal/assets"
	"github.com/alnah/go-mdfeedback/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunTitles - Registry listing
// ---------------------------------------------------------------------------

func TestRunTitles(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"headers.yaml":                 "headers:\n  faq:\n    title: FAQ\n  api:\n    title: API Reference\n",
		"assets/registry/headers.yaml": "headers:\n  ops:\n    title: Operations\n",
	})

	tests := []struct {
		name     string
		args     []string
		want     string
		wantCode int
	}{
		{"embedded", nil, "Configuration\nDeployment\nGetting Started\nInstallation\nTroubleshooting\n", ExitSuccess},
		{"registry file", []string{"-r", filepath.Join(dir, "headers.yaml")}, "API Reference\nFAQ\n", ExitSuccess},
		{"asset path", []string{"--asset-path", filepath.Join(dir, "assets")}, "Operations\n", ExitSuccess},
		{"missing registry", []string{"-r", filepath.Join(dir, "nope.yaml")}, "", ExitIO},
		{"bad flag", []string{"--nope"}, "", ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := newTestEnv()
			err := runTitles(tt.args, env)
			if code := exitCodeFor(err); code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (err: %v)", code, tt.wantCode, err)
			}
			if stdout.String() != tt.want {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.want)
			}
		})
	}
}

func TestRunTitles_Verbose(t *testing.T) {
	t.Parallel()

	env, _, stderr := newTestEnv()
	if err := runTitles([]string{"-v"}, env); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr.String(), "5 titles from 5 entries") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRegistryFor - Registry source precedence
// ---------------------------------------------------------------------------

// stubRegistryLoader serves a fixed registry document.
type stubRegistryLoader struct {
	assets.AssetLoader
	data []byte
}

func (s stubRegistryLoader) LoadRegistry(string) ([]byte, error) {
	return s.data, nil
}

func TestRegistryFor(t *testing.T) {
	t.Parallel()

	loader := stubRegistryLoader{data: []byte("headers:\n  x:\n    title: From Loader\n")}

	reg, err := registryFor(config.DefaultConfig(), loader)
	if err != nil || !reg.Contains("From Loader") {
		t.Errorf("loader registry: %v, %v", reg, err)
	}

	cfg := config.DefaultConfig()
	cfg.Assets.BasePath = filepath.Join(t.TempDir(), "missing")
	if _, err := registryFor(cfg, loader); !errors.Is(err, mdfeedback.ErrInvalidAssetPath) {
		t.Errorf("missing asset dir: error = %v, want ErrInvalidAssetPath", err)
	}

	file := filepath.Join(t.TempDir(), "r.yaml")
	if err := os.WriteFile(file, []byte("headers:\n  y:\n    title: From File\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg = config.DefaultConfig()
	cfg.Registry.Path = file
	reg, err = registryFor(cfg, loader)
	if err != nil || !reg.Contains("From File") || reg.Contains("From Loader") {
		t.Errorf("registry file should win: %v, %v", reg, err)
	}
}
