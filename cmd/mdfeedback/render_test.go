package main

// Notes:
// - mergeFlags: we test that set flags override config and unset flags don't.
// - converterOptions: we test the options through a real converter's accessors.
// - loadConfig / loadRegistry: we test precedence, hints, and error sentinels.
// - runRender: we drive the command with a mock pool to observe the inputs
//   each page is converted with and the files written.
// These are acceptable gaps: PDF rendering through Chrome is covered in the
// root package; here the mock returns fixed PDF bytes.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdfeedback"
	"github.com/alnah/go-mdfeedback/internal/assets"
	"github.com/alnah/go-mdfeedback/internal/config"
)

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI flags over config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   renderFlags
		base    config.Config
		check   func(t *testing.T, cfg *config.Config)
		wantErr error
	}{
		{
			name:  "unset flags keep config",
			flags: renderFlags{},
			base: config.Config{
				Registry:   config.RegistryConfig{Path: "cfg.yaml"},
				Decoration: config.DecorationConfig{Component: "Rating"},
				Render:     config.RenderConfig{Workers: 2, Timeout: time.Minute},
			},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Registry.Path != "cfg.yaml" || cfg.Decoration.Component != "Rating" ||
					cfg.Render.Workers != 2 || cfg.Render.Timeout != time.Minute {
					t.Errorf("config changed: %+v", cfg)
				}
			},
		},
		{
			name: "set flags win",
			flags: renderFlags{
				registry:   "flag.yaml",
				workers:    4,
				timeout:    "90s",
				updated:    "auto",
				decoration: decorationFlags{level: 3, wrapperClass: "row", component: "Rating", attribute: "title"},
				outputMode: outputFlags{standalone: true, pdf: true},
			},
			base: config.Config{Registry: config.RegistryConfig{Path: "cfg.yaml"}},
			check: func(t *testing.T, cfg *config.Config) {
				want := config.DecorationConfig{Level: 3, WrapperClass: "row", Component: "Rating", Attribute: "title"}
				if cfg.Decoration != want {
					t.Errorf("Decoration = %+v, want %+v", cfg.Decoration, want)
				}
				if cfg.Registry.Path != "flag.yaml" || cfg.Render.Workers != 4 || cfg.Render.Timeout != 90*time.Second {
					t.Errorf("render settings not merged: %+v", cfg)
				}
				if cfg.Render.Updated != "auto" || !cfg.Render.Standalone || !cfg.Render.PDF {
					t.Errorf("output settings not merged: %+v", cfg.Render)
				}
			},
		},
		{
			name:  "no-style clears configured style",
			flags: renderFlags{assets: assetFlags{noStyle: true}},
			base:  config.Config{CSS: config.CSSConfig{Style: "plain"}},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.CSS.Disabled || cfg.CSS.Style != "" {
					t.Errorf("CSS = %+v, want disabled with no style", cfg.CSS)
				}
			},
		},
		{
			name:  "style re-enables disabled css",
			flags: renderFlags{assets: assetFlags{style: "plain", assetPath: "./assets"}},
			base:  config.Config{CSS: config.CSSConfig{Disabled: true}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.CSS.Disabled || cfg.CSS.Style != "plain" || cfg.Assets.BasePath != "./assets" {
					t.Errorf("CSS = %+v, Assets = %+v", cfg.CSS, cfg.Assets)
				}
			},
		},
		{
			name:    "unparsable timeout",
			flags:   renderFlags{timeout: "soon"},
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero timeout",
			flags:   renderFlags{timeout: "0s"},
			wantErr: ErrInvalidTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tt.base
			err := mergeFlags(&tt.flags, &cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("mergeFlags() error = %v, want %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, &cfg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConverterOptions - Config to converter options
// ---------------------------------------------------------------------------

func TestConverterOptions(t *testing.T) {
	t.Parallel()

	t.Run("empty config adds nothing", func(t *testing.T) {
		t.Parallel()

		if opts := converterOptions(config.DefaultConfig(), nil); len(opts) != 0 {
			t.Errorf("got %d options, want 0", len(opts))
		}
	})

	t.Run("decoration and registry reach the converter", func(t *testing.T) {
		t.Parallel()

		reg, err := mdfeedback.NewRegistry(map[string]mdfeedback.Header{"faq": {Title: "FAQ"}})
		if err != nil {
			t.Fatal(err)
		}
		cfg := config.DefaultConfig()
		cfg.Decoration = config.DecorationConfig{Level: 3, Component: "Rating"}
		cfg.CSS.Disabled = true
		cfg.Render.Timeout = time.Minute

		conv, err := mdfeedback.NewConverter(converterOptions(cfg, reg)...)
		if err != nil {
			t.Fatalf("NewConverter: %v", err)
		}
		defer conv.Close()

		d := conv.Decoration()
		if d.Level != 3 || d.Component != "Rating" || d.Attribute != "heading" {
			t.Errorf("Decoration = %+v, want level 3 Rating with default attribute", d)
		}
		if !conv.Registry().Contains("FAQ") || conv.Registry().Contains("Installation") {
			t.Error("converter should use the given registry")
		}
	})

	t.Run("unknown style fails converter creation", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.CSS.Style = "no-such-style"
		_, err := mdfeedback.NewConverter(converterOptions(cfg, nil)...)
		if !errors.Is(err, mdfeedback.ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveInputPath / TestResolveOutputDir - Input and output resolution
// ---------------------------------------------------------------------------

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	withDefault := &config.Config{Input: config.InputConfig{DefaultDir: "docs"}}

	tests := []struct {
		name       string
		positional []string
		cfg        *config.Config
		want       string
		wantErr    error
	}{
		{"positional wins", []string{"page.md"}, withDefault, "page.md", nil},
		{"config default", nil, withDefault, "docs", nil},
		{"nothing", nil, config.DefaultConfig(), "", ErrNoInput},
		{"too many", []string{"a.md", "b.md"}, withDefault, "", ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveInputPath(tt.positional, tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveInputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveOutputDir(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Output: config.OutputConfig{DefaultDir: "public"}}
	if got := resolveOutputDir("site", cfg); got != "site" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := resolveOutputDir("", cfg); got != "public" {
		t.Errorf("config default expected, got %q", got)
	}
	if got := resolveOutputDir("", config.DefaultConfig()); got != "" {
		t.Errorf("empty expected, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig / TestLoadRegistry - Config and registry loading
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"flag.yaml": "decoration:\n  component: Rating\n",
		"env.yaml":  "decoration:\n  component: Thumbs\n",
	})

	t.Run("no name copies env config", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv()
		env.Config.CSS.Style = "plain"
		cfg, err := loadConfig("", "", env)
		if err != nil {
			t.Fatal(err)
		}
		cfg.CSS.Style = "changed"
		if env.Config.CSS.Style != "plain" {
			t.Error("loadConfig should return a copy")
		}
	})

	t.Run("nil env config", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv()
		env.Config = nil
		cfg, err := loadConfig("", "", env)
		if err != nil || cfg == nil {
			t.Fatalf("loadConfig() = %v, %v", cfg, err)
		}
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv()
		cfg, err := loadConfig(filepath.Join(dir, "flag.yaml"), filepath.Join(dir, "env.yaml"), env)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Decoration.Component != "Rating" {
			t.Errorf("Component = %q, want Rating", cfg.Decoration.Component)
		}
	})

	t.Run("env name used without flag", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv()
		cfg, err := loadConfig("", filepath.Join(dir, "env.yaml"), env)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Decoration.Component != "Thumbs" {
			t.Errorf("Component = %q, want Thumbs", cfg.Decoration.Component)
		}
	})

	t.Run("missing name carries hint", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv()
		_, err := loadConfig("definitely-not-a-config-name", "", env)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint: use --config") {
			t.Errorf("error should carry a hint: %v", err)
		}
	})
}

func TestLoadRegistry(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"ok.yaml":       "headers:\n  faq:\n    title: FAQ\n",
		"empty.yaml":    "headers:\n  faq:\n    title: \"\"\n",
		"blankkey.yaml": "headers:\n  \" \":\n    title: FAQ\n",
	})

	reg, err := loadRegistry("")
	if reg != nil || err != nil {
		t.Errorf("empty path: got %v, %v; want nil, nil", reg, err)
	}

	reg, err = loadRegistry(filepath.Join(dir, "ok.yaml"))
	if err != nil || !reg.Contains("FAQ") {
		t.Errorf("ok.yaml: got %v, %v", reg, err)
	}

	_, err = loadRegistry(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, mdfeedback.ErrRegistryNotFound) || !strings.Contains(err.Error(), "hint:") {
		t.Errorf("missing: error = %v, want ErrRegistryNotFound with hint", err)
	}

	_, err = loadRegistry(filepath.Join(dir, "empty.yaml"))
	if !errors.Is(err, mdfeedback.ErrEmptyTitle) || !strings.Contains(err.Error(), "hint:") {
		t.Errorf("empty title: error = %v, want ErrEmptyTitle with hint", err)
	}

	_, err = loadRegistry(filepath.Join(dir, "blankkey.yaml"))
	if !errors.Is(err, mdfeedback.ErrEmptyKey) || !strings.Contains(err.Error(), "hint:") {
		t.Errorf("blank key: error = %v, want ErrEmptyKey with hint", err)
	}
	if got := exitCodeFor(err); got != ExitUsage {
		t.Errorf("blank key: exit code = %d, want %d", got, ExitUsage)
	}
}

// ---------------------------------------------------------------------------
// TestWithHint - Hints appended to page failures
// ---------------------------------------------------------------------------

func TestWithHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{"browser", mdfeedback.ErrBrowserConnect, "drop --pdf"},
		{"timeout", context.DeadlineExceeded, "--timeout"},
		{"frontmatter", mdfeedback.ErrFrontmatterUnclosed, "---"},
		{"style", mdfeedback.ErrStyleNotFound, "available: "},
		{"output dir", ErrCreateOutputDir, "writable"},
		{"no hint", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := withHint(tt.err, assets.NewEmbeddedLoader())
			if !errors.Is(got, tt.err) {
				t.Errorf("withHint() lost the original error: %v", got)
			}
			if tt.wantHint == "" {
				if got.Error() != tt.err.Error() {
					t.Errorf("unexpected hint: %v", got)
				}
				return
			}
			if !strings.Contains(got.Error(), "hint:") || !strings.Contains(got.Error(), tt.wantHint) {
				t.Errorf("withHint() = %q, want hint containing %q", got, tt.wantHint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunRender - Command behavior with a mock pool
// ---------------------------------------------------------------------------

func TestRunRender(t *testing.T) {
	t.Parallel()

	t.Run("passes page settings to the converter", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"a.md": "## A\n", "sub/b.md": "## B\n"})
		out := filepath.Join(t.TempDir(), "out")
		mock := newMockConverter()
		pool := newTestPool(mock, 2)
		env, stdout, _ := newTestEnv()
		withMockPool(env, pool)

		err := runRender(context.Background(), []string{dir, "-o", out, "--standalone", "--pdf", "--updated", "auto"}, env)
		if err != nil {
			t.Fatalf("runRender: %v", err)
		}

		calls := mock.calls()
		if len(calls) != 2 {
			t.Fatalf("got %d conversions, want 2", len(calls))
		}
		for _, in := range calls {
			if !in.Standalone || !in.PDF || in.Updated != "2024-03-09" {
				t.Errorf("input = %+v, want standalone PDF updated 2024-03-09", in)
			}
			if !filepath.IsAbs(in.SourceDir) {
				t.Errorf("SourceDir = %q, want absolute", in.SourceDir)
			}
		}
		for _, p := range []string{"a.html", "a.pdf", "sub/b.html", "sub/b.pdf"} {
			if _, err := os.Stat(filepath.Join(out, p)); err != nil {
				t.Errorf("expected %s: %v", p, err)
			}
		}
		if !pool.closed {
			t.Error("pool should be closed after the run")
		}
		if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("quiet prints nothing on success", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"a.md": "## A\n", "b.md": "## B\n"})
		env, stdout, _ := newTestEnv()
		withMockPool(env, newTestPool(newMockConverter(), 1))

		if err := runRender(context.Background(), []string{"-q", dir}, env); err != nil {
			t.Fatal(err)
		}
		if stdout.String() != "" {
			t.Errorf("stdout = %q, want empty", stdout.String())
		}
	})

	t.Run("converter failure becomes the run error", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"a.md": "## A\n"})
		mock := newMockConverter()
		mock.err = mdfeedback.ErrBrowserConnect
		env, _, stderr := newTestEnv()
		withMockPool(env, newTestPool(mock, 1))

		err := runRender(context.Background(), []string{dir}, env)
		if !errors.Is(err, mdfeedback.ErrBrowserConnect) {
			t.Fatalf("error = %v, want ErrBrowserConnect", err)
		}
		if exitCodeFor(err) != ExitBrowser {
			t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitBrowser)
		}
		if !strings.Contains(stderr.String(), "FAILED") {
			t.Errorf("stderr = %q, want FAILED line", stderr.String())
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"readme.txt": "x"})
		env, _, _ := newTestEnv()
		withMockPool(env, newTestPool(newMockConverter(), 1))

		if err := runRender(context.Background(), []string{dir}, env); !errors.Is(err, ErrNoMarkdownFiles) {
			t.Errorf("error = %v, want ErrNoMarkdownFiles", err)
		}
	})

	t.Run("decoration flags reach pool options", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"a.md": "## A\n"})
		pool := newTestPool(newMockConverter(), 1)
		env, _, _ := newTestEnv()
		withMockPool(env, pool)

		if err := runRender(context.Background(), []string{dir, "--component", "Rating", "--no-style"}, env); err != nil {
			t.Fatal(err)
		}
		if len(pool.opts) != 2 {
			t.Errorf("got %d options, want decoration and no-style", len(pool.opts))
		}
	})
}
