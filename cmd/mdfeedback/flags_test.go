package main

// Notes:
// - parseRenderFlags / parseTitlesFlags: we test defaults, short and long
//   forms, interspersed positionals, and rejection of unknown flags.
// These are acceptable gaps: pflag itself is not under test.

import (
	"errors"
	"io"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseRenderFlags - Render command flags
// ---------------------------------------------------------------------------

func TestParseRenderFlags(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f, args, err := parseRenderFlags([]string{"docs"}, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(args) != 1 || args[0] != "docs" {
			t.Errorf("args = %v, want [docs]", args)
		}
		if f.output != "" || f.workers != 0 || f.watch || f.outputMode.pdf || f.decoration.level != 0 {
			t.Errorf("unexpected non-default flags: %+v", f)
		}
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		f, args, err := parseRenderFlags([]string{
			"-o", "site", "docs", "-c", "team", "-r", "headers.yaml", "-w", "3", "-t", "45s",
			"--updated", "auto:iso", "--watch", "-q", "-v",
			"--level", "3", "--wrapper-class", "row", "--component", "Rating", "--attribute", "title",
			"--style", "plain", "--asset-path", "./assets", "--no-style",
			"--standalone", "--pdf",
		}, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(args) != 1 || args[0] != "docs" {
			t.Errorf("args = %v, want [docs]", args)
		}

		checks := []struct {
			name string
			got  any
			want any
		}{
			{"output", f.output, "site"},
			{"config", f.common.config, "team"},
			{"registry", f.registry, "headers.yaml"},
			{"workers", f.workers, 3},
			{"timeout", f.timeout, "45s"},
			{"updated", f.updated, "auto:iso"},
			{"watch", f.watch, true},
			{"quiet", f.common.quiet, true},
			{"verbose", f.common.verbose, true},
			{"level", f.decoration.level, 3},
			{"wrapper class", f.decoration.wrapperClass, "row"},
			{"component", f.decoration.component, "Rating"},
			{"attribute", f.decoration.attribute, "title"},
			{"style", f.assets.style, "plain"},
			{"asset path", f.assets.assetPath, "./assets"},
			{"no style", f.assets.noStyle, true},
			{"standalone", f.outputMode.standalone, true},
			{"pdf", f.outputMode.pdf, true},
		}
		for _, c := range checks {
			if c.got != c.want {
				t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
			}
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		if _, _, err := parseRenderFlags([]string{"--author", "x"}, io.Discard); err == nil {
			t.Error("expected error for unknown flag")
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		if _, _, err := parseRenderFlags([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want flag.ErrHelp", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestParseTitlesFlags - Titles command flags
// ---------------------------------------------------------------------------

func TestParseTitlesFlags(t *testing.T) {
	t.Parallel()

	f, err := parseTitlesFlags([]string{"-r", "headers.yaml", "--asset-path", "a", "-v"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.registry != "headers.yaml" || f.assetPath != "a" || !f.common.verbose {
		t.Errorf("unexpected flags: %+v", f)
	}

	if _, err := parseTitlesFlags([]string{"--pdf"}, io.Discard); err == nil {
		t.Error("titles should reject render-only flags")
	}
}
