package main

// Notes:
// - discoverFiles: we test single files, nested directories, hidden
//   directory skipping, and extension filtering.
// - resolveOutputPath: we test every output placement rule.
// - validateWorkers / validateMarkdownExtension / pdfOutputPath: boundary values.
// These are acceptable gaps: WalkDir error propagation is not simulated.

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/alnah/go-mdfeedback"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Markdown discovery
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"index.md":                "# Home",
		"guide/install.md":        "## A",
		"guide/deep/faq.markdown": "## B",
		"guide/logo.png":          "png",
		".cache/skip.md":          "## C",
		"notes.txt":               "x",
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles(dir, "")
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		for _, f := range files {
			rel, _ := filepath.Rel(dir, f.InputPath)
			got = append(got, filepath.ToSlash(rel))
		}
		sort.Strings(got)
		want := []string{"guide/deep/faq.markdown", "guide/install.md", "index.md"}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		in := filepath.Join(dir, "guide", "install.md")
		files, err := discoverFiles(in, "")
		if err != nil {
			t.Fatal(err)
		}
		if len(files) != 1 || files[0].OutputPath != filepath.Join(dir, "guide", "install.html") {
			t.Errorf("files = %+v", files)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(dir, "notes.txt"), "")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		if _, err := discoverFiles(filepath.Join(dir, "nope"), ""); err == nil {
			t.Error("expected error for missing path")
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output placement
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{"next to source", "docs/install.md", "", "", "docs/install.html"},
		{"markdown extension", "docs/faq.markdown", "", "", "docs/faq.html"},
		{"explicit html file", "docs/install.md", "out/page.html", "", "out/page.html"},
		{"flat output dir", "docs/install.md", "site", "", "site/install.html"},
		{"mirrors tree", "docs/guide/install.md", "site", "docs", "site/guide/install.html"},
		{"root of tree", "docs/index.md", "site", "docs", "site/index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(filepath.FromSlash(tt.input), filepath.FromSlash(tt.outputDir), filepath.FromSlash(tt.baseDir))
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers / TestValidateMarkdownExtension / TestPDFOutputPath
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{1, false},
		{mdfeedback.MaxPoolSize, false},
		{mdfeedback.MaxPoolSize + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) should wrap ErrInvalidWorkerCount", tt.n)
		}
	}
}

func TestValidateMarkdownExtension(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"a.md", "b.markdown", "C.MD"} {
		if err := validateMarkdownExtension(ok); err != nil {
			t.Errorf("validateMarkdownExtension(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"a.txt", "noext", "a.md.bak"} {
		if err := validateMarkdownExtension(bad); !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("validateMarkdownExtension(%q) = %v, want ErrInvalidExtension", bad, err)
		}
	}
}

func TestPDFOutputPath(t *testing.T) {
	t.Parallel()

	if got := pdfOutputPath(filepath.FromSlash("site/install.html")); got != filepath.FromSlash("site/install.pdf") {
		t.Errorf("pdfOutputPath() = %q", got)
	}
}
