package main

// Notes:
// - Test infrastructure shared by the command tests: a recording converter,
//   a pool around it, an Environment writing to buffers, and a temp tree builder.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-mdfeedback"
	"github.com/alnah/go-mdfeedback/internal/assets"
	"github.com/alnah/go-mdfeedback/internal/config"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns a fixed result.
type mockConverter struct {
	mu     sync.Mutex
	inputs []mdfeedback.Input
	html   string
	err    error
}

func newMockConverter() *mockConverter {
	return &mockConverter{html: "<h2>ok</h2>"}
}

func (m *mockConverter) Convert(_ context.Context, input mdfeedback.Input) (*mdfeedback.ConvertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	res := &mdfeedback.ConvertResult{HTML: []byte(m.html), DecoratedHeadings: 1}
	if input.PDF {
		res.PDF = []byte("%PDF-1.4 mock")
	}
	return res, nil
}

func (m *mockConverter) calls() []mdfeedback.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mdfeedback.Input(nil), m.inputs...)
}

// testPool hands out one shared converter.
type testPool struct {
	conv       PageConverter
	size       int
	acquireErr error
	opts       []mdfeedback.Option
	closed     bool
}

func newTestPool(conv PageConverter, size int) *testPool {
	return &testPool{conv: conv, size: size}
}

func (p *testPool) Acquire() (PageConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *testPool) Release(PageConverter) {}
func (p *testPool) Size() int             { return p.size }

func (p *testPool) Close() error {
	p.closed = true
	return nil
}

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// ---------------------------------------------------------------------------
// Environment and filesystem helpers
// ---------------------------------------------------------------------------

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC)

// newTestEnv returns an Environment with buffered output, a fixed clock, and
// real converter pools.
func newTestEnv() (*Environment, *syncBuffer, *syncBuffer) {
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	return &Environment{
		Now:         func() time.Time { return fixedNow },
		Stdout:      stdout,
		Stderr:      stderr,
		Logger:      newLogger(io.Discard, slog.LevelDebug),
		AssetLoader: assets.NewEmbeddedLoader(),
		Config:      config.DefaultConfig(),
		NewPool:     newConverterPool,
	}, stdout, stderr
}

// withMockPool makes env hand out pool and records the options it was built with.
func withMockPool(env *Environment, pool *testPool) {
	env.NewPool = func(_ int, opts []mdfeedback.Option) Pool {
		pool.opts = opts
		return pool
	}
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// readFile returns the file content or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
