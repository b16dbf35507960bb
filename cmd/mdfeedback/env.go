package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-mdfeedback"
	"github.com/alnah/go-mdfeedback/internal/assets"
	"github.com/alnah/go-mdfeedback/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, logging, and converter pools.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	AssetLoader assets.AssetLoader
	Config      *config.Config // Base config when --config is not given
	NewPool     func(size int, opts []mdfeedback.Option) Pool
}

// DefaultEnv returns production environment with embedded assets.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Logger:      newLogger(os.Stderr, slog.LevelWarn),
		AssetLoader: assets.NewEmbeddedLoader(),
		Config:      config.DefaultConfig(),
		NewPool:     newConverterPool,
	}
}

// newLogger returns a text logger writing to w at the given level.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
