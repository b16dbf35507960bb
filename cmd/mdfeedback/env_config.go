package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdfeedback/internal/config"
)

// envPrefix marks the CLI's environment variables.
const envPrefix = "MDFEEDBACK_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDFEEDBACK_CONFIG: config file path
	Registry   string        // MDFEEDBACK_REGISTRY: header registry file
	Style      string        // MDFEEDBACK_STYLE: CSS style name or path
	Timeout    time.Duration // MDFEEDBACK_TIMEOUT: PDF generation timeout
	Workers    int           // MDFEEDBACK_WORKERS: parallel workers
	InputDir   string        // MDFEEDBACK_INPUT_DIR: default input directory
	OutputDir  string        // MDFEEDBACK_OUTPUT_DIR: default output directory
	Updated    string        // MDFEEDBACK_UPDATED: last-updated date
}

// knownEnvVars lists valid MDFEEDBACK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDFEEDBACK_CONFIG":     true,
	"MDFEEDBACK_REGISTRY":   true,
	"MDFEEDBACK_STYLE":      true,
	"MDFEEDBACK_TIMEOUT":    true,
	"MDFEEDBACK_WORKERS":    true,
	"MDFEEDBACK_INPUT_DIR":  true,
	"MDFEEDBACK_OUTPUT_DIR": true,
	"MDFEEDBACK_UPDATED":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDFEEDBACK_CONFIG"),
		Registry:   os.Getenv("MDFEEDBACK_REGISTRY"),
		Style:      os.Getenv("MDFEEDBACK_STYLE"),
		InputDir:   os.Getenv("MDFEEDBACK_INPUT_DIR"),
		OutputDir:  os.Getenv("MDFEEDBACK_OUTPUT_DIR"),
		Updated:    os.Getenv("MDFEEDBACK_UPDATED"),
	}

	if timeout := os.Getenv("MDFEEDBACK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MDFEEDBACK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// unknownEnvVars returns unrecognized MDFEEDBACK_* variable names from environ.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// warnUnknownEnvVars logs warnings for unrecognized MDFEEDBACK_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, name := range unknownEnvVars(os.Environ()) {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Registry != "" && cfg.Registry.Path == "" {
		cfg.Registry.Path = env.Registry
	}
	if env.Style != "" && cfg.CSS.Style == "" && !cfg.CSS.Disabled {
		cfg.CSS.Style = env.Style
	}
	if env.Timeout > 0 && cfg.Render.Timeout == 0 {
		cfg.Render.Timeout = env.Timeout
	}
	if env.Workers > 0 && cfg.Render.Workers == 0 {
		cfg.Render.Workers = env.Workers
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Updated != "" && cfg.Render.Updated == "" {
		cfg.Render.Updated = env.Updated
	}
}
