package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdfeedback/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// appConfigDir is the directory under the user config dir searched by name.
const appConfigDir = "go-mdfeedback"

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxClassLength     = 200 // wrapper class attribute
	MaxComponentLength = 64  // component and attribute names
	MaxStyleLength     = 100
	MaxDateLength      = 100
)

// Config holds all configuration for rendering a documentation tree.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Registry   RegistryConfig   `yaml:"registry"`
	Decoration DecorationConfig `yaml:"decoration"`
	CSS        CSSConfig        `yaml:"css"`
	Assets     AssetsConfig     `yaml:"assets"`
	Render     RenderConfig     `yaml:"render"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// RegistryConfig locates the header registry.
type RegistryConfig struct {
	Path string `yaml:"path"` // Empty = embedded registry
}

// DecorationConfig overrides the heading decoration. Zero values keep defaults.
type DecorationConfig struct {
	Level        int    `yaml:"level"`
	WrapperClass string `yaml:"wrapperClass"`
	Component    string `yaml:"component"`
	Attribute    string `yaml:"attribute"`
}

// CSSConfig defines CSS styling options for standalone output.
type CSSConfig struct {
	Style    string `yaml:"style"`    // Style name, file path, or CSS (empty = default)
	Disabled bool   `yaml:"disabled"` // No stylesheet at all
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// RenderConfig defines output format options.
type RenderConfig struct {
	Standalone bool          `yaml:"standalone"`
	PDF        bool          `yaml:"pdf"`
	Workers    int           `yaml:"workers"` // 0 = auto
	Timeout    time.Duration `yaml:"timeout"` // 0 = library default
	Updated    string        `yaml:"updated"` // "auto", "auto:FORMAT", or a literal date
}

// Validate checks values a config file can get wrong.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"registry.path", c.Registry.Path, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"css.style", c.CSS.Style, MaxStyleLength},
		{"decoration.wrapperClass", c.Decoration.WrapperClass, MaxClassLength},
		{"decoration.component", c.Decoration.Component, MaxComponentLength},
		{"decoration.attribute", c.Decoration.Attribute, MaxComponentLength},
		{"render.updated", c.Render.Updated, MaxDateLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Decoration.Level != 0 && (c.Decoration.Level < 1 || c.Decoration.Level > 6) {
		return fmt.Errorf("%w: decoration.level must be between 1 and 6, got %d", ErrInvalidField, c.Decoration.Level)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("%w: render.workers must not be negative, got %d", ErrInvalidField, c.Render.Workers)
	}
	if c.Render.Timeout < 0 {
		return fmt.Errorf("%w: render.timeout must not be negative, got %s", ErrInvalidField, c.Render.Timeout)
	}
	if c.CSS.Disabled && c.CSS.Style != "" {
		return fmt.Errorf("%w: css.style and css.disabled are mutually exclusive", ErrInvalidField)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that renders HTML fragments with the
// embedded registry and default decoration.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appConfigDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations:
// the current directory, then ~/.config/go-mdfeedback/, .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
