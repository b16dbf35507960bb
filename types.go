package mdfeedback

import (
	"time"

	"github.com/alnah/go-mdfeedback/internal/pipeline"
)

// Input contains conversion parameters.
type Input struct {
	Markdown   string // Markdown content, optionally with YAML frontmatter
	Title      string // Page title (optional, overrides frontmatter title)
	Standalone bool   // Wrap the fragment into a full HTML document
	CSS        string // Extra CSS appended after the style (standalone only)
	PDF        bool   // Also render a PDF of the standalone document
	SourceDir  string // Directory relative image paths resolve against (PDF only)
	Updated    string // Last-updated date shown in standalone pages (optional)
}

// ConvertResult contains the output of a successful conversion.
type ConvertResult struct {
	HTML              []byte         // HTML fragment, or full document when standalone
	PDF               []byte         // PDF bytes, nil unless Input.PDF
	Title             string         // Page title used for the registry check
	Frontmatter       map[string]any // Decoded frontmatter, never nil
	DecoratedHeadings int            // Headings that received the feedback widget
}

// Decoration describes the markup placed around decorated headings.
// Zero fields take the defaults: level 2, class "flex items-center gap-2",
// a <Feedback> component and a "heading" attribute.
type Decoration = pipeline.Decoration

// DefaultDecoration returns the default decoration.
func DefaultDecoration() Decoration {
	return pipeline.DefaultDecoration()
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	styleInput    string // name, file path, or CSS content
	noStyle       bool
	resolvedStyle string
	assetPath     string
	registry      *Registry
	registryFile  string
	decoration    Decoration
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdfeedback: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithRegistry sets the header registry. Takes precedence over WithRegistryFile.
func WithRegistry(r *Registry) Option {
	return func(c *Converter) {
		c.cfg.registry = r
	}
}

// WithRegistryFile loads the header registry from a YAML file.
func WithRegistryFile(path string) Option {
	return func(c *Converter) {
		c.cfg.registryFile = path
	}
}

// WithDecoration sets the decoration markup. Zero fields keep their defaults.
func WithDecoration(d Decoration) Option {
	return func(c *Converter) {
		c.cfg.decoration = d
	}
}

// WithStyle sets the CSS style for standalone documents.
// Accepts a style name ("default", "plain"), a file path ("./custom.css"),
// or CSS content ("body { ... }").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithoutStyle disables the built-in stylesheet for standalone documents.
func WithoutStyle() Option {
	return func(c *Converter) {
		c.cfg.noStyle = true
	}
}

// WithAssetPath sets a directory holding styles/, templates/ and registry/
// overrides. Missing assets fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithPDFRenderer replaces the headless Chrome renderer.
func WithPDFRenderer(r PDFRenderer) Option {
	return func(c *Converter) {
		c.pdf = r
	}
}
