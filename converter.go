package mdfeedback

import (
	"context"
	"fmt"
	"os"

	"github.com/alnah/go-mdfeedback/internal/assets"
	"github.com/alnah/go-mdfeedback/internal/fileutil"
	"github.com/alnah/go-mdfeedback/internal/pipeline"
	"github.com/alnah/go-mdfeedback/internal/registry"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.DocumentWrapper      = (*pipeline.TemplateWrapper)(nil)
)

// Converter renders markdown pages to HTML, decorating the level-2 headings
// of registered pages with a feedback widget.
// Create with NewConverter, use Convert, and Close when done.
// Convert is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	registry      *Registry
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	wrapper       pipeline.DocumentWrapper
	pdf           PDFRenderer
}

// NewConverter creates a Converter. Without options it uses the embedded
// registry, the default decoration and the default style.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{timeout: defaultTimeout},
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveRegistry(); err != nil {
		return nil, err
	}

	decoration := c.cfg.decoration.WithDefaults()
	if err := decoration.Validate(); err != nil {
		return nil, err
	}
	c.cfg.decoration = decoration

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	tmpl, err := c.assetLoader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	if c.wrapper, err = pipeline.NewTemplateWrapper(tmpl); err != nil {
		return nil, fmt.Errorf("initializing page template: %w", err)
	}

	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter(c.registry, decoration)
	}
	if c.pdf == nil {
		c.pdf = newRodRenderer(c.cfg.timeout)
	}

	return c, nil
}

// Registry returns the header registry the converter decorates against.
func (c *Converter) Registry() *Registry {
	return c.registry
}

// Decoration returns the effective decoration.
func (c *Converter) Decoration() Decoration {
	return c.cfg.decoration
}

// Convert renders one page. The page title comes from Input.Title, or the
// frontmatter title when Input.Title is empty.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	page, body, err := pipeline.ExtractPage(input.Markdown)
	if err != nil {
		return nil, fmt.Errorf("reading frontmatter: %w", err)
	}
	if input.Title != "" {
		page.Title = input.Title
	}
	page.Updated = input.Updated

	body = c.preprocessor.PreprocessMarkdown(ctx, body)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rendered, err := c.htmlConverter.ToHTML(ctx, body, page)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	htmlContent := rendered.HTML

	res := &ConvertResult{
		Title:             page.Title,
		Frontmatter:       page.Frontmatter,
		DecoratedHeadings: rendered.DecoratedHeadings,
	}

	if !input.Standalone && !input.PDF {
		res.HTML = []byte(htmlContent)
		return res, nil
	}

	document, err := c.wrapper.Wrap(ctx, htmlContent, page)
	if err != nil {
		return nil, fmt.Errorf("wrapping document: %w", err)
	}
	document = pipeline.InjectCSS(document, c.stylesheet(input.CSS))

	if input.Standalone {
		res.HTML = []byte(document)
	} else {
		res.HTML = []byte(htmlContent)
	}

	if input.PDF {
		if res.PDF, err = c.toPDF(ctx, document, input.SourceDir); err != nil {
			return nil, fmt.Errorf("converting to PDF: %w", err)
		}
	}
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdf != nil {
		return c.pdf.Close()
	}
	return nil
}

// toPDF prints a standalone document through the PDF renderer.
func (c *Converter) toPDF(ctx context.Context, document, sourceDir string) ([]byte, error) {
	document, err := pipeline.RewriteImagePaths(document, sourceDir)
	if err != nil {
		return nil, fmt.Errorf("rewriting image paths: %w", err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(document, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.pdf.RenderFromFile(ctx, tmpPath)
}

// stylesheet combines the converter style with per-input CSS.
// Input CSS comes last so it can override.
func (c *Converter) stylesheet(extra string) string {
	css := c.cfg.resolvedStyle
	if extra != "" {
		if css != "" {
			css += "\n"
		}
		css += extra
	}
	return css
}

// resolveRegistry picks the registry: explicit, from file, or embedded.
func (c *Converter) resolveRegistry() error {
	switch {
	case c.cfg.registry != nil:
		c.registry = c.cfg.registry
	case c.cfg.registryFile != "":
		r, err := registry.Load(c.cfg.registryFile)
		if err != nil {
			return err
		}
		c.registry = r
	default:
		r, err := loadRegistryAsset(c.assetLoader)
		if err != nil {
			return err
		}
		c.registry = r
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (c *Converter) resolveStyle() error {
	if c.cfg.noStyle {
		c.cfg.resolvedStyle = ""
		return nil
	}

	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}
