package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Rendered is the output of one markdown render.
type Rendered struct {
	HTML              string // HTML fragment
	DecoratedHeadings int
}

// HTMLConverter abstracts Markdown to HTML conversion for one page.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string, page PageContext) (*Rendered, error)
}

// GoldmarkConverter converts Markdown to HTML using goldmark, decorating
// headings of registered pages. Safe for concurrent use: page data travels
// with each parsed document, not on the converter.
type GoldmarkConverter struct {
	md        goldmark.Markdown
	decorator *HeadingDecorator
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions,
// ==mark== highlights, syntax highlighting and the heading decorator.
func NewGoldmarkConverter(titles TitleSet, decoration Decoration) *GoldmarkConverter {
	// WithUnsafe is not set: raw HTML in sources is dropped.
	decorator := NewHeadingDecorator(titles, decoration, html.WithXHTML())

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
			Marks,
			decorator,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	return &GoldmarkConverter{md: md, decorator: decorator}
}

// Decorator returns the heading decorator used by the converter.
func (c *GoldmarkConverter) Decorator() *HeadingDecorator {
	return c.decorator
}

// ToHTML renders content as an HTML fragment for page.
// Goldmark has no context support, so the render runs in a goroutine and
// the caller stops waiting on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string, page PageContext) (*Rendered, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		rendered *Rendered
		err      error
	}
	done := make(chan result, 1)

	go func() {
		source := []byte(content)
		node := c.md.Parser().Parse(text.NewReader(source))
		doc, ok := node.(*ast.Document)
		if !ok {
			done <- result{err: fmt.Errorf("%w: parser returned %T", ErrHTMLConversion, node)}
			return
		}
		AttachPage(doc, page)

		var buf bytes.Buffer
		if err := c.md.Renderer().Render(&buf, source, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{rendered: &Rendered{
			HTML:              buf.String(),
			DecoratedHeadings: c.decorator.CountDecorated(doc),
		}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.rendered, r.err
	}
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)
