package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Decoration defaults.
const (
	DefaultDecoratedLevel = 2
	DefaultWrapperClass   = "flex items-center gap-2"
	DefaultComponent      = "Feedback"
	DefaultAttribute      = "heading"
)

// headingRendererPriority must be lower than goldmark's HTML renderer (1000)
// so the decorator's registration for ast.KindHeading wins.
const headingRendererPriority = 500

// pageMetaKey is the ast.Document meta key holding the PageContext.
const pageMetaKey = "mdfeedback:page"

// ErrInvalidDecoration indicates decoration settings that cannot produce valid markup.
var ErrInvalidDecoration = errors.New("invalid heading decoration")

// TitleSet answers whether a page title is registered.
type TitleSet interface {
	Contains(title string) bool
}

// Decoration describes the markup placed around decorated headings.
type Decoration struct {
	Level        int    // heading level to decorate (1-6)
	WrapperClass string // class attribute of the wrapping <div>
	Component    string // feedback component tag name
	Attribute    string // component attribute carrying the heading text
}

// DefaultDecoration returns the level-2 flex wrapper with a <Feedback> component.
func DefaultDecoration() Decoration {
	return Decoration{
		Level:        DefaultDecoratedLevel,
		WrapperClass: DefaultWrapperClass,
		Component:    DefaultComponent,
		Attribute:    DefaultAttribute,
	}
}

// WithDefaults fills zero fields from DefaultDecoration.
func (d Decoration) WithDefaults() Decoration {
	def := DefaultDecoration()
	if d.Level == 0 {
		d.Level = def.Level
	}
	if d.WrapperClass == "" {
		d.WrapperClass = def.WrapperClass
	}
	if d.Component == "" {
		d.Component = def.Component
	}
	if d.Attribute == "" {
		d.Attribute = def.Attribute
	}
	return d
}

// Validate checks that the decoration yields well-formed markup.
func (d Decoration) Validate() error {
	if d.Level < 1 || d.Level > 6 {
		return fmt.Errorf("%w: level must be between 1 and 6, got %d", ErrInvalidDecoration, d.Level)
	}
	if !isMarkupName(d.Component) {
		return fmt.Errorf("%w: component %q is not a valid tag name", ErrInvalidDecoration, d.Component)
	}
	if !isMarkupName(d.Attribute) {
		return fmt.Errorf("%w: attribute %q is not a valid attribute name", ErrInvalidDecoration, d.Attribute)
	}
	if strings.ContainsAny(d.WrapperClass, `"<>`) {
		return fmt.Errorf("%w: wrapper class %q contains markup characters", ErrInvalidDecoration, d.WrapperClass)
	}
	return nil
}

// isMarkupName accepts ASCII letters first, then letters, digits, '-', '_', ':' or '.'.
func isMarkupName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_' || r == ':' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// PageContext is the per-page metadata available to the decorator.
type PageContext struct {
	Title       string
	Frontmatter map[string]any
	Updated     string // overrides the frontmatter "updated" field in standalone pages
}

// AttachPage stores page on the document so node renderers can read it.
func AttachPage(doc *ast.Document, page PageContext) {
	doc.AddMeta(pageMetaKey, page)
}

// PageOf returns the PageContext attached to the document owning n.
func PageOf(n ast.Node) (PageContext, bool) {
	for p := n; p != nil; p = p.Parent() {
		doc, ok := p.(*ast.Document)
		if !ok {
			continue
		}
		page, ok := doc.Meta()[pageMetaKey].(PageContext)
		return page, ok
	}
	return PageContext{}, false
}

// HeadingText returns the raw source text of a heading, the way it was
// written in markdown (inline markup included, trailing ATX #s excluded).
func HeadingText(n *ast.Heading, source []byte) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		seg := lines.At(i)
		b.Write(bytes.TrimRight(seg.Value(source), "\r\n"))
	}
	return strings.TrimSpace(b.String())
}

// HeadingDecorator renders headings, wrapping the configured level on
// registered pages with a flex container followed by a feedback component:
//
//	<div class="flex items-center gap-2"><h2 id="install">Install</h2>
//	<Feedback heading="Install" /></div>
//
// Every other heading goes through goldmark's default HTML rendering. The
// decorator keeps no state between calls; open and close recompute the same
// predicate from the heading node and its document.
type HeadingDecorator struct {
	titles     TitleSet
	decoration Decoration
	fallback   renderer.NodeRendererFunc
}

// renderFuncs captures node renderer registrations.
type renderFuncs map[ast.NodeKind]renderer.NodeRendererFunc

func (r renderFuncs) Register(kind ast.NodeKind, fn renderer.NodeRendererFunc) {
	r[kind] = fn
}

// NewHeadingDecorator creates a decorator whose default rendering is
// goldmark's HTML heading renderer configured with htmlOpts.
func NewHeadingDecorator(titles TitleSet, decoration Decoration, htmlOpts ...html.Option) *HeadingDecorator {
	funcs := renderFuncs{}
	html.NewRenderer(htmlOpts...).RegisterFuncs(funcs)
	return &HeadingDecorator{
		titles:     titles,
		decoration: decoration,
		fallback:   funcs[ast.KindHeading],
	}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (d *HeadingDecorator) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, d.renderHeading)
}

// Extend implements goldmark.Extender.
func (d *HeadingDecorator) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(d, headingRendererPriority),
	))
}

// Decorates reports whether a heading of the given level on page is decorated.
func (d *HeadingDecorator) Decorates(page PageContext, level int) bool {
	if level < 1 || level > 6 || level != d.decoration.Level {
		return false
	}
	return d.titles != nil && d.titles.Contains(page.Title)
}

// OpenMarkup returns the markup written before a decorated heading.
func (d *HeadingDecorator) OpenMarkup() string {
	return `<div class="` + string(util.EscapeHTML([]byte(d.decoration.WrapperClass))) + `">`
}

// CloseMarkup returns the markup written after a decorated heading's closing tag.
func (d *HeadingDecorator) CloseMarkup(text string) string {
	return "<" + d.decoration.Component + " " + d.decoration.Attribute + `="` +
		string(util.EscapeHTML([]byte(text))) + `" />` + "</div>"
}

func (d *HeadingDecorator) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n, ok := node.(*ast.Heading)
	if !ok {
		return d.fallback(w, source, node, entering)
	}
	page, _ := PageOf(node)
	if !d.Decorates(page, n.Level) {
		return d.fallback(w, source, node, entering)
	}

	if entering {
		_, _ = w.WriteString(d.OpenMarkup())
		return d.fallback(w, source, node, entering)
	}

	status, err := d.fallback(w, source, node, entering)
	if err != nil {
		return status, err
	}
	_, _ = w.WriteString(d.CloseMarkup(HeadingText(n, source)))
	return status, nil
}

// CountDecorated returns how many headings under root the decorator wraps.
func (d *HeadingDecorator) CountDecorated(root ast.Node) int {
	page, _ := PageOf(root)
	count := 0
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			if d.Decorates(page, h.Level) {
				count++
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return count
}

// Compile-time interface checks.
var (
	_ renderer.NodeRenderer = (*HeadingDecorator)(nil)
	_ goldmark.Extender     = (*HeadingDecorator)(nil)
)
