package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// ErrTemplateRender indicates the page template failed to parse or execute.
var ErrTemplateRender = errors.New("page template rendering failed")

// defaultLang is used when the page frontmatter has no lang field.
const defaultLang = "en"

// DocumentData is what the page template sees.
type DocumentData struct {
	Title   string
	Lang    string
	Updated string
	Body    template.HTML
}

// DocumentWrapper turns an HTML fragment into a standalone page.
type DocumentWrapper interface {
	Wrap(ctx context.Context, fragment string, page PageContext) (string, error)
}

// TemplateWrapper wraps fragments with an html/template page template.
type TemplateWrapper struct {
	tmpl *template.Template
}

// NewTemplateWrapper parses the page template.
func NewTemplateWrapper(source string) (*TemplateWrapper, error) {
	tmpl, err := template.New("page").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return &TemplateWrapper{tmpl: tmpl}, nil
}

// Wrap executes the template with fragment as the page body.
func (w *TemplateWrapper) Wrap(ctx context.Context, fragment string, page PageContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lang, _ := page.Frontmatter["lang"].(string)
	if lang == "" {
		lang = defaultLang
	}
	title := page.Title
	if title == "" {
		title = "Document"
	}

	var buf bytes.Buffer
	err := w.tmpl.Execute(&buf, DocumentData{
		Title:   title,
		Lang:    lang,
		Updated: updatedDate(page),
		Body:    template.HTML(fragment), // #nosec G203 -- goldmark output, raw HTML disabled
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// updatedDate picks the page's last-updated date. YAML timestamps decode to
// time.Time and print as YYYY-MM-DD.
func updatedDate(page PageContext) string {
	if page.Updated != "" {
		return page.Updated
	}
	switch v := page.Frontmatter["updated"].(type) {
	case string:
		return v
	case time.Time:
		return v.Format(time.DateOnly)
	}
	return ""
}

// InjectCSS inserts a <style> block before </head>, after <body>, or at the
// start of the document, whichever is found first.
func InjectCSS(htmlContent, css string) string {
	if css == "" {
		return htmlContent
	}

	style := "<style>" + sanitizeCSS(css) + "</style>"
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + style + htmlContent[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(htmlContent[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return htmlContent[:pos] + style + htmlContent[pos:]
		}
	}
	return style + htmlContent
}

// sanitizeCSS keeps CSS from closing the surrounding <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Compile-time interface check.
var _ DocumentWrapper = (*TemplateWrapper)(nil)
