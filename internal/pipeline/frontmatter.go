package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/alnah/go-mdfeedback/internal/yamlutil"
)

// Sentinel errors for frontmatter handling.
var (
	ErrFrontmatterUnclosed = errors.New("frontmatter has no closing delimiter")
	ErrFrontmatterParse    = errors.New("failed to parse frontmatter")
)

// SplitFrontmatter separates `---` delimited YAML frontmatter from the body.
// If the document does not open with a delimiter line, had is false and body
// is the whole input.
func SplitFrontmatter(content []byte) (frontmatter, body []byte, had bool, err error) {
	nl := []byte("\n")
	if bytes.HasPrefix(content, []byte("---\r\n")) {
		nl = []byte("\r\n")
	}

	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}
	rest := content[len(open):]

	// Empty block: "---\n---\n".
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}
	if bytes.Equal(rest, []byte("---")) {
		return []byte{}, nil, true, nil
	}

	closing := append(append([]byte{}, nl...), open...)
	if idx := bytes.Index(rest, closing); idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(closing):], true, nil
	}
	// Closing delimiter at end of input without trailing newline.
	if tail := append(append([]byte{}, nl...), "---"...); bytes.HasSuffix(rest, tail) {
		return rest[:len(rest)-len("---")], nil, true, nil
	}
	return nil, nil, false, ErrFrontmatterUnclosed
}

// ParseFrontmatter decodes YAML frontmatter and extracts the page title.
// A non-string title is treated as absent.
func ParseFrontmatter(frontmatter []byte) (PageContext, error) {
	fields, err := yamlutil.UnmarshalMapping(frontmatter)
	if err != nil {
		return PageContext{}, fmt.Errorf("%w: %v", ErrFrontmatterParse, err)
	}
	title, _ := fields["title"].(string)
	return PageContext{Title: title, Frontmatter: fields}, nil
}

// ExtractPage splits markdown into its page context and body.
func ExtractPage(markdown string) (PageContext, string, error) {
	fm, body, had, err := SplitFrontmatter([]byte(markdown))
	if err != nil {
		return PageContext{}, "", err
	}
	if !had {
		return PageContext{Frontmatter: map[string]any{}}, markdown, nil
	}
	page, err := ParseFrontmatter(fm)
	if err != nil {
		return PageContext{}, "", err
	}
	return page, string(body), nil
}
