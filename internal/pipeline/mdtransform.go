package pipeline

import (
	"context"
	"strings"
)

// MarkdownPreprocessor prepares a markdown body for conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor turns CRLF and lone CR line endings into LF.
// Anything that depends on markdown structure (==mark==, code blocks) is
// left to goldmark, which sees the body untouched otherwise.
type CommonMarkPreprocessor struct{}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// PreprocessMarkdown normalizes line endings. A canceled context returns
// content unchanged.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return lineEndings.Replace(content)
}

// Compile-time interface check.
var _ MarkdownPreprocessor = (*CommonMarkPreprocessor)(nil)
