package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// RewriteImagePaths resolves relative <img src> paths against sourceDir and
// turns them into file:// URLs, so a page printed from a temp file still
// finds its images. Only used on the PDF path: re-serializing through
// x/net/html lowercases custom component tags, which is harmless for print
// but not for the HTML handed to a site framework.
func RewriteImagePaths(document, sourceDir string) (string, error) {
	if sourceDir == "" {
		return document, nil
	}
	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return "", err
	}
	rewriteImages(root, absDir)

	var buf strings.Builder
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteImages(n *html.Node, dir string) {
	if n.Type == html.ElementNode && n.Data == "img" {
		for i, attr := range n.Attr {
			if attr.Key != "src" || !isRelativePath(attr.Val) {
				continue
			}
			abs := filepath.Join(dir, attr.Val)
			if !isPathUnderDir(abs, dir) {
				continue
			}
			n.Attr[i].Val = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteImages(c, dir)
	}
}

// isRelativePath reports whether path is a relative filesystem reference.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || filepath.IsAbs(path) {
		return false
	}
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "//"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// isPathUnderDir checks that absPath does not escape dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}
