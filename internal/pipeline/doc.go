// Package pipeline implements the markdown-to-HTML stages for documentation
// pages:
//   - frontmatter extraction (page title and metadata)
//   - markdown preprocessing (line endings, ==highlight== syntax)
//   - goldmark conversion with GFM, syntax highlighting and the heading
//     decorator that adds feedback widgets to registered pages
//   - standalone page wrapping and CSS injection
//   - image path rewriting for printed output
//
// PDF printing lives in the root package; this package only produces HTML.
package pipeline
