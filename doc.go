// Package mdfeedback renders documentation pages from Markdown to HTML and
// attaches a feedback widget to the sections of registered pages.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := mdfeedback.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdfeedback.Input{
//	    Markdown: "---\ntitle: Installation\n---\n## Requirements\n",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.HTML))
//
// # Heading Decoration
//
// A page is decorated when its title is in the header registry. Each of its
// level-2 headings is wrapped in a flex container and followed by a
// feedback component carrying the heading text:
//
//	<div class="flex items-center gap-2"><h2 id="requirements">Requirements</h2>
//	<Feedback heading="Requirements" /></div>
//
// Headings at other levels, and every heading of unregistered pages, render
// exactly as goldmark renders them. The level, wrapper class, component name
// and attribute name are set with WithDecoration.
//
// # Header Registry
//
// The registry is a YAML document mapping page keys to records with at
// least a title:
//
//	headers:
//	  install:
//	    title: Installation
//
// A default registry is embedded. Use WithRegistryFile or WithRegistry to
// supply your own. Title matching is exact and case-sensitive.
//
// # Conversion Pipeline
//
//  1. Frontmatter extraction (page title and metadata)
//  2. Markdown preprocessing (line normalization, ==highlight== syntax)
//  3. Markdown to HTML via goldmark (GFM, footnotes, highlighting, heading decoration)
//  4. Optional standalone document (page template and CSS)
//  5. Optional PDF rendering via headless Chrome (go-rod)
//
// # Parallel Processing
//
// Convert is safe for concurrent use. For batch PDF export, ConverterPool
// hands out converters that each own a browser:
//
//	pool := mdfeedback.NewConverterPool(mdfeedback.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
package mdfeedback
