// Package registry holds the header registry: the set of page titles whose
// level-2 headings receive a feedback widget.
//
// A registry is built once from a YAML document and is read-only afterwards,
// so a single instance can be shared by any number of concurrent renders.
//
// Document format:
//
//	headers:
//	  install:
//	    title: Installation
//	    sidebar: guide
//	  config:
//	    title: Configuration
package registry

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alnah/go-mdfeedback/internal/yamlutil"
)

// Sentinel errors for registry operations.
var (
	ErrRegistryNotFound = errors.New("header registry not found")
	ErrRegistryParse    = errors.New("failed to parse header registry")
	ErrEmptyTitle       = errors.New("header entry has no title")
	ErrEmptyKey         = errors.New("header entry has an empty key")
)

// Header is one registry entry. Fields other than title are kept as-is and
// never interpreted.
type Header struct {
	Key    string
	Title  string
	Fields map[string]any
}

// Registry maps page keys to headers and answers title membership.
type Registry struct {
	headers map[string]Header
	titles  map[string]struct{}
}

type document struct {
	Headers map[string]map[string]any `yaml:"headers"`
}

// New builds a registry from key -> header records.
// The Key of each record is overwritten with its map key.
func New(headers map[string]Header) (*Registry, error) {
	r := &Registry{
		headers: make(map[string]Header, len(headers)),
		titles:  make(map[string]struct{}, len(headers)),
	}
	for key, h := range headers {
		if strings.TrimSpace(key) == "" {
			return nil, ErrEmptyKey
		}
		if h.Title == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptyTitle, key)
		}
		h.Key = key
		r.headers[key] = h
		r.titles[h.Title] = struct{}{}
	}
	return r, nil
}

// Parse builds a registry from a YAML document.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yamlutil.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistryParse, err)
	}

	headers := make(map[string]Header, len(doc.Headers))
	for key, fields := range doc.Headers {
		title, ok := fields["title"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrEmptyTitle, key)
		}
		rest := make(map[string]any, len(fields))
		for k, v := range fields {
			if k != "title" {
				rest[k] = v
			}
		}
		headers[key] = Header{Title: title, Fields: rest}
	}
	return New(headers)
}

// Load reads and parses a registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- registry path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRegistryNotFound, path)
		}
		return nil, fmt.Errorf("reading header registry: %w", err)
	}
	return Parse(data)
}

// Contains reports whether title is a registered page title.
// Matching is exact and case-sensitive. A nil registry contains nothing.
func (r *Registry) Contains(title string) bool {
	if r == nil || title == "" {
		return false
	}
	_, ok := r.titles[title]
	return ok
}

// Titles returns the distinct registered titles, sorted.
func (r *Registry) Titles() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.titles))
	for t := range r.titles {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the header registered under key.
func (r *Registry) Lookup(key string) (Header, bool) {
	if r == nil {
		return Header{}, false
	}
	h, ok := r.headers[key]
	if !ok {
		return Header{}, false
	}
	if h.Fields != nil {
		fields := make(map[string]any, len(h.Fields))
		for k, v := range h.Fields {
			fields[k] = v
		}
		h.Fields = fields
	}
	return h, true
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.headers)
}
