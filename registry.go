package mdfeedback

import (
	"fmt"

	"github.com/alnah/go-mdfeedback/internal/assets"
	"github.com/alnah/go-mdfeedback/internal/registry"
)

// Registry is the set of page titles whose headings are decorated.
// It is read-only once built and safe to share between converters.
type Registry = registry.Registry

// Header is one registry entry.
type Header = registry.Header

// NewRegistry builds a registry from key -> header records.
func NewRegistry(headers map[string]Header) (*Registry, error) {
	return registry.New(headers)
}

// ParseRegistry builds a registry from a YAML document of the form
//
//	headers:
//	  install:
//	    title: Installation
func ParseRegistry(data []byte) (*Registry, error) {
	return registry.Parse(data)
}

// LoadRegistry reads a registry YAML file.
func LoadRegistry(path string) (*Registry, error) {
	return registry.Load(path)
}

// DefaultRegistry returns the registry embedded in the binary.
func DefaultRegistry() (*Registry, error) {
	return loadRegistryAsset(assets.NewEmbeddedLoader())
}

func loadRegistryAsset(loader assets.AssetLoader) (*Registry, error) {
	data, err := loader.LoadRegistry(assets.DefaultRegistryName)
	if err != nil {
		return nil, fmt.Errorf("loading default registry: %w", err)
	}
	return registry.Parse(data)
}
