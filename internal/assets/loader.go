package assets

// Default asset names.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "page"
	DefaultRegistryName = "headers"
)

// AssetLoader defines the contract for loading styles, page templates and
// header registries.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a page template by name (without .html extension).
	LoadTemplate(name string) (string, error)

	// LoadRegistry loads a raw header registry document by name (without .yaml extension).
	LoadRegistry(name string) ([]byte, error)
}
