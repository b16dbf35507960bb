package assets

import "errors"

// AssetResolver combines custom and embedded loaders. When a custom loader is
// configured it is tried first; embedded assets are used only when the custom
// directory does not have the asset.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath means embedded assets only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadStyle loads a CSS style, custom first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return withFallback(r, func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate loads a page template, custom first.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return withFallback(r, func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// LoadRegistry loads a header registry document, custom first.
func (r *AssetResolver) LoadRegistry(name string) ([]byte, error) {
	return withFallback(r, func(l AssetLoader) ([]byte, error) { return l.LoadRegistry(name) })
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

func withFallback[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}
	v, err := load(r.custom)
	if err == nil {
		return v, nil
	}
	// Only "not found" falls back; validation and I/O errors surface.
	if !isNotFoundError(err) {
		return v, err
	}
	return load(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrRegistryNotFound)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
