// Package assets provides styles, page templates and the default header
// registry used to render documentation pages.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # page styles (e.g., default.css)
//	├── templates/
//	│   └── {name}.html      # standalone page templates (e.g., page.html)
//	└── registry/
//	    └── {name}.yaml      # header registries (e.g., headers.yaml)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
