package mdfeedback

import (
	"errors"

	"github.com/alnah/go-mdfeedback/internal/assets"
	"github.com/alnah/go-mdfeedback/internal/pipeline"
	"github.com/alnah/go-mdfeedback/internal/registry"
)

// Sentinel errors for library operations.
var (
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Markdown errors.
	ErrHTMLConversion      = pipeline.ErrHTMLConversion
	ErrFrontmatterUnclosed = pipeline.ErrFrontmatterUnclosed
	ErrFrontmatterParse    = pipeline.ErrFrontmatterParse
	ErrTemplateRender      = pipeline.ErrTemplateRender
	ErrInvalidDecoration   = pipeline.ErrInvalidDecoration

	// Registry errors.
	ErrRegistryNotFound = registry.ErrRegistryNotFound
	ErrRegistryParse    = registry.ErrRegistryParse
	ErrEmptyTitle       = registry.ErrEmptyTitle
	ErrEmptyKey         = registry.ErrEmptyKey
)
