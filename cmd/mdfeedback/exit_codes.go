package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-mdfeedback"
	"github.com/alnah/go-mdfeedback/internal/assets"
	"github.com/alnah/go-mdfeedback/internal/config"
	"github.com/alnah/go-mdfeedback/internal/dateutil"
)

// Exit codes for the mdfeedback CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every page rendered
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, registry, or decoration
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdfeedback.ErrBrowserConnect) ||
		errors.Is(err, mdfeedback.ErrPageCreate) ||
		errors.Is(err, mdfeedback.ErrPageLoad) ||
		errors.Is(err, mdfeedback.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) ||
		errors.Is(err, mdfeedback.ErrRegistryNotFound) ||
		errors.Is(err, assets.ErrRegistryNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, mdfeedback.ErrRegistryParse) ||
		errors.Is(err, mdfeedback.ErrEmptyTitle) ||
		errors.Is(err, mdfeedback.ErrEmptyKey) ||
		errors.Is(err, mdfeedback.ErrInvalidDecoration) ||
		errors.Is(err, mdfeedback.ErrFrontmatterUnclosed) ||
		errors.Is(err, mdfeedback.ErrFrontmatterParse) ||
		errors.Is(err, mdfeedback.ErrStyleNotFound) ||
		errors.Is(err, mdfeedback.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
