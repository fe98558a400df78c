package cli

import (
	"errors"

	"github.com/aidanlsb/forma/internal/brand"
	"github.com/aidanlsb/forma/internal/cache"
	"github.com/aidanlsb/forma/internal/content"
	"github.com/aidanlsb/forma/internal/template"
	"github.com/aidanlsb/forma/internal/tomledit"
	"github.com/aidanlsb/forma/internal/typst"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Content errors
	ErrContentInvalid = "CONTENT_INVALID"
	ErrPathNotFound   = "PATH_NOT_FOUND"
	ErrTitleNotFound  = "TITLE_NOT_FOUND"
	ErrTitleAmbiguous = "TITLE_AMBIGUOUS"

	// Template errors
	ErrTemplateNotFound = "TEMPLATE_NOT_FOUND"

	// Brand errors
	ErrBrandNotFound = "BRAND_NOT_FOUND"

	// Compile errors
	ErrCompileFailed = "COMPILE_FAILED"

	// File errors
	ErrFileNotFound = "FILE_NOT_FOUND"
	ErrFileExists   = "FILE_EXISTS"
	ErrIOError      = "IO_ERROR"

	// Cache errors
	ErrCacheError       = "CACHE_ERROR"
	ErrNoRecentDocument = "NO_RECENT_DOCUMENT"

	// Validation errors
	ErrValidationFailed = "VALIDATION_FAILED"

	// Watch errors
	ErrWatchError = "WATCH_ERROR"

	// Configuration errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// classifyError maps a typed error to its stable code plus any structured
// details carried by the error value.
func classifyError(err error) (code string, details interface{}) {
	var (
		fileNotFound  *content.FileNotFoundError
		pathNotFound  *content.PathNotFoundError
		editNotFound  *tomledit.PathNotFoundError
		titleNotFound *content.TitleNotFoundError
		ambiguous     *content.AmbiguousTitleError
		tmplNotFound  *template.NotFoundError
		brandNotFound *brand.NotFoundError
		compileErr    *typst.CompilationError
	)

	switch {
	case errors.As(err, &fileNotFound):
		return ErrFileNotFound, nil
	case errors.As(err, &pathNotFound):
		return ErrPathNotFound, nil
	case errors.As(err, &editNotFound):
		return ErrPathNotFound, nil
	case errors.As(err, &titleNotFound):
		return ErrTitleNotFound, nil
	case errors.As(err, &ambiguous):
		return ErrTitleAmbiguous, map[string]interface{}{"matches": ambiguous.Matches}
	case errors.As(err, &tmplNotFound):
		return ErrTemplateNotFound, nil
	case errors.As(err, &brandNotFound):
		return ErrBrandNotFound, nil
	case errors.Is(err, cache.ErrNoRecentDocument):
		return ErrNoRecentDocument, nil
	case errors.As(err, &compileErr):
		if compileErr.Details != "" {
			return ErrCompileFailed, map[string]interface{}{"diagnostics": compileErr.Details}
		}
		return ErrCompileFailed, nil
	}
	return ErrInternal, nil
}
