package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// =============================================================================
// Export
// =============================================================================

// BookExporter implementations
var _ exporters.BookExporter = (*exporters.CSVExporter)(nil)

// =============================================================================
// Errors
// =============================================================================

var _ error = (*database.StorageError)(nil)
var _ error = (*validation.ValidationError)(nil)
