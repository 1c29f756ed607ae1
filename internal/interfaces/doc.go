// Package interfaces documents the core abstractions used throughout the application.
//
// # Layers
//
//   - validation.Validator: raw input to normalized entities.Book (internal/validation)
//   - books.Repository: the books table, one scoped connection per operation
//     (internal/database/books)
//   - exporters.BookExporter: writes a slice of books somewhere; CSVExporter is
//     the only implementation (internal/exporters)
//
// # Errors
//
//   - *validation.ValidationError lists every rejected field
//   - *database.StorageError wraps a failed statement with its operation and
//     parameters; Kind() classifies the SQLite result code
//   - books.ErrNotFound and books.ErrEmptyCatalog are sentinels for errors.Is
//
// # Adding a New Export Format
//
//  1. Add a type in internal/exporters implementing BookExporter
//  2. Add a compile-time check to checks.go
//  3. Expose it from the repository or a CLI command
package interfaces
