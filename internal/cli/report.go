package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/validation"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

func printError(w io.Writer, format string, args ...any) {
	_, _ = errorColor.Fprintf(w, format+"\n", args...)
}

func printWarning(w io.Writer, format string, args ...any) {
	_, _ = warnColor.Fprintf(w, format+"\n", args...)
}

func printSuccess(w io.Writer, format string, args ...any) {
	_, _ = successColor.Fprintf(w, format+"\n", args...)
}

// reportFailure prints a user-facing message for err. Nothing here is
// fatal; the caller carries on.
func reportFailure(w io.Writer, action string, err error) {
	var validationErr *validation.ValidationError
	var storageErr *database.StorageError

	switch {
	case errors.Is(err, books.ErrNotFound):
		printWarning(w, "Book not found.")
	case errors.Is(err, books.ErrEmptyCatalog):
		printWarning(w, "No books registered.")
	case errors.As(err, &validationErr):
		printError(w, "Could not %s: %v", action, validationErr)
	case errors.As(err, &storageErr):
		printError(w, "Could not %s: storage error (%s).", action, storageErr.Kind())
		if storageErr.Kind() == database.KindCorrupt {
			fmt.Fprintln(w, "The catalog file looks damaged; resetting it starts over with an empty catalog.")
		}
	default:
		printError(w, "Could not %s: %v", action, err)
	}
}
