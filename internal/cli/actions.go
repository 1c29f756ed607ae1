package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// The actions below print their successful outcome to w and return any
// failure to the caller, which decides how to report it.

func addBook(ctx context.Context, w io.Writer, c *catalog, in validation.Input) (entities.Book, error) {
	book, err := c.validator.Validate(in)
	if err != nil {
		return entities.Book{}, err
	}
	saved, err := c.repo.Insert(ctx, book)
	if err != nil {
		return entities.Book{}, err
	}
	printSuccess(w, "Saved %q (%d pages, %s, %s) with ID %d.", saved.Title, saved.Pages, saved.Status(), saved.Category, saved.ID)
	return saved, nil
}

func listBooks(ctx context.Context, w io.Writer, c *catalog) error {
	all, err := c.repo.List(ctx)
	if errors.Is(err, books.ErrEmptyCatalog) {
		fmt.Fprintln(w, "No books registered.")
		return nil
	}
	if err != nil {
		return err
	}
	books.RenderTable(w, all)
	return nil
}

func toggleBook(ctx context.Context, w io.Writer, c *catalog, id int64) error {
	read, err := c.repo.ToggleRead(ctx, id)
	if err != nil {
		return err
	}
	printSuccess(w, "Book %d is now %s.", id, entities.StatusLabel(read))
	return nil
}

func searchBooks(ctx context.Context, w io.Writer, c *catalog, keyword string) error {
	matches, err := c.repo.Search(ctx, keyword)
	if err != nil {
		return err
	}
	books.RenderMatches(w, matches)
	return nil
}

func exportBooks(ctx context.Context, w io.Writer, c *catalog, path string) error {
	result, err := c.repo.ExportCSV(ctx, path)
	if errors.Is(err, books.ErrEmptyCatalog) {
		fmt.Fprintln(w, "Nothing to export.")
		return nil
	}
	if err != nil {
		return err
	}
	printSuccess(w, "Exported %d books to %q.", result.BooksProcessed, result.Path)
	return nil
}

func deleteBooks(ctx context.Context, w io.Writer, c *catalog, token string) error {
	deleted, err := c.repo.Delete(ctx, token)
	if err != nil {
		return err
	}
	printSuccess(w, "Deleted %d book(s).", deleted)
	return nil
}

func resetCatalog(ctx context.Context, w io.Writer, c *catalog) error {
	if err := c.repo.Reset(ctx); err != nil {
		return err
	}
	printSuccess(w, "Database reset.")
	return nil
}
