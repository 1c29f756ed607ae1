// Package books owns the books table: schema, inserts, status toggles,
// search, deletion, CSV export and full resets.
//
// Every operation opens its own connection, runs exactly one statement in a
// transaction and closes the connection again, so nothing keeps the file
// open between calls.
//
// # Usage
//
//	repo, err := books.NewRepository(ctx, "./books.db", log)
//	saved, err := repo.Insert(ctx, book)
//	read, err := repo.ToggleRead(ctx, saved.ID)
package books

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/exporters"
)

var (
	// ErrNotFound is returned when no book matches an id or delete token.
	ErrNotFound = errors.New("book not found")

	// ErrEmptyCatalog is returned when the table holds no books at all.
	ErrEmptyCatalog = errors.New("no books registered")
)

const schema = `CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	pages INTEGER NOT NULL,
	read BOOLEAN NOT NULL,
	category TEXT
)`

const selectColumns = "SELECT id, title, pages, read, category FROM books"

// Repository handles all operations on the books table.
type Repository struct {
	path string
	log  *zap.Logger
}

// NewRepository returns a repository for the SQLite file at path and makes
// sure the books table exists.
func NewRepository(ctx context.Context, path string, logger *zap.Logger) (*Repository, error) {
	r := &Repository{path: path, log: logger}
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the database file backing the repository.
func (r *Repository) Path() string {
	return r.path
}

type statement struct {
	op   string
	sql  string
	args []any
}

// execute opens a connection, runs st inside a transaction and closes the
// connection again. With a non-nil dest the statement is a query and its
// rows are scanned into dest; otherwise it is executed for its side effect.
// The returned count is the number of rows affected or scanned.
func (r *Repository) execute(ctx context.Context, st statement, dest any) (int64, error) {
	db, err := database.Open(r.path, r.log)
	if err != nil {
		return 0, r.fail(st, err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			r.log.Warn("Failed to close database connection", zap.String("op", st.op), zap.Error(err))
		}
	}()

	var count int64
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var result *gorm.DB
		if dest != nil {
			result = tx.Raw(st.sql, st.args...).Scan(dest)
		} else {
			result = tx.Exec(st.sql, st.args...)
		}
		if result.Error != nil {
			return result.Error
		}
		count = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, r.fail(st, err)
	}
	return count, nil
}

func (r *Repository) fail(st statement, err error) error {
	storageErr := &database.StorageError{Op: st.op, Statement: st.sql, Params: st.args, Err: err}
	r.log.Error("Failed to execute SQL",
		zap.String("op", st.op),
		zap.String("sql", st.sql),
		zap.Any("params", st.args),
		zap.String("kind", storageErr.Kind().String()),
		zap.Error(err),
	)
	return storageErr
}

// EnsureSchema creates the books table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.execute(ctx, statement{op: "create table", sql: schema}, nil); err != nil {
		return err
	}
	r.log.Info("Table created/verified", zap.String("path", r.path))
	return nil
}

// Insert appends book and returns it with the id assigned by storage.
func (r *Repository) Insert(ctx context.Context, book entities.Book) (entities.Book, error) {
	var saved []entities.Book
	_, err := r.execute(ctx, statement{
		op:   "insert book",
		sql:  "INSERT INTO books (title, pages, read, category) VALUES (?, ?, ?, ?) RETURNING id, title, pages, read, category",
		args: []any{book.Title, book.Pages, book.Read, book.Category},
	}, &saved)
	if err != nil {
		r.log.Error("Failed to save book", zap.String("title", book.Title))
		return entities.Book{}, err
	}
	if len(saved) == 0 {
		r.log.Error("Failed to save book", zap.String("title", book.Title))
		return entities.Book{}, fmt.Errorf("insert of %q returned no row", book.Title)
	}

	r.log.Info("Book saved", zap.Int64("id", saved[0].ID), zap.String("title", saved[0].Title))
	return saved[0], nil
}

// List returns every book in storage order.
func (r *Repository) List(ctx context.Context) ([]entities.Book, error) {
	var all []entities.Book
	if _, err := r.execute(ctx, statement{op: "list books", sql: selectColumns}, &all); err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrEmptyCatalog
	}
	return all, nil
}

// ToggleRead flips the read flag of the book with the given id and returns
// the new value. The lookup and the update are separate statements, so a
// concurrent writer could interleave between them.
func (r *Repository) ToggleRead(ctx context.Context, id int64) (bool, error) {
	var found []entities.Book
	_, err := r.execute(ctx, statement{
		op:   "lookup book",
		sql:  selectColumns + " WHERE id = ?",
		args: []any{id},
	}, &found)
	if err != nil {
		return false, err
	}
	if len(found) == 0 {
		r.log.Warn("Attempt to change status of missing book", zap.Int64("id", id))
		return false, ErrNotFound
	}

	read := !found[0].Read
	affected, err := r.execute(ctx, statement{
		op:   "update status",
		sql:  "UPDATE books SET read = ? WHERE id = ?",
		args: []any{read, id},
	}, nil)
	if err != nil {
		return false, err
	}
	if affected == 0 {
		r.log.Warn("Book disappeared before status update", zap.Int64("id", id))
		return false, ErrNotFound
	}

	r.log.Info("Status changed", zap.Int64("id", id), zap.Bool("read", read), zap.String("status", entities.StatusLabel(read)))
	return read, nil
}

// Search returns books whose title or category contains keyword, ignoring
// case. No match yields an empty slice and a nil error.
func (r *Repository) Search(ctx context.Context, keyword string) ([]entities.Book, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(keyword)) + "%"
	matches := []entities.Book{}
	_, err := r.execute(ctx, statement{
		op:   "search books",
		sql:  selectColumns + " WHERE ulower(title) LIKE ulower(?) ESCAPE '\\' OR ulower(category) LIKE ulower(?) ESCAPE '\\'",
		args: []any{pattern, pattern},
	}, &matches)
	if err != nil {
		return nil, err
	}

	r.log.Info("Search applied", zap.String("keyword", keyword), zap.Int("matches", len(matches)))
	return matches, nil
}

// Delete removes books whose title contains token or whose id is exactly
// token, and returns how many rows went away.
func (r *Repository) Delete(ctx context.Context, token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		r.log.Warn("Attempt to delete with an empty token")
		return 0, ErrNotFound
	}

	deleted, err := r.execute(ctx, statement{
		op:   "delete books",
		sql:  "DELETE FROM books WHERE title LIKE ? ESCAPE '\\' OR CAST(id AS TEXT) = ?",
		args: []any{"%" + escapeLike(token) + "%", token},
	}, nil)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		r.log.Warn("Attempt to delete missing book", zap.String("token", token))
		return 0, ErrNotFound
	}

	r.log.Info("Books deleted", zap.String("token", token), zap.Int64("count", deleted))
	return deleted, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes the LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ExportCSV writes the whole catalog to path. An empty catalog returns
// ErrEmptyCatalog and leaves the filesystem untouched.
func (r *Repository) ExportCSV(ctx context.Context, path string) (exporters.ExportResult, error) {
	all, err := r.List(ctx)
	if err != nil {
		if errors.Is(err, ErrEmptyCatalog) {
			r.log.Info("Nothing to export", zap.String("path", path))
		}
		return exporters.ExportResult{}, err
	}

	result, err := exporters.NewCSVExporter(path).Export(all)
	if err != nil {
		r.log.Error("Failed to export CSV", zap.String("path", path), zap.Error(err))
		return result, fmt.Errorf("failed to export CSV: %w", err)
	}

	r.log.Info("CSV export written", zap.String("path", path), zap.Int("books", result.BooksProcessed))
	return result, nil
}

// Reset deletes the database file and recreates an empty table. Any ids
// handed out before are gone for good.
func (r *Repository) Reset(ctx context.Context) error {
	for _, p := range []string{r.path, r.path + "-journal"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			r.log.Error("Failed to remove database file", zap.String("path", p), zap.Error(err))
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	r.log.Warn("Database removed", zap.String("path", r.path))

	if err := r.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to recreate schema: %w", err)
	}
	return nil
}
