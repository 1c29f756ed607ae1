package books

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// setupTestRepo creates a repository backed by a fresh database file
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "books.db")
	repo, err := NewRepository(context.Background(), dbPath, logging.NewNop())
	require.NoError(t, err)
	return repo
}

func insertBook(t *testing.T, repo *Repository, title string, pages int, read bool, category string) entities.Book {
	t.Helper()
	book, err := validation.NewValidator(logging.NewNop()).Validate(validation.Input{
		Title: title, Pages: pages, Read: read, Category: category,
	})
	require.NoError(t, err)
	saved, err := repo.Insert(context.Background(), book)
	require.NoError(t, err)
	return saved
}

func TestEnsureSchema(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	insertBook(t, repo, "dune", 412, false, "sci-fi")

	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestInsertAndList(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	t.Run("empty catalog", func(t *testing.T) {
		all, err := repo.List(ctx)
		assert.True(t, errors.Is(err, ErrEmptyCatalog))
		assert.Empty(t, all)
	})

	t.Run("stores the normalized book", func(t *testing.T) {
		saved := insertBook(t, repo, "clean code", 464, false, "software")
		assert.NotZero(t, saved.ID)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, entities.Book{ID: saved.ID, Title: "Clean Code", Pages: 464, Read: false, Category: "SOFTWARE"}, all[0])
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		insertBook(t, repo, "refactoring", 448, true, "software")
		insertBook(t, repo, "sapiens", 498, false, "history")

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"Clean Code", "Refactoring", "Sapiens"}, []string{all[0].Title, all[1].Title, all[2].Title})
		assert.True(t, all[1].Read)
	})
}

func TestInsertRejectedByValidation(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	v := validation.NewValidator(logging.NewNop())

	for _, pages := range []int{0, -1} {
		_, err := v.Validate(validation.Input{Title: "Book", Pages: pages, Category: "X"})
		require.Error(t, err)
	}
	_, err := v.ParsePages("many")
	require.Error(t, err)

	_, err = repo.List(ctx)
	assert.True(t, errors.Is(err, ErrEmptyCatalog))
}

func TestIDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	first := insertBook(t, repo, "one", 1, false, "a")
	second := insertBook(t, repo, "two", 2, false, "a")

	deleted, err := repo.Delete(ctx, "Two")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	third := insertBook(t, repo, "three", 3, false, "a")
	assert.Greater(t, second.ID, first.ID)
	assert.Greater(t, third.ID, second.ID)
}

func TestToggleRead(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	saved := insertBook(t, repo, "clean code", 464, false, "software")

	t.Run("flips queued to read", func(t *testing.T) {
		read, err := repo.ToggleRead(ctx, saved.ID)
		require.NoError(t, err)
		assert.True(t, read)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.True(t, all[0].Read)
	})

	t.Run("twice restores the original flag", func(t *testing.T) {
		before, err := repo.List(ctx)
		require.NoError(t, err)

		_, err = repo.ToggleRead(ctx, saved.ID)
		require.NoError(t, err)
		_, err = repo.ToggleRead(ctx, saved.ID)
		require.NoError(t, err)

		after, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, before[0].Read, after[0].Read)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.ToggleRead(ctx, 999)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	insertBook(t, repo, "biology", 300, false, "science")
	insertBook(t, repo, "math", 200, false, "biography")
	insertBook(t, repo, "cooking", 150, false, "food")

	t.Run("matches title or category ignoring case", func(t *testing.T) {
		matches, err := repo.Search(ctx, "bio")
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "Biology", matches[0].Title)
		assert.Equal(t, "BIOGRAPHY", matches[1].Category)
	})

	t.Run("trims the keyword", func(t *testing.T) {
		matches, err := repo.Search(ctx, "  FOOD ")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Cooking", matches[0].Title)
	})

	t.Run("no match is not an error", func(t *testing.T) {
		matches, err := repo.Search(ctx, "astronomy")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		matches, err := repo.Search(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, matches)

		matches, err = repo.Search(ctx, "_")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestSearchNonASCII(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	insertBook(t, repo, "ética a nicômaco", 320, false, "filosofia")
	insertBook(t, repo, "math", 200, false, "ciência")

	tests := []struct {
		keyword string
		title   string
	}{
		{"ética", "Ética A Nicômaco"},
		{"ÉTICA", "Ética A Nicômaco"},
		{"nicômaco", "Ética A Nicômaco"},
		{"ciência", "Math"},
		{"Ciência", "Math"},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			matches, err := repo.Search(ctx, tt.keyword)
			require.NoError(t, err)
			require.Len(t, matches, 1)
			assert.Equal(t, tt.title, matches[0].Title)
		})
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("non-matching token leaves the catalog unchanged", func(t *testing.T) {
		repo := setupTestRepo(t)
		insertBook(t, repo, "dune", 412, false, "sci-fi")

		deleted, err := repo.Delete(ctx, "zzz")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Zero(t, deleted)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("by exact id only", func(t *testing.T) {
		repo := setupTestRepo(t)
		var ids []int64
		for i := 0; i < 11; i++ {
			ids = append(ids, insertBook(t, repo, "book", 10, false, "x").ID)
		}
		require.Equal(t, int64(11), ids[10])

		// Titles are all "Book", so a numeric token only reaches ids.
		deleted, err := repo.Delete(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 10)
		assert.Equal(t, int64(2), all[0].ID)
	})

	t.Run("by title substring", func(t *testing.T) {
		repo := setupTestRepo(t)
		insertBook(t, repo, "harry potter 1", 300, false, "fantasy")
		insertBook(t, repo, "harry potter 2", 350, false, "fantasy")
		insertBook(t, repo, "dune", 412, false, "sci-fi")

		deleted, err := repo.Delete(ctx, " Potter ")
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Dune", all[0].Title)
	})

	t.Run("wildcard tokens match literally", func(t *testing.T) {
		repo := setupTestRepo(t)
		insertBook(t, repo, "dune", 412, false, "sci-fi")
		insertBook(t, repo, "100% coverage", 120, false, "software")
		insertBook(t, repo, "snake_case", 90, false, "software")

		for _, token := range []string{"_", `\`, "%%"} {
			_, err := repo.Delete(ctx, token)
			assert.True(t, errors.Is(err, ErrNotFound), token)
		}

		deleted, err := repo.Delete(ctx, "%")
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Dune", all[0].Title)
		assert.True(t, strings.HasPrefix(all[1].Title, "Snake"))
	})

	t.Run("empty token deletes nothing", func(t *testing.T) {
		repo := setupTestRepo(t)
		insertBook(t, repo, "dune", 412, false, "sci-fi")

		_, err := repo.Delete(ctx, "  ")
		assert.True(t, errors.Is(err, ErrNotFound))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("empty catalog creates no file", func(t *testing.T) {
		repo := setupTestRepo(t)
		path := filepath.Join(t.TempDir(), "export.csv")

		_, err := repo.ExportCSV(ctx, path)
		assert.True(t, errors.Is(err, ErrEmptyCatalog))
		assert.NoFileExists(t, path)
	})

	t.Run("two books give three lines", func(t *testing.T) {
		repo := setupTestRepo(t)
		read := insertBook(t, repo, "clean code", 464, false, "software")
		insertBook(t, repo, "dune", 412, false, "sci-fi")
		_, err := repo.ToggleRead(ctx, read.ID)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "export.csv")
		result, err := repo.ExportCSV(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 2, result.BooksProcessed)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "ID,Title,Pages,Status,Category", lines[0])
		assert.Equal(t, "1,Clean Code,464,Read,SOFTWARE", lines[1])
		assert.Equal(t, "2,Dune,412,Queued,SCI-FI", lines[2])
	})

	t.Run("unwritable path is reported", func(t *testing.T) {
		repo := setupTestRepo(t)
		insertBook(t, repo, "dune", 412, false, "sci-fi")

		_, err := repo.ExportCSV(ctx, filepath.Join(t.TempDir(), "missing", "export.csv"))
		assert.Error(t, err)
	})
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	insertBook(t, repo, "dune", 412, false, "sci-fi")
	insertBook(t, repo, "emma", 474, true, "classic")

	require.NoError(t, repo.Reset(ctx))

	_, err := repo.List(ctx)
	assert.True(t, errors.Is(err, ErrEmptyCatalog))
	assert.FileExists(t, repo.Path())

	// A reset on an already empty catalog is fine too.
	require.NoError(t, repo.Reset(ctx))
	_, err = repo.List(ctx)
	assert.True(t, errors.Is(err, ErrEmptyCatalog))

	saved := insertBook(t, repo, "new start", 10, false, "misc")
	assert.Equal(t, int64(1), saved.ID)
}

func TestStorageFailure(t *testing.T) {
	ctx := context.Background()
	repo := &Repository{path: t.TempDir(), log: logging.NewNop()}

	_, err := repo.List(ctx)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyCatalog))

	var storageErr *database.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "list books", storageErr.Op)

	_, err = repo.Insert(ctx, entities.Book{Title: "A", Pages: 1, Category: "B"})
	assert.True(t, errors.As(err, &storageErr))

	_, err = repo.ToggleRead(ctx, 1)
	assert.True(t, errors.As(err, &storageErr))

	_, err = repo.Search(ctx, "dune")
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "search books", storageErr.Op)

	_, err = repo.Delete(ctx, "dune")
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "delete books", storageErr.Op)

	exportPath := filepath.Join(t.TempDir(), "export.csv")
	_, err = repo.ExportCSV(ctx, exportPath)
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "list books", storageErr.Op)
	assert.NoFileExists(t, exportPath)
}

func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	saved := insertBook(t, repo, "clean code", 464, false, "software")
	assert.Equal(t, "Clean Code", saved.Title)
	assert.Equal(t, "SOFTWARE", saved.Category)
	assert.False(t, saved.Read)

	read, err := repo.ToggleRead(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, read)

	all, err := repo.List(ctx)
	require.NoError(t, err)

	var out bytes.Buffer
	RenderTable(&out, all)
	assert.Contains(t, out.String(), "Clean Code")
	assert.Contains(t, out.String(), "Read")
	assert.Contains(t, out.String(), "Total books: 1")
}
