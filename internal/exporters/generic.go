package exporters

import "github.com/mrlokans/bookshelf/internal/entities"

type BookExporter interface {
	Export(books []entities.Book) (ExportResult, error)
}

type ExportResult struct {
	Path           string `json:"path"`
	BooksProcessed int    `json:"books_processed"`
}
