package exporters

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// ErrNoBooks is returned when there is nothing to write.
var ErrNoBooks = errors.New("nothing to export")

// CSVHeader is the first row of every export.
var CSVHeader = []string{"ID", "Title", "Pages", "Status", "Category"}

// CSVExporter writes books to a single UTF-8 CSV file.
type CSVExporter struct {
	Path string
}

func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{Path: path}
}

// Export overwrites Path with a header row and one row per book, the read
// flag rendered as its status label. No file is created for an empty slice.
func (exporter *CSVExporter) Export(books []entities.Book) (result ExportResult, err error) {
	result.Path = exporter.Path
	if len(books) == 0 {
		return result, ErrNoBooks
	}

	file, err := os.Create(exporter.Path)
	if err != nil {
		return result, fmt.Errorf("failed to create %s: %w", exporter.Path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", exporter.Path, cerr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(CSVHeader); err != nil {
		return result, fmt.Errorf("failed to write header: %w", err)
	}
	for _, b := range books {
		record := []string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			strconv.Itoa(b.Pages),
			b.Status(),
			b.Category,
		}
		if err := writer.Write(record); err != nil {
			return result, fmt.Errorf("failed to write book %d: %w", b.ID, err)
		}
		result.BooksProcessed++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return result, fmt.Errorf("failed to flush %s: %w", exporter.Path, err)
	}
	return result, nil
}
