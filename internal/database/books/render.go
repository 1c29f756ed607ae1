package books

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// RenderTable prints books as an aligned table followed by the total count.
func RenderTable(w io.Writer, books []entities.Book) {
	fmt.Fprintf(w, "%-5s  %-25s  %-10s  %-10s  %s\n", "ID", "Title", "Pages", "Status", "Category")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, b := range books {
		fmt.Fprintf(w, "%-5d  %-25s  %-10d  %-10s  %s\n", b.ID, b.Title, b.Pages, b.Status(), b.Category)
	}
	fmt.Fprintf(w, "\nTotal books: %d\n", len(books))
}

// RenderMatches prints one line per search hit, or a notice when there
// are none.
func RenderMatches(w io.Writer, books []entities.Book) {
	fmt.Fprint(w, "\nBooks found:\n\n")
	if len(books) == 0 {
		fmt.Fprintln(w, "No books found.")
		return
	}
	for _, b := range books {
		fmt.Fprintf(w, "%d | %s | %d pages | Status: %s | Category: %s\n", b.ID, b.Title, b.Pages, b.Status(), b.Category)
	}
}
