// Command generate_demo creates a demo catalog filled with public domain books.
// Usage: go run ./cmd/generate_demo [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/validation"
)

const defaultDemoDatabasePath = "./demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	logPath := flag.String("log", os.DevNull, "path to the log file")
	flag.Parse()

	log.Printf("Generating demo catalog at %s...", *dbPath)

	logger, err := logging.New(*logPath, "info")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	repo, err := books.NewRepository(ctx, *dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}

	// Start from an empty catalog so ids begin at 1
	if err := repo.Reset(ctx); err != nil {
		log.Fatalf("Failed to reset catalog: %v", err)
	}

	saved, err := seed(ctx, repo, validation.NewValidator(logger), demoBooks())
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Printf("Demo catalog generated with %d books", saved)
}

func seed(ctx context.Context, repo *books.Repository, v *validation.Validator, inputs []validation.Input) (int, error) {
	saved := 0
	for _, in := range inputs {
		book, err := v.Validate(in)
		if err != nil {
			log.Printf("Skipping %q: %v", in.Title, err)
			continue
		}
		book, err = repo.Insert(ctx, book)
		if err != nil {
			return saved, err
		}
		log.Printf("Saved: [%d] %s (%s, %s)", book.ID, book.Title, book.Category, book.Status())
		saved++
	}
	return saved, nil
}

func demoBooks() []validation.Input {
	return []validation.Input{
		{Title: "meditations", Pages: 254, Read: true, Category: "philosophy"},
		{Title: "pride and prejudice", Pages: 432, Read: true, Category: "classic"},
		{Title: "frankenstein", Pages: 280, Category: "fiction"},
		{Title: "the art of war", Pages: 68, Read: true, Category: "strategy"},
		{Title: "on the origin of species", Pages: 502, Category: "science"},
		{Title: "moby dick", Pages: 635, Category: "classic"},
		{Title: "walden", Pages: 352, Category: "philosophy"},
		{Title: "the time machine", Pages: 118, Read: true, Category: "fiction"},
	}
}
