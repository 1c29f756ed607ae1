package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// runWithCatalog opens the catalog at dbPath, runs fn and closes it again.
func runWithCatalog(cfg *config.Config, dbPath string, fn func(ctx context.Context, c *catalog) error) error {
	ctx := context.Background()
	c, err := openCatalog(ctx, cfg, dbPath)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}

func newFlagSet(name, usage string, example string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s [options]\n\n", os.Args[0], name)
		fmt.Fprintf(os.Stderr, "%s\n\n", usage)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		if example != "" {
			fmt.Fprintf(os.Stderr, "\nExample:\n  %s %s %s\n", os.Args[0], name, example)
		}
	}
	return fs
}

// AddCommand adds a single book without going through the menu
type AddCommand struct {
	DatabasePath string
	Title        string
	Pages        int
	Read         bool
	Category     string

	cfg *config.Config
	Out io.Writer
}

func NewAddCommand(cfg *config.Config) *AddCommand {
	return &AddCommand{DatabasePath: cfg.Database.Path, cfg: cfg, Out: os.Stdout}
}

func (cmd *AddCommand) ParseFlags(args []string) error {
	fs := newFlagSet("add", "Add a book to the catalog.", `-title "clean code" -pages 464 -category software`)
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the books database file")
	fs.StringVar(&cmd.Title, "title", "", "Book title (required)")
	fs.IntVar(&cmd.Pages, "pages", 0, "Number of pages, greater than 0 (required)")
	fs.StringVar(&cmd.Category, "category", "", "Main category (required)")
	fs.BoolVar(&cmd.Read, "read", false, "Mark the book as already read")

	return fs.Parse(args)
}

func (cmd *AddCommand) Run() error {
	return runWithCatalog(cmd.cfg, cmd.DatabasePath, func(ctx context.Context, c *catalog) error {
		_, err := addBook(ctx, cmd.Out, c, validation.Input{
			Title:    cmd.Title,
			Pages:    cmd.Pages,
			Read:     cmd.Read,
			Category: cmd.Category,
		})
		return err
	})
}

// ListCommand prints the whole catalog
type ListCommand struct {
	DatabasePath string

	cfg *config.Config
	Out io.Writer
}

func NewListCommand(cfg *config.Config) *ListCommand {
	return &ListCommand{DatabasePath: cfg.Database.Path, cfg: cfg, Out: os.Stdout}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := newFlagSet("list", "List every book in the catalog.", "")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the books database file")
	return fs.Parse(args)
}

func (cmd *ListCommand) Run() error {
	return runWithCatalog(cmd.cfg, cmd.DatabasePath, func(ctx context.Context, c *catalog) error {
		return listBooks(ctx, cmd.Out, c)
	})
}

// ToggleCommand switches a book between Read and Queued
type ToggleCommand struct {
	DatabasePath string
	ID           int64

	cfg *config.Config
	Out io.Writer
}

func NewToggleCommand(cfg *config.Config) *ToggleCommand {
	return &ToggleCommand{DatabasePath: cfg.Database.Path, cfg: cfg, Out: os.Stdout}
}

func (cmd *ToggleCommand) ParseFlags(args []string) error {
	fs := newFlagSet("toggle", "Switch a book between Read and Queued.", "-id 3")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the books database file")
	fs.Int64Var(&cmd.ID, "id", 0, "ID of the book (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.ID <= 0 {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

func (cmd *ToggleCommand) Run() error {
	return runWithCatalog(cmd.cfg, cmd.DatabasePath, func(ctx context.Context, c *catalog) error {
		return toggleBook(ctx, cmd.Out, c, cmd.ID)
	})
}

// SearchCommand finds books by title or category
type SearchCommand struct {
	DatabasePath string
	Query        string

	cfg *config.Config
	Out io.Writer
}

func NewSearchCommand(cfg *config.Config) *SearchCommand {
	return &SearchCommand{DatabasePath: cfg.Database.Path, cfg: cfg, Out: os.Stdout}
}

func (cmd *SearchCommand) ParseFlags(args []string) error {
	fs := newFlagSet("search", "Find books whose title or category contains a keyword.", "-q bio")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the books database file")
	fs.StringVar(&cmd.Query, "q", "", "Keyword to look for")
	return fs.Parse(args)
}

func (cmd *SearchCommand) Run() error {
	return runWithCatalog(cmd.cfg, cmd.DatabasePath, func(ctx context.Context, c *catalog) error {
		return searchBooks(ctx, cmd.Out, c, cmd.Query)
	})
}

// DeleteCommand removes books by exact ID or title substring
type DeleteCommand struct {
	DatabasePath string
	Token        string

	cfg *config.Config
	Out io.Writer
}

func NewDeleteCommand(cfg *config.Config) *DeleteCommand {
	return &DeleteCommand{DatabasePath: cfg.Database.Path, cfg: cfg, Out: os.Stdout}
}

func (cmd *DeleteCommand) ParseFlags(args []string) error {
	fs := newFlagSet("delete", "Remove books by exact ID or by part of the title.", "-token 3")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the books database file")
	fs.StringVar(&cmd.Token, "token", "", "Book ID or part of the title (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Token == "" {
		return fmt.Errorf("required flag -token not provided")
	}
	return nil
}

func (cmd *DeleteCommand) Run() error {
	return runWithCatalog(cmd.cfg, cmd.DatabasePath, func(ctx context.Context, c *catalog) error {
		return deleteBooks(ctx, cmd.Out, c, cmd.Token)
	})
}

// ExportCommand writes the catalog to a CSV file
type ExportCommand struct {
	DatabasePath string
	OutputPath   string

	cfg *config.Config
	Out io.Writer
}

func NewExportCommand(cfg *config.Config) *ExportCommand {
	return &ExportCommand{DatabasePath: cfg.Database.Path, OutputPath: cfg.Export.Path, cfg: cfg, Out: os.Stdout}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := newFlagSet("export", "Export the catalog to a CSV file.", "-output ~/books.csv")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the books database file")
	fs.StringVar(&cmd.OutputPath, "output", cmd.OutputPath, "Destination CSV file")
	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	return runWithCatalog(cmd.cfg, cmd.DatabasePath, func(ctx context.Context, c *catalog) error {
		return exportBooks(ctx, cmd.Out, c, cmd.OutputPath)
	})
}

// ResetCommand wipes the catalog
type ResetCommand struct {
	DatabasePath string
	Yes          bool

	cfg *config.Config
	Out io.Writer
}

func NewResetCommand(cfg *config.Config) *ResetCommand {
	return &ResetCommand{DatabasePath: cfg.Database.Path, cfg: cfg, Out: os.Stdout}
}

func (cmd *ResetCommand) ParseFlags(args []string) error {
	fs := newFlagSet("reset", "Delete the database file and start with an empty catalog.", "-yes")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the books database file")
	fs.BoolVar(&cmd.Yes, "yes", false, "Confirm that every book should be removed (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if !cmd.Yes {
		return fmt.Errorf("refusing to reset without -yes")
	}
	return nil
}

func (cmd *ResetCommand) Run() error {
	return runWithCatalog(cmd.cfg, cmd.DatabasePath, func(ctx context.Context, c *catalog) error {
		return resetCatalog(ctx, cmd.Out, c)
	})
}
