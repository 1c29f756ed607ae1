package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/validation"
)

const clearSequence = "\033[H\033[2J"

// MenuCommand runs the interactive numbered menu until the user stops.
type MenuCommand struct {
	DatabasePath string
	ExportPath   string
	NoClear      bool

	cfg *config.Config
	In  io.Reader
	Out io.Writer
}

func NewMenuCommand(cfg *config.Config) *MenuCommand {
	return &MenuCommand{
		DatabasePath: cfg.Database.Path,
		ExportPath:   cfg.Export.Path,
		NoClear:      !cfg.UI.ClearScreen,
		cfg:          cfg,
		In:           os.Stdin,
		Out:          os.Stdout,
	}
}

func (cmd *MenuCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("menu", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the books database file")
	fs.StringVar(&cmd.ExportPath, "output", cmd.ExportPath, "Destination of the CSV export")
	fs.BoolVar(&cmd.NoClear, "no-clear", cmd.NoClear, "Do not clear the screen between menu iterations")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s menu [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Start the interactive menu (the default when no command is given).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *MenuCommand) Run() error {
	ctx := context.Background()

	stop := watchInterrupt(cmd.Out)
	defer stop()

	c, err := openCatalog(ctx, cmd.cfg, cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer c.Close()

	m := &menu{
		catalog:    c,
		in:         bufio.NewScanner(cmd.In),
		out:        cmd.Out,
		exportPath: cmd.ExportPath,
		clear:      !cmd.NoClear,
	}
	return m.loop(ctx)
}

// watchInterrupt ends the process with a short notice on Ctrl+C.
func watchInterrupt(w io.Writer) func() {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigs:
			fmt.Fprintln(w, "\nInterrupted by user")
			os.Exit(130)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

type menu struct {
	catalog    *catalog
	in         *bufio.Scanner
	out        io.Writer
	exportPath string
	clear      bool
}

// loop shows the menu, runs the chosen action and asks whether to go on.
// It returns nil when the user stops or input ends, and an error only when
// the catalog can no longer be used.
func (m *menu) loop(ctx context.Context) error {
	for {
		m.clearScreen()
		m.printMenu()
		answer, ok := m.prompt("Answer: ")
		if !ok {
			return nil
		}
		m.clearScreen()

		if err := m.execute(ctx, answer); err != nil {
			return err
		}

		answer, ok = m.prompt("\nContinue? (y/n): ")
		if !ok || !isYes(answer) {
			return nil
		}
	}
}

func (m *menu) printMenu() {
	fmt.Fprint(m.out, "Choose what you want to do.\n\n")
	fmt.Fprintln(m.out, "1- Add book")
	fmt.Fprintln(m.out, "2- List books")
	fmt.Fprintln(m.out, "3- Change status")
	fmt.Fprintln(m.out, "4- Search books")
	fmt.Fprintln(m.out, "5- Export to CSV")
	fmt.Fprintln(m.out, "6- Remove book")
	fmt.Fprint(m.out, "7- Reset database\n\n")
}

func (m *menu) execute(ctx context.Context, answer string) error {
	choice, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		printError(m.out, "Invalid input")
		return nil
	}

	switch choice {
	case 1:
		m.add(ctx)
	case 2:
		fmt.Fprint(m.out, "Listing books\n\n")
		if err := listBooks(ctx, m.out, m.catalog); err != nil {
			reportFailure(m.out, "list books", err)
		}
	case 3:
		m.toggle(ctx)
	case 4:
		keyword, ok := m.prompt("What are you looking for: ")
		if !ok {
			return nil
		}
		if err := searchBooks(ctx, m.out, m.catalog, keyword); err != nil {
			reportFailure(m.out, "search books", err)
		}
	case 5:
		fmt.Fprintln(m.out, "Exporting to CSV:")
		if err := exportBooks(ctx, m.out, m.catalog, m.exportPath); err != nil {
			reportFailure(m.out, "export books", err)
		}
	case 6:
		m.remove(ctx)
	case 7:
		return m.reset(ctx)
	default:
		printError(m.out, "Invalid option")
	}
	return nil
}

func (m *menu) add(ctx context.Context) {
	fmt.Fprint(m.out, "Add a new book\n\n")
	title, ok := m.prompt("Title: ")
	if !ok {
		return
	}
	rawPages, ok := m.prompt("Number of pages: ")
	if !ok {
		return
	}
	pages, err := m.catalog.validator.ParsePages(rawPages)
	if err != nil {
		printError(m.out, "Invalid input")
		return
	}
	category, ok := m.prompt("Main category: ")
	if !ok {
		return
	}
	status, ok := m.prompt(`1 for "Read" or 2 for "Queued": `)
	if !ok {
		return
	}

	in := validation.Input{
		Title:    title,
		Pages:    pages,
		Read:     strings.TrimSpace(status) == "1",
		Category: category,
	}
	if _, err := addBook(ctx, m.out, m.catalog, in); err != nil {
		reportFailure(m.out, "add book", err)
	}
}

func (m *menu) toggle(ctx context.Context) {
	fmt.Fprintln(m.out, "Changing the status of a book")
	raw, ok := m.prompt("ID of the book to change: ")
	if !ok {
		return
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		printError(m.out, "Invalid input")
		return
	}
	if err := toggleBook(ctx, m.out, m.catalog, id); err != nil {
		reportFailure(m.out, "change status", err)
	}
}

func (m *menu) remove(ctx context.Context) {
	fmt.Fprint(m.out, "Removing book\n\n")
	token, ok := m.prompt("ID or title of the book to remove: ")
	if !ok {
		return
	}
	if err := deleteBooks(ctx, m.out, m.catalog, token); err != nil {
		reportFailure(m.out, "remove book", err)
	}
}

func (m *menu) reset(ctx context.Context) error {
	fmt.Fprintln(m.out, "Resetting database")
	answer, ok := m.prompt("Every book will be removed. Type 'yes' to confirm: ")
	if !ok || strings.ToLower(strings.TrimSpace(answer)) != "yes" {
		fmt.Fprintln(m.out, "Reset cancelled.")
		return nil
	}
	if err := resetCatalog(ctx, m.out, m.catalog); err != nil {
		return fmt.Errorf("catalog is unusable after reset: %w", err)
	}
	return nil
}

func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		fmt.Fprintln(m.out)
		return "", false
	}
	return m.in.Text(), true
}

func (m *menu) clearScreen() {
	if m.clear {
		fmt.Fprint(m.out, clearSequence)
	}
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
