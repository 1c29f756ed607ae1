package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/mrlokans/bookshelf/internal/cli"
	"github.com/mrlokans/bookshelf/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	cfg := config.NewConfig()

	// No arguments starts the interactive menu
	if len(os.Args) < 2 {
		run(cli.NewMenuCommand(cfg), nil)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	switch name {
	case "menu":
		run(cli.NewMenuCommand(cfg), args)
	case "add":
		run(cli.NewAddCommand(cfg), args)
	case "list":
		run(cli.NewListCommand(cfg), args)
	case "toggle":
		run(cli.NewToggleCommand(cfg), args)
	case "search":
		run(cli.NewSearchCommand(cfg), args)
	case "delete":
		run(cli.NewDeleteCommand(cfg), args)
	case "export":
		run(cli.NewExportCommand(cfg), args)
	case "reset":
		run(cli.NewResetCommand(cfg), args)

	case "version":
		fmt.Printf("bookshelf %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}
}

func run(cmd command, args []string) {
	errorColor := color.New(color.FgRed, color.Bold)
	if err := cmd.ParseFlags(args); err != nil {
		_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  menu      Start the interactive menu (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  add       Add a book\n")
	fmt.Fprintf(os.Stderr, "  list      List every book\n")
	fmt.Fprintf(os.Stderr, "  toggle    Switch a book between Read and Queued\n")
	fmt.Fprintf(os.Stderr, "  search    Find books by title or category\n")
	fmt.Fprintf(os.Stderr, "  delete    Remove books by ID or title\n")
	fmt.Fprintf(os.Stderr, "  export    Export the catalog to CSV\n")
	fmt.Fprintf(os.Stderr, "  reset     Delete every book and start over\n")
	fmt.Fprintf(os.Stderr, "  version   Print version information\n")
	fmt.Fprintf(os.Stderr, "\nEnvironment: DATABASE_PATH, LOG_FILE, LOG_LEVEL, EXPORT_PATH, CLEAR_SCREEN\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
