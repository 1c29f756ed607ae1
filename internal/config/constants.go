package config

// Default file locations, relative to the working directory
const (
	// DefaultDatabasePath is the SQLite file holding the books table
	DefaultDatabasePath = "./books.db"

	// DefaultLogPath is the append-only application log
	DefaultLogPath = "./books.log"

	// DefaultExportPath is where the CSV export lands unless overridden
	DefaultExportPath = "./books_export.csv"
)
