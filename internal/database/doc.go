// Package database provides the SQLite connection layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Scoped connection setup (gorm + sqlite driver)
//	├── errors.go        # StorageError and SQLite result-code classification
//	└── books/           # The books table: schema, CRUD, search, export, reset
//
// # Scoped Connections
//
// Connections are not shared. Each repository operation opens one, runs a
// single statement and closes it before returning:
//
//	db, err := database.Open("./books.db", log)
//	if err != nil {
//		return err
//	}
//	defer database.Close(db)
//
// Because nothing holds the file open between operations, the catalog can be
// reset by deleting the file outright.
//
// # SQL Functions
//
// Open uses its own go-sqlite3 driver registration (DriverName). Every
// connection it hands out provides ulower(text), which lower-cases non-ASCII
// letters too. SQLite's built-in LOWER and LIKE only fold ASCII, so
// case-insensitive matching must compare ulower on both sides:
//
//	WHERE ulower(title) LIKE ulower(?)
//
// # Adding a New Table
//
//  1. Create a new sub-package: internal/database/<table>/
//  2. Define a Repository holding the database path and a *zap.Logger
//  3. Route every statement through a single execute helper that opens,
//     runs, commits and closes, wrapping failures in *StorageError
//  4. Add a compile-time interface check in internal/interfaces
package database
