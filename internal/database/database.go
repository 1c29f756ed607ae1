package database

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DriverName is the database/sql driver registered by Open. Its connections
// carry the ulower SQL function.
const DriverName = "sqlite3_bookshelf"

var registerDriver sync.Once

// registerUnicodeDriver registers a go-sqlite3 driver whose connections
// provide ulower(text), a lower() that folds non-ASCII letters as well.
func registerUnicodeDriver() {
	registerDriver.Do(func() {
		sql.Register(DriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("ulower", unicodeLower, true)
			},
		})
	})
}

func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		if s == nil {
			return nil
		}
		return strings.ToLower(string(s))
	}
	return v
}

// Open returns a fresh connection to the SQLite file at dbPath. The caller
// owns it and must release it with Close.
func Open(dbPath string, log *zap.Logger) (*gorm.DB, error) {
	registerUnicodeDriver()
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: DriverName, DSN: dbPath}), &gorm.Config{
		Logger:                 gormLogger(log),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormLogger routes gorm's statement log into the application log file.
// Statements are only traced when the application runs at debug level;
// failures are reported by the callers with their own context.
func gormLogger(log *zap.Logger) logger.Interface {
	level := logger.Silent
	if log.Core().Enabled(zapcore.DebugLevel) {
		level = logger.Info
	}
	std, err := zap.NewStdLogAt(log, zapcore.DebugLevel)
	if err != nil {
		return logger.Discard
	}
	return logger.New(std, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
