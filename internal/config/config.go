package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		Log
		Export
		UI
	}

	Database struct {
		Path string
	}
	Log struct {
		File  string // Append-only log file
		Level string // debug, info, warn, error
	}
	Export struct {
		Path string // Default CSV export destination
	}
	UI struct {
		ClearScreen bool // Clear the terminal between menu iterations
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("log_file", DefaultLogPath)
	v.SetDefault("log_level", "info")
	v.SetDefault("export_path", DefaultExportPath)
	v.SetDefault("clear_screen", true)

	return &Config{
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Log: Log{
			File:  v.GetString("LOG_FILE"),
			Level: v.GetString("LOG_LEVEL"),
		},
		Export: Export{
			Path: v.GetString("EXPORT_PATH"),
		},
		UI: UI{
			ClearScreen: v.GetBool("CLEAR_SCREEN"),
		},
	}
}
