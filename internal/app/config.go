package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"texteditor/internal/logger"

	"github.com/rs/zerolog"
)

// Config holds the start-up settings read from the environment
type Config struct {
	LogLevel       zerolog.Level
	UseJSONLogging bool
	LogFile        string
	Clipboard      string
	WatchFiles     bool
	TrackFiles     bool
}

func DefaultConfig() Config {
	return Config{
		LogLevel:       zerolog.InfoLevel,
		UseJSONLogging: false,
		Clipboard:      "fyne",
		WatchFiles:     true,
		TrackFiles:     true,
	}
}

// LoadConfig reads TEXTEDITOR_* variables over the defaults
func LoadConfig() Config {
	config := DefaultConfig()

	if level := os.Getenv("TEXTEDITOR_LOG_LEVEL"); level != "" {
		config.LogLevel = logger.ParseLevel(level)
	} else if os.Getenv("DEBUG") == "1" {
		config.LogLevel = zerolog.DebugLevel
	}

	if os.Getenv("TEXTEDITOR_JSON_LOGS") == "true" {
		config.UseJSONLogging = true
	}

	config.LogFile = os.Getenv("TEXTEDITOR_LOG_FILE")

	if strings.EqualFold(os.Getenv("TEXTEDITOR_CLIPBOARD"), "system") {
		config.Clipboard = "system"
	}

	if os.Getenv("TEXTEDITOR_WATCH") == "false" {
		config.WatchFiles = false
	}

	if os.Getenv("TEXTEDITOR_TRACK_FILES") == "false" {
		config.TrackFiles = false
	}

	return config
}

// NewLogger builds the application logger for this configuration. Lines
// go to stderr unless LogFile names a file to append to; the returned
// function closes that file.
func (c Config) NewLogger() (logger.Logger, func() error, error) {
	var out io.Writer = os.Stderr
	closeLog := func() error { return nil }

	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeLog = f.Close
	}

	if c.UseJSONLogging {
		return logger.NewZerolog(out, c.LogLevel), closeLog, nil
	}
	return logger.NewConsole(out, c.LogLevel), closeLog, nil
}
