package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	// Determine if JSON format should be used
	jsonFormat := os.Getenv("BINCASE_JSON_LOG") == "1"

	// Support log file output
	if logPath := os.Getenv("BINCASE_LOG_PATH"); logPath != "" {
		if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			output = file
		}
	}

	// Add prefix for non-JSON output
	if !jsonFormat {
		output = NewPrefixWriter("▸ ", output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// GetLogLevel returns the configured log level from environment
func GetLogLevel() string {
	level := os.Getenv("BINCASE_LOG_LEVEL")
	if level == "" {
		level = "warn" // Default to warn for production safety
	}
	return level
}
