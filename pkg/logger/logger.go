package logger

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level    string
	Format   string // text | json
	Output   string // stdout | file
	FilePath string
}

// Configure sets up the logrus standard logger used across the service.
func Configure(opts Options) error {
	return apply(log.StandardLogger(), opts)
}

func apply(logger *log.Logger, opts Options) error {
	level := opts.Level
	if level == "" {
		level = "info"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(parsed)

	switch opts.Format {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		logger.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	var output io.Writer = os.Stdout
	if opts.Output == "file" {
		path := opts.FilePath
		if path == "" {
			path = "logs/voya.log"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		output = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		}
	}
	logger.SetOutput(output)

	return nil
}
