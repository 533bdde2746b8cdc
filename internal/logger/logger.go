package logger

import (
	"io"
	"os"
	"time"

	"backend-erickshaw/internal/config"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. When cfg.LogFile is set the
// output goes to a rotating file, otherwise to stderr.
func Setup(cfg config.Config) {
	logrus.SetOutput(output(cfg.LogFile))
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func output(path string) io.Writer {
	if path == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
