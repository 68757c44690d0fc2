package logs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	Logger  = logrus.New()
	logFile *os.File
	mu      sync.Mutex
)

// This runs automatically when the package is imported.
// Creates a logger in the current directory as a fallback; stdout
// belongs to the TUI, so everything goes to a file.
func init() {
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if lvl, err := logrus.ParseLevel(os.Getenv("TRIAGE_LOG_LEVEL")); err == nil {
		Logger.SetLevel(lvl)
	} else {
		Logger.SetLevel(logrus.InfoLevel)
	}

	f, err := os.OpenFile("debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Logger.SetOutput(os.Stderr)
		return
	}
	logFile = f
	Logger.SetOutput(f)
}

// Initialize reinitializes the logger to write to a new directory.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" || logDir == "." {
		return nil
	}

	logPath := filepath.Join(logDir, "debug.log")

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Logger.WithError(err).Warnf("could not open log file at %s", logPath)
		return err
	}

	if logFile != nil {
		logFile.Close()
	}

	logFile = f
	Logger.SetOutput(f)
	Logger.Debugf("logger reinitialized to %s", logPath)

	return nil
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		return logFile.Close()
	}
	return nil
}
