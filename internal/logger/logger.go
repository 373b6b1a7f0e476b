package logger

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Conf controls where and how verbosely internal logs are written.
type Conf struct {
	// Level sets the verbosity (e.g. DEBUG, INFO, WARN, ERROR).
	Level string
	// Dir, when set, appends logs to attendance.log inside it.
	Dir string
	// StdErr duplicates logs to stderr even when Dir is set.
	StdErr bool
}

// Init configures the global logrus logger. When neither a directory nor
// stderr is requested, logs go to stderr.
func Init(c Conf) error {
	level := log.InfoLevel
	if c.Level != "" {
		parsed, err := log.ParseLevel(c.Level)
		if err != nil {
			return err
		}
		level = parsed
	}
	log.SetLevel(level)
	log.SetFormatter(
		&log.TextFormatter{
			FullTimestamp: true,
		},
	)

	var writers []io.Writer
	if c.Dir != "" {
		f, err := os.OpenFile(
			filepath.Join(c.Dir, "attendance.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
		)
		if err != nil {
			return err
		}
		writers = append(writers, f)
	}
	if c.StdErr || len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}
