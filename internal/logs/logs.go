package logs

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the shared application logger, configured once by Init.
var Logger = logrus.New()

type Options struct {
	Level  string // trace|debug|info|warn|error
	Format string // text|json
	File   string // optional; mirrored to stderr
}

func Init(o Options) {
	if lvl, err := logrus.ParseLevel(o.Level); err == nil {
		Logger.SetLevel(lvl)
	}
	switch o.Format {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if o.File != "" {
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			Logger.Warnf("log file %s: %v (falling back to stderr)", o.File, err)
			return
		}
		Logger.SetOutput(io.MultiWriter(os.Stderr, f))
	}
}
