// file: logger/logger.go

package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide structured logger. It is usable before Init is
// called; Init only adjusts level, format and output.
var Log = logrus.New()

// Init configures the shared logger. An unknown level falls back to info and
// any format other than "json" selects the text formatter.
func Init(level, format string) {
	InitWithOutput(level, format, os.Stderr)
}

// InitWithOutput is Init with an explicit destination. The terminal writes its
// screen to stdout, so logs go elsewhere.
func InitWithOutput(level, format string, out io.Writer) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
	Log.SetOutput(out)

	if format == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
