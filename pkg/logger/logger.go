package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Info goes to stdout, Error to stderr, so process supervisors can split the
// streams.
var (
	Info  = newLogger(os.Stdout, logrus.InfoLevel)
	Error = newLogger(os.Stderr, logrus.ErrorLevel)
)

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return l
}
