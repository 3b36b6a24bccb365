package logger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SetupLogger sends all log output to stderr, keeping stdout free for the
// templates document, and applies level.
func SetupLogger(level string) error {
	return setup(os.Stderr, level)
}

func setup(out io.Writer, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	logrus.SetOutput(out)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return nil
}
