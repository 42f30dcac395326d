package pdfscrub

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

func newLogger(w io.Writer, level string, noColor bool) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    noColor,
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})
	return l, nil
}
