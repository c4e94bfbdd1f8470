// Package log : process wide logger shared by the hawalon and directory chaincodes
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	logger = newLogger(os.Stdout)

	// IsDev : true when chaincode runs in development mode,
	// enables verbose dumps of stored records
	IsDev bool
)

// InitLogger : configures logger for dev or production use.
// dev mode logs everything at debug level.
func InitLogger(isDev bool) {
	IsDev = isDev
	if isDev {
		logger.SetLevel(logrus.DebugLevel)
		return
	}
	logger.SetLevel(logrus.InfoLevel)
}

// SetLevel : sets level by name (trace, debug, info, warn, error).
// unknown names fall back to info.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
}

// SetOutput : redirects log output, used by tests
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
func Info(args ...interface{})                  { logger.Info(args...) }

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&formatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

type formatter struct{}

func (*formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}
	timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(b, "[%s] [%s] %s\n", timestamp, strings.ToUpper(entry.Level.String()), entry.Message)
	return b.Bytes(), nil
}
