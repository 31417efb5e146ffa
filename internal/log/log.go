// Package log wraps apex/log with the single line format used by segysak.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// InitLogger installs the segysak handler and sets the level from the
// SEGYSAK_LOG environment variable (debug, info, warn, error, fatal).
// Warnings are shown when the variable is unset.
func InitLogger() {
	log.SetHandler(NewHandler(os.Stderr))
	log.SetLevel(parseLevel(os.Getenv("SEGYSAK_LOG")))
}

// SetDebug lowers the level to debug.
func SetDebug() {
	log.SetLevel(log.DebugLevel)
}

// SetInfo lowers the level to info unless it is already lower.
func SetInfo() {
	if l, ok := log.Log.(*log.Logger); ok && l.Level > log.InfoLevel {
		log.SetLevel(log.InfoLevel)
	}
}

func parseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	}
	return log.WarnLevel
}

// Handler formats entries as "time level message key=value ...".
type Handler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewHandler returns a handler writing to w.
func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w}
}

// HandleLog implements the log.Handler interface
func (h *Handler) HandleLog(e *log.Entry) error {
	level := "?"
	switch e.Level {
	case log.DebugLevel:
		level = "D"
	case log.InfoLevel:
		level = "I"
	case log.WarnLevel:
		level = "W"
	case log.ErrorLevel:
		level = "E"
	case log.FatalLevel:
		level = "F"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s", e.Timestamp.Format(time.TimeOnly), level, e.Message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&sb, " %s=%v", name, e.Fields.Get(name))
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithField returns an entry carrying one field.
func WithField(key string, value interface{}) *log.Entry {
	return log.WithField(key, value)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
