// Package stdlogger adapts the global zerolog logger to printf style logger
// interfaces such as gorm's logger.Writer.
package stdlogger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to zerolog.
type Logger struct {
	level     zerolog.Level
	component string
}

// New returns a Logger whose Printf writes at debug level.
func New() *Logger {
	return &Logger{level: zerolog.DebugLevel}
}

// WithLevel returns a copy logging Printf calls at l.
func (l *Logger) WithLevel(level zerolog.Level) *Logger {
	c := *l
	c.level = level

	return &c
}

// WithComponent returns a copy tagging every event with component.
func (l *Logger) WithComponent(component string) *Logger {
	c := *l
	c.component = component

	return &c
}

func (l *Logger) msgf(level zerolog.Level, format string, v ...any) {
	event := log.WithLevel(level)
	if l.component != "" {
		event = event.Str("component", l.component)
	}

	// gorm prefixes its messages with a newline
	event.Msgf(strings.TrimLeft(format, "\n"), v...)
}

// Printf implements gorm's logger.Writer.
func (l *Logger) Printf(format string, v ...any) {
	l.msgf(l.level, format, v...)
}
