package log

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the interface that the loggers used by the library will use.
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	WithValues(kv map[string]interface{}) Logger
}

// Dummy logger doesn't log anything.
var Dummy = &dummy{}

type dummy struct{}

func (d *dummy) Infof(format string, args ...interface{})    {}
func (d *dummy) Warningf(format string, args ...interface{}) {}
func (d *dummy) Errorf(format string, args ...interface{})   {}
func (d *dummy) Debugf(format string, args ...interface{})   {}
func (d *dummy) WithValues(kv map[string]interface{}) Logger { return d }

type logger struct {
	l zerolog.Logger
}

// NewZerolog returns a logger that writes JSON lines to w using zerolog.
func NewZerolog(w io.Writer, debug bool) Logger {
	lvl := zerolog.InfoLevel
	if debug {
		lvl = zerolog.DebugLevel
	}

	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &logger{l: l}
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.l.Info().Msgf(format, args...)
}

func (l *logger) Warningf(format string, args ...interface{}) {
	l.l.Warn().Msgf(format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.l.Error().Msgf(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.l.Debug().Msgf(format, args...)
}

func (l *logger) WithValues(kv map[string]interface{}) Logger {
	return &logger{l: l.l.With().Fields(kv).Logger()}
}
