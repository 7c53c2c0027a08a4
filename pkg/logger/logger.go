// Package logger is the zerolog setup shared by the TruthLens server, the
// analyze command and the tests.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is a zerolog.Logger that can be narrowed to one component,
// request or analysis.
type Logger struct {
	zerolog.Logger
}

// Config mirrors the logger section of the TruthLens config file.
type Config struct {
	Level      string
	Format     string // console or json
	TimeFormat string
	Output     io.Writer // stdout when nil
}

// New builds a logger from cfg. Unknown levels fall back to info.
func New(cfg Config) *Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = timeFormat

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	}

	return &Logger{
		Logger: zerolog.New(out).Level(levelFor(cfg.Level)).With().Timestamp().Logger(),
	}
}

// NewDevelopment logs everything in colour with short timestamps.
func NewDevelopment() *Logger {
	return New(Config{Level: "debug", Format: "console", TimeFormat: "15:04:05"})
}

// NewNop discards every entry.
func NewNop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithComponent tags entries with the subsystem that wrote them, such as
// "engine" or "redis".
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

// WithRequestID tags entries with the chi request ID.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.with("request_id", requestID)
}

// WithAnalysisID tags entries with the verdict they belong to.
func (l *Logger) WithAnalysisID(analysisID string) *Logger {
	return l.with("analysis_id", analysisID)
}

// WithFields attaches arbitrary fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	ctx := l.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{Logger: ctx.Logger()}
}

func (l *Logger) with(key, value string) *Logger {
	return &Logger{Logger: l.With().Str(key, value).Logger()}
}

func levelFor(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return level
}
