package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the logging interface consumed by every layer of the SDK.
// Arguments are alternating key/value pairs, slog style.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// ZeroLogger implements Logger on top of zerolog.
type ZeroLogger struct {
	logger zerolog.Logger
}

func New(w io.Writer) *ZeroLogger {
	return &ZeroLogger{
		logger: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// FromZerolog wraps an existing zerolog.Logger, so embedders can share
// their own configured instance with the SDK.
func FromZerolog(l zerolog.Logger) *ZeroLogger {
	return &ZeroLogger{logger: l}
}

func (z *ZeroLogger) Error(msg string, args ...any) {
	z.logger.Error().Fields(args).Msg(msg)
}

func (z *ZeroLogger) Warn(msg string, args ...any) {
	z.logger.Warn().Fields(args).Msg(msg)
}

func (z *ZeroLogger) Info(msg string, args ...any) {
	z.logger.Info().Fields(args).Msg(msg)
}

func (z *ZeroLogger) Debug(msg string, args ...any) {
	z.logger.Debug().Fields(args).Msg(msg)
}

// Noop discards everything. Used as the default when no logger is configured.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Error(msg string, args ...any) {}
func (n *Noop) Warn(msg string, args ...any)  {}
func (n *Noop) Info(msg string, args ...any)  {}
func (n *Noop) Debug(msg string, args ...any) {}
