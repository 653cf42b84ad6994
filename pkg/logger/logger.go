// Package logger предоставляет единый интерфейс логирования поверх zerolog.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger — интерфейс логгера, который внедряется в компоненты через конструкторы.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
}

// ZerologLogger реализует Logger поверх zerolog.Logger.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger создаёт логгер, читающий уровень и формат из LOG_LEVEL и LOG_FORMAT.
func NewZerologLogger() *ZerologLogger {
	var w io.Writer = os.Stdout
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return NewWithWriter(w, level)
}

// NewWithWriter создаёт логгер с явно заданным приёмником и уровнем.
func NewWithWriter(w io.Writer, level zerolog.Level) *ZerologLogger {
	return &ZerologLogger{
		log: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// NewNop возвращает логгер, который ничего не пишет.
func NewNop() *ZerologLogger {
	return &ZerologLogger{log: zerolog.Nop()}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(err error, format string, args ...any) {
	l.log.Error().Err(err).Msgf(format, args...)
}
