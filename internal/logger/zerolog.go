package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologAdapter implements Logger on top of zerolog. Every line carries
// the component that wrote it and the fields passed alongside.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerolog writes one JSON object per line to writer
func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("app", "texteditor").
		Logger()

	return &ZerologAdapter{logger: logger}
}

// NewConsole writes human readable lines to writer, coloured only when
// writer is the terminal's stderr.
func NewConsole(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	console := zerolog.ConsoleWriter{
		Out:        writer,
		TimeFormat: time.TimeOnly,
		NoColor:    writer != os.Stderr,
	}
	return NewZerolog(console, level)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	write(z.logger.Info(), component, message, fields)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	write(z.logger.Error().Err(err), component, "operation failed", fields)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	write(z.logger.Warn(), component, message, fields)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	write(z.logger.Debug(), component, message, fields)
}

func write(event *zerolog.Event, component, message string, fields map[string]interface{}) {
	event.Str("component", component).
		Fields(fields).
		Msg(message)
}
