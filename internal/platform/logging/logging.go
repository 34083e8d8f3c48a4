package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development mode gets a human-readable
// console writer at debug level; production emits JSON at info level.
func New(env string) zerolog.Logger {
	if env == "production" {
		return zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
