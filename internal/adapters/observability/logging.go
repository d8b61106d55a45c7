package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the process-wide zerolog Logger, tagged with the
// service name. APP_ENV=dev (or development) uses a human-friendly
// console writer at debug level; everything else is JSON at info.
func NewLogger(env string) zerolog.Logger {
	l := zerolog.New(os.Stdout).Level(zerolog.InfoLevel)
	if env == "dev" || env == "development" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel)
	}
	return l.With().Timestamp().Str("service", "travelers-api").Logger()
}
