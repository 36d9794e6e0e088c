package display

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the package logger, used by devices without a Config.Logger and by NopConn.
//
// Set DISPLAY_DEBUG in the environment to log every command and data transfer.
var Logger zerolog.Logger

func init() {
	level := zerolog.InfoLevel
	if os.Getenv("DISPLAY_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.StampMilli,
	}).Level(level).With().Timestamp().Logger()
}
