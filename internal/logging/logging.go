// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at stderr, as a console writer when
// pretty is set and as JSON lines otherwise, and sets the global level.
func Setup(level string, pretty bool) error {
	return SetupWriter(os.Stderr, level, pretty)
}

// SetupWriter is Setup with an explicit output.
func SetupWriter(w io.Writer, level string, pretty bool) error {
	lvl := zerolog.InfoLevel
	if level = strings.TrimSpace(level); level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return fmt.Errorf("log level %q: %w", level, err)
		}
		lvl = parsed
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}
