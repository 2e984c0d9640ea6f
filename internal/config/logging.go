package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// SetupLogging configures the global logger. Colors are forced when out is a terminal.
func SetupLogging(level string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}

	colors := false
	if f, ok := out.(*os.File); ok {
		colors = term.IsTerminal(int(f.Fd()))
	}
	log.SetFormatter(&log.TextFormatter{
		ForceColors:            colors,
		DisableColors:          !colors,
		FullTimestamp:          true,
		DisableLevelTruncation: true,
	})
	log.SetOutput(out)
	log.SetLevel(lvl)
	return nil
}
