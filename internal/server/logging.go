package server

import (
	"io"

	"github.com/idlab-discover/fraudboard-cli/internal/logging"
)

var logger = &logging.Logger{PrefixText: "Serve:", PrefixColor: logging.FgBlue, OmitCycle: true}

// SetLogger sets an optional destination for server logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
