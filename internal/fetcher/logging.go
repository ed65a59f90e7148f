package fetcher

import (
	"io"

	"github.com/idlab-discover/fraudboard-cli/internal/logging"
)

var logger = &logging.Logger{PrefixText: "Fetch:", PrefixColor: logging.FgMagenta, OmitCycle: true}

// SetLogger sets an optional destination for fetch logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
