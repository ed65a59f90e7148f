package export

import (
	"io"

	"github.com/idlab-discover/fraudboard-cli/internal/logging"
)

var logger = &logging.Logger{PrefixText: "Export:", PrefixColor: logging.FgYellow}

// SetLogger sets an optional destination for export logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(cycleID string, format string, args ...any) {
	logger.Logf(cycleID, format, args...)
}
