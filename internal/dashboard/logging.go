package dashboard

import (
	"context"
	"io"

	"github.com/idlab-discover/fraudboard-cli/internal/logging"
)

var logger = &logging.Logger{PrefixText: "Dashboard:", PrefixColor: logging.FgGreen}

// SetLogger sets an optional destination for state machine logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(ctx context.Context, format string, args ...any) {
	logger.Logf(logging.CycleFrom(ctx), format, args...)
}
