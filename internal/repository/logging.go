package repository

import (
	"context"
	"io"

	"github.com/idlab-discover/fraudboard-cli/internal/logging"
)

var logger = &logging.Logger{PrefixText: "Repo:", PrefixColor: logging.FgCyan}

// SetLogger sets an optional destination for repository logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(ctx context.Context, format string, args ...any) {
	logger.Logf(logging.CycleFrom(ctx), format, args...)
}
