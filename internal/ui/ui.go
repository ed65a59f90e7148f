package ui

import "github.com/idlab-discover/fraudboard-cli/internal/logging"

// Init configures terminal output. When disable is true, log prefixes are
// written without ANSI color codes.
func Init(disable bool) { logging.DisableColor(disable) }
