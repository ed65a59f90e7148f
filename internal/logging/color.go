package logging

// Basic ANSI color codes for log prefixes.
const (
	Reset     = "\033[0m"
	FgCyan    = "\033[36m"
	FgGreen   = "\033[32m"
	FgMagenta = "\033[35m"
	FgYellow  = "\033[33m"
	FgRed     = "\033[31m"
	FgBlue    = "\033[34m"
)

var noColor bool

// DisableColor turns prefix coloring off (tests and piped output).
func DisableColor(disable bool) { noColor = disable }

// Color wraps a string with the given ANSI code.
func Color(s string, code string) string {
	if noColor || code == "" {
		return s
	}
	return code + s + Reset
}
