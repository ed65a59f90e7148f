package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Logger is a tiny opt-in logger used across internal packages.
// When Writer is nil, logging is disabled.
//
// The output format is:
//
//	<ColoredPrefix> cycle=<cycleID> <formattedMessage>\n
//
// where <cycleID> is trimmed and defaults to "(none)".
type Logger struct {
	Writer io.Writer

	PrefixText  string
	PrefixColor string

	// OmitCycle controls whether the cycle ID field is written.
	// When false (default), output includes: "cycle=<id>".
	OmitCycle bool

	mu sync.Mutex
}

func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	l.Writer = w
	l.mu.Unlock()
}

func (l *Logger) Enabled() bool { return l != nil && l.Writer != nil }

func (l *Logger) Logf(cycleID string, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Writer == nil {
		return
	}
	prefix := l.PrefixText
	if prefix == "" {
		prefix = "Log:"
	}
	if l.PrefixColor != "" {
		prefix = Color(prefix, l.PrefixColor)
	}
	msg := fmt.Sprintf(format, args...)
	if l.OmitCycle {
		fmt.Fprintf(l.Writer, "%s %s\n", prefix, msg)
		return
	}

	c := strings.TrimSpace(cycleID)
	if c == "" {
		c = "(none)"
	}
	fmt.Fprintf(l.Writer, "%s cycle=%s %s\n", prefix, c, msg)
}
