package dashboard

import (
	"fmt"
	"strings"
)

// Policy decides what happens when real results cannot be shown.
type Policy int

const (
	// PolicyDegrade substitutes the fallback dataset and reports a warning.
	PolicyDegrade Policy = iota
	// PolicyStrict never substitutes data; every failure ends in Failed.
	PolicyStrict
)

func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	default:
		return "degrade"
	}
}

// ParsePolicy accepts "degrade" (default when empty) or "strict".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "degrade":
		return PolicyDegrade, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyDegrade, fmt.Errorf("invalid policy %q (expected degrade|strict)", s)
	}
}
