package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLogger_EnabledAndSetWriter(t *testing.T) {
	var l Logger
	if l.Enabled() {
		t.Fatalf("expected disabled when Writer is nil")
	}

	var buf bytes.Buffer
	l.SetWriter(&buf)
	if !l.Enabled() {
		t.Fatalf("expected enabled after setting Writer")
	}
}

func TestLogger_Logf_WritesPrefixCycleAndMessage(t *testing.T) {
	DisableColor(true) // disable ANSI color for stable assertions

	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", PrefixColor: FgGreen}
	l.Logf("  1234-abcd  ", "msg %d", 1)

	out := buf.String()
	if !strings.Contains(out, "X:") {
		t.Fatalf("expected prefix, got %q", out)
	}
	if !strings.Contains(out, "cycle=1234-abcd") {
		t.Fatalf("expected trimmed cycle id, got %q", out)
	}
	if !strings.Contains(out, "msg 1") {
		t.Fatalf("expected formatted message, got %q", out)
	}
}

func TestLogger_Logf_EmptyCycleID_UsesNone(t *testing.T) {
	DisableColor(true)

	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:"}
	l.Logf("   ", "x")

	out := buf.String()
	if !strings.Contains(out, "cycle=(none)") {
		t.Fatalf("expected placeholder cycle id, got %q", out)
	}
}

func TestLogger_Logf_DefaultPrefix(t *testing.T) {
	DisableColor(true)

	var buf bytes.Buffer
	l := Logger{Writer: &buf}
	l.Logf("c1", "x")

	out := buf.String()
	if !strings.Contains(out, "Log:") {
		t.Fatalf("expected default prefix, got %q", out)
	}
}

func TestLogger_Logf_OmitCycle(t *testing.T) {
	DisableColor(true)

	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", OmitCycle: true}
	l.Logf("c1", "x")

	out := buf.String()
	if out != "X: x\n" {
		t.Fatalf("output = %q, want %q", out, "X: x\\n")
	}
}

func TestLogger_Logf_NilReceiver_NoPanic(t *testing.T) {
	DisableColor(true)

	var l *Logger
	l.Logf("c1", "x")
}

func TestWithCycle_RoundTrip(t *testing.T) {
	ctx := WithCycle(context.Background(), "c-42")
	if got := CycleFrom(ctx); got != "c-42" {
		t.Fatalf("CycleFrom = %q", got)
	}
	if got := CycleFrom(context.Background()); got != "" {
		t.Fatalf("CycleFrom(empty) = %q", got)
	}
}

func TestColorAppliesANSICodes(t *testing.T) {
	DisableColor(false)
	got := Color("hello", FgGreen)
	want := FgGreen + "hello" + Reset
	if got != want {
		t.Fatalf("Color() = %q, want %q", got, want)
	}
}

func TestColorDisabled(t *testing.T) {
	DisableColor(true)
	t.Cleanup(func() { DisableColor(false) })
	if got := Color("hello", FgRed); got != "hello" {
		t.Fatalf("Color() with colors disabled = %q", got)
	}
}
