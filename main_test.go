package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergev/psharp/config"
)

func newTestSession(t *testing.T) (*session, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	log := &logger{out: &out, err: &errOut}
	return newSession(config.Default(), log), &out, &errOut
}

func TestBufferedREPL(t *testing.T) {
	s, out, errOut := newTestSession(t)
	input := "let x = 40\n\nx + 2\nif 0 then 1\n1 / 0\nx\nexit\nx + 100\n"
	s.runBufferedREPL(bufio.NewReader(strings.NewReader(input)))

	if got, want := out.String(), "40\n42\n40\n"; got != want {
		t.Fatalf("unexpected output %q, want %q", got, want)
	}
	if !strings.Contains(errOut.String(), "Runtime Error: Division by zero") {
		t.Fatalf("expected division diagnostic, got %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "Call stack:\n  File <stdin>, line 1, in <program>") {
		t.Fatalf("expected traceback, got %q", errOut.String())
	}
}

func TestBufferedREPLWithoutTrailingNewline(t *testing.T) {
	s, out, _ := newTestSession(t)
	s.runBufferedREPL(bufio.NewReader(strings.NewReader("2 ^ 3 ^ 2")))
	if got := out.String(); got != "512\n" {
		t.Fatalf("expected 512, got %q", got)
	}
}

func TestExecLineReportsFailure(t *testing.T) {
	s, _, errOut := newTestSession(t)
	if s.execLine("<eval>", "(1 + 2") {
		t.Fatalf("expected syntax error to fail")
	}
	want := "Invalid Syntax: expected ')'\nFile <eval>, line 1\n\n(1 + 2\n      ^\n"
	if got := errOut.String(); got != want {
		t.Fatalf("unexpected diagnostic %q, want %q", got, want)
	}
}

func TestTraceLogsTokensAndTree(t *testing.T) {
	s, _, errOut := newTestSession(t)
	s.log.verbose = true
	s.debugLex = true
	s.debugParse = true
	s.execLine("<eval>", "1 + 2")

	got := errOut.String()
	if !strings.Contains(got, "lex -> INT:1 + INT:2 EOF") {
		t.Fatalf("missing token trace in %q", got)
	}
	if !strings.Contains(got, "parse -> (INT:1, +, INT:2)") {
		t.Fatalf("missing tree trace in %q", got)
	}
}

func TestExecFile(t *testing.T) {
	s, _, errOut := newTestSession(t)
	path := filepath.Join(t.TempDir(), "main.ps")
	if err := os.WriteFile(path, []byte("let answer = 6 * 7\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if !s.execFile(path) {
		t.Fatalf("execFile failed: %s", errOut.String())
	}
	if val, ok := s.env.Get("answer"); !ok || val.Int() != 42 {
		t.Fatalf("expected answer=42 after script, got %v", val)
	}
}

func TestDumpGlobals(t *testing.T) {
	s, out, _ := newTestSession(t)
	s.execLine("<eval>", "let a = 1.5")
	out.Reset()
	s.dumpGlobals()
	want := "a = 1.5\nfalse = 0\nnothing = 0\ntrue = 1\n"
	if got := out.String(); got != want {
		t.Fatalf("unexpected dump %q, want %q", got, want)
	}
}

func TestLastLines(t *testing.T) {
	tests := []struct {
		text  string
		limit int
		want  string
	}{
		{"a\nb\nc\n", 2, "b\nc\n"},
		{"a\nb\n", 5, "a\nb\n"},
		{"a\nb\n", 0, ""},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := lastLines(tt.text, tt.limit); got != tt.want {
			t.Fatalf("lastLines(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
		}
	}
}

func TestLoggerColor(t *testing.T) {
	var out bytes.Buffer
	l := &logger{out: &out, err: &out, color: true}
	l.LogInteractive("7")
	if got := out.String(); got != ansiGreenBold+"7"+ansiReset+"\n" {
		t.Fatalf("unexpected coloured output %q", got)
	}

	out.Reset()
	l.color = false
	l.LogDebug("hidden")
	if out.Len() != 0 {
		t.Fatalf("debug output must be suppressed unless verbose, got %q", out.String())
	}
}
