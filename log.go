package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ansiReset     = "\x1b[0;0m"
	ansiBlue      = "\x1b[34;22m"
	ansiRed       = "\x1b[31;22m"
	ansiBlueBold  = "\x1b[34;1m"
	ansiRedBold   = "\x1b[31;1m"
	ansiGreenBold = "\x1b[32;1m"
)

// logger writes coloured diagnostics. Debug lines only appear when verbose.
type logger struct {
	out     io.Writer
	err     io.Writer
	color   bool
	verbose bool
}

func newLogger(color, verbose bool) *logger {
	if os.Getenv("NO_COLOR") != "" {
		color = false
	}
	return &logger{
		out:     os.Stdout,
		err:     os.Stderr,
		color:   color,
		verbose: verbose,
	}
}

func (l *logger) paint(style, s string) string {
	if !l.color {
		return s
	}
	return style + s + ansiReset
}

func (l *logger) LogDebug(args ...string) {
	if !l.verbose {
		return
	}
	fmt.Fprintln(l.err, l.paint(ansiBlueBold, "debug: ")+l.paint(ansiBlue, strings.Join(args, " ")))
}

func (l *logger) LogDebugf(format string, args ...interface{}) {
	l.LogDebug(fmt.Sprintf(format, args...))
}

// LogInteractive prints a value produced by the program.
func (l *logger) LogInteractive(s string) {
	fmt.Fprintln(l.out, l.paint(ansiGreenBold, s))
}

// LogSafeErr reports an error without exiting.
func (l *logger) LogSafeErr(err error) {
	fmt.Fprintln(l.err, l.paint(ansiRed, err.Error()))
}

// LogFatal reports an error that stops the interpreter.
func (l *logger) LogFatal(format string, args ...interface{}) {
	fmt.Fprintln(l.err, l.paint(ansiRedBold, "psharp: ")+l.paint(ansiRed, fmt.Sprintf(format, args...)))
}
