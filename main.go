package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/sergev/psharp/config"
	"github.com/sergev/psharp/lang"
	"github.com/sergev/psharp/parser"
	"github.com/sergev/psharp/runtime"
)

const Version = "0.1.0"

const helpMessage = `
psharp evaluates arithmetic, comparison and conditional expressions.
	psharp v%s

With no arguments psharp starts a repl, reading one expression per line.
	psharp
	psharp> let x = 5
Run scripts by passing them to the interpreter, one expression per line.
	psharp main.ps other.ps
Evaluate a single expression with -eval.
	psharp -eval "if 1 < 2 then 10 else 20"

`

// replInput is the name given to text typed at the prompt.
const replInput = "<stdin>"

func main() {
	flag.Usage = func() {
		fmt.Printf(helpMessage, Version)
		flag.PrintDefaults()
	}

	verbose := flag.Bool("verbose", false, "Log all interpreter debug information")
	debugLexer := flag.Bool("debug-lex", false, "Log lexer output")
	debugParser := flag.Bool("debug-parse", false, "Log parser output")
	dump := flag.Bool("dump", false, "Dump global bindings after eval")
	configPath := flag.String("config", config.DefaultPath(), "Path to the YAML configuration file")
	version := flag.Bool("version", false, "Print version string and exit")
	repl := flag.Bool("repl", false, "Run as an interactive repl")
	eval := flag.String("eval", "", "Evaluate argument as a psharp expression")
	flag.Parse()

	if *version {
		fmt.Printf("psharp v%s\n", Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		newLogger(true, false).LogFatal("%v", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Verbose = true
	}

	s := newSession(cfg, newLogger(cfg.Color, cfg.Verbose))
	s.debugLex = *debugLexer || cfg.Verbose
	s.debugParse = *debugParser || cfg.Verbose
	s.log.LogDebugf("config loaded from %s", *configPath)

	files := flag.Args()
	status := 0
	switch {
	case *eval != "":
		if !s.execLine("<eval>", *eval) {
			status = 1
		}
	case len(files) > 0 && !*repl:
		for _, path := range files {
			if !s.execFile(path) {
				status = 1
				break
			}
		}
	default:
		s.runREPL()
	}
	if *dump || cfg.Verbose {
		s.dumpGlobals()
	}
	os.Exit(status)
}

// session is one interpreter lifetime: a single global environment shared by
// every line, script and flag evaluation.
type session struct {
	cfg        *config.Config
	log        *logger
	env        *lang.Env
	debugLex   bool
	debugParse bool
}

func newSession(cfg *config.Config, log *logger) *session {
	return &session{
		cfg: cfg,
		log: log,
		env: runtime.NewGlobalEnv(),
	}
}

// execLine evaluates one expression, printing its value or its diagnostic.
// It reports whether evaluation succeeded.
func (s *session) execLine(name, text string) bool {
	s.trace(name, text)
	val, err := runtime.Run(name, text, s.env)
	if err != nil {
		s.log.LogSafeErr(err)
		return false
	}
	if val != nil {
		s.log.LogInteractive(val.String())
	}
	return true
}

func (s *session) execFile(path string) bool {
	s.log.LogDebugf("running %s", path)
	val, err := runtime.EvaluateFile(s.env, path)
	if err != nil {
		s.log.LogSafeErr(err)
		return false
	}
	if val != nil {
		s.log.LogDebugf("%s => %s", path, val)
	}
	return true
}

// trace logs the tokens and syntax tree of text when asked to. Failures are
// left for the evaluation itself to report.
func (s *session) trace(name, text string) {
	if !s.debugLex && !s.debugParse {
		return
	}
	tokens, err := parser.Tokenize(name, text)
	if err != nil {
		return
	}
	if s.debugLex {
		words := make([]string, len(tokens))
		for i, tok := range tokens {
			words[i] = tok.String()
		}
		s.log.LogDebug("lex ->", strings.Join(words, " "))
	}
	if s.debugParse {
		node, err := parser.Parse(tokens)
		if err != nil {
			return
		}
		s.log.LogDebug("parse ->", node.String())
	}
}

func (s *session) dumpGlobals() {
	for _, name := range s.env.Names() {
		val, _ := s.env.Get(name)
		s.log.LogInteractive(fmt.Sprintf("%s = %s", name, val))
	}
}

func (s *session) runREPL() {
	if !isInteractive() {
		s.runBufferedREPL(bufio.NewReader(os.Stdin))
		return
	}
	s.runInteractiveREPL()
}

// isExit reports whether the line asks the repl to stop.
func isExit(line string) bool {
	return strings.TrimSpace(line) == "exit"
}

func (s *session) runBufferedREPL(reader *bufio.Reader) {
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			s.log.LogFatal("read error: %v", err)
			return
		}
		if isExit(line) {
			return
		}
		if strings.TrimSpace(line) != "" {
			s.execLine(replInput, strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}

func (s *session) runInteractiveREPL() {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	if path := s.cfg.HistoryFile; path != "" {
		if data, err := os.ReadFile(path); err == nil {
			state.ReadHistory(strings.NewReader(lastLines(string(data), s.cfg.HistoryLimit)))
		}
		defer func() {
			if f, err := os.Create(path); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	for {
		input, err := state.Prompt(s.cfg.Prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				s.log.LogFatal("read error: %v", err)
				return
			}
		}
		if isExit(input) {
			return
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		state.AppendHistory(strings.TrimSpace(input))
		s.execLine(replInput, input)
	}
}

// lastLines keeps the final limit lines of history text. A limit of zero
// keeps nothing.
func lastLines(text string, limit int) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if text == "" || limit <= 0 {
		return ""
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return strings.Join(lines, "\n") + "\n"
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
