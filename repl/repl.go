// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"corelang/internal/engine"
	coreerrors "corelang/internal/errors"
	"corelang/internal/lexer"
)

const (
	PROMPT       = "core> "
	CONTINUATION = "...>  "
)

var log = commonlog.GetLogger("core.repl")

// Session is one interactive run over a single symbol table.
type Session struct {
	scanner *bufio.Scanner
	out     io.Writer
	engine  *engine.Engine
	prompt  func(a ...interface{}) string

	pending []string
	entry   int
}

// NewSession prepares a session. Statements read their values from the
// same stream the session reads its lines from.
func NewSession(in io.Reader, out io.Writer, opts engine.Options) *Session {
	s := &Session{
		scanner: bufio.NewScanner(in),
		out:     out,
		prompt:  color.New(color.FgCyan).SprintFunc(),
	}
	opts.Input = engine.NewPromptInputFromScanner(s.scanner, out)
	opts.Output = engine.NewWriterOutput(out)
	s.engine = engine.New(opts)
	return s
}

// Start runs a lenient session until :quit or end of input.
func Start(in io.Reader, out io.Writer) {
	NewSession(in, out, engine.Options{}).Run()
}

func (s *Session) Run() {
	for {
		if len(s.pending) == 0 {
			fmt.Fprint(s.out, s.prompt(PROMPT))
		} else {
			fmt.Fprint(s.out, s.prompt(CONTINUATION))
		}
		if !s.scanner.Scan() {
			fmt.Fprintln(s.out)
			return
		}
		line := s.scanner.Text()
		trimmed := strings.TrimSpace(line)

		if len(s.pending) == 0 && trimmed == "" {
			continue
		}
		if len(s.pending) == 0 && strings.HasPrefix(trimmed, ":") {
			if quit := s.command(trimmed); quit {
				return
			}
			continue
		}

		s.pending = append(s.pending, line)
		source := strings.Join(s.pending, "\n")
		scanner := lexer.NewScanner([]byte(source))
		tokens := scanner.ScanTokens()

		if errs := scanner.Errors(); len(errs) > 0 {
			s.pending = nil
			s.entry++
			s.reportScanErrors(source, errs)
			continue
		}
		if !balanced(tokens) {
			continue
		}

		s.pending = nil
		s.entry++
		s.eval(source, tokens)
	}
}

// Symbols exposes the session's variables.
func (s *Session) Symbols() map[string]int32 {
	return s.engine.Symbols()
}

func (s *Session) eval(source string, tokens []lexer.Token) {
	var err error
	if len(tokens) > 0 && tokens[0].Type == lexer.PROGRAM {
		log.Debugf("entry %d: running full program", s.entry)
		err = s.engine.Run(tokens)
	} else {
		err = s.engine.Exec(tokens)
	}
	if err != nil {
		s.report(source, err)
	}
}

// command handles a ":" line. It reports whether the session should end.
func (s *Session) command(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":vars":
		symbols := s.engine.Symbols()
		for _, name := range s.engine.Names() {
			fmt.Fprintf(s.out, "%s = %d\n", name, symbols[name])
		}
	case ":help":
		fmt.Fprintln(s.out, "Enter declarations (int A, B;) or statements ending in ';'.")
		fmt.Fprintln(s.out, "if and while blocks run once their 'end ;' is typed.")
		fmt.Fprintln(s.out, ":vars  list variables")
		fmt.Fprintln(s.out, ":quit  leave the session")
	default:
		fmt.Fprintf(s.out, "unknown command %s, try :help\n", line)
	}
	return false
}

func (s *Session) report(source string, err error) {
	reporter := coreerrors.NewErrorReporter(s.name(), source)
	if compilerErr, ok := coreerrors.FromError(err); ok {
		fmt.Fprint(s.out, reporter.FormatError(compilerErr))
		return
	}
	fmt.Fprintf(s.out, "%s: %v\n", color.RedString("error"), err)
}

func (s *Session) reportScanErrors(source string, errs []lexer.ScanError) {
	reporter := coreerrors.NewErrorReporter(s.name(), source)
	for _, scanErr := range errs {
		fmt.Fprint(s.out, reporter.FormatError(coreerrors.FromScanError(scanErr)))
	}
}

func (s *Session) name() string {
	return fmt.Sprintf("<entry %d>", s.entry)
}

// balanced reports whether every block opened in tokens has been closed.
// A program's begin shares its end with the program keyword.
func balanced(tokens []lexer.Token) bool {
	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case lexer.IF, lexer.WHILE, lexer.PROGRAM:
			depth++
		case lexer.END:
			depth--
		}
	}
	return depth <= 0
}
