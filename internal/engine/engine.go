// Package engine executes Core programs directly from their token sequence.
// There is no syntax tree: each grammar procedure recognizes its construct
// at the cursor and performs its effect while advancing. Branches that are
// not taken are skipped by counting block delimiters, and loops rewind the
// cursor to the saved position of their `while` token.
package engine

import (
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"corelang/internal/lexer"
)

var log = commonlog.GetLogger("core.engine")

// Hooks observe execution. Any of them may be nil.
type Hooks struct {
	OnStatement func(kind lexer.TokenType, index, depth int)
	OnCompare   func(left, right int32, op lexer.TokenType, result bool)
	OnSkip      func(from, to int)
}

type Options struct {
	// Strict rejects mentions of names that were never declared instead
	// of creating them with value 0.
	Strict bool

	// MaxIterations bounds how many times a single while statement may
	// run its body. Zero means no limit.
	MaxIterations int

	Input  Input
	Output Output
	Hooks  Hooks
}

type Engine struct {
	opts    Options
	symbols *SymbolTable
	cur     *Cursor
}

func New(opts Options) *Engine {
	if opts.Input == nil {
		opts.Input = NewSliceInput()
	}
	if opts.Output == nil {
		opts.Output = NewWriterOutput(io.Discard)
	}
	return &Engine{
		opts:    opts,
		symbols: NewSymbolTable(opts.Strict),
	}
}

// Run executes a complete program. The symbol table starts empty.
func (e *Engine) Run(tokens []lexer.Token) error {
	e.symbols = NewSymbolTable(e.opts.Strict)
	if err := e.load(tokens); err != nil {
		return err
	}
	if err := e.program(); err != nil {
		return err
	}
	return e.finish()
}

// Exec runs a fragment of declarations followed by statements against the
// engine's existing symbol table. Both parts are optional, so an empty
// fragment is accepted.
func (e *Engine) Exec(tokens []lexer.Token) error {
	if err := e.load(tokens); err != nil {
		return err
	}
	for e.check(lexer.INT) {
		if err := e.decl(); err != nil {
			return err
		}
	}
	if !e.check(lexer.EOF) {
		if err := e.stmtSeq(); err != nil {
			return err
		}
	}
	return e.finish()
}

// Symbols returns a copy of every variable and its current value.
func (e *Engine) Symbols() map[string]int32 {
	return e.symbols.Snapshot()
}

// Names lists variables in creation order.
func (e *Engine) Names() []string {
	return e.symbols.Names()
}

func (e *Engine) load(tokens []lexer.Token) error {
	for i, tok := range tokens {
		if tok.Type == lexer.ILLEGAL {
			return &Error{
				Kind:    KindLexical,
				Message: fmt.Sprintf("illegal lexeme '%s'", tok.Lexeme),
				Index:   i,
				Token:   tok,
			}
		}
	}
	e.cur = NewCursor(tokens, e.symbols)
	return nil
}

// finish requires the cursor to rest on EOF with every block closed.
func (e *Engine) finish() error {
	if !e.check(lexer.EOF) {
		return e.errorf(KindTrailing, "unexpected %s after end of program", describe(e.cur.Current()))
	}
	if depth := e.cur.Depth(); depth != 0 {
		return e.errorf(KindUnterminated, "program ended with %d open blocks", depth)
	}
	return nil
}

// Helper methods.

func (e *Engine) check(tt lexer.TokenType) bool {
	return e.cur.Current().Type == tt
}

func (e *Engine) advance() error {
	if err := e.cur.Advance(); err != nil {
		return &Error{
			Kind:    KindPastEnd,
			Message: "unexpected end of input",
			Index:   e.cur.Pos(),
			Token:   e.cur.Current(),
			Err:     err,
		}
	}
	return nil
}

// expect consumes a token of the given type or fails with "expected X
// context, found Y".
func (e *Engine) expect(tt lexer.TokenType, context string) (lexer.Token, error) {
	tok := e.cur.Current()
	if tok.Type != tt {
		return tok, e.unexpected(fmt.Sprintf("expected %s %s", quote(tt), context))
	}
	return tok, e.advance()
}

func (e *Engine) unexpected(message string) *Error {
	return e.errorf(KindSyntax, "%s, found %s", message, describe(e.cur.Current()))
}

func (e *Engine) errorf(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Index:   e.cur.Pos(),
		Token:   e.cur.Current(),
	}
}

func (e *Engine) leaveBlock() error {
	if err := e.cur.LeaveBlock(); err != nil {
		log.Debugf("block depth would go negative at token %d", e.cur.Pos())
		return &Error{
			Kind:    KindUnterminated,
			Message: err.Error(),
			Index:   e.cur.Pos(),
			Token:   e.cur.Current(),
			Err:     err,
		}
	}
	return nil
}

func (e *Engine) undefined(tok lexer.Token, index int) *Error {
	return &Error{
		Kind:    KindUndefined,
		Message: fmt.Sprintf("variable '%s' is not declared", tok.Lexeme),
		Index:   index,
		Token:   tok,
		Name:    tok.Lexeme,
		Known:   e.symbols.Names(),
		Err:     ErrUndefined,
	}
}

func (e *Engine) inputError(tok lexer.Token, index int, err error) *Error {
	return &Error{
		Kind:    KindInput,
		Message: fmt.Sprintf("no value for '%s': %v", tok.Lexeme, err),
		Index:   index,
		Token:   tok,
		Name:    tok.Lexeme,
		Err:     err,
	}
}
