package engine

import (
	"errors"
	"fmt"

	"corelang/internal/lexer"
)

// Kind classifies why a run stopped.
type Kind int

const (
	KindLexical Kind = iota + 1
	KindSyntax
	KindUnterminated
	KindTrailing
	KindUndefined
	KindPastEnd
	KindIterationLimit
	KindInput
)

var kindNames = map[Kind]string{
	KindLexical:        "lexical error",
	KindSyntax:         "grammar error",
	KindUnterminated:   "grammar error",
	KindTrailing:       "grammar error",
	KindUndefined:      "runtime error",
	KindPastEnd:        "runtime error",
	KindIterationLimit: "runtime error",
	KindInput:          "input error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrLexical        = errors.New("lexical error")
	ErrGrammar        = errors.New("grammar error")
	ErrRuntime        = errors.New("runtime error")
	ErrInputExhausted = errors.New("input exhausted")
)

// Error is the single error type returned by Run and Exec. Index is the
// token index of the cursor when execution stopped.
type Error struct {
	Kind    Kind
	Message string
	Index   int
	Token   lexer.Token

	// Name is the variable involved in KindUndefined errors and Known lists
	// the names that were defined at that point.
	Name  string
	Known []string

	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s (token %d): %s", e.Kind, e.Token.Position, e.Index, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrLexical:
		return e.Kind == KindLexical
	case ErrGrammar:
		return e.Kind == KindSyntax || e.Kind == KindUnterminated || e.Kind == KindTrailing
	case ErrRuntime:
		return e.Kind == KindUndefined || e.Kind == KindPastEnd || e.Kind == KindIterationLimit
	case ErrInputExhausted:
		return e.Kind == KindInput && errors.Is(e.Err, ErrInputExhausted)
	}
	return false
}

// describe renders a token for "found ..." messages.
func describe(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Text())
}

func quote(tt lexer.TokenType) string {
	switch tt {
	case lexer.IDENTIFIER:
		return "identifier"
	case lexer.INTEGER:
		return "integer"
	case lexer.EOF:
		return "end of input"
	}
	return fmt.Sprintf("'%s'", lexer.Spelling(tt))
}
