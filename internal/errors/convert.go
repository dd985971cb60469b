package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"

	"corelang/internal/engine"
	"corelang/internal/lexer"
)

// FromScanError converts a scanner error.
func FromScanError(se lexer.ScanError) CompilerError {
	builder := NewError(ErrorIllegalLexeme, se.Message, se.Position).
		WithLength(se.Length)

	if word := se.Lexeme; word != "" && strings.ToLower(word) == word {
		if keyword, ok := closestKeyword(word); ok {
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", keyword))
		}
	}
	if strings.Contains(se.Message, "upper-case") {
		builder = builder.WithNote("identifiers are upper-case letters followed by digits, like X or SUM2")
	}
	return builder.Build()
}

// FromEngineError converts an error returned by engine.Run or engine.Exec.
func FromEngineError(err *engine.Error) CompilerError {
	pos := err.Token.Position
	length := max(1, len(err.Token.Text()))

	switch err.Kind {
	case engine.KindLexical:
		return NewError(ErrorIllegalLexeme, err.Message, pos).WithLength(length).Build()

	case engine.KindSyntax:
		return NewError(ErrorUnexpectedToken, err.Message, pos).WithLength(length).Build()

	case engine.KindUnterminated:
		return NewError(ErrorUnterminatedBlock, err.Message, pos).
			WithLength(length).
			WithHelp("every 'if' and 'while' needs a matching 'end ;'").
			Build()

	case engine.KindTrailing:
		return NewError(ErrorTrailingTokens, err.Message, pos).
			WithLength(length).
			WithHelp("nothing may follow the closing 'end' of the program").
			Build()

	case engine.KindUndefined:
		return UndefinedVariable(err.Name, pos, SimilarNames(err.Name, err.Known))

	case engine.KindPastEnd:
		return NewError(ErrorCursorPastEnd, err.Message, pos).Build()

	case engine.KindIterationLimit:
		return NewError(ErrorIterationLimit, err.Message, pos).
			WithLength(length).
			WithHelp("raise max_iterations, or set it to 0 to remove the limit").
			Build()

	case engine.KindInput:
		return NewError(ErrorInputExhausted, err.Message, pos).
			WithLength(length).
			WithHelp("supply more values with -i or on standard input").
			Build()
	}
	return NewError("", err.Message, pos).Build()
}

// FromParseError converts a participle error from the grammar package.
func FromParseError(err participle.Error) CompilerError {
	p := err.Position()
	return NewError(ErrorUnexpectedToken, err.Message(), lexer.Position{
		Line:   p.Line,
		Column: p.Column,
		Offset: p.Offset,
	}).Build()
}

// FromError converts any error produced while scanning, checking or running
// a program. ok is false for errors without a source location.
func FromError(err error) (CompilerError, bool) {
	var scanErr lexer.ScanError
	if stderrors.As(err, &scanErr) {
		return FromScanError(scanErr), true
	}
	var engineErr *engine.Error
	if stderrors.As(err, &engineErr) {
		return FromEngineError(engineErr), true
	}
	var parseErr participle.Error
	if stderrors.As(err, &parseErr) {
		return FromParseError(parseErr), true
	}
	return CompilerError{}, false
}
