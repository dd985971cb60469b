package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corelang/internal/engine"
	"corelang/internal/lexer"
)

func init() {
	color.NoColor = true
}

func TestErrorReporter(t *testing.T) {
	source := `program int COUNT;
begin
  CONT = 1;
end`

	reporter := NewErrorReporter("test.core", source)

	err := UndefinedVariable("CONT", lexer.Position{Line: 3, Column: 3}, []string{"COUNT"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndefinedVariable+"]")
	assert.Contains(t, formatted, "undefined variable 'CONT'")
	assert.Contains(t, formatted, "test.core:3:3")
	assert.Contains(t, formatted, "  CONT = 1;")
	assert.Contains(t, formatted, "  ^^^^")
	assert.Contains(t, formatted, "did you mean 'COUNT'?")
}

func TestErrorReporterWarningAndNotes(t *testing.T) {
	reporter := NewErrorReporter("w.core", "program int A; begin A = 1; end")

	err := NewWarning("", "variable 'A' is never written", lexer.Position{Line: 1, Column: 13}).
		WithNote("first note").
		WithHelp("write it").
		Build()

	formatted := reporter.FormatError(err)
	assert.True(t, strings.HasPrefix(formatted, "warning: variable 'A'"))
	assert.Contains(t, formatted, "note: first note")
	assert.Contains(t, formatted, "help: write it")
}

func TestFormatAll(t *testing.T) {
	reporter := NewErrorReporter("x.core", "A\nB")
	out := reporter.FormatAll([]CompilerError{
		NewError(ErrorUnexpectedToken, "first", lexer.Position{Line: 1, Column: 1}).Build(),
		NewError(ErrorUnexpectedToken, "second", lexer.Position{Line: 2, Column: 1}).Build(),
	})
	assert.Equal(t, 2, strings.Count(out, "error[E0100]"))
}

func TestUndefinedVariableError(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 5}

	err := UndefinedVariable("SUMM", pos, []string{"SUM"})
	assert.Equal(t, ErrorUndefinedVariable, err.Code)
	assert.Equal(t, 4, err.Length)
	require.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'SUM'")

	err = UndefinedVariable("XYZ", pos, nil)
	require.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "declare it")
	assert.Len(t, err.Notes, 1)

	err = UndefinedVariable("A", pos, []string{"B", "C"})
	assert.Contains(t, err.Suggestions[0].Message, "one of: 'B', 'C'")
}

func TestSimilarNames(t *testing.T) {
	assert.Equal(t, []string{"ALPHA"}, SimilarNames("ALPHB", []string{"ALPHA", "GAMMA", "X"}))
	assert.Equal(t, []string{"COUNT"}, SimilarNames("CNT", []string{"COUNT", "TOTAL"}))
	assert.Empty(t, SimilarNames("ZZZZZZ", []string{"ALPHA", "BETA"}))
	assert.Empty(t, SimilarNames("A", []string{"A"}))
	assert.Len(t, SimilarNames("X", []string{"A", "B", "C", "D", "E"}), 3)
}

func TestFromScanError(t *testing.T) {
	scanner := lexer.NewScanner([]byte("program int X; begn"))
	scanner.ScanTokens()
	require.Len(t, scanner.Errors(), 1)

	err := FromScanError(scanner.Errors()[0])
	assert.Equal(t, ErrorIllegalLexeme, err.Code)
	assert.Equal(t, 4, err.Length)
	assert.Equal(t, lexer.Position{Line: 1, Column: 16, Offset: 15}, err.Position)
	require.NotEmpty(t, err.Suggestions)
	assert.Equal(t, "did you mean 'begin'?", err.Suggestions[0].Message)
}

func TestFromEngineError(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts engine.Options
		code string
	}{
		{"missing semicolon", "program int A begin end", engine.Options{}, ErrorUnexpectedToken},
		{"unterminated", "program int A; begin if (A==1) then A=2;", engine.Options{}, ErrorUnterminatedBlock},
		{"trailing", "program int A; begin A=1; end end", engine.Options{}, ErrorTrailingTokens},
		{"undefined", "program int TOTAL; begin TOTL = 1; end", engine.Options{Strict: true}, ErrorUndefinedVariable},
		{"iteration limit", "program int A; begin while (A==0) loop A=0; end; end", engine.Options{MaxIterations: 3}, ErrorIterationLimit},
		{"input exhausted", "program int A; begin read A; end", engine.Options{}, ErrorInputExhausted},
		{"lexical", "program int A; begin A = 1 | 2; end", engine.Options{}, ErrorIllegalLexeme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runErr := engine.New(tt.opts).Run(lexer.Scan([]byte(tt.src)))
			require.Error(t, runErr)

			converted, ok := FromError(fmt.Errorf("running: %w", runErr))
			require.True(t, ok)
			assert.Equal(t, tt.code, converted.Code)
			assert.NotZero(t, converted.Position.Line)
		})
	}
}

func TestFromEngineErrorSuggestsDeclaredName(t *testing.T) {
	runErr := engine.New(engine.Options{Strict: true}).Run(lexer.Scan([]byte("program int TOTAL; begin TOTL = 1; end")))

	var engineErr *engine.Error
	require.True(t, stderrors.As(runErr, &engineErr))

	converted := FromEngineError(engineErr)
	require.NotEmpty(t, converted.Suggestions)
	assert.Equal(t, "did you mean 'TOTAL'?", converted.Suggestions[0].Message)
}

func TestFromErrorWithoutLocation(t *testing.T) {
	_, ok := FromError(stderrors.New("boom"))
	assert.False(t, ok)
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Grammar", GetErrorCategory(ErrorTrailingTokens))
	assert.Equal(t, "Lexical", GetErrorCategory(ErrorIllegalLexeme))
	assert.Equal(t, "Runtime", GetErrorCategory(ErrorIterationLimit))
	assert.Equal(t, "Input", GetErrorCategory(ErrorMalformedInput))
	assert.Equal(t, "Unknown", GetErrorCategory("X"))
	assert.Equal(t, "Input exhausted", GetErrorDescription(ErrorInputExhausted))
	assert.Equal(t, "Unknown error", GetErrorDescription("E9999"))
}
