package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestKeywords(t *testing.T) {
	input := "program begin end int if then else while loop read write"
	expected := []TokenType{
		PROGRAM, BEGIN, END, INT, IF, THEN, ELSE, WHILE, LOOP, READ, WRITE, EOF,
	}

	scanner := NewScanner([]byte(input))
	tokens := scanner.ScanTokens()

	assert.Empty(t, scanner.Errors())
	assert.Equal(t, expected, types(tokens))
}

func TestOperatorsAndPunctuation(t *testing.T) {
	input := `; , = ! [ ] && || ( ) + - * != == < > <= >=`
	expected := []TokenType{
		SEMICOLON, COMMA, ASSIGN, BANG, LEFT_BRACKET, RIGHT_BRACKET, AND, OR,
		LEFT_PAREN, RIGHT_PAREN, PLUS, MINUS, STAR, BANG_EQUAL, EQUAL_EQUAL,
		LESS, GREATER, LESS_EQUAL, GREATER_EQUAL, EOF,
	}
	expectedLexemes := []string{";", ",", "=", "!", "[", "]", "&&", "||", "(", ")", "+", "-", "*", "!=", "==", "<", ">", "<=", ">="}

	tokens := Scan([]byte(input))
	require.Equal(t, expected, types(tokens))
	for i, lexeme := range expectedLexemes {
		assert.Equal(t, lexeme, tokens[i].Lexeme)
	}
}

func TestLookaheadWithoutSpaces(t *testing.T) {
	tokens := Scan([]byte("A==B;C=!D<=E>F"))
	assert.Equal(t, []TokenType{
		IDENTIFIER, EQUAL_EQUAL, IDENTIFIER, SEMICOLON, IDENTIFIER, ASSIGN, BANG,
		IDENTIFIER, LESS_EQUAL, IDENTIFIER, GREATER, IDENTIFIER, EOF,
	}, types(tokens))
}

func TestOperatorAtEndOfBuffer(t *testing.T) {
	tokens := Scan([]byte("A ="))
	assert.Equal(t, []TokenType{IDENTIFIER, ASSIGN, EOF}, types(tokens))

	tokens = Scan([]byte("<"))
	assert.Equal(t, []TokenType{LESS, EOF}, types(tokens))
}

func TestIntegersAndIdentifiers(t *testing.T) {
	tokens := Scan([]byte("42 0 2147483647 X ABC A1 XY99"))
	require.Equal(t, []TokenType{INTEGER, INTEGER, INTEGER, IDENTIFIER, IDENTIFIER, IDENTIFIER, IDENTIFIER, EOF}, types(tokens))

	assert.Equal(t, int32(42), tokens[0].Value)
	assert.Equal(t, int32(0), tokens[1].Value)
	assert.Equal(t, int32(2147483647), tokens[2].Value)
	assert.Equal(t, "X", tokens[3].Lexeme)
	assert.Equal(t, "A1", tokens[5].Lexeme)
	assert.Equal(t, "XY99", tokens[6].Lexeme)
}

func TestWhitespaceIsDiscarded(t *testing.T) {
	tokens := Scan([]byte(" \t\r\nint\n\n  X ;\t"))
	assert.Equal(t, []TokenType{INT, IDENTIFIER, SEMICOLON, EOF}, types(tokens))
}

func TestPositions(t *testing.T) {
	tokens := Scan([]byte("program\n  int X;"))
	require.Len(t, tokens, 5)

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Position)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 10}, tokens[1].Position)
	assert.Equal(t, Position{Line: 2, Column: 7, Offset: 14}, tokens[2].Position)
	assert.Equal(t, Position{Line: 2, Column: 8, Offset: 15}, tokens[3].Position)
}

func TestIllegalLexemesStopScanning(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		lexeme string
		before []TokenType
	}{
		{"lone pipe", "A | B", "|", []TokenType{IDENTIFIER}},
		{"lone ampersand", "A & B", "&", []TokenType{IDENTIFIER}},
		{"digits then letter", "X = 12AB;", "12A", []TokenType{IDENTIFIER, ASSIGN}},
		{"unknown lowercase word", "program foo", "foo", []TokenType{PROGRAM}},
		{"keyword glued to identifier", "int X;endX", "endX", []TokenType{INT, IDENTIFIER, SEMICOLON}},
		{"mixed case identifier", "Abc", "Ab", nil},
		{"identifier digits then letters", "A12B", "A12B", nil},
		{"unexpected character", "X = 3 / 4;", "/", []TokenType{IDENTIFIER, ASSIGN, INTEGER}},
		{"integer overflow", "99999999999", "99999999999", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := NewScanner([]byte(tt.input))
			tokens := scanner.ScanTokens()

			expected := append(append([]TokenType{}, tt.before...), ILLEGAL, EOF)
			assert.Equal(t, expected, types(tokens))
			assert.Equal(t, tt.lexeme, tokens[len(tokens)-2].Lexeme)
			require.Len(t, scanner.Errors(), 1)
			assert.Equal(t, len(tt.lexeme), scanner.Errors()[0].Length)
		})
	}
}

func TestEmptySource(t *testing.T) {
	tokens := Scan(nil)
	assert.Equal(t, []TokenType{EOF}, types(tokens))
}
