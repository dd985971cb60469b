package lexer

import "fmt"

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Reserved words
	PROGRAM
	BEGIN
	END
	INT
	IF
	THEN
	ELSE
	WHILE
	LOOP
	READ
	WRITE

	// Punctuation
	SEMICOLON
	COMMA
	ASSIGN
	BANG
	LEFT_BRACKET
	RIGHT_BRACKET
	AND
	OR
	LEFT_PAREN
	RIGHT_PAREN

	// Arithmetic
	PLUS
	MINUS
	STAR

	// Comparison
	BANG_EQUAL
	EQUAL_EQUAL
	LESS
	GREATER
	LESS_EQUAL
	GREATER_EQUAL

	// User-defined
	INTEGER
	IDENTIFIER
)

var tokenNames = [...]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	PROGRAM:       "PROGRAM",
	BEGIN:         "BEGIN",
	END:           "END",
	INT:           "INT",
	IF:            "IF",
	THEN:          "THEN",
	ELSE:          "ELSE",
	WHILE:         "WHILE",
	LOOP:          "LOOP",
	READ:          "READ",
	WRITE:         "WRITE",
	SEMICOLON:     "SEMICOLON",
	COMMA:         "COMMA",
	ASSIGN:        "ASSIGN",
	BANG:          "BANG",
	LEFT_BRACKET:  "LEFT_BRACKET",
	RIGHT_BRACKET: "RIGHT_BRACKET",
	AND:           "AND",
	OR:            "OR",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	STAR:          "STAR",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	LESS:          "LESS",
	GREATER:       "GREATER",
	LESS_EQUAL:    "LESS_EQUAL",
	GREATER_EQUAL: "GREATER_EQUAL",
	INTEGER:       "INTEGER",
	IDENTIFIER:    "IDENTIFIER",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsKeyword reports whether t is one of the reserved words.
func (t TokenType) IsKeyword() bool {
	return t >= PROGRAM && t <= WRITE
}

// IsComparison reports whether t can appear between the operands of a comparison.
func (t TokenType) IsComparison() bool {
	return t >= BANG_EQUAL && t <= GREATER_EQUAL
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is immutable once produced. Value is only meaningful for INTEGER.
type Token struct {
	Type     TokenType
	Lexeme   string
	Value    int32
	Position Position
}

func (t Token) String() string {
	switch t.Type {
	case INTEGER, IDENTIFIER, ILLEGAL:
		return fmt.Sprintf("%s(%s)", t.Type, t.Lexeme)
	}
	return t.Type.String()
}
