package lexer

import (
	"fmt"
	"strconv"
)

type Scanner struct {
	source      []byte
	tokens      []Token
	start       int
	current     int
	line        int
	startLine   int
	startColumn int
	column      int
	halted      bool
	errors      []ScanError
}

type ScanError struct {
	Message  string
	Lexeme   string
	Position Position // line, column, offset
	Length   int      // how many bytes the bad lexeme covers
}

func (e ScanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

func NewScanner(source []byte) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// Scan tokenizes source in one call. The result always ends with EOF; if
// an illegal lexeme was found it is the token right before EOF.
func Scan(source []byte) []Token {
	return NewScanner(source).ScanTokens()
}

func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() && !s.halted {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Position: Position{Line: s.line, Column: s.column, Offset: s.current}})
	return s.tokens
}

func (s *Scanner) Errors() []ScanError {
	return s.errors
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case ';':
		s.addToken(SEMICOLON)
	case ',':
		s.addToken(COMMA)
	case '[':
		s.addToken(LEFT_BRACKET)
	case ']':
		s.addToken(RIGHT_BRACKET)
	case '(':
		s.addToken(LEFT_PAREN)
	case ')':
		s.addToken(RIGHT_PAREN)
	case '+':
		s.addToken(PLUS)
	case '-':
		s.addToken(MINUS)
	case '*':
		s.addToken(STAR)

	// Operators with a one-byte lookahead
	case '=':
		s.addTokenIf('=', EQUAL_EQUAL, ASSIGN)
	case '!':
		s.addTokenIf('=', BANG_EQUAL, BANG)
	case '<':
		s.addTokenIf('=', LESS_EQUAL, LESS)
	case '>':
		s.addTokenIf('=', GREATER_EQUAL, GREATER)
	case '|':
		s.scanDoubled('|', OR)
	case '&':
		s.scanDoubled('&', AND)

	case ' ', '\t', '\r', '\n':
		// Ignore whitespace

	default:
		s.scanDefault(c)
	}
}

func (s *Scanner) addTokenIf(next byte, matched, otherwise TokenType) {
	if s.matchNext(next) {
		s.addToken(matched)
	} else {
		s.addToken(otherwise)
	}
}

// scanDoubled handles '&&' and '||'; a lone '&' or '|' is not part of Core.
func (s *Scanner) scanDoubled(c byte, tt TokenType) {
	if s.matchNext(c) {
		s.addToken(tt)
		return
	}
	s.illegal(fmt.Sprintf("expected %q after %q", c, c))
}

func (s *Scanner) scanDefault(c byte) {
	switch {
	case isDigit(c):
		s.scanInteger()
	case isLower(c):
		s.scanKeyword()
	case isUpper(c):
		s.scanIdentifier()
	default:
		s.illegal(fmt.Sprintf("unexpected character: %q", c))
	}
}

func (s *Scanner) scanInteger() {
	if isLetter(s.previous()) {
		s.illegal("integer literal must be separated from the preceding word")
		return
	}
	for isDigit(s.peek()) {
		s.advance()
	}
	if isLetter(s.peek()) {
		s.advance()
		s.illegal("malformed integer literal")
		return
	}

	text := string(s.source[s.start:s.current])
	value, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		s.illegal(fmt.Sprintf("integer literal %s does not fit in 32 bits", text))
		return
	}
	s.addValueToken(INTEGER, int32(value))
}

func (s *Scanner) scanKeyword() {
	if prev := s.previous(); isUpper(prev) || isDigit(prev) {
		s.illegal("keyword must be separated from the preceding word")
		return
	}
	for isLower(s.peek()) {
		s.advance()
	}
	if isUpper(s.peek()) || isDigit(s.peek()) {
		s.advance()
		s.illegal("malformed keyword")
		return
	}

	text := string(s.source[s.start:s.current])
	tt, ok := lookupKeyword(text)
	if !ok {
		s.illegal(fmt.Sprintf("unknown word %q", text))
		return
	}
	s.addToken(tt)
}

// scanIdentifier accepts [A-Z]+[0-9]*.
func (s *Scanner) scanIdentifier() {
	if prev := s.previous(); isLower(prev) || isDigit(prev) {
		s.illegal("identifier must be separated from the preceding word")
		return
	}
	for isUpper(s.peek()) {
		s.advance()
	}
	if isLower(s.peek()) {
		s.advance()
		s.illegal("identifiers use upper-case letters only")
		return
	}
	for isDigit(s.peek()) {
		s.advance()
	}
	if isLetter(s.peek()) {
		s.advance()
		s.illegal("malformed identifier")
		return
	}
	s.addToken(IDENTIFIER)
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

// previous returns the byte right before the current lexeme, or 0 at the
// start of the buffer.
func (s *Scanner) previous() byte {
	if s.start == 0 {
		return 0
	}
	return s.source[s.start-1]
}

func (s *Scanner) addToken(tokenType TokenType) {
	s.addValueToken(tokenType, 0)
}

func (s *Scanner) addValueToken(tokenType TokenType, value int32) {
	s.tokens = append(s.tokens, Token{
		Type:     tokenType,
		Lexeme:   string(s.source[s.start:s.current]),
		Value:    value,
		Position: s.startPosition(),
	})
}

// illegal emits the terminal ILLEGAL token and stops the scan.
func (s *Scanner) illegal(message string) {
	s.errors = append(s.errors, ScanError{
		Message:  message,
		Lexeme:   string(s.source[s.start:s.current]),
		Position: s.startPosition(),
		Length:   s.current - s.start,
	})
	s.tokens = append(s.tokens, Token{
		Type:     ILLEGAL,
		Lexeme:   string(s.source[s.start:s.current]),
		Position: s.startPosition(),
	})
	s.halted = true
}

func (s *Scanner) startPosition() Position {
	return Position{Line: s.startLine, Column: s.startColumn, Offset: s.start}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLower(c byte) bool {
	return 'a' <= c && c <= 'z'
}

func isUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}

func isLetter(c byte) bool {
	return isLower(c) || isUpper(c)
}
