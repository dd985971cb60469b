package lexer

import (
	"fmt"
	"strconv"
	"strings"
)

// Text returns the canonical source spelling of a single token.
func (t Token) Text() string {
	switch t.Type {
	case INTEGER:
		return strconv.FormatInt(int64(t.Value), 10)
	case IDENTIFIER, ILLEGAL:
		return t.Lexeme
	case EOF:
		return ""
	}
	return Spelling(t.Type)
}

// Format prints tokens back as source separated by single spaces. Scanning
// the result again yields the same token types and values.
func Format(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == EOF {
			break
		}
		parts = append(parts, tok.Text())
	}
	return strings.Join(parts, " ")
}

// Dump renders one token per line as "index line:col KIND lexeme".
func Dump(tokens []Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		fmt.Fprintf(&b, "%4d %6s %-14s %s\n", i, tok.Position, tok.Type, tok.Text())
	}
	return b.String()
}
