package lsp

import (
	"corelang/internal/lexer"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

const (
	tokenKeyword = iota
	tokenVariable
	tokenNumber
	tokenOperator
)

const modifierDeclaration = 1 << 0

func collectSemanticTokens(tokens []lexer.Token) []SemanticToken {
	var result []SemanticToken
	inDecl := false

	for _, tok := range tokens {
		var tokenType, modifiers int
		switch {
		case tok.Type == lexer.EOF || tok.Type == lexer.ILLEGAL:
			continue
		case tok.Type.IsKeyword():
			tokenType = tokenKeyword
			if tok.Type == lexer.INT {
				inDecl = true
			}
		case tok.Type == lexer.IDENTIFIER:
			tokenType = tokenVariable
			if inDecl {
				modifiers = modifierDeclaration
			}
		case tok.Type == lexer.INTEGER:
			tokenType = tokenNumber
		case isOperator(tok.Type):
			tokenType = tokenOperator
		default:
			if tok.Type == lexer.SEMICOLON {
				inDecl = false
			}
			continue
		}

		result = append(result, SemanticToken{
			Line:           uint32(tok.Position.Line - 1),
			StartChar:      uint32(tok.Position.Column - 1),
			Length:         uint32(len(tok.Lexeme)),
			TokenType:      tokenType,
			TokenModifiers: modifiers,
		})
	}
	return result
}

func isOperator(tt lexer.TokenType) bool {
	switch tt {
	case lexer.ASSIGN, lexer.BANG, lexer.AND, lexer.OR, lexer.PLUS, lexer.MINUS, lexer.STAR:
		return true
	}
	return tt.IsComparison()
}

// encodeSemanticTokens packs tokens into the LSP wire format using
// delta-line, delta-start compression.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}
