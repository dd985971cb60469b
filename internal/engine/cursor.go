package engine

import (
	"errors"
	"fmt"

	"corelang/internal/lexer"
)

var (
	ErrPastEnd    = errors.New("cursor advanced past end of token sequence")
	ErrUnbalanced = errors.New("block closed more times than it was opened")
)

// Cursor is the shared execution state: the token sequence, the index of
// the current token, the block nesting depth and the symbol table. Every
// grammar procedure reads and mutates the same Cursor.
type Cursor struct {
	tokens  []lexer.Token
	pos     int
	depth   int
	symbols *SymbolTable
}

// NewCursor positions a cursor on the first token. A sequence that does not
// end with EOF gets one appended so Current is always defined.
func NewCursor(tokens []lexer.Token, symbols *SymbolTable) *Cursor {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.EOF {
		var pos lexer.Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Position
		}
		tokens = append(tokens[:len(tokens):len(tokens)], lexer.Token{Type: lexer.EOF, Position: pos})
	}
	if symbols == nil {
		symbols = NewSymbolTable(false)
	}
	return &Cursor{tokens: tokens, symbols: symbols}
}

func (c *Cursor) Current() lexer.Token {
	return c.tokens[c.pos]
}

func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) Len() int {
	return len(c.tokens)
}

// Advance moves to the next token. Advancing from EOF is an error and
// leaves the position unchanged.
func (c *Cursor) Advance() error {
	if c.pos >= len(c.tokens)-1 {
		return ErrPastEnd
	}
	c.pos++
	return nil
}

// Seek moves to an absolute token index previously obtained from Pos.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos >= len(c.tokens) {
		return fmt.Errorf("seek to token %d outside [0, %d): %w", pos, len(c.tokens), ErrPastEnd)
	}
	c.pos = pos
	return nil
}

func (c *Cursor) Depth() int {
	return c.depth
}

func (c *Cursor) EnterBlock() {
	c.depth++
}

// LeaveBlock closes the innermost block. The depth never goes below zero.
func (c *Cursor) LeaveBlock() error {
	if c.depth == 0 {
		return ErrUnbalanced
	}
	c.depth--
	return nil
}

func (c *Cursor) Define(name string, value int32) {
	c.symbols.Define(name, value)
}

func (c *Cursor) Lookup(name string) (int32, error) {
	return c.symbols.Lookup(name)
}

func (c *Cursor) Symbols() *SymbolTable {
	return c.symbols
}
