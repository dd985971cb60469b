package engine

import (
	"corelang/internal/lexer"
)

// Arithmetic is int32 and wraps on overflow. All three operators associate
// to the right, so A - B - C is A - (B - C).

// expr := term [ ("+" | "-") expr ]
func (e *Engine) expr() (int32, error) {
	left, err := e.term()
	if err != nil {
		return 0, err
	}

	op := e.cur.Current().Type
	if op != lexer.PLUS && op != lexer.MINUS {
		return left, nil
	}
	if err := e.advance(); err != nil {
		return 0, err
	}
	right, err := e.expr()
	if err != nil {
		return 0, err
	}
	if op == lexer.PLUS {
		return left + right, nil
	}
	return left - right, nil
}

// term := op [ "*" term ]
func (e *Engine) term() (int32, error) {
	left, err := e.op()
	if err != nil {
		return 0, err
	}
	if !e.check(lexer.STAR) {
		return left, nil
	}
	if err := e.advance(); err != nil {
		return 0, err
	}
	right, err := e.term()
	if err != nil {
		return 0, err
	}
	return left * right, nil
}

// op := INT_CONST | IDENT | "(" expr ")"
func (e *Engine) op() (int32, error) {
	tok := e.cur.Current()
	switch tok.Type {
	case lexer.INTEGER:
		return tok.Value, e.advance()

	case lexer.IDENTIFIER:
		index := e.cur.Pos()
		value, err := e.cur.Lookup(tok.Lexeme)
		if err != nil {
			return 0, e.undefined(tok, index)
		}
		return value, e.advance()

	case lexer.LEFT_PAREN:
		if err := e.advance(); err != nil {
			return 0, err
		}
		value, err := e.expr()
		if err != nil {
			return 0, err
		}
		if _, err := e.expect(lexer.RIGHT_PAREN, "to close expression"); err != nil {
			return 0, err
		}
		return value, nil
	}
	return 0, e.unexpected("expected integer, identifier or '('")
}
