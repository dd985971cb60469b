package engine

import (
	"corelang/internal/lexer"
)

// cond := comp | "!" comp | "[" cond ("&&" | "||") cond "]"
//
// Both operands of && and || are always evaluated.
func (e *Engine) cond() (bool, error) {
	switch e.cur.Current().Type {
	case lexer.LEFT_BRACKET:
		if err := e.advance(); err != nil {
			return false, err
		}
		left, err := e.cond()
		if err != nil {
			return false, err
		}

		op := e.cur.Current().Type
		if op != lexer.AND && op != lexer.OR {
			return false, e.unexpected("expected '&&' or '||'")
		}
		if err := e.advance(); err != nil {
			return false, err
		}

		right, err := e.cond()
		if err != nil {
			return false, err
		}
		if _, err := e.expect(lexer.RIGHT_BRACKET, "to close compound condition"); err != nil {
			return false, err
		}
		if op == lexer.AND {
			return left && right, nil
		}
		return left || right, nil

	case lexer.BANG:
		if err := e.advance(); err != nil {
			return false, err
		}
		result, err := e.comp()
		return !result, err
	}
	return e.comp()
}

// comp := "(" op compop op ")"
func (e *Engine) comp() (bool, error) {
	if _, err := e.expect(lexer.LEFT_PAREN, "to open comparison"); err != nil {
		return false, err
	}
	left, err := e.op()
	if err != nil {
		return false, err
	}

	op := e.cur.Current().Type
	if !op.IsComparison() {
		return false, e.unexpected("expected comparison operator")
	}
	if err := e.advance(); err != nil {
		return false, err
	}

	right, err := e.op()
	if err != nil {
		return false, err
	}
	if _, err := e.expect(lexer.RIGHT_PAREN, "to close comparison"); err != nil {
		return false, err
	}

	result := compare(left, right, op)
	if hook := e.opts.Hooks.OnCompare; hook != nil {
		hook(left, right, op, result)
	}
	return result, nil
}

func compare(left, right int32, op lexer.TokenType) bool {
	switch op {
	case lexer.BANG_EQUAL:
		return left != right
	case lexer.EQUAL_EQUAL:
		return left == right
	case lexer.LESS:
		return left < right
	case lexer.GREATER:
		return left > right
	case lexer.LESS_EQUAL:
		return left <= right
	case lexer.GREATER_EQUAL:
		return left >= right
	}
	return false
}
