package engine

import (
	"fmt"
	"strings"

	"corelang/internal/lexer"
)

func startsStatement(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENTIFIER, lexer.READ, lexer.WRITE, lexer.IF, lexer.WHILE:
		return true
	}
	return false
}

// stmt_seq := stmt { stmt }
func (e *Engine) stmtSeq() error {
	if !startsStatement(e.cur.Current().Type) {
		return e.unexpected("expected statement")
	}
	for startsStatement(e.cur.Current().Type) {
		if err := e.stmt(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) stmt() error {
	kind := e.cur.Current().Type
	index, depth := e.cur.Pos(), e.cur.Depth()

	log.Debugf("%s%s at token %d", strings.Repeat("    ", depth), kind, index)
	if hook := e.opts.Hooks.OnStatement; hook != nil {
		hook(kind, index, depth)
	}

	switch kind {
	case lexer.IDENTIFIER:
		return e.assign()
	case lexer.READ:
		return e.read()
	case lexer.WRITE:
		return e.write()
	case lexer.IF:
		return e.ifStmt()
	case lexer.WHILE:
		return e.whileStmt()
	}
	return e.unexpected("expected statement")
}

// assign := IDENT "=" expr ";"
func (e *Engine) assign() error {
	index := e.cur.Pos()
	target, err := e.expect(lexer.IDENTIFIER, "as assignment target")
	if err != nil {
		return err
	}
	if err := e.symbols.Touch(target.Lexeme); err != nil {
		return e.undefined(target, index)
	}
	if _, err := e.expect(lexer.ASSIGN, "after assignment target"); err != nil {
		return err
	}
	value, err := e.expr()
	if err != nil {
		return err
	}
	if _, err := e.expect(lexer.SEMICOLON, "after assignment"); err != nil {
		return err
	}
	e.cur.Define(target.Lexeme, value)
	return nil
}

// read := "read" id_list ";"
func (e *Engine) read() error {
	if _, err := e.expect(lexer.READ, "to start read"); err != nil {
		return err
	}
	ids, err := e.idList()
	if err != nil {
		return err
	}
	if _, err := e.expect(lexer.SEMICOLON, "after read list"); err != nil {
		return err
	}

	for _, id := range ids {
		name := id.tok.Lexeme
		if err := e.symbols.Touch(name); err != nil {
			return e.undefined(id.tok, id.index)
		}
		value, err := e.opts.Input.Next(name)
		if err != nil {
			return e.inputError(id.tok, id.index, err)
		}
		e.cur.Define(name, value)
	}
	return nil
}

// write := "write" id_list ";"
func (e *Engine) write() error {
	if _, err := e.expect(lexer.WRITE, "to start write"); err != nil {
		return err
	}
	ids, err := e.idList()
	if err != nil {
		return err
	}
	if _, err := e.expect(lexer.SEMICOLON, "after write list"); err != nil {
		return err
	}

	for _, id := range ids {
		value, err := e.cur.Lookup(id.tok.Lexeme)
		if err != nil {
			return e.undefined(id.tok, id.index)
		}
		if err := e.opts.Output.Emit(fmt.Sprintf("%s = %d", id.tok.Lexeme, value)); err != nil {
			return err
		}
	}
	return nil
}

// if := "if" cond "then" stmt_seq [ "else" stmt_seq ] "end" ";"
//
// Only the chosen branch is executed. The other one is skipped without
// being checked.
func (e *Engine) ifStmt() error {
	if _, err := e.expect(lexer.IF, "to start if"); err != nil {
		return err
	}
	ok, err := e.cond()
	if err != nil {
		return err
	}
	if _, err := e.expect(lexer.THEN, "after if condition"); err != nil {
		return err
	}

	if ok {
		if err := e.block(e.stmtSeq); err != nil {
			return err
		}
		if e.check(lexer.ELSE) {
			if err := e.advance(); err != nil {
				return err
			}
			if err := e.block(func() error { return e.skip(false) }); err != nil {
				return err
			}
		}
	} else {
		if err := e.block(func() error { return e.skip(true) }); err != nil {
			return err
		}
		if e.check(lexer.ELSE) {
			if err := e.advance(); err != nil {
				return err
			}
			if err := e.block(e.stmtSeq); err != nil {
				return err
			}
		}
	}

	if !e.check(lexer.END) {
		return e.unexpected("expected statement, 'else' or 'end' in if")
	}
	return e.closeBlock("if")
}

// while := "while" cond "loop" stmt_seq "end" ";"
//
// Each iteration re-evaluates the condition by seeking back to the while
// token. When it is false the body is skipped and execution continues
// after "end ;".
func (e *Engine) whileStmt() error {
	start := e.cur.Pos()
	for iteration := 0; ; iteration++ {
		if iteration > 0 {
			if err := e.cur.Seek(start); err != nil {
				return &Error{Kind: KindPastEnd, Message: err.Error(), Index: e.cur.Pos(), Token: e.cur.Current(), Err: err}
			}
		}

		if _, err := e.expect(lexer.WHILE, "to start loop"); err != nil {
			return err
		}
		ok, err := e.cond()
		if err != nil {
			return err
		}
		if _, err := e.expect(lexer.LOOP, "after while condition"); err != nil {
			return err
		}

		if !ok {
			log.Debugf("%sloop at token %d done after %d iterations", strings.Repeat("    ", e.cur.Depth()), start, iteration)
			if err := e.block(func() error { return e.skip(false) }); err != nil {
				return err
			}
			return e.closeBlock("loop")
		}

		if limit := e.opts.MaxIterations; limit > 0 && iteration >= limit {
			return &Error{
				Kind:    KindIterationLimit,
				Message: fmt.Sprintf("loop exceeded %d iterations", limit),
				Index:   start,
				Token:   e.cur.tokens[start],
			}
		}

		if err := e.block(e.stmtSeq); err != nil {
			return err
		}
		if !e.check(lexer.END) {
			return e.unexpected("expected statement or 'end' in loop")
		}
		if err := e.closeBlock("loop"); err != nil {
			return err
		}
	}
}

// block runs body one nesting level deeper.
func (e *Engine) block(body func() error) error {
	e.cur.EnterBlock()
	if err := body(); err != nil {
		return err
	}
	return e.leaveBlock()
}

// closeBlock consumes the trailing "end ;" of an if or while.
func (e *Engine) closeBlock(what string) error {
	if _, err := e.expect(lexer.END, "to close "+what); err != nil {
		return err
	}
	_, err := e.expect(lexer.SEMICOLON, "after end of "+what)
	return err
}
