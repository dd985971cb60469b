package engine

import (
	"corelang/internal/lexer"
)

// program := "program" decl_seq "begin" stmt_seq "end"
func (e *Engine) program() error {
	if _, err := e.expect(lexer.PROGRAM, "at start of program"); err != nil {
		return err
	}

	e.cur.EnterBlock()
	if err := e.declSeq(); err != nil {
		return err
	}
	if err := e.leaveBlock(); err != nil {
		return err
	}

	if _, err := e.expect(lexer.BEGIN, "after declarations"); err != nil {
		return err
	}

	e.cur.EnterBlock()
	if err := e.stmtSeq(); err != nil {
		return err
	}
	if err := e.leaveBlock(); err != nil {
		return err
	}

	if !e.check(lexer.END) {
		return e.unexpected("expected statement or 'end' to close program")
	}
	_, err := e.expect(lexer.END, "to close program")
	return err
}

// decl_seq := decl { decl }
func (e *Engine) declSeq() error {
	if !e.check(lexer.INT) {
		return e.unexpected("expected declaration")
	}
	for e.check(lexer.INT) {
		if err := e.decl(); err != nil {
			return err
		}
	}
	return nil
}

// decl := "int" id_list ";"
func (e *Engine) decl() error {
	if _, err := e.expect(lexer.INT, "to start declaration"); err != nil {
		return err
	}
	ids, err := e.idList()
	if err != nil {
		return err
	}
	if _, err := e.expect(lexer.SEMICOLON, "after declaration"); err != nil {
		return err
	}
	for _, id := range ids {
		e.symbols.Declare(id.tok.Lexeme)
	}
	return nil
}

type ident struct {
	tok   lexer.Token
	index int
}

// id_list := IDENT { "," IDENT }
func (e *Engine) idList() ([]ident, error) {
	var ids []ident
	for {
		index := e.cur.Pos()
		tok, err := e.expect(lexer.IDENTIFIER, "in identifier list")
		if err != nil {
			return nil, err
		}
		ids = append(ids, ident{tok: tok, index: index})

		if !e.check(lexer.COMMA) {
			return ids, nil
		}
		if err := e.advance(); err != nil {
			return nil, err
		}
	}
}
