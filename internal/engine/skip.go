package engine

import (
	"strings"

	"corelang/internal/lexer"
)

// skip advances over a branch that is not taken without executing or
// checking it. Every "if" or "while" opens a nested level and every "end"
// inside a nested level closes one. The scan stops on an "end" at level
// zero, or on an "else" at level zero when stopAtElse is set. The stopping
// token itself is not consumed.
func (e *Engine) skip(stopAtElse bool) error {
	from := e.cur.Pos()
	level := 0

	for {
		tok := e.cur.Current()
		switch tok.Type {
		case lexer.EOF:
			return &Error{
				Kind:    KindUnterminated,
				Message: "block is never closed, expected 'end'",
				Index:   from,
				Token:   e.cur.tokens[from],
			}
		case lexer.IF, lexer.WHILE:
			level++
		case lexer.ELSE:
			if level == 0 && stopAtElse {
				return e.skipped(from)
			}
		case lexer.END:
			if level == 0 {
				return e.skipped(from)
			}
			level--
		}
		if err := e.advance(); err != nil {
			return err
		}
	}
}

func (e *Engine) skipped(from int) error {
	to := e.cur.Pos()
	log.Debugf("%sskipped tokens %d..%d", strings.Repeat("    ", e.cur.Depth()), from, to)
	if hook := e.opts.Hooks.OnSkip; hook != nil {
		hook(from, to)
	}
	return nil
}
