package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

// String prints the program in canonical layout: one statement per line,
// four spaces per nesting level.
func (p *Program) String() string {
	var b strings.Builder
	b.WriteString("program\n")
	for _, d := range p.Decls {
		b.WriteString(indent(1) + d.String() + "\n")
	}
	b.WriteString("begin\n")
	for _, s := range p.Body {
		b.WriteString(s.StringWithIndent(1))
	}
	b.WriteString("end\n")
	return b.String()
}

func (d *Decl) String() string {
	return fmt.Sprintf("int %s;", strings.Join(d.Names, ", "))
}

func (s *Stmt) StringWithIndent(level int) string {
	switch {
	case s.Assign != nil:
		return indent(level) + s.Assign.String() + "\n"
	case s.Read != nil:
		return indent(level) + s.Read.String() + "\n"
	case s.Write != nil:
		return indent(level) + s.Write.String() + "\n"
	case s.If != nil:
		return s.If.StringWithIndent(level)
	case s.While != nil:
		return s.While.StringWithIndent(level)
	}
	return ""
}

func (a *Assign) String() string {
	return fmt.Sprintf("%s = %s;", a.Target, a.Value)
}

func (r *Read) String() string {
	return fmt.Sprintf("read %s;", strings.Join(r.Names, ", "))
}

func (w *Write) String() string {
	return fmt.Sprintf("write %s;", strings.Join(w.Names, ", "))
}

func (i *If) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%sif %s then\n", indent(level), i.Cond))
	for _, s := range i.Then {
		b.WriteString(s.StringWithIndent(level + 1))
	}
	if len(i.Else) > 0 {
		b.WriteString(indent(level) + "else\n")
		for _, s := range i.Else {
			b.WriteString(s.StringWithIndent(level + 1))
		}
	}
	b.WriteString(indent(level) + "end;\n")
	return b.String()
}

func (w *While) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%swhile %s loop\n", indent(level), w.Cond))
	for _, s := range w.Body {
		b.WriteString(s.StringWithIndent(level + 1))
	}
	b.WriteString(indent(level) + "end;\n")
	return b.String()
}

func (c *Cond) String() string {
	switch {
	case c.Compound != nil:
		return c.Compound.String()
	case c.Not != nil:
		return "!" + c.Not.String()
	case c.Comp != nil:
		return c.Comp.String()
	}
	return ""
}

func (c *Compound) String() string {
	return fmt.Sprintf("[%s %s %s]", c.Left, c.Op, c.Right)
}

func (c *Comp) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}

func (e *Expr) String() string {
	if e.Tail == nil {
		return e.Left.String()
	}
	return fmt.Sprintf("%s %s %s", e.Left, e.Tail.Op, e.Tail.Right)
}

func (t *Term) String() string {
	if t.Right == nil {
		return t.Left.String()
	}
	return fmt.Sprintf("%s * %s", t.Left, t.Right)
}

func (o *Operand) String() string {
	switch {
	case o.Integer != nil:
		// Leading zeros are dropped
		if v, err := strconv.ParseInt(*o.Integer, 10, 32); err == nil {
			return strconv.FormatInt(v, 10)
		}
		return *o.Integer
	case o.Ident != nil:
		return *o.Ident
	case o.Sub != nil:
		return "(" + o.Sub.String() + ")"
	}
	return ""
}
