package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is the declarative form of a Core program. The engine never
// builds it; it exists for syntax checking and pretty-printing, where
// every branch has to be visited whether it would run or not.
type Program struct {
	Pos   lexer.Position
	Decls []*Decl `"program" @@+`
	Body  []*Stmt `"begin" @@+ "end"`
}

type Decl struct {
	Pos   lexer.Position
	Names []string `"int" @Ident { "," @Ident } ";"`
}

type Stmt struct {
	Pos    lexer.Position
	Assign *Assign `  @@`
	Read   *Read   `| @@`
	Write  *Write  `| @@`
	If     *If     `| @@`
	While  *While  `| @@`
}

type Assign struct {
	Target string `@Ident "="`
	Value  *Expr  `@@ ";"`
}

type Read struct {
	Names []string `"read" @Ident { "," @Ident } ";"`
}

type Write struct {
	Names []string `"write" @Ident { "," @Ident } ";"`
}

type If struct {
	Cond *Cond   `"if" @@ "then"`
	Then []*Stmt `@@+`
	Else []*Stmt `[ "else" @@+ ] "end" ";"`
}

type While struct {
	Cond *Cond   `"while" @@ "loop"`
	Body []*Stmt `@@+ "end" ";"`
}

type Cond struct {
	Compound *Compound `  @@`
	Not      *Comp     `| "!" @@`
	Comp     *Comp     `| @@`
}

type Compound struct {
	Left  *Cond  `"[" @@`
	Op    string `@( "&&" | "||" )`
	Right *Cond  `@@ "]"`
}

type Comp struct {
	Left  *Operand `"(" @@`
	Op    string   `@( "!=" | "==" | "<=" | ">=" | "<" | ">" )`
	Right *Operand `@@ ")"`
}

// Expr and Term nest to the right, matching how the engine evaluates them.
type Expr struct {
	Left *Term     `@@`
	Tail *ExprTail `@@?`
}

type ExprTail struct {
	Op    string `@( "+" | "-" )`
	Right *Expr  `@@`
}

type Term struct {
	Left  *Operand `@@`
	Right *Term    `[ "*" @@ ]`
}

type Operand struct {
	Integer *string `  @Integer`
	Ident   *string `| @Ident`
	Sub     *Expr   `| "(" @@ ")"`
}
