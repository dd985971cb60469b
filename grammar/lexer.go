package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var CoreLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Reserved words are lower case and never run into an identifier
		{"Keyword", `\b(program|begin|end|int|if|then|else|while|loop|read|write)\b`, nil},

		// Identifiers are upper case with optional trailing digits
		{"Ident", `[A-Z]+[0-9]*\b`, nil},

		{"Integer", `[0-9]+\b`, nil},

		// Two-character operators first
		{"Operator", `(&&|\|\||==|!=|<=|>=|[=!<>+*-])`, nil},

		{"Punctuation", `[;,()[\]]`, nil},

		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
