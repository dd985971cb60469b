package lexer

var KEYWORDS = map[string]TokenType{
	"program": PROGRAM,
	"begin":   BEGIN,
	"end":     END,
	"int":     INT,
	"if":      IF,
	"then":    THEN,
	"else":    ELSE,
	"while":   WHILE,
	"loop":    LOOP,
	"read":    READ,
	"write":   WRITE,
}

// spellings holds the canonical source text of every fixed token.
var spellings = map[TokenType]string{
	SEMICOLON:     ";",
	COMMA:         ",",
	ASSIGN:        "=",
	BANG:          "!",
	LEFT_BRACKET:  "[",
	RIGHT_BRACKET: "]",
	AND:           "&&",
	OR:            "||",
	LEFT_PAREN:    "(",
	RIGHT_PAREN:   ")",
	PLUS:          "+",
	MINUS:         "-",
	STAR:          "*",
	BANG_EQUAL:    "!=",
	EQUAL_EQUAL:   "==",
	LESS:          "<",
	GREATER:       ">",
	LESS_EQUAL:    "<=",
	GREATER_EQUAL: ">=",
}

func init() {
	for word, tt := range KEYWORDS {
		spellings[tt] = word
	}
}

// Spelling returns the source text of a fixed token type, or "" for
// INTEGER, IDENTIFIER, ILLEGAL and EOF.
func Spelling(tt TokenType) string {
	return spellings[tt]
}

func lookupKeyword(text string) (TokenType, bool) {
	t, ok := KEYWORDS[text]
	return t, ok
}
