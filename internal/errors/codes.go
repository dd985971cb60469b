package errors

// Error codes used by the scanner, the engine and the tooling.
//
// Error code ranges:
// E0100-E0199: Grammar errors
// E0200-E0299: Lexical errors
// E0300-E0399: Runtime errors
// E0400-E0499: Input errors

const (
	// E0100: A token did not fit the production being recognized
	ErrorUnexpectedToken = "E0100"

	// E0101: A skipped branch or loop body ran into end of input
	ErrorUnterminatedBlock = "E0101"

	// E0102: Tokens after the closing 'end' of the program
	ErrorTrailingTokens = "E0102"

	// E0200: The scanner met text that is not a Core token
	ErrorIllegalLexeme = "E0200"

	// E0300: Strict mode mention of a name that was never declared
	ErrorUndefinedVariable = "E0300"

	// E0301: The cursor was asked to move past the last token
	ErrorCursorPastEnd = "E0301"

	// E0302: A while statement exceeded the configured iteration limit
	ErrorIterationLimit = "E0302"

	// E0400: A read statement found no more input values
	ErrorInputExhausted = "E0400"

	// E0401: An input file line that is not a 32-bit integer
	ErrorMalformedInput = "E0401"
)

var errorDescriptions = map[string]string{
	ErrorUnexpectedToken:   "Unexpected token",
	ErrorUnterminatedBlock: "Block is never closed",
	ErrorTrailingTokens:    "Trailing tokens after program end",
	ErrorIllegalLexeme:     "Illegal lexeme",
	ErrorUndefinedVariable: "Undefined variable",
	ErrorCursorPastEnd:     "Cursor moved past end of input",
	ErrorIterationLimit:    "Loop iteration limit exceeded",
	ErrorInputExhausted:    "Input exhausted",
	ErrorMalformedInput:    "Malformed input value",
}

// GetErrorDescription returns a short description of an error code
func GetErrorDescription(code string) string {
	if desc, ok := errorDescriptions[code]; ok {
		return desc
	}
	return "Unknown error"
}

// GetErrorCategory returns the category of an error code
func GetErrorCategory(code string) string {
	if len(code) != 5 {
		return "Unknown"
	}
	switch {
	case code >= "E0100" && code < "E0200":
		return "Grammar"
	case code >= "E0200" && code < "E0300":
		return "Lexical"
	case code >= "E0300" && code < "E0400":
		return "Runtime"
	case code >= "E0400" && code < "E0500":
		return "Input"
	default:
		return "Unknown"
	}
}
