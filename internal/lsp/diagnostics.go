package lsp

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"corelang/grammar"
	coreerrors "corelang/internal/errors"
	"corelang/internal/lexer"
)

// Diagnose checks a document without running it. Scanner errors come
// first; when the text scans cleanly the first grammar error follows,
// then a warning for every name used without a declaration.
func Diagnose(filename, text string) []protocol.Diagnostic {
	scanner := lexer.NewScanner([]byte(text))
	tokens := scanner.ScanTokens()

	diagnostics := ConvertScanErrors(scanner.Errors())
	if len(diagnostics) > 0 {
		return diagnostics
	}

	if _, err := grammar.ParseString(filename, text); err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			diagnostics = append(diagnostics, convertCompilerError(coreerrors.FromParseError(perr), "core-grammar"))
		}
	}

	return append(diagnostics, undeclaredWarnings(tokens)...)
}

// ConvertScanErrors transforms scanner errors into LSP diagnostics.
func ConvertScanErrors(scanErrors []lexer.ScanError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic
	for _, scanErr := range scanErrors {
		diagnostics = append(diagnostics, convertCompilerError(coreerrors.FromScanError(scanErr), "core-scanner"))
	}
	return diagnostics
}

func convertCompilerError(err coreerrors.CompilerError, source string) protocol.Diagnostic {
	message := err.Message
	for _, s := range err.Suggestions {
		message += "\n" + s.Message
	}

	severity := protocol.DiagnosticSeverityError
	if err.Level == coreerrors.Warning {
		severity = protocol.DiagnosticSeverityWarning
	}

	diagnostic := protocol.Diagnostic{
		Range:    spanRange(err.Position, max(1, err.Length)),
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
	if err.Code != "" {
		diagnostic.Code = &protocol.IntegerOrString{Value: err.Code}
	}
	return diagnostic
}

// undeclaredWarnings flags identifiers in the program body that never
// appear in a declaration. They run as variables starting at 0.
func undeclaredWarnings(tokens []lexer.Token) []protocol.Diagnostic {
	declared := declaredNames(tokens)
	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}

	var diagnostics []protocol.Diagnostic
	reported := make(map[string]bool)
	inBody := false
	for _, tok := range tokens {
		if tok.Type == lexer.BEGIN {
			inBody = true
		}
		if !inBody || tok.Type != lexer.IDENTIFIER || declared[tok.Lexeme] || reported[tok.Lexeme] {
			continue
		}
		reported[tok.Lexeme] = true

		builder := coreerrors.NewWarning(coreerrors.ErrorUndefinedVariable,
			fmt.Sprintf("'%s' is not declared and starts at 0", tok.Lexeme), tok.Position).
			WithLength(len(tok.Lexeme))
		if similar := coreerrors.SimilarNames(tok.Lexeme, names); len(similar) > 0 {
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
		}
		diagnostics = append(diagnostics, convertCompilerError(builder.Build(), "core-check"))
	}
	return diagnostics
}

// declaredNames collects identifiers that follow an "int" up to its ";".
func declaredNames(tokens []lexer.Token) map[string]bool {
	declared := make(map[string]bool)
	inDecl := false
	for _, tok := range tokens {
		switch tok.Type {
		case lexer.INT:
			inDecl = true
		case lexer.SEMICOLON:
			inDecl = false
		case lexer.IDENTIFIER:
			if inDecl {
				declared[tok.Lexeme] = true
			}
		}
	}
	return declared
}

// spanRange converts a 1-based source position into a 0-based LSP range on
// a single line.
func spanRange(pos lexer.Position, length int) protocol.Range {
	line := protocol.UInteger(max(0, pos.Line-1))
	start := protocol.UInteger(max(0, pos.Column-1))
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: start + protocol.UInteger(length)},
	}
}
