package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"corelang/internal/lexer"
)

// ErrorBuilder provides a fluent interface for creating errors with
// suggestions
type ErrorBuilder struct {
	err CompilerError
}

func NewError(code, message string, pos lexer.Position) *ErrorBuilder {
	return &ErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

func NewWarning(code, message string, pos lexer.Position) *ErrorBuilder {
	b := NewError(code, message, pos)
	b.err.Level = Warning
	return b
}

// WithLength sets the length of the error span
func (b *ErrorBuilder) WithLength(length int) *ErrorBuilder {
	b.err.Length = length
	return b
}

func (b *ErrorBuilder) WithSuggestion(message string) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *ErrorBuilder) WithReplacement(message, replacement string) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

func (b *ErrorBuilder) WithNote(note string) *ErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *ErrorBuilder) WithHelp(help string) *ErrorBuilder {
	b.err.HelpText = help
	return b
}

func (b *ErrorBuilder) Build() CompilerError {
	return b.err
}

// UndefinedVariable creates an error for undefined variables with suggestions
func UndefinedVariable(name string, pos lexer.Position, similarNames []string) CompilerError {
	builder := NewError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name))

	switch len(similarNames) {
	case 0:
		builder = builder.WithSuggestion("declare it in the program header").
			WithNote("strict mode requires every variable to be declared with 'int'")
	case 1:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similarNames[0]))
	default:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similarNames, "', '")))
	}

	return builder.Build()
}

// SimilarNames returns up to three candidates that look like name: close
// by edit distance, or containing name as a subsequence. Closest first.
func SimilarNames(name string, candidates []string) []string {
	threshold := max(1, len(name)/3)
	distance := make(map[string]int)

	for _, candidate := range candidates {
		if candidate == name {
			continue
		}
		if d := fuzzy.LevenshteinDistance(name, candidate); d <= threshold {
			distance[candidate] = d
		}
	}
	for _, rank := range fuzzy.RankFindFold(name, candidates) {
		if rank.Target == name {
			continue
		}
		if _, ok := distance[rank.Target]; !ok {
			distance[rank.Target] = rank.Distance
		}
	}

	similar := make([]string, 0, len(distance))
	for candidate := range distance {
		similar = append(similar, candidate)
	}
	sort.Slice(similar, func(i, j int) bool {
		di, dj := distance[similar[i]], distance[similar[j]]
		if di != dj {
			return di < dj
		}
		return similar[i] < similar[j]
	})
	if len(similar) > 3 {
		similar = similar[:3]
	}
	return similar
}

// closestKeyword suggests a keyword for a misspelled lower-case word.
func closestKeyword(word string) (string, bool) {
	best, bestDistance := "", 3
	for keyword := range lexer.KEYWORDS {
		if d := fuzzy.LevenshteinDistance(word, keyword); d < bestDistance || (d == bestDistance && keyword < best) {
			best, bestDistance = keyword, d
		}
	}
	return best, best != "" && bestDistance <= 2
}
