package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"corelang/internal/engine"
	"corelang/internal/lexer"
)

func init() {
	color.NoColor = true
}

func session(input string) (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	return NewSession(strings.NewReader(input), &out, engine.Options{}), &out
}

func TestDeclareAssignWrite(t *testing.T) {
	s, out := session("int A, B;\nA = 5;\nwrite A;\n:vars\n:quit\nwrite B;\n")
	s.Run()

	assert.Contains(t, out.String(), "A = 5\n")
	assert.Contains(t, out.String(), "A = 5\nB = 0\n")
	assert.Equal(t, map[string]int32{"A": 5, "B": 0}, s.Symbols())
	assert.Equal(t, 1, strings.Count(out.String(), "B = 0"))
}

func TestBlockWaitsForEnd(t *testing.T) {
	s, out := session("int N;\nN = 0;\nwhile (N < 3) loop\nN = N + 1;\nend;\nwrite N;\n")
	s.Run()

	assert.Equal(t, 2, strings.Count(out.String(), CONTINUATION))
	assert.Contains(t, out.String(), "N = 3\n")
}

func TestErrorsDoNotEndSession(t *testing.T) {
	s, out := session("write X Y;\nA = 2;\nwrite A;\n")
	s.Run()

	assert.Contains(t, out.String(), "error[E0100]")
	assert.Contains(t, out.String(), "<entry 1>")
	assert.Contains(t, out.String(), "A = 2\n")
}

func TestScanErrorIsReported(t *testing.T) {
	s, out := session("A = 1 | 2;\nA = 3;\nwrite A;\n")
	s.Run()

	assert.Contains(t, out.String(), "error[E0200]")
	assert.Contains(t, out.String(), "A = 3\n")
}

func TestReadSharesInput(t *testing.T) {
	s, out := session("int A;\nread A;\nabc\n42\nwrite A;\n")
	s.Run()

	assert.Contains(t, out.String(), "A =? ")
	assert.Contains(t, out.String(), `"abc" is not an integer`)
	assert.Contains(t, out.String(), "A = 42\n")
}

func TestReadAtEndOfInput(t *testing.T) {
	s, out := session("read A;\n")
	s.Run()

	assert.Contains(t, out.String(), "error[E0400]")
}

func TestFullProgramEntry(t *testing.T) {
	s, out := session("program int A;\nbegin\nA = 7;\nwrite A;\nend\n")
	s.Run()

	assert.Contains(t, out.String(), "A = 7\n")
}

func TestUnknownCommand(t *testing.T) {
	s, out := session(":nope\n:help\n")
	s.Run()

	assert.Contains(t, out.String(), "unknown command :nope")
	assert.Contains(t, out.String(), ":vars")
}

func TestStart(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("write A;\n"), &out)
	assert.True(t, strings.HasPrefix(out.String(), PROMPT))
	assert.Contains(t, out.String(), "A = 0\n")
}

func TestBalanced(t *testing.T) {
	tests := []struct {
		source   string
		expected bool
	}{
		{"A = 1;", true},
		{"if (A < 1) then", false},
		{"if (A < 1) then A = 1; end;", true},
		{"while (A < 1) loop if (A == 1) then", false},
		{"program int A; begin", false},
		{"", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, balanced(lexer.Scan([]byte(tt.source))), tt.source)
	}
}
