package grammar_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corelang/grammar"
	"corelang/internal/engine"
	"corelang/internal/lexer"
)

const sample = `program int A, B; int SUM1;
begin
  read A, B;
  SUM1 = 0;
  while [ (A > 0) && !(B == 0) ] loop
    SUM1 = SUM1 + B * 2;
    A = A - 1;
  end;
  if (SUM1 >= 007) then write SUM1; else B = (A + 1) - 2; write B; end;
end`

func TestParseSample(t *testing.T) {
	program, err := grammar.ParseString("sample.core", sample)
	require.NoError(t, err)

	require.Len(t, program.Decls, 2)
	assert.Equal(t, []string{"A", "B"}, program.Decls[0].Names)
	assert.Equal(t, []string{"SUM1"}, program.Decls[1].Names)

	require.Len(t, program.Body, 4)
	assert.Equal(t, []string{"A", "B"}, program.Body[0].Read.Names)
	assert.Equal(t, "SUM1", program.Body[1].Assign.Target)

	loop := program.Body[2].While
	require.NotNil(t, loop)
	require.NotNil(t, loop.Cond.Compound)
	assert.Equal(t, "&&", loop.Cond.Compound.Op)
	assert.NotNil(t, loop.Cond.Compound.Right.Not)
	assert.Len(t, loop.Body, 2)

	branch := program.Body[3].If
	require.NotNil(t, branch)
	assert.Len(t, branch.Then, 1)
	assert.Len(t, branch.Else, 2)
	assert.Equal(t, ">=", branch.Cond.Comp.Op)

	assert.Equal(t, 4, program.Body[1].Pos.Line)
}

func TestPrettyPrint(t *testing.T) {
	program, err := grammar.ParseString("sample.core", sample)
	require.NoError(t, err)

	expected := `program
    int A, B;
    int SUM1;
begin
    read A, B;
    SUM1 = 0;
    while [(A > 0) && !(B == 0)] loop
        SUM1 = SUM1 + B * 2;
        A = A - 1;
    end;
    if (SUM1 >= 7) then
        write SUM1;
    else
        B = (A + 1) - 2;
        write B;
    end;
end
`
	assert.Equal(t, expected, program.String())
}

func TestPrettyPrintIsStable(t *testing.T) {
	program, err := grammar.ParseString("sample.core", sample)
	require.NoError(t, err)

	printed := program.String()
	again, err := grammar.ParseString("printed.core", printed)
	require.NoError(t, err)
	assert.Equal(t, printed, again.String())
}

func TestPrettyPrintPreservesBehavior(t *testing.T) {
	program, err := grammar.ParseString("sample.core", sample)
	require.NoError(t, err)

	execute := func(src string) []string {
		out := &engine.BufferedOutput{}
		e := engine.New(engine.Options{Input: engine.NewSliceInput(3, 5), Output: out})
		require.NoError(t, e.Run(lexer.Scan([]byte(src))))
		return out.Lines()
	}
	assert.Equal(t, execute(sample), execute(program.String()))
	assert.Equal(t, []string{"SUM1 = 30"}, execute(sample))
}

func TestSyntaxErrorsInUntakenBranches(t *testing.T) {
	src := "program int A; begin A = 0; if (A == 1) then write write; end; end"

	// The engine never looks inside the branch.
	require.NoError(t, engine.New(engine.Options{}).Run(lexer.Scan([]byte(src))))

	_, err := grammar.ParseString("bad.core", src)
	require.Error(t, err)

	var perr participle.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Position().Line)
	assert.Greater(t, perr.Position().Column, 44)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing semicolon after declaration", "program int A begin A = 1; end"},
		{"empty body", "program int A; begin end"},
		{"no declarations", "program begin A = 1; end"},
		{"comparison of expressions", "program int A; begin if (A + 1 < 2) then A = 1; end; end"},
		{"missing end", "program int A; begin while (A < 1) loop A = 1; end"},
		{"lower case identifier", "program int a; begin a = 1; end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := grammar.ParseString("bad.core", tt.src)
			assert.Error(t, err)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.core")
	require.NoError(t, os.WriteFile(path, []byte("program int X; begin X = 1; write X; end"), 0o644))

	program, err := grammar.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, program.Body, 2)

	_, err = grammar.ParseFile(filepath.Join(t.TempDir(), "missing.core"))
	assert.Error(t, err)
}
