package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roundTripSources = []string{
	"program int A,B; begin A=3; B=4; write A,B; end",
	"program int A; begin A=0; while (A<3) loop A=A+1; end; write A; end",
	"program int A,B; begin A=5; B=0; if (A>3) then B=1; else B=2; end; write B; end",
	"program int X; begin if [ (1==1) && !(2>=3) ] then read X; end; X = (X - 007) * 2; end",
	"program int Y1; begin while [(Y1 <= 10) || (Y1 != 0)] loop Y1=Y1*2; end; end",
}

func TestFormatRoundTrip(t *testing.T) {
	for _, src := range roundTripSources {
		original := Scan([]byte(src))
		require.NotEqual(t, ILLEGAL, original[len(original)-2].Type, src)

		printed := Format(original)
		again := Scan([]byte(printed))

		require.Equal(t, len(original), len(again), printed)
		for i := range original {
			assert.Equal(t, original[i].Type, again[i].Type, "token %d of %q", i, printed)
			assert.Equal(t, original[i].Value, again[i].Value, "token %d of %q", i, printed)
			if original[i].Type == IDENTIFIER {
				assert.Equal(t, original[i].Lexeme, again[i].Lexeme)
			}
		}
	}
}

func TestFormatCanonicalSpelling(t *testing.T) {
	tokens := Scan([]byte("X=007;"))
	assert.Equal(t, "X = 7 ;", Format(tokens))
}

func TestDump(t *testing.T) {
	out := Dump(Scan([]byte("int X;")))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "INT")
	assert.Contains(t, lines[1], "IDENTIFIER")
	assert.Contains(t, lines[1], "X")
	assert.Contains(t, lines[3], "EOF")
}
