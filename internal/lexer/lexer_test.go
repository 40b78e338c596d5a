package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTexts(toks []Token) []string {
	texts := make([]string, len(toks))
	for i, tok := range toks {
		texts[i] = tok.Text
	}
	return texts
}

func TestMaskPreservesLength(t *testing.T) {
	src := []byte(`char *s = "hello\"world"; /* comment
spanning lines */ int x = 'a'; // trailing
`)
	masked := Mask(src)
	require.Len(t, masked, len(src))
}

func TestMaskBlockComment(t *testing.T) {
	src := []byte(`int x = 1; /* y = "2"; */ int y = 2;`)
	masked := Mask(src)
	toks := Tokenize(masked)
	assert.Equal(t, []string{"int", "x", "=", "1", ";", "int", "y", "=", "2", ";"}, tokenTexts(toks))
}

func TestMaskLineComment(t *testing.T) {
	src := []byte("int x = 1; // rest of line\nint y = 2;")
	masked := Mask(src)
	toks := Tokenize(masked)
	assert.Equal(t, []string{"int", "x", "=", "1", ";", "int", "y", "=", "2", ";"}, tokenTexts(toks))
}

func TestMaskStringWithEscapedQuote(t *testing.T) {
	src := []byte(`char *s = "a\"b";`)
	masked := Mask(src)
	toks := Tokenize(masked)
	assert.Equal(t, []string{"char", "*", "s", "=", ";"}, tokenTexts(toks))
}

func TestTokenizeIdentifiersAndKeywords(t *testing.T) {
	toks := Tokenize(Mask([]byte("int main(void) { return 0; }")))
	assert.Equal(t, []string{"int", "main", "(", "void", ")", "{", "return", "0", ";", "}"}, tokenTexts(toks))
}

func TestTokenizeHexLiteral(t *testing.T) {
	toks := Tokenize(Mask([]byte("int x = 0xFF;")))
	assert.Equal(t, KindHex, toks[3].Kind)
	assert.Equal(t, "0xFF", toks[3].Text)
}

func TestTokenizeUppercaseHexPrefixIsNotAHexLiteral(t *testing.T) {
	toks := Tokenize(Mask([]byte("int x = 0X1A;")))
	assert.Equal(t, []string{"int", "x", "=", "0", "X1A", ";"}, tokenTexts(toks))
}

func TestTokenizeFloatLiteral(t *testing.T) {
	toks := Tokenize(Mask([]byte("float f = 3.14;")))
	assert.Equal(t, "3.14", toks[3].Text)

	toks = Tokenize(Mask([]byte("float f = .5;")))
	assert.Equal(t, ".5", toks[3].Text)
}

func TestTokenizeMultiCharOperators(t *testing.T) {
	toks := Tokenize(Mask([]byte("a == b && c != d")))
	assert.Equal(t, []string{"a", "==", "b", "&&", "c", "!=", "d"}, tokenTexts(toks))
}

func TestTokenizeSkipsUnknownBytes(t *testing.T) {
	toks := Tokenize(Mask([]byte("int x @ = 1;")))
	assert.Equal(t, []string{"int", "x", "=", "1", ";"}, tokenTexts(toks))
}
