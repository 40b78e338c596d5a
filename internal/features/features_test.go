package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() Options {
	return Options{ShingleSize: 5, NormalizeIdentifiers: true, MinTokens: 10}
}

func TestExtractTooShort(t *testing.T) {
	f := Extract([]byte("int x;"), defaultOptions())
	assert.True(t, f.TooShort)
}

func TestExtractCommentMasking(t *testing.T) {
	src := []byte(`int x = 1; /* y = "2"; */ int y = 2;
int a; int b; int c; int d; int e;`)
	f := Extract(src, Options{ShingleSize: 5, NormalizeIdentifiers: false, MinTokens: 1})
	require.False(t, f.TooShort)
	assert.Equal(t, "int", f.NormalizedTokens[0])
	assert.Equal(t, "x", f.NormalizedTokens[1])
}

func TestNormalizeIdentifiersAliasing(t *testing.T) {
	srcA := []byte("int foo; foo = 1; foo = foo + 1; int bar; bar = foo;")
	srcB := []byte("int baz; baz = 1; baz = baz + 1; int qux; qux = baz;")

	fa := Extract(srcA, Options{ShingleSize: 3, NormalizeIdentifiers: true, MinTokens: 1})
	fb := Extract(srcB, Options{ShingleSize: 3, NormalizeIdentifiers: true, MinTokens: 1})

	assert.Equal(t, fa.NormalizedTokens, fb.NormalizedTokens)
	assert.ElementsMatch(t, fa.Shingles, fb.Shingles)

	// identifier sets are NOT aliased and therefore differ.
	assert.NotEqual(t, fa.Identifiers, fb.Identifiers)
}

func TestIdentifierAndCallSets(t *testing.T) {
	src := []byte("int add(int a, int b) { return add(a, b) + helper(a); }")
	f := Extract(src, Options{ShingleSize: 5, NormalizeIdentifiers: true, MinTokens: 1})

	assert.Contains(t, f.Identifiers, "add")
	assert.Contains(t, f.Identifiers, "a")
	assert.Contains(t, f.Identifiers, "b")
	assert.Contains(t, f.Identifiers, "helper")

	assert.Contains(t, f.Calls, "add")
	assert.Contains(t, f.Calls, "helper")
	assert.NotContains(t, f.Calls, "a")
}

func TestControlStream(t *testing.T) {
	src := []byte("if(a){for(i=0;i<n;i++){}}")
	f := Extract(src, Options{ShingleSize: 5, NormalizeIdentifiers: true, MinTokens: 1})
	assert.Equal(t, []string{"IF", "BRACE{", "FOR", "SEMI", "BRACE{", "BRACE}", "BRACE}"}, f.ControlStream)
}

func TestControlStreamCompressesDuplicates(t *testing.T) {
	src := []byte("{ ; ; ; }")
	f := Extract(src, Options{ShingleSize: 1, NormalizeIdentifiers: true, MinTokens: 1})
	for i := 1; i < len(f.ControlStream); i++ {
		assert.NotEqual(t, f.ControlStream[i-1], f.ControlStream[i])
	}
}

func TestForLoopSignatureAssignAndIncdec(t *testing.T) {
	src := []byte("void f() { int total = 0; for (int i = 0; i < 10; i++) { total++; } }")
	f := Extract(src, Options{ShingleSize: 5, NormalizeIdentifiers: true, MinTokens: 1})
	assert.Contains(t, f.LoopSignatures, "FOR[ASSIGN_OR_DECL;ID<NUM;INCDEC]")
}

func TestForLoopSignatureNoneFields(t *testing.T) {
	src := []byte("void f() { int i = 0; for (;;) { i++; } }")
	f := Extract(src, Options{ShingleSize: 5, NormalizeIdentifiers: true, MinTokens: 1})
	assert.Contains(t, f.LoopSignatures, "FOR[NONE;NONE;NONE]")
}

func TestWhileLoopSignature(t *testing.T) {
	src := []byte("void f() { int i = 0; while (i < 10) { i++; } }")
	f := Extract(src, Options{ShingleSize: 5, NormalizeIdentifiers: true, MinTokens: 1})
	assert.Contains(t, f.LoopSignatures, "WHILE[CMP_NUM]")
}

func TestWhileLoopSignatureCondID(t *testing.T) {
	src := []byte("void f() { int flag = 1; while (flag) { flag = 0; } }")
	f := Extract(src, Options{ShingleSize: 5, NormalizeIdentifiers: true, MinTokens: 1})
	assert.Contains(t, f.LoopSignatures, "WHILE[COND_ID]")
}

func TestShingleSetEmptyBelowK(t *testing.T) {
	assert.Nil(t, shingleSet([]string{"a", "b"}, 5))
}

func TestShingleSetWindowCount(t *testing.T) {
	tokens := []string{"a", "b", "c", "d"}
	s := shingleSet(tokens, 2)
	assert.ElementsMatch(t, []string{"a b", "b c", "c d"}, s)
}

func TestContentHashIsSHA1HexLength(t *testing.T) {
	f := Extract([]byte("int main(void) { return 0; }"), defaultOptions())
	assert.Len(t, f.ContentHash, 40)
}

func TestSubstituteIDNUM(t *testing.T) {
	assert.Equal(t, "ID<NUM", substituteIDNUM("i<10"))
	assert.Equal(t, "ID<ID", substituteIDNUM("i<n"))
	assert.Equal(t, "ID==NUM", substituteIDNUM("x==0"))
}
