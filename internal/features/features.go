// Package features extracts the similarity-bearing feature bundle from a
// single C source file: a normalized token stream, k-shingle set,
// token-frequency bag, identifier and call-name sets, a compressed
// control-flow stream, and loop-header signatures.
package features

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/panbanda/combfino/internal/lexer"
	"github.com/panbanda/combfino/internal/similarity"
)

// keywords is the fixed C89/C99 reserved-word set; these are never aliased
// during identifier normalization.
var keywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "typedef": true, "union": true,
	"unsigned": true, "void": true, "volatile": true, "while": true,
	"_Bool": true, "_Complex": true, "_Imaginary": true,
}

// controlKeywords maps a raw control-flow keyword to its control-stream tag.
var controlKeywords = map[string]string{
	"if": "IF", "else": "ELSE", "for": "FOR", "while": "WHILE", "do": "DO",
	"switch": "SWITCH", "case": "CASE", "default": "DEFAULT", "return": "RETURN",
	"break": "BREAK", "continue": "CONTINUE",
}

// Options configures feature extraction.
type Options struct {
	ShingleSize          int
	NormalizeIdentifiers bool
	MinTokens            int
}

// Features is the full per-file feature bundle; cached by CacheKey and
// reused across Stage B comparisons.
type Features struct {
	TooShort bool
	Error    string

	ContentHash string

	NormalizedTokens []string
	Shingles         []string
	TokenBag         similarity.TokenBag
	Identifiers      []string
	Calls            []string
	ControlStream    []string
	LoopSignatures   []string
}

// Extract runs the full pipeline over raw file bytes.
func Extract(raw []byte, opts Options) *Features {
	hash := sha1.Sum(raw)

	masked := lexer.Mask(raw)
	tokens := lexer.Tokenize(masked)

	f := &Features{ContentHash: hex.EncodeToString(hash[:])}

	if len(tokens) < opts.MinTokens {
		f.TooShort = true
		return f
	}

	f.NormalizedTokens = normalizeTokens(tokens, opts.NormalizeIdentifiers)
	f.Shingles = shingleSet(f.NormalizedTokens, opts.ShingleSize)
	f.TokenBag = tokenBag(f.NormalizedTokens)
	f.Identifiers = identifierSet(tokens)
	f.Calls = callSet(tokens)
	f.ControlStream = controlStream(tokens)
	f.LoopSignatures = ExtractLoopSignatures(masked)

	return f
}

// normalizeTokens replaces every non-keyword identifier with a stable
// alias ID1, ID2, ... assigned in first-seen order. Keywords and all
// non-identifier tokens are kept verbatim. When normalize is false the raw
// token text is used throughout (aliasing disabled per configuration).
func normalizeTokens(tokens []lexer.Token, normalize bool) []string {
	out := make([]string, len(tokens))
	if !normalize {
		for i, tok := range tokens {
			out[i] = tok.Text
		}
		return out
	}

	aliases := make(map[string]string)
	next := 1
	for i, tok := range tokens {
		if tok.Kind != lexer.KindIdent || keywords[tok.Text] {
			out[i] = tok.Text
			continue
		}
		alias, ok := aliases[tok.Text]
		if !ok {
			alias = idAlias(next)
			aliases[tok.Text] = alias
			next++
		}
		out[i] = alias
	}
	return out
}

func idAlias(n int) string {
	return "ID" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// shingleSet is the set of all contiguous k-token windows, each rendered
// as a space-joined string. Empty if there are fewer than k tokens.
func shingleSet(tokens []string, k int) []string {
	if k < 1 || len(tokens) < k {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for i := 0; i+k <= len(tokens); i++ {
		s := strings.Join(tokens[i:i+k], " ")
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func tokenBag(tokens []string) similarity.TokenBag {
	bag := make(similarity.TokenBag, len(tokens))
	for _, t := range tokens {
		bag[t]++
	}
	return bag
}

// identifierSet is the set of non-keyword identifiers from the raw
// (un-aliased) token stream.
func identifierSet(tokens []lexer.Token) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range tokens {
		if tok.Kind == lexer.KindIdent && !keywords[tok.Text] && !seen[tok.Text] {
			seen[tok.Text] = true
			out = append(out, tok.Text)
		}
	}
	return out
}

// callSet is the set of non-keyword identifiers t[i] where t[i+1] == "(",
// taken from the raw stream. No scoping or call-vs-definition distinction
// is made.
func callSet(tokens []lexer.Token) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i+1 < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != lexer.KindIdent || keywords[tok.Text] {
			continue
		}
		next := tokens[i+1]
		if next.Kind == lexer.KindPunct && next.Text == "(" {
			if !seen[tok.Text] {
				seen[tok.Text] = true
				out = append(out, tok.Text)
			}
		}
	}
	return out
}

// controlStream is a single-pass emission over the raw token stream with
// consecutive duplicates compressed (run-length 1).
func controlStream(tokens []lexer.Token) []string {
	var out []string
	for _, tok := range tokens {
		var tag string
		switch {
		case tok.Kind == lexer.KindIdent && controlKeywords[tok.Text] != "":
			tag = controlKeywords[tok.Text]
		case tok.Kind == lexer.KindPunct && tok.Text == "{":
			tag = "BRACE{"
		case tok.Kind == lexer.KindPunct && tok.Text == "}":
			tag = "BRACE}"
		case tok.Kind == lexer.KindPunct && tok.Text == ";":
			tag = "SEMI"
		default:
			continue
		}
		if len(out) > 0 && out[len(out)-1] == tag {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// SortedCopy returns a sorted copy of a string set, useful for stable
// serialization and deterministic test fixtures.
func SortedCopy(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	sort.Strings(out)
	return out
}
