package gather

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFilenameValid(t *testing.T) {
	cases := []struct {
		name     string
		question int
		author   string
	}{
		{"q1_alice.c", 1, "alice"},
		{"Q02-bob.c", 2, "bob"},
		{"q10 carol.c", 10, "carol"},
		{"q3_d-e_f.c", 3, "d-e_f"},
	}
	for _, c := range cases {
		q, author, ok := ParseFilename(c.name)
		if !ok {
			t.Errorf("ParseFilename(%q) failed to match", c.name)
			continue
		}
		if q != c.question || author != c.author {
			t.Errorf("ParseFilename(%q) = (%d, %q), want (%d, %q)", c.name, q, author, c.question, c.author)
		}
	}
}

func TestParseFilenameInvalid(t *testing.T) {
	for _, name := range []string{"alice.c", "q1.c", "q_alice.c", "q1_alice.h", "q1_alice.txt"} {
		if _, _, ok := ParseFilename(name); ok {
			t.Errorf("ParseFilename(%q) should not match", name)
		}
	}
}

func TestFilesDropsNonMatchingAndIgnored(t *testing.T) {
	entries, err := Files([]string{
		"/tmp/q1_alice.c",
		"/tmp/notes.txt",
		"/tmp/q1_bob_generated.c",
	}, Options{IgnoreGlobs: []string{"*_generated.c"}})
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
	if entries[0].Author != "alice" {
		t.Errorf("Author = %q, want alice", entries[0].Author)
	}
}

func TestWalkFindsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "q1_alice.c"), []byte("int main(){}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "q2_bob.c"), []byte("int main(){}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := Walk(dir, Options{})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
}
