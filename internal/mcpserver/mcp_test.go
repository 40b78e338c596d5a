package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestServerCreation(t *testing.T) {
	server := NewServer("1.0.0-test")
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.server == nil {
		t.Fatal("NewServer().server is nil")
	}
}

func TestServerCreationEmptyVersion(t *testing.T) {
	if server := NewServer(""); server == nil {
		t.Fatal(`NewServer("") returned nil`)
	}
}

func TestDescribeAnalyzeQuestionNonEmpty(t *testing.T) {
	if describeAnalyzeQuestion() == "" {
		t.Error("describeAnalyzeQuestion() is empty")
	}
}

func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHandleAnalyzeQuestionReturnsRows(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	input := AnalyzeQuestionInput{
		Paths: []string{
			writeSource(t, dir, "q1_alice.c", "int sum(int n){int t=0;for(int i=0;i<n;i++){t=t+i;}return t;}"),
			writeSource(t, dir, "q1_bob.c", "int sum(int m){int s=0;for(int j=0;j<m;j++){s=s+j;}return s;}"),
		},
		Question: 1,
	}

	result, out, err := handleAnalyzeQuestion(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleAnalyzeQuestion returned error: %v", err)
	}
	if result == nil {
		t.Fatal("handleAnalyzeQuestion returned nil result")
	}
	if result.IsError {
		textContent, _ := result.Content[0].(*mcp.TextContent)
		t.Fatalf("handleAnalyzeQuestion returned error: %v", textContent)
	}
	output, ok := out.(AnalyzeQuestionOutput)
	if !ok {
		t.Fatalf("unexpected output type %T", out)
	}
	if len(output.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(output.Rows))
	}
}

func TestHandleAnalyzeQuestionRejectsEmptyPaths(t *testing.T) {
	result, _, err := handleAnalyzeQuestion(context.Background(), nil, AnalyzeQuestionInput{Question: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected an error result for empty paths")
	}
}

func TestHandleAnalyzeQuestionTooFewFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	input := AnalyzeQuestionInput{
		Paths:    []string{writeSource(t, dir, "q1_alice.c", "int main(){return 0;}")},
		Question: 1,
	}
	result, _, err := handleAnalyzeQuestion(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected an error result for fewer than 2 eligible files")
	}
}
