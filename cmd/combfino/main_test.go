package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetPaths(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{name: "no args defaults to current dir", args: []string{}, expected: []string{"."}},
		{name: "single path", args: []string{"/foo/bar"}, expected: []string{"/foo/bar"}},
		{name: "multiple paths", args: []string{"/foo", "/bar"}, expected: []string{"/foo", "/bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getPaths(tt.args)
			if len(result) != len(tt.expected) {
				t.Fatalf("getPaths() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("getPaths()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func writeSample(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyzeCommandE2E(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "q1_alice.c", "int sum(int n){int t=0;for(int i=0;i<n;i++){t=t+i;}return t;}")
	writeSample(t, dir, "q1_bob.c", "int sum(int m){int s=0;for(int j=0;j<m;j++){s=s+j;}return s;}")

	rootCmd.SetArgs([]string{"analyze", "--no-cache", "--no-color", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("analyze command failed: %v", err)
	}
}

func TestAnalyzeCommandWritesReports(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "q1_alice.c", "int sum(int n){int t=0;for(int i=0;i<n;i++){t=t+i;}return t;}")
	writeSample(t, dir, "q1_bob.c", "int sum(int m){int s=0;for(int j=0;j<m;j++){s=s+j;}return s;}")

	htmlPath := filepath.Join(dir, "out.html")
	csvPath := filepath.Join(dir, "out.csv")
	jsonDir := filepath.Join(dir, "perstudent")

	rootCmd.SetArgs([]string{
		"analyze", "--no-cache", "--no-color",
		"--html", htmlPath, "--csv", csvPath, "--json-dir", jsonDir,
		dir,
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("analyze command failed: %v", err)
	}

	for _, p := range []string{htmlPath, csvPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(jsonDir, "Q01_per_student", "alice.json")); err != nil {
		t.Errorf("expected per-student JSON for alice: %v", err)
	}
}

func TestAnalyzeCommandNoFilesFound(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"analyze", "--no-cache", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("expected no error for an empty directory, got: %v", err)
	}
}

func TestAnalyzeCommandSingleFileWarnsAndProducesNoReport(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "q1_alice.c", "int main(){return 0;}")

	htmlPath := filepath.Join(dir, "out.html")
	rootCmd.SetArgs([]string{"analyze", "--no-cache", "--html", htmlPath, dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("expected no error for a single eligible file, got: %v", err)
	}
	if _, err := os.Stat(htmlPath); err == nil {
		t.Error("expected no HTML report to be written for fewer than 2 eligible files")
	}
}

func TestCacheStatsAndClear(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "combfino.toml")
	cachePath := filepath.Join(dir, ".combfino", "features.cache")
	writeSample(t, dir, "combfino.toml", "[cache]\npath = \""+filepath.ToSlash(cachePath)+"\"\n")

	rootCmd.SetArgs([]string{"--config", cfgPath, "cache", "stats"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("cache stats failed: %v", err)
	}

	rootCmd.SetArgs([]string{"--config", cfgPath, "cache", "clear"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("cache clear failed: %v", err)
	}
}
