package mcpserver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/panbanda/combfino/internal/cache"
	"github.com/panbanda/combfino/internal/engine"
	"github.com/panbanda/combfino/internal/gather"
	"github.com/panbanda/combfino/internal/report"
	"github.com/panbanda/combfino/pkg/config"
)

// AnalyzeQuestionInput is analyze_question's tool input.
type AnalyzeQuestionInput struct {
	Paths    []string `json:"paths" jsonschema:"Source file paths to gather and compare."`
	Question int      `json:"question" jsonschema:"The question number to analyze; all other questions in Paths are ignored."`
	Format   string   `json:"format,omitempty" jsonschema:"Output format: json (default) or text."`
}

// AnalyzeQuestionOutput is analyze_question's structured result.
type AnalyzeQuestionOutput struct {
	Question int             `json:"question"`
	Rows     []engine.Row    `json:"rows"`
	Baseline engine.Baseline `json:"baseline"`
}

func handleAnalyzeQuestion(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeQuestionInput) (*mcp.CallToolResult, any, error) {
	if len(input.Paths) == 0 {
		return toolError("paths must be non-empty")
	}

	entries, err := gather.Files(input.Paths, gather.Options{})
	if err != nil {
		return toolError(err.Error())
	}
	if len(entries) == 0 {
		return toolError("no files matched the qN_SIGLA.c naming convention")
	}

	cfg := config.DefaultConfig()
	store := cache.Load(cfg.Cache.Path)

	result, err := engine.Run(ctx, entries, store, cfg.EngineOptions(), nil)
	if err != nil {
		return toolError(err.Error())
	}

	if store.Dirty() {
		_ = store.Save(cfg.Cache.Path) // best-effort; a failed save only costs future cache hits
	}

	out := AnalyzeQuestionOutput{Question: input.Question, Baseline: result.Baselines[input.Question]}
	for _, r := range result.Rows {
		if r.Question == input.Question {
			out.Rows = append(out.Rows, r)
		}
	}
	if len(out.Rows) == 0 {
		return toolError(fmt.Sprintf("question %d has fewer than 2 eligible files", input.Question))
	}

	return toolResult(out, input.Format)
}

func toolResult(out AnalyzeQuestionOutput, format string) (*mcp.CallToolResult, any, error) {
	if format == "text" {
		var buf bytes.Buffer
		if err := report.Console(&buf, out.Rows, false, 0); err != nil {
			return toolError(err.Error())
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: buf.String()}},
		}, out, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%+v", out)}},
	}, out, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + msg}},
		IsError: true,
	}, nil, nil
}
