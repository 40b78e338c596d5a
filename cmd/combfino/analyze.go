package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/panbanda/combfino/internal/cache"
	"github.com/panbanda/combfino/internal/engine"
	"github.com/panbanda/combfino/internal/gather"
	"github.com/panbanda/combfino/internal/report"
	"github.com/panbanda/combfino/internal/roster"
	"github.com/panbanda/combfino/pkg/config"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze [path...]",
	Aliases: []string{"a"},
	Short:   "Gather, compare, and classify C submissions for similarity",
	RunE:    runAnalyze,
}

func init() {
	analyzeCmd.Flags().Int("top", 0, "Limit console output to the top N rows by score (0 = all)")
	analyzeCmd.Flags().String("html", "", "Write an HTML report to this path")
	analyzeCmd.Flags().String("csv", "", "Write a CSV report to this path")
	analyzeCmd.Flags().String("json-dir", "", "Write per-student JSON reports under this directory")
	analyzeCmd.Flags().String("roster", "", "Roster file mapping author tags to display names (CSV or YAML)")
	analyzeCmd.Flags().Bool("no-cache", false, "Disable the persistent feature cache")
	analyzeCmd.Flags().Bool("no-color", false, "Disable colored console output")
	analyzeCmd.Flags().Bool("gitignore", false, "Honor .gitignore while walking directory arguments")
	analyzeCmd.Flags().StringSlice("ignore", nil, "Additional glob patterns to ignore")
	analyzeCmd.Flags().Int("jobs", 0, "Worker count for feature extraction (0 = auto)")
	analyzeCmd.Flags().Float64("threshold", -1, "Override the configured similarity threshold")
	analyzeCmd.Flags().String("policy", "", "Override the configured status policy (any, all, weighted)")
	analyzeCmd.Flags().Bool("no-normalize", false, "Disable identifier normalization before comparison")
	analyzeCmd.Flags().Int("min-tokens", 0, "Override the minimum token count below which a file is marked too short (0 = use config)")

	rootCmd.AddCommand(analyzeCmd)
}

func loadAnalyzeConfig(cmd *cobra.Command) (*config.Config, error) {
	var opts []config.LoadOption
	if cfgFile != "" {
		opts = append(opts, config.WithPath(cfgFile))
	}
	result, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, err
	}
	cfg := result.Config

	if ignore, _ := cmd.Flags().GetStringSlice("ignore"); len(ignore) > 0 {
		cfg.Gather.IgnoreGlobs = append(cfg.Gather.IgnoreGlobs, ignore...)
	}
	if gitignore, _ := cmd.Flags().GetBool("gitignore"); gitignore {
		cfg.Gather.Gitignore = true
	}
	if roster, _ := cmd.Flags().GetString("roster"); roster != "" {
		cfg.Gather.RosterPath = roster
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Output.Color = false
	}
	if jobs, _ := cmd.Flags().GetInt("jobs"); jobs != 0 {
		cfg.Gather.Jobs = jobs
	}
	if threshold, _ := cmd.Flags().GetFloat64("threshold"); threshold >= 0 {
		cfg.Policy.Threshold = threshold
	}
	if policy, _ := cmd.Flags().GetString("policy"); policy != "" {
		cfg.Policy.Mode = policy
	}
	if noNormalize, _ := cmd.Flags().GetBool("no-normalize"); noNormalize {
		cfg.Similarity.NormalizeIdentifiers = false
	}
	if minTokens, _ := cmd.Flags().GetInt("min-tokens"); minTokens != 0 {
		cfg.Similarity.MinTokens = minTokens
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadAnalyzeConfig(cmd)
	if err != nil {
		return err
	}

	entries, err := gatherEntries(getPaths(args), gather.Options{
		IgnoreGlobs: cfg.Gather.IgnoreGlobs,
		Gitignore:   cfg.Gather.Gitignore,
	})
	if err != nil {
		return err
	}
	if len(entries) < 2 {
		color.Yellow("Need at least 2 eligible qN_SIGLA.c files, found %d", len(entries))
		return nil
	}

	var rosterTable roster.Roster
	if cfg.Gather.RosterPath != "" {
		rosterTable, err = roster.Load(cfg.Gather.RosterPath)
		if err != nil {
			return err
		}
	}

	store := cache.New()
	if cfg.Cache.Enabled {
		store = cache.Load(cfg.Cache.Path)
	}

	result, err := engine.Run(context.Background(), entries, store, cfg.EngineOptions(), nil)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if cfg.Cache.Enabled && store.Dirty() {
		if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
		if err := store.Save(cfg.Cache.Path); err != nil {
			return fmt.Errorf("saving cache: %w", err)
		}
	}

	decorateDisplayNames(result.Rows, rosterTable)

	top, _ := cmd.Flags().GetInt("top")
	if err := report.Console(os.Stdout, result.Rows, cfg.Output.Color, top); err != nil {
		return err
	}

	if htmlPath, _ := cmd.Flags().GetString("html"); htmlPath != "" {
		if err := writeHTMLReport(htmlPath, result, cfg, getPaths(args)); err != nil {
			return err
		}
		color.Green("HTML report written to %s", htmlPath)
	}
	if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
		if err := writeCSVReport(csvPath, result.Rows); err != nil {
			return err
		}
		color.Green("CSV report written to %s", csvPath)
	}
	if jsonDir, _ := cmd.Flags().GetString("json-dir"); jsonDir != "" {
		if err := report.WriteJSONDir(jsonDir, result.Rows); err != nil {
			return err
		}
		color.Green("Per-student JSON reports written under %s", jsonDir)
	}

	return nil
}

func decorateDisplayNames(rows []engine.Row, r roster.Roster) {
	if r == nil {
		return
	}
	for i := range rows {
		if name, ok := r.Name(rows[i].AuthorTag); ok {
			rows[i].DisplayName = name
		}
	}
}

func writeHTMLReport(path string, result *engine.Result, cfg *config.Config, paths []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	rootLabel := paths[0]
	if len(paths) > 1 {
		rootLabel = fmt.Sprintf("%s (+%d more)", paths[0], len(paths)-1)
	}
	generatedAt := time.Now().Format(time.RFC1123)
	return report.WriteHTML(f, rootLabel, generatedAt, result.Rows, result.Baselines, cfg.EngineOptions().Weights)
}

func writeCSVReport(path string, rows []engine.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return report.WriteCSV(f, rows)
}
