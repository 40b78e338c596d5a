// Package config loads combfino's configuration from a file (TOML/YAML/JSON)
// merged with defaults, and validates it before the engine runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/panbanda/combfino/internal/engine"
	"github.com/panbanda/combfino/internal/features"
	"github.com/panbanda/combfino/internal/similarity"
	"github.com/panbanda/combfino/internal/status"
)

// Config holds every tunable named in the similarity engine's contract.
type Config struct {
	Similarity SimilarityConfig `koanf:"similarity" toml:"similarity"`
	Policy     PolicyConfig     `koanf:"policy" toml:"policy"`
	Gather     GatherConfig     `koanf:"gather" toml:"gather"`
	Cache      CacheConfig      `koanf:"cache" toml:"cache"`
	Output     OutputConfig     `koanf:"output" toml:"output"`
}

// SimilarityConfig controls feature extraction and the composite score.
type SimilarityConfig struct {
	ShingleSize          int          `koanf:"shingle_size" toml:"shingle_size"`
	NormalizeIdentifiers bool         `koanf:"normalize_identifiers" toml:"normalize_identifiers"`
	MinTokens            int          `koanf:"min_tokens" toml:"min_tokens"`
	Weights              WeightConfig `koanf:"weights" toml:"weights"`
}

// WeightConfig is the composite score's per-measure weight vector.
// Weights are used as configured; the engine never renormalizes them.
type WeightConfig struct {
	Jaccard float64 `koanf:"jaccard" toml:"jaccard"`
	Control float64 `koanf:"control" toml:"control"`
	Idents  float64 `koanf:"idents" toml:"idents"`
	Loops   float64 `koanf:"loops" toml:"loops"`
	Calls   float64 `koanf:"calls" toml:"calls"`
}

// PolicyConfig controls the status classifier.
type PolicyConfig struct {
	Threshold float64 `koanf:"threshold" toml:"threshold"`
	Mode      string  `koanf:"mode" toml:"mode"` // any, all, weighted
}

// GatherConfig controls directory traversal and file selection outside the core.
type GatherConfig struct {
	IgnoreGlobs []string `koanf:"ignore_globs" toml:"ignore_globs"`
	Gitignore   bool     `koanf:"gitignore" toml:"gitignore"`
	Jobs        int      `koanf:"jobs" toml:"jobs"` // 0 = auto (runtime.NumCPU)
	RosterPath  string   `koanf:"roster_path" toml:"roster_path"`
}

// CacheConfig controls the persistent feature cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Path    string `koanf:"path" toml:"path"`
}

// OutputConfig controls report generation.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown
	Color   bool   `koanf:"color" toml:"color"`
	HTML    string `koanf:"html" toml:"html"`
	CSV     string `koanf:"csv" toml:"csv"`
	JSONDir string `koanf:"json_dir" toml:"json_dir"`
}

// DefaultConfig returns a config matching spec.md §6's default column.
func DefaultConfig() *Config {
	return &Config{
		Similarity: SimilarityConfig{
			ShingleSize:          5,
			NormalizeIdentifiers: true,
			MinTokens:            10,
			Weights: WeightConfig{
				Jaccard: 0.40,
				Control: 0.20,
				Idents:  0.15,
				Loops:   0.15,
				Calls:   0.10,
			},
		},
		Policy: PolicyConfig{
			Threshold: 0.70,
			Mode:      "weighted",
		},
		Gather: GatherConfig{
			IgnoreGlobs: []string{},
			Gitignore:   false,
			Jobs:        0,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    ".combfino/features.cache",
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load reads and merges a config file at path, detecting format by extension.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches standard locations for a combfino config file.
func FindConfigFile() string {
	names := []string{"combfino.toml", "combfino.yaml", "combfino.yml", "combfino.json"}
	for _, dir := range []string{".", ".combfino"} {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadOption configures LoadConfig.
type LoadOption func(*loadOptions)

type loadOptions struct {
	path string
}

// WithPath specifies an explicit config file path. It is an error if the
// file does not exist.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) { o.path = path }
}

// LoadResult carries the loaded config and which file (if any) produced it.
type LoadResult struct {
	Config *Config
	Source string
}

// LoadConfig loads configuration per opts, falling back to standard
// locations and then defaults, and always validates the result.
// Invalid configuration is a fatal, human-readable error per spec.md §7.
func LoadConfig(opts ...LoadOption) (*LoadResult, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var cfg *Config
	var source string
	var err error

	if o.path != "" {
		if _, statErr := os.Stat(o.path); os.IsNotExist(statErr) {
			return nil, fmt.Errorf("config file not found: %s", o.path)
		}
		cfg, err = Load(o.path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", o.path, err)
		}
		source = o.path
	} else {
		source = FindConfigFile()
		if source == "" {
			cfg = DefaultConfig()
		} else {
			cfg, err = Load(source)
			if err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", source, err)
			}
		}
	}

	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validationErr)
	}
	return &LoadResult{Config: cfg, Source: source}, nil
}

// Validate checks that every tunable is within the contract's bounds.
// Weights must be non-negative but need not sum to 1 — the engine uses
// them as configured, with no renormalization (spec.md §3).
func (c *Config) Validate() error {
	var errs []error

	if c.Similarity.ShingleSize < 1 {
		errs = append(errs, errors.New("similarity.shingle_size must be at least 1"))
	}
	if c.Similarity.MinTokens < 0 {
		errs = append(errs, errors.New("similarity.min_tokens must be non-negative"))
	}
	for name, w := range map[string]float64{
		"jaccard": c.Similarity.Weights.Jaccard,
		"control": c.Similarity.Weights.Control,
		"idents":  c.Similarity.Weights.Idents,
		"loops":   c.Similarity.Weights.Loops,
		"calls":   c.Similarity.Weights.Calls,
	} {
		if w < 0 {
			errs = append(errs, fmt.Errorf("similarity.weights.%s must be non-negative, got %v", name, w))
		}
	}

	if c.Policy.Threshold < 0 || c.Policy.Threshold > 1 {
		errs = append(errs, errors.New("policy.threshold must be between 0 and 1"))
	}
	switch c.Policy.Mode {
	case "any", "all", "weighted":
	default:
		errs = append(errs, fmt.Errorf("policy.mode must be one of any, all, weighted; got %q", c.Policy.Mode))
	}

	if c.Gather.Jobs < 0 {
		errs = append(errs, errors.New("gather.jobs must be non-negative (0 = auto)"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EngineOptions translates this configuration into the engine's options,
// including its embedded feature-extraction options.
func (c *Config) EngineOptions() engine.Options {
	policy, err := status.ParsePolicy(c.Policy.Mode)
	if err != nil {
		// Validate() should have already rejected this; fall back to the
		// documented default rather than propagate an error this deep.
		policy = status.PolicyWeighted
	}
	return engine.Options{
		Options: features.Options{
			ShingleSize:          c.Similarity.ShingleSize,
			NormalizeIdentifiers: c.Similarity.NormalizeIdentifiers,
			MinTokens:            c.Similarity.MinTokens,
		},
		Weights: similarity.Weights{
			Jaccard: c.Similarity.Weights.Jaccard,
			Control: c.Similarity.Weights.Control,
			Idents:  c.Similarity.Weights.Idents,
			Loops:   c.Similarity.Weights.Loops,
			Calls:   c.Similarity.Weights.Calls,
		},
		Threshold: c.Policy.Threshold,
		Policy:    policy,
		Jobs:      c.Gather.Jobs,
	}
}
