package model

import "time"

// Config is the complete regsight configuration. Components receive the
// section they need at construction; nothing reads process-wide state.
type Config struct {
	Checker     CheckerConfig     `yaml:"checker"`
	Match       MatchConfig       `yaml:"match"`
	LLM         LLMConfig         `yaml:"llm"`
	Cache       CacheConfig       `yaml:"cache"`
	Store       StoreConfig       `yaml:"store"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// CheckerConfig holds the audit thresholds and phrase tables. The
// defaults carry the standard tables; tests vary them per case.
type CheckerConfig struct {
	// PassThreshold is the minimum coverage_score for a passing report
	PassThreshold float64 `yaml:"pass_threshold"`

	// Disclaimers are the standard regulatory boilerplate fragments
	// expected to be captured when present in the source
	Disclaimers []string `yaml:"disclaimers"`

	// NegationRules are the canonical statutory phrases whose negation
	// words must survive extraction
	NegationRules []NegationRule `yaml:"negation_rules"`

	// NumberPatterns are the regexes defining the numeric token grammar
	NumberPatterns []string `yaml:"number_patterns"`
}

// NegationRule ties a canonical statutory phrase to the negation words
// it must contain
type NegationRule struct {
	Canonical         string   `yaml:"canonical" json:"canonical"`
	RequiredNegations []string `yaml:"required_negations" json:"required_negations"`
	Description       string   `yaml:"description" json:"description"`
}

// MatchConfig holds the fuzzy-matching thresholds
type MatchConfig struct {
	// ClaimThreshold is the similarity floor for registry-claim vs
	// ground-truth coverage matching
	ClaimThreshold float64 `yaml:"claim_threshold"`

	// BenchThreshold is the similarity floor for benchmark finding
	// matching
	BenchThreshold float64 `yaml:"bench_threshold"`
}

// LLMConfig configures the extraction-phase providers
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // openai, anthropic, ollama
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"-"` // From env only, never written to disk
	BaseURL     string  `yaml:"base_url"`
	Timeout     int     `yaml:"timeout_seconds"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// CacheConfig configures the extracted page-text cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// StoreConfig configures the ground-truth / bench-run store
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ConcurrencyConfig configures bench parallelism and LLM pacing
type ConcurrencyConfig struct {
	Workers           int     `yaml:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig configures artifact output
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Verbose bool   `yaml:"verbose"`
}

// DefaultConfig returns the standard configuration, including the
// built-in disclaimer and negation tables
func DefaultConfig() *Config {
	return &Config{
		Checker: CheckerConfig{
			PassThreshold:  0.70,
			Disclaimers:    DefaultDisclaimers(),
			NegationRules:  DefaultNegationRules(),
			NumberPatterns: DefaultNumberPatterns(),
		},
		Match: MatchConfig{
			ClaimThreshold: 0.45,
			BenchThreshold: 0.50,
		},
		LLM: LLMConfig{
			Provider:    "",
			Model:       "",
			Timeout:     120,
			MaxTokens:   16384,
			Temperature: 0,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Store: StoreConfig{
			Path: "",
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		Output: OutputConfig{
			Dir: "./regsight-output",
		},
	}
}

// DefaultDisclaimers returns the standard boilerplate fragments expected
// in financial marketing documents
func DefaultDisclaimers() []string {
	return []string{
		"past performance",
		"no guarantee",
		"not FDIC insured",
		"may lose value",
		"subject to change",
		"not a deposit",
		"not insured by any federal government agency",
		"prospectus",
		"read the prospectus",
		"investment return and principal value",
	}
}

// DefaultNegationRules returns the canonical statutory fragments whose
// negation words must not be lost between source and registry
func DefaultNegationRules() []NegationRule {
	return []NegationRule{
		{
			Canonical:         "neither the securities and exchange commission nor any state securities regulator has approved or disapproved",
			RequiredNegations: []string{"neither", "nor"},
			Description:       "SEC/FINRA statutory disclaimer",
		},
		{
			Canonical:         "has not approved or disapproved",
			RequiredNegations: []string{"not"},
			Description:       "SEC approval negation",
		},
		{
			Canonical:         "no guarantee",
			RequiredNegations: []string{"no"},
			Description:       "No-guarantee language",
		},
	}
}

// DefaultNumberPatterns returns the numeric token grammar: percentages,
// dollar amounts, slash dates, bare years, basis points, and multiples
func DefaultNumberPatterns() []string {
	return []string{
		`\d+\.?\d*\s*%`,
		`\$\s*[\d,]+\.?\d*`,
		`\d{1,2}/\d{1,2}/\d{2,4}`,
		`\b\d{4}\b`,
		`\d+\.?\d*\s*(?:bps|bp)`,
		`\d+\.?\d*x`,
	}
}
