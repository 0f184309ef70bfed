package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Source struct {
		BaseURL   string        `yaml:"base_url" json:"base_url" jsonschema:"default=https://www.reddit.com,description=Reddit API base URL"`
		UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; mailprobe/1.0),description=User agent for search requests"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=HTTP request timeout"`
		RateLimit time.Duration `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=2s,description=Mandatory delay between successive search requests"`
		Limit     int           `yaml:"limit" json:"limit" jsonschema:"default=25,description=Maximum posts per search request"`
	} `yaml:"source" json:"source" jsonschema:"description=Post source configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:mailprobe.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Searches []Search `yaml:"searches" json:"searches" jsonschema:"description=Subreddit and query pairs to collect"`

	Rules RulesConfig `yaml:"rules" json:"rules" jsonschema:"description=Relevance filter rule sets"`

	Categories struct {
		Problems  []Category `yaml:"problems" json:"problems" jsonschema:"description=Problem categories with keyword lists"`
		Solutions []Category `yaml:"solutions" json:"solutions" jsonschema:"description=Solution categories with keyword lists"`
	} `yaml:"categories" json:"categories" jsonschema:"description=Category tagger configuration"`

	Analysis AnalysisConfig `yaml:"analysis" json:"analysis" jsonschema:"description=Aggregation settings"`

	Report ReportConfig `yaml:"report" json:"report" jsonschema:"description=Report output settings"`
}

// Search is one subreddit/query pair for the collection pass
type Search struct {
	Subreddit string `yaml:"subreddit" json:"subreddit" jsonschema:"required,description=Subreddit to search"`
	Query     string `yaml:"query" json:"query" jsonschema:"required,description=Search query"`
}

// RulesConfig holds the relevance filter phrase sets. Include and exclude
// phrases match as plain substrings of the combined text; anchors match as
// substrings of the title only.
type RulesConfig struct {
	Include []string `yaml:"include" json:"include" jsonschema:"description=Phrases that mark a genuine target problem"`
	Exclude []string `yaml:"exclude" json:"exclude" jsonschema:"description=Phrases that disqualify a post regardless of other matches"`
	Anchors []string `yaml:"anchors" json:"anchors" jsonschema:"description=Tokens the title must contain"`
}

// Category is a named theme defined by a static keyword list
type Category struct {
	Name     string   `yaml:"name" json:"name" jsonschema:"required,description=Category label"`
	Keywords []string `yaml:"keywords" json:"keywords" jsonschema:"required,description=Keywords matched as whole words"`
}

// AnalysisConfig holds aggregation settings
type AnalysisConfig struct {
	TopQuotes     int      `yaml:"top_quotes" json:"top_quotes" jsonschema:"default=5,description=Number of top-engagement quotes in the report"`
	TopWords      int      `yaml:"top_words" json:"top_words" jsonschema:"default=15,description=Number of words in the frequency list"`
	MinWordLength int      `yaml:"min_word_length" json:"min_word_length" jsonschema:"default=3,description=Minimum token length for word frequency"`
	Stopwords     []string `yaml:"stopwords" json:"stopwords" jsonschema:"description=Domain stopwords added to the generic English set"`
}

// ReportConfig holds report and chart output settings
type ReportConfig struct {
	OutputDir     string `yaml:"output_dir" json:"output_dir" jsonschema:"default=.,description=Directory for report and chart files"`
	TitleBudget   int    `yaml:"title_budget" json:"title_budget" jsonschema:"default=100,description=Character budget for quoted titles"`
	PreviewBudget int    `yaml:"preview_budget" json:"preview_budget" jsonschema:"default=200,description=Character budget for body previews"`
	Charts        bool   `yaml:"charts" json:"charts" jsonschema:"default=true,description=Render the chart dashboard alongside the text report"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return cfg, nil
}

// setDefaults fills zero values for fields the YAML file left out
func (c *Config) setDefaults() {
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = "https://www.reddit.com"
	}
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = "Mozilla/5.0 (compatible; mailprobe/1.0)"
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 15 * time.Second
	}
	if c.Source.RateLimit == 0 {
		c.Source.RateLimit = 2 * time.Second
	}
	if c.Source.Limit == 0 {
		c.Source.Limit = 25
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:mailprobe.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Analysis.TopQuotes == 0 {
		c.Analysis.TopQuotes = 5
	}
	if c.Analysis.TopWords == 0 {
		c.Analysis.TopWords = 15
	}
	if c.Analysis.MinWordLength == 0 {
		c.Analysis.MinWordLength = 3
	}

	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "."
	}
	if c.Report.TitleBudget == 0 {
		c.Report.TitleBudget = 100
	}
	if c.Report.PreviewBudget == 0 {
		c.Report.PreviewBudget = 200
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Source.RateLimit < time.Second {
		return fmt.Errorf("source.rate_limit must be at least 1 second")
	}
	if cfg.Source.Timeout < time.Second {
		return fmt.Errorf("source.timeout must be at least 1 second")
	}
	if cfg.Source.Limit < 1 || cfg.Source.Limit > 100 {
		return fmt.Errorf("source.limit must be between 1 and 100")
	}

	if len(cfg.Rules.Include) == 0 {
		return fmt.Errorf("rules.include must not be empty")
	}
	if len(cfg.Rules.Anchors) == 0 {
		return fmt.Errorf("rules.anchors must not be empty")
	}

	for _, cat := range cfg.Categories.Problems {
		if cat.Name == "" {
			return fmt.Errorf("categories.problems: name is required")
		}
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("category %q: keywords must not be empty", cat.Name)
		}
	}
	for _, cat := range cfg.Categories.Solutions {
		if cat.Name == "" {
			return fmt.Errorf("categories.solutions: name is required")
		}
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("category %q: keywords must not be empty", cat.Name)
		}
	}

	if cfg.Analysis.MinWordLength < 1 {
		return fmt.Errorf("analysis.min_word_length must be at least 1")
	}
	if cfg.Analysis.TopQuotes < 0 {
		return fmt.Errorf("analysis.top_quotes must not be negative")
	}
	if cfg.Analysis.TopWords < 0 {
		return fmt.Errorf("analysis.top_words must not be negative")
	}
	return nil
}
