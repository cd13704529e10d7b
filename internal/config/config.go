package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/jobdigest/internal/model"
)

const (
	DefaultMaxPerQuery = 10
	DefaultTimeLimit   = "d7" // last 7 days
	DefaultRegion      = "in-en"
)

// SearchConfig is the configuration of the search pipeline. It is populated
// once at startup and not modified afterwards.
type SearchConfig struct {
	Queries     []string
	MaxPerQuery int
	TimeLimit   string
	Region      string
}

// rawSearchConfig is used for YAML unmarshaling. MaxPerQuery is a pointer so
// an explicit zero can be told apart from an absent key.
type rawSearchConfig struct {
	Queries     []string `yaml:"queries"`
	MaxPerQuery *int     `yaml:"max_per_query"`
	TimeLimit   string   `yaml:"timelimit"`
	Region      string   `yaml:"region"`
}

// Load reads and parses the YAML search config at path, applies defaults for
// absent fields, validates it, and returns SearchConfig.
func Load(path string) (*SearchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawSearchConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &SearchConfig{
		Queries:     raw.Queries,
		MaxPerQuery: DefaultMaxPerQuery,
		TimeLimit:   raw.TimeLimit,
		Region:      raw.Region,
	}
	if raw.MaxPerQuery != nil {
		cfg.MaxPerQuery = *raw.MaxPerQuery
	}
	if cfg.TimeLimit == "" {
		cfg.TimeLimit = DefaultTimeLimit
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// BuildQueries expands the configured query strings into Query values, in
// configuration order.
func (c *SearchConfig) BuildQueries() []model.Query {
	queries := make([]model.Query, 0, len(c.Queries))
	for _, q := range c.Queries {
		queries = append(queries, model.Query{
			Text:       q,
			MaxResults: c.MaxPerQuery,
			TimeLimit:  c.TimeLimit,
			Region:     c.Region,
		})
	}
	return queries
}

func validate(cfg *SearchConfig) error {
	if cfg.MaxPerQuery <= 0 {
		return fmt.Errorf("max_per_query must be positive, got %d", cfg.MaxPerQuery)
	}
	for i, q := range cfg.Queries {
		if q == "" {
			return fmt.Errorf("queries[%d] is empty", i)
		}
	}
	return nil
}
