package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/seating/pkg/seating/assign"
	"github.com/cognicore/seating/pkg/seating/internalerr"
	"github.com/cognicore/seating/pkg/seating/keywords"
)

// Config is the seating configuration file
type Config struct {
	MaxTableSize  int      `yaml:"max_table_size"`
	EvenFillBonus *float64 `yaml:"even_fill_bonus"`
	Keywords      Keywords `yaml:"keywords"`
	Stoplist      Stops    `yaml:"stoplist"`
}

// Keywords tunes keyword extraction
type Keywords struct {
	MinLength   int `yaml:"min_length"`
	MaxKeywords int `yaml:"max_keywords"`
}

// Stops points at a replacement stoplist and lists extra stopwords
type Stops struct {
	Path  string   `yaml:"path"`
	Extra []string `yaml:"extra"`
}

// Default returns the built-in configuration
func Default() *Config {
	bonus := assign.DefaultEvenFillBonus
	return &Config{
		MaxTableSize:  assign.DefaultMaxTableSize,
		EvenFillBonus: &bonus,
		Keywords: Keywords{
			MinLength:   keywords.DefaultMinLength,
			MaxKeywords: keywords.DefaultMaxKeywords,
		},
	}
}

// Load reads a YAML config. Fields left out keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the table builder cannot honor
func (c *Config) Validate() error {
	if c.MaxTableSize < 1 {
		return fmt.Errorf("%w: max_table_size must be at least 1, got %d", internalerr.ErrInvalidConfig, c.MaxTableSize)
	}
	if c.EvenFillBonus != nil && *c.EvenFillBonus < 0 {
		return fmt.Errorf("%w: even_fill_bonus must not be negative, got %g", internalerr.ErrInvalidConfig, *c.EvenFillBonus)
	}
	if c.Keywords.MaxKeywords < 1 {
		return fmt.Errorf("%w: keywords.max_keywords must be at least 1, got %d", internalerr.ErrInvalidConfig, c.Keywords.MaxKeywords)
	}
	if c.Keywords.MinLength < 1 {
		return fmt.Errorf("%w: keywords.min_length must be at least 1, got %d", internalerr.ErrInvalidConfig, c.Keywords.MinLength)
	}
	return nil
}

// Bonus returns the even-fill bonus in assign.Options form, where a
// configured zero disables the bonus.
func (c *Config) Bonus() float64 {
	if c.EvenFillBonus == nil {
		return assign.DefaultEvenFillBonus
	}
	if *c.EvenFillBonus == 0 {
		return -1
	}
	return *c.EvenFillBonus
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
