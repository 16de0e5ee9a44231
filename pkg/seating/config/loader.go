package config

import (
	"fmt"
	"path/filepath"

	"github.com/cognicore/seating/pkg/seating/assign"
	"github.com/cognicore/seating/pkg/seating/keywords"
	"github.com/cognicore/seating/pkg/seating/stoplist"
)

// Loader loads configuration files and constructs components
type Loader struct {
	ConfigPath string
}

// Components holds all loaded configuration components
type Components struct {
	Config    *Config
	Extractor *keywords.Extractor
	Builder   assign.Options // Rand is left for the caller
}

// Load reads the configuration (defaults when ConfigPath is empty) and
// returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	stops := stoplist.Default()
	if cfg.Stoplist.Path != "" {
		path := cfg.Stoplist.Path
		if !filepath.IsAbs(path) && l.ConfigPath != "" {
			// relative to the config file
			path = filepath.Join(filepath.Dir(l.ConfigPath), path)
		}
		sl, err := LoadStoplist(path)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = sl.Terms
	}
	stops = append(stops, cfg.Stoplist.Extra...)

	extractor := keywords.NewWithOptions(stops, keywords.Options{
		MinLength:   cfg.Keywords.MinLength,
		MaxKeywords: cfg.Keywords.MaxKeywords,
	})

	return &Components{
		Config:    cfg,
		Extractor: extractor,
		Builder: assign.Options{
			MaxTableSize:  cfg.MaxTableSize,
			EvenFillBonus: cfg.Bonus(),
			Extractor:     extractor,
		},
	}, nil
}
