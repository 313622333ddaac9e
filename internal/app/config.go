package app

import (
	"fmt"

	"github.com/specialistvlad/bnbgo/internal/codec"
	"github.com/specialistvlad/bnbgo/internal/sketch"
)

// Config holds the command-line settings for an App instance. String fields
// left empty and nil pointers mean "not given", so that values from the
// project file apply.
type Config struct {
	ConfigPath string   // bnbgo.hcl
	Sources    []string // files or directories of .bnb documents

	Format     string
	OutputPath string

	LogFormat string
	LogLevel  string

	PublishURL    string
	Follow        bool
	IncludePlaces *bool
	Match         string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Format != "" {
		if _, err := codec.ParseFormat(cfg.Format); err != nil {
			return nil, err
		}
	}
	if cfg.Match != "" {
		if _, err := sketch.ParseMatchMode(cfg.Match); err != nil {
			return nil, err
		}
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	return &cfg, nil
}
