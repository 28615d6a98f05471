package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/bleu/pkg/bleu/ingest"
	"github.com/cognicore/bleu/pkg/bleu/internalerr"
	"github.com/cognicore/bleu/pkg/bleu/score"
)

// Config represents an evaluation configuration file
type Config struct {
	MaxOrder          int    `yaml:"max_order"`
	CandidateEncoding string `yaml:"candidate_encoding"`
	ReferenceEncoding string `yaml:"reference_encoding"`
	Format            string `yaml:"format"`
	DBPath            string `yaml:"db_path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		MaxOrder:          score.DefaultMaxOrder,
		CandidateEncoding: ingest.DefaultCandidateEncoding,
		ReferenceEncoding: ingest.DefaultReferenceEncoding,
		Format:            string(ingest.FormatAuto),
	}
}

// Load reads a YAML config file. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if c.MaxOrder < 1 {
		return fmt.Errorf("max_order must be >= 1, got %d: %w", c.MaxOrder, internalerr.ErrInvalidConfig)
	}
	if !ingest.ValidEncoding(c.CandidateEncoding) {
		return fmt.Errorf("candidate_encoding %q: %w", c.CandidateEncoding, internalerr.ErrInvalidConfig)
	}
	if !ingest.ValidEncoding(c.ReferenceEncoding) {
		return fmt.Errorf("reference_encoding %q: %w", c.ReferenceEncoding, internalerr.ErrInvalidConfig)
	}
	if _, err := ingest.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}
