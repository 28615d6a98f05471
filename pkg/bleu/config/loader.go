package config

import (
	"fmt"

	"github.com/cognicore/bleu/pkg/bleu/ingest"
	"github.com/cognicore/bleu/pkg/bleu/score"
)

// Loader resolves a config file plus command-line overrides into
// ready-to-use components
type Loader struct {
	ConfigPath string

	// Overrides; zero values leave the file (or default) value in place.
	MaxOrder          int
	CandidateEncoding string
	ReferenceEncoding string
	Format            string
	DBPath            string
}

// Components holds everything an evaluation needs
type Components struct {
	Config Config
	Loader *ingest.Loader
	Scorer *score.Scorer
}

// Load reads the config file (if any), applies overrides, validates and
// builds the components
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if l.MaxOrder != 0 {
		cfg.MaxOrder = l.MaxOrder
	}
	if l.CandidateEncoding != "" {
		cfg.CandidateEncoding = l.CandidateEncoding
	}
	if l.ReferenceEncoding != "" {
		cfg.ReferenceEncoding = l.ReferenceEncoding
	}
	if l.Format != "" {
		cfg.Format = l.Format
	}
	if l.DBPath != "" {
		cfg.DBPath = l.DBPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	format, _ := ingest.ParseFormat(cfg.Format)
	return &Components{
		Config: cfg,
		Loader: &ingest.Loader{
			CandidateEncoding: cfg.CandidateEncoding,
			ReferenceEncoding: cfg.ReferenceEncoding,
			Format:            format,
		},
		Scorer: score.New(score.WithMaxOrder(cfg.MaxOrder)),
	}, nil
}
