package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/bleu/pkg/bleu/internalerr"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bleu.yaml")
	content := `max_order: 2
reference_encoding: utf-8
format: text
db_path: runs.db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxOrder != 2 {
		t.Errorf("expected max_order 2, got %d", cfg.MaxOrder)
	}
	if cfg.ReferenceEncoding != "utf-8" {
		t.Errorf("expected utf-8 reference encoding, got %q", cfg.ReferenceEncoding)
	}
	if cfg.CandidateEncoding != "utf-8" {
		t.Errorf("missing key should keep default, got %q", cfg.CandidateEncoding)
	}
	if cfg.Format != "text" || cfg.DBPath != "runs.db" {
		t.Errorf("unexpected format/db: %q %q", cfg.Format, cfg.DBPath)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("empty file should give defaults, got %+v", cfg)
	}
	if cfg.MaxOrder != 4 || cfg.ReferenceEncoding != "iso-8859-1" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigNonExistent(t *testing.T) {
	_, err := Load("/nonexistent/bleu.yaml")
	if err == nil {
		t.Error("Should error on nonexistent file")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("max_order: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Should error on malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max order", func(c *Config) { c.MaxOrder = 0 }},
		{"negative max order", func(c *Config) { c.MaxOrder = -3 }},
		{"bad candidate encoding", func(c *Config) { c.CandidateEncoding = "nope" }},
		{"bad reference encoding", func(c *Config) { c.ReferenceEncoding = "nope" }},
		{"bad format", func(c *Config) { c.Format = "pdf" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}
