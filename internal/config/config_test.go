package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig tests default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := NewConfig()

	if c.Concurrency != DefaultConcurrency {
		t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, c.Concurrency)
	}
	if c.FetchTimeout != 15*time.Second {
		t.Errorf("expected fetch timeout 15s, got %v", c.FetchTimeout)
	}
	if c.ConfidenceThreshold != 0.40 {
		t.Errorf("expected threshold 0.40, got %v", c.ConfidenceThreshold)
	}
	if c.MaxCandidates != 200 {
		t.Errorf("expected max candidates 200, got %d", c.MaxCandidates)
	}
}

// TestConfigValidate tests validation rules.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*Config) {}, wantErr: nil},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: ErrInvalidConcurrency},
		{name: "negative timeout", mutate: func(c *Config) { c.FetchTimeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "negative body size", mutate: func(c *Config) { c.MaxBodySize = -1 }, wantErr: ErrInvalidMaxBodySize},
		{name: "threshold above one", mutate: func(c *Config) { c.ConfidenceThreshold = 1.5 }, wantErr: ErrInvalidThreshold},
		{name: "zero max candidates", mutate: func(c *Config) { c.MaxCandidates = 0 }, wantErr: ErrInvalidMaxCandidates},
		{name: "zero batch size", mutate: func(c *Config) { c.RequestBatchSize = 0 }, wantErr: ErrInvalidBatchSize},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewConfig()
			tt.mutate(c)

			err := c.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestLoadConfigFile tests YAML loading and custom source validation.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads profile and sources", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `
profile:
  first_name: Jane
  last_name: Doe
  emails:
    - jane@example.com
  addresses:
    - city: Austin
      state: TX
sources:
  - name: LocalDirectory
    url_template: "https://local.example/{first_name}-{last_name}"
mail:
  api_key: re_testkey_000000000000000000
  from: optout@example.com
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.Profile.FirstName != "Jane" || f.Profile.LastName != "Doe" {
			t.Errorf("unexpected profile: %+v", f.Profile)
		}
		if len(f.Sources) != 1 {
			t.Fatalf("expected 1 custom source, got %d", len(f.Sources))
		}
		if !f.Sources[0].Active {
			t.Error("expected custom source to be active")
		}
		if f.Sources[0].Category == "" {
			t.Error("expected category default to be applied")
		}
		if f.Mail.From != "optout@example.com" {
			t.Errorf("unexpected mail config: %+v", f.Mail)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("bad placeholder fails at load time", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `
profile:
  first_name: Jane
  last_name: Doe
sources:
  - name: Broken
    url_template: "https://broken.example/{full_name}"
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected template validation error")
		}
	})
}

// TestRequireProfile tests profile presence checks.
func TestRequireProfile(t *testing.T) {
	t.Parallel()

	t.Run("no file", func(t *testing.T) {
		t.Parallel()

		c := NewConfig()
		if _, err := c.RequireProfile(); !errors.Is(err, ErrNoProfile) {
			t.Errorf("expected ErrNoProfile, got %v", err)
		}
	})

	t.Run("missing last name", func(t *testing.T) {
		t.Parallel()

		c := NewConfig()
		c.File = &File{}
		c.File.Profile.FirstName = "Jane"
		if _, err := c.RequireProfile(); !errors.Is(err, ErrProfileIncomplete) {
			t.Errorf("expected ErrProfileIncomplete, got %v", err)
		}
	})

	t.Run("complete profile", func(t *testing.T) {
		t.Parallel()

		c := NewConfig()
		c.File = &File{}
		c.File.Profile.FirstName = "Jane"
		c.File.Profile.LastName = "Doe"

		p, err := c.RequireProfile()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.FullName() != "Jane Doe" {
			t.Errorf("expected Jane Doe, got %q", p.FullName())
		}
	})
}
