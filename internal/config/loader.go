package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/offlist/offlist/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".offlist.yaml"

// ErrConfigNotFound is returned when the configuration file does not
// exist. Callers decide whether that is fatal based on whether the
// path was explicit.
var ErrConfigNotFound = errors.New("configuration file not found")

// MailConfig configures the outbound email transport used for opt-out
// requests. With no APIKey, sends are logged instead of delivered and
// removals fall back to manual instructions.
type MailConfig struct {
	// APIKey authenticates against the mail provider API.
	APIKey string `yaml:"api_key,omitempty"`

	// From is the sender address; it must belong to a domain verified
	// with the provider.
	From string `yaml:"from,omitempty"`

	// Endpoint overrides the provider API URL. Used in tests.
	Endpoint string `yaml:"endpoint,omitempty"`
}

// File represents the structure of the .offlist.yaml configuration
// file: the identity profile to protect, optional extra sources, and
// mail transport settings.
type File struct {
	Profile model.Profile `yaml:"profile"`

	// Household are additional profiles scanned alongside the primary
	// one, such as family members sharing an address. Each needs at
	// least first and last name.
	Household []model.Profile `yaml:"household,omitempty"`

	// Sources are user-supplied scan targets appended to the built-in
	// registry. Each must pass template validation at load time.
	Sources []model.Source `yaml:"sources,omitempty"`

	Mail MailConfig `yaml:"mail,omitempty"`
}

// LoadConfigFile loads the configuration from a YAML file.
// Missing file yields ErrConfigNotFound; malformed content or an
// invalid custom source is a hard error, per the rule that only
// configuration problems may fail at startup.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	for i := range f.Sources {
		src := &f.Sources[i]
		if src.Category == "" {
			src.Category = model.CategoryAdditionalSite
		}
		if src.Risk == "" {
			src.Risk = model.RiskMedium
		}
		src.Active = true
		if err := src.ValidateTemplate(); err != nil {
			return nil, err
		}
	}

	return &f, nil
}

// FindConfigFile searches for the configuration file:
//  1. the explicit path, when given
//  2. .offlist.yaml in the current directory
//  3. .offlist.yaml in the user's home directory
//
// Returns "" when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// RequireProfile returns the configured profile or a startup error
// when it is missing or lacks the mandatory name fields.
func (c *Config) RequireProfile() (*model.Profile, error) {
	if c.File == nil {
		return nil, ErrNoProfile
	}
	p := c.File.Profile
	if p.FirstName == "" || p.LastName == "" {
		return nil, ErrProfileIncomplete
	}
	return &p, nil
}

// Profiles returns the primary profile followed by the household
// members. Household entries missing the mandatory name fields are a
// startup error, same as the primary.
func (c *Config) Profiles() ([]*model.Profile, error) {
	primary, err := c.RequireProfile()
	if err != nil {
		return nil, err
	}

	profiles := []*model.Profile{primary}
	for i := range c.File.Household {
		p := c.File.Household[i]
		if p.FirstName == "" || p.LastName == "" {
			return nil, ErrProfileIncomplete
		}
		profiles = append(profiles, &p)
	}
	return profiles, nil
}
