// Package config loads and validates iotsgen.json.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-json-experiment/json"
)

// Newtype mode values accepted in config files and on the command line.
// The codegen layer carries its own typed copies; config stays a leaf
// package and validates the raw strings.
const (
	NewtypeModeNone = "none"
	NewtypeModeAll  = "all"
)

// Config represents the iotsgen configuration.
type Config struct {
	// FileNames selects the entry files of the scope: exact snapshot
	// file names, base names, or * / ** globs.
	FileNames []string `json:"fileNames"`

	// FollowImports widens the scope to files reachable from an entry
	// through import edges.
	FollowImports bool `json:"followImports"`

	// IncludeHeader prepends the import lines to the generated document.
	IncludeHeader bool `json:"includeHeader"`

	// NewtypeMode is "none" (structural codecs only) or "all" (branded
	// scaffolds for primitive aliases).
	NewtypeMode string `json:"newtypeMode"`

	// DeduplicateNewtypes collapses numbered duplicates onto their base
	// declaration. Only meaningful when NewtypeMode is "all".
	DeduplicateNewtypes bool `json:"deduplicateNewtypes"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		FileNames:           []string{"**"},
		FollowImports:       false,
		IncludeHeader:       true,
		NewtypeMode:         NewtypeModeNone,
		DeduplicateNewtypes: true,
	}
}

// Load reads and parses an iotsgen config file. Unknown keys are
// rejected so typos fail loudly instead of silently keeping a default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %q", path)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg, json.RejectUnknownMembers(true)); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %q", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config in %q", path)
	}

	return &cfg, nil
}

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	if len(c.FileNames) == 0 {
		return errors.New("fileNames must have at least one pattern")
	}
	for _, p := range c.FileNames {
		if p == "" {
			return errors.New("fileNames must not contain empty patterns")
		}
	}

	switch c.NewtypeMode {
	case NewtypeModeNone, NewtypeModeAll:
	default:
		return errors.Newf("newtypeMode must be %q or %q, got %q",
			NewtypeModeNone, NewtypeModeAll, c.NewtypeMode)
	}

	return nil
}
