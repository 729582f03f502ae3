package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "iotsgen.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"**"}, cfg.FileNames)
	assert.False(t, cfg.FollowImports)
	assert.True(t, cfg.IncludeHeader)
	assert.Equal(t, NewtypeModeNone, cfg.NewtypeMode)
	assert.True(t, cfg.DeduplicateNewtypes)
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `{
		"fileNames": ["src/api.ts", "src/models/**"],
		"followImports": true,
		"includeHeader": false,
		"newtypeMode": "all",
		"deduplicateNewtypes": false
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/api.ts", "src/models/**"}, cfg.FileNames)
	assert.True(t, cfg.FollowImports)
	assert.False(t, cfg.IncludeHeader)
	assert.Equal(t, NewtypeModeAll, cfg.NewtypeMode)
	assert.False(t, cfg.DeduplicateNewtypes)
}

func TestLoadPartialConfig(t *testing.T) {
	path := writeConfig(t, `{"newtypeMode": "all"}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Unspecified fields keep their defaults.
	assert.Equal(t, []string{"**"}, cfg.FileNames)
	assert.True(t, cfg.IncludeHeader)
	assert.True(t, cfg.DeduplicateNewtypes)
	assert.Equal(t, NewtypeModeAll, cfg.NewtypeMode)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfig(t, "not json")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `{"filenames": ["src/api.ts"]}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoadRejectsBadNewtypeMode(t *testing.T) {
	path := writeConfig(t, `{"newtypeMode": "some"}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newtypeMode")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(*Config) {},
		},
		{
			name:    "empty fileNames",
			mutate:  func(c *Config) { c.FileNames = nil },
			wantErr: "at least one pattern",
		},
		{
			name:    "blank pattern",
			mutate:  func(c *Config) { c.FileNames = []string{"src/api.ts", ""} },
			wantErr: "empty patterns",
		},
		{
			name:    "invalid newtype mode",
			mutate:  func(c *Config) { c.NewtypeMode = "branded" },
			wantErr: "newtypeMode",
		},
		{
			name:   "all mode passes",
			mutate: func(c *Config) { c.NewtypeMode = NewtypeModeAll },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
