package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDetailedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	res := cfg.ValidateDetailed()

	assert.True(t, res.IsValid())
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateDetailedErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FileNames = nil
	cfg.NewtypeMode = "branded"

	res := cfg.ValidateDetailed()
	assert.False(t, res.IsValid())
	assert.Len(t, res.Errors, 2)
}

func TestValidateDetailedWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FileNames = []string{`src\api.ts`}
	cfg.DeduplicateNewtypes = false

	res := cfg.ValidateDetailed()
	assert.True(t, res.IsValid())
	assert.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[0], "backslash")
	assert.Contains(t, res.Warnings[1], "deduplicateNewtypes")
}
