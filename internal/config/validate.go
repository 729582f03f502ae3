package config

import (
	"fmt"
	"strings"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// ValidateDetailed performs thorough config validation with suggestions.
// Errors mirror Validate; warnings flag settings that are legal but
// probably not what the author meant.
func (c *Config) ValidateDetailed() *ValidationResult {
	result := &ValidationResult{}

	if len(c.FileNames) == 0 {
		result.Errors = append(result.Errors, "fileNames: at least one pattern required")
	}
	for _, pattern := range c.FileNames {
		if pattern == "" {
			result.Errors = append(result.Errors, "fileNames: empty pattern")
			continue
		}
		if strings.Contains(pattern, `\`) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("fileNames: pattern %q contains a backslash; snapshot file names use forward slashes", pattern))
		}
	}

	switch c.NewtypeMode {
	case NewtypeModeNone:
		if !c.DeduplicateNewtypes {
			result.Warnings = append(result.Warnings,
				`deduplicateNewtypes is disabled but newtypeMode is "none"; the setting only matters in "all" mode`)
		}
	case NewtypeModeAll:
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("newtypeMode: invalid value %q, must be %q or %q", c.NewtypeMode, NewtypeModeNone, NewtypeModeAll))
	}

	return result
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}
