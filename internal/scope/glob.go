package scope

import (
	"path/filepath"
	"strings"
)

// matchEntry reports whether a snapshot file name matches one entry
// pattern. Patterns support * and ? via filepath.Match plus ** for
// arbitrary directory depth. A pattern without wildcards also matches on
// the base name, so an entry of "main.ts" selects "src/main.ts".
func matchEntry(name, pattern string) bool {
	name = filepath.ToSlash(name)
	pattern = filepath.ToSlash(pattern)

	if matched, _ := filepath.Match(pattern, name); matched {
		return true
	}

	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")

		if prefix != "" {
			if !strings.HasPrefix(name, prefix+"/") {
				return false
			}
			name = strings.TrimPrefix(name, prefix+"/")
		}
		if suffix == "" {
			return true
		}
		if matched, _ := filepath.Match(suffix, name); matched {
			return true
		}
		matched, _ := filepath.Match(suffix, filepath.Base(name))
		return matched
	}

	if !strings.ContainsAny(pattern, "*?[") {
		return filepath.Base(name) == pattern
	}
	return false
}

// matchAnyEntry reports whether name matches at least one pattern.
func matchAnyEntry(name string, patterns []string) bool {
	for _, p := range patterns {
		if matchEntry(name, p) {
			return true
		}
	}
	return false
}
