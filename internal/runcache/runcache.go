// Package runcache tracks snapshot content between watch-mode regenerations.
//
// fsnotify reports file saves, not content changes: editors rewrite files on
// save even when the bytes are identical, and atomic saves can fire several
// events for a single write. After each debounce window, watch mode hashes
// the watched snapshots and skips regeneration when every hash matches the
// state recorded by the previous successful run.
//
// The record is intentionally conservative: if ANY check fails, every watched
// snapshot is regenerated from scratch. There are no per-snapshot shortcuts,
// because a full pass is cheap at the scale watch mode targets.
package runcache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// State records what was true when regeneration last ran successfully.
// It lives in memory for the duration of a watch session.
type State struct {
	// Options is the digest of the effective generation options. The
	// recorded outputs were produced under these options and are stale
	// under any others.
	Options string

	// Snapshots maps each watched snapshot path to the digest of its
	// content at the time of the run.
	Snapshots map[string]string

	// Outputs lists files that must still exist on disk for the state to
	// be trusted, typically the generated source and manifest paths.
	// Empty when output goes to stdout.
	Outputs []string
}

// New creates a State for a run that just completed.
func New(options string, snapshots map[string]string, outputs []string) *State {
	return &State{
		Options:   options,
		Snapshots: snapshots,
		Outputs:   outputs,
	}
}

// Fresh reports whether the recorded state still matches the given options
// digest and snapshot digests. ALL of the following must hold:
//
//  1. The options digest matches.
//  2. The snapshot set is identical and every digest matches.
//  3. Every recorded output file still exists on disk.
//
// A nil State is never fresh.
func (s *State) Fresh(options string, snapshots map[string]string) bool {
	if s == nil {
		return false
	}

	if s.Options != options {
		return false
	}

	if len(s.Snapshots) != len(snapshots) {
		return false
	}
	for path, digest := range snapshots {
		if s.Snapshots[path] != digest {
			return false
		}
	}

	for _, path := range s.Outputs {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}

	return true
}

// HashBytes computes the SHA-256 hex digest of data.
func HashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// HashFile computes the SHA-256 hex digest of a file's contents.
// Returns empty string if the file doesn't exist or can't be read.
func HashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return HashBytes(data)
}

// HashFiles hashes every path and returns the digests keyed by path.
// Unreadable files get an empty digest so that they still participate in
// freshness checks.
func HashFiles(paths []string) map[string]string {
	digests := make(map[string]string, len(paths))
	for _, path := range paths {
		digests[path] = HashFile(path)
	}
	return digests
}
