package codegen

import (
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"

	"github.com/iotsgen/iotsgen/internal/diagnostic"
)

// Manifest records one generation run next to its output, so build
// tooling can learn which codecs exist without parsing the generated
// source.
type Manifest struct {
	// Run is a fresh identifier for the generation run.
	Run string `json:"run"`

	// GeneratedAt is the run's wall-clock time, UTC.
	GeneratedAt time.Time `json:"generatedAt"`

	// Generator names the producing tool and its version.
	Generator string `json:"generator"`

	// Snapshot is the resolver snapshot the run consumed.
	Snapshot string `json:"snapshot,omitempty"`

	// Output is the generated source path.
	Output string `json:"output,omitempty"`

	// Options echoes the generation options the run used.
	Options ManifestOptions `json:"options"`

	// Codecs holds one entry per collected declaration, in emission
	// order.
	Codecs []ManifestEntry `json:"codecs"`

	// Diagnostics counts the run's findings by severity.
	Diagnostics DiagnosticCounts `json:"diagnostics"`

	// DurationMS is the generation wall time in milliseconds.
	DurationMS int64 `json:"durationMs"`
}

// ManifestOptions is the options echo carried by a manifest.
type ManifestOptions struct {
	IncludeHeader       bool   `json:"includeHeader"`
	NewtypeMode         string `json:"newtypeMode"`
	DeduplicateNewtypes bool   `json:"deduplicateNewtypes"`
}

// DiagnosticCounts summarizes a run's findings.
type DiagnosticCounts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// ManifestEntry is one declaration's outcome.
type ManifestEntry struct {
	Name   string     `json:"name"`
	Status DeclStatus `json:"status"`

	// Base names the absorbing declaration for collapsed variants.
	Base string `json:"base,omitempty"`

	// Error carries the failure message for failed declarations.
	Error string `json:"error,omitempty"`
}

// BuildManifest derives the manifest for a finished run. A nil diags
// reports zero counts.
func BuildManifest(res *Result, diags *diagnostic.Collector, generator, snapshot, output string) *Manifest {
	m := &Manifest{
		Run:         uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Generator:   generator,
		Snapshot:    snapshot,
		Output:      output,
		Options: ManifestOptions{
			IncludeHeader:       res.Options.IncludeHeader,
			NewtypeMode:         string(res.Options.NewtypeMode),
			DeduplicateNewtypes: res.Options.DeduplicateNewtypes,
		},
		Codecs: make([]ManifestEntry, 0, len(res.Decls)),
		Diagnostics: DiagnosticCounts{
			Errors:   diags.Count(diagnostic.SeverityError),
			Warnings: diags.Count(diagnostic.SeverityWarning),
		},
		DurationMS: res.Duration.Milliseconds(),
	}
	for _, d := range res.Decls {
		ent := ManifestEntry{Name: d.Name, Status: d.Status, Base: d.Base}
		if d.Err != nil {
			ent.Error = d.Err.Error()
		}
		m.Codecs = append(m.Codecs, ent)
	}
	return m
}

// JSON renders the manifest as indented JSON.
func (m *Manifest) JSON() ([]byte, error) {
	return json.Marshal(m, jsontext.WithIndent("  "))
}
