package snapshot

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"

	"github.com/iotsgen/iotsgen/internal/scope"
)

// Format selects the document encoding.
type Format int

const (
	// FormatJSON is the resolver's native dump encoding.
	FormatJSON Format = iota
	// FormatYAML is accepted for hand-written snapshots, mostly fixtures
	// and small repros.
	FormatYAML
)

// formatCompat gates the wire format versions this reader understands.
var formatCompat = func() *semver.Constraints {
	c, err := semver.NewConstraint("^1")
	if err != nil {
		panic(err)
	}
	return c
}()

// DetectFormat picks the encoding from a file name.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads one snapshot document. JSON decoding is strict: unknown
// members fail, so producer drift surfaces at the boundary instead of
// as silently dropped facets.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decoding snapshot YAML")
		}
	default:
		if err := json.UnmarshalRead(r, &doc, json.RejectUnknownMembers(true)); err != nil {
			return nil, errors.Wrap(err, "decoding snapshot JSON")
		}
	}
	return &doc, nil
}

// CheckVersion rejects documents from an incompatible wire format.
func CheckVersion(doc *Document) error {
	if doc.FormatVersion == "" {
		return errors.New("snapshot declares no formatVersion")
	}
	v, err := semver.NewVersion(doc.FormatVersion)
	if err != nil {
		return errors.Wrapf(err, "snapshot formatVersion %q", doc.FormatVersion)
	}
	if !formatCompat.Check(v) {
		return errors.Newf("snapshot formatVersion %q is not supported (want ^1)", doc.FormatVersion)
	}
	return nil
}

// Read decodes, version-checks and converts one document from r.
func Read(r io.Reader, format Format) (*scope.Snapshot, error) {
	doc, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	if err := CheckVersion(doc); err != nil {
		return nil, err
	}
	return doc.Convert()
}

// Load reads the snapshot file at path, picking the encoding from the
// file extension.
func Load(path string) (*scope.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening snapshot")
	}
	defer f.Close()

	snap, err := Read(f, DetectFormat(path))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return snap, nil
}
