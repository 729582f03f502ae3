package snapshot

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/cockroachdb/errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "https://iotsgen.dev/snapshot.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, errors.Wrap(err, "parsing embedded snapshot schema")
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, errors.Wrap(err, "registering snapshot schema")
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, errors.Wrap(err, "compiling snapshot schema")
	}
	return sch, nil
})

// Validate checks a raw snapshot document against the wire schema. This
// is a diagnosis aid for producer authors; Decode's strict field
// handling already rejects structurally alien documents.
func Validate(data []byte, format Format) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	var instance any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &instance); err != nil {
			return errors.Wrap(err, "decoding snapshot YAML")
		}
	default:
		decoded, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return errors.Wrap(err, "decoding snapshot JSON")
		}
		instance = decoded
	}

	if err := sch.Validate(instance); err != nil {
		return errors.Wrap(err, "snapshot does not match the wire schema")
	}
	return nil
}
