package newtype

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var propBases = []string{"Alpha", "Beta", "Gamma", "Delta"}
var propKinds = []PrimKind{PrimString, PrimNumber, PrimBoolean}

// buildNewtypes derives a newtype map from fuzz words: each word picks a
// base name, an optional numeric suffix and a primitive kind.
func buildNewtypes(raw []int) map[string]Record {
	out := make(map[string]Record)
	for _, v := range raw {
		if v < 0 {
			v = -v
		}
		name := propBases[v%len(propBases)]
		if suffix := (v / 4) % 4; suffix > 0 {
			name = fmt.Sprintf("%s%d", name, suffix)
		}
		kind := propKinds[(v/16)%len(propKinds)]
		out[name] = Record{Name: name, Kind: kind}
	}
	return out
}

func TestDeduplicateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("repeated application yields the same mapping", prop.ForAll(
		func(raw []int) bool {
			newtypes := buildNewtypes(raw)
			first, firstBases := Deduplicate(newtypes)
			second, secondBases := Deduplicate(newtypes)
			return reflect.DeepEqual(first, second) && reflect.DeepEqual(firstBases, secondBases)
		},
		gen.SliceOf(gen.IntRange(0, 1<<16)),
	))

	properties.Property("every mapping entry is a kind-matched numbered variant of an existing base", prop.ForAll(
		func(raw []int) bool {
			newtypes := buildNewtypes(raw)
			variantToBase, basesWithVariants := Deduplicate(newtypes)
			for variant, base := range variantToBase {
				parsed, ok := ParseNumberedVariant(variant)
				if !ok || parsed != base {
					return false
				}
				baseRec, ok := newtypes[base]
				if !ok || baseRec.Kind != newtypes[variant].Kind {
					return false
				}
				if !basesWithVariants[base] {
					return false
				}
			}
			// No base is itself collapsed.
			for base := range basesWithVariants {
				if _, collapsed := variantToBase[base]; collapsed {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 1<<16)),
	))

	properties.TestingRun(t)
}
