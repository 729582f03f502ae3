// Package newtype implements the nominal-typing pass: type aliases that
// resolve to a bare primitive become branded types, and mechanically
// numbered alias copies collapse onto their base declaration.
package newtype

import (
	"github.com/iotsgen/iotsgen/internal/scope"
	"github.com/iotsgen/iotsgen/internal/typedesc"
)

// PrimKind is the primitive a newtype brands.
type PrimKind string

const (
	PrimString  PrimKind = "string"
	PrimNumber  PrimKind = "number"
	PrimBoolean PrimKind = "boolean"
)

// Record is one newtype decision: the alias name and the primitive it
// brands.
type Record struct {
	Name string
	Kind PrimKind
}

// primKindOf reports the bare primitive t is, if any. Checks run in
// string, number, boolean priority, first match. Literal types never
// qualify.
func primKindOf(t *typedesc.Type) (PrimKind, bool) {
	if t == nil || t.Flags&typedesc.FlagsLiteral != 0 {
		return "", false
	}
	switch {
	case t.Flags&typedesc.FlagString != 0:
		return PrimString, true
	case t.Flags&typedesc.FlagNumber != 0:
		return PrimNumber, true
	case t.Flags&typedesc.FlagBoolean != 0:
		return PrimBoolean, true
	}
	return "", false
}

// Extract returns the newtype records for decls, keyed by alias name.
// Only type aliases participate; interfaces and typed consts never brand.
func Extract(decls []*scope.Declaration) map[string]Record {
	out := make(map[string]Record)
	for _, d := range decls {
		if d.Kind != scope.DeclAlias {
			continue
		}
		if k, ok := primKindOf(d.Type); ok {
			out[d.Name] = Record{Name: d.Name, Kind: k}
		}
	}
	return out
}

// ParseNumberedVariant splits a name of the form <Base><digits>. It fails
// when there is no trailing digit run or the digits cover the whole name.
func ParseNumberedVariant(name string) (base string, ok bool) {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	if i == 0 || i == len(name) {
		return "", false
	}
	return name[:i], true
}

// Deduplicate collapses numbered variants onto their base newtype. A
// variant group folds only when a newtype with exactly the base name
// exists AND every variant in the group brands the base's primitive kind;
// a group failing either condition stays fully independent. Equivalence is
// kind-only; no deeper structure is compared.
//
// The input map is never mutated, so applying Deduplicate twice to the
// same input yields the same result. variantToBase maps collapsed names to
// their base; basesWithVariants marks the bases that absorbed at least one
// variant. Callers derive the emission set by dropping variantToBase keys.
func Deduplicate(newtypes map[string]Record) (variantToBase map[string]string, basesWithVariants map[string]bool) {
	groups := make(map[string][]string)
	for name := range newtypes {
		if base, ok := ParseNumberedVariant(name); ok {
			groups[base] = append(groups[base], name)
		}
	}

	variantToBase = make(map[string]string)
	basesWithVariants = make(map[string]bool)
	for base, variants := range groups {
		baseRec, ok := newtypes[base]
		if !ok {
			continue
		}
		same := true
		for _, v := range variants {
			if newtypes[v].Kind != baseRec.Kind {
				same = false
				break
			}
		}
		if !same {
			continue
		}
		for _, v := range variants {
			variantToBase[v] = base
		}
		basesWithVariants[base] = true
	}
	return variantToBase, basesWithVariants
}
