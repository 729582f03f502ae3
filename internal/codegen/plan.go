package codegen

import (
	"strings"

	"github.com/iotsgen/iotsgen/internal/deporder"
	"github.com/iotsgen/iotsgen/internal/newtype"
	"github.com/iotsgen/iotsgen/internal/scope"
	"github.com/iotsgen/iotsgen/internal/typedesc"
)

// PlanEntry describes what a generation run would do for one
// declaration, without rendering anything.
type PlanEntry struct {
	Name string         `json:"name"`
	File string         `json:"file,omitempty"`
	Decl scope.DeclKind `json:"decl"`

	// Kind is the classifier's verdict for the resolved type, or
	// "error" when no variant matches.
	Kind string `json:"kind,omitempty"`

	// Refs lists the in-set references that constrained ordering.
	Refs []string `json:"refs,omitempty"`

	// Newtype is the branded primitive under nominal-typing mode.
	Newtype string `json:"newtype,omitempty"`

	// CollapsedInto names the base absorbing this numbered variant.
	CollapsedInto string `json:"collapsedInto,omitempty"`
}

// Plan is the emission-order dry run behind the inspect command.
type Plan struct {
	Entries []PlanEntry `json:"declarations"`
}

// BuildPlan computes emission order, classification and nominal-typing
// decisions for set without producing source.
func BuildPlan(set *scope.Set, opts Options) *Plan {
	decls := set.All()

	var records map[string]newtype.Record
	variantToBase := map[string]string{}
	if opts.NewtypeMode == NewtypeAll {
		records = newtype.Extract(decls)
		if opts.DeduplicateNewtypes {
			variantToBase, _ = newtype.Deduplicate(records)
		}
	}

	inSet := make(map[string]bool, set.Len())
	for _, name := range set.Names() {
		inSet[name] = true
	}

	p := &Plan{Entries: make([]PlanEntry, 0, len(decls))}
	for _, d := range deporder.Order(decls) {
		ent := PlanEntry{
			Name: d.Name,
			File: d.File,
			Decl: d.Kind,
			Refs: orderingRefs(d, inSet),
		}
		if base, ok := variantToBase[d.Name]; ok {
			ent.CollapsedInto = base
		} else if rec, ok := records[d.Name]; ok {
			ent.Newtype = string(rec.Kind)
		} else if d.Type != nil {
			kind, err := typedesc.Classify(d.Type)
			if err != nil {
				ent.Kind = "error"
			} else {
				ent.Kind = string(kind)
			}
		} else {
			ent.Kind = "error"
		}
		p.Entries = append(p.Entries, ent)
	}
	return p
}

// orderingRefs reduces a declaration's raw reference scan the way the
// orderer does: self-references, names outside the set and duplicates
// drop out.
func orderingRefs(d *scope.Declaration, inSet map[string]bool) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, r := range d.Refs {
		if r == d.Name || !inSet[r] || seen[r] {
			continue
		}
		seen[r] = true
		refs = append(refs, r)
	}
	return refs
}

// Format renders the plan as an indented text report.
func (p *Plan) Format() string {
	e := NewEmitter()
	e.Line("%d declaration(s) in emission order", len(p.Entries))
	for _, ent := range p.Entries {
		e.Blank()
		if ent.File != "" {
			e.Line("%s (%s, %s)", ent.Name, ent.Decl, ent.File)
		} else {
			e.Line("%s (%s)", ent.Name, ent.Decl)
		}
		e.Indent()
		switch {
		case ent.CollapsedInto != "":
			e.Line("collapsed into %s", ent.CollapsedInto)
		case ent.Newtype != "":
			e.Line("newtype of %s", ent.Newtype)
		default:
			e.Line("kind: %s", ent.Kind)
		}
		if len(ent.Refs) > 0 {
			e.Line("refs: %s", strings.Join(ent.Refs, ", "))
		}
		e.Dedent()
	}
	return e.String()
}
