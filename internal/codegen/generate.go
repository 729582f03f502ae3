package codegen

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/iotsgen/iotsgen/internal/deporder"
	"github.com/iotsgen/iotsgen/internal/diagnostic"
	"github.com/iotsgen/iotsgen/internal/newtype"
	"github.com/iotsgen/iotsgen/internal/scope"
)

// NewtypeMode selects the nominal-typing pass behavior.
type NewtypeMode string

const (
	// NewtypeNone renders primitive aliases as plain codecs.
	NewtypeNone NewtypeMode = "none"
	// NewtypeAll brands every primitive alias as a nominal type.
	NewtypeAll NewtypeMode = "all"
)

// Header lines of the generated document. The library import always
// leads; the nominal-typing imports join it only when a scaffold was
// actually emitted.
const (
	headerCodecs      = `import * as t from "io-ts"`
	headerNewtype     = `import { Newtype, iso } from "newtype-ts"`
	headerFromNewtype = `import { fromNewtype } from "io-ts-types/lib/fromNewtype"`
)

// Options controls one generation run.
type Options struct {
	// IncludeHeader prepends the import block to the document.
	IncludeHeader bool

	// NewtypeMode enables nominal-typing for primitive aliases.
	NewtypeMode NewtypeMode

	// DeduplicateNewtypes collapses numbered variant aliases onto their
	// base declaration. Only consulted under NewtypeAll.
	DeduplicateNewtypes bool
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		IncludeHeader:       true,
		NewtypeMode:         NewtypeNone,
		DeduplicateNewtypes: true,
	}
}

// DeclStatus is one declaration's outcome.
type DeclStatus string

const (
	// StatusGenerated means a codec binding or nominal scaffold was
	// emitted.
	StatusGenerated DeclStatus = "generated"
	// StatusCollapsed means the declaration is a numbered variant
	// represented entirely by its base; nothing is emitted.
	StatusCollapsed DeclStatus = "collapsed"
	// StatusFailed means translation failed and an error marker was
	// emitted in the codec's place.
	StatusFailed DeclStatus = "failed"
)

// DeclResult records one declaration's outcome.
type DeclResult struct {
	Name   string
	File   string
	Status DeclStatus

	// Text is the emitted block: a codec binding, a nominal scaffold
	// or an error marker. Empty for collapsed variants.
	Text string

	// Base names the absorbing declaration for collapsed variants.
	Base string

	// Err is the translation failure behind a StatusFailed entry.
	Err error
}

// Result is one generation run's output.
type Result struct {
	// Source is the assembled document: header first when enabled,
	// then one block per emitted declaration, blank-line separated.
	Source string

	// Decls holds per-declaration outcomes in emission order,
	// collapsed variants included.
	Decls []DeclResult

	// Newtypes counts the nominal scaffolds emitted.
	Newtypes int

	// Options echoes the options the run used.
	Options Options

	// Duration is the wall time the run took.
	Duration time.Duration
}

// Failed returns the declarations that ended in an error marker.
func (r *Result) Failed() []DeclResult {
	var out []DeclResult
	for _, d := range r.Decls {
		if d.Status == StatusFailed {
			out = append(out, d)
		}
	}
	return out
}

// Generate renders codecs for every declaration in set, dependency
// ordered. Failures stay local to their declaration: the run always
// produces a document, with failed declarations downgraded to
// commented error markers.
func Generate(set *scope.Set, opts Options, diags *diagnostic.Collector) *Result {
	start := time.Now()
	decls := set.All()

	var records map[string]newtype.Record
	variantToBase := map[string]string{}
	if opts.NewtypeMode == NewtypeAll {
		records = newtype.Extract(decls)
		if opts.DeduplicateNewtypes {
			variantToBase, _ = newtype.Deduplicate(records)
		}
	}

	available := make(map[string]bool, set.Len())
	for _, name := range set.Names() {
		available[name] = true
	}

	res := &Result{Options: opts}
	var blocks []string
	for _, d := range deporder.Order(decls) {
		if base, ok := variantToBase[d.Name]; ok {
			res.Decls = append(res.Decls, DeclResult{
				Name: d.Name, File: d.File, Status: StatusCollapsed, Base: base,
			})
			continue
		}
		if rec, ok := records[d.Name]; ok {
			text := renderNewtype(rec.Name, rec.Kind)
			res.Newtypes++
			res.Decls = append(res.Decls, DeclResult{
				Name: d.Name, File: d.File, Status: StatusGenerated, Text: text,
			})
			blocks = append(blocks, text)
			continue
		}

		available[d.Name] = false
		text, err := renderDeclaration(d, &renderCtx{
			available:     available,
			variantToBase: variantToBase,
			decl:          d.Name,
			file:          d.File,
			diags:         diags,
		})
		available[d.Name] = true
		if err != nil {
			category := diagnostic.CategoryClassification
			if errors.Is(err, errTooDeep) {
				category = diagnostic.CategoryDepthLimit
			}
			diags.Errorf(category, d.File, d.Name, "%v", err)
			text = fmt.Sprintf("// error generating codec for %s: %v", d.Name, err)
			res.Decls = append(res.Decls, DeclResult{
				Name: d.Name, File: d.File, Status: StatusFailed, Text: text, Err: err,
			})
			blocks = append(blocks, text)
			continue
		}
		res.Decls = append(res.Decls, DeclResult{
			Name: d.Name, File: d.File, Status: StatusGenerated, Text: text,
		})
		blocks = append(blocks, text)
	}

	if opts.IncludeHeader {
		head := headerCodecs
		if res.Newtypes > 0 {
			head += "\n" + headerNewtype + "\n" + headerFromNewtype
		}
		blocks = append([]string{head}, blocks...)
	}
	res.Source = strings.Join(blocks, "\n\n")
	res.Duration = time.Since(start)
	return res
}
