// Package snapshot reads serialized resolver scope dumps: the JSON or
// YAML documents the semantic resolver writes for the generator. Loading
// is the one place a run can fail outright; everything past a loaded
// snapshot degrades per declaration instead.
package snapshot

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/iotsgen/iotsgen/internal/scope"
	"github.com/iotsgen/iotsgen/internal/typedesc"
)

// FormatVersion is the wire format this reader targets. Documents are
// accepted when their declared version satisfies ^1.
const FormatVersion = "1.0.0"

// Document is the top level of a snapshot file.
type Document struct {
	FormatVersion string  `json:"formatVersion" yaml:"formatVersion"`
	Files         []*File `json:"files" yaml:"files"`
}

// File is one source file's slice of the scope.
type File struct {
	Name         string         `json:"name" yaml:"name"`
	Imports      []string       `json:"imports,omitempty" yaml:"imports,omitempty"`
	Declarations []*Declaration `json:"declarations,omitempty" yaml:"declarations,omitempty"`
	Namespaces   []*Namespace   `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
}

// Namespace is a nested declaration grouping.
type Namespace struct {
	Name         string         `json:"name" yaml:"name"`
	Declarations []*Declaration `json:"declarations,omitempty" yaml:"declarations,omitempty"`
	Namespaces   []*Namespace   `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
}

// Declaration is one named declaration.
type Declaration struct {
	Name string   `json:"name" yaml:"name"`
	Kind string   `json:"kind" yaml:"kind"`
	Type *Node    `json:"type" yaml:"type"`
	Refs []string `json:"refs,omitempty" yaml:"refs,omitempty"`
}

// Node is one kind-tagged type node. Which facet fields are meaningful
// depends on Kind; unknown kinds fail conversion.
type Node struct {
	Kind string `json:"kind" yaml:"kind"`

	// Str/Num/Bool carry literal values. Only set for literal kinds.
	Str  string  `json:"str,omitempty" yaml:"str,omitempty"`
	Num  float64 `json:"num,omitempty" yaml:"num,omitempty"`
	Bool bool    `json:"bool,omitempty" yaml:"bool,omitempty"`

	// Name is the referenced declaration. Only set for ref nodes.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Alias and AliasArgs may accompany any node.
	Alias     string  `json:"alias,omitempty" yaml:"alias,omitempty"`
	AliasArgs []*Node `json:"aliasArgs,omitempty" yaml:"aliasArgs,omitempty"`

	// Members holds union or intersection members.
	Members []*Node `json:"members,omitempty" yaml:"members,omitempty"`

	// Elements and Rest describe tuples.
	Elements []*Node `json:"elements,omitempty" yaml:"elements,omitempty"`
	Rest     bool    `json:"rest,omitempty" yaml:"rest,omitempty"`

	// Element is the array element type.
	Element *Node `json:"element,omitempty" yaml:"element,omitempty"`

	// Key and Value describe record nodes.
	Key   *Node `json:"key,omitempty" yaml:"key,omitempty"`
	Value *Node `json:"value,omitempty" yaml:"value,omitempty"`

	// Object facets.
	Properties  []*Property `json:"properties,omitempty" yaml:"properties,omitempty"`
	StringIndex *Node       `json:"stringIndex,omitempty" yaml:"stringIndex,omitempty"`
	NumberIndex *Node       `json:"numberIndex,omitempty" yaml:"numberIndex,omitempty"`
	Callable    bool        `json:"callable,omitempty" yaml:"callable,omitempty"`
}

// Property is one object member.
type Property struct {
	Name     string    `json:"name" yaml:"name"`
	Optional bool      `json:"optional,omitempty" yaml:"optional,omitempty"`
	Type     *Node     `json:"type" yaml:"type"`
	Declared *Declared `json:"declared,omitempty" yaml:"declared,omitempty"`
}

// Declared is the syntax-level view of a property annotation, kept for
// reference preservation.
type Declared struct {
	Ref   string         `json:"ref,omitempty" yaml:"ref,omitempty"`
	Union []DeclaredTerm `json:"union,omitempty" yaml:"union,omitempty"`
}

// DeclaredTerm is one union annotation alternative.
type DeclaredTerm struct {
	Ref  string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Prim string `json:"prim,omitempty" yaml:"prim,omitempty"`
}

// bareKinds maps value-less wire kinds to their category flag.
var bareKinds = map[string]typedesc.Flags{
	"string":        typedesc.FlagString,
	"number":        typedesc.FlagNumber,
	"boolean":       typedesc.FlagBoolean,
	"null":          typedesc.FlagNull,
	"undefined":     typedesc.FlagUndefined,
	"void":          typedesc.FlagVoid,
	"any":           typedesc.FlagAny,
	"unknown":       typedesc.FlagUnknown,
	"unknownObject": typedesc.FlagNonPrimitive,
}

var declKinds = map[string]scope.DeclKind{
	"alias":     scope.DeclAlias,
	"interface": scope.DeclInterface,
	"const":     scope.DeclConst,
}

var annotationPrims = map[string]bool{
	"string":    true,
	"number":    true,
	"boolean":   true,
	"null":      true,
	"undefined": true,
}

// Convert turns a decoded document into the resolver scope model.
// Declared names and references normalize to NFC so differently composed
// spellings of the same identifier converge.
func (d *Document) Convert() (*scope.Snapshot, error) {
	snap := &scope.Snapshot{FormatVersion: d.FormatVersion}
	for _, f := range d.Files {
		file := &scope.File{Name: f.Name}
		for _, imp := range f.Imports {
			file.Imports = append(file.Imports, imp)
		}
		decls, err := convertDecls(f.Declarations, f.Name)
		if err != nil {
			return nil, err
		}
		file.Decls = decls
		for _, ns := range f.Namespaces {
			converted, err := convertNamespace(ns, f.Name)
			if err != nil {
				return nil, err
			}
			file.Namespaces = append(file.Namespaces, converted)
		}
		snap.Files = append(snap.Files, file)
	}
	return snap, nil
}

func convertNamespace(ns *Namespace, file string) (*scope.Namespace, error) {
	out := &scope.Namespace{Name: ns.Name}
	decls, err := convertDecls(ns.Declarations, file)
	if err != nil {
		return nil, err
	}
	out.Decls = decls
	for _, nested := range ns.Namespaces {
		converted, err := convertNamespace(nested, file)
		if err != nil {
			return nil, err
		}
		out.Namespaces = append(out.Namespaces, converted)
	}
	return out, nil
}

func convertDecls(decls []*Declaration, file string) ([]*scope.Declaration, error) {
	var out []*scope.Declaration
	for _, d := range decls {
		kind, ok := declKinds[d.Kind]
		if !ok {
			return nil, errors.Newf("%s: declaration %q has unknown kind %q", file, d.Name, d.Kind)
		}
		tt, err := convertNode(d.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: declaration %q", file, d.Name)
		}
		refs := make([]string, 0, len(d.Refs))
		for _, r := range d.Refs {
			refs = append(refs, norm.NFC.String(r))
		}
		out = append(out, &scope.Declaration{
			Name: norm.NFC.String(d.Name),
			Kind: kind,
			Type: tt,
			Refs: refs,
		})
	}
	return out, nil
}

func convertNode(n *Node) (*typedesc.Type, error) {
	if n == nil {
		return nil, errors.New("missing type node")
	}
	t := &typedesc.Type{}
	if n.Alias != "" {
		t.Alias = norm.NFC.String(n.Alias)
	}
	for _, arg := range n.AliasArgs {
		converted, err := convertNode(arg)
		if err != nil {
			return nil, err
		}
		t.AliasArgs = append(t.AliasArgs, converted)
	}

	if flag, ok := bareKinds[n.Kind]; ok {
		t.Flags |= flag
		return t, nil
	}
	switch n.Kind {
	case "stringLiteral":
		t.Flags |= typedesc.FlagStringLiteral
		t.Literal = &typedesc.Literal{Str: n.Str}
	case "numberLiteral":
		t.Flags |= typedesc.FlagNumberLiteral
		t.Literal = &typedesc.Literal{Num: n.Num}
	case "booleanLiteral":
		t.Flags |= typedesc.FlagBooleanLiteral
		t.Literal = &typedesc.Literal{Bool: n.Bool}
	case "union", "intersection":
		if n.Kind == "union" {
			t.Flags |= typedesc.FlagUnion
		} else {
			t.Flags |= typedesc.FlagIntersection
		}
		for _, m := range n.Members {
			converted, err := convertNode(m)
			if err != nil {
				return nil, err
			}
			t.Members = append(t.Members, converted)
		}
	case "tuple":
		t.Elements = make([]*typedesc.Type, 0, len(n.Elements))
		for _, el := range n.Elements {
			converted, err := convertNode(el)
			if err != nil {
				return nil, err
			}
			t.Elements = append(t.Elements, converted)
		}
		t.Rest = n.Rest
	case "array":
		converted, err := convertNode(n.Element)
		if err != nil {
			return nil, errors.Wrap(err, "array element")
		}
		t.Element = converted
	case "record":
		key, err := convertNode(n.Key)
		if err != nil {
			return nil, errors.Wrap(err, "record key")
		}
		value, err := convertNode(n.Value)
		if err != nil {
			return nil, errors.Wrap(err, "record value")
		}
		t.Alias = "Record"
		t.AliasArgs = []*typedesc.Type{key, value}
	case "object":
		t.Flags |= typedesc.FlagStructured
		t.Callable = n.Callable
		for _, p := range n.Properties {
			converted, err := convertProperty(p)
			if err != nil {
				return nil, err
			}
			t.Properties = append(t.Properties, converted)
		}
		if n.StringIndex != nil {
			converted, err := convertNode(n.StringIndex)
			if err != nil {
				return nil, errors.Wrap(err, "string index")
			}
			t.StringIndex = converted
		}
		if n.NumberIndex != nil {
			converted, err := convertNode(n.NumberIndex)
			if err != nil {
				return nil, errors.Wrap(err, "number index")
			}
			t.NumberIndex = converted
		}
	case "function":
		t.Callable = true
	case "ref":
		if n.Name == "" {
			return nil, errors.New("ref node without a name")
		}
		t.Symbol = norm.NFC.String(n.Name)
	default:
		return nil, errors.Newf("unknown type node kind %q", n.Kind)
	}
	return t, nil
}

func convertProperty(p *Property) (typedesc.Property, error) {
	tt, err := convertNode(p.Type)
	if err != nil {
		return typedesc.Property{}, errors.Wrapf(err, "property %q", p.Name)
	}
	out := typedesc.Property{
		Name:     norm.NFC.String(p.Name),
		Optional: p.Optional,
		Type:     tt,
	}
	if p.Declared != nil {
		a, err := convertDeclared(p.Declared)
		if err != nil {
			return typedesc.Property{}, errors.Wrapf(err, "property %q", p.Name)
		}
		out.Declared = a
	}
	return out, nil
}

func convertDeclared(d *Declared) (*typedesc.Annotation, error) {
	if d.Ref != "" {
		return &typedesc.Annotation{Ref: norm.NFC.String(d.Ref)}, nil
	}
	if len(d.Union) == 0 {
		return nil, errors.New("declared annotation is neither a ref nor a union")
	}
	a := &typedesc.Annotation{}
	for _, term := range d.Union {
		switch {
		case term.Ref != "":
			a.Union = append(a.Union, typedesc.AnnotationTerm{Ref: norm.NFC.String(term.Ref)})
		case annotationPrims[term.Prim]:
			a.Union = append(a.Union, typedesc.AnnotationTerm{Prim: term.Prim})
		default:
			return nil, errors.Newf("declared union term has unknown primitive %q", term.Prim)
		}
	}
	return a, nil
}
