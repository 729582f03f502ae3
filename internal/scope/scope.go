// Package scope models the resolver's scope snapshot and collects the
// declarations eligible for codec generation. The snapshot is an immutable
// input; collection returns fresh values and never mutates it.
package scope

import "github.com/iotsgen/iotsgen/internal/typedesc"

// Snapshot is one resolver dump: every file the resolver saw, in program
// order, plus the wire format version it was produced under.
type Snapshot struct {
	FormatVersion string
	Files         []*File
}

// File is one source file's slice of the scope.
type File struct {
	// Name is the resolver's canonical identity for the file.
	Name string

	// Imports names the files this file imports, already resolved.
	Imports []string

	// Decls holds the file's top-level declarations in source order.
	Decls []*Declaration

	// Namespaces holds nested namespace-like groupings. Their members
	// collect after the file's own declarations, depth-first.
	Namespaces []*Namespace
}

// Namespace is a nested declaration grouping. Members collect under their
// simple names, so a namespace member can collide with a top-level
// declaration of the same name.
type Namespace struct {
	Name       string
	Decls      []*Declaration
	Namespaces []*Namespace
}

// DeclKind says which declaration form produced an entry.
type DeclKind string

const (
	DeclAlias     DeclKind = "alias"
	DeclInterface DeclKind = "interface"
	DeclConst     DeclKind = "const"
)

// Declaration is one named type declaration as the resolver reported it.
type Declaration struct {
	// Name is the declared name, unique within its file.
	Name string

	// Kind is the declaration form.
	Kind DeclKind

	// Type is the resolved descriptor the declaration denotes.
	Type *typedesc.Type

	// Refs is the resolver's syntactic scan of the declaration body:
	// every directly referenced type name, in source order. May contain
	// the declaration's own name and names outside the collected set;
	// the orderer drops both.
	Refs []string

	// File is the originating file. The collector stamps it on its
	// copies; snapshot producers leave it empty.
	File string
}

// Set is the collected declaration set: name-keyed with stable discovery
// order. A colliding name replaces the declaration content in place and
// keeps its first discovery position; last write wins.
type Set struct {
	order  []string
	byName map[string]*Declaration
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{byName: make(map[string]*Declaration)}
}

// Add inserts d, replacing any previous declaration of the same name.
func (s *Set) Add(d *Declaration) {
	if _, ok := s.byName[d.Name]; !ok {
		s.order = append(s.order, d.Name)
	}
	s.byName[d.Name] = d
}

// Get returns the declaration for name.
func (s *Set) Get(name string) (*Declaration, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Has reports whether name is in the set.
func (s *Set) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Len returns the number of declarations.
func (s *Set) Len() int { return len(s.order) }

// Names returns the declared names in discovery order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// All returns the declarations in discovery order.
func (s *Set) All() []*Declaration {
	out := make([]*Declaration, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}
