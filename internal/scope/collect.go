package scope

// Options controls which files contribute declarations.
type Options struct {
	// Entries selects the scope's entry files: exact names, base names,
	// or * / ** globs, matched against snapshot file names.
	Entries []string

	// FollowImports widens collection to every file reachable from an
	// entry through import edges.
	FollowImports bool
}

// Collect gathers the declarations eligible for generation, in discovery
// order: files in snapshot order, each file's own declarations first, then
// its namespaces depth-first. Colliding names follow Set semantics. An
// empty or fully filtered snapshot yields an empty set; there are no error
// conditions.
func Collect(snap *Snapshot, opts Options) *Set {
	included := selectFiles(snap, opts)
	set := NewSet()
	for _, f := range snap.Files {
		if !included[f.Name] {
			continue
		}
		for _, d := range f.Decls {
			set.Add(stamp(d, f.Name))
		}
		for _, ns := range f.Namespaces {
			collectNamespace(set, ns, f.Name)
		}
	}
	return set
}

func collectNamespace(set *Set, ns *Namespace, file string) {
	for _, d := range ns.Decls {
		set.Add(stamp(d, file))
	}
	for _, nested := range ns.Namespaces {
		collectNamespace(set, nested, file)
	}
}

// stamp copies d with its originating file filled in, leaving the
// snapshot untouched.
func stamp(d *Declaration, file string) *Declaration {
	c := *d
	c.File = file
	return &c
}

// selectFiles resolves the participating file set: entry matches, plus
// their transitive imports when FollowImports is on. Import names that do
// not correspond to a snapshot file are ignored.
func selectFiles(snap *Snapshot, opts Options) map[string]bool {
	byName := make(map[string]*File, len(snap.Files))
	for _, f := range snap.Files {
		byName[f.Name] = f
	}

	included := make(map[string]bool)
	queue := make([]string, 0, len(snap.Files))
	for _, f := range snap.Files {
		if matchAnyEntry(f.Name, opts.Entries) {
			included[f.Name] = true
			queue = append(queue, f.Name)
		}
	}
	if !opts.FollowImports {
		return included
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		f, ok := byName[name]
		if !ok {
			continue
		}
		for _, imp := range f.Imports {
			if included[imp] {
				continue
			}
			if _, ok := byName[imp]; !ok {
				continue
			}
			included[imp] = true
			queue = append(queue, imp)
		}
	}
	return included
}
