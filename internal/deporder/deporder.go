// Package deporder produces the emission order for collected declarations:
// referenced declarations come before their referrers whenever the
// reference graph allows it.
package deporder

import "github.com/iotsgen/iotsgen/internal/scope"

// Order arranges decls so that for every in-set reference A → B, B appears
// at or before A when the graph is acyclic. Self-references, references to
// names outside the set, and repeated references count once or not at all.
//
// The graph is processed reversed: an edge runs from the referenced
// declaration to its referrer, so a node's in-degree is the number of its
// own dependencies and Kahn's algorithm releases a referrer only once
// everything it references has been emitted. The queue is FIFO, seeded in
// discovery order, which keeps independent declarations in their original
// relative order.
//
// Declarations stranded by a cycle append at the end in discovery order.
// Their relative order is a completeness fallback, not a contract.
func Order(decls []*scope.Declaration) []*scope.Declaration {
	index := make(map[string]int, len(decls))
	for i, d := range decls {
		index[d.Name] = i
	}

	// dependents[j] lists the declarations that reference j; indegree[i]
	// counts i's distinct in-set, non-self references.
	dependents := make([][]int, len(decls))
	indegree := make([]int, len(decls))
	for i, d := range decls {
		seen := make(map[int]bool, len(d.Refs))
		for _, ref := range d.Refs {
			j, ok := index[ref]
			if !ok || j == i || seen[j] {
				continue
			}
			seen[j] = true
			dependents[j] = append(dependents[j], i)
			indegree[i]++
		}
	}

	queue := make([]int, 0, len(decls))
	for i := range decls {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	out := make([]*scope.Declaration, 0, len(decls))
	visited := make([]bool, len(decls))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		visited[i] = true
		out = append(out, decls[i])
		for _, k := range dependents[i] {
			indegree[k]--
			if indegree[k] == 0 {
				queue = append(queue, k)
			}
		}
	}

	for i, d := range decls {
		if !visited[i] {
			out = append(out, d)
		}
	}
	return out
}
