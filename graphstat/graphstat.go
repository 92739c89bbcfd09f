//Package graphstat maintains a census of small graphs up to isomorphism.
//Query answers with the class id of a graph seen before, or -1 for a new
//class, and remembers the graph so that Register can file it right after;
//that call pair is how the cage census loops run. The census lives in
//memory (Database) or in a sqlite file (DB) when labels must stay stable
//across runs.
package graphstat

import (
	"sort"

	"gonum.org/v1/gonum/graph"
)

type entry struct {
	nodes  int
	edges  int
	degseq []int
	adj    [][]int
}

//Database is the in-memory census. Class ids are 0-based in discovery
//order.
type Database struct {
	entries []*entry
	last    *entry
}

func New() *Database {
	return &Database{}
}

//Query returns the id of the isomorphism class of g, or -1 when the class
//is not yet known. An unknown graph is remembered for a following Register.
func (db *Database) Query(g graph.Undirected) int {
	e := fingerprint(g)
	db.last = e
	for i, have := range db.entries {
		if isomorphic(have, e) {
			db.last = nil
			return i
		}
	}
	return -1
}

//Register files the last queried graph as a new class and returns its id.
//Without a pending query it returns -1.
func (db *Database) Register() int {
	if db.last == nil {
		return -1
	}
	db.entries = append(db.entries, db.last)
	db.last = nil
	return len(db.entries) - 1
}

//Len returns the number of known classes.
func (db *Database) Len() int {
	return len(db.entries)
}

//fingerprint relabels g's nodes to 0..n-1 in ascending ID order and
//extracts the invariants used for bucketing.
func fingerprint(g graph.Undirected) *entry {
	ns := graph.NodesOf(g.Nodes())
	sort.Slice(ns, func(i, j int) bool { return ns[i].ID() < ns[j].ID() })
	idx := make(map[int64]int, len(ns))
	for i, n := range ns {
		idx[n.ID()] = i
	}
	e := &entry{nodes: len(ns)}
	e.adj = make([][]int, len(ns))
	for i, n := range ns {
		for _, m := range graph.NodesOf(g.From(n.ID())) {
			e.adj[i] = append(e.adj[i], idx[m.ID()])
		}
		sort.Ints(e.adj[i])
		e.edges += len(e.adj[i])
	}
	e.edges /= 2
	e.degseq = make([]int, len(ns))
	for i := range e.adj {
		e.degseq[i] = len(e.adj[i])
	}
	sort.Ints(e.degseq)
	return e
}

//isomorphic runs a degree-guided backtracking search for a node bijection
//preserving adjacency both ways. Cage graphs have a few tens of nodes at
//most, the naive search is plenty.
func isomorphic(a, b *entry) bool {
	if a.nodes != b.nodes || a.edges != b.edges {
		return false
	}
	for i := range a.degseq {
		if a.degseq[i] != b.degseq[i] {
			return false
		}
	}
	n := a.nodes
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(a.adj[order[i]]) > len(a.adj[order[j]])
	})
	mapping := make([]int, n)
	used := make([]bool, n)
	for i := range mapping {
		mapping[i] = -1
	}
	var match func(k int) bool
	match = func(k int) bool {
		if k == n {
			return true
		}
		u := order[k]
		for v := 0; v < n; v++ {
			if used[v] || len(b.adj[v]) != len(a.adj[u]) {
				continue
			}
			ok := true
			for w := 0; w < n; w++ {
				mw := mapping[w]
				if mw < 0 || w == u {
					continue
				}
				if contains(a.adj[u], w) != contains(b.adj[v], mw) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			mapping[u] = v
			used[v] = true
			if match(k + 1) {
				return true
			}
			mapping[u] = -1
			used[v] = false
		}
		return false
	}
	return match(0)
}

func contains(sorted []int, x int) bool {
	i := sort.SearchInts(sorted, x)
	return i < len(sorted) && sorted[i] == x
}

//Errors

type Error struct {
	message string
	deco    []string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}
