//Package polyhed assembles rings into quasi-polyhedra: connected sets of at
//least four rings in which every edge covered by the set is shared by
//exactly two member rings and no vertex belongs to more than three. The
//cages of ice frameworks and clathrate hydrates are exactly such sets.
package polyhed

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

type edge [2]int

func mkedge(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

func eless(a, b edge) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

//ringEdges lists the undirected edges of one ring.
func ringEdges(ring []int) []edge {
	l := len(ring)
	out := make([]edge, l)
	for i := 0; i < l; i++ {
		out[i] = mkedge(ring[i], ring[(i+1)%l])
	}
	return out
}

type search struct {
	rings    [][]int
	edges    [][]edge
	byEdge   map[edge][]int
	maxFaces int
	seen     map[string]bool
	found    [][]int
}

type state struct {
	members   []int
	inSet     map[int]bool
	edgeUse   map[edge]int
	vertexUse map[int]int
}

//Find enumerates the quasi-polyhedra formed by the given rings, with at
//most maxFaces faces each. Every cage is reported as a sorted slice of
//ring indices and the cage list is sorted lexicographically, so the result
//is deterministic for a fixed ring list.
func Find(rings [][]int, maxFaces int) ([][]int, error) {
	if maxFaces < 4 {
		return nil, Error{fmt.Sprintf("max cage size %d: a closed polyhedron needs at least 4 faces", maxFaces), []string{"Find"}}
	}
	s := &search{
		rings:    rings,
		edges:    make([][]edge, len(rings)),
		byEdge:   make(map[edge][]int),
		maxFaces: maxFaces,
		seen:     make(map[string]bool),
	}
	for i, r := range rings {
		s.edges[i] = ringEdges(r)
		for _, e := range s.edges[i] {
			s.byEdge[e] = append(s.byEdge[e], i)
		}
	}
	for seed := range rings {
		st := &state{
			inSet:     make(map[int]bool),
			edgeUse:   make(map[edge]int),
			vertexUse: make(map[int]int),
		}
		st.add(s, seed)
		s.grow(st, seed)
	}
	sort.Slice(s.found, func(i, j int) bool { return less(s.found[i], s.found[j]) })
	return s.found, nil
}

//grow completes the ring set started at seed. The seed stays the smallest
//member, and the next ring always covers the currently smallest open edge,
//so a given set is only reachable while its faces keep closing each other.
//The same closed set can still be met along several orders, hence the
//dedup in record.
func (s *search) grow(st *state, seed int) {
	open, ok := st.smallestOpen(s)
	if !ok {
		if len(st.members) >= 4 {
			s.record(st.members)
		}
		return
	}
	if len(st.members) == s.maxFaces {
		return
	}
	for _, cand := range s.byEdge[open] {
		if cand <= seed || st.inSet[cand] || !st.fits(s, cand) {
			continue
		}
		st.add(s, cand)
		s.grow(st, seed)
		st.remove(s, cand)
	}
}

//smallestOpen returns the smallest edge covered by exactly one member ring.
func (st *state) smallestOpen(s *search) (edge, bool) {
	var best edge
	found := false
	for _, m := range st.members {
		for _, e := range s.edges[m] {
			if st.edgeUse[e] != 1 {
				continue
			}
			if !found || eless(e, best) {
				best = e
				found = true
			}
		}
	}
	return best, found
}

//fits reports whether the ring can join without driving any edge above two
//uses or any vertex above three rings.
func (st *state) fits(s *search, ring int) bool {
	for _, e := range s.edges[ring] {
		if st.edgeUse[e] >= 2 {
			return false
		}
	}
	for _, v := range s.rings[ring] {
		if st.vertexUse[v] >= 3 {
			return false
		}
	}
	return true
}

func (st *state) add(s *search, ring int) {
	st.members = append(st.members, ring)
	st.inSet[ring] = true
	for _, e := range s.edges[ring] {
		st.edgeUse[e]++
	}
	for _, v := range s.rings[ring] {
		st.vertexUse[v]++
	}
}

func (st *state) remove(s *search, ring int) {
	st.members = st.members[:len(st.members)-1]
	delete(st.inSet, ring)
	for _, e := range s.edges[ring] {
		st.edgeUse[e]--
	}
	for _, v := range s.rings[ring] {
		st.vertexUse[v]--
	}
}

func (s *search) record(members []int) {
	c := make([]int, len(members))
	copy(c, members)
	sort.Ints(c)
	key := fmt.Sprint(c)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.found = append(s.found, c)
}

func less(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

//CageGraph rebuilds the node graph of one cage: the union of its member
//rings' nodes and edges, on a gonum graph keeping the original node IDs.
func CageGraph(cage []int, rings [][]int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for _, ri := range cage {
		r := rings[ri]
		l := len(r)
		for i := 0; i < l; i++ {
			g.SetEdge(simple.Edge{F: simple.Node(r[i]), T: simple.Node(r[(i+1)%l])})
		}
	}
	return g
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
