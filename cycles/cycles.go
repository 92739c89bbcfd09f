//Package cycles enumerates the shortest-path rings of a graph, after
//D.S. Franzblau, Phys. Rev. B 44, 4925 (1991). A cycle is a ring when, for
//every pair of its members, the distance along the cycle equals the distance
//in the whole graph; such rings are the chordless, shortcut-free circuits
//that ice physics counts. With fractional positions given, cycles that wind
//around the periodic cell are discarded.
package cycles

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"

	"github.com/genice-dev/genice-cage/v3"
)

type finder struct {
	adj   [][]int
	max   int
	pos   *v3.Matrix
	dist  map[int][]int
	found [][]int
}

//Find returns every shortest-path ring of g with size 3..maxSize, each as a
//canonical node slice (smallest member first, then its smaller ring
//neighbor), the whole list sorted lexicographically. pos, when not nil,
//holds fractional coordinates used to reject rings spanning the periodic
//cell. Node IDs must be the dense range 0..N-1.
func Find(g graph.Undirected, maxSize int, pos *v3.Matrix) ([][]int, error) {
	if maxSize < 3 {
		return nil, Error{fmt.Sprintf("max ring size %d: a ring needs at least 3 members", maxSize), []string{"Find"}}
	}
	f := &finder{adj: adjacency(g), max: maxSize, pos: pos, dist: make(map[int][]int)}
	n := len(f.adj)
	onpath := make([]bool, n)
	for root := 0; root < n; root++ {
		onpath[root] = true
		f.extend([]int{root}, onpath)
		onpath[root] = false
	}
	sort.Slice(f.found, func(i, j int) bool { return less(f.found[i], f.found[j]) })
	return f.found, nil
}

//adjacency flattens g into sorted neighbor lists indexed by node ID.
func adjacency(g graph.Undirected) [][]int {
	nodes := g.Nodes()
	n := 0
	for nodes.Next() {
		if id := int(nodes.Node().ID()); id+1 > n {
			n = id + 1
		}
	}
	adj := make([][]int, n)
	nodes.Reset()
	for nodes.Next() {
		id := int(nodes.Node().ID())
		to := g.From(int64(id))
		for to.Next() {
			adj[id] = append(adj[id], int(to.Node().ID()))
		}
		sort.Ints(adj[id])
	}
	return adj
}

//extend grows a path rooted at its first element. Only nodes larger than
//the root may join, so each cycle is visited from its smallest member
//only; the closing condition path[1] < last keeps one of the two
//directions. Backtracking reuses the path slice, record copies.
func (f *finder) extend(path []int, onpath []bool) {
	last := path[len(path)-1]
	root := path[0]
	for _, nb := range f.adj[last] {
		if nb == root && len(path) >= 3 && path[1] < last {
			f.record(path)
		}
		if nb <= root || onpath[nb] || len(path) == f.max {
			continue
		}
		onpath[nb] = true
		f.extend(append(path, nb), onpath)
		onpath[nb] = false
	}
}

func (f *finder) record(path []int) {
	if !f.shortestPath(path) {
		return
	}
	if f.pos != nil && f.winds(path) {
		return
	}
	c := make([]int, len(path))
	copy(c, path)
	f.found = append(f.found, c)
}

//shortestPath reports whether the cycle has no shortcut through the rest of
//the graph: for every pair of members the along-cycle distance must equal
//the graph distance.
func (f *finder) shortestPath(cycle []int) bool {
	l := len(cycle)
	for i := 0; i < l; i++ {
		di := f.distances(cycle[i])
		for j := i + 1; j < l; j++ {
			along := j - i
			if l-along < along {
				along = l - along
			}
			if di[cycle[j]] < along {
				return false
			}
		}
	}
	return true
}

//distances runs a BFS from the given node, memoized across cycles.
func (f *finder) distances(from int) []int {
	if d, ok := f.dist[from]; ok {
		return d
	}
	n := len(f.adj)
	d := make([]int, n)
	for i := range d {
		d[i] = n + 1
	}
	d[from] = 0
	queue := []int{from}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, nb := range f.adj[v] {
			if d[nb] > d[v]+1 {
				d[nb] = d[v] + 1
				queue = append(queue, nb)
			}
		}
	}
	f.dist[from] = d
	return d
}

//winds reports whether the summed minimum-image displacements along the
//cycle fail to return to the starting cell, i.e. the cycle is closed only
//through the periodic boundary.
func (f *finder) winds(cycle []int) bool {
	var cross [3]int
	for i := range cycle {
		a := cycle[i]
		b := cycle[(i+1)%len(cycle)]
		for k := 0; k < 3; k++ {
			d := f.pos.At(b, k) - f.pos.At(a, k)
			cross[k] += int(math.Floor(d + 0.5))
		}
	}
	return cross[0] != 0 || cross[1] != 0 || cross[2] != 0
}

//CenterOfMass returns the periodic center of the given members in
//fractional coordinates: minimum-image displacements accumulated from the
//first member, the average added to it, and the result wrapped into the
//cell.
func CenterOfMass(members []int, pos *v3.Matrix) [3]float64 {
	var com [3]float64
	if len(members) == 0 {
		return com
	}
	origin := members[0]
	var dsum [3]float64
	for _, m := range members {
		for k := 0; k < 3; k++ {
			d := pos.At(m, k) - pos.At(origin, k)
			d -= math.Floor(d + 0.5)
			dsum[k] += d
		}
	}
	for k := 0; k < 3; k++ {
		com[k] = pos.At(origin, k) + dsum[k]/float64(len(members))
		com[k] -= math.Floor(com[k])
	}
	return com
}

func less(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
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
