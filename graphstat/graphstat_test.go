package graphstat

import (
	"fmt"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/graph/simple"
)

func ugraph(edges [][2]int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for _, e := range edges {
		g.SetEdge(simple.Edge{F: simple.Node(e[0]), T: simple.Node(e[1])})
	}
	return g
}

func cube(shift int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < 8; i++ {
		for _, b := range []int{1, 2, 4} {
			if j := i ^ b; i < j {
				g.SetEdge(simple.Edge{F: simple.Node(i + shift), T: simple.Node(j + shift)})
			}
		}
	}
	return g
}

func k4() *simple.UndirectedGraph {
	return ugraph([][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
}

//3-regular on 6 nodes both, but one has triangles and the other is
//bipartite; the invariants cannot tell them apart, the matcher must.
func prism() *simple.UndirectedGraph {
	return ugraph([][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}, {0, 3}, {1, 4}, {2, 5}})
}

func k33() *simple.UndirectedGraph {
	return ugraph([][2]int{{0, 3}, {0, 4}, {0, 5}, {1, 3}, {1, 4}, {1, 5}, {2, 3}, {2, 4}, {2, 5}})
}

func TestQueryRegister(Te *testing.T) {
	db := New()
	if id := db.Query(cube(0)); id != -1 {
		Te.Error("an empty census knew the cube:", id)
	}
	if id := db.Register(); id != 0 {
		Te.Error("first class should get id 0, got", id)
	}
	if id := db.Query(k4()); id != -1 {
		Te.Error("census confused K4 with the cube:", id)
	}
	if id := db.Register(); id != 1 {
		Te.Error("second class should get id 1, got", id)
	}
	//node labels must not matter
	if id := db.Query(cube(100)); id != 0 {
		Te.Error("relabeled cube not recognized, got id", id)
	}
	if db.Len() != 2 {
		Te.Error("wrong class count:", db.Len())
	}
	if id := db.Register(); id != -1 {
		Te.Error("Register after a successful Query should refuse, got", id)
	}
}

func TestSameInvariantsDifferentGraphs(Te *testing.T) {
	db := New()
	db.Query(prism())
	db.Register()
	if id := db.Query(k33()); id != -1 {
		Te.Error("K3,3 matched the prism, the matcher is broken")
	}
	db.Register()
	if db.Len() != 2 {
		Te.Error("prism and K3,3 should be two classes")
	}
	fmt.Println("prism vs K3,3 distinguished")
}

func TestSqliteRoundtrip(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "census.db")
	db, err := OpenDB(path)
	if err != nil {
		Te.Fatal(err)
	}
	id, err := db.Query(cube(0))
	if err != nil {
		Te.Fatal(err)
	}
	if id != -1 {
		Te.Error("fresh database knew the cube:", id)
	}
	first, err := db.Register()
	if err != nil {
		Te.Fatal(err)
	}
	if err := db.Close(); err != nil {
		Te.Fatal(err)
	}
	//reopen: the id must be stable and new graphs must still be new
	db, err = OpenDB(path)
	if err != nil {
		Te.Fatal(err)
	}
	defer db.Close()
	id, err = db.Query(cube(3))
	if err != nil {
		Te.Fatal(err)
	}
	if id != first {
		Te.Errorf("stored cube id changed across runs: %d vs %d", id, first)
	}
	if id, _ := db.Query(k33()); id != -1 {
		Te.Error("reopened database hallucinated K3,3:", id)
	}
	if _, err := db.Register(); err != nil {
		Te.Fatal(err)
	}
	if n, _ := db.Len(); n != 2 {
		Te.Error("wrong stored class count:", n)
	}
}
