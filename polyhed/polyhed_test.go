package polyhed

import (
	"fmt"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/genice-dev/genice-cage/cycles"
)

var cubeFaces = [][]int{
	{0, 1, 3, 2},
	{4, 5, 7, 6},
	{0, 1, 5, 4},
	{2, 3, 7, 6},
	{0, 2, 6, 4},
	{1, 3, 7, 5},
}

func TestCube(Te *testing.T) {
	cages, err := Find(cubeFaces, 16)
	if err != nil {
		Te.Fatal(err)
	}
	if len(cages) != 1 || !reflect.DeepEqual(cages[0], []int{0, 1, 2, 3, 4, 5}) {
		Te.Error("the six faces of a cube should close into one cage:", cages)
	}
}

//the dodecahedral graph in LCF notation: a 20-cycle plus chords.
var dodecaLCF = []int{10, 7, 4, -4, -7, 10, -4, 7, -7, 4}

func dodecahedron() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < 20; i++ {
		g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node((i + 1) % 20)})
		if j := (i + dodecaLCF[i%10] + 20) % 20; i < j {
			g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
		}
	}
	return g
}

func TestDodecahedron(Te *testing.T) {
	rings, err := cycles.Find(dodecahedron(), 5, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(rings) != 12 {
		Te.Fatalf("a dodecahedron has 12 pentagonal rings, got %d", len(rings))
	}
	cages, err := Find(rings, 12)
	if err != nil {
		Te.Fatal(err)
	}
	if len(cages) != 1 || len(cages[0]) != 12 {
		Te.Error("the 12 pentagons should close into one cage:", cages)
	}
	//one face short of the full count, nothing can close
	cages, err = Find(rings, 11)
	if err != nil {
		Te.Fatal(err)
	}
	if len(cages) != 0 {
		Te.Error("no cage should fit in 11 faces:", cages)
	}
}

//two cubes sharing a face: both cubes count, their outer shell does not
//(its corners would sit in four rings).
func TestFusedCubes(Te *testing.T) {
	rings := [][]int{
		{0, 1, 3, 2},
		{4, 5, 7, 6}, //the shared face
		{0, 1, 5, 4},
		{2, 3, 7, 6},
		{0, 2, 6, 4},
		{1, 3, 7, 5},
		{8, 9, 11, 10},
		{4, 5, 9, 8},
		{6, 7, 11, 10},
		{4, 6, 10, 8},
		{5, 7, 11, 9},
	}
	cages, err := Find(rings, 16)
	if err != nil {
		Te.Fatal(err)
	}
	want := [][]int{
		{0, 1, 2, 3, 4, 5},
		{1, 6, 7, 8, 9, 10},
	}
	if !reflect.DeepEqual(cages, want) {
		Te.Error("fused cubes miscounted:", cages)
	}
}

//adamantane: four chair hexagons, every edge in exactly two of them.
//The smallest possible cage.
func TestAdamantane(Te *testing.T) {
	rings := [][]int{
		{0, 4, 1, 7, 2, 5},
		{0, 4, 1, 8, 3, 6},
		{0, 5, 2, 9, 3, 6},
		{1, 7, 2, 9, 3, 8},
	}
	cages, err := Find(rings, 16)
	if err != nil {
		Te.Fatal(err)
	}
	if len(cages) != 1 || !reflect.DeepEqual(cages[0], []int{0, 1, 2, 3}) {
		Te.Error("adamantane should be one 4-hedron:", cages)
	}
	fmt.Println("adamantane cage:", cages)
}

func TestCageGraph(Te *testing.T) {
	g := CageGraph([]int{0, 1, 2, 3, 4, 5}, cubeFaces)
	if n := g.Nodes().Len(); n != 8 {
		Te.Errorf("cube cage graph should have 8 nodes, got %d", n)
	}
	if e := g.Edges().Len(); e != 12 {
		Te.Errorf("cube cage graph should have 12 edges, got %d", e)
	}
	if !g.HasEdgeBetween(0, 1) || g.HasEdgeBetween(0, 7) {
		Te.Error("cage graph has wrong adjacency")
	}
}

func TestMaxFacesError(Te *testing.T) {
	if _, err := Find(nil, 3); err == nil {
		Te.Error("Expected an error for maxFaces 3")
	}
}
