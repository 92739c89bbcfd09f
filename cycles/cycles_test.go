package cycles

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/genice-dev/genice-cage/v3"
)

//the cube graph: vertices are 3-bit labels, edges join labels one bit apart.
func cubeGraph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < 8; i++ {
		for _, b := range []int{1, 2, 4} {
			if j := i ^ b; i < j {
				g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}
	return g
}

func TestK4(Te *testing.T) {
	g := simple.NewUndirectedGraph()
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
		}
	}
	rings, err := Find(g, 8, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(rings) != 4 {
		Te.Errorf("K4 should have 4 rings (the triangles), got %d: %v", len(rings), rings)
	}
	for _, r := range rings {
		if len(r) != 3 {
			Te.Error("non-triangle ring in K4:", r)
		}
	}
}

func TestCube(Te *testing.T) {
	g := cubeGraph()
	squares, err := Find(g, 4, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(squares) != 6 {
		Te.Errorf("cube should have its 6 faces, got %d: %v", len(squares), squares)
	}
	if !reflect.DeepEqual(squares[0], []int{0, 1, 3, 2}) {
		Te.Error("wrong canonical first face:", squares[0])
	}
	//the four Petrie hexagons are shortest-path rings too
	all, err := Find(g, 6, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(all) != 10 {
		Te.Errorf("cube with maxSize 6 should give 6 squares + 4 hexagons, got %d", len(all))
	}
	fmt.Println("cube rings:", all)
}

func TestChordKillsHexagon(Te *testing.T) {
	g := simple.NewUndirectedGraph()
	for i := 0; i < 6; i++ {
		g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node((i + 1) % 6)})
	}
	rings, _ := Find(g, 6, nil)
	if len(rings) != 1 || len(rings[0]) != 6 {
		Te.Error("a plain 6-cycle should be one ring:", rings)
	}
	//adding the chord 0-3 shortcuts the hexagon; two 4-rings remain
	g.SetEdge(simple.Edge{F: simple.Node(0), T: simple.Node(3)})
	rings, _ = Find(g, 6, nil)
	if len(rings) != 2 {
		Te.Fatalf("hexagon with a chord should give 2 rings, got %v", rings)
	}
	for _, r := range rings {
		if len(r) != 4 {
			Te.Error("expected only 4-rings, got", r)
		}
	}
}

//a 4-cycle that only closes around the periodic boundary is not a ring.
func TestSpanningRejected(Te *testing.T) {
	g := simple.NewUndirectedGraph()
	for i := 0; i < 4; i++ {
		g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node((i + 1) % 4)})
	}
	pos, _ := v3.NewMatrix([]float64{
		0, 0.5, 0.5,
		0.25, 0.5, 0.5,
		0.5, 0.5, 0.5,
		0.75, 0.5, 0.5,
	})
	rings, err := Find(g, 8, nil)
	if err != nil || len(rings) != 1 {
		Te.Error("without positions the 4-cycle should count:", rings, err)
	}
	rings, err = Find(g, 8, pos)
	if err != nil {
		Te.Fatal(err)
	}
	if len(rings) != 0 {
		Te.Error("a cell-winding cycle survived the crossing filter:", rings)
	}
}

func TestMaxSizeError(Te *testing.T) {
	if _, err := Find(simple.NewUndirectedGraph(), 2, nil); err == nil {
		Te.Error("Expected an error for maxSize 2")
	}
}

func TestCenterOfMass(Te *testing.T) {
	pos, _ := v3.NewMatrix([]float64{
		0.1, 0.5, 0.5,
		0.9, 0.5, 0.5,
	})
	com := CenterOfMass([]int{0, 1}, pos)
	//0.9 is -0.1 away through the wall, so the center sits at 0, not 0.5
	if math.Abs(com[0]) > 1e-12 && math.Abs(com[0]-1) > 1e-12 {
		Te.Error("periodic center of mass is wrong:", com)
	}
	if com[1] != 0.5 || com[2] != 0.5 {
		Te.Error("untouched components moved:", com)
	}
}
