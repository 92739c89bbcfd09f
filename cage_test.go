/*
 * cage_test.go, part of genice-cage.
 *
 * Copyright 2024 Masakazu Matsumoto <vitroid@gmail.com>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cage

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"

	"github.com/genice-dev/genice-cage/lattice"
	"github.com/genice-dev/genice-cage/v3"
)

var update = flag.Bool("update", false, "rewrite the golden files under ref/")

//a cube of 8 sites in a 1 nm cell. The corners sit at 0.375/0.625 so that
//no bond lands on exactly half a cell and every minimum image is
//unambiguous. Node i has coordinates given by its bits: x=bit0, y=bit1,
//z=bit2.
func cubeStructure() *Structure {
	data := make([]float64, 0, 24)
	g := simple.NewUndirectedGraph()
	for i := 0; i < 8; i++ {
		for k := 0; k < 3; k++ {
			data = append(data, 0.375+0.25*float64((i>>k)&1))
		}
		for _, b := range []int{1, 2, 4} {
			if j := i ^ b; i < j {
				g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}
	pos, _ := v3.NewMatrix(data)
	return &Structure{
		Name:       "cube",
		Cell:       mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}),
		Fractional: pos,
		Graph:      g,
	}
}

//cube options: rings are pinned to 4-gons because the Petrie hexagons of
//the cube are shortest-path rings too and would form a second
//quasi-polyhedron.
func cubeOptions(Te *testing.T, extra ...string) *Options {
	opt, err := ParseOptions(append([]string{"4-10", "maxring=4"}, extra...))
	if err != nil {
		Te.Fatal(err)
	}
	return opt
}

func TestCubeAnalysis(Te *testing.T) {
	st := cubeStructure()
	R, err := Analyze(st, cubeOptions(Te))
	if err != nil {
		Te.Fatal(err)
	}
	if len(R.Rings) != 6 {
		Te.Fatalf("cube should have its 6 faces as rings, got %d", len(R.Rings))
	}
	if len(R.Cages) != 1 || len(R.Cages[0]) != 6 {
		Te.Fatalf("cube should be one 6-hedron, got %v", R.Cages)
	}
	for k := 0; k < 3; k++ {
		if R.CagePos.At(0, k) != 0.5 {
			Te.Error("cage center is off:", R.CagePos)
		}
	}
	if s := R.Signature(0); s != "4^6" {
		Te.Error("wrong signature:", s)
	}
	if nodes := R.Nodes(0); len(nodes) != 8 || nodes[0] != 0 || nodes[7] != 7 {
		Te.Error("wrong member nodes:", nodes)
	}
	fmt.Println("cube cage:", R.Cages[0], "at", R.CagePos.At(0, 0), R.CagePos.At(0, 1), R.CagePos.At(0, 2))
}

func golden(Te *testing.T, name string, got []byte) {
	Te.Helper()
	path := filepath.Join("ref", name)
	if *update {
		if err := os.WriteFile(path, got, 0644); err != nil {
			Te.Fatal(err)
		}
	}
	want, err := os.ReadFile(path)
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		Te.Errorf("%s differs from its reference (-ref +got):\n%s", name, diff)
	}
}

func TestCubeGoldens(Te *testing.T) {
	st := cubeStructure()
	R, err := Analyze(st, cubeOptions(Te))
	if err != nil {
		Te.Fatal(err)
	}
	emit := map[string]func(*bytes.Buffer) error{
		"cube.cage":        func(b *bytes.Buffer) error { return R.EmitPlain(b) },
		"cube.cage.json":   func(b *bytes.Buffer) error { return R.EmitJSON(b) },
		"cube.cage.json2":  func(b *bytes.Buffer) error { return R.EmitJSON2(b, cubeOptions(Te)) },
		"cube.cage.python": func(b *bytes.Buffer) error { return R.EmitPython(b, cubeOptions(Te)) },
		"cube.cage.yaplot": func(b *bytes.Buffer) error { return R.EmitYaplot(b) },
		"cube.cage.solid":  func(b *bytes.Buffer) error { return R.EmitSolid(b) },
		"cube.cage.gro":    func(b *bytes.Buffer) error { return R.EmitGromacs(b, "") },
	}
	for name, f := range emit {
		var b bytes.Buffer
		if err := f(&b); err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		golden(Te, name, b.Bytes())
	}
}

//quad on the cube: no 12..16-hedra exist, so every cage node carries the
//"0000" order parameter.
func TestCubeQuad(Te *testing.T) {
	st := cubeStructure()
	R, err := Analyze(st, cubeOptions(Te))
	if err != nil {
		Te.Fatal(err)
	}
	var b bytes.Buffer
	if err := R.EmitQuad(&b, false); err != nil {
		Te.Fatal(err)
	}
	want := "0 0000\n1 0000\n2 0000\n3 0000\n4 0000\n5 0000\n6 0000\n7 0000\n# Statistics\n0000 1.0 8/8\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		Te.Errorf("quad output differs:\n%s", diff)
	}
}

func sizeCensus(Te *testing.T, R *Result) map[int]int {
	Te.Helper()
	out := make(map[int]int)
	for _, cage := range R.Cages {
		out[len(cage)]++
	}
	return out
}

//the structure I clathrate framework: 2 pentagonal dodecahedra and
//6 tetrakaidecahedra per unit cell. The cell is replicated as in the
//original regression case, since a single cell would let weird
//cell-spanning cages through.
func TestCS1Census(Te *testing.T) {
	if testing.Short() {
		Te.Skip("ring census of a replicated cell")
	}
	l, err := lattice.Get("CS1")
	if err != nil {
		Te.Fatal(err)
	}
	l, err = l.Replicate(2, 2, 2)
	if err != nil {
		Te.Fatal(err)
	}
	st, err := FromLattice(l, 0)
	if err != nil {
		Te.Fatal(err)
	}
	opt, err := ParseOptions([]string{"12,14-16", "maxring=6"})
	if err != nil {
		Te.Fatal(err)
	}
	R, err := Analyze(st, opt)
	if err != nil {
		Te.Fatal(err)
	}
	got := sizeCensus(Te, R)
	if got[12] != 16 || got[14] != 48 || len(R.Cages) != 64 {
		Te.Errorf("CS1 2x2x2 should hold 16 12-hedra and 48 14-hedra, got %v", got)
	}
	for c := range R.Cages {
		s := R.Signature(c)
		if s != "5^12" && s != "5^12 6^2" {
			Te.Error("unexpected cage type in CS1:", s)
		}
	}
	fmt.Println("CS1 2x2x2 census:", got)
}

//structure II: 16 dodecahedra and 8 hexakaidecahedra per cell. A single
//cell is big enough here, as in the original regression case.
func TestCS2Census(Te *testing.T) {
	if testing.Short() {
		Te.Skip("ring census of a 136-water cell")
	}
	l, err := lattice.Get("CS2")
	if err != nil {
		Te.Fatal(err)
	}
	st, err := FromLattice(l, 0)
	if err != nil {
		Te.Fatal(err)
	}
	opt, err := ParseOptions([]string{"12,14-16", "maxring=6"})
	if err != nil {
		Te.Fatal(err)
	}
	R, err := Analyze(st, opt)
	if err != nil {
		Te.Fatal(err)
	}
	got := sizeCensus(Te, R)
	if got[12] != 16 || got[16] != 8 || len(R.Cages) != 24 {
		Te.Errorf("CS2 should hold 16 12-hedra and 8 16-hedra, got %v", got)
	}
}

//a size list capped at 3 admits no closed polyhedron: the census comes back
//empty, the rings still count, and nothing errors.
func TestTriangleSizeBound(Te *testing.T) {
	st := cubeStructure()
	opt, err := ParseOptions([]string{"3", "maxring=4"})
	if err != nil {
		Te.Fatal(err)
	}
	R, err := Analyze(st, opt)
	if err != nil {
		Te.Fatal(err)
	}
	if len(R.Rings) != 6 {
		Te.Error("rings should still be counted:", len(R.Rings))
	}
	if len(R.Cages) != 0 || R.CagePos != nil {
		Te.Error("sizes {3} produced cages:", R.Cages)
	}
}

//an empty result is not an error anywhere in the pipeline.
func TestNoCages(Te *testing.T) {
	g := simple.NewUndirectedGraph()
	g.SetEdge(simple.Edge{F: simple.Node(0), T: simple.Node(1)})
	pos, _ := v3.NewMatrix([]float64{0.25, 0.25, 0.25, 0.5, 0.5, 0.5})
	st := &Structure{
		Name:       "pair",
		Cell:       mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}),
		Fractional: pos,
		Graph:      g,
	}
	opt, err := ParseOptions(nil)
	if err != nil {
		Te.Fatal(err)
	}
	R, err := Analyze(st, opt)
	if err != nil {
		Te.Fatal(err)
	}
	if len(R.Rings) != 0 || len(R.Cages) != 0 {
		Te.Error("a lone bond produced rings or cages:", R.Rings, R.Cages)
	}
	var b bytes.Buffer
	if err := R.EmitJSON2(&b, opt); err != nil {
		Te.Fatal(err)
	}
	want := "No cages detected.\n{\n  \"Cages\": 0,\n  \"Rings\": 0,\n  \"details\": {}\n}\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		Te.Errorf("empty json2 report differs:\n%s", diff)
	}
}
