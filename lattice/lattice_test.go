/*
 * lattice_test.go, part of genice-cage.
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

package lattice

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"testing"

	"gonum.org/v1/gonum/graph/simple"
)

func degrees(g *simple.UndirectedGraph, n int) []int {
	d := make([]int, n)
	for i := 0; i < n; i++ {
		d[i] = g.From(int64(i)).Len()
	}
	return d
}

func TestGroupSizes(Te *testing.T) {
	if l := len(pm3nOps()); l != 48 {
		Te.Errorf("Pm-3n should have 48 operations, got %d", l)
	}
	if l := len(fd3mOps()); l != 192 {
		Te.Errorf("Fd-3m with centering should have 192 operations, got %d", l)
	}
}

func TestCatalogSizes(Te *testing.T) {
	sizes := map[string]int{"Ic": 8, "Ih": 4, "CS1": 46, "CS2": 136}
	for _, name := range Names() {
		l, err := Get(name)
		if err != nil {
			Te.Fatal(err)
		}
		if l.Len() != sizes[name] {
			Te.Errorf("%s: expected %d sites, got %d", name, sizes[name], l.Len())
		}
		fmt.Println(name, l.Len(), "sites:", l.Description)
	}
	if _, err := Get("XVII"); err == nil {
		Te.Error("Expected an error for an unknown lattice name")
	}
}

//every site of every built-in net donates/accepts four hydrogen bonds.
//Ih is replicated first: in the single cell the three lateral neighbors
//of a site collapse onto one image.
func TestCoordination(Te *testing.T) {
	for _, name := range Names() {
		l, err := Get(name)
		if err != nil {
			Te.Fatal(err)
		}
		if name == "Ih" {
			l, err = l.Replicate(2, 2, 1)
			if err != nil {
				Te.Fatal(err)
			}
		}
		g, err := l.HBNetwork(0)
		if err != nil {
			Te.Fatal(err)
		}
		for i, d := range degrees(g, l.Len()) {
			if d != 4 {
				Te.Errorf("%s site %d has degree %d, want 4", name, i, d)
			}
		}
		if e := g.Edges().Len(); e != 2*l.Len() {
			Te.Errorf("%s: %d bonds for %d sites, want %d", name, e, l.Len(), 2*l.Len())
		}
	}
}

//Ih stacks two puckered bilayers per cell along c: four distinct z levels,
//the members of a bilayer 0.125c apart.
func TestIhBilayers(Te *testing.T) {
	l, err := Get("Ih")
	if err != nil {
		Te.Fatal(err)
	}
	zs := make([]float64, l.Len())
	for i := range zs {
		zs[i] = l.Positions.At(i, 2)
	}
	sort.Float64s(zs)
	want := []float64{0, 0.375, 0.5, 0.875}
	if !reflect.DeepEqual(zs, want) {
		Te.Fatalf("Ih z levels %v, want %v", zs, want)
	}
	if zs[2]-zs[1] != 0.125 || zs[0]+1-zs[3] != 0.125 {
		Te.Error("bilayer spacing off:", zs)
	}
}

func TestReplicate(Te *testing.T) {
	ic, err := Get("Ic")
	if err != nil {
		Te.Fatal(err)
	}
	r, err := ic.Replicate(2, 2, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Len() != 64 {
		Te.Errorf("2x2x2 Ic should have 64 sites, got %d", r.Len())
	}
	for i := 0; i < r.Len(); i++ {
		for k := 0; k < 3; k++ {
			v := r.Positions.At(i, k)
			if v < 0 || v >= 1 {
				Te.Errorf("site %d coordinate %d out of [0,1): %f", i, k, v)
			}
		}
	}
	if r.Cell.At(0, 0) != 2*ic.Cell.At(0, 0) {
		Te.Error("replicated cell was not scaled")
	}
	//site s of image (i,j,k) lands at ((i*ny+j)*nz+k)*n + s
	n := ic.Len()
	idx := ((1*2+0)*2+0)*n + 0
	want := (ic.Positions.At(0, 0) + 1) / 2
	if math.Abs(r.Positions.At(idx, 0)-want) > 1e-12 {
		Te.Errorf("image (1,0,0) site 0 misplaced: %f vs %f", r.Positions.At(idx, 0), want)
	}
	if _, err := ic.Replicate(0, 1, 1); err == nil {
		Te.Error("Expected an error for replication by zero")
	}
}

const cubeYAML = `
name: cube
description: eight corners of a cube, for tests
cell:
  a: 0.8
  b: 0.8
  c: 0.8
positions:
  - [0.375, 0.375, 0.375]
  - [0.625, 0.375, 0.375]
  - [0.375, 0.625, 0.375]
  - [0.625, 0.625, 0.375]
  - [0.375, 0.375, 0.625]
  - [0.625, 0.375, 0.625]
  - [0.375, 0.625, 0.625]
  - [0.625, 0.625, 0.625]
`

func TestParseYAML(Te *testing.T) {
	l, err := Parse(strings.NewReader(cubeYAML))
	if err != nil {
		Te.Fatal(err)
	}
	if l.Name != "cube" || l.Len() != 8 {
		Te.Errorf("bad parse: name %q, %d sites", l.Name, l.Len())
	}
	if l.Cell.At(0, 0) != 0.8 || l.Cell.At(1, 0) != 0 || l.Cell.At(1, 1) != 0.8 {
		Te.Error("angles omitted should give an exactly diagonal cell", l.Cell)
	}
	g, err := l.HBNetwork(0.25)
	if err != nil {
		Te.Fatal(err)
	}
	for i, d := range degrees(g, 8) {
		if d != 3 {
			Te.Errorf("cube corner %d has degree %d, want 3", i, d)
		}
	}
}

func TestParseYAMLMatrixAndBonds(Te *testing.T) {
	doc := `
name: triangle
cell:
  matrix: [1, 0, 0, 0, 1, 0, 0, 0, 1]
positions:
  - [0.1, 0.1, 0.1]
  - [0.9, 0.1, 0.1]
  - [0.5, 0.8, 0.1]
bonds:
  - [0, 1]
  - [1, 2]
  - [2, 0]
`
	l, err := Parse(strings.NewReader(doc))
	if err != nil {
		Te.Fatal(err)
	}
	g, err := l.HBNetwork(0)
	if err != nil {
		Te.Fatal(err)
	}
	if g.Edges().Len() != 3 {
		Te.Error("explicit bonds were not honored")
	}
	if !g.HasEdgeBetween(0, 1) || !g.HasEdgeBetween(2, 0) {
		Te.Error("wrong explicit edges in the network")
	}
}

func TestParseYAMLErrors(Te *testing.T) {
	bad := []string{
		"name: empty\ncell:\n  a: 1\n  b: 1\n  c: 1\n",
		"name: badbond\ncell:\n  a: 1\n  b: 1\n  c: 1\npositions:\n  - [0.5, 0.5, 0.5]\nbonds:\n  - [0]\n",
		"name: flatcell\ncell:\n  matrix: [1, 0, 0, 2, 0, 0, 0, 0, 1]\npositions:\n  - [0.5, 0.5, 0.5]\n",
	}
	for i, doc := range bad {
		if _, err := Parse(strings.NewReader(doc)); err == nil {
			Te.Errorf("document %d should not parse", i)
		} else {
			fmt.Println("expected failure:", err)
		}
	}
}

func TestMinImage(Te *testing.T) {
	cube, err := Parse(strings.NewReader(cubeYAML))
	if err != nil {
		Te.Fatal(err)
	}
	one := MinImage(cube.Positions, cube.Cell, 0, 1)
	if one[0] != 0.25*0.8 || one[1] != 0 || one[2] != 0 {
		Te.Error("wrong in-cell displacement", one)
	}
	//a separation of 0.75 cells must come back as -0.25 through the wall
	doc := `
name: pair
cell:
  a: 1
  b: 1
  c: 1
positions:
  - [0.1, 0.5, 0.5]
  - [0.85, 0.5, 0.5]
`
	pair, err := Parse(strings.NewReader(doc))
	if err != nil {
		Te.Fatal(err)
	}
	d := MinImage(pair.Positions, pair.Cell, 0, 1)
	if math.Abs(d[0]+0.25) > 1e-12 || d[1] != 0 || d[2] != 0 {
		Te.Error("wrong wrapped displacement", d)
	}
}
