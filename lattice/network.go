/*
 * network.go, part of genice-cage.
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

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"

	"github.com/genice-dev/genice-cage/v3"
)

//DefaultCutoff is the O-O distance, in nm, under which two sites are taken
//as hydrogen bonded when no explicit bond list is given.
const DefaultCutoff = 0.35

//MinImage returns the minimum image displacement from site i to site j in
//cartesian space (nm). pos holds fractional coordinates, cell the cell
//vectors as rows.
func MinImage(pos *v3.Matrix, cell *mat.Dense, i, j int) [3]float64 {
	var d [3]float64
	for k := 0; k < 3; k++ {
		v := pos.At(j, k) - pos.At(i, k)
		v -= math.Floor(v + 0.5)
		d[k] = v
	}
	return FracToCart(d, cell)
}

//FracToCart maps one fractional vector through the cell, d*cell with d as
//a row vector.
func FracToCart(d [3]float64, cell *mat.Dense) [3]float64 {
	var c [3]float64
	for k := 0; k < 3; k++ {
		c[k] = d[0]*cell.At(0, k) + d[1]*cell.At(1, k) + d[2]*cell.At(2, k)
	}
	return c
}

//Network builds the hydrogen bond graph of a set of fractional positions.
//When bonds is non-empty those pairs are used verbatim; otherwise every pair
//closer than cutoff under minimum image is connected, by the same kind of
//O(N^2) search bond assignment codes use. All N sites appear as nodes 0..N-1
//even when isolated.
func Network(pos *v3.Matrix, cell *mat.Dense, cutoff float64, bonds [][2]int) (*simple.UndirectedGraph, error) {
	n := pos.NVecs()
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	if len(bonds) > 0 {
		for _, b := range bonds {
			if b[0] < 0 || b[0] >= n || b[1] < 0 || b[1] >= n || b[0] == b[1] {
				return nil, Error{fmt.Sprintf("bond %v out of range for %d sites", b, n), []string{"Network"}}
			}
			g.SetEdge(simple.Edge{F: simple.Node(b[0]), T: simple.Node(b[1])})
		}
		return g, nil
	}
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			d := MinImage(pos, cell, i, j)
			r := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
			if r < cutoff {
				g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}
	return g, nil
}

//HBNetwork builds the hydrogen bond network of the lattice. A cutoff of 0
//or less selects DefaultCutoff.
func (L *Lattice) HBNetwork(cutoff float64) (*simple.UndirectedGraph, error) {
	g, err := Network(L.Positions, L.Cell, cutoff, L.Bonds)
	if err != nil {
		return nil, errDecorate(err, "HBNetwork")
	}
	return g, nil
}
