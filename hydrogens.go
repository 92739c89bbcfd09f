/*
 * hydrogens.go, part of genice-cage.
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
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"

	"github.com/genice-dev/genice-cage/lattice"
)

//WaterModel holds the geometry the gromacs output needs to dress an O site
//as a whole molecule. Distances are in nm. ROM is the O-M distance of
//4-site models and 0 otherwise.
type WaterModel struct {
	Name string
	ROH  float64
	ROM  float64
}

var waterModels = map[string]WaterModel{
	"spce":  {Name: "spce", ROH: 0.1},
	"tip3p": {Name: "tip3p", ROH: 0.09572},
	"tip4p": {Name: "tip4p", ROH: 0.09572, ROM: 0.015},
}

//LookupWater returns the named water model.
func LookupWater(name string) (WaterModel, error) {
	m, ok := waterModels[name]
	if !ok {
		return WaterModel{}, &CError{fmt.Sprintf("unknown water model %q (have: %s)", name, strings.Join(WaterModels(), ", ")), []string{"LookupWater"}}
	}
	return m, nil
}

//WaterModels returns the names of the known water models, sorted.
func WaterModels() []string {
	names := make([]string, 0, len(waterModels))
	for k := range waterModels {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//OrientBonds turns the undirected HB network into donor-acceptor pairs
//obeying the Bernal-Fowler ice rule: the edges are decomposed into trails,
//each walked in one direction, so every even-degree node donates exactly
//half of its bonds. A 4-coordinated water thus gets its two donated and two
//accepted bonds. Odd-degree defect nodes end up within one bond of half.
//The returned slice lists, per node, the neighbors it donates to, in the
//deterministic order the walk met them. No dipole optimization is done.
func OrientBonds(g graph.Undirected) [][]int {
	adj := adjacency(g)
	n := len(adj)
	rem := make([]int, n)
	for i := range adj {
		rem[i] = len(adj[i])
	}
	used := make(map[[2]int]bool)
	donates := make([][]int, n)
	walk := func(start int) {
		cur := start
		for {
			next := -1
			for _, nb := range adj[cur] {
				e := mkpair(cur, nb)
				if !used[e] {
					next = nb
					used[e] = true
					break
				}
			}
			if next < 0 {
				return
			}
			donates[cur] = append(donates[cur], next)
			rem[cur]--
			rem[next]--
			cur = next
		}
	}
	//trails between defect nodes first, so that the leftover graph is all
	//even and decomposes into closed circuits
	for i := 0; i < n; i++ {
		for rem[i]%2 == 1 {
			walk(i)
		}
	}
	for i := 0; i < n; i++ {
		for rem[i] > 0 {
			walk(i)
		}
	}
	return donates
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

func mkpair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

//molecule is one residue ready for the gromacs output: parallel name and
//cartesian coordinate lists.
type molecule struct {
	resname string
	names   []string
	coords  [][3]float64
}

//waterMolecules dresses every O site of the structure as one water
//molecule of the given model: OW at the site, HW1 and HW2 along the two
//donated bond directions at ROH, and MW on their bisector for 4-site
//models. Molecule i belongs to node i.
func waterMolecules(st *Structure, model WaterModel) []molecule {
	donates := OrientBonds(st.Graph)
	mols := make([]molecule, st.Len())
	for i := range mols {
		o := st.Cartesian([3]float64{st.Fractional.At(i, 0), st.Fractional.At(i, 1), st.Fractional.At(i, 2)})
		m := molecule{resname: "SOL", names: []string{"OW"}, coords: [][3]float64{o}}
		var bisect [3]float64
		for h, nb := range donates[i] {
			u := unitTo(st, i, nb)
			var hw [3]float64
			for k := 0; k < 3; k++ {
				hw[k] = o[k] + model.ROH*u[k]
				bisect[k] += u[k]
			}
			m.names = append(m.names, fmt.Sprintf("HW%d", h+1))
			m.coords = append(m.coords, hw)
		}
		if model.ROM > 0 && len(donates[i]) > 0 {
			norm := math.Sqrt(bisect[0]*bisect[0] + bisect[1]*bisect[1] + bisect[2]*bisect[2])
			if norm > 0 {
				var mw [3]float64
				for k := 0; k < 3; k++ {
					mw[k] = o[k] + model.ROM*bisect[k]/norm
				}
				m.names = append(m.names, "MW")
				m.coords = append(m.coords, mw)
			}
		}
		mols[i] = m
	}
	return mols
}

//unitTo returns the unit vector from site i toward the minimum image of
//site j, in cartesian space.
func unitTo(st *Structure, i, j int) [3]float64 {
	d := lattice.MinImage(st.Fractional, st.Cell, i, j)
	norm := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	if norm == 0 {
		return d
	}
	for k := 0; k < 3; k++ {
		d[k] /= norm
	}
	return d
}
