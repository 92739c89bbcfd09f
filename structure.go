/*
 * structure.go, part of genice-cage.
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

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/mat"

	"github.com/genice-dev/genice-cage/gro"
	"github.com/genice-dev/genice-cage/lattice"
	"github.com/genice-dev/genice-cage/v3"
)

//DefaultOxygen is the atom name used to pick the water oxygens out of a
//coordinate file.
const DefaultOxygen = "OW"

//Structure is the input of an analysis: the hydrogen bond network of a set
//of water oxygens in a periodic cell. Fractional holds one row per O site,
//wrapped into [0,1); the graph nodes are the dense range 0..N-1 in the same
//order. When the structure came from a coordinate file, the file is kept so
//the gromacs output can emit whole residues.
type Structure struct {
	Name       string
	Cell       *mat.Dense
	Fractional *v3.Matrix
	Graph      graph.Undirected
	//set only by FromGro
	src     *gro.File
	siteRes []int //residue of each O site, index into src.Residues()
}

//Len returns the number of O sites.
func (S *Structure) Len() int {
	return S.Fractional.NVecs()
}

//FromLattice builds the analysis input from a unit cell, normally one from
//the built-in catalog replicated a few times. A cutoff of 0 or less selects
//the default O-O bond distance.
func FromLattice(l *lattice.Lattice, cutoff float64) (*Structure, error) {
	g, err := l.HBNetwork(cutoff)
	if err != nil {
		return nil, errDecorate(err, "FromLattice")
	}
	return &Structure{
		Name:       l.Name,
		Cell:       l.Cell,
		Fractional: l.Positions,
		Graph:      g,
	}, nil
}

//FromGro builds the analysis input from a Gromacs coordinate file,
//possibly gzip or zstd compressed. Only atoms named oxygen (DefaultOxygen
//when empty) become network sites; their cartesian coordinates are taken
//through the inverse cell to fractional space. The file itself is retained
//for the gromacs output mode.
func FromGro(path, oxygen string, cutoff float64) (*Structure, error) {
	if oxygen == "" {
		oxygen = DefaultOxygen
	}
	f, err := gro.Read(path)
	if err != nil {
		return nil, errDecorate(err, "FromGro")
	}
	var inv mat.Dense
	if err := inv.Inverse(f.Box); err != nil {
		return nil, &CError{fmt.Sprintf("FromGro: cell of %s is singular: %v", path, err), []string{"FromGro"}}
	}
	residues := f.Residues()
	resOf := make([]int, f.Len())
	for ri, res := range residues {
		for _, a := range res {
			resOf[a] = ri
		}
	}
	var sites []int
	for i, at := range f.Atoms {
		if at.Name == oxygen {
			sites = append(sites, i)
		}
	}
	if len(sites) == 0 {
		return nil, &CError{fmt.Sprintf("no atoms named %q in %s", oxygen, path), []string{"FromGro"}}
	}
	pos := v3.Zeros(len(sites))
	siteRes := make([]int, len(sites))
	for s, i := range sites {
		siteRes[s] = resOf[i]
		for k := 0; k < 3; k++ {
			v := f.Coords.At(i, 0)*inv.At(0, k) +
				f.Coords.At(i, 1)*inv.At(1, k) +
				f.Coords.At(i, 2)*inv.At(2, k)
			pos.Set(s, k, v-math.Floor(v))
		}
	}
	g, err := lattice.Network(pos, f.Box, cutoff, nil)
	if err != nil {
		return nil, errDecorate(err, "FromGro")
	}
	return &Structure{
		Name:       f.Title,
		Cell:       f.Box,
		Fractional: pos,
		Graph:      g,
		src:        f,
		siteRes:    siteRes,
	}, nil
}

//Cartesian maps one fractional vector through the cell.
func (S *Structure) Cartesian(f [3]float64) [3]float64 {
	return lattice.FracToCart(f, S.Cell)
}
