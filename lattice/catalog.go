/*
 * catalog.go, part of genice-cage.
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
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/genice-dev/genice-cage/v3"
)

func cubicCell(a float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{a, 0, 0, 0, a, 0, 0, 0, a})
}

func hexagonalCell(a, c float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{a, 0, 0, -a / 2, a * math.Sqrt(3) / 2, 0, 0, 0, c})
}

func fromOrbits(ops []symop, seeds [][3]float64) *v3.Matrix {
	var all [][3]float64
	for _, s := range seeds {
		all = append(all, orbit(ops, s)...)
	}
	pos := v3.Zeros(len(all))
	for i, p := range all {
		pos.Set(i, 0, p[0])
		pos.Set(i, 1, p[1])
		pos.Set(i, 2, p[2])
	}
	return pos
}

//Ic: the diamond net, Fd-3m 8a. The cell length puts the O-O distance at
//a*sqrt(3)/4 = 0.276 nm.
func newIc() *Lattice {
	const a = 0.6375
	return &Lattice{
		Name:        "Ic",
		Description: "cubic ice, 8 waters per cell",
		Citation:    "Koenig, Z. Kristallogr. 105, 279 (1944)",
		Cell:        cubicCell(a),
		Positions:   fromOrbits(fd3mOps(), [][3]float64{{0.125, 0.125, 0.125}}),
	}
}

//Ih: the lonsdaleite net in the hexagonal cell. c/a = sqrt(8/3) keeps the
//four bonds equal at 0.276 nm.
func newIh() *Lattice {
	const (
		a = 0.4506
		c = 0.7358
	)
	pos, _ := v3.NewMatrix([]float64{
		1.0 / 3.0, 2.0 / 3.0, 0,
		2.0 / 3.0, 1.0 / 3.0, 0.5,
		1.0 / 3.0, 2.0 / 3.0, 0.375,
		2.0 / 3.0, 1.0 / 3.0, 0.875,
	})
	return &Lattice{
		Name:        "Ih",
		Description: "hexagonal ice, 4 waters per cell",
		Citation:    "Bernal and Fowler, J. Chem. Phys. 1, 515 (1933)",
		Cell:        hexagonalCell(a, c),
		Positions:   pos,
	}
}

//CS1: the structure I hydrate framework, Pm-3n 6c+16i+24k.
func newCS1() *Lattice {
	const (
		a    = 1.2030
		x16i = 0.1839
		y24k = 0.3091
		z24k = 0.1173
	)
	return &Lattice{
		Name:        "CS1",
		Description: "structure I clathrate hydrate framework, 46 waters per cell",
		Citation:    "McMullan and Jeffrey, J. Chem. Phys. 42, 2725 (1965)",
		Cell:        cubicCell(a),
		Positions: fromOrbits(pm3nOps(), [][3]float64{
			{0.25, 0, 0.5},
			{x16i, x16i, x16i},
			{0, y24k, z24k},
		}),
	}
}

//CS2: the structure II hydrate framework, Fd-3m 8a+32e+96g (origin choice 2).
func newCS2() *Lattice {
	const (
		a    = 1.7310
		x32e = 0.2177
		x96g = 0.1823
		z96g = 0.3717
	)
	return &Lattice{
		Name:        "CS2",
		Description: "structure II clathrate hydrate framework, 136 waters per cell",
		Citation:    "Mak and McMullan, J. Chem. Phys. 42, 2732 (1965)",
		Cell:        cubicCell(a),
		Positions: fromOrbits(fd3mOps(), [][3]float64{
			{0.125, 0.125, 0.125},
			{x32e, x32e, x32e},
			{x96g, x96g, z96g},
		}),
	}
}

var builders = map[string]func() *Lattice{
	"CS1": newCS1,
	"CS2": newCS2,
	"Ic":  newIc,
	"Ih":  newIh,
}

//Get returns a fresh copy of the named built-in lattice.
func Get(name string) (*Lattice, error) {
	b, ok := builders[name]
	if !ok {
		return nil, Error{fmt.Sprintf("unknown lattice %q (built in: %v)", name, Names()), []string{"Get"}}
	}
	return b(), nil
}

//Names returns the names of the built-in lattices, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for k := range builders {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
