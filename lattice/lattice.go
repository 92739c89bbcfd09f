/*
 * lattice.go, part of genice-cage.
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

/*Package lattice holds unit cells of ice and clathrate frameworks: the oxygen
positions in fractional coordinates, the cell vectors in nm, and the machinery
to replicate a cell and to turn it into a hydrogen bond network. Cells come
from the built-in catalog (Get) or from YAML files (Load).*/
package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/genice-dev/genice-cage/v3"
)

//everything equal or less than this is considered zero when cleaning
//up cell components built from angles.
const appzero float64 = 0.000000000001

//Lattice is a periodic arrangement of water oxygens.
//Positions are fractional, the cell rows are the cell vectors in nm.
//Bonds, when non-empty, lists the hydrogen-bonded pairs explicitly;
//otherwise the network is found by a distance search.
type Lattice struct {
	Name        string
	Description string
	Citation    string
	Cell        *mat.Dense
	Positions   *v3.Matrix
	Bonds       [][2]int
}

//Len returns the number of sites in the cell.
func (L *Lattice) Len() int {
	return L.Positions.NVecs()
}

//Replicate returns a new Lattice spanning nx x ny x nz copies of L.
//The image loop runs x, then y, then z, with the original site order
//innermost, so site s of image (i,j,k) gets index ((i*ny+j)*nz+k)*Len()+s.
//Explicit bonds are not carried over; the network of a replicated lattice
//is rebuilt by the distance search.
func (L *Lattice) Replicate(nx, ny, nz int) (*Lattice, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, Error{fmt.Sprintf("replication %dx%dx%d: all factors must be positive", nx, ny, nz), []string{"Replicate"}}
	}
	if nx == 1 && ny == 1 && nz == 1 {
		return L, nil
	}
	n := L.Len()
	pos := v3.Zeros(n * nx * ny * nz)
	v := 0
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				for s := 0; s < n; s++ {
					pos.Set(v, 0, (L.Positions.At(s, 0)+float64(i))/float64(nx))
					pos.Set(v, 1, (L.Positions.At(s, 1)+float64(j))/float64(ny))
					pos.Set(v, 2, (L.Positions.At(s, 2)+float64(k))/float64(nz))
					v++
				}
			}
		}
	}
	cell := mat.NewDense(3, 3, nil)
	cell.Copy(L.Cell)
	f := []float64{float64(nx), float64(ny), float64(nz)}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			cell.Set(r, c, cell.At(r, c)*f[r])
		}
	}
	return &Lattice{
		Name:        fmt.Sprintf("%s %dx%dx%d", L.Name, nx, ny, nz),
		Description: L.Description,
		Citation:    L.Citation,
		Cell:        cell,
		Positions:   pos,
	}, nil
}

//Errors

//the same as cage.Error but avoids a circular import.
type errorInt interface {
	Error() string
	Decorate(string) []string
}

type Error struct {
	message string
	deco    []string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

//errDecorate asserts that the error implements cage.Error and decorates
//it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}
