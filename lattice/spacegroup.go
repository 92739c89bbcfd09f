/*
 * spacegroup.go, part of genice-cage.
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

//The Wyckoff orbits of the built-in cells are expanded at run time from a
//handful of generators instead of being stored as coordinate tables.

package lattice

import (
	"fmt"
	"math"
)

//symop is a symmetry operation in fractional coordinates: an integer
//rotation part plus a fractional translation, applied as rot*p + tr,
//everything modulo the cell.
type symop struct {
	rot [9]int
	tr  [3]float64
}

func (s symop) apply(p [3]float64) [3]float64 {
	var q [3]float64
	for i := 0; i < 3; i++ {
		q[i] = float64(s.rot[3*i])*p[0] + float64(s.rot[3*i+1])*p[1] + float64(s.rot[3*i+2])*p[2] + s.tr[i]
	}
	return wrap(q)
}

//wrap brings fractional coordinates into [0,1). Values within rounding
//noise of 1 are folded to 0 so that orbit deduplication sees them as equal.
func wrap(p [3]float64) [3]float64 {
	for i := 0; i < 3; i++ {
		p[i] -= math.Floor(p[i])
		if p[i] > 1-1e-9 {
			p[i] = 0
		}
	}
	return p
}

//compose returns the operation equivalent to applying b first, then a.
func compose(a, b symop) symop {
	var c symop
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0
			for k := 0; k < 3; k++ {
				sum += a.rot[3*i+k] * b.rot[3*k+j]
			}
			c.rot[3*i+j] = sum
		}
		t := a.tr[i]
		for k := 0; k < 3; k++ {
			t += float64(a.rot[3*i+k]) * b.tr[k]
		}
		t -= math.Floor(t)
		if t > 1-1e-9 {
			t = 0
		}
		c.tr[i] = t
	}
	return c
}

func (s symop) key() string {
	return fmt.Sprintf("%v|%.6f,%.6f,%.6f", s.rot, s.tr[0], s.tr[1], s.tr[2])
}

//closure expands a generator set into the full group by composing until
//no new operation appears.
func closure(gens []symop) []symop {
	id := symop{rot: [9]int{1, 0, 0, 0, 1, 0, 0, 0, 1}}
	ops := []symop{id}
	seen := map[string]bool{id.key(): true}
	for grew := true; grew; {
		grew = false
		for _, g := range gens {
			for _, o := range ops {
				n := compose(g, o)
				if !seen[n.key()] {
					seen[n.key()] = true
					ops = append(ops, n)
					grew = true
				}
			}
		}
	}
	return ops
}

//orbit applies every operation to the seed position and deduplicates
//the images. The order is deterministic, it follows the closure order.
func orbit(ops []symop, seed [3]float64) [][3]float64 {
	var out [][3]float64
	seen := make(map[string]bool)
	for _, o := range ops {
		p := o.apply(seed)
		k := fmt.Sprintf("%.6f,%.6f,%.6f", p[0], p[1], p[2])
		if !seen[k] {
			seen[k] = true
			out = append(out, p)
		}
	}
	return out
}

//Pm-3n (no. 223), the space group of the structure I clathrate framework.
func pm3nOps() []symop {
	gens := []symop{
		{rot: [9]int{-1, 0, 0, 0, -1, 0, 0, 0, 1}},
		{rot: [9]int{-1, 0, 0, 0, 1, 0, 0, 0, -1}},
		{rot: [9]int{0, 0, 1, 1, 0, 0, 0, 1, 0}},
		{rot: [9]int{0, 1, 0, 1, 0, 0, 0, 0, -1}, tr: [3]float64{0.5, 0.5, 0.5}},
		{rot: [9]int{-1, 0, 0, 0, -1, 0, 0, 0, -1}},
	}
	return closure(gens)
}

//Fd-3m (no. 227, origin choice 2), the space group of the structure II
//clathrate framework and of the diamond net of cubic ice.
func fd3mOps() []symop {
	gens := []symop{
		{rot: [9]int{0, 0, 1, 1, 0, 0, 0, 1, 0}},
		{rot: [9]int{-1, 0, 0, 0, -1, 0, 0, 0, 1}, tr: [3]float64{0.75, 0.25, 0.5}},
		{rot: [9]int{0, 1, 0, 1, 0, 0, 0, 0, -1}, tr: [3]float64{0.75, 0.25, 0.5}},
		{rot: [9]int{-1, 0, 0, 0, -1, 0, 0, 0, -1}},
		{rot: [9]int{1, 0, 0, 0, 1, 0, 0, 0, 1}, tr: [3]float64{0, 0.5, 0.5}},
		{rot: [9]int{1, 0, 0, 0, 1, 0, 0, 0, 1}, tr: [3]float64{0.5, 0, 0.5}},
	}
	return closure(gens)
}
