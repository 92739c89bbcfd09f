/*
 * analyze.go, part of genice-cage.
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
	"sort"
	"strings"

	"github.com/genice-dev/genice-cage/cycles"
	"github.com/genice-dev/genice-cage/histo"
	"github.com/genice-dev/genice-cage/polyhed"
	"github.com/genice-dev/genice-cage/v3"
)

//Result holds everything one analysis run found, so that the emitters and
//the tests share a single computation. Rings and cages are in the canonical
//order of the cycles and polyhed packages; positions are fractional centers
//of mass.
type Result struct {
	Structure *Structure
	Rings     [][]int
	RingPos   *v3.Matrix
	Cages     [][]int //each cage is a sorted slice of ring indices
	CagePos   *v3.Matrix
}

//Analyze runs the cage census: enumerate the shortest-path rings of the HB
//network, join them into quasi-polyhedra, and keep the cages whose face
//count is in opt.Sizes and whose rings are all in opt.Rings. Finding no
//rings or no cages is not an error; the result is just empty.
func Analyze(st *Structure, opt *Options) (*Result, error) {
	rings, err := cycles.Find(st.Graph, opt.Rings.Max(), st.Fractional)
	if err != nil {
		return nil, errDecorate(err, "Analyze")
	}
	R := &Result{Structure: st, Rings: rings}
	//gonum matrices cannot be empty, so the position fields stay nil
	//when nothing was found
	if len(rings) == 0 {
		return R, nil
	}
	R.RingPos = v3.Zeros(len(rings))
	for i, ring := range rings {
		com := cycles.CenterOfMass(ring, st.Fractional)
		for k := 0; k < 3; k++ {
			R.RingPos.Set(i, k, com[k])
		}
	}
	//no closed polyhedron fits under 4 faces, the census is just empty
	if opt.Sizes.Max() < 4 {
		return R, nil
	}
	all, err := polyhed.Find(rings, opt.Sizes.Max())
	if err != nil {
		return nil, errDecorate(err, "Analyze")
	}
	for _, cage := range all {
		if !opt.Sizes.Has(len(cage)) {
			continue
		}
		valid := true
		for _, ri := range cage {
			if !opt.Rings.Has(len(rings[ri])) {
				valid = false
				break
			}
		}
		if valid {
			R.Cages = append(R.Cages, cage)
		}
	}
	if len(R.Cages) == 0 {
		return R, nil
	}
	R.CagePos = v3.Zeros(len(R.Cages))
	for i, cage := range R.Cages {
		com := cycles.CenterOfMass(cage, R.RingPos)
		for k := 0; k < 3; k++ {
			R.CagePos.Set(i, k, com[k])
		}
	}
	return R, nil
}

//Nodes returns the sorted union of the member nodes of cage c.
func (R *Result) Nodes(c int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, ri := range R.Cages[c] {
		for _, n := range R.Rings[ri] {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Ints(out)
	return out
}

//Signature returns the ring-size makeup of cage c in the "5^12 6^2"
//notation of the clathrate literature.
func (R *Result) Signature(c int) string {
	count := make(map[int]int)
	for _, ri := range R.Cages[c] {
		count[len(R.Rings[ri])]++
	}
	sizes := make([]int, 0, len(count))
	for s := range count {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = fmt.Sprintf("%d^%d", s, count[s])
	}
	return strings.Join(parts, " ")
}

//SizeHistogram bins the cages by face count, one bin per size from the
//smallest to the largest found.
func (R *Result) SizeHistogram() *histo.Data {
	raw := make([]float64, len(R.Cages))
	lo, hi := maxCageSize, minCageSize
	for i, cage := range R.Cages {
		raw[i] = float64(len(cage))
		if len(cage) < lo {
			lo = len(cage)
		}
		if len(cage) > hi {
			hi = len(cage)
		}
	}
	if len(R.Cages) == 0 {
		lo, hi = minCageSize, minCageSize
	}
	dividers := make([]float64, 0, hi-lo+2)
	for v := lo; v <= hi+1; v++ {
		dividers = append(dividers, float64(v))
	}
	return histo.NewData(dividers, raw)
}
