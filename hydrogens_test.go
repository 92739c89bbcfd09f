/*
 * hydrogens_test.go, part of genice-cage.
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
	"testing"

	"github.com/genice-dev/genice-cage/lattice"
)

func iceStructure(Te *testing.T, name string, nx, ny, nz int) *Structure {
	Te.Helper()
	l, err := lattice.Get(name)
	if err != nil {
		Te.Fatal(err)
	}
	l, err = l.Replicate(nx, ny, nz)
	if err != nil {
		Te.Fatal(err)
	}
	st, err := FromLattice(l, 0)
	if err != nil {
		Te.Fatal(err)
	}
	return st
}

//the Bernal-Fowler rule on a defect-free ice: every 4-coordinated water
//donates exactly two bonds.
func TestIceRules(Te *testing.T) {
	st := iceStructure(Te, "Ic", 2, 2, 2)
	donates := OrientBonds(st.Graph)
	if len(donates) != 64 {
		Te.Fatal("wrong node count:", len(donates))
	}
	accepts := make([]int, len(donates))
	for i, to := range donates {
		if len(to) != 2 {
			Te.Errorf("node %d donates %d bonds, want 2", i, len(to))
		}
		for _, j := range to {
			accepts[j]++
		}
	}
	for i, n := range accepts {
		if n != 2 {
			Te.Errorf("node %d accepts %d bonds, want 2", i, n)
		}
	}
}

func TestWaterModels(Te *testing.T) {
	if _, err := LookupWater("mercury"); err == nil {
		Te.Error("an unknown model should not resolve")
	}
	names := WaterModels()
	if len(names) != 3 || names[0] != "spce" {
		Te.Error("unexpected model list:", names)
	}
}

func dist(a, b [3]float64) float64 {
	var s float64
	for k := 0; k < 3; k++ {
		d := a[k] - b[k]
		s += d * d
	}
	return math.Sqrt(s)
}

func TestWaterMolecules(Te *testing.T) {
	st := iceStructure(Te, "Ic", 2, 2, 1)
	model, err := LookupWater("tip4p")
	if err != nil {
		Te.Fatal(err)
	}
	mols := waterMolecules(st, model)
	if len(mols) != st.Len() {
		Te.Fatal("one molecule per site expected")
	}
	for i, m := range mols {
		if len(m.names) != 4 || m.names[0] != "OW" || m.names[3] != "MW" {
			Te.Fatalf("molecule %d is not a 4-site water: %v", i, m.names)
		}
		o := m.coords[0]
		for h := 1; h <= 2; h++ {
			if r := dist(o, m.coords[h]); math.Abs(r-model.ROH) > 1e-9 {
				Te.Errorf("molecule %d: O-H%d distance %g, want %g", i, h, r, model.ROH)
			}
		}
		if r := dist(o, m.coords[3]); math.Abs(r-model.ROM) > 1e-9 {
			Te.Errorf("molecule %d: O-M distance %g, want %g", i, r, model.ROM)
		}
	}
	fmt.Println("tip4p waters:", len(mols))
}
