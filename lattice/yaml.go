/*
 * yaml.go, part of genice-cage.
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
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"gonum.org/v1/gonum/mat"

	"github.com/genice-dev/genice-cage/v3"
)

//the on-disk shape of a lattice file. The cell is given either as the six
//a,b,c,alpha,beta,gamma parameters (lengths in nm, angles in degrees,
//omitted angles default to 90) or as the nine components of the cell
//matrix, row by row.
type latticeFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Citation    string      `yaml:"citation"`
	Cell        cellFile    `yaml:"cell"`
	Positions   [][]float64 `yaml:"positions"`
	Bonds       [][]int     `yaml:"bonds"`
}

type cellFile struct {
	A      float64   `yaml:"a"`
	B      float64   `yaml:"b"`
	C      float64   `yaml:"c"`
	Alpha  float64   `yaml:"alpha"`
	Beta   float64   `yaml:"beta"`
	Gamma  float64   `yaml:"gamma"`
	Matrix []float64 `yaml:"matrix"`
}

//Load reads a lattice description from a YAML file.
func Load(path string) (*Lattice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{err.Error(), []string{"Load"}}
	}
	defer f.Close()
	l, err := Parse(f)
	if err != nil {
		return nil, errDecorate(err, "Load")
	}
	return l, nil
}

//Parse reads a lattice description from YAML text. Fractional coordinates
//are wrapped into [0,1).
func Parse(r io.Reader) (*Lattice, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, Error{err.Error(), []string{"Parse"}}
	}
	var lf latticeFile
	if err := yaml.Unmarshal(buf, &lf); err != nil {
		return nil, Error{fmt.Sprintf("bad lattice YAML: %v", err), []string{"Parse"}}
	}
	if len(lf.Positions) == 0 {
		return nil, Error{"lattice file contains no positions", []string{"Parse"}}
	}
	cell, err := lf.Cell.matrix()
	if err != nil {
		return nil, errDecorate(err, "Parse")
	}
	pos := v3.Zeros(len(lf.Positions))
	for i, p := range lf.Positions {
		if len(p) != 3 {
			return nil, Error{fmt.Sprintf("position %d has %d components, need 3", i, len(p)), []string{"Parse"}}
		}
		for k := 0; k < 3; k++ {
			pos.Set(i, k, p[k]-math.Floor(p[k]))
		}
	}
	var bonds [][2]int
	for i, b := range lf.Bonds {
		if len(b) != 2 {
			return nil, Error{fmt.Sprintf("bond %d has %d members, need 2", i, len(b)), []string{"Parse"}}
		}
		bonds = append(bonds, [2]int{b[0], b[1]})
	}
	return &Lattice{
		Name:        lf.Name,
		Description: lf.Description,
		Citation:    lf.Citation,
		Cell:        cell,
		Positions:   pos,
		Bonds:       bonds,
	}, nil
}

func (c cellFile) matrix() (*mat.Dense, error) {
	if len(c.Matrix) == 9 {
		m := mat.NewDense(3, 3, c.Matrix)
		if math.Abs(mat.Det(m)) < appzero {
			return nil, Error{"cell matrix is singular", []string{"cell"}}
		}
		return m, nil
	}
	if len(c.Matrix) != 0 {
		return nil, Error{fmt.Sprintf("cell matrix needs 9 numbers, got %d", len(c.Matrix)), []string{"cell"}}
	}
	if c.A <= 0 || c.B <= 0 || c.C <= 0 {
		return nil, Error{"cell lengths must all be positive", []string{"cell"}}
	}
	alpha, beta, gamma := c.Alpha, c.Beta, c.Gamma
	if alpha == 0 {
		alpha = 90
	}
	if beta == 0 {
		beta = 90
	}
	if gamma == 0 {
		gamma = 90
	}
	const torad = math.Pi / 180
	ca := math.Cos(alpha * torad)
	cb := math.Cos(beta * torad)
	cg := math.Cos(gamma * torad)
	sg := math.Sin(gamma * torad)
	//right angles should give exact zeros, not 6e-17
	for _, v := range []*float64{&ca, &cb, &cg} {
		if math.Abs(*v) <= appzero {
			*v = 0
		}
	}
	if sg <= appzero {
		return nil, Error{"gamma cannot be 0 or 180 degrees", []string{"cell"}}
	}
	cx := c.C * cb
	cy := c.C * (ca - cb*cg) / sg
	czsq := c.C*c.C - cx*cx - cy*cy
	if czsq <= 0 {
		return nil, Error{"cell angles are not realizable", []string{"cell"}}
	}
	return mat.NewDense(3, 3, []float64{
		c.A, 0, 0,
		c.B * cg, c.B * sg, 0,
		cx, cy, math.Sqrt(czsq),
	}), nil
}
