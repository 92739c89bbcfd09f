/*
 * emit.go, part of genice-cage.
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
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph"

	"github.com/genice-dev/genice-cage/graphstat"
	"github.com/genice-dev/genice-cage/gro"
	"github.com/genice-dev/genice-cage/polyhed"
	"github.com/genice-dev/genice-cage/v3"
	"github.com/genice-dev/genice-cage/yaplot"
)

//Emit writes the result in the format the options select: gromacs, quad,
//json, json2, yaplot, python, solid, or the plain listing when no mode flag
//is set. The histogram option additionally renders a cage-size bar chart.
func (R *Result) Emit(w io.Writer, opt *Options) error {
	var err error
	switch {
	case opt.Gromacs:
		err = R.EmitGromacs(w, opt.Water)
	case opt.Quad:
		err = R.EmitQuad(w, opt.JSON)
	case opt.JSON:
		err = R.EmitJSON(w)
	case opt.JSON2:
		err = R.EmitJSON2(w, opt)
	case opt.Yaplot:
		err = R.EmitYaplot(w)
	case opt.Python:
		err = R.EmitPython(w, opt)
	case opt.Solid:
		err = R.EmitSolid(w)
	default:
		err = R.EmitPlain(w)
	}
	if err != nil {
		return errDecorate(err, "Emit")
	}
	if opt.Histogram != "" {
		if err := R.SizeHistogram().Plot("cage sizes", opt.Histogram); err != nil {
			return &CError{fmt.Sprintf("histogram: %v", err), []string{"Emit"}}
		}
	}
	return nil
}

//EmitPlain writes the human-friendly redundant listing: one line per cage
//with its center and face count, then its rings with theirs.
func (R *Result) EmitPlain(w io.Writer) error {
	for c, cage := range R.Cages {
		fmt.Fprintf(w, "Cage %d: (%v, %v, %v) %d hedron\n",
			c, R.CagePos.At(c, 0), R.CagePos.At(c, 1), R.CagePos.At(c, 2), len(cage))
		for _, ri := range cage {
			fmt.Fprintf(w, "  Ring %d: (%v, %v, %v) %d gon\n",
				ri, R.RingPos.At(ri, 0), R.RingPos.At(ri, 1), R.RingPos.At(ri, 2), len(R.Rings[ri]))
			fmt.Fprintf(w, "    Nodes: %v\n", R.Rings[ri])
		}
	}
	return nil
}

func posList(m *v3.Matrix) [][]float64 {
	if m == nil {
		return [][]float64{}
	}
	out := make([][]float64, m.NVecs())
	for i := range out {
		out[i] = []float64{m.At(i, 0), m.At(i, 1), m.At(i, 2)}
	}
	return out
}

//EmitJSON writes the machine-readable record of the census: ring and cage
//member lists plus their fractional centers, keys in sorted order.
func (R *Result) EmitJSON(w io.Writer) error {
	rings, cages := R.Rings, R.Cages
	if rings == nil {
		rings = [][]int{}
	}
	if cages == nil {
		cages = [][]int{}
	}
	out := struct {
		CagePos [][]float64 `json:"cagepos"`
		Cages   [][]int     `json:"cages"`
		RingPos [][]float64 `json:"ringpos"`
		Rings   [][]int     `json:"rings"`
	}{posList(R.CagePos), cages, posList(R.RingPos), rings}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &CError{err.Error(), []string{"writeJSON"}}
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return &CError{err.Error(), []string{"writeJSON"}}
	}
	return nil
}

//census is what the labeling emitters need from a graphstat backend; the
//in-memory Database is adapted below, the sqlite DB satisfies it as is.
type census interface {
	Query(g graph.Undirected) (int, error)
	Register() (int, error)
}

type memCensus struct{ db *graphstat.Database }

func (m memCensus) Query(g graph.Undirected) (int, error) { return m.db.Query(g), nil }
func (m memCensus) Register() (int, error)                { return m.db.Register(), nil }

//openCensus picks the graphstat backend: the sqlite file when the db=
//option was given, so cage type ids survive between runs, and a fresh
//in-memory census otherwise.
func (o *Options) openCensus() (census, func(), error) {
	if o.DBPath == "" {
		return memCensus{graphstat.New()}, func() {}, nil
	}
	db, err := graphstat.OpenDB(o.DBPath)
	if err != nil {
		return nil, nil, errDecorate(err, "openCensus")
	}
	return db, func() { db.Close() }, nil
}

//labelCages assigns every cage a type label: cages with isomorphic HB
//topologies share one. mint produces a label for a class not seen before
//in this run, from the face count of its first cage.
func (R *Result) labelCages(db census, mint func(size int) string, logNew func(c int, label string)) ([]string, error) {
	idLabel := make(map[int]string)
	types := make([]string, len(R.Cages))
	for c, cage := range R.Cages {
		g := polyhed.CageGraph(cage, R.Rings)
		id, err := db.Query(g)
		if err != nil {
			return nil, errDecorate(err, "labelCages")
		}
		isnew := id < 0
		if isnew {
			if id, err = db.Register(); err != nil {
				return nil, errDecorate(err, "labelCages")
			}
		}
		label, ok := idLabel[id]
		if !ok {
			//either a brand new class or one known only to the
			//persistent census from an earlier run
			label = mint(len(cage))
			idLabel[id] = label
			if isnew && logNew != nil {
				logNew(c, label)
			}
		}
		types[c] = label
	}
	return types, nil
}

//EmitJSON2 writes the labeled census: cages with isomorphic HB network
//topologies are grouped under one label (A12, A14, A14a, ...), and the
//counts per label are reported along with the ring and cage totals.
func (R *Result) EmitJSON2(w io.Writer, opt *Options) error {
	db, done, err := opt.openCensus()
	if err != nil {
		return errDecorate(err, "EmitJSON2")
	}
	defer done()
	labels := make(map[string]bool)
	mint := func(size int) string {
		label := fmt.Sprintf("A%d", size)
		for enum := 0; labels[label]; enum++ {
			label = fmt.Sprintf("A%d%c", size, 'a'+enum)
		}
		labels[label] = true
		return label
	}
	types, err := R.labelCages(db, mint, func(c int, label string) {
		opt.logf("Cage type: %s (%s)", label, R.Signature(c))
	})
	if err != nil {
		return errDecorate(err, "EmitJSON2")
	}
	if len(R.Cages) == 0 {
		fmt.Fprintln(w, "No cages detected.")
	}
	details := make(map[string]int)
	for _, t := range types {
		details[t]++
	}
	out := struct {
		Cages   int            `json:"Cages"`
		Rings   int            `json:"Rings"`
		Details map[string]int `json:"details"`
	}{len(R.Cages), len(R.Rings), details}
	return writeJSON(w, out)
}

//EmitPython writes the cage types and positions as a python string literal,
//the shape GenIce lattice modules embed. Labels are the face count, with
//_1, _2... suffixes telling topologically distinct cages of one size apart.
func (R *Result) EmitPython(w io.Writer, opt *Options) error {
	db, done, err := opt.openCensus()
	if err != nil {
		return errDecorate(err, "EmitPython")
	}
	defer done()
	labels := make(map[string]bool)
	mint := func(size int) string {
		label := strconv.Itoa(size)
		for enum := 1; labels[label]; enum++ {
			label = fmt.Sprintf("%d_%d", size, enum)
		}
		labels[label] = true
		return label
	}
	types, err := R.labelCages(db, mint, nil)
	if err != nil {
		return errDecorate(err, "EmitPython")
	}
	fmt.Fprintln(w, `cages="""`)
	for c := range R.Cages {
		fmt.Fprintf(w, "%-10s %.4f %.4f %.4f\n",
			types[c], R.CagePos.At(c, 0), R.CagePos.At(c, 1), R.CagePos.At(c, 2))
	}
	fmt.Fprintln(w, `"""`)
	return nil
}

//EmitYaplot draws every cage for the Yaplot viewer: one polygon per face,
//colored by the ring size, on the layer of the cage's face count. The
//vertices are unwrapped around the cage center and pulled 10% toward it,
//so cages sharing a face remain distinguishable.
func (R *Result) EmitYaplot(w io.Writer) error {
	for c, cage := range R.Cages {
		nodes := make(map[int][3]float64)
		for _, ri := range cage {
			ring := R.Rings[ri]
			for _, node := range ring {
				if _, ok := nodes[node]; !ok {
					var rel [3]float64
					for k := 0; k < 3; k++ {
						v := R.Structure.Fractional.At(node, k) - R.CagePos.At(c, k)
						v -= math.Floor(v + 0.5)
						rel[k] = v * 0.9
					}
					nodes[node] = rel
				}
			}
			if _, err := io.WriteString(w, yaplot.Color(len(ring))); err != nil {
				return &CError{err.Error(), []string{"EmitYaplot"}}
			}
			if _, err := io.WriteString(w, yaplot.Layer(len(cage))); err != nil {
				return &CError{err.Error(), []string{"EmitYaplot"}}
			}
			pts := make([][]float64, len(ring))
			for i, node := range ring {
				var f [3]float64
				for k := 0; k < 3; k++ {
					f[k] = nodes[node][k] + R.CagePos.At(c, k)
				}
				cart := R.Structure.Cartesian(f)
				pts[i] = cart[:]
			}
			if _, err := io.WriteString(w, yaplot.Polygon(pts)); err != nil {
				return &CError{err.Error(), []string{"EmitYaplot"}}
			}
		}
	}
	fmt.Fprintln(w)
	return nil
}

//EmitQuad writes the quadcage order parameter of Jacobson, Matsumoto and
//Molinero: for every node, the counts of 12-, 14-, 15- and 16-hedra it
//takes part in, as a 4-digit string, plus the population statistics.
func (R *Result) EmitQuad(w io.Writer, asJSON bool) error {
	oncage := make(map[int][]int)
	for c := range R.Cages {
		size := len(R.Cages[c])
		for _, node := range R.Nodes(c) {
			oncage[node] = append(oncage[node], size)
		}
	}
	op := make(map[int]string)
	for node, sizes := range oncage {
		var count [17]int
		for _, s := range sizes {
			count[s]++
		}
		op[node] = fmt.Sprintf("%d%d%d%d", count[12], count[14], count[15], count[16])
	}
	nodes := make([]int, 0, len(op))
	for node := range op {
		nodes = append(nodes, node)
	}
	sort.Ints(nodes)
	stat := make(map[string]int)
	for _, node := range nodes {
		stat[op[node]]++
	}
	N := R.Structure.Len()
	if asJSON {
		out := struct {
			Op   map[string]string  `json:"op"`
			Stat map[string]float64 `json:"stat"`
		}{Op: make(map[string]string), Stat: make(map[string]float64)}
		for node, v := range op {
			out.Op[strconv.Itoa(node)] = v
		}
		for v, n := range stat {
			out.Stat[v] = float64(n) / float64(N)
		}
		return writeJSON(w, out)
	}
	for _, node := range nodes {
		fmt.Fprintln(w, node, op[node])
	}
	fmt.Fprintln(w, "# Statistics")
	keys := make([]string, 0, len(stat))
	for v := range stat {
		keys = append(keys, v)
	}
	sort.Strings(keys)
	for _, v := range keys {
		fmt.Fprintf(w, "%s %s %d/%d\n", v, fracString(float64(stat[v])/float64(N)), stat[v], N)
	}
	return nil
}

//fracString renders a population fraction keeping the ".0" on whole
//numbers, as the established quad listings have it.
func fracString(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

//EmitSolid writes the census of cage ring-size signatures, one
//"signature: count" line per distinct makeup, sorted.
func (R *Result) EmitSolid(w io.Writer) error {
	count := make(map[string]int)
	for c := range R.Cages {
		count[R.Signature(c)]++
	}
	keys := make([]string, 0, len(count))
	for k := range count {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %d\n", k, count[k])
	}
	return nil
}

//EmitGromacs writes one Gromacs coordinate block per cage, holding the
//molecules whose oxygens build it. Structures read from a coordinate file
//contribute their whole residues; built-in lattices contribute water
//molecules of the given model, or bare OW sites when water is empty.
func (R *Result) EmitGromacs(w io.Writer, water string) error {
	st := R.Structure
	mols, molOf, err := R.molecules(water)
	if err != nil {
		return errDecorate(err, "EmitGromacs")
	}
	for c := range R.Cages {
		f := &gro.File{
			Title: "Generated by genice-cage https://github.com/vitroid/genice-cage",
			Box:   st.Cell,
		}
		var flat []float64
		seen := make(map[int]bool)
		count := 0
		for _, node := range R.Nodes(c) {
			mi := molOf(node)
			if seen[mi] {
				continue
			}
			seen[mi] = true
			m := mols[mi]
			for a := range m.names {
				count++
				f.Atoms = append(f.Atoms, &gro.Atom{
					Resid:   mi + 1,
					Resname: m.resname,
					Name:    m.names[a],
					ID:      count,
				})
				flat = append(flat, m.coords[a][0], m.coords[a][1], m.coords[a][2])
			}
		}
		f.Coords, err = v3.NewMatrix(flat)
		if err != nil {
			return errDecorate(err, "EmitGromacs")
		}
		if err := gro.Write(w, f); err != nil {
			return errDecorate(err, "EmitGromacs")
		}
	}
	return nil
}

//molecules prepares the residue of every network node for the gromacs
//output, plus the node-to-molecule mapping.
func (R *Result) molecules(water string) ([]molecule, func(int) int, error) {
	st := R.Structure
	if st.src != nil {
		residues := st.src.Residues()
		mols := make([]molecule, len(residues))
		for ri, res := range residues {
			m := molecule{resname: st.src.Atoms[res[0]].Resname}
			for _, a := range res {
				m.names = append(m.names, st.src.Atoms[a].Name)
				m.coords = append(m.coords, [3]float64{
					st.src.Coords.At(a, 0), st.src.Coords.At(a, 1), st.src.Coords.At(a, 2)})
			}
			mols[ri] = m
		}
		return mols, func(node int) int { return st.siteRes[node] }, nil
	}
	ident := func(node int) int { return node }
	if water != "" {
		model, err := LookupWater(water)
		if err != nil {
			return nil, nil, errDecorate(err, "molecules")
		}
		return waterMolecules(st, model), ident, nil
	}
	mols := make([]molecule, st.Len())
	for i := range mols {
		o := st.Cartesian([3]float64{st.Fractional.At(i, 0), st.Fractional.At(i, 1), st.Fractional.At(i, 2)})
		mols[i] = molecule{resname: "SOL", names: []string{"OW"}, coords: [][3]float64{o}}
	}
	return mols, ident, nil
}
