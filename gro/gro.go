// Package gro reads and writes Gromacs coordinate files. Reading is
// transparent to gzip and z-standard compression, chosen by the file
// extension (.gz or .zst).
package gro

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	v3 "github.com/genice-dev/genice-cage/v3"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001

// Atom holds the per-record metadata of a gro file. Coordinates live
// separately, in the File.
type Atom struct {
	Resid   int
	Resname string
	Name    string
	ID      int
}

// File is one Gromacs coordinate file (a single configuration).
// Coordinates and velocities are in nm and nm/ps. Box rows are the
// cell vectors, also in nm. Vels is nil when the file carries no
// velocity columns.
type File struct {
	Title  string
	Atoms  []*Atom
	Coords *v3.Matrix
	Vels   *v3.Matrix
	Box    *mat.Dense
}

// Len returns the number of atoms in the file.
func (F *File) Len() int { return len(F.Atoms) }

// Residues groups atom indices into runs sharing one residue id and
// residue name. Resids wrap at 100000 in large files, so only changes
// between consecutive records start a new residue.
func (F *File) Residues() [][]int {
	var res [][]int
	var cur []int
	for i, at := range F.Atoms {
		if i > 0 && (at.Resid != F.Atoms[i-1].Resid || at.Resname != F.Atoms[i-1].Resname) {
			res = append(res, cur)
			cur = nil
		}
		cur = append(cur, i)
	}
	if cur != nil {
		res = append(res, cur)
	}
	return res
}

// *zstd.Decoder misses io.ReadCloser by a signature: its Close
// returns nothing.
type zstCloser struct {
	close func()
	*zstd.Decoder
}

func (z zstCloser) Close() error {
	z.close()
	return nil
}

// Read opens and parses the gro file name. Files ending in .gz or
// .zst are decompressed on the fly.
func Read(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Read"}, true}
	}
	defer f.Close()
	var in io.Reader = bufio.NewReader(f)
	switch {
	case strings.HasSuffix(name, ".gz"):
		g, err := gzip.NewReader(in)
		if err != nil {
			return nil, Error{"Can't decompress: " + err.Error(), name, []string{"Read"}, true}
		}
		defer g.Close()
		in = g
	case strings.HasSuffix(name, ".zst"):
		d, err := zstd.NewReader(in)
		if err != nil {
			return nil, Error{"Can't decompress: " + err.Error(), name, []string{"Read"}, true}
		}
		z := zstCloser{d.Close, d}
		defer z.Close()
		in = z
	}
	F, err := Decode(in)
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = name
			return nil, e
		}
		return nil, err
	}
	return F, nil
}

// Decode parses a gro-format configuration from rd: title line, atom
// count, fixed-column atom records and the final box line.
func Decode(rd io.Reader) (*File, error) {
	r := bufio.NewReader(rd)
	F := new(File)
	title, err := r.ReadString('\n')
	if err != nil {
		return nil, Error{"Can't read title line: " + err.Error(), "", []string{"Decode"}, true}
	}
	F.Title = strings.TrimRight(title, "\n")
	nat, err := r.ReadString('\n')
	if err != nil {
		return nil, Error{"Can't read atom count: " + err.Error(), "", []string{"Decode"}, true}
	}
	n, err := strconv.Atoi(strings.TrimSpace(nat))
	if err != nil || n <= 0 {
		return nil, Error{WrongFormat + ": bad atom count '" + strings.TrimSpace(nat) + "'", "", []string{"Decode"}, true}
	}
	F.Atoms = make([]*Atom, 0, n)
	coords := make([]float64, 0, 3*n)
	var vels []float64
	for i := 0; i < n; i++ {
		line, err := r.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return nil, Error{fmt.Sprintf("File ends after %d of %d atoms", i, n), "", []string{"Decode"}, true}
		}
		at, tail, err := AtomFromGro(line)
		if err != nil {
			return nil, errDecorate(err, "Decode")
		}
		F.Atoms = append(F.Atoms, at)
		coords = append(coords, tail[:3]...)
		hasv := len(tail) >= 6
		if i == 0 && hasv {
			vels = make([]float64, 0, 3*n)
		}
		if (vels != nil) != hasv {
			return nil, Error{WrongFormat + ": velocity columns only on some records", "", []string{"Decode"}, true}
		}
		if hasv {
			vels = append(vels, tail[3:6]...)
		}
	}
	bline, err := r.ReadString('\n')
	if err != nil && strings.TrimSpace(bline) == "" {
		return nil, Error{"File ends before the box line", "", []string{"Decode"}, true}
	}
	F.Box, err = boxFromGro(bline)
	if err != nil {
		return nil, errDecorate(err, "Decode")
	}
	F.Coords, err = v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "Decode")
	}
	if vels != nil {
		F.Vels, err = v3.NewMatrix(vels)
		if err != nil {
			return nil, errDecorate(err, "Decode")
		}
	}
	return F, nil
}

// AtomFromGro parses one fixed-column atom record. It returns the
// metadata and the numeric tail: x y z, plus vx vy vz when the record
// carries velocities. The metadata columns are fixed (5+5+5+5 chars)
// but the tail is split on whitespace, which tolerates files written
// with more than 3 decimals.
func AtomFromGro(s string) (*Atom, []float64, error) {
	s = strings.TrimRight(s, "\n")
	if len(s) < 20 {
		return nil, nil, Error{WrongFormat + ": record too short '" + s + "'", "", []string{"AtomFromGro"}, true}
	}
	at := new(Atom)
	var err error
	at.Resid, err = strconv.Atoi(strings.TrimSpace(s[0:5]))
	if err != nil {
		return nil, nil, Error{WrongFormat + ": bad residue number in '" + s + "'", "", []string{"AtomFromGro"}, true}
	}
	at.Resname = strings.TrimSpace(s[5:10])
	at.Name = strings.TrimSpace(s[10:15])
	at.ID, err = strconv.Atoi(strings.TrimSpace(s[15:20]))
	if err != nil {
		return nil, nil, Error{WrongFormat + ": bad atom number in '" + s + "'", "", []string{"AtomFromGro"}, true}
	}
	fields := strings.Fields(s[20:])
	if len(fields) < 3 {
		return nil, nil, Error{WrongFormat + ": need at least 3 coordinates in '" + s + "'", "", []string{"AtomFromGro"}, true}
	}
	tail := make([]float64, 0, len(fields))
	for _, v := range fields {
		num, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, Error{WrongFormat + ": bad number '" + v + "' in '" + s + "'", "", []string{"AtomFromGro"}, true}
		}
		tail = append(tail, num)
	}
	return at, tail, nil
}

func boxFromGro(s string) (*mat.Dense, error) {
	f := strings.Fields(s)
	v := make([]float64, 0, len(f))
	for _, e := range f {
		num, err := strconv.ParseFloat(e, 64)
		if err != nil {
			return nil, Error{WrongFormat + ": bad number '" + e + "' in box line", "", []string{"boxFromGro"}, true}
		}
		v = append(v, num)
	}
	b := mat.NewDense(3, 3, nil)
	switch len(v) {
	// the 9-number order is v1(x) v2(y) v3(z) v1(y) v1(z) v2(x)
	// v2(z) v3(x) v3(y), with the cell vectors as rows
	case 3:
		b.Set(0, 0, v[0])
		b.Set(1, 1, v[1])
		b.Set(2, 2, v[2])
	case 9:
		b.Set(0, 0, v[0])
		b.Set(1, 1, v[1])
		b.Set(2, 2, v[2])
		b.Set(0, 1, v[3])
		b.Set(0, 2, v[4])
		b.Set(1, 0, v[5])
		b.Set(1, 2, v[6])
		b.Set(2, 0, v[7])
		b.Set(2, 1, v[8])
	default:
		return nil, Error{fmt.Sprintf("box line must have 3 or 9 numbers, got %d", len(v)), "", []string{"boxFromGro"}, true}
	}
	return b, nil
}

// Write encodes F in gro format. The box line uses the short 3-number
// form when the cell is diagonal, the full 9-number form otherwise.
func Write(w io.Writer, F *File) error {
	if F.Coords == nil || F.Coords.NVecs() != len(F.Atoms) {
		return Error{"atom metadata and coordinates differ in length", "", []string{"Write"}, true}
	}
	if F.Box == nil {
		return Error{"missing box", "", []string{"Write"}, true}
	}
	if _, err := fmt.Fprintf(w, "%s\n%5d\n", strings.TrimRight(F.Title, "\n"), len(F.Atoms)); err != nil {
		return Error{err.Error(), "", []string{"Write"}, true}
	}
	for i, at := range F.Atoms {
		_, err := fmt.Fprintf(w, "%5d%-5s%5s%5d%8.3f%8.3f%8.3f",
			at.Resid%100000, at.Resname, at.Name, at.ID%100000,
			F.Coords.At(i, 0), F.Coords.At(i, 1), F.Coords.At(i, 2))
		if err != nil {
			return Error{err.Error(), "", []string{"Write"}, true}
		}
		if F.Vels != nil {
			_, err = fmt.Fprintf(w, "%8.4f%8.4f%8.4f",
				F.Vels.At(i, 0), F.Vels.At(i, 1), F.Vels.At(i, 2))
			if err != nil {
				return Error{err.Error(), "", []string{"Write"}, true}
			}
		}
		if _, err = fmt.Fprintln(w); err != nil {
			return Error{err.Error(), "", []string{"Write"}, true}
		}
	}
	var err error
	if diagonal(F.Box) {
		_, err = fmt.Fprintf(w, "    %v %v %v\n", F.Box.At(0, 0), F.Box.At(1, 1), F.Box.At(2, 2))
	} else {
		_, err = fmt.Fprintf(w, "    %v %v %v %v %v %v %v %v %v\n",
			F.Box.At(0, 0), F.Box.At(1, 1), F.Box.At(2, 2),
			F.Box.At(0, 1), F.Box.At(0, 2), F.Box.At(1, 0),
			F.Box.At(1, 2), F.Box.At(2, 0), F.Box.At(2, 1))
	}
	if err != nil {
		return Error{err.Error(), "", []string{"Write"}, true}
	}
	return nil
}

func diagonal(b *mat.Dense) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j && math.Abs(b.At(i, j)) > appzero {
				return false
			}
		}
	}
	return true
}

const (
	UnableToOpen = "Unable to open file"
	WrongFormat  = "Wrong format in gro record"
)

// Error is the package's own error type. It records the file it came
// from, when there is one.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("gro error: %s", err.message)
	}
	return fmt.Sprintf("gro file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// FileName returns the file associated to the error, or an empty
// string if there is none.
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file associated to the error.
func (err Error) Format() string { return "gro" }

// Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

type errorInt interface {
	Error() string
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(errorInt)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
