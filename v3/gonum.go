/*
 * gonum.go, part of genice-cage.
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

//Package v3 implements matrices of 3D vectors and the small set of operations
//on them that the rest of the library needs. A Matrix is a thin wrapper over
//gonum's mat.Dense with exactly 3 columns; a "vector" is a row, i.e. the
//coordinates of one site. Coordinates can be fractional or cartesian, the
//package does not care.

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, one per row.
//It must be able to implement any gonum interface; everything
//not defined here is promoted from the embedded Dense.
type Matrix struct {
	*mat.Dense
}

func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

func Dense2Matrix(A *mat.Dense) *Matrix {
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecView returns a view of the given vector of the matrix.
//Changes in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from i,j and spanning r rows and
//c columns.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//SetMatrix puts the matrix A in the receiver starting from the ith row
//and jth col of the receiver.
func (F *Matrix) SetMatrix(i, j int, A *Matrix) {
	b := F.RawMatrix()
	ar, ac := A.Dims()
	fc := 3
	if ar+i > F.NVecs() || ac+j > fc {
		panic(ErrShape)
	}
	r := make([]float64, ac)
	for k := 0; k < ar; k++ {
		mat.Row(r, k, A)
		startpoint := fc*(k+i) + j
		copy(b.Data[startpoint:startpoint+ac], r)
	}
}

//SomeVecs fills F with the ith rows of matrix A,
//where i are the numbers in clist, in the clist order.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		for j := 0; j < ac; j++ {
			F.Set(key, j, A.At(val, j))
		}
	}
}

//SwapVecs exchanges vectors i and j of F.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	rowi := F.RawRowView(i)
	rowj := F.RawRowView(j)
	for k := 0; k < 3; k++ {
		rowi[k], rowj[k] = rowj[k], rowi[k]
	}
}

//AddVec adds the vector vec to each vector of the matrix A, putting
//the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		j := A.VecView(i)
		f := F.VecView(i)
		f.Add(j, vec)
	}
}

//SubVec subtracts the vector vec from each vector of the matrix A, putting
//the result on the receiver. Panics if matrices are mismatched. It will not
//work if A and vec reference the same Matrix.
func (F *Matrix) SubVec(A, vec *Matrix) {
	vec.Scale(-1, vec)
	F.AddVec(A, vec)
	vec.Scale(-1, vec)
}

//Cross puts the cross product of the first vecs of a and b in the first vec
//of F. Panics on badly shaped arguments.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	F.Set(0, 0, a.At(0, 1)*b.At(0, 2)-a.At(0, 2)*b.At(0, 1))
	F.Set(0, 1, a.At(0, 2)*b.At(0, 0)-a.At(0, 0)*b.At(0, 2))
	F.Set(0, 2, a.At(0, 0)*b.At(0, 1)-a.At(0, 1)*b.At(0, 0))
}

//Unit puts in the receiver the first vec of A scaled to norm 1.
func (F *Matrix) Unit(A *Matrix) {
	norm := A.Norm(2)
	F.Scale(1.0/norm, A)
}

//Norm wraps mat.Norm. The received value is the order of the norm,
//2 gives the euclidean norm.
func (F *Matrix) Norm(i float64) float64 {
	return mat.Norm(F.Dense, i)
}

//Mul wraps mat.Dense.Mul to take care of the case when one of the
//arguments is also the receiver. Since the receiver is a Matrix,
//the gonum function would compare A (mat.Dense) vs F (Matrix) and
//not know that internally F.Dense==A, hence the need for this function.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if F == A {
		A := A.(*Matrix)
		F.Dense.Mul(A.Dense, B)
	} else if F == B {
		B := B.(*Matrix)
		F.Dense.Mul(A, B.Dense)
	} else {
		F.Dense.Mul(A, B)
	}
}

//Stack puts A stacked over B in F.
func (F *Matrix) Stack(A, B *Matrix) {
	f := F.RawMatrix()
	ar, _ := A.Dims()
	br, _ := B.Dims()
	if F.NVecs() < ar+br {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		mat.Row(f.Data[i*3:i*3+3], i, A)
	}
	for i := ar; i < ar+br; i++ {
		mat.Row(f.Data[i*3:i*3+3], i-ar, B)
	}
}

//String returns a neat string representation of a Matrix.
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, F)
		if i == 0 {
			v[i+1] = fmt.Sprintf("%6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
		} else if i == r-1 {
			v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f", row[0], row[1], row[2])
		} else {
			v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
		}
	}
	v[len(v)-2] = strings.Replace(v[len(v)-2], "\n", "", 1)
	return strings.Join(v, "")
}

//Errors

//the same as cage.Error but avoids a circular import.
type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

type Error struct {
	message  string
	deco     []string
	critical bool
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

//Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }

//errDecorate asserts that the error implements cage.Error and decorates
//it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics, even though it does satisfy the error
//interface. For errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("genice-cage/v3: A Matrix should have 3 columns")
	ErrNoCrossProduct    = PanicMsg("genice-cage/v3: Invalid matrix for cross product")
	ErrNotEnoughElements = PanicMsg("genice-cage/v3: not enough elements in Matrix")
	ErrGonum             = PanicMsg("genice-cage/v3: Error in gonum function")
	ErrShape             = PanicMsg("genice-cage/v3: Dimension mismatch")
	ErrIndexOutOfRange   = PanicMsg("genice-cage/v3: index out of range")
)
