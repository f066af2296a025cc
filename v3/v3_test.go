/*
 * v3_test.go, part of qfit.
 *
 * Copyright 2020 The qfit-3.0 developers
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

package v3

import (
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	if err == nil {
		Te.Error("Expected an error for a slice not divisible by 3")
	}
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Error(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("Expected 2 vecs, got %d", A.NVecs())
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	cind := []int{1, 3, 5}
	B := Zeros(3)
	if err := B.SomeVecsSafe(A, cind); err != nil {
		Te.Error(err)
	}
	for key, val := range cind {
		for j := 0; j < 3; j++ {
			if B.At(key, j) != A.At(val, j) {
				Te.Errorf("SomeVecs mismatch at %d,%d", key, j)
			}
		}
	}
	//now write the modified vecs back
	B.Set(1, 1, 55)
	A.SetVecs(B, cind)
	if A.At(3, 1) != 55 {
		Te.Error("SetVecs did not write the vector back")
	}
	if A.At(0, 0) != 1 || A.At(2, 2) != 9 {
		Te.Error("SetVecs touched vectors outside the list")
	}
}

func TestAddSubVec(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	row, _ := NewMatrix([]float64{10, 20, 30})
	A.AddVec(A, row)
	if A.At(0, 0) != 11 || A.At(1, 2) != 36 {
		Te.Error("AddVec gave a wrong result", A)
	}
	A.SubVec(A, row)
	if A.At(0, 0) != 1 || A.At(1, 2) != 6 {
		Te.Error("SubVec gave a wrong result", A)
	}
	//the row may not change under either call
	if row.At(0, 0) != 10 || row.At(0, 2) != 30 {
		Te.Error("the broadcast row was modified", row)
	}
	//a distinct destination works too
	B := Zeros(2)
	B.AddVec(A, row)
	if B.At(0, 0) != 11 || A.At(0, 0) != 1 {
		Te.Error("AddVec into a fresh destination gave a wrong result", B)
	}
}

//the samplers subtract an origin row from a coordinate block in place,
//with the origin taken from one of the block's own source vectors; none
//of that may panic or corrupt the block.
func TestSubVecOriginInPlace(Te *testing.T) {
	coor, _ := NewMatrix([]float64{
		1, 0, -1,
		10, 10, 10,
		10, 10, 11,
		11, 10, 12,
	})
	origin := Zeros(1)
	origin.Copy(coor.VecView(1).Dense)
	coor.SubVec(coor, origin)
	if coor.At(1, 0) != 0 || coor.At(1, 1) != 0 || coor.At(1, 2) != 0 {
		Te.Error("the origin row should land on zero", coor)
	}
	if coor.At(3, 0) != 1 || coor.At(3, 2) != 2 {
		Te.Error("SubVec in place gave a wrong result", coor)
	}
	coor.AddVec(coor, origin)
	if coor.At(0, 0) != 1 || coor.At(0, 2) != -1 {
		Te.Error("AddVec did not restore the block", coor)
	}
}

func TestCrossDotUnit(Te *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	if z.At(0, 0) != 0 || z.At(0, 1) != 0 || z.At(0, 2) != 1 {
		Te.Error("x cross y should be z", z)
	}
	if x.Dot(y) != 0 {
		Te.Error("x dot y should be 0")
	}
	v, _ := NewMatrix([]float64{3, 0, 4})
	u := Zeros(1)
	u.Unit(v)
	if math.Abs(u.Norm()-1) > 1e-12 {
		Te.Error("Unit vector norm is not 1", u.Norm())
	}
	if math.Abs(v.Norm()-5) > 1e-12 {
		Te.Error("Unit modified its argument", v)
	}
}

func TestSwapVecs(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	A.SwapVecs(0, 1)
	if A.At(0, 0) != 4 || A.At(1, 0) != 1 {
		Te.Error("SwapVecs gave a wrong result", A)
	}
}
