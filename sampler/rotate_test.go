/*
 * rotate_test.go, part of qfit.
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

package sampler

import (
	"math"
	"math/rand"
	"testing"

	qfit "github.com/TonnarCastellano/qfit-3.0"
	v3 "github.com/TonnarCastellano/qfit-3.0/v3"
	"gonum.org/v1/gonum/mat"
)

func TestElementaryRotations(Te *testing.T) {
	//Rz by 90 degrees takes x to y
	rz := Rz(math.Pi / 2)
	got := applyCol(rz, [3]float64{1, 0, 0})
	if !close3(got, [3]float64{0, 1, 0}, 1e-12) {
		Te.Errorf("Rz(90) x = %v, want y", got)
	}
	//Ry by 90 degrees takes z to x
	ry := Ry(math.Pi / 2)
	got = applyCol(ry, [3]float64{0, 0, 1})
	if !close3(got, [3]float64{1, 0, 0}, 1e-12) {
		Te.Errorf("Ry(90) z = %v, want x", got)
	}
}

func applyCol(R *mat.Dense, v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = R.At(i, 0)*v[0] + R.At(i, 1)*v[1] + R.At(i, 2)*v[2]
	}
	return out
}

func close3(a, b [3]float64, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestZAxisAligner(Te *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		ax := [3]float64{rnd.NormFloat64(), rnd.NormFloat64(), rnd.NormFloat64()}
		if math.Hypot(ax[0], ax[1]) < 1e-3 {
			continue
		}
		axis, _ := v3.NewMatrix([]float64{ax[0], ax[1], ax[2]})
		aligner, err := NewZAxisAligner(axis)
		if err != nil {
			Te.Fatalf("axis %v: %v", ax, err)
		}
		//Backward must take the axis onto z
		norm := math.Sqrt(ax[0]*ax[0] + ax[1]*ax[1] + ax[2]*ax[2])
		unit := [3]float64{ax[0] / norm, ax[1] / norm, ax[2] / norm}
		got := applyCol(aligner.Backward, unit)
		if !close3(got, [3]float64{0, 0, 1}, 1e-9) {
			Te.Errorf("backward rotation sent axis %v to %v, not z", ax, got)
		}
		//Forward must undo it
		var prod mat.Dense
		prod.Mul(aligner.Forward, aligner.Backward)
		if !isOrthonormal(aligner.Forward, 1e-9) {
			Te.Error("forward rotation is not orthonormal")
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				if math.Abs(prod.At(i, j)-want) > 1e-9 {
					Te.Errorf("forward@backward is not the identity: %v", mat.Formatted(&prod))
				}
			}
		}
	}
}

func TestZAxisAlignerDegenerate(Te *testing.T) {
	axis, _ := v3.NewMatrix([]float64{0, 0, 1})
	_, err := NewZAxisAligner(axis)
	if err == nil {
		Te.Fatal("an axis along z has no azimuth and must be rejected")
	}
	if !qfit.IsKind(err, qfit.Geometry) {
		Te.Errorf("expected a geometry error, got %v", err)
	}
}

func TestGramSchmidtZX(Te *testing.T) {
	coor, _ := v3.NewMatrix([]float64{
		2, 0, 1,
		0, 0, 0,
		0, 0, 3,
	})
	op, err := GramSchmidtZX(coor)
	if err != nil {
		Te.Fatal(err)
	}
	wantRows := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(op.At(i, j)-wantRows[i][j]) > 1e-12 {
				Te.Fatalf("frame %v, want identity", mat.Formatted(op))
			}
		}
	}
	//collinear points have no unique frame
	bad, _ := v3.NewMatrix([]float64{
		0, 0, 2,
		0, 0, 0,
		0, 0, 3,
	})
	if _, err := GramSchmidtZX(bad); err == nil {
		Te.Error("collinear points must be rejected")
	}
	zero, _ := v3.NewMatrix([]float64{
		1, 0, 0,
		0, 0, 0,
		0, 0, 0,
	})
	if _, err := GramSchmidtZX(zero); err == nil {
		Te.Error("a zero-length bond axis must be rejected")
	}
}
