/*
 * rotate.go, part of qfit.
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
	"fmt"
	"math"

	qfit "github.com/TonnarCastellano/qfit-3.0"
	v3 "github.com/TonnarCastellano/qfit-3.0/v3"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//alignTol is the tolerance for the orthonormality and axis-alignment
//verifications of the frame builders.
const alignTol = 1e-6

func deg2rad(f float64) float64 {
	return f * math.Pi / 180
}

//clampacos keeps the argument of an arc cosine inside [-1,1],
//correcting floating point errors the way the dot-product angle
//routines elsewhere in the library do.
func clampacos(argument float64) float64 {
	if math.Abs(argument-1) <= appzero || argument > 1 {
		argument = 1
	} else if math.Abs(argument+1) <= appzero || argument < -1 {
		argument = -1
	}
	return math.Acos(argument)
}

//Rz returns the operator for a right-handed rotation by gamma radians
//around the Z axis.
func Rz(gamma float64) *mat.Dense {
	singamma := math.Sin(gamma)
	cosgamma := math.Cos(gamma)
	return mat.NewDense(3, 3, []float64{
		cosgamma, -singamma, 0,
		singamma, cosgamma, 0,
		0, 0, 1,
	})
}

//Ry returns the operator for a right-handed rotation by theta radians
//around the Y axis.
func Ry(theta float64) *mat.Dense {
	sintheta := math.Sin(theta)
	costheta := math.Cos(theta)
	return mat.NewDense(3, 3, []float64{
		costheta, 0, sintheta,
		0, 1, 0,
		-sintheta, 0, costheta,
	})
}

//GramSchmidtZX builds an orthonormal frame from three points given as
//the rows of coor, already translated so the middle point sits at the
//origin. The rows of the returned operator are the basis vectors: z
//along the third point (the bond axis), x the first point
//orthogonalized against z, y completing the right-handed set. Applying
//the operator to a column vector expresses it in that frame, so the
//bond axis maps onto (0,0,1). Fails with a geometry error when the
//three points are collinear, as no unique frame exists then.
func GramSchmidtZX(coor *v3.Matrix) (*mat.Dense, error) {
	if coor.NVecs() < 3 {
		return nil, qfit.NewConfigurationError(fmt.Sprintf("GramSchmidtZX: need 3 points, got %d", coor.NVecs()))
	}
	z := v3.Zeros(1)
	znorm := coor.VecView(2).Norm()
	if znorm <= appzero {
		return nil, qfit.NewGeometryError("GramSchmidtZX: zero-length bond axis")
	}
	z.Scale(1/znorm, coor.VecView(2).Dense)
	x := v3.Zeros(1)
	x.Copy(coor.VecView(0).Dense)
	proj := x.Dot(z)
	for i := 0; i < 3; i++ {
		x.Set(0, i, x.At(0, i)-proj*z.At(0, i))
	}
	xnorm := x.Norm()
	if xnorm <= alignTol {
		return nil, qfit.NewGeometryError("GramSchmidtZX: collinear points, no unique frame")
	}
	x.Scale(1/xnorm, x.Dense)
	y := v3.Zeros(1)
	y.Cross(z, x)
	op := mat.NewDense(3, 3, []float64{
		x.At(0, 0), x.At(0, 1), x.At(0, 2),
		y.At(0, 0), y.At(0, 1), y.At(0, 2),
		z.At(0, 0), z.At(0, 1), z.At(0, 2),
	})
	if !isOrthonormal(op, alignTol) {
		return nil, qfit.NewGeometryError("GramSchmidtZX: frame failed the orthonormality check")
	}
	return op, nil
}

func isOrthonormal(op *mat.Dense, tol float64) bool {
	var prod mat.Dense
	prod.Mul(op, op.T())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if !scalar.EqualWithinAbs(prod.At(i, j), want, tol) {
				return false
			}
		}
	}
	return true
}

//ZAxisAligner holds the rigid rotation that maps a given axis onto the
//Z axis (Backward) and its inverse (Forward). Backward is the exact
//transpose of Forward, so Forward times Backward is the identity to
//numerical precision.
type ZAxisAligner struct {
	Forward  *mat.Dense
	Backward *mat.Dense
}

//NewZAxisAligner finds the composition of a Z and a Y elementary
//rotation that aligns the given axis (any non-degenerate length) to
//the Z axis. The axis is first normalized by its in-plane (x,y)
//magnitude, the convention shared with the torsion frame setup. The
//construction is verified numerically: if the rotated axis does not
//land on (0,0,1) within tolerance the input was degenerate (or
//upstream produced garbage) and a geometry error is returned.
func NewZAxisAligner(axis *v3.Matrix) (*ZAxisAligner, error) {
	planar := math.Hypot(axis.At(0, 0), axis.At(0, 1))
	if planar <= appzero {
		return nil, qfit.NewGeometryError(fmt.Sprintf("NewZAxisAligner: axis %v has no in-plane component", mat.Formatted(axis.Dense)))
	}
	a := [3]float64{axis.At(0, 0) / planar, axis.At(0, 1) / planar, axis.At(0, 2) / planar}

	//angle between the axis projection and the X axis, sign from y
	xang := clampacos(a[0])
	if a[1] < 0 {
		xang = -xang
	}
	rz := Rz(xang)

	//express the axis in the azimuth-cancelled frame
	var b [3]float64
	for i := 0; i < 3; i++ {
		b[i] = rz.At(0, i)*a[0] + rz.At(1, i)*a[1] + rz.At(2, i)*a[2]
	}
	norm := math.Sqrt(b[0]*b[0] + b[1]*b[1] + b[2]*b[2])

	//angle to the Z axis, sign from the rotated x component
	zang := clampacos(b[2] / norm)
	if b[0] < 0 {
		zang = -zang
	}
	ry := Ry(zang)

	//verify the transformation before trusting it
	var c [3]float64
	for i := 0; i < 3; i++ {
		c[i] = (ry.At(0, i)*b[0] + ry.At(1, i)*b[1] + ry.At(2, i)*b[2]) / norm
	}
	if !scalar.EqualWithinAbs(c[0], 0, alignTol) || !scalar.EqualWithinAbs(c[1], 0, alignTol) || !scalar.EqualWithinAbs(c[2], 1, alignTol) {
		return nil, qfit.NewGeometryError(fmt.Sprintf("NewZAxisAligner: axis (%g, %g, %g) is not aligned to the z-axis", c[0], c[1], c[2]))
	}

	backward := mat.NewDense(3, 3, nil)
	backward.Mul(ry.T(), rz.T())
	forward := mat.NewDense(3, 3, nil)
	forward.Mul(rz, ry)
	return &ZAxisAligner{Forward: forward, Backward: backward}, nil
}
