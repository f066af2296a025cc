/*
 * rotsets.go, part of qfit.
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
	"embed"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"strings"

	qfit "github.com/TonnarCastellano/qfit-3.0"
	"github.com/klauspost/compress/gzip"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

//go:embed data/*.qrot.gz
var rotsetData embed.FS

//RandomQuat draws a rotation uniformly distributed on SO(3), as a unit
//quaternion, using Marsaglia's method: two points rejected into the
//unit disc supply the four components, the second pair rescaled so the
//result lands on the 3-sphere.
func RandomQuat(rnd *rand.Rand) quat.Number {
	var e1, e2, e3, e4, s1, s2 float64
	for {
		e1 = 2*rnd.Float64() - 1
		e2 = 2*rnd.Float64() - 1
		s1 = e1*e1 + e2*e2
		if s1 < 1 {
			break
		}
	}
	for {
		e3 = 2*rnd.Float64() - 1
		e4 = 2*rnd.Float64() - 1
		s2 = e3*e3 + e4*e4
		if s2 < 1 {
			break
		}
	}
	root := math.Sqrt((1 - s1) / s2)
	return quat.Number{Real: e1, Imag: e2, Jmag: e3 * root, Kmag: e4 * root}
}

//Angle returns the rotation angle of a unit quaternion, in degrees.
func Angle(q quat.Number) float64 {
	return clampacos(q.Real) * 2 * 180 / math.Pi
}

//Local draws nrots rotations with rotation angle at most maxAngle
//degrees, by rejection from the uniform distribution, so the set is
//uniform over the angular cap. The last rotation of the set is always
//the identity, so a search over the set always includes the unperturbed
//pose.
func Local(maxAngle float64, nrots int, rnd *rand.Rand) ([]quat.Number, error) {
	if nrots < 1 {
		return nil, qfit.NewConfigurationError(fmt.Sprintf("sampler.Local: %d rotations requested, need at least 1", nrots))
	}
	if maxAngle <= 0 || maxAngle > 180 {
		return nil, qfit.NewConfigurationError(fmt.Sprintf("sampler.Local: maximum angle %g out of (0,180]", maxAngle))
	}
	quats := make([]quat.Number, 0, nrots)
	for len(quats) < nrots-1 {
		q := RandomQuat(rnd)
		if Angle(q) <= maxAngle {
			quats = append(quats, q)
		}
	}
	quats = append(quats, quat.Number{Real: 1})
	return quats, nil
}

//QuatsToRotmats converts quaternions to 3x3 rotation matrices. The
//quaternions need not be normalized; entries are rounded to 8 decimals
//so precomputed sets give identical matrices across platforms.
func QuatsToRotmats(quats []quat.Number) []*mat.Dense {
	rotmats := make([]*mat.Dense, len(quats))
	for i, q := range quats {
		rotmats[i] = quatToRotmat(q)
	}
	return rotmats
}

func quatToRotmat(q quat.Number) *mat.Dense {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	nq := w*w + x*x + y*y + z*z
	if nq <= appzero {
		//degenerate quaternion, conventionally the identity
		return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	}
	s := 2.0 / nq
	X, Y, Z := x*s, y*s, z*s
	wX, wY, wZ := w*X, w*Y, w*Z
	xX, xY, xZ := x*X, x*Y, x*Z
	yY, yZ, zZ := y*Y, y*Z, z*Z
	m := mat.NewDense(3, 3, []float64{
		1 - (yY + zZ), xY - wZ, xZ + wY,
		xY + wZ, 1 - (xX + zZ), yZ - wX,
		xZ - wY, yZ + wX, 1 - (xX + yY),
	})
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, math.Round(m.At(i, j)*1e8)/1e8)
		}
	}
	return m
}

const rotsetMagic = "QROT"

//WriteSet serializes a rotation set: gzip around a little-endian
//stream of a 4-byte magic, a uint32 count and 4 float64 per rotation
//(w, x, y, z).
func WriteSet(w io.Writer, quats []quat.Number) error {
	zw := gzip.NewWriter(w)
	if _, err := zw.Write([]byte(rotsetMagic)); err != nil {
		return qfit.NewResourceError("sampler.WriteSet: " + err.Error())
	}
	if err := binary.Write(zw, binary.LittleEndian, uint32(len(quats))); err != nil {
		return qfit.NewResourceError("sampler.WriteSet: " + err.Error())
	}
	for _, q := range quats {
		if err := binary.Write(zw, binary.LittleEndian, [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}); err != nil {
			return qfit.NewResourceError("sampler.WriteSet: " + err.Error())
		}
	}
	if err := zw.Close(); err != nil {
		return qfit.NewResourceError("sampler.WriteSet: " + err.Error())
	}
	return nil
}

//ReadSet deserializes a rotation set written by WriteSet.
func ReadSet(r io.Reader) ([]quat.Number, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, qfit.NewResourceError("sampler.ReadSet: " + err.Error())
	}
	defer zr.Close()
	magic := make([]byte, 4)
	if _, err := io.ReadFull(zr, magic); err != nil {
		return nil, qfit.NewResourceError("sampler.ReadSet: " + err.Error())
	}
	if string(magic) != rotsetMagic {
		return nil, qfit.NewResourceError(fmt.Sprintf("sampler.ReadSet: bad magic %q, not a rotation set", magic))
	}
	var count uint32
	if err := binary.Read(zr, binary.LittleEndian, &count); err != nil {
		return nil, qfit.NewResourceError("sampler.ReadSet: " + err.Error())
	}
	quats := make([]quat.Number, count)
	for i := range quats {
		var comp [4]float64
		if err := binary.Read(zr, binary.LittleEndian, &comp); err != nil {
			return nil, qfit.NewResourceError("sampler.ReadSet: " + err.Error())
		}
		quats[i] = quat.Number{Real: comp[0], Imag: comp[1], Jmag: comp[2], Kmag: comp[3]}
	}
	return quats, nil
}

//LocalSet loads one of the precomputed local rotation sets shipped
//with the package, named local_<maxangle>_<nrots>, e.g. "local_10_100"
//for 100 rotations within 10 degrees. Each set ends with the identity.
func LocalSet(name string) ([]quat.Number, error) {
	f, err := rotsetData.Open("data/" + name + ".qrot.gz")
	if err != nil {
		return nil, qfit.NewResourceError(fmt.Sprintf("sampler.LocalSet: no precomputed set %q; available: %s", name, strings.Join(LocalSets(), ", ")))
	}
	defer f.Close()
	quats, err := ReadSet(f)
	if err != nil {
		return nil, qfit.ErrDecorate(err, "LocalSet")
	}
	return quats, nil
}

//LocalSets lists the names of the precomputed rotation sets, sorted.
func LocalSets() []string {
	entries, err := rotsetData.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".qrot.gz"))
	}
	sort.Strings(names)
	return names
}
