/*
 * samplers_test.go, part of qfit.
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
	"testing"

	qfit "github.com/TonnarCastellano/qfit-3.0"
	v3 "github.com/TonnarCastellano/qfit-3.0/v3"
	"gonum.org/v1/gonum/mat"
)

func mkStructure(Te *testing.T, atoms []*qfit.Atom, coords []float64) *qfit.Structure {
	c, err := v3.NewMatrix(coords)
	if err != nil {
		Te.Fatal(err)
	}
	s, err := qfit.NewStructure(atoms, c)
	if err != nil {
		Te.Fatal(err)
	}
	return s
}

//a serine with the OG placed so the initial chi1 is exactly zero.
func serineFixture(Te *testing.T) *qfit.Residue {
	atoms := []*qfit.Atom{
		{Name: "N", MolName: "SER", MolID: 1, Symbol: "N"},
		{Name: "CA", MolName: "SER", MolID: 1, Symbol: "C"},
		{Name: "C", MolName: "SER", MolID: 1, Symbol: "C"},
		{Name: "O", MolName: "SER", MolID: 1, Symbol: "O"},
		{Name: "CB", MolName: "SER", MolID: 1, Symbol: "C"},
		{Name: "OG", MolName: "SER", MolID: 1, Symbol: "O"},
	}
	coords := []float64{
		11.2, 10.0, 9.2, //N
		10.0, 10.0, 10.0, //CA
		9.0, 10.8, 10.3, //C
		8.5, 11.8, 10.3, //O
		10.0, 10.0, 11.53, //CB
		11.0, 10.0, 12.2, //OG
	}
	s := mkStructure(Te, atoms, coords)
	res, err := qfit.NewResidue(s, "SER")
	if err != nil {
		Te.Fatal(err)
	}
	return res
}

func chi1(res *qfit.Residue) float64 {
	sel, _ := res.NamedSelection("N", "CA", "CB", "OG")
	c := res.Coords(sel)
	return qfit.Dihedral(c.VecView(0), c.VecView(1), c.VecView(2), c.VecView(3))
}

func TestChiRotator(Te *testing.T) {
	res := serineFixture(Te)
	start := res.Coords(nil)
	if math.Abs(chi1(res)) > 1e-10 {
		Te.Fatalf("fixture chi1 should start at 0, got %f", chi1(res))
	}
	rot, err := NewChiRotator(res, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if err := rot.Call(60); err != nil {
		Te.Fatal(err)
	}
	if math.Abs(chi1(res)-math.Pi/3) > 1e-9 {
		Te.Errorf("chi1 after a 60 degree call is %f rad", chi1(res))
	}
	//only OG may move
	for _, name := range []string{"N", "CA", "C", "O", "CB"} {
		sel, _ := res.NamedSelection(name)
		for i := 0; i < 3; i++ {
			if math.Abs(res.CoordView(sel[0]).At(0, i)-start.At(sel[0], i)) > 1e-12 {
				Te.Errorf("atom %s moved under a chi rotation", name)
			}
		}
	}
	//calls are absolute: a second call with the same angle is a no-op,
	//and a full turn restores the starting coordinates
	after := res.Coords(nil)
	if err := rot.Call(60); err != nil {
		Te.Fatal(err)
	}
	if !coordsEqual(res.Coords(nil), after, 1e-12) {
		Te.Error("repeated identical calls should be idempotent")
	}
	if err := rot.Call(360); err != nil {
		Te.Fatal(err)
	}
	if !coordsEqual(res.Coords(nil), start, 1e-8) {
		Te.Error("a full turn should restore the starting coordinates")
	}
	if err := rot.Call(0); err != nil {
		Te.Fatal(err)
	}
	if !coordsEqual(res.Coords(nil), start, 1e-8) {
		Te.Error("a zero call should restore the starting coordinates")
	}
	if _, err := NewChiRotator(res, 5); err == nil {
		Te.Error("serine has no chi 6")
	}
}

func coordsEqual(a, b *v3.Matrix, tol float64) bool {
	if a.NVecs() != b.NVecs() {
		return false
	}
	for i := 0; i < a.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

//a leucine-like stub with a right angle at CA-CB-CG.
func cbFixture(Te *testing.T) *qfit.Residue {
	atoms := []*qfit.Atom{
		{Name: "N", MolName: "LEU", MolID: 1, Symbol: "N"},
		{Name: "CA", MolName: "LEU", MolID: 1, Symbol: "C"},
		{Name: "C", MolName: "LEU", MolID: 1, Symbol: "C"},
		{Name: "O", MolName: "LEU", MolID: 1, Symbol: "O"},
		{Name: "CB", MolName: "LEU", MolID: 1, Symbol: "C"},
		{Name: "CG", MolName: "LEU", MolID: 1, Symbol: "C"},
	}
	coords := []float64{
		6.0, 5.5, 7.0, //N
		5.0, 5.0, 6.5, //CA
		4.0, 5.5, 7.0, //C
		4.0, 6.7, 7.0, //O
		5.0, 5.0, 5.0, //CB
		6.5, 5.0, 5.0, //CG
	}
	s := mkStructure(Te, atoms, coords)
	res, err := qfit.NewResidue(s, "LEU")
	if err != nil {
		Te.Fatal(err)
	}
	return res
}

func cbAngle(res *qfit.Residue) float64 {
	sel, _ := res.NamedSelection("CA", "CB", "CG")
	c := res.Coords(sel)
	u := v3.Zeros(1)
	v := v3.Zeros(1)
	u.Sub(c.VecView(0).Dense, c.VecView(1).Dense)
	v.Sub(c.VecView(2).Dense, c.VecView(1).Dense)
	return qfit.Angle(u, v)
}

func TestCBAngleRotator(Te *testing.T) {
	res := cbFixture(Te)
	start := res.Coords(nil)
	if math.Abs(cbAngle(res)-math.Pi/2) > 1e-10 {
		Te.Fatalf("fixture angle should start at 90 degrees, got %f rad", cbAngle(res))
	}
	rot, err := NewCBAngleRotator(res)
	if err != nil {
		Te.Fatal(err)
	}
	if err := rot.Call(10); err != nil {
		Te.Fatal(err)
	}
	want := math.Pi/2 + deg2rad(10)
	if math.Abs(cbAngle(res)-want) > 1e-9 {
		Te.Errorf("angle after a 10 degree flexion is %f rad, want %f", cbAngle(res), want)
	}
	//the backbone and CB stay put
	for _, name := range []string{"N", "CA", "C", "O", "CB"} {
		sel, _ := res.NamedSelection(name)
		for i := 0; i < 3; i++ {
			if math.Abs(res.CoordView(sel[0]).At(0, i)-start.At(sel[0], i)) > 1e-12 {
				Te.Errorf("atom %s moved under a CB flexion", name)
			}
		}
	}
	if err := rot.Call(0); err != nil {
		Te.Fatal(err)
	}
	if !coordsEqual(res.Coords(nil), start, 1e-8) {
		Te.Error("a zero call should restore the starting coordinates")
	}
	//no CG, no flexion
	ser := serineFixture(Te)
	if _, err := NewCBAngleRotator(ser); err == nil {
		Te.Error("a residue without CG must be rejected")
	} else if !qfit.IsKind(err, qfit.Configuration) {
		Te.Errorf("expected a configuration error, got %v", err)
	}
}

func TestBisectingAngleRotator(Te *testing.T) {
	res := cbFixture(Te)
	start := res.Coords(nil)
	rot, err := NewBisectingAngleRotator(res)
	if err != nil {
		Te.Fatal(err)
	}
	//a half turn about the bisector swaps the CG direction onto the CA
	//direction, at CG's own bond length
	if err := rot.Call(180); err != nil {
		Te.Fatal(err)
	}
	sel, _ := res.NamedSelection("CG")
	cg := res.CoordView(sel[0])
	want := [3]float64{5.0, 5.0, 6.5} //CB + 1.5 * unit(CA-CB)
	for i := 0; i < 3; i++ {
		if math.Abs(cg.At(0, i)-want[i]) > 1e-9 {
			Te.Errorf("CG after a half turn is %v, want %v", cg, want)
			break
		}
	}
	if err := rot.Call(0); err != nil {
		Te.Fatal(err)
	}
	if !coordsEqual(res.Coords(nil), start, 1e-8) {
		Te.Error("a zero call should restore the starting coordinates")
	}
}

func backboneFixture(Te *testing.T) *qfit.Segment {
	atoms := []*qfit.Atom{
		{Name: "N", MolName: "GLY", MolID: 1, Symbol: "N"},
		{Name: "CA", MolName: "GLY", MolID: 1, Symbol: "C"},
		{Name: "C", MolName: "GLY", MolID: 1, Symbol: "C"},
		{Name: "O", MolName: "GLY", MolID: 1, Symbol: "O"},
		{Name: "N", MolName: "GLY", MolID: 2, Symbol: "N"},
		{Name: "CA", MolName: "GLY", MolID: 2, Symbol: "C"},
		{Name: "C", MolName: "GLY", MolID: 2, Symbol: "C"},
		{Name: "O", MolName: "GLY", MolID: 2, Symbol: "O"},
	}
	coords := []float64{
		0.0, 0.0, 0.0,
		1.45, 0.0, 0.0,
		2.0, 1.4, 0.0,
		1.4, 2.4, 0.3,
		3.3, 1.5, 0.0,
		4.2, 2.6, 0.2,
		5.6, 2.2, 0.5,
		6.5, 3.0, 0.6,
	}
	s := mkStructure(Te, atoms, coords)
	seg, err := qfit.NewSegment(s)
	if err != nil {
		Te.Fatal(err)
	}
	return seg
}

func TestBackboneRotator(Te *testing.T) {
	seg := backboneFixture(Te)
	start := seg.Coords(nil)
	rot, err := NewBackboneRotator(seg)
	if err != nil {
		Te.Fatal(err)
	}
	if rot.NDofs() != 4 {
		Te.Fatalf("two residues should give 4 degrees of freedom, got %d", rot.NDofs())
	}
	if err := rot.Call([]float64{0, 0}); err == nil {
		Te.Error("a short torsion vector must be rejected")
	}
	if err := rot.Call([]float64{0, 0, 0, 0}); err != nil {
		Te.Fatal(err)
	}
	if !coordsEqual(seg.Coords(nil), start, 1e-12) {
		Te.Error("all-zero torsions should leave the segment untouched")
	}

	dih := func(names [4]int) float64 {
		c := seg.Coords(names[:])
		return qfit.Dihedral(c.VecView(0), c.VecView(1), c.VecView(2), c.VecView(3))
	}
	//psi of the last residue moves only its carbonyl oxygen, and moves
	//it by exactly the requested torsion
	before := dih([4]int{4, 5, 6, 7}) //N2, CA2, C2, O2
	if err := rot.Call([]float64{0, 0, 0, 25}); err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 7; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(seg.CoordView(i).At(0, j)-start.At(i, j)) > 1e-12 {
				Te.Fatalf("atom %d moved under the last psi torsion", i)
			}
		}
	}
	diff := dih([4]int{4, 5, 6, 7}) - before
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	if math.Abs(diff-deg2rad(25)) > 1e-9 {
		Te.Errorf("psi moved by %f rad, want %f", diff, deg2rad(25))
	}

	//calls are absolute: zero torsions restore the starting coordinates
	if err := rot.Call([]float64{0, 0, 0, 0}); err != nil {
		Te.Fatal(err)
	}
	if !coordsEqual(seg.Coords(nil), start, 1e-9) {
		Te.Error("zero torsions after a perturbation should restore the start")
	}

	//phi of the last residue carries its C and O (and, through the
	//accumulated selection, anything a later torsion moves)
	if err := rot.Call([]float64{0, 0, 30, 0}); err != nil {
		Te.Fatal(err)
	}
	for _, i := range []int{0, 1, 2, 3, 4, 5} {
		for j := 0; j < 3; j++ {
			if math.Abs(seg.CoordView(i).At(0, j)-start.At(i, j)) > 1e-12 {
				Te.Fatalf("atom %d moved under the last phi torsion", i)
			}
		}
	}
	moved := false
	for _, i := range []int{6, 7} {
		for j := 0; j < 3; j++ {
			if math.Abs(seg.CoordView(i).At(0, j)-start.At(i, j)) > 1e-9 {
				moved = true
			}
		}
	}
	if !moved {
		Te.Error("the last phi torsion should displace C and O of its residue")
	}
}

func ligandFixture(Te *testing.T) *qfit.Ligand {
	atoms := []*qfit.Atom{
		{Name: "C1", MolName: "BUT", MolID: 1, Symbol: "C"},
		{Name: "C2", MolName: "BUT", MolID: 1, Symbol: "C"},
		{Name: "C3", MolName: "BUT", MolID: 1, Symbol: "C"},
		{Name: "C4", MolName: "BUT", MolID: 1, Symbol: "C"},
	}
	coords := []float64{
		0.0, 0.0, 0.0,
		1.5, 0.0, 0.0,
		2.0, 1.4, 0.0,
		3.5, 1.5, 0.2,
	}
	s := mkStructure(Te, atoms, coords)
	lig, err := qfit.NewLigand(s, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	if err != nil {
		Te.Fatal(err)
	}
	return lig
}

func TestTranslator(Te *testing.T) {
	lig := ligandFixture(Te)
	start := lig.Coords(nil)
	tr := NewTranslator(lig)
	if err := tr.Call([]float64{1, 2, 3}); err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < lig.Len(); i++ {
		if math.Abs(lig.CoordView(i).At(0, 0)-start.At(i, 0)-1) > 1e-12 ||
			math.Abs(lig.CoordView(i).At(0, 1)-start.At(i, 1)-2) > 1e-12 ||
			math.Abs(lig.CoordView(i).At(0, 2)-start.At(i, 2)-3) > 1e-12 {
			Te.Fatalf("atom %d not translated by (1,2,3)", i)
		}
	}
	//absolute, not cumulative
	if err := tr.Call([]float64{1, 2, 3}); err != nil {
		Te.Fatal(err)
	}
	if math.Abs(lig.CoordView(0).At(0, 0)-1) > 1e-12 {
		Te.Error("translations must be absolute with respect to the start")
	}
	if err := tr.Call([]float64{0, 0, 0}); err != nil {
		Te.Fatal(err)
	}
	if !coordsEqual(lig.Coords(nil), start, 1e-12) {
		Te.Error("a zero translation should restore the start")
	}
	if err := tr.Call([]float64{1, 2}); err == nil {
		Te.Error("a short translation vector must be rejected")
	}
}

func TestGlobalRotator(Te *testing.T) {
	lig := ligandFixture(Te)
	start := lig.Coords(nil)
	rot := NewGlobalRotator(lig)
	identity := Rz(0)
	if err := rot.Call(identity); err != nil {
		Te.Fatal(err)
	}
	if !coordsEqual(lig.Coords(nil), start, 1e-12) {
		Te.Error("the identity rotation should leave the ligand untouched")
	}
	cen := lig.Centroid(nil)
	if err := rot.Call(Rz(math.Pi / 2)); err != nil {
		Te.Fatal(err)
	}
	cenAfter := lig.Centroid(nil)
	for i := 0; i < 3; i++ {
		if math.Abs(cen.At(0, i)-cenAfter.At(0, i)) > 1e-9 {
			Te.Error("a global rotation must keep the centroid fixed")
			break
		}
	}
	//internal geometry is rigid
	d01 := atomDist(lig, 0, 1)
	if math.Abs(d01-1.5) > 1e-9 {
		Te.Errorf("bond length changed under a rigid rotation: %f", d01)
	}
	if err := rot.Call(Rz(0)); err != nil {
		Te.Fatal(err)
	}
	if !coordsEqual(lig.Coords(nil), start, 1e-9) {
		Te.Error("rotations must be absolute with respect to the start")
	}
	if err := rot.Call(mat.NewDense(2, 2, nil)); err == nil {
		Te.Error("a non-3x3 rotation matrix must be rejected")
	}
}

func atomDist(lig *qfit.Ligand, i, j int) float64 {
	d := v3.Zeros(1)
	d.Sub(lig.CoordView(i).Dense, lig.CoordView(j).Dense)
	return d.Norm()
}

func TestGlobalRotatorCenter(Te *testing.T) {
	atoms := []*qfit.Atom{{Name: "X", Symbol: "C"}}
	s := mkStructure(Te, atoms, []float64{1, 0, 0})
	lig, err := qfit.NewLigand(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	center, _ := v3.NewMatrix([]float64{0, 0, 0})
	rot := NewGlobalRotator(lig, Center(center))
	if err := rot.Call(Rz(math.Pi / 2)); err != nil {
		Te.Fatal(err)
	}
	got := lig.CoordView(0)
	if math.Abs(got.At(0, 0)) > 1e-12 || math.Abs(got.At(0, 1)-1) > 1e-12 {
		Te.Errorf("rotating (1,0,0) by 90 degrees about the origin gave %v", got)
	}
}

func TestBondRotator(Te *testing.T) {
	lig := ligandFixture(Te)
	start := lig.Coords(nil)
	rot, err := NewBondRotator(lig, "C2", "C3")
	if err != nil {
		Te.Fatal(err)
	}
	if rot.FoundRoot() != 1 {
		Te.Errorf("an acyclic bond should see the root exactly once, got %d", rot.FoundRoot())
	}
	moved := rot.MovedAtoms()
	if len(moved) != 3 || moved[0] != 1 || moved[1] != 2 || moved[2] != 3 {
		Te.Fatalf("moved set %v, want [1 2 3]", moved)
	}
	dih := func() float64 {
		c := lig.Coords([]int{0, 1, 2, 3})
		return qfit.Dihedral(c.VecView(0), c.VecView(1), c.VecView(2), c.VecView(3))
	}
	before := dih()
	const angle = 0.7 //radians, unlike the degree-based samplers
	if err := rot.Call(angle); err != nil {
		Te.Fatal(err)
	}
	//the fixed side and the axis atoms stay put
	for _, i := range []int{0, 1, 2} {
		for j := 0; j < 3; j++ {
			if math.Abs(lig.CoordView(i).At(0, j)-start.At(i, j)) > 1e-9 {
				Te.Fatalf("atom %d moved under the bond torsion", i)
			}
		}
	}
	diff := dih() - before
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	if math.Abs(diff-angle) > 1e-9 {
		Te.Errorf("dihedral moved by %f rad, want %f", diff, angle)
	}
	//rigidity of the rotated fragment
	if math.Abs(atomDist(lig, 2, 3)-atomDist2(start, 2, 3)) > 1e-9 {
		Te.Error("bond length changed under the torsion")
	}
	if err := rot.Call(0); err != nil {
		Te.Fatal(err)
	}
	if !coordsEqual(lig.Coords(nil), start, 1e-9) {
		Te.Error("a zero call should restore the starting coordinates")
	}
	if _, err := NewBondRotator(lig, "C2", "ZZ"); err == nil {
		Te.Error("an unknown atom name must be rejected")
	}
}

func atomDist2(c *v3.Matrix, i, j int) float64 {
	d := v3.Zeros(1)
	d.Sub(c.VecView(i).Dense, c.VecView(j).Dense)
	return d.Norm()
}

func TestBondRotatorRing(Te *testing.T) {
	atoms := []*qfit.Atom{
		{Name: "C1", MolName: "CBU", MolID: 1, Symbol: "C"},
		{Name: "C2", MolName: "CBU", MolID: 1, Symbol: "C"},
		{Name: "C3", MolName: "CBU", MolID: 1, Symbol: "C"},
		{Name: "C4", MolName: "CBU", MolID: 1, Symbol: "C"},
	}
	coords := []float64{
		0.0, 0.0, 0.0,
		1.5, 0.0, 0.1,
		1.5, 1.5, 0.2,
		0.0, 1.5, 0.1,
	}
	s := mkStructure(Te, atoms, coords)
	lig, err := qfit.NewLigand(s, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	if err != nil {
		Te.Fatal(err)
	}
	rot, err := NewBondRotator(lig, "C1", "C2")
	if err != nil {
		Te.Fatal(err)
	}
	if rot.FoundRoot() != 2 {
		Te.Errorf("a ring bond should see the root twice, got %d", rot.FoundRoot())
	}
	if _, err := NewBondRotator(lig, "C1", "C2", RejectRings()); err == nil {
		Te.Error("RejectRings should refuse a ring bond")
	} else if !qfit.IsKind(err, qfit.Configuration) {
		Te.Errorf("expected a configuration error, got %v", err)
	}
}
