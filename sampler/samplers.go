/*
 * samplers.go, part of qfit.
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
	"sort"

	qfit "github.com/TonnarCastellano/qfit-3.0"
	"github.com/TonnarCastellano/qfit-3.0/molgraph"
	v3 "github.com/TonnarCastellano/qfit-3.0/v3"
	"gonum.org/v1/gonum/mat"
)

//cbFixed is the backbone/CB exclusion list of the CB-bend rotators:
//everything not in this list swings with the side chain.
var cbFixed = []string{"N", "CA", "C", "O", "CB", "H", "HA", "HB2", "HB3"}

//rotateLocal applies R (already composed with the forward alignment)
//to the cached axis-aligned coordinates, translates back to the world
//origin and writes the result to dst.
func rotateLocal(dst, local *v3.Matrix, R *mat.Dense, origin *v3.Matrix) {
	dst.Mul(local.Dense, R.T())
	dst.AddVec(dst, origin)
}

//BackboneRotator samples the phi and psi torsions of a contiguous
//backbone segment anchored at its N-terminal side.
type BackboneRotator struct {
	segment  *qfit.Segment
	ndofs    int
	start    *v3.Matrix
	aligners []*ZAxisAligner
	origins  []*v3.Matrix
	toRotate [][]int //cumulative moved sets, innermost torsion first
}

//NewBackboneRotator binds a rotator to a segment. For each torsion,
//starting from the last residue, it aligns the rotation axis to the Z
//axis and accumulates the affected atom set: atoms moved by an earlier
//torsion in the chain are moved by all later ones as well.
func NewBackboneRotator(segment *qfit.Segment) (*BackboneRotator, error) {
	frames, err := segment.PsiPhi()
	if err != nil {
		return nil, qfit.ErrDecorate(err, "NewBackboneRotator")
	}
	B := &BackboneRotator{
		segment: segment,
		ndofs:   2 * segment.NResidues(),
		start:   segment.Coords(nil),
	}
	var cumulative []int
	for _, frame := range frames {
		aligner, err := NewZAxisAligner(frame.Axis)
		if err != nil {
			return nil, qfit.ErrDecorate(err, "NewBackboneRotator")
		}
		B.aligners = append(B.aligners, aligner)
		B.origins = append(B.origins, frame.Origin)
		cumulative = mergeSelections(cumulative, frame.Selection)
		B.toRotate = append(B.toRotate, cumulative)
	}
	return B, nil
}

//mergeSelections returns the sorted union of a sorted selection and a
//new one, without touching either input.
func mergeSelections(cumulative, sel []int) []int {
	merged := make([]int, len(cumulative), len(cumulative)+len(sel))
	copy(merged, cumulative)
	for _, i := range sel {
		at := sort.SearchInts(merged[:len(cumulative)], i)
		if at == len(cumulative) || merged[at] != i {
			merged = append(merged, i)
		}
	}
	sort.Ints(merged)
	return merged
}

//NDofs returns the length of the parameter vector Call expects:
//two angles per residue.
func (B *BackboneRotator) NDofs() int { return B.ndofs }

//Call sets the segment to its starting coordinates and applies the
//given torsions, in degrees, ordered phi then psi per residue from the
//first residue of the segment. Calls are absolute with respect to the
//starting geometry, never cumulative. The torsions are applied from
//the last residue inward, which is cheaper because the moved sets grow
//toward the segment start; torsions of exactly 0 are skipped.
func (B *BackboneRotator) Call(torsions []float64) error {
	if len(torsions) != B.ndofs {
		return qfit.NewConfigurationError(fmt.Sprintf("BackboneRotator: %d torsions given, %d degrees of freedom", len(torsions), B.ndofs))
	}
	if err := B.segment.SetCoords(B.start, nil); err != nil {
		return qfit.ErrDecorate(err, "BackboneRotator.Call")
	}
	R := mat.NewDense(3, 3, nil)
	for k := range B.aligners {
		torsion := torsions[len(torsions)-1-k]
		if torsion == 0.0 {
			continue
		}
		sel := B.toRotate[k]
		coor := B.segment.Coords(sel)
		coor.SubVec(coor, B.origins[k])
		aligner := B.aligners[k]
		R.Mul(aligner.Forward, Rz(deg2rad(torsion)))
		R.Mul(R, aligner.Backward)
		rotated := v3.Zeros(coor.NVecs())
		rotateLocal(rotated, coor, R, B.origins[k])
		if err := B.segment.SetCoords(rotated, sel); err != nil {
			return qfit.ErrDecorate(err, "BackboneRotator.Call")
		}
	}
	return nil
}

//ChiRotator samples one chi angle of a residue.
type ChiRotator struct {
	residue *qfit.Residue
	chi     int
	origin  *v3.Matrix
	forward *mat.Dense
	sel     []int
	local   *v3.Matrix //cached coordinates in the axis-aligned frame
	tmp     *v3.Matrix
}

//ChiOption is a construction option for a ChiRotator.
type ChiOption func(*chiOptions)

type chiOptions struct {
	covalent string
	length   int
}

//Covalent declares that the residue carries a covalently attached
//fragment, linked through the named residue atom, whose atoms were
//appended to the residue starting at index length. When the linking
//atom moves under the chi rotation, the fragment is rotated along.
func Covalent(name string, length int) ChiOption {
	return func(o *chiOptions) {
		o.covalent = name
		o.length = length
	}
}

//NewChiRotator binds a rotator to chi angle number chi (0-based) of
//the residue. The torsion frame is built from the chi-defining atom
//quadruple of the residue type and the coordinates are cached in the
//axis-aligned frame, so each call is a single small multiply.
func NewChiRotator(residue *qfit.Residue, chi int, options ...ChiOption) (*ChiRotator, error) {
	var opt chiOptions
	for _, o := range options {
		o(&opt)
	}
	quad, err := residue.ChiAtoms(chi)
	if err != nil {
		return nil, qfit.ErrDecorate(err, "NewChiRotator")
	}
	quadSel, err := residue.NamedSelection(quad...)
	if err != nil {
		return nil, qfit.ErrDecorate(err, "NewChiRotator")
	}
	coor := residue.Coords(quadSel)
	origin := v3.Zeros(1)
	origin.Copy(coor.VecView(1).Dense)
	coor.SubVec(coor, origin)

	backward, err := GramSchmidtZX(coor)
	if err != nil {
		return nil, qfit.ErrDecorate(err, "NewChiRotator")
	}
	forward := mat.NewDense(3, 3, nil)
	forward.Copy(backward.T())

	moved, err := residue.ChiMoved(chi)
	if err != nil {
		return nil, qfit.ErrDecorate(err, "NewChiRotator")
	}
	sel := residue.Select("name", moved...)
	if opt.covalent != "" && isInString(moved, opt.covalent) {
		//the linking atom rotates, so the attached fragment must too
		for i := opt.length; i < residue.Len(); i++ {
			sel = append(sel, i)
		}
	}
	local := residue.Coords(sel)
	local.SubVec(local, origin)
	aligned := v3.Zeros(local.NVecs())
	aligned.Mul(local.Dense, backward.T())

	return &ChiRotator{
		residue: residue,
		chi:     chi,
		origin:  origin,
		forward: forward,
		sel:     sel,
		local:   aligned,
		tmp:     v3.Zeros(local.NVecs()),
	}, nil
}

//Call rotates the moved atoms by the given chi angle, in degrees,
//about the chi bond axis, writing the result into the residue. Calls
//are absolute with respect to the coordinates at construction.
func (C *ChiRotator) Call(angle float64) error {
	R := mat.NewDense(3, 3, nil)
	R.Mul(C.forward, Rz(deg2rad(angle)))
	rotateLocal(C.tmp, C.local, R, C.origin)
	if err := C.residue.SetCoords(C.tmp, C.sel); err != nil {
		return qfit.ErrDecorate(err, "ChiRotator.Call")
	}
	return nil
}

//cbSetup is the shared construction of the two CB-bend rotators; axis
//is the rotation axis relative to the CB origin.
func cbSetup(residue *qfit.Residue, axis *v3.Matrix) (origin *v3.Matrix, sel []int, forward *mat.Dense, local *v3.Matrix, err error) {
	aligner, err := NewZAxisAligner(axis)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cbSel, err := residue.NamedSelection("CB")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	origin = residue.Coords(cbSel)
	sel = residue.SelectNot("name", cbFixed...)
	local = residue.Coords(sel)
	local.SubVec(local, origin)
	aligned := v3.Zeros(local.NVecs())
	aligned.Mul(local.Dense, aligner.Backward.T())
	return origin, sel, aligner.Forward, aligned, nil
}

//cbAxes returns the CB->CA and CB->CG vectors of the residue, failing
//with a configuration error unless the residue has exactly one each of
//CA, CB and CG.
func cbAxes(residue *qfit.Residue) (toCA, toCG *v3.Matrix, err error) {
	if len(residue.Select("name", "CA", "CB", "CG")) != 3 {
		return nil, nil, qfit.NewConfigurationError("residue does not have one each of CA, CB and CG atoms for rotation")
	}
	sel, err := residue.NamedSelection("CA", "CB", "CG")
	if err != nil {
		return nil, nil, err
	}
	coor := residue.Coords(sel)
	cb := v3.Zeros(1)
	cb.Copy(coor.VecView(1).Dense)
	toCA = v3.Zeros(1)
	toCA.Sub(coor.VecView(0).Dense, cb.Dense)
	toCG = v3.Zeros(1)
	toCG.Sub(coor.VecView(2).Dense, cb.Dense)
	return toCA, toCG, nil
}

//CBAngleRotator deflects a residue's side chain by bending the
//CA-CB-CG angle: it rotates about the axis perpendicular to the CB-CA
//and CB-CG vectors, through CB. Every atom outside the fixed backbone
//set swings with the side chain.
type CBAngleRotator struct {
	residue *qfit.Residue
	origin  *v3.Matrix
	sel     []int
	forward *mat.Dense
	local   *v3.Matrix
	tmp     *v3.Matrix
}

//NewCBAngleRotator binds a CB-bend rotator to the residue.
func NewCBAngleRotator(residue *qfit.Residue) (*CBAngleRotator, error) {
	toCA, toCG, err := cbAxes(residue)
	if err != nil {
		return nil, qfit.ErrDecorate(err, "NewCBAngleRotator")
	}
	axis := v3.Zeros(1)
	axis.Cross(toCA, toCG)
	axis.Unit(axis)
	origin, sel, forward, local, err := cbSetup(residue, axis)
	if err != nil {
		return nil, qfit.ErrDecorate(err, "NewCBAngleRotator")
	}
	return &CBAngleRotator{residue: residue, origin: origin, sel: sel, forward: forward, local: local, tmp: v3.Zeros(local.NVecs())}, nil
}

//Call flexes the CA-CB-CG angle by the given angle, in degrees.
func (C *CBAngleRotator) Call(angle float64) error {
	R := mat.NewDense(3, 3, nil)
	R.Mul(C.forward, Rz(deg2rad(angle)))
	rotateLocal(C.tmp, C.local, R, C.origin)
	if err := C.residue.SetCoords(C.tmp, C.sel); err != nil {
		return qfit.ErrDecorate(err, "CBAngleRotator.Call")
	}
	return nil
}

//BisectingAngleRotator rotates a side chain about the axis bisecting
//the CA-CB-CG angle, which reorients flat (aromatic) side chains
//without opening the angle itself.
type BisectingAngleRotator struct {
	residue *qfit.Residue
	origin  *v3.Matrix
	sel     []int
	forward *mat.Dense
	local   *v3.Matrix
	tmp     *v3.Matrix
}

//NewBisectingAngleRotator binds a bisector-axis rotator to the residue.
func NewBisectingAngleRotator(residue *qfit.Residue) (*BisectingAngleRotator, error) {
	toCA, toCG, err := cbAxes(residue)
	if err != nil {
		return nil, qfit.ErrDecorate(err, "NewBisectingAngleRotator")
	}
	toCA.Unit(toCA)
	toCG.Unit(toCG)
	axis := v3.Zeros(1)
	axis.Add(toCA.Dense, toCG.Dense)
	axis.Unit(axis)
	origin, sel, forward, local, err := cbSetup(residue, axis)
	if err != nil {
		return nil, qfit.ErrDecorate(err, "NewBisectingAngleRotator")
	}
	return &BisectingAngleRotator{residue: residue, origin: origin, sel: sel, forward: forward, local: local, tmp: v3.Zeros(local.NVecs())}, nil
}

//Call rotates the side chain about the bisector axis by the given
//angle, in degrees.
func (B *BisectingAngleRotator) Call(angle float64) error {
	R := mat.NewDense(3, 3, nil)
	R.Mul(B.forward, Rz(deg2rad(angle)))
	rotateLocal(B.tmp, B.local, R, B.origin)
	if err := B.residue.SetCoords(B.tmp, B.sel); err != nil {
		return qfit.ErrDecorate(err, "BisectingAngleRotator.Call")
	}
	return nil
}

//Translator translates a ligand rigidly.
type Translator struct {
	ligand *qfit.Ligand
	start  *v3.Matrix
}

//NewTranslator binds a translator to a ligand, caching its current
//coordinates.
func NewTranslator(ligand *qfit.Ligand) *Translator {
	return &Translator{ligand: ligand, start: ligand.Coords(nil)}
}

//Call moves the ligand to its cached coordinates plus trans, a
//3-element displacement. The translation is absolute with respect to
//the coordinates at construction, not incremental.
func (T *Translator) Call(trans []float64) error {
	if len(trans) != 3 {
		return qfit.NewConfigurationError(fmt.Sprintf("Translator: translation vector of length %d, want 3", len(trans)))
	}
	vec, _ := v3.NewMatrix([]float64{trans[0], trans[1], trans[2]})
	moved := v3.Zeros(T.start.NVecs())
	moved.AddVec(T.start, vec)
	if err := T.ligand.SetCoords(moved, nil); err != nil {
		return qfit.ErrDecorate(err, "Translator.Call")
	}
	return nil
}

//GlobalRotator rotates a ligand rigidly about a fixed center.
type GlobalRotator struct {
	ligand   *qfit.Ligand
	center   *v3.Matrix
	centered *v3.Matrix
	tmp      *v3.Matrix
}

//GlobalOption is a construction option for a GlobalRotator.
type GlobalOption func(*globalOptions)

type globalOptions struct {
	center *v3.Matrix
}

//Center sets the rotation center. Without it the ligand centroid at
//construction time is used.
func Center(c *v3.Matrix) GlobalOption {
	return func(o *globalOptions) { o.center = c }
}

//NewGlobalRotator binds a rigid rotator to a ligand, caching its
//coordinates relative to the rotation center.
func NewGlobalRotator(ligand *qfit.Ligand, options ...GlobalOption) *GlobalRotator {
	var opt globalOptions
	for _, o := range options {
		o(&opt)
	}
	center := opt.center
	if center == nil {
		center = ligand.Centroid(nil)
	}
	centered := ligand.Coords(nil)
	centered.SubVec(centered, center)
	return &GlobalRotator{ligand: ligand, center: center, centered: centered, tmp: v3.Zeros(centered.NVecs())}
}

//Call rotates the cached centered coordinates by rotmat (a 3x3
//rotation matrix) and writes the result back around the center.
func (G *GlobalRotator) Call(rotmat *mat.Dense) error {
	r, c := rotmat.Dims()
	if r != 3 || c != 3 {
		return qfit.NewConfigurationError(fmt.Sprintf("GlobalRotator: %dx%d rotation matrix, want 3x3", r, c))
	}
	rotateLocal(G.tmp, G.centered, rotmat, G.center)
	if err := G.ligand.SetCoords(G.tmp, nil); err != nil {
		return qfit.ErrDecorate(err, "GlobalRotator.Call")
	}
	return nil
}

//BondRotator rotates a ligand about the bond between two named atoms.
//The atoms connected through the first atom stay fixed; everything
//reachable from the second atom without passing through the first
//moves.
type BondRotator struct {
	ligand    *qfit.Ligand
	root      int
	moved     []int
	foundRoot int
	origin    *v3.Matrix
	forward   *mat.Dense
	local     *v3.Matrix
	tmp       *v3.Matrix
}

//BondOption is a construction option for a BondRotator.
type BondOption func(*bondOptions)

type bondOptions struct {
	rejectRings bool
}

//RejectRings makes construction fail with a configuration error when
//the rotated bond is part of a ring. The default keeps the legacy
//behaviour: the traversal reconnecting to the root is only recorded
//(see FoundRoot) and the ring is rotated as if the closing bond did
//not exist.
func RejectRings() BondOption {
	return func(o *bondOptions) { o.rejectRings = true }
}

//NewBondRotator binds a rotator to the ligand bond a1-a2 (atom names).
//The moved atom set is found by traversing the ligand connectivity
//from a2 without crossing a1, and the coordinates of the moved atoms
//are cached in the frame where the bond is the Z axis.
func NewBondRotator(ligand *qfit.Ligand, a1, a2 string, options ...BondOption) (*BondRotator, error) {
	var opt bondOptions
	for _, o := range options {
		o(&opt)
	}
	ends, err := ligand.NamedSelection(a1, a2)
	if err != nil {
		return nil, qfit.ErrDecorate(err, "NewBondRotator")
	}
	root, curr := ends[0], ends[1]
	downstream, foundRoot := molgraph.Downstream(ligand.Connectivity(), root, curr)
	if opt.rejectRings && foundRoot > 1 {
		return nil, qfit.NewConfigurationError(fmt.Sprintf("NewBondRotator: atoms %s and %s are part of a ring; the bond cannot be rotated", a1, a2))
	}
	//the root sits on the axis; carrying it along is harmless and
	//keeps the bond direction as the second cached row
	moved := append([]int{root}, downstream...)

	origin := ligand.Coords([]int{root})
	local := ligand.Coords(moved)
	local.SubVec(local, origin)
	axis := v3.Zeros(1)
	axis.Copy(local.VecView(1).Dense)
	aligner, err := NewZAxisAligner(axis)
	if err != nil {
		return nil, qfit.ErrDecorate(err, "NewBondRotator")
	}
	aligned := v3.Zeros(local.NVecs())
	aligned.Mul(local.Dense, aligner.Backward.T())

	return &BondRotator{
		ligand:    ligand,
		root:      root,
		moved:     moved,
		foundRoot: foundRoot,
		origin:    origin,
		forward:   aligner.Forward,
		local:     aligned,
		tmp:       v3.Zeros(local.NVecs()),
	}, nil
}

//FoundRoot returns how many traversal edges reconnected to the fixed
//atom of the bond. A value above 1 means the bond closes a ring.
func (B *BondRotator) FoundRoot() int { return B.foundRoot }

//MovedAtoms returns the indices of the atoms the rotation writes,
//the fixed bond atom first.
func (B *BondRotator) MovedAtoms() []int { return B.moved }

//Call rotates the moved atoms about the bond by the given angle, in
//radians, writing the result into the ligand like every other sampler
//in the package. Calls are absolute with respect to the coordinates
//at construction.
func (B *BondRotator) Call(angle float64) error {
	R := mat.NewDense(3, 3, nil)
	R.Mul(B.forward, Rz(angle))
	rotateLocal(B.tmp, B.local, R, B.origin)
	if err := B.ligand.SetCoords(B.tmp, B.moved); err != nil {
		return qfit.ErrDecorate(err, "BondRotator.Call")
	}
	return nil
}

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
