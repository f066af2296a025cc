/*
 * residue.go, part of qfit.
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

package qfit

import (
	"fmt"

	v3 "github.com/TonnarCastellano/qfit-3.0/v3"
)

// Residue is a Structure that represents a single amino-acid residue,
// possibly with a covalently attached fragment appended after the
// residue's own atoms. The residue type gives access to the static chi
// metadata tables.
type Residue struct {
	*Structure
	restype string
}

// NewResidue wraps a Structure as a Residue of the given 3-letter type.
// The type must be present in the chi metadata tables.
func NewResidue(s *Structure, restype string) (*Residue, error) {
	if _, ok := chiAtoms[restype]; !ok {
		return nil, NewConfigurationError(fmt.Sprintf("NewResidue: no chi metadata for residue type %s", restype))
	}
	return &Residue{Structure: s, restype: restype}, nil
}

// Type returns the 3-letter residue type.
func (R *Residue) Type() string { return R.restype }

// NChi returns the number of chi angles defined for the residue type.
func (R *Residue) NChi() int { return len(chiAtoms[R.restype]) }

// ChiAtoms returns the names of the 4 atoms defining chi angle number
// chi (0-based). The rotation axis is the bond between the second and
// third atoms.
func (R *Residue) ChiAtoms(chi int) ([]string, error) {
	quads := chiAtoms[R.restype]
	if chi < 0 || chi >= len(quads) {
		return nil, NewConfigurationError(fmt.Sprintf("ChiAtoms: residue type %s has no chi %d", R.restype, chi+1))
	}
	return quads[chi], nil
}

// ChiMoved returns the names of the atoms displaced by rotating chi
// angle number chi (0-based). Names absent from the residue (e.g.
// hydrogens that were not modeled) are simply not selected.
func (R *Residue) ChiMoved(chi int) ([]string, error) {
	moved := chiMoved[R.restype]
	if chi < 0 || chi >= len(moved) {
		return nil, NewConfigurationError(fmt.Sprintf("ChiMoved: residue type %s has no chi %d", R.restype, chi+1))
	}
	return moved[chi], nil
}

// TorsionFrame describes one backbone torsion of a segment: the atoms
// it displaces within its own residue, the rotation axis direction and
// a point on the axis. Atoms of residues closer to the C-terminus are
// accumulated by the backbone rotator, not listed here.
type TorsionFrame struct {
	Selection []int
	Axis      *v3.Matrix
	Origin    *v3.Matrix
}

// Segment is a Structure holding a contiguous stretch of residues of
// one chain, anchored at its N-terminal side.
type Segment struct {
	*Structure
	residues [][]int //atom indices per residue, chain order
}

// NewSegment builds a Segment from a Structure, splitting the atoms
// into residues by their MolID, which must be non-decreasing.
func NewSegment(s *Structure) (*Segment, error) {
	if s.Len() == 0 {
		return nil, NewConfigurationError("NewSegment: empty structure")
	}
	residues := make([][]int, 0, 4)
	current := s.Atom(0).MolID
	res := []int{0}
	for i := 1; i < s.Len(); i++ {
		id := s.Atom(i).MolID
		if id < current {
			return nil, NewConfigurationError(fmt.Sprintf("NewSegment: residue IDs not in chain order (%d after %d)", id, current))
		}
		if id != current {
			residues = append(residues, res)
			res = nil
			current = id
		}
		res = append(res, i)
	}
	residues = append(residues, res)
	return &Segment{Structure: s, residues: residues}, nil
}

// NResidues returns the number of residues in the segment.
func (S *Segment) NResidues() int { return len(S.residues) }

// ResidueAtoms returns the atom indices of residue i, in chain order.
func (S *Segment) ResidueAtoms(i int) []int { return S.residues[i] }

// namedInResidue finds the atom called name within residue res, or -1.
func (S *Segment) namedInResidue(res int, name string) int {
	for _, i := range S.residues[res] {
		if S.Atom(i).Name == name {
			return i
		}
	}
	return -1
}

// PsiPhi returns the torsion frames of the segment, starting from the
// last residue and for each residue giving psi before phi. The psi axis
// runs CA->C with origin CA and displaces the carbonyl oxygens; the phi
// axis runs N->CA with origin N and displaces every residue atom except
// N, CA and the amide hydrogen. Fails with a configuration error when a
// residue lacks its N, CA or C atom.
func (S *Segment) PsiPhi() ([]TorsionFrame, error) {
	frames := make([]TorsionFrame, 0, 2*len(S.residues))
	for r := len(S.residues) - 1; r >= 0; r-- {
		n := S.namedInResidue(r, "N")
		ca := S.namedInResidue(r, "CA")
		c := S.namedInResidue(r, "C")
		if n < 0 || ca < 0 || c < 0 {
			return nil, NewConfigurationError(fmt.Sprintf("PsiPhi: residue %d of the segment lacks one of N, CA, C", r))
		}
		psiAxis := v3.Zeros(1)
		psiAxis.Sub(S.CoordView(c).Dense, S.CoordView(ca).Dense)
		psiSel := make([]int, 0, 2)
		phiSel := make([]int, 0, len(S.residues[r]))
		for _, i := range S.residues[r] {
			switch S.Atom(i).Name {
			case "O", "OXT":
				psiSel = append(psiSel, i)
			}
			switch S.Atom(i).Name {
			case "N", "CA", "H":
			default:
				phiSel = append(phiSel, i)
			}
		}
		frames = append(frames, TorsionFrame{Selection: psiSel, Axis: psiAxis, Origin: S.Coords([]int{ca})})
		phiAxis := v3.Zeros(1)
		phiAxis.Sub(S.CoordView(ca).Dense, S.CoordView(n).Dense)
		frames = append(frames, TorsionFrame{Selection: phiSel, Axis: phiAxis, Origin: S.Coords([]int{n})})
	}
	return frames, nil
}

// Ligand is a Structure with a bond connectivity over its atoms,
// as needed for bond-torsion sampling.
type Ligand struct {
	*Structure
	conn [][]int //adjacency lists by atom index
}

// NewLigand builds a Ligand from a Structure and a bond list of atom
// index pairs. Self-bonds and out-of-range indices are configuration
// errors; duplicate bonds collapse into one.
func NewLigand(s *Structure, bonds [][2]int) (*Ligand, error) {
	conn := make([][]int, s.Len())
	for _, b := range bonds {
		i, j := b[0], b[1]
		if i == j {
			return nil, NewConfigurationError(fmt.Sprintf("NewLigand: atom %d bonded to itself", i))
		}
		if i < 0 || j < 0 || i >= s.Len() || j >= s.Len() {
			return nil, NewConfigurationError(fmt.Sprintf("NewLigand: bond %d-%d out of range", i, j))
		}
		if !isInInt(conn[i], j) {
			conn[i] = append(conn[i], j)
			conn[j] = append(conn[j], i)
		}
	}
	return &Ligand{Structure: s, conn: conn}, nil
}

// Connectivity returns the adjacency lists of the ligand, indexable by
// atom index. The returned slices are the ligand's own; do not modify.
func (L *Ligand) Connectivity() [][]int { return L.conn }

// Bonded reports whether atoms i and j share a bond.
func (L *Ligand) Bonded(i, j int) bool {
	return isInInt(L.conn[i], j)
}
