/*
 * structure.go, part of qfit.
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
	"strings"

	v3 "github.com/TonnarCastellano/qfit-3.0/v3"
)

// Atom represents the metadata of one atom. Coordinates live in the
// Structure, not here, so the same atom list can be shared between
// alternate coordinate sets.
type Atom struct {
	Name      string
	ID        int
	MolName   string //the 3-letter residue or ligand name
	MolID     int
	Chain     string
	Symbol    string
	Occupancy float64
	Bfactor   float64
}

// Structure owns an atom list and the single coordinate matrix that is
// the source of truth for their positions. Samplers hold a reference to
// a Structure and mutate its coordinates in place through SetCoords;
// they never own the matrix. A Structure is not safe for concurrent
// mutation.
type Structure struct {
	atoms  []*Atom
	coords *v3.Matrix
}

// NewStructure creates a Structure from an atom list and a coordinate
// matrix with one row per atom.
func NewStructure(atoms []*Atom, coords *v3.Matrix) (*Structure, error) {
	if coords == nil || atoms == nil {
		return nil, NewConfigurationError("NewStructure: nil atoms or coordinates")
	}
	if coords.NVecs() != len(atoms) {
		return nil, NewConfigurationError(fmt.Sprintf("NewStructure: %d atoms but %d coordinate rows", len(atoms), coords.NVecs()))
	}
	return &Structure{atoms: atoms, coords: coords}, nil
}

// Len returns the number of atoms.
func (S *Structure) Len() int { return len(S.atoms) }

// Atom returns the atom with index i. Panics if out of range.
func (S *Structure) Atom(i int) *Atom { return S.atoms[i] }

func attrValue(at *Atom, attr string) string {
	switch strings.ToLower(attr) {
	case "name":
		return at.Name
	case "symbol":
		return at.Symbol
	case "molname":
		return at.MolName
	case "chain":
		return at.Chain
	}
	return ""
}

// Select returns the indices of the atoms whose attribute attr ("name",
// "symbol", "molname" or "chain") equals any of the given values, in
// atom order. Atoms matching none of the values are simply left out;
// an empty selection is not an error.
func (S *Structure) Select(attr string, values ...string) []int {
	sel := make([]int, 0, len(values))
	for i, at := range S.atoms {
		if isInString(values, attrValue(at, attr)) {
			sel = append(sel, i)
		}
	}
	return sel
}

// SelectNot is Select with the comparator inverted: it returns the
// atoms whose attribute equals none of the given values.
func (S *Structure) SelectNot(attr string, values ...string) []int {
	sel := make([]int, 0, S.Len())
	for i, at := range S.atoms {
		if !isInString(values, attrValue(at, attr)) {
			sel = append(sel, i)
		}
	}
	return sel
}

// NamedSelection returns one atom index per given name, in the order of
// the names. Unlike Select, every name must match exactly one atom;
// a missing or duplicated name is a configuration error. This is the
// lookup used to resolve torsion-defining atom triples.
func (S *Structure) NamedSelection(names ...string) ([]int, error) {
	sel := make([]int, len(names))
	for k, name := range names {
		found := -1
		for i, at := range S.atoms {
			if at.Name != name {
				continue
			}
			if found >= 0 {
				return nil, NewConfigurationError(fmt.Sprintf("NamedSelection: atom name %s is not unique", name))
			}
			found = i
		}
		if found < 0 {
			return nil, NewConfigurationError(fmt.Sprintf("NamedSelection: no atom named %s", name))
		}
		sel[k] = found
	}
	return sel, nil
}

// Coords returns a copy of the coordinates of the atoms in sel, in the
// order of sel. A nil sel means all atoms. The copy may be freely
// mutated; write it back with SetCoords.
func (S *Structure) Coords(sel []int) *v3.Matrix {
	if sel == nil {
		c := v3.Zeros(S.Len())
		c.Copy(S.coords.Dense)
		return c
	}
	c := v3.Zeros(len(sel))
	c.SomeVecs(S.coords, sel)
	return c
}

// CoordView returns the coordinate vector of atom i as a live view.
// Writes through the view alter the Structure.
func (S *Structure) CoordView(i int) *v3.Matrix {
	return S.coords.VecView(i)
}

// SetCoords writes the rows of c back to the atoms in sel, preserving
// every atom outside sel unchanged. A nil sel means all atoms.
func (S *Structure) SetCoords(c *v3.Matrix, sel []int) error {
	if sel == nil {
		if c.NVecs() != S.Len() {
			return NewConfigurationError(fmt.Sprintf("SetCoords: %d rows for %d atoms", c.NVecs(), S.Len()))
		}
		S.coords.Copy(c.Dense)
		return nil
	}
	if c.NVecs() != len(sel) {
		return NewConfigurationError(fmt.Sprintf("SetCoords: %d rows for a selection of %d atoms", c.NVecs(), len(sel)))
	}
	S.coords.SetVecs(c, sel)
	return nil
}

// Centroid returns the geometric center of the atoms in sel (nil for
// all atoms).
func (S *Structure) Centroid(sel []int) *v3.Matrix {
	c := S.Coords(sel)
	n := c.NVecs()
	center := v3.Zeros(1)
	for i := 0; i < n; i++ {
		center.Add(center.Dense, c.VecView(i).Dense)
	}
	center.Scale(1.0/float64(n), center.Dense)
	return center
}

//Some internal convenience functions.

// isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	if container == nil {
		return false
	}
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

// isInInt is the same, for ints.
func isInInt(container []int, test int) bool {
	if container == nil {
		return false
	}
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
