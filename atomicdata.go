/*
 * atomicdata.go, part of qfit.
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

//Static chemistry tables: chi-angle definitions per residue type and
//van der Waals parameters per element. PDB v3 atom nomenclature.

//chiAtoms maps each chi-bearing residue type to the atom quadruples
//defining its chi angles, chi1 first. The rotation axis of chi n is the
//bond between the 2nd and 3rd atoms of quadruple n. GLY and ALA have no
//chi angles; PRO's are locked in the pyrrolidine ring and not sampled.
var chiAtoms = map[string][][]string{
	"ARG": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD"}, {"CB", "CG", "CD", "NE"}, {"CG", "CD", "NE", "CZ"}},
	"ASN": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "OD1"}},
	"ASP": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "OD1"}},
	"CYS": {{"N", "CA", "CB", "SG"}},
	"GLN": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD"}, {"CB", "CG", "CD", "OE1"}},
	"GLU": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD"}, {"CB", "CG", "CD", "OE1"}},
	"HIS": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "ND1"}},
	"ILE": {{"N", "CA", "CB", "CG1"}, {"CA", "CB", "CG1", "CD1"}},
	"LEU": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD1"}},
	"LYS": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD"}, {"CB", "CG", "CD", "CE"}, {"CG", "CD", "CE", "NZ"}},
	"MET": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "SD"}, {"CB", "CG", "SD", "CE"}},
	"PHE": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD1"}},
	"SER": {{"N", "CA", "CB", "OG"}},
	"THR": {{"N", "CA", "CB", "OG1"}},
	"TRP": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD1"}},
	"TYR": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD1"}},
	"VAL": {{"N", "CA", "CB", "CG1"}},
}

//chiMoved maps each residue type to the atoms displaced by each chi
//rotation, chi1 first. Hydrogens are included; names not present in a
//given model are simply not selected. Atoms on the rotation axis are
//left out.
var chiMoved = map[string][][]string{
	"ARG": {
		{"HB2", "HB3", "CG", "HG2", "HG3", "CD", "HD2", "HD3", "NE", "HE", "CZ", "NH1", "HH11", "HH12", "NH2", "HH21", "HH22"},
		{"HG2", "HG3", "CD", "HD2", "HD3", "NE", "HE", "CZ", "NH1", "HH11", "HH12", "NH2", "HH21", "HH22"},
		{"HD2", "HD3", "NE", "HE", "CZ", "NH1", "HH11", "HH12", "NH2", "HH21", "HH22"},
		{"HE", "CZ", "NH1", "HH11", "HH12", "NH2", "HH21", "HH22"},
	},
	"ASN": {
		{"HB2", "HB3", "CG", "OD1", "ND2", "HD21", "HD22"},
		{"OD1", "ND2", "HD21", "HD22"},
	},
	"ASP": {
		{"HB2", "HB3", "CG", "OD1", "OD2", "HD2"},
		{"OD1", "OD2", "HD2"},
	},
	"CYS": {
		{"HB2", "HB3", "SG", "HG"},
	},
	"GLN": {
		{"HB2", "HB3", "CG", "HG2", "HG3", "CD", "OE1", "NE2", "HE21", "HE22"},
		{"HG2", "HG3", "CD", "OE1", "NE2", "HE21", "HE22"},
		{"OE1", "NE2", "HE21", "HE22"},
	},
	"GLU": {
		{"HB2", "HB3", "CG", "HG2", "HG3", "CD", "OE1", "OE2", "HE2"},
		{"HG2", "HG3", "CD", "OE1", "OE2", "HE2"},
		{"OE1", "OE2", "HE2"},
	},
	"HIS": {
		{"HB2", "HB3", "CG", "ND1", "HD1", "CD2", "HD2", "CE1", "HE1", "NE2", "HE2"},
		{"ND1", "HD1", "CD2", "HD2", "CE1", "HE1", "NE2", "HE2"},
	},
	"ILE": {
		{"HB", "CG1", "HG12", "HG13", "CG2", "HG21", "HG22", "HG23", "CD1", "HD11", "HD12", "HD13"},
		{"HG12", "HG13", "CD1", "HD11", "HD12", "HD13"},
	},
	"LEU": {
		{"HB2", "HB3", "CG", "HG", "CD1", "HD11", "HD12", "HD13", "CD2", "HD21", "HD22", "HD23"},
		{"HG", "CD1", "HD11", "HD12", "HD13", "CD2", "HD21", "HD22", "HD23"},
	},
	"LYS": {
		{"HB2", "HB3", "CG", "HG2", "HG3", "CD", "HD2", "HD3", "CE", "HE2", "HE3", "NZ", "HZ1", "HZ2", "HZ3"},
		{"HG2", "HG3", "CD", "HD2", "HD3", "CE", "HE2", "HE3", "NZ", "HZ1", "HZ2", "HZ3"},
		{"HD2", "HD3", "CE", "HE2", "HE3", "NZ", "HZ1", "HZ2", "HZ3"},
		{"HE2", "HE3", "NZ", "HZ1", "HZ2", "HZ3"},
	},
	"MET": {
		{"HB2", "HB3", "CG", "HG2", "HG3", "SD", "CE", "HE1", "HE2", "HE3"},
		{"HG2", "HG3", "SD", "CE", "HE1", "HE2", "HE3"},
		{"CE", "HE1", "HE2", "HE3"},
	},
	"PHE": {
		{"HB2", "HB3", "CG", "CD1", "HD1", "CD2", "HD2", "CE1", "HE1", "CE2", "HE2", "CZ", "HZ"},
		{"CD1", "HD1", "CD2", "HD2", "CE1", "HE1", "CE2", "HE2", "CZ", "HZ"},
	},
	"SER": {
		{"HB2", "HB3", "OG", "HG"},
	},
	"THR": {
		{"HB", "OG1", "HG1", "CG2", "HG21", "HG22", "HG23"},
	},
	"TRP": {
		{"HB2", "HB3", "CG", "CD1", "HD1", "CD2", "NE1", "HE1", "CE2", "CE3", "HE3", "CZ2", "HZ2", "CZ3", "HZ3", "CH2", "HH2"},
		{"CD1", "HD1", "CD2", "NE1", "HE1", "CE2", "CE3", "HE3", "CZ2", "HZ2", "CZ3", "HZ3", "CH2", "HH2"},
	},
	"TYR": {
		{"HB2", "HB3", "CG", "CD1", "HD1", "CD2", "HD2", "CE1", "HE1", "CE2", "HE2", "CZ", "OH", "HH"},
		{"CD1", "HD1", "CD2", "HD2", "CE1", "HE1", "CE2", "HE2", "CZ", "OH", "HH"},
	},
	"VAL": {
		{"HB", "CG1", "HG11", "HG12", "HG13", "CG2", "HG21", "HG22", "HG23"},
	},
}

//A map for assigning van der Waals radii to elements, in Angstrom.
//Just the common "bio-elements" plus the metals and halogens seen in
//ligands are present.
var symbolVdwrad = map[string]float64{
	"H":  1.20,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"P":  1.80,
	"S":  1.80,
	"Cl": 1.75,
	"K":  2.75,
	"Ca": 2.65,
	"Mn": 1.73,
	"Fe": 1.90,
	"Co": 1.75,
	"Ni": 1.63,
	"Cu": 1.40,
	"Zn": 1.39,
	"Se": 1.90,
	"Br": 1.85,
	"I":  1.98,
	"Mg": 1.73,
	"Na": 2.27,
	"B":  1.74,
	"Si": 2.10,
}

//VdwRadius returns the van der Waals radius of an element, or def
//when the element is not in the table.
func VdwRadius(symbol string, def float64) float64 {
	if r, ok := symbolVdwrad[symbol]; ok {
		return r
	}
	return def
}

//epsilonTable gives the pairwise Lennard-Jones well depths, in
//kcal/mol, for the common protein elements.
var epsilonTable = map[string]map[string]float64{
	"C": {"C": 0.150, "N": 0.155, "O": 0.173, "S": 0.173, "H": 0.055},
	"N": {"C": 0.155, "N": 0.160, "O": 0.179, "S": 0.179, "H": 0.057},
	"O": {"C": 0.173, "N": 0.179, "O": 0.200, "S": 0.200, "H": 0.063},
	"S": {"C": 0.173, "N": 0.179, "O": 0.200, "S": 0.200, "H": 0.063},
	"H": {"C": 0.055, "N": 0.057, "O": 0.063, "S": 0.063, "H": 0.020},
}

//Epsilon returns the pairwise well depth of two elements, or def when
//either element is missing from the table.
func Epsilon(sym1, sym2 string, def float64) float64 {
	if row, ok := epsilonTable[sym1]; ok {
		if eps, ok := row[sym2]; ok {
			return eps
		}
	}
	return def
}
