/*
 * doc.go, part of qfit.
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

//Package qfit holds the structural entities for multi-conformer
//modeling of macromolecules: atoms, residues, backbone segments and
//ligands, together with the selection machinery and the static
//chemistry tables the conformational samplers rely on. A Structure
//owns a single coordinate matrix; samplers (package sampler) hold a
//reference to it and perturb selected atoms in place along molecular
//degrees of freedom. The density scoring and the occupancy solvers
//that drive the samplers live outside this module.
package qfit
