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

//Package sampler perturbs atomic coordinates along molecular degrees
//of freedom: backbone phi/psi torsions over a segment, side-chain chi
//angles, CB-bending of side chains, and rigid or bond-torsion motions
//of ligands. Each sampler binds to one structural entity at
//construction, does its O(atoms) setup once (atom selection, rotation
//axis alignment, caching of the pre-rotated local coordinates), and is
//then called repeatedly with trial parameters; every call is a small
//matrix multiply plus a selective coordinate write-back, since the
//calls sit in the innermost loop of the conformer search.
//
//All samplers mutate the bound structure in place and are therefore
//not safe for concurrent use against the same structure. A caller
//parallelizing over flexible units must give each goroutine its own
//coordinate copy.
//
//The package also generates uniform random rotations on SO(3)
//(Marsaglia's quaternion method) and ships small precomputed rotation
//sets for reproducible local searches.
package sampler
