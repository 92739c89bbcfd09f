/*
 * doc.go, part of genice-cage.
 *
 * Copyright 2024 Masakazu Matsumoto <vitroid@gmail.com>
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

/*Package cage detects cage-like topological motifs, closed quasi-polyhedral
arrangements of hydrogen-bonded rings, in water and ice structures.

A Structure is built from one of the built-in lattices (see the lattice
subpackage) or from a Gromacs coordinate file. Analyze enumerates the
shortest-path rings of its hydrogen bond network (cycles subpackage), joins
them into quasi-polyhedra (polyhed subpackage) and filters them by cage and
ring size. The result can be reported in several formats:

    plain      a human-friendly redundant listing
    json       rings, cages and their centers of mass
    json2      a census of cage types, labeled by HB network topology
    python     cage types and positions as a python literal
    yaplot     a 3D rendering of every cage, layered by size
    gromacs    each cage as a Gromacs coordinate block
    quad       the quadcage order parameter of Jacobson et al.
    solid      a census of cage ring-size signatures

All positions handled here are fractional. Cartesian nm coordinates appear
only where a format requires them (gromacs, yaplot).*/
package cage
