/*
 * errors.go, part of qfit.
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

import "errors"

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows adding and retrieving info from
// the error without changing its type or wrapping it around something
// else. The decoration slice contains a list of the functions in the
// calling stack the error has passed through. If passed an empty string,
// Decorate just returns the current value without adding to it.
type Error interface {
	Error() string
	Decorate(string) []string
}

// Kind classifies errors so the driver can tell a bad parameter vector
// from degenerate geometry or a missing data file. All errors are fatal
// to the operation that produced them; none is retried internally.
type Kind int

const (
	// Configuration: required atoms missing or malformed, parameter
	// vector of the wrong length, unknown residue type or chi index.
	Configuration Kind = iota
	// Geometry: degenerate input (collinear points, zero-length axis)
	// or a failed numerical verification.
	Geometry
	// Resource: a named rotation-set file is missing or corrupt.
	Resource
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Geometry:
		return "geometry"
	case Resource:
		return "resource"
	}
	return "unknown"
}

// CError is the concrete error type of the library.
type CError struct {
	msg  string
	kind Kind
	deco []string
}

func (err *CError) Error() string { return err.msg }

// Decorate adds the dec string to the decoration slice of the error and
// returns the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Kind returns the classification of the error.
func (err *CError) Kind() Kind { return err.kind }

// NewConfigurationError returns a configuration-class CError.
func NewConfigurationError(msg string) *CError {
	return &CError{msg: msg, kind: Configuration}
}

// NewGeometryError returns a geometry-class CError.
func NewGeometryError(msg string) *CError {
	return &CError{msg: msg, kind: Geometry}
}

// NewResourceError returns a resource-class CError.
func NewResourceError(msg string) *CError {
	return &CError{msg: msg, kind: Resource}
}

// IsKind reports whether err is a CError of the given kind.
func IsKind(err error, k Kind) bool {
	var c *CError
	if errors.As(err, &c) {
		return c.kind == k
	}
	return false
}

// ErrDecorate asserts that err implements Error and decorates it with
// the caller's name before returning it. Panics on a foreign error type,
// as that is a programming error within the library.
func ErrDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
