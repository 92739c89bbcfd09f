/*
 * errors.go, part of genice-cage.
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

package cage

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// Each Decorate call appends the caller's name (plus, optionally, extra
// information in the format "FunctionName: Extra info") and returns the
// resulting slice. An empty string just returns the current value.
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the concrete error type of the root package.
type CError struct {
	msg  string
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

// errDecorate decorates an error implementing the Error interface with
// the caller's name. Errors of any other type are returned untouched.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

// PanicMsg is the type used for all the panics thrown by the root
// package, so they can be recovered and distinguished from those of
// other libraries.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }
