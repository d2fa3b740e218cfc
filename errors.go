/*
 * errors.go, part of gowave.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
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

package wave

import "fmt"

//Errors

//Error is the general structure for WAVECAR decoding errors.
//Format problems (a malformed header, a record/count mismatch, a
//truncated stream) and consistency problems (k-point coordinates
//disagreeing between spin channels) are all critical: the decode is
//aborted and no partial state is exposed.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("wavecar file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error and returns the
//accumulated decoration. If deco is empty, it only returns the
//current value.
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing decode was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "wavecar") associated to the error
func (err Error) Format() string { return "wavecar" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	UnableToOpen        = "Unable to open file"
	WrongRecordLength   = "Record length must be a positive multiple of 8 bytes"
	RecordOverrun       = "Requested read goes past the end of the current record"
	TruncatedFile       = "File ends before the end of the declared records"
	WrongPrecisionTag   = "Unrecognized precision tag"
	WrongSpinChannels   = "Number of spin channels must be 1 or 2"
	WrongHeaderCounts   = "K-point count, band count and energy cutoff must be positive"
	DegenerateLattice   = "Lattice vectors are coplanar: cell volume is zero"
	GVectorMismatch     = "G-vector count mismatch"
	KpointSpinMismatch  = "K-point coordinates disagree between spin channels"
	NotReadable         = "Wavecar object not initialized"
	WrongIndex          = "Spin, k-point or band index out of range"
	WrongPositionVector = "Position vectors must have 3 components"
)

//errorInt is the same interface the error implements, declared here so
//helpers can decorate without knowing the concrete type.
type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

//errDecorate asserts that err implements the package error interface
//and decorates it with the caller's name before returning it.
//If used with any other error type it will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}
