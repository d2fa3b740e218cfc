/*
 * records.go, part of gowave.
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

import (
	"encoding/binary"
	"fmt"
	"io"
)

//recordReader reads a stream of Fortran-style fixed-length records
//sequentially. A read never crosses a record boundary; whatever is
//left of the current record after the logical reads is padding, which
//advance discards. WAVECAR only supports little endianness, so that
//is all we support here.
type recordReader struct {
	r        io.Reader
	filename string
	recl     int64 //record length, in bytes
	pos      int64 //bytes consumed from the current record
}

//setLength sets the record length, which is only known after the
//first values of the first record have been read. It rejects
//non-positive lengths, lengths that are not a multiple of the 8-byte
//element size, and lengths shorter than what was already consumed.
func (rr *recordReader) setLength(recl int64) error {
	if recl <= 0 || recl%8 != 0 || recl < rr.pos {
		return Error{fmt.Sprintf("%s: %d", WrongRecordLength, recl), rr.filename, []string{"setLength"}, true}
	}
	rr.recl = recl
	return nil
}

func (rr *recordReader) read(data interface{}, nbytes int64) error {
	if rr.pos+nbytes > rr.recl {
		return Error{fmt.Sprintf("%s: %d bytes requested, %d left", RecordOverrun, nbytes, rr.recl-rr.pos), rr.filename, []string{"read"}, true}
	}
	if err := binary.Read(rr.r, binary.LittleEndian, data); err != nil {
		return Error{TruncatedFile + ": " + err.Error(), rr.filename, []string{"read"}, true}
	}
	rr.pos += nbytes
	return nil
}

func (rr *recordReader) float64s(buf []float64) error {
	return rr.read(buf, int64(len(buf))*8)
}

func (rr *recordReader) complex64s(buf []complex64) error {
	return rr.read(buf, int64(len(buf))*8)
}

func (rr *recordReader) complex128s(buf []complex128) error {
	return rr.read(buf, int64(len(buf))*16)
}

//advance discards the rest of the current record, so the next read
//starts at a record boundary.
func (rr *recordReader) advance() error {
	if rr.pos < rr.recl {
		if _, err := io.CopyN(io.Discard, rr.r, rr.recl-rr.pos); err != nil {
			return Error{TruncatedFile + ": " + err.Error(), rr.filename, []string{"advance"}, true}
		}
	}
	rr.pos = 0
	return nil
}
