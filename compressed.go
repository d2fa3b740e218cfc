/*
 * compressed.go, part of gowave.
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
	"bufio"
	"compress/gzip"
	"compress/lzw"
	"io"
	"log"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const (
	lzwOrder        = lzw.MSB
	lzwLitwidth int = 8
)

//WAVECAR files are large and mostly coefficients, so they compress
//well and people do store them compressed. Since the decode is
//strictly sequential anyway, reading through a decompressor costs
//nothing structurally.

//zstd's Decoder has a Close method without an error return, so it is
//not an io.ReadCloser by itself.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

//Close closes the object. It can not be used after this call.
func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//prepSource opens fname and returns an object that reads data from
//it, either as is or decompressing first, depending on the format
//string. If format is empty it is deduced from the file extension:
//.gz (gzip), .zst/.zstd (zstd) and .lzw are supported, anything else
//(including the customary extension-less WAVECAR) is read as plain.
//An unsupported explicit format string is logged and the file is
//assumed plain.
func prepSource(fname string, format string) (io.ReadCloser, error) {
	var fk string
	if format == "" {
		temp := strings.Split(fname, ".")
		fk = strings.ToLower(temp[len(temp)-1])
	} else {
		fk = strings.ToLower(format)
	}
	fhandle, err := os.Open(fname)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), fname, []string{"os.Open", "prepSource"}, true}
	}
	reader := bufio.NewReader(fhandle)
	closeBoth := func(inner io.ReadCloser) io.ReadCloser { return &stacked{inner, fhandle} }
	switch fk {
	case "gz":
		gz, err := gzip.NewReader(reader)
		if err != nil {
			fhandle.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), fname, []string{"gzip.NewReader", "prepSource"}, true}
		}
		return closeBoth(gz), nil
	case "zst", "zstd":
		dec, err := zstd.NewReader(reader)
		if err != nil {
			fhandle.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), fname, []string{"zstd.NewReader", "prepSource"}, true}
		}
		return closeBoth(zstdql{dec.Close, dec}), nil
	case "lzw":
		return closeBoth(lzw.NewReader(reader, lzwOrder, lzwLitwidth)), nil
	default:
		if format != "" {
			log.Printf("Format string %s not supported. %s will be assumed to be a plain WAVECAR file", format, fname)
		}
		return fhandle, nil
	}
}

//stacked is a decompressor over a file; Close closes both.
type stacked struct {
	io.ReadCloser
	f *os.File
}

func (s *stacked) Close() error {
	err := s.ReadCloser.Close()
	if err2 := s.f.Close(); err == nil {
		err = err2
	}
	return err
}
