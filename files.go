/*
 * files.go, part of godplr.
 *
 * Copyright 2023 Raul Mera <rmeraaATacademicosDOTutaDOTcl>
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

package dplr

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//OpenInput opens a text input file, transparently decompressing it if
//its name ends in ".gz" or ".zst". CP2K runs tend to be archived
//compressed, and there is no point in asking people to inflate a
//several-GB output just to read a few sections out of it.
func OpenInput(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		g, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("dplr.OpenInput: %s: %w", name, err)
		}
		return &wrapclose{Reader: g, closers: []io.Closer{g, f}}, nil
	case strings.HasSuffix(name, ".zst"):
		z, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("dplr.OpenInput: %s: %w", name, err)
		}
		return &wrapclose{Reader: z, closers: []io.Closer{z.IOReadCloser(), f}}, nil
	}
	return f, nil
}

//zstd.Decoder and gzip.Reader do not close the underlying file, so both
//get closed together here.
type wrapclose struct {
	io.Reader
	closers []io.Closer
}

func (w *wrapclose) Close() error {
	var ret error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && ret == nil {
			ret = err
		}
	}
	return ret
}
