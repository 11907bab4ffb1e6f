package snprisk

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
)

// A zlib stream opens with CMF 0x78 (deflate, 32K window) and one of the
// FLG bytes for the four compression levels.
var byteCodeSigs = map[DataType][][]byte{
	DataTypeGzip:  {{0x1f, 0x8b, 0x08}},
	DataTypeZip:   {{0x50, 0x4b, 0x03, 0x04}},
	DataTypeXZ:    {{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	DataTypeZlib:  {{0x78, 0x01}, {0x78, 0x5e}, {0x78, 0x9c}, {0x78, 0xda}},
	DataTypeBZip2: {{0x42, 0x5a, 0x68}},
}

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// Too short to carry any signature; an empty export is still a
		// (headerless) table.
		return DataTypeNoCompression, nil
	} else if err != nil {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

	// Match known signatures
	for dt, sigs := range byteCodeSigs {
		for _, sig := range sigs {
			if bytes.HasPrefix(buff, sig) {
				return dt, nil
			}
		}
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompressReadCloser sniffs the first bytes of f, rewinds it, and wraps
// it in the matching decompressor. Closing the result closes f.
func MaybeDecompressReadCloser(f ReadSeekCloser) (io.ReadCloser, error) {
	dt, err := DetectDataType(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// Reset the original reader before any decompressor consumes it
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, pfx.Err(err)
	}

	var rdr io.Reader
	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rdr = gz
	case DataTypeZip:
		zs := zipstream.NewReader(f)
		// Position the stream at the first member of the archive
		if _, err := zs.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		rdr = zs
	case DataTypeBZip2:
		rdr = bzip2.NewReader(f)
	case DataTypeXZ:
		reader, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rdr = reader
	case DataTypeZlib:
		zr, err := zlib.NewReader(f)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rdr = zr
	default:
		// No data type detected. For now, we assume this is uncompressed.
		return f, nil
	}

	return &layeredReadCloser{Reader: rdr, underlying: f}, nil
}

// layeredReadCloser reads through a decompressor but closes the handle
// underneath it.
type layeredReadCloser struct {
	io.Reader
	underlying io.Closer
}

func (c *layeredReadCloser) Close() error {
	if cl, ok := c.Reader.(io.Closer); ok {
		cl.Close()
	}
	return c.underlying.Close()
}
