package psmtsv

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// multiReadCloser closes every wrapped closer on Close.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens a table for reading. "-" is stdin; gzip input, detected by the
// .gz suffix or the 1F 8B magic number, is decompressed in parallel.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	brd := bufio.NewReader(fh)
	sig, _ := brd.Peek(2)
	if strings.HasSuffix(path, ".gz") || (len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b) {
		zr, err := pgzip.NewReader(brd)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: zr, closers: []io.Closer{zr, fh}}, nil
	}

	return &multiReadCloser{Reader: brd, closers: []io.Closer{fh}}, nil
}
