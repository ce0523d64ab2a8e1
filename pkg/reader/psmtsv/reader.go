// Package psmtsv provides streaming readers for delimited peptide
// identification tables (.psmtsv and similar)
package psmtsv

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ChrisMcGann/pepmass/pkg/core"
	"github.com/ChrisMcGann/pepmass/pkg/record"
)

const maxLineSize = 16 * 1024 * 1024

// Options configures a Reader
type Options struct {
	Delimiter string                     // default tab
	Columns   ColumnMap                  // nil = resolve from the header line
	FileNames *record.FileNameNormalizer // nil = keep file names as-is
}

// Reader provides streaming access to identification tables
type Reader struct {
	scanner       *bufio.Scanner
	opts          Options
	lineNum       int
	currentRecord *core.PeptideRecord
	err           error
}

// NewReader creates a new table reader
func NewReader(r io.Reader, opts Options) *Reader {
	if opts.Delimiter == "" {
		opts.Delimiter = "\t"
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	return &Reader{
		scanner: scanner,
		opts:    opts,
	}
}

// Columns returns the column mapping in use, resolving the header if needed.
func (r *Reader) Columns() ColumnMap {
	if r.opts.Columns == nil {
		r.readHeader()
	}
	return r.opts.Columns
}

// Next advances to the next record. Returns false when no more records or error.
func (r *Reader) Next() bool {
	r.currentRecord = nil
	if r.err != nil {
		return false
	}

	if r.opts.Columns == nil && !r.readHeader() {
		return false
	}

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := ParseLine(line, r.opts.Delimiter, r.opts.Columns, r.opts.FileNames)
		if err != nil {
			r.err = fmt.Errorf("line %d: %w", r.lineNum, err)
			return false
		}
		r.currentRecord = rec
		return true
	}

	if err := r.scanner.Err(); err != nil {
		r.err = err
	}
	return false
}

// Record returns the current record
func (r *Reader) Record() *core.PeptideRecord {
	return r.currentRecord
}

// Line returns the line number of the current record
func (r *Reader) Line() int {
	return r.lineNum
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) readHeader() bool {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			r.err = err
		} else {
			r.err = fmt.Errorf("missing header line")
		}
		r.opts.Columns = ColumnMap{}
		return false
	}
	r.lineNum++
	r.opts.Columns = ResolveHeader(strings.TrimRight(r.scanner.Text(), "\r"), r.opts.Delimiter)
	if !r.opts.Columns.Get(FullSequence).Present {
		r.err = fmt.Errorf("line %d: header has no Full Sequence column", r.lineNum)
		return false
	}
	return true
}
