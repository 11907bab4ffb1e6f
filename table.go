package snprisk

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// sniffSize is how much of a table is inspected to guess its delimiter.
const sniffSize = 64 * 1024

// MissingColumnError is returned when a required header name is absent from a
// table. It is always fatal for the stage that asked for the column.
type MissingColumnError struct {
	Source string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: required column %q is missing from the header", e.Source, e.Column)
}

// Table is a fully materialized delimited text file: a header row plus the
// data rows underneath it. Columns are located by name, never by position.
type Table struct {
	Source    string
	Delimiter rune
	Header    []string
	Rows      [][]string

	index map[string]int
}

// OpenTable reads a local or gs:// delimited file, decompressing it if needed
// and detecting whether it is comma- or tab-delimited. The file handle is
// released before OpenTable returns.
func OpenTable(path string, client *storage.Client) (*Table, error) {
	fd, err := Open(path, client)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	return ReadTable(fd, path)
}

// Open returns a decompressed stream of a local or gs:// file.
func Open(path string, client *storage.Client) (io.ReadCloser, error) {
	f, _, err := MaybeOpenSeekerFromGoogleStorage(path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	fd, err := MaybeDecompressReadCloser(f)
	if err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}

	return fd, nil
}

// ReadTable detects the delimiter from the first bytes of r and then reads the
// whole table.
func ReadTable(r io.Reader, source string) (*Table, error) {
	br := bufio.NewReaderSize(r, sniffSize)
	sample, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, pfx.Err(err)
	}

	return ReadTableWithDelimiter(br, source, DetermineDelimiter(bytes.NewReader(sample)))
}

// ReadTableWithDelimiter reads a table whose delimiter is already known. Rows
// with a different number of fields than the header are kept; callers index
// them with Cell, which tolerates short rows.
func ReadTableWithDelimiter(r io.Reader, source string, delimiter rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true

	t := &Table{
		Source:    source,
		Delimiter: delimiter,
		Rows:      make([][]string, 0),
		index:     make(map[string]int),
	}

	jagged := 0
	for i := 0; ; i++ {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			} else if perr := (*csv.ParseError)(nil); errors.As(err, &perr) && perr.Err == csv.ErrFieldCount {
				// We actually permit this
				jagged++
			} else {
				return nil, pfx.Err(fmt.Errorf("%s: %w", source, err))
			}
		}

		if i == 0 {
			t.setHeader(row)
			continue
		}

		t.Rows = append(t.Rows, row)
	}

	if jagged > 0 {
		log.Printf("%s: recovered from %d jagged rows whose field count differs from the header\n", source, jagged)
	}

	return t, nil
}

func (t *Table) setHeader(row []string) {
	t.Header = make([]string, len(row))
	for i, name := range row {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		t.Header[i] = name

		// The first occurrence of a duplicated name wins
		if _, exists := t.index[name]; !exists {
			t.index[name] = i
		}
	}
}

// Has reports whether the header contains the named column.
func (t *Table) Has(name string) bool {
	_, exists := t.index[name]
	return exists
}

// Column returns the index of the named column, or a *MissingColumnError.
func (t *Table) Column(name string) (int, error) {
	if idx, exists := t.index[name]; exists {
		return idx, nil
	}

	return -1, &MissingColumnError{Source: t.Source, Column: name}
}

// Columns resolves several required columns at once, failing on the first
// one that is absent.
func (t *Table) Columns(names ...string) ([]int, error) {
	out := make([]int, 0, len(names))
	for _, name := range names {
		idx, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}

	return out, nil
}

// Cell returns row[col], or "" when the row is too short to have that column.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}

	return row[col]
}

// WriteTable writes a header and rows as comma-delimited text.
func WriteTable(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return pfx.Err(err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteFile creates path, hands a buffered writer to write, and flushes and
// closes the file afterwards. If write fails, the file is removed.
func WriteFile(path string, write func(w io.Writer) error) error {
	path = ExpandHome(path)
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	bw := bufio.NewWriter(f)
	err = write(bw)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		// Leave nothing half-written behind
		f.Close()
		os.Remove(path)
		return pfx.Err(err)
	}

	return f.Close()
}
