// Package tabfile reads and writes delimited tables that are small enough to
// hold fully in memory, preserving row and column order.
package tabfile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/pfx"

	"github.com/carbocation/regulonmap"
)

// Table is an in-memory delimited table. The first row of its source file
// names the columns; every data row carries exactly one value per column.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Read consumes a delimited table whose first row is the header. Rows whose
// field count differs from the header are an error.
func Read(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(records) < 1 {
		return nil, pfx.Err(fmt.Errorf("tabfile: input has no header row"))
	}

	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// Open reads the table at path, sniffing the field delimiter first. Output
// from this package is always tab-delimited regardless of what Open detects.
func Open(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	delim := regulonmap.SniffDelimiter(f)
	if _, err := f.Seek(0, 0); err != nil {
		return nil, pfx.Err(err)
	}

	return Read(bufio.NewReader(f), delim)
}

// ColumnIndex returns the position of the named column, or -1 if the table
// has no such column.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}

	return -1
}

// Column returns a copy of the named column's values in row order.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}

	return values, true
}

// SetColumn replaces the named column's values in place. The replacement
// must carry exactly one value per row.
func (t *Table) SetColumn(name string, values []string) error {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return fmt.Errorf("tabfile: no column named %q", name)
	}
	if len(values) != len(t.Rows) {
		return fmt.Errorf("tabfile: %d values for %d rows in column %q", len(values), len(t.Rows), name)
	}

	for i := range t.Rows {
		t.Rows[i][idx] = values[i]
	}

	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string{}, t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string{}, row...)
	}

	return out
}

// Write emits the table as tab-separated values, header first, with no row
// index column.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(t.Columns); err != nil {
		return pfx.Err(err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteFile writes the table to path as tab-separated values.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	w := bufio.NewWriter(f)
	if err := t.Write(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
