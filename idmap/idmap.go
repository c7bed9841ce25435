// Package idmap translates the gene identifiers in selected table columns
// from one naming scheme to another through an external lookup authority.
package idmap

import (
	"context"
	"errors"
	"fmt"

	"github.com/carbocation/pfx"

	"github.com/carbocation/regulonmap/tabfile"
)

// Unmapped marks identifiers the lookup authority has no translation for.
const Unmapped = "NA"

var (
	// ErrConfig indicates the run can never succeed as configured: a
	// selected column is absent from the table, a namespace tag is unknown,
	// or an input path does not exist.
	ErrConfig = errors.New("idmap: configuration error")

	// ErrLookupUnavailable indicates the lookup authority itself could not
	// be reached or loaded. An identifier missing from a reachable
	// authority is not an error; it comes back as Unmapped.
	ErrLookupUnavailable = errors.New("idmap: lookup authority unavailable")
)

// Mapper is a batch identifier-translation capability. Implementations
// return exactly one output per input, in input order, with Unmapped where
// no translation exists. When an identifier has several translations,
// implementations take the first in their own documented ordering.
type Mapper interface {
	MapIDs(ctx context.Context, ids []string, from, to string) ([]string, error)
}

// Remap returns a copy of tbl in which every value in the selected columns
// has been translated from the source to the target namespace. Row count,
// row order, and all non-selected columns are untouched. Each selected
// column is sent to the authority as one batch; the substitution is
// positional, so every input row receives exactly one output value.
//
// All selected columns are validated up front, before the first lookup
// call, so a misconfigured run never reaches the authority.
func Remap(ctx context.Context, tbl *tabfile.Table, columns []string, m Mapper, from, to string) (*tabfile.Table, error) {
	for _, col := range columns {
		if tbl.ColumnIndex(col) < 0 {
			return nil, fmt.Errorf("%w: column %q not present in table (have %v)", ErrConfig, col, tbl.Columns)
		}
	}

	out := tbl.Clone()
	for _, col := range columns {
		ids, _ := out.Column(col)

		mapped, err := m.MapIDs(ctx, ids, from, to)
		if err != nil {
			// Returned as-is so callers can still test against the error
			// taxonomy with errors.Is.
			return nil, err
		}
		if len(mapped) != len(ids) {
			return nil, pfx.Err(fmt.Errorf("idmap: authority returned %d identifiers for %d inputs in column %q", len(mapped), len(ids), col))
		}

		for i, v := range mapped {
			if v == "" {
				mapped[i] = Unmapped
			}
		}

		if err := out.SetColumn(col, mapped); err != nil {
			return nil, pfx.Err(err)
		}
	}

	return out, nil
}
