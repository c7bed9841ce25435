package genedb

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"

	"github.com/carbocation/regulonmap/idmap"
)

// SQLite is a lookup authority over a local annotation database holding a
// gene_id_map table:
//
//	CREATE TABLE gene_id_map (
//	    source_namespace TEXT NOT NULL,
//	    target_namespace TEXT NOT NULL,
//	    source_id        TEXT NOT NULL,
//	    target_id        TEXT NOT NULL
//	);
//
// When an identifier maps to several targets, the row with the lowest rowid
// wins.
type SQLite struct {
	DB *sqlx.DB
}

// OpenSQLite connects to the annotation database at path. A missing
// database file is an unavailable authority, not an empty one; sqlite would
// otherwise happily create a blank database on open.
func OpenSQLite(path string) (*SQLite, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", idmap.ErrLookupUnavailable, err)
	}

	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", idmap.ErrLookupUnavailable, err)
	}

	return &SQLite{DB: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.DB.Close()
}

// MapIDs translates ids positionally, with idmap.Unmapped for identifiers
// that have no row in gene_id_map for this namespace pair.
func (s *SQLite) MapIDs(ctx context.Context, ids []string, from, to string) ([]string, error) {
	out := make([]string, len(ids))
	for i := range out {
		out[i] = idmap.Unmapped
	}
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`SELECT source_id, target_id
FROM gene_id_map
WHERE source_namespace = ? AND target_namespace = ? AND source_id IN (?)
ORDER BY rowid`, from, to, ids)
	if err != nil {
		return nil, pfx.Err(err)
	}

	rows, err := s.DB.QueryContext(ctx, s.DB.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", idmap.ErrLookupUnavailable, err)
	}
	defer rows.Close()

	matched := make(map[string]string)
	for rows.Next() {
		var sourceID, targetID string
		if err := rows.Scan(&sourceID, &targetID); err != nil {
			return nil, pfx.Err(err)
		}
		if _, seen := matched[sourceID]; !seen {
			matched[sourceID] = targetID
		}
	}
	if err := rows.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	for i, id := range ids {
		if target, ok := matched[id]; ok {
			out[i] = target
		}
	}

	return out, nil
}
