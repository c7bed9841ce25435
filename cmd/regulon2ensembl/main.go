// regulon2ensembl translates the gene identifiers in a cohort's regulon
// table from one namespace to another (by default, numeric Entrez IDs to
// Ensembl stable accessions).
//
// The single positional argument is the cohort label. The input table is
// read from <dir>/<cohort>.txt and the remapped table is written to
// <dir>/<to>_<cohort>.txt, tab-delimited and shaped exactly like the input
// except for the translated columns. Identifiers the lookup authority has
// no translation for are written as the -na marker; that is a normal
// outcome, not an error. A missing column, a missing input file, or an
// unreachable authority aborts the run before any output is written.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/carbocation/regulonmap"
	"github.com/carbocation/regulonmap/genedb"
	"github.com/carbocation/regulonmap/idmap"
	"github.com/carbocation/regulonmap/tabfile"
)

// Config carries fully resolved paths and settings for one run, so that
// nothing below main depends on the process working directory.
type Config struct {
	Cohort     string
	RegulonDir string
	Columns    []string
	From       string
	To         string
	Sentinel   string

	// LookupPath points at a flat BioMart export or a .db/.sqlite
	// annotation database; BQProject/BQTable select BigQuery instead. The
	// embedded table is used when all are empty.
	LookupPath string
	BQProject  string
	BQTable    string
}

// InputPath is the cohort's regulon table, named by convention.
func (c Config) InputPath() string {
	return filepath.Join(c.RegulonDir, c.Cohort+".txt")
}

// OutputPath prefixes the cohort's file name with the target namespace.
func (c Config) OutputPath() string {
	return filepath.Join(c.RegulonDir, c.To+"_"+c.Cohort+".txt")
}

func main() {
	var (
		dir     string
		columns string
		from    string
		to      string
		na      string
		lookup  string
		project string
		table   string
	)

	flag.StringVar(&dir, "dir", ".", "Directory holding the cohort's regulon table.")
	flag.StringVar(&columns, "columns", "Regulator,Target", "Comma-separated names of the columns whose identifiers will be translated.")
	flag.StringVar(&from, "from", genedb.NamespaceEntrez, "Source identifier namespace.")
	flag.StringVar(&to, "to", genedb.NamespaceEnsembl, "Target identifier namespace.")
	flag.StringVar(&na, "na", idmap.Unmapped, "Marker written for identifiers with no translation.")
	flag.StringVar(&lookup, "lookup", "", "Path to a BioMart TSV export or a .db/.sqlite annotation database. The built-in table is used if empty.")
	flag.StringVar(&project, "bigquery", "", "Google Cloud project; if set, identifiers are looked up in BigQuery instead of a local file.")
	flag.StringVar(&table, "table", "", "BigQuery mapping table (dataset.table); required with -bigquery.")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: regulon2ensembl [flags] COHORT")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := buildConfig(flag.Arg(0), dir, columns, from, to, na, lookup, project, table)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalln(pfx.Err(err))
	}
}

func buildConfig(cohort, dir, columns, from, to, na, lookup, project, table string) (Config, error) {
	cfg := Config{
		Cohort:    cohort,
		From:      from,
		To:        to,
		Sentinel:  na,
		BQProject: project,
		BQTable:   table,
	}

	if cfg.Cohort == "" {
		return cfg, fmt.Errorf("%w: empty cohort label", idmap.ErrConfig)
	}

	var err error
	if cfg.RegulonDir, err = regulonmap.ResolvePath(dir); err != nil {
		return cfg, err
	}
	if lookup != "" {
		if cfg.LookupPath, err = regulonmap.ResolvePath(lookup); err != nil {
			return cfg, err
		}
	}

	for _, col := range strings.Split(columns, ",") {
		if col = strings.TrimSpace(col); col != "" {
			cfg.Columns = append(cfg.Columns, col)
		}
	}
	if len(cfg.Columns) < 1 {
		return cfg, fmt.Errorf("%w: no columns selected for translation", idmap.ErrConfig)
	}

	return cfg, nil
}

func chooseMapper(ctx context.Context, cfg Config) (idmap.Mapper, error) {
	switch {
	case cfg.BQProject != "":
		if cfg.BQTable == "" {
			return nil, fmt.Errorf("%w: -bigquery requires -table", idmap.ErrConfig)
		}
		return genedb.NewBigQuery(ctx, cfg.BQProject, cfg.BQTable)
	case cfg.LookupPath != "":
		switch filepath.Ext(cfg.LookupPath) {
		case ".db", ".sqlite", ".sqlite3":
			return genedb.OpenSQLite(cfg.LookupPath)
		}
		return genedb.OpenFlatFile(cfg.LookupPath)
	}

	return genedb.EmbeddedFlatFile()
}

func run(ctx context.Context, cfg Config) error {
	if _, err := os.Stat(cfg.InputPath()); err != nil {
		return fmt.Errorf("%w: %v", idmap.ErrConfig, err)
	}

	mapper, err := chooseMapper(ctx, cfg)
	if err != nil {
		return err
	}

	tbl, err := tabfile.Open(cfg.InputPath())
	if err != nil {
		return err
	}
	log.Printf("Read %d rows x %d columns from %s\n", len(tbl.Rows), len(tbl.Columns), cfg.InputPath())

	mapped, err := idmap.Remap(ctx, tbl, cfg.Columns, mapper, cfg.From, cfg.To)
	if err != nil {
		return err
	}

	if cfg.Sentinel != idmap.Unmapped {
		rewriteSentinel(mapped, cfg.Columns, cfg.Sentinel)
	}

	// The output file is created only after the whole transform has
	// succeeded, so a fatal error never leaves partial output behind.
	if err := mapped.WriteFile(cfg.OutputPath()); err != nil {
		return err
	}
	log.Printf("Wrote %s\n", cfg.OutputPath())

	return nil
}

func rewriteSentinel(tbl *tabfile.Table, columns []string, sentinel string) {
	for _, col := range columns {
		idx := tbl.ColumnIndex(col)
		for _, row := range tbl.Rows {
			if row[idx] == idmap.Unmapped {
				row[idx] = sentinel
			}
		}
	}
}
