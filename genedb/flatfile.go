// Package genedb provides concrete lookup authorities for translating gene
// identifiers between namespaces: a flat BioMart-style export (with a small
// table embedded in the binary), a local SQLite annotation database, and a
// BigQuery mapping table for reference sets too large to ship locally.
package genedb

import (
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/carbocation/regulonmap/idmap"
)

// Namespace tags understood by the flat-file authority.
const (
	NamespaceEntrez  = "entrezgene"
	NamespaceEnsembl = "ensembl"
	NamespaceSymbol  = "hgnc_symbol"
)

//go:embed lookups/*
var embeddedLookups embed.FS

// DefaultLookupFile is the BioMart export embedded in the binary.
const DefaultLookupFile = "entrez2ensembl.grch37.genes"

type geneRecord struct {
	EntrezID     string `csv:"EntrezID"`
	GeneStableID string `csv:"GeneStableID"`
	Symbol       string `csv:"Symbol"`
}

func (r geneRecord) field(namespace string) (string, bool) {
	switch namespace {
	case NamespaceEntrez:
		return r.EntrezID, true
	case NamespaceEnsembl:
		return r.GeneStableID, true
	case NamespaceSymbol:
		return r.Symbol, true
	}

	return "", false
}

// FlatFile is a lookup authority backed by a BioMart-style TSV export with
// EntrezID, GeneStableID, and Symbol columns. When an identifier appears on
// more than one row, the first row in file order wins.
type FlatFile struct {
	records []*geneRecord
}

// OpenFlatFile loads the export at path.
func OpenFlatFile(path string) (*FlatFile, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", idmap.ErrLookupUnavailable, err)
	}

	return parseFlatFile(fileBytes)
}

// EmbeddedFlatFile loads the lookup table embedded in the binary.
func EmbeddedFlatFile() (*FlatFile, error) {
	fileBytes, err := embeddedLookups.ReadFile("lookups/" + DefaultLookupFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", idmap.ErrLookupUnavailable, err)
	}

	return parseFlatFile(fileBytes)
}

func parseFlatFile(fileBytes []byte) (*FlatFile, error) {
	// Tell gocsv to use tab as the delimiter
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		r.LazyQuotes = true
		return r
	})

	records := []*geneRecord{}
	if err := gocsv.UnmarshalBytes(fileBytes, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", idmap.ErrLookupUnavailable, err)
	}

	return &FlatFile{records: records}, nil
}

// MapIDs translates ids positionally. Unknown namespace tags are
// configuration errors; identifiers absent from the export come back as
// idmap.Unmapped.
func (ff *FlatFile) MapIDs(ctx context.Context, ids []string, from, to string) ([]string, error) {
	if _, ok := (geneRecord{}).field(from); !ok {
		return nil, fmt.Errorf("%w: unknown source namespace %q", idmap.ErrConfig, from)
	}
	if _, ok := (geneRecord{}).field(to); !ok {
		return nil, fmt.Errorf("%w: unknown target namespace %q", idmap.ErrConfig, to)
	}

	index := make(map[string]string, len(ff.records))
	for _, rec := range ff.records {
		src, _ := rec.field(from)
		dst, _ := rec.field(to)
		if src == "" || dst == "" {
			continue
		}
		if _, seen := index[src]; !seen {
			index[src] = dst
		}
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		if dst, ok := index[id]; ok {
			out[i] = dst
		} else {
			out[i] = idmap.Unmapped
		}
	}

	return out, nil
}
