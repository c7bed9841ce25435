package tabfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const regulonTSV = "Regulator\tTarget\tScore\n7157\t673\t0.91\n1026\t5290\t0.44\n"

func TestReadPreservesShape(t *testing.T) {
	tbl, err := Read(strings.NewReader(regulonTSV), '\t')
	if err != nil {
		t.Fatal(err)
	}

	if got, want := len(tbl.Columns), 3; got != want {
		t.Errorf("got %d columns, want %d", got, want)
	}
	if got, want := len(tbl.Rows), 2; got != want {
		t.Errorf("got %d rows, want %d", got, want)
	}
	if tbl.Rows[0][0] != "7157" || tbl.Rows[1][2] != "0.44" {
		t.Errorf("rows not read in order: %v", tbl.Rows)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	tbl, err := Read(strings.NewReader(regulonTSV), '\t')
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := tbl.Write(&buf); err != nil {
		t.Fatal(err)
	}

	if buf.String() != regulonTSV {
		t.Errorf("round trip mismatch:\ngot  %q\nwant %q", buf.String(), regulonTSV)
	}
}

func TestHeaderOnly(t *testing.T) {
	tbl, err := Read(strings.NewReader("Regulator\tTarget\n"), '\t')
	if err != nil {
		t.Fatal(err)
	}

	if len(tbl.Rows) != 0 {
		t.Errorf("expected zero rows, got %d", len(tbl.Rows))
	}

	var buf bytes.Buffer
	if err := tbl.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Regulator\tTarget\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRaggedRowIsError(t *testing.T) {
	if _, err := Read(strings.NewReader("A\tB\n1\t2\t3\n"), '\t'); err == nil {
		t.Error("expected an error for a row with too many fields")
	}
}

func TestSetColumn(t *testing.T) {
	tbl, err := Read(strings.NewReader(regulonTSV), '\t')
	if err != nil {
		t.Fatal(err)
	}

	if err := tbl.SetColumn("Regulator", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if tbl.Rows[0][0] != "a" || tbl.Rows[1][0] != "b" {
		t.Errorf("column not substituted: %v", tbl.Rows)
	}

	if err := tbl.SetColumn("Regulator", []string{"only-one"}); err == nil {
		t.Error("expected an error for a length mismatch")
	}
	if err := tbl.SetColumn("NoSuchColumn", []string{"a", "b"}); err == nil {
		t.Error("expected an error for an unknown column")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tbl, err := Read(strings.NewReader(regulonTSV), '\t')
	if err != nil {
		t.Fatal(err)
	}

	dup := tbl.Clone()
	dup.Rows[0][0] = "changed"
	if tbl.Rows[0][0] != "7157" {
		t.Error("mutating the clone changed the original")
	}
}

func TestOpenSniffsCommaDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cohort.txt")
	if err := os.WriteFile(path, []byte("Regulator,Target\n7157,673\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tbl, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Columns) != 2 || tbl.Rows[0][1] != "673" {
		t.Errorf("comma-delimited input not parsed: %v / %v", tbl.Columns, tbl.Rows)
	}
}
