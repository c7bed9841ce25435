package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/regulonmap/idmap"
)

func testConfig(t *testing.T, cohort string) Config {
	t.Helper()

	cfg, err := buildConfig(cohort, t.TempDir(), "Regulator,Target", "entrezgene", "ensembl", idmap.Unmapped, "", "", "")
	if err != nil {
		t.Fatal(err)
	}

	return cfg
}

func TestPathConvention(t *testing.T) {
	cfg := testConfig(t, "TCGA-BRCA")

	if got := filepath.Base(cfg.InputPath()); got != "TCGA-BRCA.txt" {
		t.Errorf("input name %q", got)
	}
	if got := filepath.Base(cfg.OutputPath()); got != "ensembl_TCGA-BRCA.txt" {
		t.Errorf("output name %q", got)
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t, "TCGA-BRCA")

	input := "Regulator\tTarget\tScore\n7157\t673\t0.91\n1026\t5290\t0.44\n"
	if err := os.WriteFile(cfg.InputPath(), []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	if err := run(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(cfg.OutputPath())
	if err != nil {
		t.Fatal(err)
	}

	want := "Regulator\tTarget\tScore\n" +
		"ENSG00000141510\tENSG00000157764\t0.91\n" +
		"ENSG00000124762\tENSG00000121879\t0.44\n"
	if string(out) != want {
		t.Errorf("output mismatch:\ngot  %q\nwant %q", out, want)
	}
}

func TestRunHeaderOnlyCohort(t *testing.T) {
	cfg := testConfig(t, "TCGA-OV")

	if err := os.WriteFile(cfg.InputPath(), []byte("Regulator\tTarget\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := run(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(cfg.OutputPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "Regulator\tTarget\n" {
		t.Errorf("got %q", out)
	}
}

func TestRunMissingCohortFileWritesNothing(t *testing.T) {
	cfg := testConfig(t, "TCGA-LUAD")

	err := run(context.Background(), cfg)
	if !errors.Is(err, idmap.ErrConfig) {
		t.Fatalf("got %v, want ErrConfig", err)
	}
	if _, statErr := os.Stat(cfg.OutputPath()); !os.IsNotExist(statErr) {
		t.Error("output file should not exist after a fatal error")
	}
}

func TestRunMissingColumnWritesNothing(t *testing.T) {
	cfg := testConfig(t, "TCGA-GBM")
	cfg.Columns = []string{"Regulator", "Effector"}

	if err := os.WriteFile(cfg.InputPath(), []byte("Regulator\tTarget\n7157\t673\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := run(context.Background(), cfg)
	if !errors.Is(err, idmap.ErrConfig) {
		t.Fatalf("got %v, want ErrConfig", err)
	}
	if _, statErr := os.Stat(cfg.OutputPath()); !os.IsNotExist(statErr) {
		t.Error("output file should not exist after a fatal error")
	}
}

func TestRunCustomSentinel(t *testing.T) {
	cfg := testConfig(t, "TCGA-KIRC")
	cfg.Sentinel = "."

	if err := os.WriteFile(cfg.InputPath(), []byte("Regulator\tTarget\n7157\t999999\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := run(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(cfg.OutputPath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "ENSG00000141510\t.\n") {
		t.Errorf("custom sentinel not applied: %q", out)
	}
}

func TestBuildConfigRejectsEmptySelections(t *testing.T) {
	if _, err := buildConfig("TCGA-BRCA", ".", " , ", "entrezgene", "ensembl", idmap.Unmapped, "", "", ""); !errors.Is(err, idmap.ErrConfig) {
		t.Errorf("empty column selection: got %v, want ErrConfig", err)
	}
	if _, err := buildConfig("", ".", "Regulator,Target", "entrezgene", "ensembl", idmap.Unmapped, "", "", ""); !errors.Is(err, idmap.ErrConfig) {
		t.Errorf("empty cohort: got %v, want ErrConfig", err)
	}
}
