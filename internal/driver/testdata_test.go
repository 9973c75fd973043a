package driver

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"knitchart/internal/stitch"
	"knitchart/internal/testkit"
)

func TestRepositoryPatterns(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "patterns")
	batch, err := ChartDir(context.Background(), dir, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("ChartDir: %v", err)
	}

	// строка короткого вывода, "" для успешных файлов
	want := map[string]string{
		"eyelet.knit":       "",
		"rib_and_lace.knit": "",
		"uneven.knit":       "error PAT3002 uneven.knit:2:1 row 2 has 3 stitches, expected 4",
		"unknown.knit":      `error PAT3003 unknown.knit:1:7 unrecognized abbreviation "m1" in row 1`,
		"unterminated.knit": "error SYN2001 unterminated.knit:1:",
	}
	if len(batch.Files) != len(want) {
		t.Fatalf("charted %d files, want %d", len(batch.Files), len(want))
	}
	vocab := stitch.Default()
	for _, res := range batch.Files {
		name := filepath.Base(res.Path)
		expected, ok := want[name]
		if !ok {
			t.Fatalf("unexpected file %s", name)
		}
		if err := testkit.CheckDiagnosticSpans(res.Bag, batch.FileSet); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if expected == "" {
			if !res.OK() {
				t.Fatalf("%s: expected a chart, got:\n%s", name, shortDiags(res))
			}
			if err := testkit.CheckGridInvariants(res.Grid, res.Rows, vocab); err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			continue
		}
		if got := shortDiags(res); !strings.Contains(got, expected) {
			t.Fatalf("%s: diagnostics do not contain %q:\n%s", name, expected, got)
		}
	}
}
