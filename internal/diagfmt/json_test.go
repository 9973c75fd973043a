package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"knitchart/internal/diag"
	"knitchart/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("scarf.knit", []byte("k, p\n*k, p 3 times\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnterminatedRepeat, source.Span{File: fileID, Start: 5, End: 6}, "repeat group is never closed").
		WithNote(source.Span{File: fileID, Start: 5, End: 19}, "row 2"))

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %+v", output)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SYN2001" {
		t.Errorf("unexpected severity/code: %s %s", d.Severity, d.Code)
	}
	if d.Title != "Unterminated repeat group" {
		t.Errorf("title = %q", d.Title)
	}
	if d.Location.File != "scarf.knit" {
		t.Errorf("file = %q", d.Location.File)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 1 {
		t.Errorf("position = %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "row 2" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

// TestJSONMaxAndNotes проверяет обрезку и пропуск заметок
func TestJSONMaxAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.knit", []byte("k\n"))

	bag := diag.NewBag(10)
	for i := 0; i < 3; i++ {
		bag.Add(diag.NewError(diag.PatEmpty, source.Span{File: fileID}, "no stitches").
			WithNote(source.Span{File: fileID}, "here"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("count = %d, want 2", out.Count)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Errorf("notes included without IncludeNotes")
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("positions included without IncludePositions")
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSetWithBase("/p")
	fileID := fs.Add("/p/a.knit", []byte("k, q\n"), 0)
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.PatUnknownStitch, source.Span{File: fileID, Start: 3, End: 4}, "unknown \"q\""))

	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, false); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != `error PAT3003 a.knit:1:4 unknown "q"` {
		t.Fatalf("got %q", got)
	}
}
