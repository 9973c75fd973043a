package diag

import (
	"testing"

	"knitchart/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	file := fs.Add("/workspace/patterns/lace.knit", []byte("k, p\nk, p, k\n"), 0)

	diags := []Diagnostic{
		NewError(PatUnevenRows, source.Span{File: file, Start: 5, End: 12}, "row 2 has 3 stitches\nexpected 2").
			WithNote(source.Span{File: file, Start: 0, End: 4}, "row 1 has 2 stitches"),
		NewError(PatUnknownStitch, source.Span{File: file, Start: 3, End: 4}, "unknown"),
	}

	want := "error PAT3003 patterns/lace.knit:1:4 unknown\n" +
		"error PAT3002 patterns/lace.knit:2:1 row 2 has 3 stitches expected 2"
	if got := FormatShortDiagnostics(diags, fs, false); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}

	withNotes := FormatShortDiagnostics(diags, fs, true)
	wantNotes := "note PAT3002 patterns/lace.knit:1:1 row 1 has 2 stitches\n" + want
	if withNotes != wantNotes {
		t.Fatalf("unexpected output with notes:\nwant:\n%s\n\ngot:\n%s", wantNotes, withNotes)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		SynUnterminatedRepeat: "SYN2001",
		PatUnknownStitch:      "PAT3003",
		IOLoadFileError:       "IO4001",
		ObsTimings:            "OBS6001",
		UnknownCode:           "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if got := Code(3999).Title(); got != "Unknown error" {
		t.Errorf("unknown title = %q", got)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(PatUnknownStitch, source.Span{Start: 9, End: 10}, "b")) {
		t.Fatal("first add rejected")
	}
	bag.Add(New(SevInfo, PatInfo, source.Span{Start: 1, End: 2}, "a"))
	if bag.Add(NewError(PatEmpty, source.Span{}, "c")) {
		t.Fatal("add beyond limit accepted")
	}
	bag.Sort()
	if bag.Items()[0].Message != "a" {
		t.Errorf("sort order: %+v", bag.Items())
	}
	if !bag.HasErrors() {
		t.Error("HasErrors = false")
	}

	other := NewBag(1)
	other.Add(NewError(PatEmpty, source.Span{}, "c"))
	bag.Merge(other)
	if bag.Len() != 3 || bag.Cap() != 3 {
		t.Errorf("after merge len=%d cap=%d", bag.Len(), bag.Cap())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	b := ReportError(BagReporter{Bag: bag}, SynMissingRepeatCount, source.Span{}, "missing").
		WithNote(source.Span{}, "group closed here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("emitted %d diagnostics", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Errorf("notes lost: %+v", bag.Items()[0])
	}
}
