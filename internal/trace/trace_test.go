package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelError, ScopeError, true},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeRow, false},
		{LevelDebug, ScopeRow, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel("DETAIL"); err != nil || lvl != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeDriver, "chart", 0)
	file := Begin(tr, ScopeFile, "file:lace.knit", root.ID())
	Point(tr, ScopeRow, "row", file.ID(), "filtered at detail")
	file.WithExtra("rows", "4").WithExtra("cols", "8").End("ok")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ chart") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "  ← file:lace.knit (ok) {cols=8, rows=4}") {
		t.Errorf("file end line = %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "parse", 0).End("")

	dec := json.NewDecoder(&buf)
	var kinds []string
	for dec.More() {
		var ev map[string]any
		if err := dec.Decode(&ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ev["scope"] != "pass" || ev["name"] != "parse" {
			t.Errorf("unexpected event %v", ev)
		}
		kinds = append(kinds, ev["kind"].(string))
	}
	if strings.Join(kinds, ",") != "begin,end" {
		t.Errorf("kinds = %v", kinds)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer is enabled")
	}
	if d := Begin(tr, ScopeDriver, "x", 0).End(""); d != 0 {
		t.Errorf("nop span duration = %v", d)
	}
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != tr {
		t.Fatal("tracer lost in context")
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("missing tracer should be Nop")
	}

	span := Begin(tr, ScopeDriver, "root", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Fatalf("CurrentSpan = %d, want %d", CurrentSpan(ctx), span.ID())
	}
}

func TestFormatTextElapsed(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := &Event{Time: start.Add(1500 * time.Microsecond), Kind: KindPoint, Name: "tick"}
	if got := string(FormatEvent(ev, FormatText, start)); got != "[    1.500ms] • tick\n" {
		t.Fatalf("got %q", got)
	}
}
