package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"knitchart/internal/stitch"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	app := newCLI()
	var out, errOut bytes.Buffer
	app.root.SetOut(&out)
	app.root.SetErr(&errOut)
	app.root.SetIn(strings.NewReader(stdin))
	code := app.run(append([]string{"--color", "off"}, args...))
	return cliResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

func writePattern(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestChartPlain(t *testing.T) {
	path := writePattern(t, t.TempDir(), "swatch.knit", "k, p\np, k\n")

	res := runCLI(t, "", "chart", "--format", "plain", path)
	if res.code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", res.code, res.stderr)
	}
	if want := " *\n* \n"; res.stdout != want {
		t.Fatalf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestChartPrettyFromStdin(t *testing.T) {
	res := runCLI(t, "k2tog, p\nyo, k\n", "--quiet", "chart", "--legend=false", "-")
	if res.code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", res.code, res.stderr)
	}
	want := "2 | O |   |\n" +
		"  | * | / | 1\n"
	if res.stdout != want {
		t.Fatalf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestChartReportsUnevenRows(t *testing.T) {
	path := writePattern(t, t.TempDir(), "bad.knit", "k, p\nk\n")

	res := runCLI(t, "", "chart", path)
	if res.code != 1 {
		t.Fatalf("exit %d, want 1", res.code)
	}
	if res.stdout != "" {
		t.Fatalf("unexpected chart on stdout: %q", res.stdout)
	}
	for _, want := range []string{
		"bad.knit:2:1:",
		"PAT3002",
		"row 2 has 1 stitch, expected 2",
		"note:",
		"hint: " + patternHint,
	} {
		if !strings.Contains(res.stderr, want) {
			t.Fatalf("stderr missing %q:\n%s", want, res.stderr)
		}
	}
}

func TestChartRejectsUnknownFormat(t *testing.T) {
	path := writePattern(t, t.TempDir(), "swatch.knit", "k\n")

	res := runCLI(t, "", "chart", "--format", "svg", path)
	if res.code != 1 || !strings.Contains(res.stderr, "unknown format: svg") {
		t.Fatalf("exit %d, stderr %q", res.code, res.stderr)
	}
}

func TestChartMaxTokensFlag(t *testing.T) {
	path := writePattern(t, t.TempDir(), "big.knit", "k4\n")

	res := runCLI(t, "", "--max-tokens", "3", "chart", path)
	if res.code != 1 || !strings.Contains(res.stderr, "PAT3004") {
		t.Fatalf("exit %d, stderr:\n%s", res.code, res.stderr)
	}
}

func TestExpandWritesTokens(t *testing.T) {
	path := writePattern(t, t.TempDir(), "lace.knit", "*k, p* 2 times\nk4\n")

	res := runCLI(t, "", "expand", path)
	if res.code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", res.code, res.stderr)
	}
	want := "k, p, k, p\nk, k, k, k\n"
	if res.stdout != want {
		t.Fatalf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestDiagDirectoryShort(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "good.knit", "k, p\n")
	writePattern(t, dir, "bad.knit", "k, p\nk\n")
	writePattern(t, dir, "notes.md", "not a pattern\n")

	res := runCLI(t, "", "diag", "--format", "short", dir)
	if res.code != 1 {
		t.Fatalf("exit %d, want 1; stderr:\n%s", res.code, res.stderr)
	}
	want := "error PAT3002 bad.knit:2:1 row 2 has 1 stitch, expected 2\n"
	if res.stdout != want {
		t.Fatalf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestDiagCleanFile(t *testing.T) {
	path := writePattern(t, t.TempDir(), "good.knit", "yo, k2tog\n")

	res := runCLI(t, "", "diag", path)
	if res.code != 0 {
		t.Fatalf("exit %d, stdout:\n%s", res.code, res.stdout)
	}
	if res.stdout != "ok: 1 file\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
}

func TestDiagJSON(t *testing.T) {
	path := writePattern(t, t.TempDir(), "typo.knit", "k, kk\n")

	res := runCLI(t, "", "diag", "--format", "json", path)
	if res.code != 1 {
		t.Fatalf("exit %d, want 1", res.code)
	}
	if !strings.Contains(res.stdout, `"PAT3003"`) {
		t.Fatalf("json output missing PAT3003:\n%s", res.stdout)
	}
}

func TestStitchesIncludesManifestEntries(t *testing.T) {
	dir := t.TempDir()
	config := writePattern(t, dir, "knitchart.toml", `[[stitch]]
abbreviation = "M1"
glyph = "M"
name = "make one"
`)

	res := runCLI(t, "", "--config", config, "stitches", "--format", "json")
	if res.code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", res.code, res.stderr)
	}
	var defs []stitch.Definition
	if err := json.Unmarshal([]byte(res.stdout), &defs); err != nil {
		t.Fatalf("decode: %v\n%s", err, res.stdout)
	}
	found := false
	for _, d := range defs {
		if d.Abbreviation == "M1" && d.Glyph == "M" {
			found = true
		}
	}
	if !found || len(defs) != stitch.Default().Len()+1 {
		t.Fatalf("unexpected vocabulary: %+v", defs)
	}
}

func TestStitchesTable(t *testing.T) {
	res := runCLI(t, "", "stitches")
	if res.code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", res.code, res.stderr)
	}
	for _, want := range []string{"ABBR", "K2TOG", "[/]", "Knit Two Together"} {
		if !strings.Contains(res.stdout, want) {
			t.Fatalf("table missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestManifestAppliesToChart(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "knitchart.toml", `[[stitch]]
abbreviation = "M1"
glyph = "M"
name = "make one"
`)
	path := writePattern(t, dir, "inc.knit", "k, m1, k\n")

	res := runCLI(t, "", "chart", "--format", "plain", path)
	if res.code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", res.code, res.stderr)
	}
	if res.stdout != " M \n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
}

func TestInitThenChartSample(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scarf")

	res := runCLI(t, "", "init", dir)
	if res.code != 0 {
		t.Fatalf("init exit %d, stderr:\n%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "created "+filepath.Join(dir, "knitchart.toml")) {
		t.Fatalf("stdout = %q", res.stdout)
	}

	res = runCLI(t, "", "init", dir)
	if res.code != 1 || !strings.Contains(res.stderr, "already exists") {
		t.Fatalf("second init: exit %d, stderr %q", res.code, res.stderr)
	}

	res = runCLI(t, "", "diag", filepath.Join(dir, "sample.knit"))
	if res.code != 0 {
		t.Fatalf("sample pattern does not chart: %s", res.stdout)
	}
}

func TestCleanUsesCacheHome(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	path := writePattern(t, t.TempDir(), "swatch.knit", "k, p\n")

	res := runCLI(t, "", "chart", "--disk-cache", "--format", "plain", path)
	if res.code != 0 {
		t.Fatalf("chart exit %d, stderr:\n%s", res.code, res.stderr)
	}
	entries, err := os.ReadDir(filepath.Join(cacheHome, "knitchart", "charts"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("cache entries = %v, err %v", entries, err)
	}

	res = runCLI(t, "", "clean")
	if res.code != 0 {
		t.Fatalf("clean exit %d, stderr:\n%s", res.code, res.stderr)
	}
	if _, err := os.Stat(filepath.Join(cacheHome, "knitchart", "charts")); !os.IsNotExist(err) {
		t.Fatalf("charts dir still present: %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	res := runCLI(t, "", "version", "--format", "json")
	if res.code != 0 {
		t.Fatalf("exit %d", res.code)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(res.stdout), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "knitchart" || payload.Version == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestTraceToFile(t *testing.T) {
	dir := t.TempDir()
	path := writePattern(t, dir, "swatch.knit", "k\n")
	tracePath := filepath.Join(dir, "trace.ndjson")

	res := runCLI(t, "", "--trace", tracePath, "--trace-level", "debug", "chart", "--format", "plain", path)
	if res.code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", res.code, res.stderr)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if !strings.Contains(string(data), `"chart"`) {
		t.Fatalf("trace missing root span:\n%s", data)
	}
}

func TestChartSampleDrawing(t *testing.T) {
	dir := t.TempDir()
	if res := runCLI(t, "", "--quiet", "init", dir); res.code != 0 {
		t.Fatalf("init exit %d: %s", res.code, res.stderr)
	}

	res := runCLI(t, "", "--quiet", "chart", "--legend=false", filepath.Join(dir, "sample.knit"))
	if res.code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", res.code, res.stderr)
	}
	want := "4 |   |   |   |   |   |   |   |   |\n" +
		"  |   | * |   | * |   | * |   | * | 3\n" +
		"2 | O | / | O | / | * | * | * | * |\n" +
		"  | * | * |   |   | * | * |   |   | 1\n"
	if res.stdout != want {
		t.Fatalf("chart mismatch:\nwant:\n%s\ngot:\n%s", want, res.stdout)
	}
}
