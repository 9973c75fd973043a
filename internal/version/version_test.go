package version

import (
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"1.2.3", "", "", "knitchart 1.2.3"},
		{"1.2.3", "1234567890abcdef", "", "knitchart 1.2.3 (commit 1234567890ab)"},
		{"0.1.0-dev", "abc", "2024-01-15", "knitchart 0.1.0-dev (commit abc, built 2024-01-15)"},
	}
	for _, tt := range tests {
		withBuildInfo(t, tt.version, tt.commit, tt.date)
		if got := Summary(false); got != tt.want {
			t.Errorf("Summary() = %q, want %q", got, tt.want)
		}
	}
}

func TestColored(t *testing.T) {
	withBuildInfo(t, "1.2.3-rc.1", "", "")
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI colours, got %q", got)
	}
	if !strings.HasSuffix(got, "-rc.1") {
		t.Errorf("suffix lost: %q", got)
	}
	if Colored(false) != "1.2.3-rc.1" {
		t.Errorf("plain = %q", Colored(false))
	}

	withBuildInfo(t, "nightly", "", "")
	if Colored(true) != "nightly" {
		t.Errorf("non-semver = %q", Colored(true))
	}
}
