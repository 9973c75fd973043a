package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SamplePatternName is the pattern file Init writes next to the manifest.
const SamplePatternName = "sample.knit"

const defaultManifest = `# knitchart project settings

[chart]
# upper bound on stitches after expanding repeats, across the whole pattern
max_tokens = 100000

# Extra stitches on top of the built-in K, P, K2TOG, SKP and YO.
# [[stitch]]
# abbreviation = "M1"
# glyph = "M"
# name = "make one"
`

const samplePattern = `k2, p2, k2, p2
*yo, k2tog* 2 times, p4
(p, k) 4 times
k8
`

// Init writes knitchart.toml and a sample pattern into dir. Existing files
// are kept unless force is set.
func Init(dir string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	files := []struct {
		name    string
		content string
	}{
		{FileName, defaultManifest},
		{SamplePatternName, samplePattern},
	}
	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if !force {
			if _, err := os.Stat(path); err == nil {
				return written, fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if !errors.Is(err, os.ErrNotExist) {
				return written, err
			}
		}
		if err := os.WriteFile(path, []byte(f.content), 0o600); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
