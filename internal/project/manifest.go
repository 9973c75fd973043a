package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"knitchart/internal/stitch"
)

// Manifest is a decoded knitchart.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Chart    ChartConfig    `toml:"chart"`
	Stitches []StitchConfig `toml:"stitch"`
}

type ChartConfig struct {
	MaxTokens int `toml:"max_tokens"`
}

type StitchConfig struct {
	Abbreviation string `toml:"abbreviation"`
	Glyph        string `toml:"glyph"`
	Name         string `toml:"name"`
}

// LoadManifest finds and decodes the manifest above startDir. ok is false
// when there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifestFile(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadManifestFile decodes the manifest at path.
func LoadManifestFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(path, meta, cfg); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

func validate(path string, meta toml.MetaData, cfg Config) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("chart", "max_tokens") && cfg.Chart.MaxTokens <= 0 {
		return fmt.Errorf("%s: [chart].max_tokens must be positive", path)
	}
	for i, s := range cfg.Stitches {
		switch {
		case strings.TrimSpace(s.Abbreviation) == "":
			return fmt.Errorf("%s: [[stitch]] #%d: missing abbreviation", path, i+1)
		case s.Glyph == "":
			return fmt.Errorf("%s: [[stitch]] %q: missing glyph", path, s.Abbreviation)
		case strings.TrimSpace(s.Name) == "":
			return fmt.Errorf("%s: [[stitch]] %q: missing name", path, s.Abbreviation)
		}
	}
	return nil
}

// Vocabulary returns the default vocabulary extended with the manifest's
// stitches. A nil manifest yields the default vocabulary.
func (m *Manifest) Vocabulary() (*stitch.Vocabulary, error) {
	if m == nil || len(m.Config.Stitches) == 0 {
		return stitch.Default(), nil
	}
	defs := make([]stitch.Definition, len(m.Config.Stitches))
	for i, s := range m.Config.Stitches {
		defs[i] = stitch.Definition{
			Abbreviation: strings.TrimSpace(s.Abbreviation),
			Glyph:        s.Glyph,
			Name:         strings.TrimSpace(s.Name),
		}
	}
	vocab, err := stitch.Default().Extend(defs...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Path, err)
	}
	return vocab, nil
}

// MaxTokens returns [chart].max_tokens, 0 when unset.
func (m *Manifest) MaxTokens() int {
	if m == nil {
		return 0
	}
	return m.Config.Chart.MaxTokens
}
