package stitch

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Definition describes one stitch type.
type Definition struct {
	Abbreviation string `json:"abbreviation" msgpack:"abbreviation"`
	Glyph        string `json:"glyph" msgpack:"glyph"`
	Name         string `json:"name" msgpack:"name"`
}

// IsZero reports whether d is the zero Definition.
func (d Definition) IsZero() bool {
	return d.Abbreviation == "" && d.Glyph == "" && d.Name == ""
}

// Vocabulary is a read-only table of stitch definitions keyed by
// case-folded abbreviation.
type Vocabulary struct {
	byKey map[string]Definition
}

var defaultDefs = []Definition{
	{Abbreviation: "K", Glyph: " ", Name: "knit"},
	{Abbreviation: "K2TOG", Glyph: "/", Name: "knit two together"},
	{Abbreviation: "P", Glyph: "*", Name: "purl"},
	{Abbreviation: "SKP", Glyph: "\\", Name: "slip, knit, pass"},
	{Abbreviation: "YO", Glyph: "O", Name: "yarn over"},
}

var defaultVocabulary = mustNew(defaultDefs...)

// Default returns the built-in five stitch vocabulary.
func Default() *Vocabulary {
	return defaultVocabulary
}

// New builds a vocabulary from defs. Abbreviations are stored upper-cased
// and must be unique ignoring case.
func New(defs ...Definition) (*Vocabulary, error) {
	v := &Vocabulary{byKey: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		norm, err := normalize(d)
		if err != nil {
			return nil, err
		}
		key := foldKey(norm.Abbreviation)
		if prev, dup := v.byKey[key]; dup {
			return nil, fmt.Errorf("stitch %q: duplicate of %q", d.Abbreviation, prev.Abbreviation)
		}
		v.byKey[key] = norm
	}
	return v, nil
}

func mustNew(defs ...Definition) *Vocabulary {
	v, err := New(defs...)
	if err != nil {
		panic(err)
	}
	return v
}

// Extend returns a new vocabulary containing v's entries plus defs.
// An entry in defs replaces an existing one with the same abbreviation;
// duplicates within defs are still an error.
func (v *Vocabulary) Extend(defs ...Definition) (*Vocabulary, error) {
	added, err := New(defs...)
	if err != nil {
		return nil, err
	}
	out := &Vocabulary{byKey: make(map[string]Definition, v.Len()+len(defs))}
	if v != nil {
		for k, d := range v.byKey {
			out.byKey[k] = d
		}
	}
	for k, d := range added.byKey {
		out.byKey[k] = d
	}
	return out, nil
}

// Lookup finds the definition for abbr. Matching is exact but ignores case.
func (v *Vocabulary) Lookup(abbr string) (Definition, bool) {
	if v == nil || abbr == "" {
		return Definition{}, false
	}
	d, ok := v.byKey[foldKey(abbr)]
	return d, ok
}

// Len returns the number of definitions.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.byKey)
}

// Definitions returns all entries sorted by abbreviation.
func (v *Vocabulary) Definitions() []Definition {
	if v == nil {
		return nil
	}
	out := make([]Definition, 0, len(v.byKey))
	for _, d := range v.byKey {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Abbreviation < out[j].Abbreviation
	})
	return out
}

// Fingerprint is a stable textual digest of the table, used to key caches.
func (v *Vocabulary) Fingerprint() string {
	var b strings.Builder
	for _, d := range v.Definitions() {
		fmt.Fprintf(&b, "%s\x1f%s\x1f%s\x1e", d.Abbreviation, d.Glyph, d.Name)
	}
	return b.String()
}

func normalize(d Definition) (Definition, error) {
	abbr := strings.TrimSpace(d.Abbreviation)
	if abbr == "" {
		return Definition{}, fmt.Errorf("stitch with glyph %q: empty abbreviation", d.Glyph)
	}
	if strings.ContainsAny(abbr, ",()[]* \t") {
		return Definition{}, fmt.Errorf("stitch %q: abbreviation contains a separator or delimiter", abbr)
	}
	if d.Glyph == "" {
		return Definition{}, fmt.Errorf("stitch %q: empty glyph", abbr)
	}
	return Definition{
		Abbreviation: strings.ToUpper(abbr),
		Glyph:        d.Glyph,
		Name:         strings.TrimSpace(d.Name),
	}, nil
}

// foldKey uses full Unicode case folding so that lookups agree with the
// upper-cased canonical form for non-ASCII abbreviations too.
func foldKey(s string) string {
	return cases.Fold().String(s)
}
