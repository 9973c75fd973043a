package driver

import (
	"knitchart/internal/pattern"
	"knitchart/internal/stitch"
)

// Options configures charting.
type Options struct {
	Vocabulary     *stitch.Vocabulary // nil: stitch.Default()
	MaxTokens      int                // <= 0: pattern.DefaultMaxTokens
	MaxDiagnostics int                // <= 0: 100
	Jobs           int                // <= 0: GOMAXPROCS, ChartFiles only
	Cache          *DiskCache         // nil disables the disk cache
	Progress       ProgressSink
}

func (o Options) withDefaults() Options {
	if o.Vocabulary == nil {
		o.Vocabulary = stitch.Default()
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = pattern.DefaultMaxTokens
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = 100
	}
	return o
}

func (o Options) patternOptions() pattern.Options {
	return pattern.Options{Vocabulary: o.Vocabulary, MaxTokens: o.MaxTokens}
}
