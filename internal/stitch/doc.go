// Package stitch holds the stitch vocabulary: the lookup table that maps
// written abbreviations ("k", "yo", "k2tog") to the glyph drawn in a chart
// cell and the descriptive name shown next to it.
//
// A Vocabulary is immutable once built and safe for concurrent reads. New
// stitch types are added by building an extended vocabulary (Extend), never
// by touching the pattern parser.
package stitch
