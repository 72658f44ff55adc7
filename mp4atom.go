// Package mp4atom decodes ISO/IEC 14496-12 and QuickTime movie files
// into a tree of typed Go values, one per box (QuickTime calls them
// atoms).
//
// # Core Features
//
//   - Full box header decoding, including the 64-bit largesize and
//     16-byte uuid extended-type forms
//   - Typed decoders for movie, track, media, sample-table, fragment,
//     item and protection boxes
//   - Transparent inflation of QuickTime's compressed-movie ("cmov")
//     atom via zlib, zstd, s2 or lz4
//   - Resilient-by-default decoding: a malformed box stops the scan of
//     its siblings without failing the parse, keeping what was decoded
//     before it, with an opt-in strict mode
//   - A configurable container-nesting guard against hostile input
//
// # Basic Usage
//
//	import "github.com/mp4atom/mp4atom"
//
//	atoms, err := mp4atom.Parse("movie.mp4")
//	if err != nil {
//	    return err
//	}
//
//	for _, a := range atoms {
//	    fmt.Println(a.Kind())
//	}
//
// Finding a nested box by walking the tree:
//
//	moov, _ := mp4atom.FindTop(atoms, kind.Moov)
//	trak, _ := box.Find(moov.(box.Container), kind.Trak)
//
// # Package Structure
//
// This package provides a thin convenience layer around package box,
// which does the actual decoding and can be used directly for
// lower-level control (custom Options, streaming a single box without
// loading a whole file).
package mp4atom

import (
	"io"

	"github.com/mp4atom/mp4atom/box"
	"github.com/mp4atom/mp4atom/kind"
)

// Option configures a Parse or ParseReader call.
type Option = box.Option

// WithStrict enables strict decoding: an unrecognized type code or a
// box that fails to decode becomes an error, instead of an Unrecognized
// atom or a sibling scan that stops at the failing box.
func WithStrict(strict bool) Option { return box.WithStrict(strict) }

// WithMaxDepth overrides the default container-nesting guard.
func WithMaxDepth(depth int) Option { return box.WithMaxDepth(depth) }

// Parse opens path and decodes its top-level box sequence.
func Parse(path string, opts ...Option) ([]box.Atom, error) {
	return box.Parse(path, opts...)
}

// ParseReader decodes the top-level box sequence from ra, which spans
// size bytes starting at offset 0.
func ParseReader(ra io.ReaderAt, size int64, opts ...Option) ([]box.Atom, error) {
	return box.ParseReader(ra, size, opts...)
}

// FindTop returns the first top-level atom with the given kind.
func FindTop(atoms []box.Atom, k kind.Kind) (box.Atom, bool) {
	for _, a := range atoms {
		if a.Kind() == k {
			return a, true
		}
	}
	return nil, false
}
