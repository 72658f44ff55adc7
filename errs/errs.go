// Package errs defines the sentinel errors returned while decoding atoms.
//
// Decoders never construct ad-hoc error strings for the categories below;
// they wrap one of these sentinels with fmt.Errorf("...: %w", ...) so
// callers can classify a failure with errors.Is regardless of which box
// produced it.
package errs

import "errors"

var (
	// ErrIO wraps a failure from the underlying io.ReaderAt (file closed,
	// disk error, EOF encountered while data was still expected).
	ErrIO = errors.New("mp4atom: i/o error")

	// ErrShortRead means fewer bytes were available than a field or box
	// declared it would occupy.
	ErrShortRead = errors.New("mp4atom: short read")

	// ErrInvalidCode means a four-byte type code did not match the kind
	// registry and strict mode rejected it as Unrecognized.
	ErrInvalidCode = errors.New("mp4atom: invalid type code")

	// ErrInvalidField means a decoded field violated a documented
	// constraint (an out-of-range field_size, an unknown version number,
	// an unsupported fixed-point width).
	ErrInvalidField = errors.New("mp4atom: invalid field")

	// ErrDesync means a box's framing no longer lines up with its
	// enclosing bound, such as a declared size that runs past the end of
	// its parent.
	ErrDesync = errors.New("mp4atom: desynchronized after decode")

	// ErrMaxDepth means container nesting exceeded the configured guard.
	ErrMaxDepth = errors.New("mp4atom: max container depth exceeded")
)
