// Package box decodes ISO/IEC 14496-12 boxes (QuickTime calls them
// atoms) from a seekable byte source into a tree of typed Go values.
package box

import (
	"errors"
	"fmt"
	"io"

	"github.com/mp4atom/mp4atom/errs"
	"github.com/mp4atom/mp4atom/internal/options"
	"github.com/mp4atom/mp4atom/kind"
)

// Atom is any decoded box. Every concrete type in this package
// implements it; some also implement a more specific interface (such as
// Container) that callers type-assert for.
type Atom interface {
	Kind() kind.Kind
	// HeaderBox returns the raw header this atom was decoded from.
	HeaderBox() Header
	// Digest returns the xxHash64 fingerprint of the atom's raw payload
	// bytes, computed once at decode time and cached.
	Digest() uint64
}

// Container is an Atom that owns child atoms.
type Container interface {
	Atom
	Children() []Atom
}

// Find returns the first direct child of c with the given kind.
func Find(c Container, k kind.Kind) (Atom, bool) {
	for _, child := range c.Children() {
		if child.Kind() == k {
			return child, true
		}
	}
	return nil, false
}

// FindAll returns every direct child of c with the given kind.
func FindAll(c Container, k kind.Kind) []Atom {
	var out []Atom
	for _, child := range c.Children() {
		if child.Kind() == k {
			out = append(out, child)
		}
	}
	return out
}

// base is embedded by every concrete atom type to satisfy Atom without
// repeating the accessor methods.
type base struct {
	header Header
	digest uint64
}

func (b base) Kind() kind.Kind   { return b.header.Type }
func (b base) HeaderBox() Header { return b.header }
func (b base) Digest() uint64    { return b.digest }

func (b *base) setDigest(d uint64) { b.digest = d }

// digestSetter is implemented by every Atom via the embedded base,
// letting decodeOne attach a payload digest after a decoder constructs
// its concrete value.
type digestSetter interface {
	setDigest(uint64)
}

// Unrecognized is returned in non-strict mode for a type code not present
// in the kind registry or for a registered leaf kind that has no decoder
// of its own; its payload is kept verbatim. A registered container kind
// without a decoder is walked as a GenericContainer instead.
type Unrecognized struct {
	base
	Payload []byte
}

// ctx carries the per-Parse configuration and current nesting depth
// through the recursive decode.
type ctx struct {
	cfg   *config
	depth int
}

type decodeFunc func(r *Reader, h Header, c *ctx) (Atom, error)

var dispatch map[kind.Kind]decodeFunc

func register(k kind.Kind, fn decodeFunc) {
	if dispatch == nil {
		dispatch = make(map[kind.Kind]decodeFunc)
	}
	dispatch[k] = fn
}

// decodeOne decodes a single box whose header has already been read,
// given a Reader scoped to exactly its payload bytes.
func decodeOne(r *Reader, h Header, c *ctx) (Atom, error) {
	// Digest the payload through an independent cursor over the same
	// range first, so computing it never disturbs the Reader a decoder
	// below goes on to consume.
	digest, digestErr := PayloadDigest(r.slice(r.Offset(), r.Remaining()), h)

	fn, ok := dispatch[h.Type]
	var atom Atom
	var err error
	switch {
	case ok:
		atom, err = fn(r, h, c)
	case h.Type.IsContainer():
		// A registered container kind with no dedicated decoder (e.g. a
		// box this package only knows the shape of, not the fields)
		// still gets walked structurally instead of going opaque.
		atom, err = decodeGenericContainer(r, h, c)
	case c.cfg.strict:
		return nil, fmt.Errorf("type %q: %w", h.RawType, errs.ErrInvalidCode)
	default:
		atom, err = decodeUnrecognized(r, h, c)
	}
	if err != nil {
		// A decoder that runs out of bytes inside a trailing
		// null-terminated string returns its partial atom with
		// ErrShortRead; resilient mode keeps that atom, treating the end
		// of the box as the string's terminator.
		if atom == nil || c.cfg.strict || !errors.Is(err, errs.ErrShortRead) {
			return nil, err
		}
	}

	if digestErr == nil {
		if ds, ok := atom.(digestSetter); ok {
			ds.setDigest(digest)
		}
	}
	return atom, nil
}

func decodeUnrecognized(r *Reader, h Header, c *ctx) (Atom, error) {
	payload, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, err
	}
	return &Unrecognized{base: base{h}, Payload: payload}, nil
}

// ParseReader decodes the top-level box sequence from ra, which spans
// size bytes starting at offset 0.
func ParseReader(ra io.ReaderAt, size int64, opts ...Option) ([]Atom, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	r := NewReader(ra, size)
	c := &ctx{cfg: cfg}
	return decodeSiblings(r, c)
}

// decodeSiblings decodes boxes back-to-back until r is exhausted,
// tolerating a decode failure on any one of them by stopping and
// returning what was already decoded (resilient mode) or propagating
// the error (strict mode).
func decodeSiblings(r *Reader, c *ctx) ([]Atom, error) {
	var out []Atom
	for r.Remaining() > 0 {
		start := r.Offset()
		h, err := DecodeHeader(r)
		if err != nil {
			if c.cfg.strict {
				return out, err
			}
			c.cfg.log().Debug("stopping sibling scan on header error", "offset", start, "error", err)
			break
		}

		payloadLen := h.PayloadSize(start, r.End())
		if payloadLen < 0 || start+int64(h.HeaderLen)+payloadLen > r.End() {
			err := fmt.Errorf("box %q at %d overruns bound: %w", h.RawType, start, errs.ErrDesync)
			if c.cfg.strict {
				return out, err
			}
			c.cfg.log().Debug("stopping sibling scan on bound overrun", "offset", start, "error", err)
			break
		}

		child := r.slice(start+int64(h.HeaderLen), payloadLen)
		atom, err := decodeOne(child, h, c)
		if err != nil {
			if c.cfg.strict {
				return out, fmt.Errorf("decoding %q at %d: %w", h.RawType, start, err)
			}
			// A child decode error halts this container's sibling scan
			// entirely rather than skipping past it: the cursor is
			// already past the child's header, so resuming from the next
			// declared boundary could desynchronize on a box whose own
			// framing is sound but whose contents triggered the error.
			c.cfg.log().Debug("halting sibling scan after decode error", "type", h.RawType, "offset", start, "error", err)
			break
		}
		out = append(out, atom)

		if err := r.Seek(start + int64(h.HeaderLen) + payloadLen); err != nil {
			if c.cfg.strict {
				return out, err
			}
			break
		}
	}
	return out, nil
}

// decodeContainer decodes h's payload as a sequence of child boxes,
// enforcing the nesting-depth guard.
func decodeContainer(r *Reader, c *ctx) ([]Atom, error) {
	if c.depth+1 > c.cfg.maxDepth {
		return nil, errs.ErrMaxDepth
	}
	child := *c
	child.depth = c.depth + 1
	return decodeSiblings(r, &child)
}
