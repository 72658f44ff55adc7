package box

import (
	"fmt"

	"github.com/mp4atom/mp4atom/errs"
	"github.com/mp4atom/mp4atom/kind"
)

// Header is the common box header every atom starts with: a declared
// size, a four-character type, and (for the "uuid" extended type) a
// 16-byte user type. HeaderLen records how many bytes the header itself
// consumed, since that varies between the compact 8-byte form, the
// 16-byte largesize form, and the uuid forms that add 16 bytes to either
// (24 or 32 bytes).
type Header struct {
	Size      uint64 // total box size including the header, 0 means "to EOF"
	Type      kind.Kind
	RawType   string
	HeaderLen int
	UserType  [16]byte
}

// PayloadSize returns the number of bytes left after the header, given
// the containing reader's declared end. A zero Size means "extends to
// end", so the payload runs to boundEnd.
func (h Header) PayloadSize(startOffset, boundEnd int64) int64 {
	if h.Size == 0 {
		return boundEnd - startOffset - int64(h.HeaderLen)
	}
	return int64(h.Size) - int64(h.HeaderLen)
}

// DecodeHeader reads a box header at the reader's current position.
func DecodeHeader(r *Reader) (Header, error) {
	start := r.Offset()
	size32, err := r.ReadUint32()
	if err != nil {
		return Header{}, fmt.Errorf("box header size at %d: %w", start, err)
	}
	typ, err := r.Read4CC()
	if err != nil {
		return Header{}, fmt.Errorf("box header type at %d: %w", start, err)
	}

	h := Header{RawType: typ, HeaderLen: 8}
	h.Type = kind.Resolve(typ)

	switch size32 {
	case 0:
		h.Size = 0
	case 1:
		large, err := r.ReadUint64()
		if err != nil {
			return Header{}, fmt.Errorf("box header largesize at %d: %w", start, err)
		}
		h.Size = large
		h.HeaderLen = 16
	default:
		h.Size = uint64(size32)
	}

	if typ == "uuid" {
		ut, err := r.ReadBytes(16)
		if err != nil {
			return Header{}, fmt.Errorf("box header usertype at %d: %w", start, err)
		}
		copy(h.UserType[:], ut)
		h.HeaderLen += 16
	}

	if h.Size != 0 && h.Size < uint64(h.HeaderLen) {
		return h, fmt.Errorf("box %q declares size %d smaller than its %d-byte header: %w", typ, h.Size, h.HeaderLen, errs.ErrInvalidField)
	}
	return h, nil
}

// FullBoxHeader is the version+flags pair that prefixes most ISO boxes
// beyond the plain container ones.
type FullBoxHeader struct {
	Version uint8
	Flags   uint32
}

// DecodeFullBoxHeader reads the version byte and 24-bit flags field.
func DecodeFullBoxHeader(r *Reader) (FullBoxHeader, error) {
	ver, err := r.ReadUint8()
	if err != nil {
		return FullBoxHeader{}, fmt.Errorf("fullbox version: %w", err)
	}
	flags, err := r.ReadUint24()
	if err != nil {
		return FullBoxHeader{}, fmt.Errorf("fullbox flags: %w", err)
	}
	return FullBoxHeader{Version: ver, Flags: flags}, nil
}

// HasFlag reports whether bit is set in the flags field.
func (f FullBoxHeader) HasFlag(bit uint32) bool {
	return f.Flags&bit != 0
}
