package box

import (
	"fmt"
	"io"

	"github.com/mp4atom/mp4atom/errs"
)

// Reader reads big-endian fields from an io.ReaderAt at a cursor
// position it tracks itself, so a box can be decoded without the
// underlying file needing to support sequential Read semantics. This
// mirrors the random-access model a seekable container format needs:
// a sample table entry can point anywhere in the file, and decoding one
// box must never disturb another goroutine decoding a sibling against
// the same ReaderAt.
type Reader struct {
	ra  io.ReaderAt
	pos int64
	end int64 // exclusive upper bound this Reader may read up to
}

// NewReader wraps ra for reads in [0, size).
func NewReader(ra io.ReaderAt, size int64) *Reader {
	return &Reader{ra: ra, end: size}
}

// slice returns a Reader restricted to [pos, pos+n) of the same
// underlying ReaderAt, used to hand a container's child boxes a view
// that cannot read past the parent's declared boundary.
func (r *Reader) slice(pos, n int64) *Reader {
	return &Reader{ra: r.ra, pos: pos, end: pos + n}
}

// Offset returns the current read position.
func (r *Reader) Offset() int64 { return r.pos }

// End returns the exclusive upper bound this Reader may read to.
func (r *Reader) End() int64 { return r.end }

// Remaining returns the number of bytes left before End.
func (r *Reader) Remaining() int64 { return r.end - r.pos }

// Seek moves the cursor to an absolute offset within [0, End()].
func (r *Reader) Seek(pos int64) error {
	if pos < 0 || pos > r.end {
		return fmt.Errorf("seek to %d outside bounds [0,%d]: %w", pos, r.end, errs.ErrShortRead)
	}
	r.pos = pos
	return nil
}

// Skip advances the cursor by n bytes without reading them.
func (r *Reader) Skip(n int64) error {
	return r.Seek(r.pos + n)
}

func (r *Reader) readN(n int) ([]byte, error) {
	if r.pos+int64(n) > r.end {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d: %w", n, r.pos, r.end-r.pos, errs.ErrShortRead)
	}
	buf := make([]byte, n)
	read, err := r.ra.ReadAt(buf, r.pos)
	if err != nil && !(err == io.EOF && read == n) {
		return nil, fmt.Errorf("reading %d bytes at %d: %w", n, r.pos, errIO(err))
	}
	r.pos += int64(n)
	return buf, nil
}

func errIO(err error) error {
	return fmt.Errorf("%w: %v", errs.ErrIO, err)
}

// ReadBytes reads exactly n raw bytes and advances the cursor.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.readN(n)
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.readN(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// ReadUint24 reads a big-endian 24-bit unsigned integer (used by the
// FullBox flags field).
func (r *Reader) ReadUint24() (uint32, error) {
	b, err := r.readN(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// ReadInt32 reads a big-endian signed int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a big-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.readN(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v, nil
}

// ReadFixedPoint reads an (intBits+fracBits)/8-byte big-endian fixed
// point number and returns it as a float64. ISO 14496-12 uses 16.16
// (rate) and 8.8 (volume) layouts for 32- and 16-bit fields respectively,
// and 2.30 for the unity entries of a transformation matrix.
func (r *Reader) ReadFixedPoint(intBits, fracBits int) (float64, error) {
	total := intBits + fracBits
	switch total {
	case 16:
		v, err := r.ReadUint16()
		if err != nil {
			return 0, err
		}
		return float64(int16(v)) / float64(int64(1)<<uint(fracBits)), nil
	case 32:
		v, err := r.ReadUint32()
		if err != nil {
			return 0, err
		}
		return float64(int32(v)) / float64(int64(1)<<uint(fracBits)), nil
	default:
		return 0, fmt.Errorf("unsupported fixed point width %d: %w", total, errs.ErrInvalidField)
	}
}

// ReadMatrix reads the 9-entry, 36-byte transformation matrix: the six
// 16.16 entries followed by the three 2.30 entries, in row-major order.
func (r *Reader) ReadMatrix() ([9]float64, error) {
	var m [9]float64
	layout := [9]int{16, 16, 2, 16, 16, 2, 16, 16, 2}
	for i, intBits := range layout {
		fracBits := 32 - intBits
		v, err := r.ReadFixedPoint(intBits, fracBits)
		if err != nil {
			return m, fmt.Errorf("matrix[%d]: %w", i, err)
		}
		m[i] = v
	}
	return m, nil
}

// ReadISO639Code reads the packed ISO-639-2/T language code: one pad
// bit followed by three 5-bit letter offsets from 0x60.
func (r *Reader) ReadISO639Code() (string, error) {
	v, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	var b [3]byte
	b[0] = byte((v>>10)&0x1f) + 0x60
	b[1] = byte((v>>5)&0x1f) + 0x60
	b[2] = byte(v&0x1f) + 0x60
	return string(b[:]), nil
}

// Read4CC reads a four-character code (box type, sample format, brand).
func (r *Reader) Read4CC() (string, error) {
	b, err := r.readN(4)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadNullTerminatedString reads bytes up to and including a 0x00
// terminator, returning the string without the terminator. A stream
// that runs out of bytes before finding one is tolerated: whatever was
// read is returned along with ErrShortRead so a resilient caller can
// keep the partial value.
func (r *Reader) ReadNullTerminatedString() (string, error) {
	var out []byte
	for {
		if r.pos >= r.end {
			return string(out), fmt.Errorf("unterminated string at offset %d: %w", r.pos, errs.ErrShortRead)
		}
		b, err := r.ReadUint8()
		if err != nil {
			return string(out), err
		}
		if b == 0 {
			return string(out), nil
		}
		out = append(out, b)
	}
}
