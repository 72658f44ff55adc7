package box

import (
	"fmt"
	"io"

	"github.com/mp4atom/mp4atom/compress"
	"github.com/mp4atom/mp4atom/errs"
	"github.com/mp4atom/mp4atom/kind"
)

// CompressedData is the "dcom" box: the compression identifier applied
// to the sibling "cmvd" box's payload.
type CompressedData struct {
	base
	CompressionID compress.CompressionID
}

func decodeDcom(r *Reader, h Header, _ *ctx) (Atom, error) {
	id, err := r.Read4CC()
	if err != nil {
		return nil, err
	}
	return &CompressedData{base{h}, compress.CompressionID(id)}, nil
}

// CompressedMovieData is the "cmvd" box: the declared uncompressed size
// followed by the compressed bytes, which decode to an ordinary "moov".
type CompressedMovieData struct {
	base
	UncompressedSize uint32
	Compressed       []byte
}

func decodeCmvd(r *Reader, h Header, _ *ctx) (Atom, error) {
	size, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	data, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, err
	}
	return &CompressedMovieData{base{h}, size, data}, nil
}

// CompressedMovie is the "cmov" box: a container that always holds
// exactly one "dcom" and one "cmvd" child. Moov returns the decoded
// movie box those two children decompress to.
type CompressedMovie struct {
	base
	children []Atom
	moov     Atom
}

func (c *CompressedMovie) Children() []Atom { return c.children }

// Moov returns the GenericContainer this cmov's cmvd payload inflates
// to, already reparsed as an ordinary movie box. It is nil if
// decompression or reparsing failed in a resilient-mode decode.
func (c *CompressedMovie) Moov() Atom { return c.moov }

func decodeCmov(r *Reader, h Header, c *ctx) (Atom, error) {
	children, err := decodeContainer(r, c)
	if err != nil {
		return nil, err
	}

	cm := &CompressedMovie{base: base{h}, children: children}

	var dcom *CompressedData
	var cmvd *CompressedMovieData
	for _, child := range children {
		switch v := child.(type) {
		case *CompressedData:
			dcom = v
		case *CompressedMovieData:
			cmvd = v
		}
	}
	if dcom == nil || cmvd == nil {
		if c.cfg.strict {
			return nil, fmt.Errorf("cmov missing dcom/cmvd children: %w", errs.ErrInvalidField)
		}
		return cm, nil
	}

	codec, err := compress.ForID(dcom.CompressionID)
	if err != nil {
		if c.cfg.strict {
			return nil, err
		}
		c.cfg.log().Debug("skipping cmov decompression", "error", err)
		return cm, nil
	}

	moovBytes, err := codec.Decompress(cmvd.Compressed, int(cmvd.UncompressedSize))
	if err != nil {
		if c.cfg.strict {
			return nil, fmt.Errorf("decompressing cmvd payload: %w", err)
		}
		c.cfg.log().Debug("cmvd decompression failed", "error", err)
		return cm, nil
	}

	inner := NewReader(byteReaderAt(moovBytes), int64(len(moovBytes)))
	moovChildren, err := decodeSiblings(inner, c)
	if err != nil {
		if c.cfg.strict {
			return nil, fmt.Errorf("reparsing decompressed moov: %w", err)
		}
		return cm, nil
	}
	for _, m := range moovChildren {
		if m.Kind() == kind.Moov {
			cm.moov = m
			break
		}
	}
	return cm, nil
}

// byteReaderAt adapts a plain byte slice to io.ReaderAt so the
// decompressed moov can be reparsed with the same Reader type used for
// the file itself.
type byteReaderAt []byte

func (b byteReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(b)) {
		return 0, fmt.Errorf("offset %d out of range", off)
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func init() {
	register(kind.Dcom, decodeDcom)
	register(kind.Cmvd, decodeCmvd)
	register(kind.Cmov, decodeCmov)
}
