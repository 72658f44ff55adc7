package compress

import (
	"bytes"
	"compress/zlib"
	"io"
)

// ZlibCodec handles a dcom "zlib" identifier, the compression QuickTime
// movie-maker tools have historically used for a cmov atom. No
// third-party zlib implementation appears anywhere in this module's
// dependency set, and the standard library's compress/zlib is a
// complete, already-optimized implementation of the exact format the
// box names, so it is used directly rather than pulled in from a third
// party for a single well-defined codec.
type ZlibCodec struct{}

var _ Codec = ZlibCodec{}

func NewZlibCodec() ZlibCodec { return ZlibCodec{} }

func (ZlibCodec) ID() CompressionID { return IDZlib }

func (ZlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (ZlibCodec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out := bytes.NewBuffer(make([]byte, 0, uncompressedSize))
	if _, err := io.Copy(out, r); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
