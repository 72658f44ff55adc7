package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the type carries
// internal state that benefits from reuse across calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec handles a dcom "lz4 " identifier, the fastest of the
// extension codecs this module accepts.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

func NewLZ4Codec() LZ4Codec { return LZ4Codec{} }

func (LZ4Codec) ID() CompressionID { return IDLZ4 }

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, dstSize)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// Decompress expands an lz4-compressed cmvd payload. When
// uncompressedSize is known (the common case, since cmvd states it) the
// destination buffer is sized exactly; otherwise it grows adaptively,
// doubling from 4x the compressed size up to a 128MB safety limit.
func (LZ4Codec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if uncompressedSize > 0 {
		buf := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			return nil, err
		}
		return buf[:n], nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024
	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}
			return nil, err
		}
		return buf[:n], nil
	}
	return nil, lz4.ErrInvalidSourceShortBuffer
}
