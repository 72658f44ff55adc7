package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdCodec decompresses a cmvd payload that a dcom box tagged with the
// non-standard "zstd" identifier. klauspost/compress's zstd is
// pure Go, so unlike a cgo-backed binding it has no toolchain
// requirement beyond the Go compiler itself.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec returns a codec using default zstd settings.
func NewZstdCodec() ZstdCodec { return ZstdCodec{} }

func (ZstdCodec) ID() CompressionID { return IDZstd }

// zstdDecoderPool pools decoders; klauspost/compress/zstd is designed
// to run allocation-free after a warmup when the same decoder is reused.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create pooled zstd decoder: %v", err))
		}
		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create pooled zstd encoder: %v", err))
		}
		return encoder
	},
}

func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)
	return encoder.EncodeAll(data, nil), nil
}

func (c ZstdCodec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	dst := make([]byte, 0, uncompressedSize)
	decompressed, err := decoder.DecodeAll(data, dst)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression of cmvd payload failed: %w", err)
	}
	return decompressed, nil
}
