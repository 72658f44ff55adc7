// Package compress implements the decompressors a QuickTime
// compressed-movie atom ("cmov") names by its "dcom" compression
// identifier, so a "cmvd" payload can be inflated back into an
// ordinary "moov" before it is handed to the box decoder.
package compress

import (
	"fmt"
)

// CompressionID is the four-character code a "dcom" box carries,
// naming the algorithm a sibling "cmvd" box was compressed with.
type CompressionID string

const (
	// IDZlib is QuickTime's historical default compression identifier.
	IDZlib CompressionID = "zlib"
	// IDZstd, IDS2 and IDLZ4 are not standard QuickTime identifiers;
	// this module accepts them from a dcom box as an extension so a
	// cmov producer that chose a faster modern codec can still be read.
	IDZstd CompressionID = "zstd"
	IDS2   CompressionID = "s2  "
	IDLZ4  CompressionID = "lz4 "
	// IDNone passes the cmvd payload through unchanged.
	IDNone CompressionID = "none"
)

// Decompressor inflates a compressed payload. Decompress is given the
// declared uncompressed size up front (dcom's sibling cmvd box states
// it) so an implementation can size its output buffer exactly instead
// of growing it.
type Decompressor interface {
	Decompress(compressed []byte, uncompressedSize int) ([]byte, error)
}

// Compressor is the inverse of Decompressor, kept symmetric with it so
// a round-trip test can compress a fixture moov and feed it back
// through the same Codec.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Codec bundles a compression identifier with both directions.
type Codec interface {
	ID() CompressionID
	Compressor
	Decompressor
}

var builtinCodecs = map[CompressionID]func() Codec{
	IDNone: func() Codec { return NewNoOpCodec() },
	IDZlib: func() Codec { return NewZlibCodec() },
	IDZstd: func() Codec { return NewZstdCodec() },
	IDS2:   func() Codec { return NewS2Codec() },
	IDLZ4:  func() Codec { return NewLZ4Codec() },
}

// ForID returns the Codec registered for id.
func ForID(id CompressionID) (Codec, error) {
	factory, ok := builtinCodecs[id]
	if !ok {
		return nil, fmt.Errorf("compress: no codec registered for dcom id %q", string(id))
	}
	return factory(), nil
}

// Stats summarizes one decompression, mirroring the ratio/savings a
// caller inspecting a cmov file typically wants to report.
type Stats struct {
	CompressedSize   int
	UncompressedSize int
}

// CompressionRatio returns UncompressedSize / CompressedSize, or 0 when
// CompressedSize is 0.
func (s Stats) CompressionRatio() float64 {
	if s.CompressedSize == 0 {
		return 0
	}
	return float64(s.UncompressedSize) / float64(s.CompressedSize)
}

// SpaceSavings returns the fraction of bytes compression removed; it is
// below 1, and negative when the compressed form is the larger.
func (s Stats) SpaceSavings() float64 {
	if s.UncompressedSize == 0 {
		return 0
	}
	return 1 - float64(s.CompressedSize)/float64(s.UncompressedSize)
}
