package compress

import "github.com/klauspost/compress/s2"

// S2Codec handles a dcom "s2  " identifier: the Snappy-derived S2
// format, offered alongside zstd as a faster alternative for a cmov
// producer that would rather spend fewer cycles per rebuild.
type S2Codec struct{}

var _ Codec = S2Codec{}

func NewS2Codec() S2Codec { return S2Codec{} }

func (S2Codec) ID() CompressionID { return IDS2 }

func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return s2.Encode(nil, data), nil
}

func (S2Codec) Decompress(data []byte, _ int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return s2.Decode(nil, data)
}
