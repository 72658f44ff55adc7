package compress

// NoOpCodec passes cmvd payloads through unchanged. A dcom box that
// names "none" means the movie atom was never actually compressed.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec returns a codec that performs no transformation.
func NewNoOpCodec() NoOpCodec { return NoOpCodec{} }

func (NoOpCodec) ID() CompressionID { return IDNone }

func (NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (NoOpCodec) Decompress(data []byte, _ int) ([]byte, error) {
	return data, nil
}
