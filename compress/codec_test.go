package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMoovBytes() []byte {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func TestCodecsRoundTrip(t *testing.T) {
	data := sampleMoovBytes()

	for _, id := range []CompressionID{IDNone, IDZlib, IDZstd, IDS2, IDLZ4} {
		t.Run(string(id), func(t *testing.T) {
			codec, err := ForID(id)
			require.NoError(t, err)
			assert.Equal(t, id, codec.ID())

			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed, len(data))
			require.NoError(t, err)
			assert.Equal(t, data, decompressed)
		})
	}
}

func TestForIDUnknown(t *testing.T) {
	_, err := ForID(CompressionID("bogus"))
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	s := Stats{CompressedSize: 50, UncompressedSize: 100}
	assert.InDelta(t, 2.0, s.CompressionRatio(), 1e-9)
	assert.InDelta(t, 0.5, s.SpaceSavings(), 1e-9)

	empty := Stats{}
	assert.Equal(t, float64(0), empty.CompressionRatio())
	assert.Equal(t, float64(0), empty.SpaceSavings())
}
