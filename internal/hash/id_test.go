package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID([]byte(tt.data)))
		})
	}
}

func TestIDIsDeterministic(t *testing.T) {
	data := []byte("some box payload bytes")
	assert.Equal(t, ID(data), ID(data))
}

func TestDigestMatchesIDWhenWrittenInOnePiece(t *testing.T) {
	data := []byte("payload written as a single chunk")

	d := NewDigest()
	n, err := d.Write(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, ID(data), d.Sum64())
}

func TestDigestMatchesIDWhenWrittenInPieces(t *testing.T) {
	data := []byte("payload written across several writes")

	d := NewDigest()
	_, err := d.Write(data[:10])
	require.NoError(t, err)
	_, err = d.Write(data[10:])
	require.NoError(t, err)

	assert.Equal(t, ID(data), d.Sum64())
}

func BenchmarkID(b *testing.B) {
	data := []byte("a representative box payload used for the benchmark")
	b.ResetTimer()
	for b.Loop() {
		ID(data)
	}
}
