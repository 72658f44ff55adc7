package box

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBox(typ string, payload []byte) []byte {
	var buf bytes.Buffer
	size := uint32(8 + len(payload))
	binary.Write(&buf, binary.BigEndian, size)
	buf.WriteString(typ)
	buf.Write(payload)
	return buf.Bytes()
}

func TestDecodeHeaderCompact(t *testing.T) {
	data := buildBox("free", []byte{1, 2, 3})
	r := NewReader(bytes.NewReader(data), int64(len(data)))
	h, err := DecodeHeader(r)
	require.NoError(t, err)
	assert.Equal(t, "free", h.RawType)
	assert.Equal(t, uint64(11), h.Size)
	assert.Equal(t, 8, h.HeaderLen)
}

func TestDecodeHeaderLargesize(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(1))
	buf.WriteString("mdat")
	binary.Write(&buf, binary.BigEndian, uint64(24))
	buf.Write(make([]byte, 16))

	r := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	h, err := DecodeHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(24), h.Size)
	assert.Equal(t, 16, h.HeaderLen)
}

func TestDecodeHeaderSizeZeroExtendsToEnd(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(0))
	buf.WriteString("mdat")
	buf.Write(make([]byte, 10))

	r := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	h, err := DecodeHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), h.Size)
	assert.Equal(t, int64(10), h.PayloadSize(0, int64(buf.Len())))
}

func TestDecodeFullBoxHeader(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x01}
	r := NewReader(bytes.NewReader(data), int64(len(data)))
	fb, err := DecodeFullBoxHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), fb.Version)
	assert.Equal(t, uint32(1), fb.Flags)
	assert.True(t, fb.HasFlag(1))
	assert.False(t, fb.HasFlag(2))
}
