package box

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeTfhdIndependentFlagBits verifies each optional field is
// gated by its own bit rather than by comparing the whole flags value,
// so a combination of several flags decodes every field that is set.
func TestDecodeTfhdIndependentFlagBits(t *testing.T) {
	flags := TfhdDefaultSampleDurationPresent | TfhdDefaultSampleSizePresent | TfhdDefaultSampleFlagsPresent

	var payload bytes.Buffer
	payload.WriteByte(0) // version
	payload.WriteByte(byte(flags >> 16))
	payload.WriteByte(byte(flags >> 8))
	payload.WriteByte(byte(flags))
	binary.Write(&payload, binary.BigEndian, uint32(7)) // track_id
	binary.Write(&payload, binary.BigEndian, uint32(1000))
	binary.Write(&payload, binary.BigEndian, uint32(512))
	binary.Write(&payload, binary.BigEndian, uint32(0x01010000))

	data := buildBox("tfhd", payload.Bytes())
	r := NewReader(bytes.NewReader(data), int64(len(data)))
	h, err := DecodeHeader(r)
	require.NoError(t, err)

	atom, err := decodeOne(r, h, &ctx{cfg: defaultConfig()})
	require.NoError(t, err)

	tfhd, ok := atom.(*TrackFragmentHeader)
	require.True(t, ok)
	assert.Equal(t, uint32(7), tfhd.TrackID)
	assert.Equal(t, uint32(1000), tfhd.DefaultSampleDuration)
	assert.Equal(t, uint32(512), tfhd.DefaultSampleSize)
	assert.Equal(t, uint32(0x01010000), tfhd.DefaultSampleFlags)
	assert.Equal(t, uint64(0), tfhd.BaseDataOffset)
	assert.Equal(t, uint32(0), tfhd.SampleDescriptionIndex)
}

func TestDecodeTrunPerSampleFields(t *testing.T) {
	flags := TrunSampleDurationPresent | TrunSampleSizePresent

	var payload bytes.Buffer
	payload.WriteByte(0)
	payload.WriteByte(byte(flags >> 16))
	payload.WriteByte(byte(flags >> 8))
	payload.WriteByte(byte(flags))
	binary.Write(&payload, binary.BigEndian, uint32(2)) // sample_count
	binary.Write(&payload, binary.BigEndian, uint32(100))
	binary.Write(&payload, binary.BigEndian, uint32(10))
	binary.Write(&payload, binary.BigEndian, uint32(200))
	binary.Write(&payload, binary.BigEndian, uint32(20))

	data := buildBox("trun", payload.Bytes())
	r := NewReader(bytes.NewReader(data), int64(len(data)))
	h, err := DecodeHeader(r)
	require.NoError(t, err)

	atom, err := decodeOne(r, h, &ctx{cfg: defaultConfig()})
	require.NoError(t, err)

	trun, ok := atom.(*TrackRun)
	require.True(t, ok)
	require.Len(t, trun.Samples, 2)
	assert.Equal(t, uint32(100), trun.Samples[0].Duration)
	assert.Equal(t, uint32(10), trun.Samples[0].Size)
	assert.Equal(t, uint32(200), trun.Samples[1].Duration)
	assert.Equal(t, uint32(20), trun.Samples[1].Size)
}
