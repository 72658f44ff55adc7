package box

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeElstVersion1(t *testing.T) {
	var payload bytes.Buffer
	payload.WriteByte(1) // version
	payload.Write([]byte{0, 0, 0})
	binary.Write(&payload, binary.BigEndian, uint32(1)) // entry_count
	binary.Write(&payload, binary.BigEndian, uint64(9000))
	binary.Write(&payload, binary.BigEndian, uint64(0))
	binary.Write(&payload, binary.BigEndian, uint16(1))
	binary.Write(&payload, binary.BigEndian, uint16(0))

	data := buildBox("elst", payload.Bytes())
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	elst, ok := atoms[0].(*EditList)
	require.True(t, ok)
	require.Len(t, elst.Entries, 1)
	assert.Equal(t, uint64(9000), elst.Entries[0].SegmentDuration)
	assert.Equal(t, int16(1), elst.Entries[0].MediaRateInteger)
}

func TestDecodeSmhdBalance(t *testing.T) {
	var payload bytes.Buffer
	payload.Write(make([]byte, 4))
	binary.Write(&payload, binary.BigEndian, uint16(1<<7)) // 0.5 balance (left)
	binary.Write(&payload, binary.BigEndian, uint16(0))

	data := buildBox("smhd", payload.Bytes())
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	smhd, ok := atoms[0].(*SoundMediaHeader)
	require.True(t, ok)
	assert.InDelta(t, 0.5, smhd.Balance, 1e-6)
}

func TestDecodeVmhd(t *testing.T) {
	var payload bytes.Buffer
	payload.Write(make([]byte, 4))
	binary.Write(&payload, binary.BigEndian, uint16(1))
	binary.Write(&payload, binary.BigEndian, uint16(0))
	binary.Write(&payload, binary.BigEndian, uint16(0))
	binary.Write(&payload, binary.BigEndian, uint16(0))

	data := buildBox("vmhd", payload.Bytes())
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	vmhd, ok := atoms[0].(*VideoMediaHeader)
	require.True(t, ok)
	assert.Equal(t, uint16(1), vmhd.GraphicsMode)
}

func TestDecodeDrefNestsUrlAndUrnChildren(t *testing.T) {
	urlBox := buildBox("url ", []byte{0, 0, 0, 1}) // self-contained flag set
	var urnPayload bytes.Buffer
	urnPayload.Write(make([]byte, 4))
	urnPayload.WriteString("urn:example")
	urnPayload.WriteByte(0)
	urnBox := buildBox("urn ", urnPayload.Bytes())

	var drefPayload bytes.Buffer
	drefPayload.Write(make([]byte, 4))
	binary.Write(&drefPayload, binary.BigEndian, uint32(2))
	drefPayload.Write(urlBox)
	drefPayload.Write(urnBox)

	data := buildBox("dref", drefPayload.Bytes())
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	dref, ok := atoms[0].(*DataReference)
	require.True(t, ok)
	require.Len(t, dref.children, 2)

	url, ok := dref.children[0].(*DataEntryURL)
	require.True(t, ok)
	assert.Empty(t, url.Location)
	assert.True(t, url.FullBoxHeader.HasFlag(0x000001))

	urn, ok := dref.children[1].(*DataEntryURN)
	require.True(t, ok)
	assert.Equal(t, "urn:example", urn.Name)
}
