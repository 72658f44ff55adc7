package box

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFreeSpace(t *testing.T) {
	data := buildBox("free", []byte{1, 2, 3, 4, 5})
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	free, ok := atoms[0].(*FreeSpace)
	require.True(t, ok)
	assert.Equal(t, int64(5), free.Size)
}

func TestDecodeMdatRecordsOffsetWithoutReadingPayload(t *testing.T) {
	data := buildBox("mdat", []byte{0xde, 0xad, 0xbe, 0xef})
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	mdat, ok := atoms[0].(*MediaData)
	require.True(t, ok)
	assert.Equal(t, int64(8), mdat.Offset)
	assert.Equal(t, int64(4), mdat.Size)
}

func TestDecodePdinIsAFullBox(t *testing.T) {
	var payload bytes.Buffer
	payload.Write(make([]byte, 4)) // version+flags
	binary.Write(&payload, binary.BigEndian, uint32(1000))
	binary.Write(&payload, binary.BigEndian, uint32(2000))

	data := buildBox("pdin", payload.Bytes())
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	pdin, ok := atoms[0].(*ProgressiveDownloadInfo)
	require.True(t, ok)
	require.Len(t, pdin.Entries, 1)
	assert.Equal(t, PDinEntry{Rate: 1000, InitialDelay: 2000}, pdin.Entries[0])
}

func TestDecodeCprt(t *testing.T) {
	var payload bytes.Buffer
	payload.Write(make([]byte, 4))
	v := uint16(5)<<10 | uint16(14)<<5 | uint16(7) // "eng"
	binary.Write(&payload, binary.BigEndian, v)
	payload.WriteString("Copyright 2026")
	payload.WriteByte(0)

	data := buildBox("cprt", payload.Bytes())
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	cprt, ok := atoms[0].(*Copyright)
	require.True(t, ok)
	assert.Equal(t, "eng", cprt.Language)
	assert.Equal(t, "Copyright 2026", cprt.Notice)
}

func TestDecodeSchmWithURI(t *testing.T) {
	var payload bytes.Buffer
	payload.Write([]byte{0, 0, 0, 1}) // flags bit 0 set: URI present
	payload.WriteString("cbcs")
	binary.Write(&payload, binary.BigEndian, uint32(0x00010000))
	payload.WriteString("urn:scheme")
	payload.WriteByte(0)

	data := buildBox("schm", payload.Bytes())
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	schm, ok := atoms[0].(*SchemeType)
	require.True(t, ok)
	assert.Equal(t, "cbcs", schm.SchemeType)
	assert.Equal(t, "urn:scheme", schm.SchemeURI)
}

func TestDecodeStsdEntries(t *testing.T) {
	var entry bytes.Buffer
	binary.Write(&entry, binary.BigEndian, uint32(0)) // entry_size placeholder, fixed below
	entry.WriteString("avc1")
	entry.Write(make([]byte, 6))
	binary.Write(&entry, binary.BigEndian, uint16(1))
	entry.Write([]byte{0xAA, 0xBB}) // extra codec-specific bytes

	entryBytes := entry.Bytes()
	binary.BigEndian.PutUint32(entryBytes, uint32(len(entryBytes)))

	var payload bytes.Buffer
	payload.Write(make([]byte, 4))
	binary.Write(&payload, binary.BigEndian, uint32(1))
	payload.Write(entryBytes)

	data := buildBox("stsd", payload.Bytes())
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	stsd, ok := atoms[0].(*SampleDescription)
	require.True(t, ok)
	require.Len(t, stsd.Entries, 1)
	assert.Equal(t, "avc1", stsd.Entries[0].Format)
	assert.Equal(t, uint16(1), stsd.Entries[0].DataReferenceIndex)
	assert.Equal(t, []byte{0xAA, 0xBB}, stsd.Entries[0].Extra)
}
