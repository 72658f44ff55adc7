package box

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/mp4atom/mp4atom/compress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCmovInflatesMoov(t *testing.T) {
	mvhdPayload := make([]byte, 100)
	innerMoov := buildBox("moov", buildBox("mvhd", mvhdPayload))

	codec, err := compress.ForID(compress.IDZlib)
	require.NoError(t, err)
	compressed, err := codec.Compress(innerMoov)
	require.NoError(t, err)

	var cmvdPayload bytes.Buffer
	binary.Write(&cmvdPayload, binary.BigEndian, uint32(len(innerMoov)))
	cmvdPayload.Write(compressed)

	dcom := buildBox("dcom", []byte("zlib"))
	cmvd := buildBox("cmvd", cmvdPayload.Bytes())
	cmov := buildBox("cmov", append(append([]byte{}, dcom...), cmvd...))

	atoms, err := ParseReader(bytes.NewReader(cmov), int64(len(cmov)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	cm, ok := atoms[0].(*CompressedMovie)
	require.True(t, ok)
	require.NotNil(t, cm.Moov())
	assert.Equal(t, "moov", cm.Moov().Kind().String())

	moovContainer, ok := cm.Moov().(Container)
	require.True(t, ok)
	require.Len(t, moovContainer.Children(), 1)
	assert.Equal(t, "mvhd", moovContainer.Children()[0].Kind().String())
}

func TestDecodeCmovUnknownCompressionIsResilient(t *testing.T) {
	dcom := buildBox("dcom", []byte("huh?"))
	var cmvdPayload bytes.Buffer
	binary.Write(&cmvdPayload, binary.BigEndian, uint32(4))
	cmvdPayload.Write([]byte{1, 2, 3, 4})
	cmvd := buildBox("cmvd", cmvdPayload.Bytes())
	cmov := buildBox("cmov", append(append([]byte{}, dcom...), cmvd...))

	atoms, err := ParseReader(bytes.NewReader(cmov), int64(len(cmov)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	cm, ok := atoms[0].(*CompressedMovie)
	require.True(t, ok)
	assert.Nil(t, cm.Moov())
}
