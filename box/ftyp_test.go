package box

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFtypPayload(major string, minor uint32, compat ...string) []byte {
	var buf bytes.Buffer
	buf.WriteString(major)
	binary.Write(&buf, binary.BigEndian, minor)
	for _, c := range compat {
		buf.WriteString(c)
	}
	return buf.Bytes()
}

func TestDecodeFtyp(t *testing.T) {
	payload := buildFtypPayload("qt  ", 0x20050300, "qt  ")
	data := buildBox("ftyp", payload)

	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	ft, ok := atoms[0].(*FileType)
	require.True(t, ok)
	assert.Equal(t, "qt  ", ft.MajorBrand)
	assert.True(t, ft.HasBrand("qt  "))
	assert.False(t, ft.HasBrand("isom"))
}
