package box

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadDigestIsStableAndNonDestructive(t *testing.T) {
	data := buildBox("free", []byte("some payload bytes"))
	r := NewReader(bytes.NewReader(data), int64(len(data)))
	h, err := DecodeHeader(r)
	require.NoError(t, err)

	before := r.Offset()
	d1, err := PayloadDigest(r, h)
	require.NoError(t, err)
	assert.Equal(t, before, r.Offset(), "digest must not move the reader's cursor")

	d2, err := PayloadDigest(r, h)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestPayloadDigestDiffersForDifferentPayloads(t *testing.T) {
	data1 := buildBox("free", []byte("payload one"))
	r1 := NewReader(bytes.NewReader(data1), int64(len(data1)))
	h1, err := DecodeHeader(r1)
	require.NoError(t, err)
	d1, err := PayloadDigest(r1, h1)
	require.NoError(t, err)

	data2 := buildBox("free", []byte("payload two"))
	r2 := NewReader(bytes.NewReader(data2), int64(len(data2)))
	h2, err := DecodeHeader(r2)
	require.NoError(t, err)
	d2, err := PayloadDigest(r2, h2)
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
}

func TestParsedAtomDigestMatchesPayloadDigest(t *testing.T) {
	payload := []byte("some payload bytes")
	data := buildBox("free", payload)
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 1)

	r := NewReader(bytes.NewReader(data), int64(len(data)))
	h, err := DecodeHeader(r)
	require.NoError(t, err)
	want, err := PayloadDigest(r, h)
	require.NoError(t, err)

	assert.Equal(t, want, atoms[0].Digest())
}

func TestParsedAtomDigestDiffersAcrossSiblingsWithDifferentPayloads(t *testing.T) {
	var data []byte
	data = append(data, buildBox("free", []byte("one"))...)
	data = append(data, buildBox("free", []byte("two"))...)
	atoms, err := ParseReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, atoms, 2)

	assert.NotEqual(t, atoms[0].Digest(), atoms[1].Digest())
}
