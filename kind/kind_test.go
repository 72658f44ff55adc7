package kind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndString(t *testing.T) {
	k := New("moov")
	assert.Equal(t, "moov", k.String())
	assert.Equal(t, Moov, k)
}

func TestLookup(t *testing.T) {
	k, ok := Lookup("ftyp")
	require.True(t, ok)
	assert.Equal(t, Ftyp, k)

	_, ok = Lookup("zzzz")
	assert.False(t, ok)
}

func TestIsContainer(t *testing.T) {
	assert.True(t, Moov.IsContainer())
	assert.True(t, Trak.IsContainer())
	assert.True(t, Meco.IsContainer())
	assert.True(t, Ipro.IsContainer())
	assert.False(t, Mvhd.IsContainer())
	assert.False(t, Ftyp.IsContainer())
	assert.False(t, Mere.IsContainer())
}

func TestXmlAndItnCanonicalizeToNullPadded(t *testing.T) {
	assert.Equal(t, "xml\x00", Xml.String())
	assert.Equal(t, "itn\x00", Itn.String())
}

func TestNormalizeAcceptsSpacePaddedSpelling(t *testing.T) {
	assert.Equal(t, "xml\x00", Normalize("xml "))
	assert.Equal(t, "itn\x00", Normalize("itn "))
	assert.Equal(t, "moov", Normalize("moov"))
}

func TestResolveMapsBothSpellingsToTheSameKind(t *testing.T) {
	assert.Equal(t, Xml, Resolve("xml "))
	assert.Equal(t, Xml, Resolve("xml\x00"))
	assert.Equal(t, Itn, Resolve("itn "))
	assert.Equal(t, Itn, Resolve("itn\x00"))
}

func TestLookupAcceptsBothSpellings(t *testing.T) {
	k, ok := Lookup("xml ")
	require.True(t, ok)
	assert.Equal(t, Xml, k)

	k, ok = Lookup("xml\x00")
	require.True(t, ok)
	assert.Equal(t, Xml, k)
}

func TestTrimmedString(t *testing.T) {
	assert.Equal(t, "xml", Xml.TrimmedString())
	assert.Equal(t, "itn", Itn.TrimmedString())
	assert.Equal(t, "moov", Moov.TrimmedString())
}
