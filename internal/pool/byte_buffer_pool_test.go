package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(AtomBufferDefaultSize)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, AtomBufferDefaultSize, bb.Cap())
}

func TestByteBufferReset(t *testing.T) {
	bb := NewByteBuffer(AtomBufferDefaultSize)
	_, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, bb.Len())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 5, "reset should keep the allocated capacity")
}

func TestByteBufferWrite(t *testing.T) {
	bb := NewByteBuffer(4)
	n, err := bb.Write([]byte("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, []byte("0123456789"), bb.Bytes())
}

func TestByteBufferSetLength(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.SetLength(16)
	assert.Equal(t, 16, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 16)

	bb.SetLength(2)
	assert.Equal(t, 2, bb.Len())
}

func TestByteBufferGrowNoopWhenCapacitySuffices(t *testing.T) {
	bb := NewByteBuffer(64)
	before := bb.Cap()
	bb.Grow(10)
	assert.Equal(t, before, bb.Cap())
}

func TestByteBufferGrowReallocatesWhenNeeded(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.SetLength(4)
	bb.Grow(1000)
	assert.GreaterOrEqual(t, bb.Cap(), 1004)
	assert.Equal(t, 4, bb.Len(), "growing must not change the existing length")
}

func TestByteBufferPoolGetPutReusesCapacity(t *testing.T) {
	p := NewByteBufferPool(AtomBufferDefaultSize, AtomBufferMaxThreshold)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.SetLength(100)
	p.Put(bb)

	bb2 := p.Get()
	assert.Equal(t, 0, bb2.Len(), "Put must reset length before returning to the pool")
}

func TestByteBufferPoolDiscardsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(4, 16)

	bb := p.Get()
	bb.SetLength(1000) // far past maxThreshold
	p.Put(bb)          // should be discarded, not pooled

	bb2 := p.Get()
	assert.Less(t, bb2.Cap(), 1000)
}

func TestByteBufferPoolPutNilIsNoop(t *testing.T) {
	p := NewByteBufferPool(AtomBufferDefaultSize, AtomBufferMaxThreshold)
	assert.NotPanics(t, func() { p.Put(nil) })
}

func TestGetAtomBufferAndPutAtomBuffer(t *testing.T) {
	bb := GetAtomBuffer()
	require.NotNil(t, bb)
	bb.SetLength(10)
	PutAtomBuffer(bb)
}

func TestGetCmovBufferAndPutCmovBuffer(t *testing.T) {
	bb := GetCmovBuffer()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, bb.Cap(), CmovBufferDefaultSize)
	PutCmovBuffer(bb)
}
