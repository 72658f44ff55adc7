// Package pool provides reusable byte buffers for the scratch space
// needed when reading a box payload to digest it, so a large file does
// not force one allocation per box.
package pool

import "sync"

const (
	// AtomBufferDefaultSize covers the payload of an ordinary leaf box
	// (header tables, sample entries) without growing.
	AtomBufferDefaultSize = 4 * 1024
	// AtomBufferMaxThreshold is the largest buffer kept in the pool;
	// anything bigger is discarded after use instead of retained.
	AtomBufferMaxThreshold = 256 * 1024

	// CmovBufferDefaultSize and CmovBufferMaxThreshold size the cmov
	// buffer pool; the box package's cmov decoding does not draw from it.
	CmovBufferDefaultSize  = 64 * 1024
	CmovBufferMaxThreshold = 16 * 1024 * 1024
)

// ByteBuffer is a growable byte slice with a reset that retains capacity.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// SetLength sets the length of the buffer to n, growing it first if n
// exceeds the current capacity.
func (bb *ByteBuffer) SetLength(n int) {
	bb.Grow(n - len(bb.B))
	bb.B = bb.B[:n]
}

// Grow ensures the buffer can hold requiredBytes more bytes without a
// further reallocation. Small buffers grow by AtomBufferDefaultSize at a
// time; past that it grows by 25% of current capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if requiredBytes <= 0 {
		return
	}
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := AtomBufferDefaultSize
	if cap(bb.B) > 4*AtomBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool pools ByteBuffers of a given default size, discarding
// ones that grew past maxThreshold rather than retaining them.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers sized defaultSize.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}
	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	atomPool = NewByteBufferPool(AtomBufferDefaultSize, AtomBufferMaxThreshold)
	cmovPool = NewByteBufferPool(CmovBufferDefaultSize, CmovBufferMaxThreshold)
)

// GetAtomBuffer retrieves a ByteBuffer from the default atom-payload pool.
func GetAtomBuffer() *ByteBuffer { return atomPool.Get() }

// PutAtomBuffer returns a ByteBuffer to the default atom-payload pool.
func PutAtomBuffer(bb *ByteBuffer) { atomPool.Put(bb) }

// GetCmovBuffer retrieves a ByteBuffer from the compressed-movie pool.
func GetCmovBuffer() *ByteBuffer { return cmovPool.Get() }

// PutCmovBuffer returns a ByteBuffer to the compressed-movie pool.
func PutCmovBuffer(bb *ByteBuffer) { cmovPool.Put(bb) }
