// Package hash provides the content fingerprint used to detect whether a
// decoded atom's payload changed between two reads of the same file.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of data, used to fingerprint a raw box
// payload so callers can cheaply tell two decodes apart without
// comparing every field.
func ID(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest is a running xxHash64 state for boxes whose payload is read in
// pieces (a container's children, a sample table's variable-length
// entries) rather than all at once.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest returns a Digest ready to accumulate bytes.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write implements io.Writer.
func (h *Digest) Write(p []byte) (int, error) {
	return h.d.Write(p)
}

// Sum64 returns the current digest value without resetting state.
func (h *Digest) Sum64() uint64 {
	return h.d.Sum64()
}
