package box

import (
	"fmt"
	"io"

	"github.com/mp4atom/mp4atom/internal/hash"
	"github.com/mp4atom/mp4atom/internal/pool"
)

// PayloadDigest computes the xxHash64 fingerprint of a box's raw
// payload bytes, read through a pooled scratch buffer so repeated calls
// (walking every leaf of a large file) don't allocate one slice per
// box. The digest never needs to retain the bytes past the call, so the
// buffer is safe to return to the pool before returning. decodeOne calls
// this on every box it decodes to populate Atom.Digest().
func PayloadDigest(r *Reader, h Header) (uint64, error) {
	start := r.Offset()
	n := int(r.Remaining())

	buf := pool.GetAtomBuffer()
	defer pool.PutAtomBuffer(buf)
	buf.SetLength(n)

	payload := buf.Bytes()[:n]
	read, err := r.ra.ReadAt(payload, start)
	if err != nil && !(err == io.EOF && read == n) {
		return 0, fmt.Errorf("reading payload of %q at %d for digest: %w", h.RawType, start, errIO(err))
	}

	return hash.ID(payload), nil
}
