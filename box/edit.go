package box

import "github.com/mp4atom/mp4atom/kind"

// EditListEntry is one entry of an "elst" box.
type EditListEntry struct {
	SegmentDuration uint64
	MediaTime       int64
	MediaRateInteger int16
	MediaRateFraction int16
}

// EditList is the "elst" box: how a track's media is assembled into the
// movie's overall timeline (edits, gaps, speed changes).
type EditList struct {
	base
	FullBoxHeader
	Entries []EditListEntry
}

func decodeElst(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	entries := make([]EditListEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		var e EditListEntry
		if fb.Version == 1 {
			if e.SegmentDuration, err = r.ReadUint64(); err != nil {
				return nil, err
			}
			mt, err := r.ReadUint64()
			if err != nil {
				return nil, err
			}
			e.MediaTime = int64(mt)
		} else {
			sd, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			mt, err := r.ReadInt32()
			if err != nil {
				return nil, err
			}
			e.SegmentDuration = uint64(sd)
			e.MediaTime = int64(mt)
		}
		ri, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		rf, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		e.MediaRateInteger = int16(ri)
		e.MediaRateFraction = int16(rf)
		entries = append(entries, e)
	}
	// Every entry above advances r itself; no separate cursor-advance
	// call is needed, unlike a hand-rolled reader that tracks offsets
	// apart from the values it decodes.
	return &EditList{base{h}, fb, entries}, nil
}

func init() {
	register(kind.Elst, decodeElst)
}
