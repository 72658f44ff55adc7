package box

import "github.com/mp4atom/mp4atom/kind"

// SampleEntry is one entry of a "stsd" box: the common prefix every
// sample description shares (a four-character format and the data
// reference it points into), followed by format-specific bytes this
// module does not interpret further.
type SampleEntry struct {
	Format             string
	DataReferenceIndex uint16
	Extra              []byte
}

// SampleDescription is the "stsd" box: one entry per distinct sample
// format used by the track (commonly just one).
type SampleDescription struct {
	base
	FullBoxHeader
	Entries []SampleEntry
}

func decodeStsd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	s := &SampleDescription{base: base{h}, FullBoxHeader: fb}
	for i := uint32(0); i < count; i++ {
		entryStart := r.Offset()
		entrySize, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		format, err := r.Read4CC()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadBytes(6); err != nil { // reserved
			return nil, err
		}
		dri, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}

		remaining := int64(entrySize) - (r.Offset() - entryStart)
		var extra []byte
		if remaining > 0 {
			extra, err = r.ReadBytes(int(remaining))
			if err != nil {
				return nil, err
			}
		}
		s.Entries = append(s.Entries, SampleEntry{Format: format, DataReferenceIndex: dri, Extra: extra})
	}
	return s, nil
}

func init() {
	register(kind.Stsd, decodeStsd)
}
