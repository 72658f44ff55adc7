package box

import "github.com/mp4atom/mp4atom/kind"

// MovieFragmentHeader is the "mfhd" box: the sequence number a reader
// uses to detect missing or reordered fragments.
type MovieFragmentHeader struct {
	base
	FullBoxHeader
	SequenceNumber uint32
}

func decodeMfhd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	seq, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &MovieFragmentHeader{base{h}, fb, seq}, nil
}

// Track fragment header optional-field flag bits, per ISO/IEC 14496-12.
const (
	TfhdBaseDataOffsetPresent       uint32 = 0x000001
	TfhdSampleDescriptionIndexPresent uint32 = 0x000002
	TfhdDefaultSampleDurationPresent uint32 = 0x000008
	TfhdDefaultSampleSizePresent    uint32 = 0x000010
	TfhdDefaultSampleFlagsPresent   uint32 = 0x000020
	TfhdDurationIsEmpty             uint32 = 0x010000
	TfhdDefaultBaseIsMoof           uint32 = 0x020000
)

// TrackFragmentHeader is the "tfhd" box: per-fragment defaults for a
// track, each field gated independently by its own flag bit. A source
// that instead compares the whole flags value against a fixed constant
// will silently skip fields whenever more than one bit is set; every
// field here is checked with its own bitmask so combinations decode
// correctly.
type TrackFragmentHeader struct {
	base
	FullBoxHeader
	TrackID                     uint32
	BaseDataOffset              uint64
	SampleDescriptionIndex      uint32
	DefaultSampleDuration       uint32
	DefaultSampleSize           uint32
	DefaultSampleFlags          uint32
}

func decodeTfhd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	t := &TrackFragmentHeader{base: base{h}, FullBoxHeader: fb}
	if t.TrackID, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if fb.HasFlag(TfhdBaseDataOffsetPresent) {
		if t.BaseDataOffset, err = r.ReadUint64(); err != nil {
			return nil, err
		}
	}
	if fb.HasFlag(TfhdSampleDescriptionIndexPresent) {
		if t.SampleDescriptionIndex, err = r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	if fb.HasFlag(TfhdDefaultSampleDurationPresent) {
		if t.DefaultSampleDuration, err = r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	if fb.HasFlag(TfhdDefaultSampleSizePresent) {
		if t.DefaultSampleSize, err = r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	if fb.HasFlag(TfhdDefaultSampleFlagsPresent) {
		if t.DefaultSampleFlags, err = r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Track fragment run optional-field flag bits.
const (
	TrunDataOffsetPresent                   uint32 = 0x000001
	TrunFirstSampleFlagsPresent              uint32 = 0x000004
	TrunSampleDurationPresent                uint32 = 0x000100
	TrunSampleSizePresent                    uint32 = 0x000200
	TrunSampleFlagsPresent                   uint32 = 0x000400
	TrunSampleCompositionTimeOffsetsPresent  uint32 = 0x000800
)

// TrunSample is one sample entry of a "trun" box; fields absent from
// the wire are left at zero, matching the box's own defaulting rules
// (e.g. a track fragment header's DefaultSampleDuration applies).
// CompositionTimeOffset is unsigned on the wire in trun version 0 and
// signed in version 1; both are widened losslessly into an int64.
type TrunSample struct {
	Duration              uint32
	Size                  uint32
	Flags                 uint32
	CompositionTimeOffset int64
}

// TrackRun is the "trun" box: one run of contiguous samples in a track
// fragment, each optional per-sample field gated by its own flag bit
// exactly like TrackFragmentHeader.
type TrackRun struct {
	base
	FullBoxHeader
	DataOffset       int32
	FirstSampleFlags uint32
	Samples          []TrunSample
}

func decodeTrun(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	t := &TrackRun{base: base{h}, FullBoxHeader: fb}
	sampleCount, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if fb.HasFlag(TrunDataOffsetPresent) {
		if t.DataOffset, err = r.ReadInt32(); err != nil {
			return nil, err
		}
	}
	if fb.HasFlag(TrunFirstSampleFlagsPresent) {
		if t.FirstSampleFlags, err = r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	t.Samples = make([]TrunSample, 0, sampleCount)
	for i := uint32(0); i < sampleCount; i++ {
		var s TrunSample
		if fb.HasFlag(TrunSampleDurationPresent) {
			if s.Duration, err = r.ReadUint32(); err != nil {
				return nil, err
			}
		}
		if fb.HasFlag(TrunSampleSizePresent) {
			if s.Size, err = r.ReadUint32(); err != nil {
				return nil, err
			}
		}
		if fb.HasFlag(TrunSampleFlagsPresent) {
			if s.Flags, err = r.ReadUint32(); err != nil {
				return nil, err
			}
		}
		if fb.HasFlag(TrunSampleCompositionTimeOffsetsPresent) {
			if fb.Version == 0 {
				u, err := r.ReadUint32()
				if err != nil {
					return nil, err
				}
				s.CompositionTimeOffset = int64(u)
			} else {
				off, err := r.ReadInt32()
				if err != nil {
					return nil, err
				}
				s.CompositionTimeOffset = int64(off)
			}
		}
		t.Samples = append(t.Samples, s)
	}
	return t, nil
}

// TrackFragmentBaseMediaDecodeTime is the "tfdt" box: the absolute
// decode time of the first sample in a track fragment.
type TrackFragmentBaseMediaDecodeTime struct {
	base
	FullBoxHeader
	BaseMediaDecodeTime uint64
}

func decodeTfdt(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	t := &TrackFragmentBaseMediaDecodeTime{base: base{h}, FullBoxHeader: fb}
	if fb.Version == 1 {
		if t.BaseMediaDecodeTime, err = r.ReadUint64(); err != nil {
			return nil, err
		}
	} else {
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		t.BaseMediaDecodeTime = uint64(v)
	}
	return t, nil
}

// MovieExtendsHeader is the "mehd" box: the overall fragmented
// presentation's duration.
type MovieExtendsHeader struct {
	base
	FullBoxHeader
	FragmentDuration uint64
}

func decodeMehd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	m := &MovieExtendsHeader{base: base{h}, FullBoxHeader: fb}
	if fb.Version == 1 {
		if m.FragmentDuration, err = r.ReadUint64(); err != nil {
			return nil, err
		}
	} else {
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		m.FragmentDuration = uint64(v)
	}
	return m, nil
}

// TrackExtends is the "trex" box: the per-track defaults a track
// fragment header may omit and inherit from instead.
type TrackExtends struct {
	base
	FullBoxHeader
	TrackID                       uint32
	DefaultSampleDescriptionIndex uint32
	DefaultSampleDuration         uint32
	DefaultSampleSize             uint32
	DefaultSampleFlags            uint32
}

func decodeTrex(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	t := &TrackExtends{base: base{h}, FullBoxHeader: fb}
	if t.TrackID, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if t.DefaultSampleDescriptionIndex, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if t.DefaultSampleDuration, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if t.DefaultSampleSize, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if t.DefaultSampleFlags, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	return t, nil
}

// TrackFragmentRandomAccessEntry is one entry of a "tfra" box.
type TrackFragmentRandomAccessEntry struct {
	Time            uint64
	MoofOffset      uint64
	TrafNumber      uint32
	TrunNumber      uint32
	SampleNumber    uint32
}

// TrackFragmentRandomAccess is the "tfra" box: a random-access index
// for one track's fragments, used by a player seeking without scanning
// every moof.
type TrackFragmentRandomAccess struct {
	base
	FullBoxHeader
	TrackID               uint32
	LengthSizeOfTrafNum   uint8
	LengthSizeOfTrunNum   uint8
	LengthSizeOfSampleNum uint8
	Entries               []TrackFragmentRandomAccessEntry
}

func decodeTfra(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	t := &TrackFragmentRandomAccess{base: base{h}, FullBoxHeader: fb}
	if t.TrackID, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	reserved, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	t.LengthSizeOfTrafNum = uint8(reserved >> 4 & 0x3)
	t.LengthSizeOfTrunNum = uint8(reserved >> 2 & 0x3)
	t.LengthSizeOfSampleNum = uint8(reserved & 0x3)

	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	readSized := func(lenCode uint8) (uint64, error) {
		switch lenCode {
		case 0:
			v, err := r.ReadUint8()
			return uint64(v), err
		case 1:
			v, err := r.ReadUint16()
			return uint64(v), err
		case 2:
			v, err := r.ReadUint24()
			return uint64(v), err
		default:
			return r.ReadUint32()
		}
	}

	for i := uint32(0); i < count; i++ {
		var e TrackFragmentRandomAccessEntry
		if fb.Version == 1 {
			if e.Time, err = r.ReadUint64(); err != nil {
				return nil, err
			}
			if e.MoofOffset, err = r.ReadUint64(); err != nil {
				return nil, err
			}
		} else {
			tv, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			mv, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			e.Time, e.MoofOffset = uint64(tv), uint64(mv)
		}
		trafN, err := readSized(t.LengthSizeOfTrafNum)
		if err != nil {
			return nil, err
		}
		trunN, err := readSized(t.LengthSizeOfTrunNum)
		if err != nil {
			return nil, err
		}
		sampleN, err := readSized(t.LengthSizeOfSampleNum)
		if err != nil {
			return nil, err
		}
		e.TrafNumber, e.TrunNumber, e.SampleNumber = uint32(trafN), uint32(trunN), uint32(sampleN)
		t.Entries = append(t.Entries, e)
	}
	return t, nil
}

// MovieFragmentRandomAccessOffset is the "mfro" box: the size of the
// enclosing mfra box, so a reader can find it by seeking from the end
// of the file instead of scanning forward.
type MovieFragmentRandomAccessOffset struct {
	base
	FullBoxHeader
	Size uint32
}

func decodeMfro(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	size, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &MovieFragmentRandomAccessOffset{base{h}, fb, size}, nil
}

func init() {
	register(kind.Mfhd, decodeMfhd)
	register(kind.Tfhd, decodeTfhd)
	register(kind.Trun, decodeTrun)
	register(kind.Tfdt, decodeTfdt)
	register(kind.Mehd, decodeMehd)
	register(kind.Trex, decodeTrex)
	register(kind.Tfra, decodeTfra)
	register(kind.Mfro, decodeMfro)
}
