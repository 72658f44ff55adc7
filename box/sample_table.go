package box

import (
	"fmt"

	"github.com/mp4atom/mp4atom/errs"
	"github.com/mp4atom/mp4atom/kind"
)

// TimeToSampleEntry is one run-length entry of a "stts" box.
type TimeToSampleEntry struct {
	SampleCount uint32
	SampleDelta uint32
}

// TimeToSample is the "stts" box: sample durations, run-length encoded.
type TimeToSample struct {
	base
	FullBoxHeader
	Entries []TimeToSampleEntry
}

func decodeStts(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	entries := make([]TimeToSampleEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		sc, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		sd, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		entries = append(entries, TimeToSampleEntry{sc, sd})
	}
	return &TimeToSample{base{h}, fb, entries}, nil
}

// CompositionOffsetEntry is one entry of a "ctts" box. SampleOffset is
// unsigned on the wire in version 0 and signed in version 1; both are
// widened losslessly into an int64 here so a version-0 value using the
// high bit is never misread as negative.
type CompositionOffsetEntry struct {
	SampleCount  uint32
	SampleOffset int64
}

// CompositionOffset is the "ctts" box.
type CompositionOffset struct {
	base
	FullBoxHeader
	Entries []CompositionOffsetEntry
}

func decodeCtts(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	entries := make([]CompositionOffsetEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		sc, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		var off int64
		if fb.Version == 0 {
			u, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			off = int64(u)
		} else {
			s, err := r.ReadInt32()
			if err != nil {
				return nil, err
			}
			off = int64(s)
		}
		entries = append(entries, CompositionOffsetEntry{sc, off})
	}
	return &CompositionOffset{base{h}, fb, entries}, nil
}

// CompositionToDecode is the "cslg" box: bounds on the composition
// offsets the ctts table produces.
type CompositionToDecode struct {
	base
	FullBoxHeader
	CompositionToDTSShift      int64
	LeastDecodeToDisplayDelta  int64
	GreatestDecodeToDisplayDelta int64
	CompositionStartTime       int64
	CompositionEndTime         int64
}

func decodeCslg(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	c := &CompositionToDecode{base: base{h}, FullBoxHeader: fb}
	read := func() (int64, error) {
		if fb.Version == 1 {
			v, err := r.ReadUint64()
			return int64(v), err
		}
		v, err := r.ReadInt32()
		return int64(v), err
	}
	var err error
	if c.CompositionToDTSShift, err = read(); err != nil {
		return nil, err
	}
	if c.LeastDecodeToDisplayDelta, err = read(); err != nil {
		return nil, err
	}
	if c.GreatestDecodeToDisplayDelta, err = read(); err != nil {
		return nil, err
	}
	if c.CompositionStartTime, err = read(); err != nil {
		return nil, err
	}
	if c.CompositionEndTime, err = read(); err != nil {
		return nil, err
	}
	return c, nil
}

// SampleToChunkEntry is one entry of a "stsc" box.
type SampleToChunkEntry struct {
	FirstChunk             uint32
	SamplesPerChunk        uint32
	SampleDescriptionIndex uint32
}

// SampleToChunk is the "stsc" box: groups consecutive chunks that share
// a sample count and sample description.
type SampleToChunk struct {
	base
	FullBoxHeader
	Entries []SampleToChunkEntry
}

func decodeStsc(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	entries := make([]SampleToChunkEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		fc, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		spc, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		sdi, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		entries = append(entries, SampleToChunkEntry{fc, spc, sdi})
	}
	return &SampleToChunk{base{h}, fb, entries}, nil
}

// SampleSize is the "stsz" box: either one uniform SampleSize (when
// nonzero) or a per-sample EntrySizes table (when SampleSize is 0).
type SampleSize struct {
	base
	FullBoxHeader
	SampleSize  uint32
	SampleCount uint32
	EntrySizes  []uint32 // nil when SampleSize != 0
}

func decodeStsz(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	s := &SampleSize{base: base{h}, FullBoxHeader: fb}
	if s.SampleSize, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if s.SampleCount, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if s.SampleSize == 0 {
		s.EntrySizes = make([]uint32, 0, s.SampleCount)
		for i := uint32(0); i < s.SampleCount; i++ {
			v, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			s.EntrySizes = append(s.EntrySizes, v)
		}
	}
	return s, nil
}

// CompactSampleSize is the "stz2" box: like stsz but with a configurable
// per-entry bit width of 4, 8, or 16.
type CompactSampleSize struct {
	base
	FullBoxHeader
	FieldSize   uint8
	SampleCount uint32
	EntrySizes  []uint32
}

func decodeStz2(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadBytes(3); err != nil { // reserved
		return nil, err
	}
	fieldSize, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if fieldSize != 4 && fieldSize != 8 && fieldSize != 16 {
		return nil, fmt.Errorf("stz2 field_size %d: %w", fieldSize, errs.ErrInvalidField)
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	s := &CompactSampleSize{base: base{h}, FullBoxHeader: fb, FieldSize: fieldSize, SampleCount: count}
	switch fieldSize {
	case 16:
		for i := uint32(0); i < count; i++ {
			v, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			s.EntrySizes = append(s.EntrySizes, uint32(v))
		}
	case 8:
		for i := uint32(0); i < count; i++ {
			v, err := r.ReadUint8()
			if err != nil {
				return nil, err
			}
			s.EntrySizes = append(s.EntrySizes, uint32(v))
		}
	case 4:
		for i := uint32(0); i < count; i += 2 {
			b, err := r.ReadUint8()
			if err != nil {
				return nil, err
			}
			s.EntrySizes = append(s.EntrySizes, uint32(b>>4))
			if i+1 < count {
				s.EntrySizes = append(s.EntrySizes, uint32(b&0x0f))
			}
		}
	}
	return s, nil
}

// ChunkOffset is the "stco" box: 32-bit absolute chunk offsets.
type ChunkOffset struct {
	base
	FullBoxHeader
	Offsets []uint64
}

func decodeStco(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	offsets := make([]uint64, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		offsets = append(offsets, uint64(v))
	}
	return &ChunkOffset{base{h}, fb, offsets}, nil
}

// ChunkOffset64 is the "co64" box: the 64-bit-offset counterpart of stco.
type ChunkOffset64 struct {
	base
	FullBoxHeader
	Offsets []uint64
}

func decodeCo64(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	offsets := make([]uint64, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		offsets = append(offsets, v)
	}
	return &ChunkOffset64{base{h}, fb, offsets}, nil
}

// SyncSample is the "stss" box: the subset of samples that are
// independently decodable (sync/key frames).
type SyncSample struct {
	base
	FullBoxHeader
	SampleNumbers []uint32
}

func decodeStss(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	nums := make([]uint32, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		nums = append(nums, v)
	}
	return &SyncSample{base{h}, fb, nums}, nil
}

// tableOpaque decodes a box whose payload this module does not give
// dedicated field semantics to (stsh shadow sync, stdp degradation
// priority, sdtp dependency flags, padb padding bits): the raw bytes
// are kept so a caller that needs them can parse further, without this
// module's driver treating the box as an error.
type tableOpaque struct {
	base
	FullBoxHeader
	Payload []byte
}

func decodeTableOpaque(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	payload, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, err
	}
	return &tableOpaque{base{h}, fb, payload}, nil
}

// ShadowSyncSample is the "stsh" box.
type ShadowSyncSample = tableOpaque

// DegradationPriority is the "stdp" box.
type DegradationPriority = tableOpaque

// SampleDependency is the "sdtp" box.
type SampleDependency = tableOpaque

// PaddingBits is the "padb" box.
type PaddingBits = tableOpaque

// SampleToGroupEntry is one entry of a "sbgp" box.
type SampleToGroupEntry struct {
	SampleCount          uint32
	GroupDescriptionIndex uint32
}

// SampleToGroup is the "sbgp" box: assigns runs of samples to a sample
// group defined elsewhere by a "sgpd" box of the same grouping type.
type SampleToGroup struct {
	base
	FullBoxHeader
	GroupingType      string
	GroupingTypeParam uint32 // only present when Version == 1
	Entries           []SampleToGroupEntry
}

func decodeSbgp(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	s := &SampleToGroup{base: base{h}, FullBoxHeader: fb}
	if s.GroupingType, err = r.Read4CC(); err != nil {
		return nil, err
	}
	if fb.Version == 1 {
		if s.GroupingTypeParam, err = r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	s.Entries = make([]SampleToGroupEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		sc, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		gdi, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		s.Entries = append(s.Entries, SampleToGroupEntry{sc, gdi})
	}
	return s, nil
}

// SampleGroupDescription is the "sgpd" box: the opaque, grouping-type
// specific description payload for each group index sbgp references.
type SampleGroupDescription struct {
	base
	FullBoxHeader
	GroupingType           string
	DefaultLength          uint32 // Version == 1 only
	DefaultSampleDescriptionIndex uint32 // Version >= 2 only
	Descriptions           [][]byte
}

func decodeSgpd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	s := &SampleGroupDescription{base: base{h}, FullBoxHeader: fb}
	if s.GroupingType, err = r.Read4CC(); err != nil {
		return nil, err
	}
	if fb.Version == 1 {
		if s.DefaultLength, err = r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	if fb.Version >= 2 {
		if s.DefaultSampleDescriptionIndex, err = r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		length := s.DefaultLength
		if fb.Version == 1 && length == 0 {
			l, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			length = l
		}
		desc, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		s.Descriptions = append(s.Descriptions, desc)
	}
	return s, nil
}

func init() {
	register(kind.Stts, decodeStts)
	register(kind.Ctts, decodeCtts)
	register(kind.Cslg, decodeCslg)
	register(kind.Stsc, decodeStsc)
	register(kind.Stsz, decodeStsz)
	register(kind.Stz2, decodeStz2)
	register(kind.Stco, decodeStco)
	register(kind.Co64, decodeCo64)
	register(kind.Stss, decodeStss)
	register(kind.Stsh, decodeTableOpaque)
	register(kind.Stdp, decodeTableOpaque)
	register(kind.Sdtp, decodeTableOpaque)
	register(kind.Padb, decodeTableOpaque)
	register(kind.Sbgp, decodeSbgp)
	register(kind.Sgpd, decodeSgpd)
	register(kind.Subs, decodeTableOpaque)
	register(kind.Stsl, decodeTableOpaque)
}
