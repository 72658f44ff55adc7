package box

import "github.com/mp4atom/mp4atom/kind"

// FreeSpace is a "free" or "skip" box: padding or deleted-box space
// with no semantic content.
type FreeSpace struct {
	base
	Size int64
}

func decodeFreeSpace(r *Reader, h Header, _ *ctx) (Atom, error) {
	n := r.Remaining()
	if err := r.Skip(n); err != nil {
		return nil, err
	}
	return &FreeSpace{base{h}, n}, nil
}

// MediaData is an "mdat" box. Its payload is sample data referenced by
// offset from the sample tables elsewhere in the file, so it is never
// read eagerly; Offset and Size let a caller read it directly from the
// source when needed.
type MediaData struct {
	base
	Offset int64
	Size   int64
}

func decodeMdat(r *Reader, h Header, _ *ctx) (Atom, error) {
	offset := r.Offset()
	n := r.Remaining()
	if err := r.Skip(n); err != nil {
		return nil, err
	}
	return &MediaData{base{h}, offset, n}, nil
}

// ProgressiveDownloadInfo is the "pdin" box: pairs of (download rate,
// suggested initial delay) a progressive-download player can use to
// choose when to start playback. ISO/IEC 14496-12 specifies pdin as a
// full box; it is decoded as one here.
type ProgressiveDownloadInfo struct {
	base
	FullBoxHeader
	Entries []PDinEntry
}

// PDinEntry is one (rate, initial_delay) pair of a "pdin" box.
type PDinEntry struct {
	Rate         uint32
	InitialDelay uint32
}

func decodePdin(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	p := &ProgressiveDownloadInfo{base: base{h}, FullBoxHeader: fb}
	for r.Remaining() >= 8 {
		rate, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		delay, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		p.Entries = append(p.Entries, PDinEntry{rate, delay})
	}
	return p, nil
}

// ExtendedType is a "uuid" box: a vendor extension box identified by a
// 16-byte UUID rather than a registered four-character code. Its
// payload is kept opaque.
type ExtendedType struct {
	base
	UserType [16]byte
	Payload  []byte
}

func decodeUUID(r *Reader, h Header, _ *ctx) (Atom, error) {
	payload, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, err
	}
	return &ExtendedType{base{h}, h.UserType, payload}, nil
}

// BitRate is the "btrt" box: decoding buffer and bitrate hints for a
// sample entry.
type BitRate struct {
	base
	BufferSizeDB uint32
	MaxBitrate   uint32
	AvgBitrate   uint32
}

func decodeBtrt(r *Reader, h Header, _ *ctx) (Atom, error) {
	b := &BitRate{base: base{h}}
	var err error
	if b.BufferSizeDB, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if b.MaxBitrate, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if b.AvgBitrate, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	return b, nil
}

// TrackSelection is the "tsel" box: the switch group a track belongs to
// and the list of attributes a player should compare across the group's
// alternatives when choosing one.
type TrackSelection struct {
	base
	FullBoxHeader
	SwitchGroup int32
	Attributes  []string
}

func decodeTsel(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	t := &TrackSelection{base: base{h}, FullBoxHeader: fb}
	if t.SwitchGroup, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	for r.Remaining() >= 4 {
		a, err := r.Read4CC()
		if err != nil {
			return nil, err
		}
		t.Attributes = append(t.Attributes, a)
	}
	return t, nil
}

// Copyright is the "cprt" box: a notice string in a given language.
type Copyright struct {
	base
	FullBoxHeader
	Language string
	Notice   string
}

func decodeCprt(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	c := &Copyright{base: base{h}, FullBoxHeader: fb}
	if c.Language, err = r.ReadISO639Code(); err != nil {
		return nil, err
	}
	if c.Notice, err = r.ReadNullTerminatedString(); err != nil {
		return c, err
	}
	return c, nil
}

// MetaboxRelocation is the "mere" box: a hint that the handler types
// named here were moved into a separate "meco" metadata container, and
// whether that container still needs to be consulted.
type MetaboxRelocation struct {
	base
	FullBoxHeader
	FirstMetaboxHandlerType     string
	SecondMetaboxHandlerType    string
	MetaboxRelocationIndication uint8
}

func decodeMere(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	m := &MetaboxRelocation{base: base{h}, FullBoxHeader: fb}
	if m.FirstMetaboxHandlerType, err = r.Read4CC(); err != nil {
		return nil, err
	}
	if m.SecondMetaboxHandlerType, err = r.Read4CC(); err != nil {
		return nil, err
	}
	if m.MetaboxRelocationIndication, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	return m, nil
}

func init() {
	register(kind.Free, decodeFreeSpace)
	register(kind.Skip, decodeFreeSpace)
	register(kind.Wide, decodeFreeSpace)
	register(kind.Mdat, decodeMdat)
	register(kind.Pdin, decodePdin)
	register(kind.Uuid, decodeUUID)
	register(kind.Btrt, decodeBtrt)
	register(kind.Tsel, decodeTsel)
	register(kind.Cprt, decodeCprt)
	register(kind.Mere, decodeMere)
}
