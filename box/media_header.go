package box

import "github.com/mp4atom/mp4atom/kind"

// VideoMediaHeader is the "vmhd" box: the compositing mode a video
// track's samples should use by default.
type VideoMediaHeader struct {
	base
	FullBoxHeader
	GraphicsMode uint16
	OpColor      [3]uint16
}

func decodeVmhd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	v := &VideoMediaHeader{base: base{h}, FullBoxHeader: fb}
	if v.GraphicsMode, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	for i := range v.OpColor {
		if v.OpColor[i], err = r.ReadUint16(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// SoundMediaHeader is the "smhd" box.
type SoundMediaHeader struct {
	base
	FullBoxHeader
	Balance float64 // 8.8 fixed point
}

func decodeSmhd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	s := &SoundMediaHeader{base: base{h}, FullBoxHeader: fb}
	if s.Balance, err = r.ReadFixedPoint(8, 8); err != nil {
		return nil, err
	}
	if _, err := r.ReadUint16(); err != nil { // reserved
		return nil, err
	}
	return s, nil
}

// HintMediaHeader is the "hmhd" box: hint-track statistics.
type HintMediaHeader struct {
	base
	FullBoxHeader
	MaxPDUSize  uint16
	AvgPDUSize  uint16
	MaxBitrate  uint32
	AvgBitrate  uint32
}

func decodeHmhd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	hh := &HintMediaHeader{base: base{h}, FullBoxHeader: fb}
	var err2 error
	if hh.MaxPDUSize, err2 = r.ReadUint16(); err2 != nil {
		return nil, err2
	}
	if hh.AvgPDUSize, err2 = r.ReadUint16(); err2 != nil {
		return nil, err2
	}
	if hh.MaxBitrate, err2 = r.ReadUint32(); err2 != nil {
		return nil, err2
	}
	if hh.AvgBitrate, err2 = r.ReadUint32(); err2 != nil {
		return nil, err2
	}
	if _, err2 = r.ReadUint32(); err2 != nil { // reserved
		return nil, err2
	}
	return hh, nil
}

// NullMediaHeader is the "nmhd" box: no fields beyond the full box
// header, used by media types that need none of vmhd/smhd/hmhd.
type NullMediaHeader struct {
	base
	FullBoxHeader
}

func decodeNmhd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	return &NullMediaHeader{base{h}, fb}, nil
}

func init() {
	register(kind.Vmhd, decodeVmhd)
	register(kind.Smhd, decodeSmhd)
	register(kind.Hmhd, decodeHmhd)
	register(kind.Nmhd, decodeNmhd)
}
