package box

import (
	"fmt"

	"github.com/mp4atom/mp4atom/errs"
	"github.com/mp4atom/mp4atom/kind"
)

// MovieHeader is the "mvhd" box: movie-wide timing and the preferred
// rate/volume/transformation a player should apply by default.
type MovieHeader struct {
	base
	FullBoxHeader
	CreationTime     uint64
	ModificationTime uint64
	Timescale        uint32
	Duration         uint64
	Rate             float64 // 16.16 fixed point, 1.0 is normal playback
	Volume           float64 // 8.8 fixed point, 1.0 is full volume
	Matrix           [9]float64
	NextTrackID      uint32
}

func decodeMvhd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}

	m := &MovieHeader{base: base{h}, FullBoxHeader: fb}
	if fb.Version == 1 {
		if m.CreationTime, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		if m.ModificationTime, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		if m.Timescale, err = r.ReadUint32(); err != nil {
			return nil, err
		}
		if m.Duration, err = r.ReadUint64(); err != nil {
			return nil, err
		}
	} else {
		ct, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		mt, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		if m.Timescale, err = r.ReadUint32(); err != nil {
			return nil, err
		}
		dur, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		m.CreationTime, m.ModificationTime, m.Duration = uint64(ct), uint64(mt), uint64(dur)
	}

	if m.Rate, err = r.ReadFixedPoint(16, 16); err != nil {
		return nil, err
	}
	if m.Volume, err = r.ReadFixedPoint(8, 8); err != nil {
		return nil, err
	}
	if _, err := r.ReadBytes(2); err != nil { // reserved
		return nil, err
	}
	if _, err := r.ReadBytes(8); err != nil { // reserved[2]
		return nil, err
	}
	if m.Matrix, err = r.ReadMatrix(); err != nil {
		return nil, err
	}
	if _, err := r.ReadBytes(24); err != nil { // pre_defined[6]
		return nil, err
	}
	if m.NextTrackID, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	return m, nil
}

// TrackHeader is the "tkhd" box: per-track flags, timing and the
// track's own transformation matrix/dimensions. Volume and the
// transformation matrix are both decoded using the fixed-point layouts
// the standard defines for them, rather than treated as opaque or
// skipped.
type TrackHeader struct {
	base
	FullBoxHeader
	CreationTime     uint64
	ModificationTime uint64
	TrackID          uint32
	Duration         uint64
	Layer            int16
	AlternateGroup   int16
	Volume           float64 // 8.8 fixed point, 0 for non-audio tracks
	Matrix           [9]float64
	Width            float64 // 16.16 fixed point
	Height           float64 // 16.16 fixed point
}

const (
	TrackEnabled   uint32 = 0x000001
	TrackInMovie   uint32 = 0x000002
	TrackInPreview uint32 = 0x000004
)

func decodeTkhd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	t := &TrackHeader{base: base{h}, FullBoxHeader: fb}

	if fb.Version == 1 {
		if t.CreationTime, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		if t.ModificationTime, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		if t.TrackID, err = r.ReadUint32(); err != nil {
			return nil, err
		}
		if _, err := r.ReadBytes(4); err != nil { // reserved
			return nil, err
		}
		if t.Duration, err = r.ReadUint64(); err != nil {
			return nil, err
		}
	} else {
		ct, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		mt, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		if t.TrackID, err = r.ReadUint32(); err != nil {
			return nil, err
		}
		if _, err := r.ReadBytes(4); err != nil {
			return nil, err
		}
		dur, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		t.CreationTime, t.ModificationTime, t.Duration = uint64(ct), uint64(mt), uint64(dur)
	}

	if _, err := r.ReadBytes(8); err != nil { // reserved[2]
		return nil, err
	}
	layer, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	t.Layer = int16(layer)
	altGroup, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	t.AlternateGroup = int16(altGroup)
	if t.Volume, err = r.ReadFixedPoint(8, 8); err != nil {
		return nil, err
	}
	if _, err := r.ReadBytes(2); err != nil { // reserved
		return nil, err
	}
	if t.Matrix, err = r.ReadMatrix(); err != nil {
		return nil, err
	}
	if t.Width, err = r.ReadFixedPoint(16, 16); err != nil {
		return nil, err
	}
	if t.Height, err = r.ReadFixedPoint(16, 16); err != nil {
		return nil, err
	}
	return t, nil
}

// MediaHeader is the "mdhd" box: the timescale and duration of one
// track's media, plus its ISO-639-2/T language.
type MediaHeader struct {
	base
	FullBoxHeader
	CreationTime     uint64
	ModificationTime uint64
	Timescale        uint32
	Duration         uint64
	Language         string
}

func decodeMdhd(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	m := &MediaHeader{base: base{h}, FullBoxHeader: fb}

	if fb.Version == 1 {
		if m.CreationTime, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		if m.ModificationTime, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		if m.Timescale, err = r.ReadUint32(); err != nil {
			return nil, err
		}
		if m.Duration, err = r.ReadUint64(); err != nil {
			return nil, err
		}
	} else {
		ct, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		mt, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		if m.Timescale, err = r.ReadUint32(); err != nil {
			return nil, err
		}
		dur, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		m.CreationTime, m.ModificationTime, m.Duration = uint64(ct), uint64(mt), uint64(dur)
	}

	if m.Language, err = r.ReadISO639Code(); err != nil {
		return nil, err
	}
	if _, err := r.ReadUint16(); err != nil { // pre_defined
		return nil, err
	}
	return m, nil
}

// HandlerReference is the "hdlr" box: identifies the kind of media a
// track carries (video/sound/hint/...) and a human-readable name.
type HandlerReference struct {
	base
	FullBoxHeader
	HandlerType string
	Name        string
}

func decodeHdlr(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	hr := &HandlerReference{base: base{h}, FullBoxHeader: fb}

	if _, err := r.ReadUint32(); err != nil { // pre_defined
		return nil, err
	}
	if hr.HandlerType, err = r.Read4CC(); err != nil {
		return nil, err
	}
	if _, err := r.ReadBytes(12); err != nil { // reserved[3]
		return nil, err
	}

	remaining := r.Remaining()
	if remaining < 0 {
		return nil, fmt.Errorf("hdlr name length: %w", errs.ErrDesync)
	}
	nameBytes, err := r.ReadBytes(int(remaining))
	if err != nil {
		return nil, err
	}
	// Tolerate both a counted Pascal string and a null-terminated one.
	if len(nameBytes) > 0 && int(nameBytes[0]) == len(nameBytes)-1 {
		hr.Name = string(nameBytes[1:])
	} else {
		end := len(nameBytes)
		for i, b := range nameBytes {
			if b == 0 {
				end = i
				break
			}
		}
		hr.Name = string(nameBytes[:end])
	}
	return hr, nil
}

func init() {
	register(kind.Mvhd, decodeMvhd)
	register(kind.Tkhd, decodeTkhd)
	register(kind.Mdhd, decodeMdhd)
	register(kind.Hdlr, decodeHdlr)
}
