package box

import "github.com/mp4atom/mp4atom/kind"

// FileType is the "ftyp" box: the major brand and version the writer
// claims, plus every brand it is also compatible with. "qt  " is a
// common compatible-brand value for QuickTime movie files; it is not a
// registered box kind, just data here.
type FileType struct {
	base
	MajorBrand       string
	MinorVersion     uint32
	CompatibleBrands []string
}

func decodeFtyp(r *Reader, h Header, _ *ctx) (Atom, error) {
	major, err := r.Read4CC()
	if err != nil {
		return nil, err
	}
	minor, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	var brands []string
	for r.Remaining() >= 4 {
		b, err := r.Read4CC()
		if err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}

	return &FileType{
		base:             base{h},
		MajorBrand:       major,
		MinorVersion:     minor,
		CompatibleBrands: brands,
	}, nil
}

// HasBrand reports whether brand appears in CompatibleBrands or equals
// MajorBrand.
func (f *FileType) HasBrand(brand string) bool {
	if f.MajorBrand == brand {
		return true
	}
	for _, b := range f.CompatibleBrands {
		if b == brand {
			return true
		}
	}
	return false
}

func init() {
	register(kind.Ftyp, decodeFtyp)
}
