package box

import "github.com/mp4atom/mp4atom/kind"

// OriginalFormat is the "frma" box: the four-character code the sample
// format had before protection was applied.
type OriginalFormat struct {
	base
	DataFormat string
}

func decodeFrma(r *Reader, h Header, _ *ctx) (Atom, error) {
	f, err := r.Read4CC()
	if err != nil {
		return nil, err
	}
	return &OriginalFormat{base{h}, f}, nil
}

// SchemeType is the "schm" box: which protection scheme was applied.
type SchemeType struct {
	base
	FullBoxHeader
	SchemeType    string
	SchemeVersion uint32
	SchemeURI     string
}

func decodeSchm(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	s := &SchemeType{base: base{h}, FullBoxHeader: fb}
	if s.SchemeType, err = r.Read4CC(); err != nil {
		return nil, err
	}
	if s.SchemeVersion, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if fb.HasFlag(0x000001) && r.Remaining() > 0 {
		if s.SchemeURI, err = r.ReadNullTerminatedString(); err != nil {
			return s, err
		}
	}
	return s, nil
}

// SchemeInformation is the "schi" box: an opaque container of
// scheme-specific boxes.
type SchemeInformation struct {
	base
	children []Atom
}

func (s *SchemeInformation) Children() []Atom { return s.children }

func decodeSchi(r *Reader, h Header, c *ctx) (Atom, error) {
	children, err := decodeContainer(r, c)
	if err != nil {
		return nil, err
	}
	return &SchemeInformation{base{h}, children}, nil
}

func init() {
	register(kind.Frma, decodeFrma)
	register(kind.Schm, decodeSchm)
	register(kind.Schi, decodeSchi)
	register(kind.Sinf, decodeGenericContainer)
}
