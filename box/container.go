package box

import "github.com/mp4atom/mp4atom/kind"

// GenericContainer decodes a box that holds only child boxes and
// carries no fields of its own: moov, trak, tref, trgr, edts, udta,
// mdia, minf, stbl, mvex, moof, traf, mfra, meco. Its header is
// preserved so callers can still tell a moov from a trak.
type GenericContainer struct {
	base
	children []Atom
}

func (g *GenericContainer) Children() []Atom { return g.children }

func decodeGenericContainer(r *Reader, h Header, c *ctx) (Atom, error) {
	children, err := decodeContainer(r, c)
	if err != nil {
		return nil, err
	}
	return &GenericContainer{base: base{h}, children: children}, nil
}

func init() {
	for _, k := range []kind.Kind{
		kind.Moov, kind.Trak, kind.Tref, kind.Trgr, kind.Edts, kind.Udta,
		kind.Mdia, kind.Minf, kind.Stbl, kind.Mvex, kind.Moof, kind.Traf,
		kind.Mfra, kind.Meco,
	} {
		register(k, decodeGenericContainer)
	}
}
