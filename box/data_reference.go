package box

import "github.com/mp4atom/mp4atom/kind"

// DataEntryURL is the "url " box: the data is at the given location,
// or in the same file when Location is empty and the self-contained
// flag is set.
type DataEntryURL struct {
	base
	FullBoxHeader
	Location string
}

func decodeURL(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	u := &DataEntryURL{base: base{h}, FullBoxHeader: fb}
	if fb.HasFlag(0x000001) { // self-contained, no location string follows
		return u, nil
	}
	if r.Remaining() > 0 {
		if u.Location, err = r.ReadNullTerminatedString(); err != nil {
			return u, err
		}
	}
	return u, nil
}

// DataEntryURN is the "urn " box.
type DataEntryURN struct {
	base
	FullBoxHeader
	Name     string
	Location string
}

func decodeURN(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	u := &DataEntryURN{base: base{h}, FullBoxHeader: fb}
	if u.Name, err = r.ReadNullTerminatedString(); err != nil {
		return nil, err
	}
	if r.Remaining() > 0 {
		if u.Location, err = r.ReadNullTerminatedString(); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// DataReference is the "dref" box: a full-box container whose entry
// count precedes its children (url/urn boxes), unlike a plain container.
type DataReference struct {
	base
	FullBoxHeader
	children []Atom
}

func (d *DataReference) Children() []Atom { return d.children }

func decodeDref(r *Reader, h Header, c *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint32(); err != nil { // entry_count, redundant with the child count once decoded
		return nil, err
	}
	children, err := decodeContainer(r, c)
	if err != nil {
		return nil, err
	}
	return &DataReference{base{h}, fb, children}, nil
}

func init() {
	register(kind.URL, decodeURL)
	register(kind.URN, decodeURN)
	register(kind.Dref, decodeDref)
	register(kind.Dinf, decodeGenericContainer)
}
