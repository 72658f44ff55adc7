package box

import (
	"fmt"

	"github.com/mp4atom/mp4atom/errs"
	"github.com/mp4atom/mp4atom/kind"
)

// Meta is the "meta" box: a full-box container for item-based metadata
// (iinf, iloc, pitm, xml/bxml, and a nested "hdlr" that names which kind
// of metadata it carries).
type Meta struct {
	base
	FullBoxHeader
	children []Atom
}

func (m *Meta) Children() []Atom { return m.children }

func decodeMeta(r *Reader, h Header, c *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	children, err := decodeContainer(r, c)
	if err != nil {
		return nil, err
	}
	return &Meta{base{h}, fb, children}, nil
}

// ItemInfoEntry is the "infe" box: one item's ID, protection index and
// MIME-ish item type.
type ItemInfoEntry struct {
	base
	FullBoxHeader
	ItemID          uint16
	ItemProtectionIndex uint16
	ItemType        string
	ItemName        string
}

func decodeInfe(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	e := &ItemInfoEntry{base: base{h}, FullBoxHeader: fb}
	if fb.Version == 0 || fb.Version == 1 {
		if e.ItemID, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if e.ItemProtectionIndex, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if e.ItemName, err = r.ReadNullTerminatedString(); err != nil {
			return e, err
		}
		return e, nil
	}
	// version >= 2: item_id width depends on version, then item_type is
	// a plain four-character code rather than a null-terminated string.
	if fb.Version == 2 {
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		e.ItemID = v
	} else {
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		e.ItemID = uint16(v)
	}
	if e.ItemProtectionIndex, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if e.ItemType, err = r.Read4CC(); err != nil {
		return nil, err
	}
	if r.Remaining() > 0 {
		if e.ItemName, err = r.ReadNullTerminatedString(); err != nil {
			return e, err
		}
	}
	return e, nil
}

// ItemInfo is the "iinf" box: the full item-information table.
type ItemInfo struct {
	base
	FullBoxHeader
	children []Atom
}

func (i *ItemInfo) Children() []Atom { return i.children }

func decodeIinf(r *Reader, h Header, c *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	if fb.Version == 0 {
		if _, err := r.ReadUint16(); err != nil { // entry_count
			return nil, err
		}
	} else {
		if _, err := r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	children, err := decodeContainer(r, c)
	if err != nil {
		return nil, err
	}
	return &ItemInfo{base{h}, fb, children}, nil
}

// ItemLocationEntry is one item's extent list within an "iloc" box.
type ItemLocationEntry struct {
	ItemID             uint32
	ConstructionMethod uint8 // version 1/2 only
	DataReferenceIndex uint16
	BaseOffset         uint64
	Extents            []ItemLocationExtent
}

// ItemLocationExtent is one (offset, length) run of an item's data.
type ItemLocationExtent struct {
	ExtentIndex  uint64 // only present when index_size > 0
	ExtentOffset uint64
	ExtentLength uint64
}

// ItemLocation is the "iloc" box: where each item's bytes live,
// possibly split across several extents.
type ItemLocation struct {
	base
	FullBoxHeader
	OffsetSize  uint8
	LengthSize  uint8
	BaseOffsetSize uint8
	IndexSize   uint8
	Items       []ItemLocationEntry
}

func decodeIloc(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	if fb.Version > 2 {
		return nil, fmt.Errorf("iloc version %d: %w", fb.Version, errs.ErrInvalidField)
	}
	i := &ItemLocation{base: base{h}, FullBoxHeader: fb}

	sizes, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	i.OffsetSize = uint8(sizes >> 12 & 0xf)
	i.LengthSize = uint8(sizes >> 8 & 0xf)
	i.BaseOffsetSize = uint8(sizes >> 4 & 0xf)
	i.IndexSize = uint8(sizes & 0xf)

	hasIndex := (fb.Version == 1 || fb.Version == 2) && i.IndexSize > 0

	var itemCount uint32
	if fb.Version == 2 {
		if itemCount, err = r.ReadUint32(); err != nil {
			return nil, err
		}
	} else {
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		itemCount = uint32(v)
	}

	readN := func(size uint8) (uint64, error) {
		switch size {
		case 0:
			return 0, nil
		case 4:
			v, err := r.ReadUint32()
			return uint64(v), err
		case 8:
			return r.ReadUint64()
		default:
			return 0, fmt.Errorf("iloc field size %d: %w", size, errs.ErrInvalidField)
		}
	}

	for n := uint32(0); n < itemCount; n++ {
		var e ItemLocationEntry
		if fb.Version == 2 {
			if e.ItemID, err = r.ReadUint32(); err != nil {
				return nil, err
			}
		} else {
			v, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			e.ItemID = uint32(v)
		}
		if fb.Version == 1 || fb.Version == 2 {
			cm, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			e.ConstructionMethod = uint8(cm & 0xf)
		}
		if e.DataReferenceIndex, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if e.BaseOffset, err = readN(i.BaseOffsetSize); err != nil {
			return nil, err
		}
		extentCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		for x := uint16(0); x < extentCount; x++ {
			var ext ItemLocationExtent
			if hasIndex {
				if ext.ExtentIndex, err = readN(i.IndexSize); err != nil {
					return nil, err
				}
			}
			if ext.ExtentOffset, err = readN(i.OffsetSize); err != nil {
				return nil, err
			}
			if ext.ExtentLength, err = readN(i.LengthSize); err != nil {
				return nil, err
			}
			e.Extents = append(e.Extents, ext)
		}
		i.Items = append(i.Items, e)
	}
	return i, nil
}

// ItemProtection is the "ipro" box: a list of scheme-information boxes
// indexed by an item's ItemProtectionIndex.
type ItemProtection struct {
	base
	FullBoxHeader
	children []Atom
}

func (p *ItemProtection) Children() []Atom { return p.children }

func decodeIpro(r *Reader, h Header, c *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint16(); err != nil { // protection_count
		return nil, err
	}
	children, err := decodeContainer(r, c)
	if err != nil {
		return nil, err
	}
	return &ItemProtection{base{h}, fb, children}, nil
}

// PrimaryItem is the "pitm" box: which item is the file's primary
// resource.
type PrimaryItem struct {
	base
	FullBoxHeader
	ItemID uint32
}

func decodePitm(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	p := &PrimaryItem{base: base{h}, FullBoxHeader: fb}
	if fb.Version == 0 {
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		p.ItemID = uint32(v)
	} else {
		if p.ItemID, err = r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// XMLBox is the "xml" box: a UTF-8 metadata document stored inline.
// Both the space-padded ("xml ") and null-padded ("xml\0") wire
// spellings resolve to it; see kind.Normalize.
type XMLBox struct {
	base
	FullBoxHeader
	XML string
}

func decodeXML(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	data, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, err
	}
	return &XMLBox{base{h}, fb, string(data)}, nil
}

// BinaryXMLBox is the "bxml" box: a binary-encoded equivalent of xml.
type BinaryXMLBox struct {
	base
	FullBoxHeader
	Data []byte
}

func decodeBXML(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	data, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, err
	}
	return &BinaryXMLBox{base{h}, fb, data}, nil
}

// GroupEntry is one entry of a "gitn" box.
type GroupEntry struct {
	GroupID   uint32
	GroupName string
}

// GroupIDName is the "gitn" box: human-readable names for item groups.
type GroupIDName struct {
	base
	FullBoxHeader
	Entries []GroupEntry
}

func decodeGitn(r *Reader, h Header, _ *ctx) (Atom, error) {
	fb, err := DecodeFullBoxHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	g := &GroupIDName{base: base{h}, FullBoxHeader: fb}
	for i := uint16(0); i < count; i++ {
		id, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		name, err := r.ReadNullTerminatedString()
		if err != nil {
			return g, err
		}
		g.Entries = append(g.Entries, GroupEntry{id, name})
	}
	return g, nil
}

func init() {
	register(kind.Meta, decodeMeta)
	register(kind.Infe, decodeInfe)
	register(kind.Iinf, decodeIinf)
	register(kind.Iloc, decodeIloc)
	register(kind.Ipro, decodeIpro)
	register(kind.Pitm, decodePitm)
	register(kind.Xml, decodeXML)
	register(kind.Bxml, decodeBXML)
	register(kind.Gitn, decodeGitn)
}
