// Package kind enumerates the four-byte box type codes this module knows
// how to decode, and maps the raw wire bytes to a closed Go type used as
// the dispatch key in package box.
package kind

import "strings"

// Kind is a box type code, stored as the four ASCII bytes packed
// big-endian into a uint32 (the same order they appear on the wire).
type Kind uint32

// New packs a four-character type code into a Kind. It does not validate
// that the code is registered; Lookup does that.
func New(code string) Kind {
	var b [4]byte
	copy(b[:], code)
	return Kind(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// String returns the four-character code, e.g. "moov".
func (k Kind) String() string {
	b := [4]byte{
		byte(k >> 24),
		byte(k >> 16),
		byte(k >> 8),
		byte(k),
	}
	return string(b[:])
}

// The registered box kinds. Names match the ISO/IEC 14496-12 box names
// except where noted.
var (
	Ftyp Kind = New("ftyp")
	Free Kind = New("free")
	Skip Kind = New("skip")
	Mdat Kind = New("mdat")
	Pdin Kind = New("pdin")

	Moov Kind = New("moov")
	Mvhd Kind = New("mvhd")
	Trak Kind = New("trak")
	Tkhd Kind = New("tkhd")
	Tref Kind = New("tref")
	Trgr Kind = New("trgr")
	Edts Kind = New("edts")
	Elst Kind = New("elst")
	Udta Kind = New("udta")
	Cprt Kind = New("cprt")

	Mdia Kind = New("mdia")
	Mdhd Kind = New("mdhd")
	Hdlr Kind = New("hdlr")
	Minf Kind = New("minf")
	Vmhd Kind = New("vmhd")
	Smhd Kind = New("smhd")
	Hmhd Kind = New("hmhd")
	Nmhd Kind = New("nmhd")
	Dinf Kind = New("dinf")
	Dref Kind = New("dref")
	URL  Kind = New("url ")
	URN  Kind = New("urn ")

	Stbl Kind = New("stbl")
	Stsd Kind = New("stsd")
	Stts Kind = New("stts")
	Ctts Kind = New("ctts")
	Cslg Kind = New("cslg")
	Stsc Kind = New("stsc")
	Stsz Kind = New("stsz")
	Stz2 Kind = New("stz2")
	Stco Kind = New("stco")
	Co64 Kind = New("co64")
	Stss Kind = New("stss")
	Stsh Kind = New("stsh")
	Stdp Kind = New("stdp")
	Sdtp Kind = New("sdtp")
	Padb Kind = New("padb")
	Sbgp Kind = New("sbgp")
	Sgpd Kind = New("sgpd")
	Subs Kind = New("subs")
	Stsl Kind = New("stsl")

	Meta Kind = New("meta")
	Iinf Kind = New("iinf")
	Infe Kind = New("infe")
	Iloc Kind = New("iloc")
	Ipro Kind = New("ipro")
	Pitm Kind = New("pitm")
	// Xml is registered under its null-padded spelling, "xml\0", the
	// canonical form this package emits. The space-padded spelling,
	// "xml ", is also accepted on input; see Normalize.
	Xml  Kind = New("xml\x00")
	Bxml Kind = New("bxml")
	Gitn Kind = New("gitn")
	Fiin Kind = New("fiin")
	Paen Kind = New("paen")
	Fpar Kind = New("fpar")
	Fecr Kind = New("fecr")
	Fire Kind = New("fire")
	Fdel Kind = New("fdel")
	Imif Kind = New("imif")
	Ipmc Kind = New("ipmc")

	Sinf Kind = New("sinf")
	Frma Kind = New("frma")
	Schm Kind = New("schm")
	Schi Kind = New("schi")

	// Itn is registered under its null-padded spelling, "itn\0", for the
	// same reason as Xml.
	Itn Kind = New("itn\x00")

	Meco Kind = New("meco")
	Mere Kind = New("mere")

	Moof Kind = New("moof")
	Mfhd Kind = New("mfhd")
	Traf Kind = New("traf")
	Tfhd Kind = New("tfhd")
	Trun Kind = New("trun")
	Tfdt Kind = New("tfdt")

	Mvex Kind = New("mvex")
	Mehd Kind = New("mehd")
	Trex Kind = New("trex")

	Mfra Kind = New("mfra")
	Tfra Kind = New("tfra")
	Mfro Kind = New("mfro")

	Cmov Kind = New("cmov")
	Dcom Kind = New("dcom")
	Cmvd Kind = New("cmvd")

	Btrt Kind = New("btrt")
	Tsel Kind = New("tsel")
	Uuid Kind = New("uuid")
	Wide Kind = New("wide")

	Ignore Kind = New("????") // sentinel, never matched on the wire
)

// registry lists every kind a well-formed stream may carry, keyed by its
// String() form so Lookup doesn't need to re-derive it.
var registry = buildRegistry()

func buildRegistry() map[string]Kind {
	all := []Kind{
		Ftyp, Free, Skip, Mdat, Pdin,
		Moov, Mvhd, Trak, Tkhd, Tref, Trgr, Edts, Elst, Udta, Cprt,
		Mdia, Mdhd, Hdlr, Minf, Vmhd, Smhd, Hmhd, Nmhd, Dinf, Dref, URL, URN,
		Stbl, Stsd, Stts, Ctts, Cslg, Stsc, Stsz, Stz2, Stco, Co64,
		Stss, Stsh, Stdp, Sdtp, Padb, Sbgp, Sgpd, Subs, Stsl,
		Meta, Iinf, Infe, Iloc, Ipro, Pitm, Xml, Bxml, Gitn,
		Fiin, Paen, Fpar, Fecr, Fire, Fdel, Imif, Ipmc,
		Sinf, Frma, Schm, Schi, Itn,
		Moof, Mfhd, Traf, Tfhd, Trun, Tfdt,
		Mvex, Mehd, Trex,
		Mfra, Tfra, Mfro,
		Meco, Mere,
		Cmov, Dcom, Cmvd,
		Btrt, Tsel, Uuid, Wide,
	}
	m := make(map[string]Kind, len(all))
	for _, k := range all {
		m[k.String()] = k
	}
	return m
}

// altSpellings maps a wire spelling this package does not register
// under directly to the canonical spelling it resolves to. "xml" and
// "itn" were historically written with a trailing space by tools that
// treat the type field as a fixed-width ASCII string; this package
// registers both under their null-padded spelling instead, matching
// `kind.rs::to_string`'s canonicalization. url/urn are unaffected: the
// standard itself, not a tool convention, mandates their trailing space.
var altSpellings = map[string]string{
	"xml ": "xml\x00",
	"itn ": "itn\x00",
}

// Normalize rewrites a raw four-byte wire type to the spelling this
// package's registry keys on, so a box written with an accepted
// alternate spelling (e.g. "xml " on disk) still resolves to the same
// Kind as the canonical one instead of becoming Unrecognized.
func Normalize(code string) string {
	if canon, ok := altSpellings[code]; ok {
		return canon
	}
	return code
}

// Resolve packs a raw four-byte wire type into its Kind, normalizing
// any accepted alternate spelling first.
func Resolve(code string) Kind {
	return New(Normalize(code))
}

// Lookup reports whether code names a registered kind, accepting either
// spelling Normalize recognizes.
func Lookup(code string) (Kind, bool) {
	k, ok := registry[Normalize(code)]
	return k, ok
}

// IsContainer reports whether boxes of this kind hold child boxes rather
// than an opaque payload. Sample-group description boxes are deliberately
// excluded even though they carry nested group-entry records, because
// those entries are accessed positionally rather than through the
// generic container walk.
func (k Kind) IsContainer() bool {
	switch k {
	case Moov, Trak, Tref, Trgr, Edts, Udta, Mdia, Minf, Dinf, Stbl,
		Meta, Sinf, Moof, Traf, Mvex, Mfra, Dref, Schi, Ipro, Meco:
		return true
	}
	return false
}

// TrimmedString returns String() with any trailing pad byte removed:
// an ASCII space for url/urn, or the null byte this package canonicalizes
// xml/itn to.
func (k Kind) TrimmedString() string {
	return strings.TrimRight(k.String(), " \x00")
}
