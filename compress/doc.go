// Package compress implements the codecs a QuickTime compressed-movie
// atom names so a reader can recover the original "moov" before
// decoding it.
//
// # Overview
//
// A "cmov" box holds two children: "dcom", a four-character identifier
// naming a compression algorithm, and "cmvd", the compressed bytes of a
// complete "moov" box plus the uncompressed size that box expanded to.
// A writer shrinks a large sample table this way; a reader must inflate
// it back to plain bytes and reparse it as an ordinary moov before the
// rest of the file makes sense.
//
// # Architecture
//
// Three interfaces, mirrored on purpose so a round trip can go through
// the same Codec value:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(compressed []byte, uncompressedSize int) ([]byte, error)
//	}
//
//	type Codec interface {
//	    ID() CompressionID
//	    Compressor
//	    Decompressor
//	}
//
// # Supported identifiers
//
// **zlib** is the identifier QuickTime movie-making tools have
// historically written to a dcom box.
//
//	codec, _ := compress.ForID(compress.IDZlib)
//	moovBytes, err := codec.Decompress(cmvdPayload, uncompressedSize)
//
// **zstd**, **s2** and **lz4** are accepted as extension identifiers for
// a cmov producer that chose a faster modern codec instead of zlib; this
// module does not write them to a dcom box itself, but reads them if it
// finds them. zstd favors ratio, s2 balances ratio and speed, lz4
// favors decompression speed.
//
// **none** passes the cmvd payload through unchanged, used for a movie
// atom that claims compression but stores the moov verbatim.
//
// # Buffer reuse
//
// The zstd codec pools its encoder and decoder with sync.Pool, since
// the underlying library is built to run allocation-free once warmed
// up. Callers that decode many cmov atoms (a batch of files sharing a
// process) benefit most; a single one-shot decode pays one allocation
// either way.
//
// # Error handling
//
// A corrupted or truncated cmvd payload surfaces as an error from
// Decompress rather than a panic. The zstd codec wraps the library's
// error with its own context; the zlib, s2 and lz4 codecs return the
// library's error as it is.
package compress
