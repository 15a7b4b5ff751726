package compress

// ZstdCodec compresses payloads with Zstandard. Best ratio of the supported
// algorithms; the choice for archived bitmap indexes that are read rarely.
//
// Two implementations back this type, selected at build time: the cgo-backed
// gozstd library when cgo is enabled, and the pure-Go klauspost
// implementation otherwise. Their streams are interchangeable.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a new Zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
