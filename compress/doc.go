// Package compress provides optional outer compression for serialized bix
// payloads.
//
// The WAH and BBC codecs already exploit runs in the bitmap itself; this
// package applies a general-purpose byte compressor on top of the encoded
// stream when a container frame is written to disk or sent over a network.
// Dense bitmap indexes with many literal words still carry byte-level
// redundancy that the run-length layer cannot see, and an outer pass often
// reclaims it cheaply.
//
// # Supported Algorithms
//
//   - None: pass-through (format.CompressionNone)
//   - Zstd: best ratio, moderate speed (format.CompressionZstd)
//   - S2: balanced ratio and speed (format.CompressionS2)
//   - LZ4: fastest decompression (format.CompressionLZ4)
//
// Zstd uses the cgo-backed gozstd implementation when cgo is available and
// falls back to the pure-Go klauspost implementation otherwise; the two
// produce interchangeable streams.
//
// # Usage
//
//	c, err := compress.GetCodec(format.CompressionS2)
//	packed, err := c.Compress(payload)
//	payload, err = c.Decompress(packed)
//
// All codecs are stateless and safe for concurrent use; internal encoder and
// decoder instances are pooled.
package compress
