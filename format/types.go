package format

type (
	AlgorithmType   uint8
	CompressionType uint8
)

const (
	AlgorithmWAH AlgorithmType = 0x1 // AlgorithmWAH represents word-aligned hybrid compression.
	AlgorithmBBC AlgorithmType = 0x2 // AlgorithmBBC represents byte-aligned bitmap code compression.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no outer compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (a AlgorithmType) String() string {
	switch a {
	case AlgorithmWAH:
		return "WAH"
	case AlgorithmBBC:
		return "BBC"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
