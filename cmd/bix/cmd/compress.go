package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/bix/bitseq"
	"github.com/arloliu/bix/codec"
	"github.com/arloliu/bix/compress"
	"github.com/arloliu/bix/container"
	"github.com/arloliu/bix/format"
)

var compressFlags struct {
	algorithm   string
	wordSize    uint
	input       string
	text        string
	output      string
	compression string
}

// compressCmd represents the compress command.
var compressCmd = &cobra.Command{
	Use:   "compress",
	Short: "Compress a bit sequence with WAH or BBC",
	Long: `Compress reads input bytes from a file, a raw string, or stdin, compresses
them with the selected algorithm, and prints the compressed bit sequence as an
ASCII binary string, most-significant bit first.

With --output the result is written as a binary frame instead, carrying the
algorithm, word size, trailer and original bit length alongside the payload,
optionally with outer compression applied.`,
	RunE: runCompress,
}

func init() {
	rootCmd.AddCommand(compressCmd)

	compressCmd.Flags().StringVarP(&compressFlags.algorithm, "algorithm", "a", "wah",
		"compression algorithm: wah or bbc")
	compressCmd.Flags().UintVarP(&compressFlags.wordSize, "word-size", "w", 8,
		"WAH word size in bits, in [2, 64]")
	compressCmd.Flags().StringVarP(&compressFlags.input, "input", "i", "",
		"input file path (default: read stdin)")
	compressCmd.Flags().StringVarP(&compressFlags.text, "text", "t", "",
		"compress the bytes of this string instead of reading a file")
	compressCmd.Flags().StringVarP(&compressFlags.output, "output", "o", "",
		"write a binary frame to this path instead of printing bits")
	compressCmd.Flags().StringVar(&compressFlags.compression, "compression", "none",
		"outer frame compression: none, zstd, s2 or lz4")
	compressCmd.MarkFlagsMutuallyExclusive("input", "text")
}

func parseAlgorithm(name string) (format.AlgorithmType, error) {
	switch name {
	case "wah":
		return format.AlgorithmWAH, nil
	case "bbc":
		return format.AlgorithmBBC, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want wah or bbc)", name)
	}
}

func parseCompression(name string) (format.CompressionType, error) {
	switch name {
	case "none":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, zstd, s2 or lz4)", name)
	}
}

func readInput(cmd *cobra.Command) ([]byte, error) {
	switch {
	case compressFlags.text != "":
		return []byte(compressFlags.text), nil
	case compressFlags.input != "":
		return os.ReadFile(compressFlags.input)
	default:
		return io.ReadAll(cmd.InOrStdin())
	}
}

func runCompress(cmd *cobra.Command, _ []string) error {
	algorithm, err := parseAlgorithm(compressFlags.algorithm)
	if err != nil {
		return err
	}
	compression, err := parseCompression(compressFlags.compression)
	if err != nil {
		return err
	}

	data, err := readInput(cmd)
	if err != nil {
		return err
	}
	input := bitseq.FromByteSlice(data)

	c, err := codec.New(algorithm, compressFlags.wordSize)
	if err != nil {
		return err
	}

	compressed, err := c.Compress(input)
	if err != nil {
		return err
	}

	if compressFlags.output != "" {
		frame, err := container.Encode(compressed, container.WithCompression(compression))
		if err != nil {
			return err
		}
		if err := os.WriteFile(compressFlags.output, frame, 0o644); err != nil {
			return err
		}

		stats := compress.Stats{
			Algorithm:      compression,
			OriginalSize:   int64(len(data)),
			CompressedSize: int64(len(frame)),
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d -> %d bytes (%s, ratio %.3f, savings %.1f%%)\n",
			stats.OriginalSize, stats.CompressedSize, stats.Algorithm, stats.Ratio(), stats.SpaceSavings())

		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), compressed.Bits.String())
	if algorithm == format.AlgorithmWAH {
		fmt.Fprintf(cmd.ErrOrStderr(), "word size: %d, final bits: %d\n",
			compressed.WordSize, compressed.FinalBits)
	}

	return nil
}
