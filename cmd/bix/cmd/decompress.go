package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/bix/codec"
	"github.com/arloliu/bix/container"
)

var decompressFlags struct {
	input  string
	output string
}

// decompressCmd represents the decompress command.
var decompressCmd = &cobra.Command{
	Use:   "decompress",
	Short: "Decompress a bix frame back into its original bytes",
	Long: `Decompress reads a binary frame produced by "bix compress --output",
reverses any outer compression, decodes the embedded WAH or BBC stream, and
writes the original bytes to stdout or to --output.`,
	RunE: runDecompress,
}

func init() {
	rootCmd.AddCommand(decompressCmd)

	decompressCmd.Flags().StringVarP(&decompressFlags.input, "input", "i", "",
		"frame file path (default: read stdin)")
	decompressCmd.Flags().StringVarP(&decompressFlags.output, "output", "o", "",
		"write original bytes to this path instead of stdout")
}

func runDecompress(cmd *cobra.Command, _ []string) error {
	var (
		data []byte
		err  error
	)
	if decompressFlags.input != "" {
		data, err = os.ReadFile(decompressFlags.input)
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	compressed, err := container.Decode(data)
	if err != nil {
		return err
	}

	c, err := codec.New(compressed.Algorithm, compressed.WordSize)
	if err != nil {
		return err
	}

	original, err := c.Decompress(compressed)
	if err != nil {
		return err
	}

	if decompressFlags.output != "" {
		return os.WriteFile(decompressFlags.output, original.Bytes(), 0o644)
	}

	_, err = cmd.OutOrStdout().Write(original.Bytes())

	return err
}
