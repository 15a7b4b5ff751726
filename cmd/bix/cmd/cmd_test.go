package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with the given args and captures its output
// streams. Optional flags are cleared first so state from a previous
// execution cannot leak between test cases.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	compressFlags.input = ""
	compressFlags.text = ""
	compressFlags.output = ""
	compressFlags.compression = "none"
	decompressFlags.input = ""
	decompressFlags.output = ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()

	return out.String(), errOut.String(), err
}

func TestCompressCommand_GoldenWAH(t *testing.T) {
	// "a" is 0x61: sections 011, 000, then a 2-bit tail, all literals at W=4.
	stdout, stderr, err := execute(t, "compress", "-a", "wah", "-w", "4", "-t", "a")
	require.NoError(t, err)
	require.Equal(t, "001100000010\n", stdout)
	require.Equal(t, "word size: 4, final bits: 2\n", stderr)
}

func TestCompressCommand_GoldenBBC(t *testing.T) {
	// 0x61 has three bits set, so it encodes as a single literal record.
	stdout, stderr, err := execute(t, "compress", "-a", "bbc", "-t", "a")
	require.NoError(t, err)
	require.Equal(t, "1101100001\n", stdout)
	require.Empty(t, stderr)
}

func TestCompressCommand_UnknownAlgorithm(t *testing.T) {
	_, _, err := execute(t, "compress", "-a", "nope", "-t", "a")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown algorithm")
}

func TestCompressDecompressCommand_FrameRoundTrip(t *testing.T) {
	frame := filepath.Join(t.TempDir(), "hello.bix")

	_, stderr, err := execute(t, "compress",
		"-a", "wah", "-w", "8", "-t", "Hello, world!",
		"-o", frame, "--compression", "zstd")
	require.NoError(t, err)
	require.Contains(t, stderr, "ratio")

	_, err = os.Stat(frame)
	require.NoError(t, err)

	stdout, _, err := execute(t, "decompress", "-i", frame)
	require.NoError(t, err)
	require.Equal(t, "Hello, world!", stdout)
}
