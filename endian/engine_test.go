package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestEngineRoundTrip(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		buf := engine.AppendUint64(nil, 0xCAFEF00DDEADBEEF)
		buf = engine.AppendUint32(buf, 0x12345678)
		buf = engine.AppendUint16(buf, 0xABCD)

		require.Len(t, buf, 14)
		require.Equal(t, uint64(0xCAFEF00DDEADBEEF), engine.Uint64(buf[0:8]))
		require.Equal(t, uint32(0x12345678), engine.Uint32(buf[8:12]))
		require.Equal(t, uint16(0xABCD), engine.Uint16(buf[12:14]))
	}
}

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.Contains(t, []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}, order)
	require.Equal(t, order == binary.LittleEndian, IsNativeLittleEndian())
}
