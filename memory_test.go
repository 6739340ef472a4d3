package riscv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMemoryWordRoundTrip(t *testing.T) {
	mem := NewBasicMemory(64)
	require.True(t, mem.WriteWord(0, 0xdeadbeef))
	val, ok := mem.ReadWord(0)
	require.True(t, ok)
	assert.Equal(t, uint32(0xdeadbeef), val)
}

func TestBasicMemoryByteOrderIsLittleEndian(t *testing.T) {
	mem := NewBasicMemory(64)
	require.True(t, mem.WriteWord(4, 0x01020304))
	b0, _ := mem.ReadByte(4)
	b3, _ := mem.ReadByte(7)
	assert.Equal(t, byte(0x04), b0)
	assert.Equal(t, byte(0x01), b3)
}

func TestBasicMemoryOutOfBoundsFails(t *testing.T) {
	mem := NewBasicMemory(4)
	_, ok := mem.ReadByte(4)
	assert.False(t, ok)
	assert.False(t, mem.WriteByte(4, 1))
}

func TestBasicMemoryLoadImageTooLarge(t *testing.T) {
	mem := NewBasicMemory(4)
	assert.False(t, mem.LoadImage([]byte{1, 2, 3, 4, 5}))
}

func TestBasicMemoryResetKeepsIORegions(t *testing.T) {
	mem := NewBasicMemory(16)
	require.True(t, mem.WriteByte(0, 0xff))
	mem.MapIO(IORegion{Start: 8, End: 8, OnRead: func(uint32) byte { return 0x42 }})

	mem.Reset()

	b, ok := mem.ReadByte(0)
	require.True(t, ok)
	assert.Equal(t, byte(0), b)

	v, ok := mem.ReadByte(8)
	require.True(t, ok)
	assert.Equal(t, byte(0x42), v)
}

func TestBasicMemoryRegionAt(t *testing.T) {
	mem := NewBasicMemory(16)
	region := IORegion{Start: 8, End: 8, OnRead: func(uint32) byte { return 1 }}
	mem.MapIO(region)

	found, err := mem.RegionAt(8)
	require.NoError(t, err)
	assert.Equal(t, region.Start, found.Start)

	_, err = mem.RegionAt(0)
	assert.ErrorIs(t, err, ErrNoSuchRegion)
}

func TestBasicMemoryLastRegisteredRegionWins(t *testing.T) {
	mem := NewBasicMemory(16)
	mem.MapIO(IORegion{Start: 0, End: 15, OnRead: func(uint32) byte { return 1 }})
	mem.MapIO(IORegion{Start: 4, End: 4, OnRead: func(uint32) byte { return 2 }})

	b, ok := mem.ReadByte(4)
	require.True(t, ok)
	assert.Equal(t, byte(2), b)
}

func TestBasicMemoryUnprotectedWriteWordBypassesIORegion(t *testing.T) {
	mem := NewBasicMemory(16)
	written := false
	mem.MapIO(IORegion{Start: 0, End: 3, OnWrite: func(uint32, byte) { written = true }})

	mem.UnprotectedWriteWord(0, 0x11223344)

	assert.False(t, written)
	// The region has no OnRead, so reads fall through to backing storage,
	// the same bytes UnprotectedWriteWord touched directly.
	val, ok := mem.ReadWord(0)
	require.True(t, ok)
	assert.Equal(t, uint32(0x11223344), val)
}

func TestMapTTY(t *testing.T) {
	mem := NewBasicMemory(0x9000)
	var got []byte
	mem.MapTTY(func(b byte) { got = append(got, b) })

	status, ok := mem.ReadByte(TTYStatusAddr)
	require.True(t, ok)
	assert.Equal(t, byte(1), status)

	require.True(t, mem.WriteByte(TTYDataAddr, 'h'))
	require.True(t, mem.WriteByte(TTYDataAddr, 'i'))
	assert.Equal(t, []byte{'h', 'i'}, got)
}
