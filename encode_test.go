package riscv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImmIEncodesNegativeOffset(t *testing.T) {
	// addi x1, x2, -1: imm field is all ones.
	code := uint32(0xfff10093)
	assert.Equal(t, uint32(0xffffffff), immI(code))
}

func TestImmSRoundTripsAcrossSplitFields(t *testing.T) {
	// sw x0, 2047(x2): imm=0x7ff split across bits [31:25] and [11:7].
	imm := uint32(0x7ff)
	code := ((imm >> 5) << 25) | ((imm & 0x1f) << 7) | (0x2 << 15) | (0x2 << 12) | 0x23
	assert.Equal(t, int32(2047), int32(immS(code)))
}

func TestImmBIsHalfwordGranularAndSignExtends(t *testing.T) {
	// beq with a -2 offset. Every bit of a negative two's-complement value
	// above bit 0 is already 1, so scattering any of them into code reproduces
	// the same pattern immB expects back.
	imm := uint32(0xfffffffe)
	code := ((imm>>12)&0x1)<<31 | ((imm>>11)&0x1)<<7 | ((imm>>5)&0x3f)<<25 | ((imm>>1)&0xf)<<8 | 0x63
	assert.Equal(t, int32(-2), int32(immB(code)))
}

func TestImmUMasksLowTwelveBits(t *testing.T) {
	code := uint32(0xfffff0b7) // lui x1, 0xfffff
	assert.Equal(t, uint32(0xfffff000), immU(code))
}

func TestImmJSignExtendsTwentyBitOffset(t *testing.T) {
	// jal x0, -4
	imm := uint32(0xfffffffc)
	code := ((imm>>20)&0x1)<<31 | ((imm>>12)&0xff)<<12 | ((imm>>11)&0x1)<<20 | ((imm>>1)&0x3ff)<<21 | 0x6f
	assert.Equal(t, int32(-4), int32(immJ(code)))
}

func TestCNzuimm10CAddi4spnSingleBit(t *testing.T) {
	// nzuimm[2] alone maps to inst[6]; every other contributing bit clear.
	code := uint16(1 << 6)
	assert.Equal(t, uint32(4), C_nzuimm10(code))
}

func TestCImm12CJNegativeOffset(t *testing.T) {
	// c.j to a target 2 bytes behind itself: every bit the CJ mapping reads
	// from a negative offset above bit 0 is 1, so every contributing code
	// bit (2 through 12) ends up set.
	var code uint16
	for n := uint(2); n <= 12; n++ {
		code |= 1 << n
	}
	assert.Equal(t, int32(-2), int32(C_imm12(code)))
}

func TestCBimm9Zero(t *testing.T) {
	assert.Equal(t, uint32(0), C_bimm9(0))
}

func TestCNzimm18LuiShiftsIntoPlace(t *testing.T) {
	// c.lui with nzimm[17]=1, everything else zero: inst[12]=1.
	code := uint16(1 << 12)
	assert.Equal(t, uint32(0xfffe0000), C_nzimm18(code))
}
