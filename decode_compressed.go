// decode_compressed.go - expand a 16-bit compressed word into a canonical
// full-width Decoded, per the RISC-V C standard extension.

package riscv

// sp is the integer register index conventionally used as the stack
// pointer; the C extension hardcodes it as an implicit operand for several
// stack-relative forms (c.addi4spn, c.addi16sp, c.lwsp/c.swsp).
const sp = 2

// ra is the return-address register c.jal/c.jalr implicitly target.
const ra = 1

// DecodeCompressed expands a 16-bit compressed instruction into the
// canonical full-width operation it is defined to be equivalent to (e.g.
// c.jr rs -> jalr x0, 0(rs); c.jal imm -> jal x1, imm; c.addi16sp imm ->
// addi x2, x2, imm). The returned Decoded's semantics are exactly those of
// the expansion; pc still advances by 2 for a compressed instruction
// regardless of what it expands to (the fetcher, not the decoder, is
// responsible for that).
//
// A word matching no recognised compressed pattern decodes to OpIllegal.
func DecodeCompressed(code uint16, variant Variant) Decoded {
	quadrant := code & 0x3
	funct3c := uint32(code>>13) & 0x7

	switch quadrant {
	case 0x0:
		return decodeCompressedQuadrant0(code, funct3c, variant)
	case 0x1:
		return decodeCompressedQuadrant1(code, funct3c)
	case 0x2:
		return decodeCompressedQuadrant2(code, funct3c, variant)
	}
	return Decoded{Op: OpIllegal, Code: uint32(code)}
}

func decodeCompressedQuadrant0(code uint16, f3 uint32, variant Variant) Decoded {
	rdp := cRdShort(code)
	rs1p := cRs1Short(code)
	rs2p := cRs2Short(code)
	c := uint32(code)

	switch f3 {
	case 0x0: // c.addi4spn
		imm := C_nzuimm10(code)
		if imm == 0 {
			return Decoded{Op: OpIllegal, Code: c}
		}
		return Decoded{Op: OpAddi, Rd: rdp, Rs1: sp, Imm: imm, Code: c}
	case 0x2: // c.lw
		return Decoded{Op: OpLw, Rd: rdp, Rs1: rs1p, Imm: C_uimm7(code), Code: c}
	case 0x3: // c.flw
		if variant.Has(VariantF) {
			return Decoded{Op: OpFlw, Rd: rdp, Rs1: rs1p, Imm: C_uimm7(code), Code: c}
		}
	case 0x6: // c.sw
		return Decoded{Op: OpSw, Rs1: rs1p, Rs2: rs2p, Imm: C_uimm7(code), Code: c}
	case 0x7: // c.fsw
		if variant.Has(VariantF) {
			return Decoded{Op: OpFsw, Rs1: rs1p, Rs2: rs2p, Imm: C_uimm7(code), Code: c}
		}
	}
	return Decoded{Op: OpIllegal, Code: c}
}

func decodeCompressedQuadrant1(code uint16, f3 uint32) Decoded {
	c := uint32(code)
	rdRs1 := cRdRs1(code)

	switch f3 {
	case 0x0: // c.nop / c.addi
		return Decoded{Op: OpAddi, Rd: rdRs1, Rs1: rdRs1, Imm: C_nzimm6(code), Code: c}
	case 0x1: // c.jal (RV32): x1 = pc+2, next_pc = pc + imm
		return Decoded{Op: OpJal, Rd: ra, Imm: C_imm12(code), Code: c}
	case 0x2: // c.li
		return Decoded{Op: OpAddi, Rd: rdRs1, Rs1: 0, Imm: C_nzimm6(code), Code: c}
	case 0x3:
		if rdRs1 == sp { // c.addi16sp
			return Decoded{Op: OpAddi, Rd: sp, Rs1: sp, Imm: C_nzimm10(code), Code: c}
		}
		// c.lui
		return Decoded{Op: OpLui, Rd: rdRs1, Imm: C_nzimm18(code), Code: c}
	case 0x4:
		return decodeCompressedArith(code)
	case 0x5: // c.j
		return Decoded{Op: OpJal, Rd: 0, Imm: C_imm12(code), Code: c}
	case 0x6: // c.beqz
		return Decoded{Op: OpBeq, Rs1: cRs1Short(code), Rs2: 0, Imm: C_bimm9(code), Code: c}
	case 0x7: // c.bnez
		return Decoded{Op: OpBne, Rs1: cRs1Short(code), Rs2: 0, Imm: C_bimm9(code), Code: c}
	}
	return Decoded{Op: OpIllegal, Code: c}
}

func decodeCompressedArith(code uint16) Decoded {
	c := uint32(code)
	rdp := cRs1Short(code) // CB/CA format: the shared rd'/rs1' field sits where CL's rs1' does
	funct2Hi := (uint32(code) >> 10) & 0x3

	switch funct2Hi {
	case 0x0: // c.srli
		return Decoded{Op: OpSrli, Rd: rdp, Rs1: rdp, Imm: C_nzuimm6(code), Code: c}
	case 0x1: // c.srai
		return Decoded{Op: OpSrai, Rd: rdp, Rs1: rdp, Imm: C_nzuimm6(code), Code: c}
	case 0x2: // c.andi
		return Decoded{Op: OpAndi, Rd: rdp, Rs1: rdp, Imm: C_nzimm6(code), Code: c}
	case 0x3:
		rs2p := cRs2Short(code)
		funct2Lo := (uint32(code) >> 5) & 0x3
		switch funct2Lo {
		case 0x0:
			return Decoded{Op: OpSub, Rd: rdp, Rs1: rdp, Rs2: rs2p, Code: c}
		case 0x1:
			return Decoded{Op: OpXor, Rd: rdp, Rs1: rdp, Rs2: rs2p, Code: c}
		case 0x2:
			return Decoded{Op: OpOr, Rd: rdp, Rs1: rdp, Rs2: rs2p, Code: c}
		case 0x3:
			return Decoded{Op: OpAnd, Rd: rdp, Rs1: rdp, Rs2: rs2p, Code: c}
		}
	}
	return Decoded{Op: OpIllegal, Code: c}
}

func decodeCompressedQuadrant2(code uint16, f3 uint32, variant Variant) Decoded {
	c := uint32(code)
	rdRs1 := cRdRs1(code)
	rs2Reg := cRs2(code)

	switch f3 {
	case 0x0: // c.slli
		return Decoded{Op: OpSlli, Rd: rdRs1, Rs1: rdRs1, Imm: C_nzuimm6(code), Code: c}
	case 0x2: // c.lwsp
		return Decoded{Op: OpLw, Rd: rdRs1, Rs1: sp, Imm: C_uimm8sp(code), Code: c}
	case 0x3: // c.flwsp
		if variant.Has(VariantF) {
			return Decoded{Op: OpFlw, Rd: rdRs1, Rs1: sp, Imm: C_uimm8sp(code), Code: c}
		}
	case 0x4:
		bit12 := bit(code, 12)
		switch {
		case bit12 == 0 && rs2Reg == 0: // c.jr
			return Decoded{Op: OpJalr, Rd: 0, Rs1: rdRs1, Imm: 0, Code: c}
		case bit12 == 0: // c.mv
			return Decoded{Op: OpAdd, Rd: rdRs1, Rs1: 0, Rs2: rs2Reg, Code: c}
		case bit12 == 1 && rdRs1 == 0 && rs2Reg == 0: // c.ebreak
			return Decoded{Op: OpEbreak, Code: c}
		case bit12 == 1 && rs2Reg == 0: // c.jalr
			return Decoded{Op: OpJalr, Rd: ra, Rs1: rdRs1, Imm: 0, Code: c}
		default: // c.add
			return Decoded{Op: OpAdd, Rd: rdRs1, Rs1: rdRs1, Rs2: rs2Reg, Code: c}
		}
	case 0x6: // c.swsp
		return Decoded{Op: OpSw, Rs1: sp, Rs2: rs2Reg, Imm: C_uimm8sp_s(code), Code: c}
	case 0x7: // c.fswsp
		if variant.Has(VariantF) {
			return Decoded{Op: OpFsw, Rs1: sp, Rs2: rs2Reg, Imm: C_uimm8sp_s(code), Code: c}
		}
	}
	return Decoded{Op: OpIllegal, Code: c}
}
