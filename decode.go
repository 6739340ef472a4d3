// decode.go - masked-equality decode of full-width (32-bit) code words

package riscv

// Decoded is the result of decoding one instruction: which Op it is, plus
// every operand field that op's handler might need. Unused fields are
// simply left at zero; a handler only reads the fields its Op defines.
type Decoded struct {
	Op   Op
	Rd   uint32
	Rs1  uint32
	Rs2  uint32
	Rs3  uint32
	Rm   uint32
	Imm  uint32
	Code uint32 // the raw word, carried for the illegal-instruction context
}

const (
	opcodeLoad    = 0x03
	opcodeLoadFp  = 0x07
	opcodeMiscMem = 0x0f
	opcodeOpImm   = 0x13
	opcodeAuipc   = 0x17
	opcodeStore   = 0x23
	opcodeStoreFp = 0x27
	opcodeAmo     = 0x2f
	opcodeOp      = 0x33
	opcodeLui     = 0x37
	opcodeMadd    = 0x43
	opcodeMsub    = 0x47
	opcodeNmsub   = 0x4b
	opcodeNmadd   = 0x4f
	opcodeOpFp    = 0x53
	opcodeBranch  = 0x63
	opcodeJalr    = 0x67
	opcodeJal     = 0x6f
	opcodeSystem  = 0x73
)

// Decode classifies a 32-bit code word per variant and returns the matching
// operation and its extracted operands. A word matching no recognised
// pattern decodes to OpIllegal; the dispatcher raises IllegalInstruction
// for that case. Decode never fails and never allocates.
func Decode(code uint32, variant Variant) Decoded {
	op := opcode(code)
	f3 := funct3(code)
	f7 := funct7(code)

	switch op {
	case opcodeOp:
		if f7 == 0x01 && variant.Has(VariantM) {
			return decodeM(code, f3)
		}
		return decodeOpReg(code, f3, f7)

	case opcodeOpImm:
		return decodeOpImm(code, f3)

	case opcodeLoad:
		return decodeLoad(code, f3)

	case opcodeStore:
		return decodeStore(code, f3)

	case opcodeBranch:
		return decodeBranch(code, f3)

	case opcodeJal:
		return Decoded{Op: OpJal, Rd: rd(code), Imm: immJ(code), Code: code}

	case opcodeJalr:
		if f3 == 0 {
			return Decoded{Op: OpJalr, Rd: rd(code), Rs1: rs1(code), Imm: immI(code), Code: code}
		}

	case opcodeLui:
		return Decoded{Op: OpLui, Rd: rd(code), Imm: immU(code), Code: code}

	case opcodeAuipc:
		return Decoded{Op: OpAuipc, Rd: rd(code), Imm: immU(code), Code: code}

	case opcodeMiscMem:
		if f3 == 0 {
			return Decoded{Op: OpFence, Code: code}
		}

	case opcodeSystem:
		if f3 == 0 && rd(code) == 0 && rs1(code) == 0 {
			switch code >> 20 {
			case 0x0:
				return Decoded{Op: OpEcall, Code: code}
			case 0x1:
				return Decoded{Op: OpEbreak, Code: code}
			}
		}

	case opcodeLoadFp:
		if variant.Has(VariantF) && f3 == 0x2 {
			return Decoded{Op: OpFlw, Rd: rd(code), Rs1: rs1(code), Imm: immI(code), Code: code}
		}

	case opcodeStoreFp:
		if variant.Has(VariantF) && f3 == 0x2 {
			return Decoded{Op: OpFsw, Rs1: rs1(code), Rs2: rs2(code), Imm: immS(code), Code: code}
		}

	case opcodeOpFp:
		if variant.Has(VariantF) {
			return decodeOpFp(code, f7)
		}

	case opcodeMadd:
		if variant.Has(VariantF) {
			return Decoded{Op: OpFmaddS, Rd: rd(code), Rs1: rs1(code), Rs2: rs2(code), Rs3: rs3(code), Rm: rm(code), Code: code}
		}

	case opcodeMsub:
		if variant.Has(VariantF) {
			return Decoded{Op: OpFmsubS, Rd: rd(code), Rs1: rs1(code), Rs2: rs2(code), Rs3: rs3(code), Rm: rm(code), Code: code}
		}

	case opcodeNmsub:
		if variant.Has(VariantF) {
			return Decoded{Op: OpFnmsubS, Rd: rd(code), Rs1: rs1(code), Rs2: rs2(code), Rs3: rs3(code), Rm: rm(code), Code: code}
		}

	case opcodeNmadd:
		if variant.Has(VariantF) {
			return Decoded{Op: OpFnmaddS, Rd: rd(code), Rs1: rs1(code), Rs2: rs2(code), Rs3: rs3(code), Rm: rm(code), Code: code}
		}
	}

	return Decoded{Op: OpIllegal, Code: code}
}

func decodeOpReg(code uint32, f3, f7 uint32) Decoded {
	d := Decoded{Rd: rd(code), Rs1: rs1(code), Rs2: rs2(code), Code: code}
	switch {
	case f3 == 0x0 && f7 == 0x00:
		d.Op = OpAdd
	case f3 == 0x0 && f7 == 0x20:
		d.Op = OpSub
	case f3 == 0x1 && f7 == 0x00:
		d.Op = OpSll
	case f3 == 0x2 && f7 == 0x00:
		d.Op = OpSlt
	case f3 == 0x3 && f7 == 0x00:
		d.Op = OpSltu
	case f3 == 0x4 && f7 == 0x00:
		d.Op = OpXor
	case f3 == 0x5 && f7 == 0x00:
		d.Op = OpSrl
	case f3 == 0x5 && f7 == 0x20:
		d.Op = OpSra
	case f3 == 0x6 && f7 == 0x00:
		d.Op = OpOr
	case f3 == 0x7 && f7 == 0x00:
		d.Op = OpAnd
	default:
		return Decoded{Op: OpIllegal, Code: code}
	}
	return d
}

func decodeM(code uint32, f3 uint32) Decoded {
	d := Decoded{Rd: rd(code), Rs1: rs1(code), Rs2: rs2(code), Code: code}
	switch f3 {
	case 0x0:
		d.Op = OpMul
	case 0x1:
		d.Op = OpMulh
	case 0x2:
		d.Op = OpMulhsu
	case 0x3:
		d.Op = OpMulhu
	case 0x4:
		d.Op = OpDiv
	case 0x5:
		d.Op = OpDivu
	case 0x6:
		d.Op = OpRem
	case 0x7:
		d.Op = OpRemu
	default:
		return Decoded{Op: OpIllegal, Code: code}
	}
	return d
}

func decodeOpImm(code uint32, f3 uint32) Decoded {
	d := Decoded{Rd: rd(code), Rs1: rs1(code), Imm: immI(code), Code: code}
	switch f3 {
	case 0x0:
		d.Op = OpAddi
	case 0x1:
		if funct7(code) != 0x00 {
			return Decoded{Op: OpIllegal, Code: code}
		}
		d.Op = OpSlli
		d.Imm = shamtw(code)
	case 0x2:
		d.Op = OpSlti
	case 0x3:
		d.Op = OpSltiu
	case 0x4:
		d.Op = OpXori
	case 0x5:
		switch funct7(code) {
		case 0x00:
			d.Op = OpSrli
		case 0x20:
			d.Op = OpSrai
		default:
			return Decoded{Op: OpIllegal, Code: code}
		}
		d.Imm = shamtw(code)
	case 0x6:
		d.Op = OpOri
	case 0x7:
		d.Op = OpAndi
	}
	return d
}

func decodeLoad(code uint32, f3 uint32) Decoded {
	d := Decoded{Rd: rd(code), Rs1: rs1(code), Imm: immI(code), Code: code}
	switch f3 {
	case 0x0:
		d.Op = OpLb
	case 0x1:
		d.Op = OpLh
	case 0x2:
		d.Op = OpLw
	case 0x4:
		d.Op = OpLbu
	case 0x5:
		d.Op = OpLhu
	default:
		return Decoded{Op: OpIllegal, Code: code}
	}
	return d
}

func decodeStore(code uint32, f3 uint32) Decoded {
	d := Decoded{Rs1: rs1(code), Rs2: rs2(code), Imm: immS(code), Code: code}
	switch f3 {
	case 0x0:
		d.Op = OpSb
	case 0x1:
		d.Op = OpSh
	case 0x2:
		d.Op = OpSw
	default:
		return Decoded{Op: OpIllegal, Code: code}
	}
	return d
}

func decodeBranch(code uint32, f3 uint32) Decoded {
	d := Decoded{Rs1: rs1(code), Rs2: rs2(code), Imm: immB(code), Code: code}
	switch f3 {
	case 0x0:
		d.Op = OpBeq
	case 0x1:
		d.Op = OpBne
	case 0x4:
		d.Op = OpBlt
	case 0x5:
		d.Op = OpBge
	case 0x6:
		d.Op = OpBltu
	case 0x7:
		d.Op = OpBgeu
	default:
		return Decoded{Op: OpIllegal, Code: code}
	}
	return d
}

func decodeOpFp(code uint32, f7 uint32) Decoded {
	d := Decoded{Rd: rd(code), Rs1: rs1(code), Rs2: rs2(code), Rm: rm(code), Code: code}
	switch f7 {
	case 0x00:
		d.Op = OpFaddS
	case 0x04:
		d.Op = OpFsubS
	case 0x08:
		d.Op = OpFmulS
	case 0x0c:
		d.Op = OpFdivS
	case 0x2c:
		d.Op = OpFsqrtS
	case 0x10:
		switch funct3(code) {
		case 0x0:
			d.Op = OpFsgnjS
		case 0x1:
			d.Op = OpFsgnjnS
		case 0x2:
			d.Op = OpFsgnjxS
		default:
			return Decoded{Op: OpIllegal, Code: code}
		}
	case 0x14:
		switch funct3(code) {
		case 0x0:
			d.Op = OpFminS
		case 0x1:
			d.Op = OpFmaxS
		default:
			return Decoded{Op: OpIllegal, Code: code}
		}
	case 0x50:
		switch funct3(code) {
		case 0x0:
			d.Op = OpFleS
		case 0x1:
			d.Op = OpFltS
		case 0x2:
			d.Op = OpFeqS
		default:
			return Decoded{Op: OpIllegal, Code: code}
		}
	case 0x60: // fcvt.w.s / fcvt.wu.s: rs2 selects signed/unsigned
		switch rs2(code) {
		case 0x0:
			d.Op = OpFcvtWS
		case 0x1:
			d.Op = OpFcvtWuS
		default:
			return Decoded{Op: OpIllegal, Code: code}
		}
	case 0x68: // fcvt.s.w / fcvt.s.wu
		switch rs2(code) {
		case 0x0:
			d.Op = OpFcvtSW
		case 0x1:
			d.Op = OpFcvtSWu
		default:
			return Decoded{Op: OpIllegal, Code: code}
		}
	case 0x70:
		switch funct3(code) {
		case 0x0:
			d.Op = OpFmvXW
		case 0x1:
			d.Op = OpFclassS
		default:
			return Decoded{Op: OpIllegal, Code: code}
		}
	case 0x78:
		d.Op = OpFmvWX
	default:
		return Decoded{Op: OpIllegal, Code: code}
	}
	return d
}
