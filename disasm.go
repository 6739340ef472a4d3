// disasm.go - mnemonic formatter for RV32 code words
//
// A parallel decode target: given a code word, it produces a readable line
// without touching architectural state. Grounded on the teacher's
// disassembleIE32 (reference_debug_disasm_ie32.go): an opcode-to-mnemonic
// table plus a per-instruction formatter assembling a DisassembledLine, the
// same record shape the teacher returns from its Machine Monitor
// disassemblers.

package riscv

import "fmt"

// DisassembledLine is one decoded-and-formatted instruction, mirroring the
// teacher's DisassembledLine record.
type DisassembledLine struct {
	Address  uint32
	HexBytes string
	Mnemonic string
	Size     int
}

var xRegNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

func xName(r uint32) string {
	if r < 32 {
		return xRegNames[r]
	}
	return "x?"
}

func fName(r uint32) string {
	if r < 32 {
		return fmt.Sprintf("f%d", r)
	}
	return "f?"
}

// fmtKind classifies an Op by operand shape for formatting purposes.
// opFmt records each Op's fmtKind once rather than re-deriving it per call.
type fmtKind int

const (
	fmtNone fmtKind = iota
	fmtR
	fmtI
	fmtLoad
	fmtStore
	fmtBranch
	fmtJal
	fmtJalr
	fmtUpper
	fmtFR
	fmtFRM // fused: rd, rs1, rs2, rs3
	fmtFLoad
	fmtFStore
	fmtFCmp   // rd (x), rs1 (f), rs2 (f)
	fmtFUnary // rd (f or x), rs1 (f or x) depending on op
)

var opFmt = map[Op]fmtKind{
	OpAdd: fmtR, OpSub: fmtR, OpSll: fmtR, OpSrl: fmtR, OpSra: fmtR,
	OpAnd: fmtR, OpOr: fmtR, OpXor: fmtR, OpSlt: fmtR, OpSltu: fmtR,
	OpMul: fmtR, OpMulh: fmtR, OpMulhsu: fmtR, OpMulhu: fmtR,
	OpDiv: fmtR, OpDivu: fmtR, OpRem: fmtR, OpRemu: fmtR,

	OpAddi: fmtI, OpAndi: fmtI, OpOri: fmtI, OpXori: fmtI,
	OpSlli: fmtI, OpSrli: fmtI, OpSrai: fmtI, OpSlti: fmtI, OpSltiu: fmtI,

	OpLb: fmtLoad, OpLh: fmtLoad, OpLw: fmtLoad, OpLbu: fmtLoad, OpLhu: fmtLoad,
	OpSb: fmtStore, OpSh: fmtStore, OpSw: fmtStore,

	OpBeq: fmtBranch, OpBne: fmtBranch, OpBlt: fmtBranch,
	OpBge: fmtBranch, OpBltu: fmtBranch, OpBgeu: fmtBranch,

	OpJal:  fmtJal,
	OpJalr: fmtJalr,

	OpLui: fmtUpper, OpAuipc: fmtUpper,

	OpFlw: fmtFLoad, OpFsw: fmtFStore,
	OpFaddS: fmtFR, OpFsubS: fmtFR, OpFmulS: fmtFR, OpFdivS: fmtFR,
	OpFminS: fmtFR, OpFmaxS: fmtFR,
	OpFsgnjS: fmtFR, OpFsgnjnS: fmtFR, OpFsgnjxS: fmtFR,
	OpFmaddS: fmtFRM, OpFmsubS: fmtFRM, OpFnmsubS: fmtFRM, OpFnmaddS: fmtFRM,
	OpFleS: fmtFCmp, OpFltS: fmtFCmp, OpFeqS: fmtFCmp,
	OpFsqrtS: fmtFUnary, OpFcvtWS: fmtFUnary, OpFcvtWuS: fmtFUnary,
	OpFcvtSW: fmtFUnary, OpFcvtSWu: fmtFUnary,
	OpFmvXW: fmtFUnary, OpFmvWX: fmtFUnary, OpFclassS: fmtFUnary,
}

// Disassemble decodes the word at addr and formats it as one line. size
// must be 4 for a full-width word or 2 for a compressed half-word: it picks
// the decoder and the number of bytes shown in HexBytes. Disassemble does
// not work out the width itself; cmd/riscvrun reads four bytes and checks
// the low two bits to choose size.
func Disassemble(addr uint32, code uint32, size int, variant Variant) DisassembledLine {
	var d Decoded
	if size == 2 {
		d = DecodeCompressed(uint16(code), variant)
	} else {
		d = Decode(code, variant)
	}

	var hexBytes string
	if size == 2 {
		hexBytes = fmt.Sprintf("%02X %02X", byte(code), byte(code>>8))
	} else {
		hexBytes = fmt.Sprintf("%02X %02X %02X %02X",
			byte(code), byte(code>>8), byte(code>>16), byte(code>>24))
	}

	return DisassembledLine{
		Address:  addr,
		HexBytes: hexBytes,
		Mnemonic: mnemonic(d),
		Size:     size,
	}
}

func mnemonic(d Decoded) string {
	name := d.Op.String()
	if d.Op == OpIllegal {
		return fmt.Sprintf("db $%08X", d.Code)
	}

	switch opFmt[d.Op] {
	case fmtR:
		return fmt.Sprintf("%s %s, %s, %s", name, xName(d.Rd), xName(d.Rs1), xName(d.Rs2))
	case fmtI:
		return fmt.Sprintf("%s %s, %s, %d", name, xName(d.Rd), xName(d.Rs1), int32(d.Imm))
	case fmtLoad:
		return fmt.Sprintf("%s %s, %d(%s)", name, xName(d.Rd), int32(d.Imm), xName(d.Rs1))
	case fmtStore:
		return fmt.Sprintf("%s %s, %d(%s)", name, xName(d.Rs2), int32(d.Imm), xName(d.Rs1))
	case fmtBranch:
		return fmt.Sprintf("%s %s, %s, %d", name, xName(d.Rs1), xName(d.Rs2), int32(d.Imm))
	case fmtJal:
		return fmt.Sprintf("%s %s, %d", name, xName(d.Rd), int32(d.Imm))
	case fmtJalr:
		return fmt.Sprintf("%s %s, %d(%s)", name, xName(d.Rd), int32(d.Imm), xName(d.Rs1))
	case fmtUpper:
		return fmt.Sprintf("%s %s, 0x%X", name, xName(d.Rd), d.Imm>>12)
	case fmtFLoad:
		return fmt.Sprintf("%s %s, %d(%s)", name, fName(d.Rd), int32(d.Imm), xName(d.Rs1))
	case fmtFStore:
		return fmt.Sprintf("%s %s, %d(%s)", name, fName(d.Rs2), int32(d.Imm), xName(d.Rs1))
	case fmtFR:
		return fmt.Sprintf("%s %s, %s, %s", name, fName(d.Rd), fName(d.Rs1), fName(d.Rs2))
	case fmtFRM:
		return fmt.Sprintf("%s %s, %s, %s, %s", name, fName(d.Rd), fName(d.Rs1), fName(d.Rs2), fName(d.Rs3))
	case fmtFCmp:
		return fmt.Sprintf("%s %s, %s, %s", name, xName(d.Rd), fName(d.Rs1), fName(d.Rs2))
	case fmtFUnary:
		return fmtFUnaryMnemonic(name, d)
	default:
		if name == "ecall" || name == "ebreak" || name == "fence" {
			return name
		}
		return name
	}
}

// fmtFUnaryMnemonic handles the float ops whose operand register files
// differ per direction: fcvt.w.s/fclass.s/fmv.x.w read an f register and
// write an x register; fcvt.s.w/fmv.w.x do the reverse; fsqrt.s stays
// entirely in the f register file.
func fmtFUnaryMnemonic(name string, d Decoded) string {
	switch d.Op {
	case OpFsqrtS:
		return fmt.Sprintf("%s %s, %s", name, fName(d.Rd), fName(d.Rs1))
	case OpFcvtWS, OpFcvtWuS, OpFmvXW, OpFclassS:
		return fmt.Sprintf("%s %s, %s", name, xName(d.Rd), fName(d.Rs1))
	case OpFcvtSW, OpFcvtSWu, OpFmvWX:
		return fmt.Sprintf("%s %s, %s", name, fName(d.Rd), xName(d.Rs1))
	default:
		return name
	}
}
