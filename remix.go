// remix.go - alternate in-place re-encoding cache ("Remix")

package riscv

// remixOpBits is the width of the opcode field Remix packs into bits[7:1]
// of a transcoded word.
const remixOpBits = 0x7f

// isRemixSupported reports whether op can be transcoded into the Remix
// format. Only the I extension is implemented in this variant: M and F
// operations, and the three I-extension ops whose immediate does not fit
// the 14-bit field Remix has room for (lui, auipc, jal), always fall
// through to a fresh decode instead of ever being rewritten.
func isRemixSupported(op Op) bool {
	switch op {
	case OpAdd, OpSub, OpSll, OpSrl, OpSra, OpAnd, OpOr, OpXor, OpSlt, OpSltu,
		OpAddi, OpAndi, OpOri, OpXori, OpSlli, OpSrli, OpSrai, OpSlti, OpSltiu,
		OpLb, OpLh, OpLw, OpLbu, OpLhu,
		OpSb, OpSh, OpSw,
		OpBeq, OpBne, OpBlt, OpBge, OpBltu, OpBgeu,
		OpJalr,
		OpEcall, OpEbreak, OpFence:
		return true
	default:
		return false
	}
}

// remixUsesRs2 reports whether op reads a second source register
// (three-register ALU-R and store/branch ops).
func remixUsesRs2(op Op) bool {
	switch op {
	case OpAdd, OpSub, OpSll, OpSrl, OpSra, OpAnd, OpOr, OpXor, OpSlt, OpSltu,
		OpSb, OpSh, OpSw,
		OpBeq, OpBne, OpBlt, OpBge, OpBltu, OpBgeu:
		return true
	default:
		return false
	}
}

// remixEncode packs d into Remix's in-place format: op in bits[7:1] (bit 0
// is always left clear, so a transcoded word's low two bits are never
// 0b11 — the untranscoded/transcoded discriminator), rd and rs1 each in a
// 5-bit field, and a third 14-bit field. ALU-R ops put rs2 in the third
// field; stores and branches, which have no rd, put rs2 in the rd field and
// their immediate in the third; every other op puts its immediate there.
// Returns ok=false for any op isRemixSupported rejects.
func remixEncode(d Decoded) (uint32, bool) {
	if !isRemixSupported(d.Op) {
		return 0, false
	}
	word := (uint32(d.Op) & remixOpBits) << 1
	word |= (d.Rd & 0x1f) << 8
	word |= (d.Rs1 & 0x1f) << 13
	switch {
	case d.Op >= OpSb && d.Op <= OpBgeu: // stores and branches
		word |= (d.Rs2&0x1f)<<8 | (d.Imm&0x3fff)<<18
	case remixUsesRs2(d.Op):
		word |= (d.Rs2 & 0x1f) << 18
	default:
		word |= (d.Imm & 0x3fff) << 18
	}
	return word, true
}

// remixDecode unpacks a previously-transcoded Remix word back into a
// Decoded, the inverse of remixEncode.
func remixDecode(word uint32) Decoded {
	op := Op((word >> 1) & remixOpBits)
	d := Decoded{
		Op:  op,
		Rd:  (word >> 8) & 0x1f,
		Rs1: (word >> 13) & 0x1f,
	}
	rest := (word >> 18) & 0x3fff
	switch {
	case op >= OpSb && op <= OpBgeu: // stores and branches
		d.Rs2, d.Rd = d.Rd, 0
		d.Imm = signExtend(rest, 14)
	case remixUsesRs2(op):
		d.Rs2 = rest & 0x1f
	default:
		d.Imm = signExtend(rest, 14)
	}
	return d
}

// RemixDispatcher drives the Remix alternate-dispatch path: untranscoded
// addresses pay a decode plus an in-place rewrite; transcoded addresses
// pay only an unpack. The memory backend must implement UnprotectedWriter
// for transcoding to take effect; if it doesn't, Remix still executes
// correctly, it just never rewrites anything and behaves like
// NormalDispatcher with extra bookkeeping.
type RemixDispatcher struct {
	variant  Variant
	executor *Executor
}

// NewRemixDispatcher builds a RemixDispatcher for cpu, recognising the M
// and F extensions when variant names them (M/F instructions are decoded
// correctly but never transcoded, per isRemixSupported). The C extension is
// not handled: Step always reads a 4-byte word, advances next_pc by 4, and
// takes any word whose low two bits are not 0b11 to be a Remix word.
func NewRemixDispatcher(cpu *CPU, variant Variant) *RemixDispatcher {
	return &RemixDispatcher{variant: variant, executor: NewExecutor(cpu)}
}

// Step inspects the raw word at the current pc: if its low two bits are
// 0b11 it has not been transcoded (or is a genuine RV32I word that Remix
// cannot represent), so it is decoded normally and, if representable,
// rewritten in place; otherwise it is already a Remix word and is unpacked
// directly.
func (d *RemixDispatcher) Step(cpu *CPU) {
	pc := cpu.Transfer()
	raw, ok := cpu.Mem.ReadWord(pc)
	if !ok {
		cpu.RaiseTrap(LoadAccessFault, pc)
		return
	}
	cpu.SetNextPC(pc + 4)

	if raw&0x3 == 0x3 {
		decoded := Decode(raw, d.variant)
		if encoded, supported := remixEncode(decoded); supported {
			if w, ok := cpu.Mem.(UnprotectedWriter); ok {
				w.UnprotectedWriteWord(pc, encoded)
			}
		}
		d.executor.Execute(decoded)
		return
	}
	d.executor.Execute(remixDecode(raw))
}
