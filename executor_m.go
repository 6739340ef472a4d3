// executor_m.go - M extension: integer multiply and divide

package riscv

// executeExtension dispatches operations outside the base RV32I set:
// M-extension multiply/divide here, F-extension float ops in
// executor_f.go. Kept separate from Execute's switch so each extension's
// semantics live in one file, mirroring how the base ISA, M and F each get
// their own section in the instruction table this core implements.
func (e *Executor) executeExtension(d Decoded) {
	switch d.Op {
	case OpMul, OpMulh, OpMulhsu, OpMulhu, OpDiv, OpDivu, OpRem, OpRemu:
		e.executeM(d)
	default:
		e.executeF(d)
	}
}

func (e *Executor) executeM(d Decoded) {
	a := e.CPU.ReadX(d.Rs1)
	b := e.CPU.ReadX(d.Rs2)

	switch d.Op {
	case OpMul:
		e.CPU.WriteX(d.Rd, a*b)

	case OpMulh:
		prod := int64(int32(a)) * int64(int32(b))
		e.CPU.WriteX(d.Rd, uint32(uint64(prod)>>32))

	case OpMulhsu:
		prod := int64(int32(a)) * int64(uint64(b))
		e.CPU.WriteX(d.Rd, uint32(uint64(prod)>>32))

	case OpMulhu:
		prod := uint64(a) * uint64(b)
		e.CPU.WriteX(d.Rd, uint32(prod>>32))

	case OpDiv:
		sa, sb := int32(a), int32(b)
		switch {
		case sb == 0:
			e.CPU.WriteX(d.Rd, 0xFFFFFFFF)
		case sa == -0x80000000 && sb == -1:
			e.CPU.WriteX(d.Rd, uint32(sa))
		default:
			e.CPU.WriteX(d.Rd, uint32(sa/sb))
		}

	case OpDivu:
		if b == 0 {
			e.CPU.WriteX(d.Rd, 0xFFFFFFFF)
		} else {
			e.CPU.WriteX(d.Rd, a/b)
		}

	case OpRem:
		sa, sb := int32(a), int32(b)
		switch {
		case sb == 0:
			e.CPU.WriteX(d.Rd, uint32(sa))
		case sa == -0x80000000 && sb == -1:
			e.CPU.WriteX(d.Rd, 0)
		default:
			e.CPU.WriteX(d.Rd, uint32(sa%sb))
		}

	case OpRemu:
		if b == 0 {
			e.CPU.WriteX(d.Rd, a)
		} else {
			e.CPU.WriteX(d.Rd, a%b)
		}
	}
}
