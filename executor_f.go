// executor_f.go - F extension: single-precision floating point

package riscv

import "math"

func (e *Executor) executeF(d Decoded) {
	switch d.Op {
	case OpFlw:
		addr := e.CPU.ReadX(d.Rs1) + d.Imm
		w, ok := e.CPU.Mem.ReadWord(addr)
		if !ok {
			e.CPU.RaiseTrap(LoadAccessFault, addr)
			return
		}
		e.CPU.WriteF(d.Rd, math.Float32frombits(w))

	case OpFsw:
		addr := e.CPU.ReadX(d.Rs1) + d.Imm
		w := math.Float32bits(e.CPU.ReadF(d.Rs2))
		if !e.CPU.Mem.WriteWord(addr, w) {
			e.CPU.RaiseTrap(StoreAccessFault, addr)
		}

	case OpFaddS:
		e.CPU.WriteF(d.Rd, e.CPU.ReadF(d.Rs1)+e.CPU.ReadF(d.Rs2))
	case OpFsubS:
		e.CPU.WriteF(d.Rd, e.CPU.ReadF(d.Rs1)-e.CPU.ReadF(d.Rs2))
	case OpFmulS:
		e.CPU.WriteF(d.Rd, e.CPU.ReadF(d.Rs1)*e.CPU.ReadF(d.Rs2))
	case OpFdivS:
		e.CPU.WriteF(d.Rd, e.CPU.ReadF(d.Rs1)/e.CPU.ReadF(d.Rs2))
	case OpFsqrtS:
		e.CPU.WriteF(d.Rd, float32(math.Sqrt(float64(e.CPU.ReadF(d.Rs1)))))

	case OpFmaddS:
		e.CPU.WriteF(d.Rd, e.CPU.ReadF(d.Rs1)*e.CPU.ReadF(d.Rs2)+e.CPU.ReadF(d.Rs3))
	case OpFmsubS:
		e.CPU.WriteF(d.Rd, e.CPU.ReadF(d.Rs1)*e.CPU.ReadF(d.Rs2)-e.CPU.ReadF(d.Rs3))
	case OpFnmsubS:
		e.CPU.WriteF(d.Rd, -(e.CPU.ReadF(d.Rs1)*e.CPU.ReadF(d.Rs2))+e.CPU.ReadF(d.Rs3))
	case OpFnmaddS:
		e.CPU.WriteF(d.Rd, -(e.CPU.ReadF(d.Rs1)*e.CPU.ReadF(d.Rs2))-e.CPU.ReadF(d.Rs3))

	case OpFminS:
		e.CPU.WriteF(d.Rd, fMinS(e.CPU.ReadF(d.Rs1), e.CPU.ReadF(d.Rs2)))
	case OpFmaxS:
		e.CPU.WriteF(d.Rd, fMaxS(e.CPU.ReadF(d.Rs1), e.CPU.ReadF(d.Rs2)))

	case OpFleS:
		e.CPU.WriteX(d.Rd, boolToWord(e.CPU.ReadF(d.Rs1) <= e.CPU.ReadF(d.Rs2)))
	case OpFltS:
		e.CPU.WriteX(d.Rd, boolToWord(e.CPU.ReadF(d.Rs1) < e.CPU.ReadF(d.Rs2)))
	case OpFeqS:
		e.CPU.WriteX(d.Rd, boolToWord(e.CPU.ReadF(d.Rs1) == e.CPU.ReadF(d.Rs2)))

	case OpFsgnjS:
		e.CPU.WriteF(d.Rd, fSgnj(e.CPU.ReadF(d.Rs1), e.CPU.ReadF(d.Rs2), false, false))
	case OpFsgnjnS:
		e.CPU.WriteF(d.Rd, fSgnj(e.CPU.ReadF(d.Rs1), e.CPU.ReadF(d.Rs2), true, false))
	case OpFsgnjxS:
		e.CPU.WriteF(d.Rd, fSgnj(e.CPU.ReadF(d.Rs1), e.CPU.ReadF(d.Rs2), false, true))

	case OpFcvtWS:
		e.CPU.WriteX(d.Rd, uint32(fCvtW(e.CPU.ReadF(d.Rs1))))
	case OpFcvtWuS:
		e.CPU.WriteX(d.Rd, fCvtWu(e.CPU.ReadF(d.Rs1)))
	case OpFcvtSW:
		e.CPU.WriteF(d.Rd, float32(int32(e.CPU.ReadX(d.Rs1))))
	case OpFcvtSWu:
		e.CPU.WriteF(d.Rd, float32(e.CPU.ReadX(d.Rs1)))

	case OpFmvXW:
		e.CPU.WriteX(d.Rd, math.Float32bits(e.CPU.ReadF(d.Rs1)))
	case OpFmvWX:
		e.CPU.WriteF(d.Rd, math.Float32frombits(e.CPU.ReadX(d.Rs1)))

	case OpFclassS:
		e.CPU.WriteX(d.Rd, fClassS(e.CPU.ReadF(d.Rs1)))
	}
}

// fMinS and fMaxS implement the IEEE-754-2008 minNum/maxNum convention the
// F extension specifies: a NaN operand loses to any non-NaN operand, and
// two NaN operands produce a quiet NaN.
func fMinS(a, b float32) float32 {
	if math.IsNaN(float64(a)) && math.IsNaN(float64(b)) {
		return float32(math.NaN())
	}
	if math.IsNaN(float64(a)) {
		return b
	}
	if math.IsNaN(float64(b)) {
		return a
	}
	if a < b {
		return a
	}
	return b
}

func fMaxS(a, b float32) float32 {
	if math.IsNaN(float64(a)) && math.IsNaN(float64(b)) {
		return float32(math.NaN())
	}
	if math.IsNaN(float64(a)) {
		return b
	}
	if math.IsNaN(float64(b)) {
		return a
	}
	if a > b {
		return a
	}
	return b
}

// fSgnj assembles a result whose magnitude comes from rs1 and whose sign
// comes from rs2 (sgnj), the inverse of rs2's sign (sgnjn), or the XOR of
// both signs (sgnjx).
func fSgnj(rs1, rs2 float32, negate, xor bool) float32 {
	a := math.Float32bits(rs1)
	b := math.Float32bits(rs2)
	magnitude := a &^ (1 << 31)

	sign := b & (1 << 31)
	if negate {
		sign ^= 1 << 31
	}
	if xor {
		sign = (a ^ b) & (1 << 31)
	}
	return math.Float32frombits(magnitude | sign)
}

func fCvtW(v float32) int32 {
	if math.IsNaN(float64(v)) || v >= float32(math.MaxInt32) {
		return math.MaxInt32
	}
	if v <= float32(math.MinInt32) {
		return math.MinInt32
	}
	return int32(v)
}

func fCvtWu(v float32) uint32 {
	if math.IsNaN(float64(v)) || v >= float32(math.MaxUint32) {
		return math.MaxUint32
	}
	if v <= 0 {
		return 0
	}
	return uint32(v)
}

// fClassS sets one bit identifying v's IEEE-754 class, computed directly
// from its bit pattern rather than through an intermediate numeric cast
// (the source's Fclass_s does the latter; the RISC-V classification bits
// are defined over the bit pattern itself).
func fClassS(v float32) uint32 {
	bits := math.Float32bits(v)
	sign := bits>>31 != 0
	exp := (bits >> 23) & 0xff
	frac := bits & 0x7fffff

	switch {
	case exp == 0xff && frac == 0 && sign:
		return 1 << 0 // -inf
	case exp == 0xff && frac == 0 && !sign:
		return 1 << 7 // +inf
	case exp == 0xff && frac != 0:
		if frac&0x400000 != 0 {
			return 1 << 9 // quiet NaN
		}
		return 1 << 8 // signalling NaN
	case exp == 0 && frac == 0 && sign:
		return 1 << 3 // -0
	case exp == 0 && frac == 0 && !sign:
		return 1 << 4 // +0
	case exp == 0 && frac != 0 && sign:
		return 1 << 2 // -subnormal
	case exp == 0 && frac != 0 && !sign:
		return 1 << 5 // +subnormal
	case sign:
		return 1 << 1 // -normal
	default:
		return 1 << 6 // +normal
	}
}
