// executor.go - RV32I instruction semantics against a *CPU

package riscv

// Executor implements every operation Decode/DecodeCompressed can produce,
// mutating the CPU it wraps. There is exactly one Executor type: rather
// than the source's mixin-by-inheritance capability layering, the core
// struct (*CPU) already implements
// every capability an operation needs (registers, memory, traps, PC pair),
// so the executor is simply a set of methods taking a *CPU.
type Executor struct {
	CPU *CPU
}

// NewExecutor wraps cpu in an Executor.
func NewExecutor(cpu *CPU) *Executor {
	return &Executor{CPU: cpu}
}

// Execute runs the single operation d describes. It is the one entry point
// the dispatcher calls; every base RV32I Op has a case here, and every
// other Op falls through the default case to executeExtension, which hands
// it to the M handlers in executor_m.go or the F handlers in executor_f.go.
func (e *Executor) Execute(d Decoded) {
	switch d.Op {
	case OpAdd:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)+e.CPU.ReadX(d.Rs2))
	case OpSub:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)-e.CPU.ReadX(d.Rs2))
	case OpSll:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)<<(e.CPU.ReadX(d.Rs2)&0x1f))
	case OpSrl:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)>>(e.CPU.ReadX(d.Rs2)&0x1f))
	case OpSra:
		e.CPU.WriteX(d.Rd, uint32(int32(e.CPU.ReadX(d.Rs1))>>(e.CPU.ReadX(d.Rs2)&0x1f)))
	case OpAnd:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)&e.CPU.ReadX(d.Rs2))
	case OpOr:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)|e.CPU.ReadX(d.Rs2))
	case OpXor:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)^e.CPU.ReadX(d.Rs2))
	case OpSlt:
		e.CPU.WriteX(d.Rd, boolToWord(int32(e.CPU.ReadX(d.Rs1)) < int32(e.CPU.ReadX(d.Rs2))))
	case OpSltu:
		e.CPU.WriteX(d.Rd, boolToWord(e.CPU.ReadX(d.Rs1) < e.CPU.ReadX(d.Rs2)))

	case OpAddi:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)+d.Imm)
	case OpAndi:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)&d.Imm)
	case OpOri:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)|d.Imm)
	case OpXori:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)^d.Imm)
	case OpSlli:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)<<(d.Imm&0x1f))
	case OpSrli:
		e.CPU.WriteX(d.Rd, e.CPU.ReadX(d.Rs1)>>(d.Imm&0x1f))
	case OpSrai:
		e.CPU.WriteX(d.Rd, uint32(int32(e.CPU.ReadX(d.Rs1))>>(d.Imm&0x1f)))
	case OpSlti:
		e.CPU.WriteX(d.Rd, boolToWord(int32(e.CPU.ReadX(d.Rs1)) < int32(d.Imm)))
	case OpSltiu:
		e.CPU.WriteX(d.Rd, boolToWord(e.CPU.ReadX(d.Rs1) < d.Imm))

	case OpLb:
		e.load(d, 1, true)
	case OpLh:
		e.load(d, 2, true)
	case OpLw:
		e.load(d, 4, true)
	case OpLbu:
		e.load(d, 1, false)
	case OpLhu:
		e.load(d, 2, false)

	case OpSb:
		e.store(d, 1)
	case OpSh:
		e.store(d, 2)
	case OpSw:
		e.store(d, 4)

	case OpBeq:
		e.branch(d, e.CPU.ReadX(d.Rs1) == e.CPU.ReadX(d.Rs2))
	case OpBne:
		e.branch(d, e.CPU.ReadX(d.Rs1) != e.CPU.ReadX(d.Rs2))
	case OpBlt:
		e.branch(d, int32(e.CPU.ReadX(d.Rs1)) < int32(e.CPU.ReadX(d.Rs2)))
	case OpBge:
		e.branch(d, int32(e.CPU.ReadX(d.Rs1)) >= int32(e.CPU.ReadX(d.Rs2)))
	case OpBltu:
		e.branch(d, e.CPU.ReadX(d.Rs1) < e.CPU.ReadX(d.Rs2))
	case OpBgeu:
		e.branch(d, e.CPU.ReadX(d.Rs1) >= e.CPU.ReadX(d.Rs2))

	case OpJal:
		pc := e.CPU.PC()
		e.CPU.WriteX(d.Rd, pc+instructionSize(d))
		e.CPU.SetNextPC(pc + d.Imm)
	case OpJalr:
		pc := e.CPU.PC()
		snapshot := e.CPU.ReadX(d.Rs1)
		e.CPU.WriteX(d.Rd, pc+instructionSize(d))
		e.CPU.SetNextPC((snapshot + d.Imm) &^ 1)

	case OpLui:
		e.CPU.WriteX(d.Rd, d.Imm)
	case OpAuipc:
		e.CPU.WriteX(d.Rd, e.CPU.PC()+d.Imm)

	case OpEcall:
		e.CPU.RaiseTrap(EnvironmentCallFromMMode, 0)
	case OpEbreak:
		e.CPU.RaiseTrap(Breakpoint, 0)
	case OpFence:
		// no-op: single-threaded, nothing to order against.

	case OpIllegal:
		e.CPU.RaiseTrap(IllegalInstruction, d.Code)

	default:
		e.executeExtension(d)
	}
}

// instructionSize is the width of the instruction d was decoded from: 2 for
// a compressed word, 4 otherwise. A Decoded with no raw Code (built by hand
// or unpacked from a Remix word) counts as full width.
func instructionSize(d Decoded) uint32 {
	if d.Code != 0 && d.Code&0x3 != 0x3 {
		return 2
	}
	return 4
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (e *Executor) load(d Decoded, size int, signed bool) {
	addr := e.CPU.ReadX(d.Rs1) + d.Imm
	var val uint32
	switch size {
	case 1:
		b, ok := e.CPU.Mem.ReadByte(addr)
		if !ok {
			e.CPU.RaiseTrap(LoadAccessFault, addr)
			return
		}
		if signed {
			val = uint32(int32(int8(b)))
		} else {
			val = uint32(b)
		}
	case 2:
		h, ok := e.CPU.Mem.ReadHalfword(addr)
		if !ok {
			e.CPU.RaiseTrap(LoadAccessFault, addr)
			return
		}
		if signed {
			val = uint32(int32(int16(h)))
		} else {
			val = uint32(h)
		}
	case 4:
		w, ok := e.CPU.Mem.ReadWord(addr)
		if !ok {
			e.CPU.RaiseTrap(LoadAccessFault, addr)
			return
		}
		val = w
	}
	e.CPU.WriteX(d.Rd, val)
}

func (e *Executor) store(d Decoded, size int) {
	addr := e.CPU.ReadX(d.Rs1) + d.Imm
	val := e.CPU.ReadX(d.Rs2)
	var ok bool
	switch size {
	case 1:
		ok = e.CPU.Mem.WriteByte(addr, byte(val))
	case 2:
		ok = e.CPU.Mem.WriteHalfword(addr, uint16(val))
	case 4:
		ok = e.CPU.Mem.WriteWord(addr, val)
	}
	if !ok {
		e.CPU.RaiseTrap(StoreAccessFault, addr)
	}
}

func (e *Executor) branch(d Decoded, taken bool) {
	if taken {
		e.CPU.SetNextPC(e.CPU.PC() + d.Imm)
	}
}
