package riscv

import "fmt"

// TrapKind is the closed set of trap causes the core can raise. The
// enumeration matches the RISC-V trap-cause space; kinds the core never
// raises itself (interrupts, page faults) exist so a richer memory backend
// has somewhere to report them.
type TrapKind int

const (
	// InstructionAddressMisaligned is reserved for backends that enforce
	// instruction alignment; the core itself never raises it.
	InstructionAddressMisaligned TrapKind = iota
	InstructionAccessFault
	IllegalInstruction
	Breakpoint
	LoadAddressMisaligned
	LoadAccessFault
	StoreAddressMisaligned
	StoreAccessFault
	EnvironmentCallFromMMode
	InstructionPageFault
	LoadPageFault
	StorePageFault
	MachineSoftwareInterrupt
	MachineTimerInterrupt
	MachineExternalInterrupt
)

var trapNames = map[TrapKind]string{
	InstructionAddressMisaligned: "InstructionAddressMisaligned",
	InstructionAccessFault:       "InstructionAccessFault",
	IllegalInstruction:           "IllegalInstruction",
	Breakpoint:                   "Breakpoint",
	LoadAddressMisaligned:        "LoadAddressMisaligned",
	LoadAccessFault:              "LoadAccessFault",
	StoreAddressMisaligned:       "StoreAddressMisaligned",
	StoreAccessFault:             "StoreAccessFault",
	EnvironmentCallFromMMode:     "EnvironmentCallFromMMode",
	InstructionPageFault:         "InstructionPageFault",
	LoadPageFault:                "LoadPageFault",
	StorePageFault:               "StorePageFault",
	MachineSoftwareInterrupt:     "MachineSoftwareInterrupt",
	MachineTimerInterrupt:        "MachineTimerInterrupt",
	MachineExternalInterrupt:     "MachineExternalInterrupt",
}

func (k TrapKind) String() string {
	if name, ok := trapNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TrapKind(%d)", int(k))
}

// Trap is the architectural core's trap state: a kind plus a context payload
// whose meaning depends on the kind (the offending instruction word for
// IllegalInstruction, the offending address for access/page faults, unused
// for everything else).
type Trap struct {
	Kind    TrapKind
	Context uint32
}

func (t Trap) String() string {
	return fmt.Sprintf("%s(0x%08X)", t.Kind, t.Context)
}
