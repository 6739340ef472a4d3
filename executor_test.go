package riscv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(memSize uint32) (*CPU, *Executor) {
	cpu := NewCPU(NewBasicMemory(memSize), true)
	return cpu, NewExecutor(cpu)
}

func TestExecuteAdd(t *testing.T) {
	cpu, ex := newTestExecutor(16)
	cpu.WriteX(1, 10)
	cpu.WriteX(2, 32)
	ex.Execute(Decoded{Op: OpAdd, Rd: 3, Rs1: 1, Rs2: 2})
	assert.Equal(t, uint32(42), cpu.ReadX(3))
}

func TestExecuteAddiIntoX0IsDiscarded(t *testing.T) {
	cpu, ex := newTestExecutor(16)
	cpu.WriteX(1, 5)
	ex.Execute(Decoded{Op: OpAddi, Rd: 0, Rs1: 1, Imm: 1})
	assert.Equal(t, uint32(0), cpu.ReadX(0))
}

func TestExecuteStoreLoadRoundTrip(t *testing.T) {
	cpu, ex := newTestExecutor(64)
	cpu.WriteX(1, 0) // base address
	cpu.WriteX(2, 0xcafef00d)
	ex.Execute(Decoded{Op: OpSw, Rs1: 1, Rs2: 2, Imm: 8})
	ex.Execute(Decoded{Op: OpLw, Rd: 3, Rs1: 1, Imm: 8})
	assert.Equal(t, uint32(0xcafef00d), cpu.ReadX(3))
}

func TestExecuteLbSignExtends(t *testing.T) {
	cpu, ex := newTestExecutor(16)
	require.True(t, cpu.Mem.WriteByte(0, 0xff))
	ex.Execute(Decoded{Op: OpLb, Rd: 1, Rs1: 0, Imm: 0})
	assert.Equal(t, uint32(0xffffffff), cpu.ReadX(1))
}

func TestExecuteLbuZeroExtends(t *testing.T) {
	cpu, ex := newTestExecutor(16)
	require.True(t, cpu.Mem.WriteByte(0, 0xff))
	ex.Execute(Decoded{Op: OpLbu, Rd: 1, Rs1: 0, Imm: 0})
	assert.Equal(t, uint32(0xff), cpu.ReadX(1))
}

func TestExecuteLoadAccessFaultRaisesTrap(t *testing.T) {
	cpu, ex := newTestExecutor(4)
	ex.Execute(Decoded{Op: OpLw, Rd: 1, Rs1: 0, Imm: 100})
	require.True(t, cpu.IsTrapped())
	assert.Equal(t, LoadAccessFault, cpu.TrapCause().Kind)
}

func TestExecuteStoreAccessFaultRaisesTrap(t *testing.T) {
	cpu, ex := newTestExecutor(4)
	ex.Execute(Decoded{Op: OpSw, Rs1: 0, Rs2: 1, Imm: 100})
	require.True(t, cpu.IsTrapped())
	assert.Equal(t, StoreAccessFault, cpu.TrapCause().Kind)
}

func TestExecuteBranchTakenSetsNextPC(t *testing.T) {
	cpu, ex := newTestExecutor(64)
	cpu.SetNextPC(0)
	cpu.Transfer() // pc = 0
	cpu.WriteX(1, 5)
	cpu.WriteX(2, 5)
	ex.Execute(Decoded{Op: OpBeq, Rs1: 1, Rs2: 2, Imm: 16})
	assert.Equal(t, uint32(16), cpu.NextPC())
}

func TestExecuteBranchNotTakenLeavesNextPCAlone(t *testing.T) {
	cpu, ex := newTestExecutor(64)
	cpu.SetNextPC(0)
	cpu.Transfer() // pc = 0
	cpu.SetNextPC(4)
	cpu.WriteX(1, 5)
	cpu.WriteX(2, 6)
	ex.Execute(Decoded{Op: OpBeq, Rs1: 1, Rs2: 2, Imm: 16})
	assert.Equal(t, uint32(4), cpu.NextPC())
}

func TestExecuteJalWritesReturnAddressAndSetsNextPC(t *testing.T) {
	cpu, ex := newTestExecutor(64)
	cpu.SetNextPC(40)
	cpu.Transfer() // pc = 40
	ex.Execute(Decoded{Op: OpJal, Rd: 1, Imm: 8})
	assert.Equal(t, uint32(44), cpu.ReadX(1))
	assert.Equal(t, uint32(48), cpu.NextPC())
}

func TestExecuteEcallRaisesEnvironmentCall(t *testing.T) {
	cpu, ex := newTestExecutor(16)
	ex.Execute(Decoded{Op: OpEcall})
	require.True(t, cpu.IsTrapped())
	assert.Equal(t, EnvironmentCallFromMMode, cpu.TrapCause().Kind)
}

func TestExecuteIllegalRaisesIllegalInstruction(t *testing.T) {
	cpu, ex := newTestExecutor(16)
	ex.Execute(Decoded{Op: OpIllegal, Code: 0xdeadbeef})
	require.True(t, cpu.IsTrapped())
	assert.Equal(t, IllegalInstruction, cpu.TrapCause().Kind)
	assert.Equal(t, uint32(0xdeadbeef), cpu.TrapCause().Context)
}
