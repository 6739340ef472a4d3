package riscv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalDispatcherStepsAddi(t *testing.T) {
	mem := NewBasicMemory(16)
	code := encodeI(0x13, 0x0, 1, 0, 42) // addi x1, x0, 42
	require.True(t, mem.WriteWord(0, code))
	cpu := NewCPU(mem, false)
	d := NewDispatcher(cpu, VariantI)

	d.Step(cpu)

	assert.Equal(t, uint32(42), cpu.ReadX(1))
	assert.Equal(t, uint32(4), cpu.NextPC())
}

func TestNormalDispatcherHandlesCompressedWhenCEnabled(t *testing.T) {
	mem := NewBasicMemory(16)
	require.True(t, mem.WriteHalfword(0, 0x4505)) // c.li a0, 1
	cpu := NewCPU(mem, false)
	d := NewDispatcher(cpu, VariantIC)

	d.Step(cpu)

	assert.Equal(t, uint32(1), cpu.ReadX(10))
	assert.Equal(t, uint32(2), cpu.NextPC())
}

func TestNormalDispatcherStopsFetchingOnTrap(t *testing.T) {
	mem := NewBasicMemory(0)
	cpu := NewCPU(mem, false)
	d := NewDispatcher(cpu, VariantI)

	d.Step(cpu)

	require.True(t, cpu.IsTrapped())
	assert.Equal(t, LoadAccessFault, cpu.TrapCause().Kind)
}

func TestRunStopsAtStepLimit(t *testing.T) {
	mem := NewBasicMemory(16)
	nop := encodeI(0x13, 0x0, 0, 0, 0)
	for addr := uint32(0); addr < 16; addr += 4 {
		require.True(t, mem.WriteWord(addr, nop))
	}
	cpu := NewCPU(mem, false)
	d := NewDispatcher(cpu, VariantI)

	executed := Run(cpu, d, 3)
	assert.Equal(t, 3, executed)
	assert.False(t, cpu.IsTrapped())
}

func TestRunStopsEarlyOnTrap(t *testing.T) {
	mem := NewBasicMemory(4)
	cpu := NewCPU(mem, false)
	d := NewDispatcher(cpu, VariantI)

	executed := Run(cpu, d, 10)
	assert.Equal(t, 1, executed)
	assert.True(t, cpu.IsTrapped())
}
