// dispatcher.go - the normal masked-equality decode/dispatch path

package riscv

// Dispatcher decodes one fetched instruction word and invokes the handler
// that implements it. Step fetches its own instruction from cpu (via
// cpu.Fetch) so that a caller driving a run loop never has to decide which
// dispatcher variant owns the fetch step.
type Dispatcher interface {
	Step(cpu *CPU)
}

// NormalDispatcher is the reference Dispatcher: every step re-decodes the
// fetched word from scratch with Decode/DecodeCompressed. It never caches
// anything, so it tolerates self-modifying code that the pre-decoded cache
// (DCodeDispatcher) cannot.
type NormalDispatcher struct {
	variant  Variant
	executor *Executor
}

// NewDispatcher builds a NormalDispatcher for cpu, recognising only the
// extensions named by variant.
func NewDispatcher(cpu *CPU, variant Variant) *NormalDispatcher {
	return &NormalDispatcher{variant: variant, executor: NewExecutor(cpu)}
}

// Step fetches, decodes and executes exactly one instruction. If fetch
// itself faults (memory backend signalled a bad read), the CPU is already
// trapped and Step returns without decoding anything.
func (d *NormalDispatcher) Step(cpu *CPU) {
	word := cpu.Fetch()
	if cpu.IsTrapped() {
		return
	}

	var decoded Decoded
	if d.variant.Has(VariantC) && word&0x3 != 0x3 {
		decoded = DecodeCompressed(uint16(word), d.variant)
	} else {
		decoded = Decode(word, d.variant)
	}
	d.executor.Execute(decoded)
}
