// dcode.go - pre-decoded operation cache ("DCode" path)

package riscv

// DefaultDCodeSlots is the default number of pre-decoded operation slots,
// each covering four bytes of instruction address space.
const DefaultDCodeSlots = 8192

// DCodeCache is an array of pre-decoded operation records, indexed by
// instruction address / 4. Every slot starts at OpFetchDecodeExecute,
// meaning "not yet decoded"; DCodeDispatcher.Step fills a slot lazily on
// first visit. Record reuses Decoded: its Op field is the tag, its operand
// fields are the payload, exactly mirroring the tagged-union shape the
// cache specifies.
//
// Invariant: the cache is coherent with the address space only as long as
// no self-modifying writes occur through the ordinary memory interface.
// Writes do not invalidate a filled slot — self-modifying code targeting a
// DCode-cached region is unsupported, not merely unoptimised.
type DCodeCache struct {
	slots []Decoded
}

// NewDCodeCache allocates a cache with n slots, every one initially
// FetchDecodeExecute.
func NewDCodeCache(n int) *DCodeCache {
	return &DCodeCache{slots: make([]Decoded, n)}
}

// DCodeDispatcher is the pre-decoded alternate to NormalDispatcher: the
// first visit to a code address pays the ordinary decode cost and stores
// the result; every subsequent visit to the same address dispatches off
// the stored tag directly.
type DCodeDispatcher struct {
	variant  Variant
	executor *Executor
	cache    *DCodeCache
}

// NewDCodeDispatcher builds a DCodeDispatcher over cache for cpu,
// recognising only the extensions named by variant.
func NewDCodeDispatcher(cpu *CPU, variant Variant, cache *DCodeCache) *DCodeDispatcher {
	return &DCodeDispatcher{variant: variant, executor: NewExecutor(cpu), cache: cache}
}

// Step fetches one instruction, consults the cache slot for its address,
// fills the slot on first visit, and dispatches the (now cached) record.
func (d *DCodeDispatcher) Step(cpu *CPU) {
	word := cpu.Fetch()
	if cpu.IsTrapped() {
		return
	}
	pc := cpu.PC()

	slot := int(pc/4) % len(d.cache.slots)
	rec := d.cache.slots[slot]
	if rec.Op == OpFetchDecodeExecute {
		if d.variant.Has(VariantC) && word&0x3 != 0x3 {
			rec = DecodeCompressed(uint16(word), d.variant)
		} else {
			rec = Decode(word, d.variant)
		}
		d.cache.slots[slot] = rec
	}
	d.executor.Execute(rec)
}
