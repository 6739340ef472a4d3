// doc.go - package overview for riscv32-core

/*
Package riscv implements an embeddable RV32I/M/C/F interpreter core.

The core is layered, leaves-first:

  - Memory: a byte/halfword/word addressable backend (this package defines
    the interface; BasicMemory is the reference implementation with
    memory-mapped I/O support).
  - CPU: the architectural core — program counter pair, integer and float
    register files, trap state — layered on top of a Memory.
  - Executor: per-operation handlers that mutate a CPU's state to implement
    RV32I/M/C/F semantics.
  - Dispatcher: decodes a fetched instruction word and invokes the matching
    Executor handler, or the illegal-instruction hook. Dispatcher is the
    interface; three implementations exist: the normal masked-pattern
    decoder (NormalDispatcher), the pre-decoded cache (DCodeDispatcher),
    which trades first-visit decode cost for a typed-switch dispatch on
    every subsequent visit to the same address, and RemixDispatcher, which
    rewrites supported RV32I words in place into a one-level-dispatch
    encoding.

Run drives the fetch-dispatch-execute cycle for a caller-supplied
instruction budget or until the CPU traps. Cancellation and preemption are
the caller's responsibility: give Run a small budget and call it again.

This package does not load images from disk, does not provide a CLI, and
does not render anything — those are the job of a host program (see
cmd/riscvrun for a minimal one).
*/
package riscv
