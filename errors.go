// errors.go - sentinel errors for failures outside the trap taxonomy
//
// These are plain package-level sentinels rather than custom error types,
// following the sentinel-error style used elsewhere in the wider corpus
// (e.g. KTStephano-GVM/vm/vm.go's errProgramFinished family): none of the
// paths below need to carry structured context beyond a message, so a
// wrapped type would add ceremony without adding information.

package riscv

import "errors"

var (
	// ErrImageTooLarge reports an image that does not fit in the backend's
	// declared size. BasicMemory.LoadImage signals that case by returning
	// false; cmd/riscvrun returns this error for it.
	ErrImageTooLarge = errors.New("riscv: image too large for backing memory")

	// ErrNoSuchRegion is reserved for callers that look up a previously
	// registered IORegion by address and find none covering it.
	ErrNoSuchRegion = errors.New("riscv: no IO region registered at address")
)
