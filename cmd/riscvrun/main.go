// Command riscvrun is a demonstration collaborator for the riscv core: it
// loads a flat binary image, drives it through a chosen dispatch path, and
// optionally disassembles it. It depends on the core; the core does not
// depend on it, per the package split the teacher's own cmd/ binaries use
// against their library packages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/badlydrawnrod/riscv32-core"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "riscvrun",
		Short: "Run or disassemble a flat RV32 binary image against the riscv core",
	}

	rootCmd.AddCommand(newRunCmd(), newDisasmCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		memSize     uint32
		steps       int
		extM        bool
		extC        bool
		extF        bool
		dispatch    string
		interactive bool
		dumpRegs    bool
	)

	cmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Load a flat binary image and execute it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}

			mem := riscv.NewBasicMemory(memSize)
			if !mem.LoadImage(image) {
				return riscv.ErrImageTooLarge
			}

			variant := riscv.VariantI
			if extM {
				variant |= riscv.VariantM
			}
			if extC {
				variant |= riscv.VariantC
			}
			if extF {
				variant |= riscv.VariantF
			}

			var restore func()
			if interactive {
				mem.MapTTY(func(b byte) { fmt.Print(string(rune(b))) })
				if r, err := enterRawMode(); err == nil {
					restore = r
				} else {
					fmt.Fprintf(os.Stderr, "riscvrun: could not enter raw mode: %v\n", err)
				}
			}
			if restore != nil {
				defer restore()
			}

			cpu := riscv.NewCPU(mem, variant.Has(riscv.VariantF))

			var d riscv.Dispatcher
			switch dispatch {
			case "normal", "":
				d = riscv.NewDispatcher(cpu, variant)
			case "dcode":
				d = riscv.NewDCodeDispatcher(cpu, variant, riscv.NewDCodeCache(riscv.DefaultDCodeSlots))
			case "remix":
				d = riscv.NewRemixDispatcher(cpu, variant)
			default:
				return fmt.Errorf("unknown --dispatch value %q: want normal, dcode, or remix", dispatch)
			}

			executed := riscv.Run(cpu, d, steps)
			fmt.Fprintf(os.Stderr, "executed %d step(s)\n", executed)

			if cpu.IsTrapped() {
				fmt.Fprintf(os.Stderr, "trapped: %s\n", cpu.TrapCause())
			}
			if dumpRegs {
				fmt.Print(cpu.DumpRegisters())
			}
			return nil
		},
	}

	cmd.Flags().Uint32Var(&memSize, "mem", 1<<20, "Backing memory size in bytes")
	cmd.Flags().IntVar(&steps, "steps", 1_000_000, "Maximum number of steps to execute")
	cmd.Flags().BoolVar(&extM, "m", true, "Enable the M (mul/div) extension")
	cmd.Flags().BoolVar(&extC, "c", true, "Enable the C (compressed) extension")
	cmd.Flags().BoolVar(&extF, "f", false, "Enable the F (single-precision float) extension")
	cmd.Flags().StringVar(&dispatch, "dispatch", "normal", "Dispatch path: normal, dcode, or remix")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Put the host terminal into raw mode and wire the TTY MMIO region to stdout")
	cmd.Flags().BoolVar(&dumpRegs, "dump-registers", false, "Print the register file after execution stops")

	return cmd
}

func newDisasmCmd() *cobra.Command {
	var (
		extM bool
		extC bool
		extF bool
		from uint32
		n    int
	)

	cmd := &cobra.Command{
		Use:   "disasm [image]",
		Short: "Disassemble a flat binary image starting at an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}

			mem := riscv.NewBasicMemory(uint32(len(image)))
			if !mem.LoadImage(image) {
				return riscv.ErrImageTooLarge
			}

			variant := riscv.VariantI
			if extM {
				variant |= riscv.VariantM
			}
			if extC {
				variant |= riscv.VariantC
			}
			if extF {
				variant |= riscv.VariantF
			}

			addr := from
			for i := 0; i < n; i++ {
				word, ok := mem.ReadWord(addr)
				if !ok {
					fmt.Fprintf(os.Stderr, "disasm: read fault at %08x\n", addr)
					break
				}
				size := 4
				if variant.Has(riscv.VariantC) && word&0x3 != 0x3 {
					size = 2
				}
				line := riscv.Disassemble(addr, word, size, variant)
				fmt.Printf("%08x: %-11s %s\n", line.Address, line.HexBytes, line.Mnemonic)
				addr += uint32(size)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&extM, "m", true, "Recognise the M (mul/div) extension")
	cmd.Flags().BoolVar(&extC, "c", true, "Recognise the C (compressed) extension")
	cmd.Flags().BoolVar(&extF, "f", false, "Recognise the F (single-precision float) extension")
	cmd.Flags().Uint32Var(&from, "from", 0, "Address to start disassembling from")
	cmd.Flags().IntVar(&n, "count", 32, "Number of instructions to disassemble")

	return cmd
}

// enterRawMode puts stdin into raw mode for unbuffered TTY passthrough and
// returns a function that restores the prior terminal state.
func enterRawMode() (func(), error) {
	fd := int(os.Stdin.Fd())
	prev, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { term.Restore(fd, prev) }, nil
}
