// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// Emulator state. CPU + console IO channel.
type Emulator struct {
	Verbose  bool        // If set, enables verbose logging.
	*cpu.Cpu             // Reference to the CPU simulation.
	Program  cpu.Program // Program loaded on Reset.
	Patches  []cpu.Patch // Applied to the program on Reset.

	Ascii  bool    // If set, the console is Text rather than Tape.
	Inputs []int64 // Values received before any console input.

	Tape io.Tape  // Decimal console IO channel.
	Text io.Ascii // ASCII console IO channel.
}

// NewEmulator creates a new emulator for a program.
func NewEmulator(prog cpu.Program) (emu *Emulator) {
	emu = &Emulator{
		Program: prog,
	}

	return
}

// Console returns the console IO channel in use.
func (emu *Emulator) Console() (input io.Input, output io.Output) {
	if emu.Ascii {
		return &emu.Text, &emu.Text
	}

	return &emu.Tape, &emu.Tape
}

// Reset loads a fresh copy of the program, and queues the inputs ahead
// of the console.
func (emu *Emulator) Reset() (err error) {
	if len(emu.Program) == 0 {
		err = ErrNoProgram
		return
	}

	input, output := emu.Console()
	output.Rewind()

	emu.Cpu = cpu.NewCpu(emu.Program)
	err = emu.Cpu.Patch(emu.Patches...)
	if err != nil {
		emu.Cpu = nil
		return
	}
	emu.Cpu.SetInput(&io.Chain{io.NewQueue(emu.Inputs...), input})
	emu.Cpu.SetOutput(output)
	emu.Cpu.Verbose = emu.Verbose

	return
}

// Tick performs a single instruction of the emulator.
// Returns true once the program has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu == nil {
		err = ErrNotReset
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	ip := emu.Cpu.Ip()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Err: err}
		}
	}()

	state, err := emu.Cpu.Step()
	if err != nil {
		return
	}

	done = state == cpu.STATE_HALTED
	return
}

// RunToHalt ticks the emulator until the program halts.
// Running out of console input is an error.
func (emu *Emulator) RunToHalt() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
