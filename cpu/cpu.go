// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/intcode/io"
)

// Cpu is the execution context of a single Intcode program.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ticks int // Instructions executed.

	memory *Memory
	ip     int64 // Instruction pointer.
	base   int64 // Relative base.
	halted bool
	fault  error
	pause  bool

	output    int64 // Pending output.
	hasOutput bool

	input io.Input
	out   io.Output
}

// NewCpu creates a CPU with a copy of the program loaded at address 0.
// Input comes from an empty queue; outputs are only counted.
func NewCpu(prog Program) (cpu *Cpu) {
	cpu = &Cpu{
		memory: NewMemory(prog),
		input:  io.NewQueue(),
		out:    &io.Discard{},
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("%6s: %d\n", "ip", cpu.ip)
	text += fmt.Sprintf("%6s: %d\n", "base", cpu.base)
	text += fmt.Sprintf("%6s: %d\n", "ticks", cpu.Ticks)
	text += fmt.Sprintf("%6s: %v\n", "halted", cpu.halted)
	text += fmt.Sprintf("%6s: %v\n", "pause", cpu.pause)
	if cpu.hasOutput {
		text += fmt.Sprintf("%6s: %d\n", "output", cpu.output)
	} else {
		text += fmt.Sprintf("%6s: -\n", "output")
	}
	if cpu.fault != nil {
		text += fmt.Sprintf("%6s: %v\n", "fault", cpu.fault)
	}

	return
}

// Input returns the input endpoint.
func (cpu *Cpu) Input() io.Input {
	return cpu.input
}

// SetInput rebinds the input endpoint. Execution state is untouched.
func (cpu *Cpu) SetInput(input io.Input) {
	cpu.input = input
}

// Output returns the output endpoint.
func (cpu *Cpu) Output() io.Output {
	return cpu.out
}

// SetOutput rebinds the output endpoint. Execution state is untouched.
func (cpu *Cpu) SetOutput(output io.Output) {
	cpu.out = output
}

// SetInputs replaces the input endpoint with a queue of the values.
func (cpu *Cpu) SetInputs(values ...int64) {
	cpu.input = io.NewQueue(values...)
}

// PushInput appends values to the input queue, in order.
// If the input endpoint is not a queue, the values are received from a
// queue chained ahead of it.
func (cpu *Cpu) PushInput(values ...int64) (err error) {
	switch input := cpu.input.(type) {
	case *io.Queue:
		return input.Push(values...)
	case *io.Chain:
		if len(*input) > 0 {
			if queue, ok := (*input)[0].(*io.Queue); ok {
				return queue.Push(values...)
			}
		}
	}

	cpu.input = &io.Chain{io.NewQueue(values...), cpu.input}
	return
}

// Patch writes each patch to memory, in order.
func (cpu *Cpu) Patch(patches ...Patch) (err error) {
	for _, patch := range patches {
		err = cpu.memory.Write(patch.Address, patch.Value)
		if err != nil {
			return
		}
	}

	return
}

// SetPauseOnOutput sets whether Run returns after each output.
func (cpu *Cpu) SetPauseOnOutput(pause bool) {
	cpu.pause = pause
}

// Halted returns true once the halt instruction has executed.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// Fault returns the fault that stopped the CPU, if any.
func (cpu *Cpu) Fault() error {
	return cpu.fault
}

// Ip returns the instruction pointer.
func (cpu *Cpu) Ip() int64 {
	return cpu.ip
}

// RelativeBase returns the relative base.
func (cpu *Cpu) RelativeBase() int64 {
	return cpu.base
}

// Peek returns the value at addr, without materialising the cell.
func (cpu *Cpu) Peek(addr int64) (value int64) {
	value, _ = cpu.memory.Peek(addr)
	return
}

// Poke sets the value at addr, for patching a program before it runs.
func (cpu *Cpu) Poke(addr int64, value int64) (err error) {
	return cpu.memory.Write(addr, value)
}

// Memory returns a dense snapshot of the memory.
func (cpu *Cpu) Memory() (Program, error) {
	return cpu.memory.Snapshot()
}

// HasOutput returns true if an output is pending.
func (cpu *Cpu) HasOutput() bool {
	return cpu.hasOutput
}

// TakeOutput returns and clears the pending output.
func (cpu *Cpu) TakeOutput() (value int64, err error) {
	if !cpu.hasOutput {
		err = ErrOutputUnavailable
		return
	}

	value = cpu.output
	cpu.hasOutput = false
	return
}

// Clone returns an independent copy of the CPU. A queue input is copied,
// any other endpoint is shared by both CPUs.
func (cpu *Cpu) Clone() (dup *Cpu) {
	dup = &Cpu{}
	*dup = *cpu
	dup.memory = cpu.memory.Clone()

	if queue, ok := cpu.input.(*io.Queue); ok {
		dup.input = queue.Clone()
	}

	return
}

// Step executes a single instruction.
//
// If the input endpoint has no value, the instruction pointer is left on
// the input instruction and STATE_AWAIT is returned with the input error,
// so execution can resume once more input is available.
// Any other failure is a fault: the CPU stops and every later Step returns
// the same error.
func (cpu *Cpu) Step() (state State, err error) {
	if cpu.fault != nil {
		return STATE_FAULTED, cpu.fault
	}

	if cpu.halted {
		return STATE_HALTED, nil
	}

	ip := cpu.ip

	word, err := cpu.memory.Read(ip)
	if err != nil {
		cpu.fault = &ErrFault{Ip: ip, Err: err}
		return STATE_FAULTED, cpu.fault
	}
	code := Code(word)
	cpu.ip++

	if cpu.Verbose {
		log.Printf("%04d: %v", ip, code)
	}

	state, err = cpu.execute(code)
	if err != nil {
		if errors.Is(err, io.ErrInputExhausted) {
			cpu.ip = ip
			state = STATE_AWAIT
			return
		}

		cpu.fault = &ErrFault{Ip: ip, Code: code, Err: err}
		if cpu.Verbose {
			log.Printf("cpu: %v", cpu.fault)
		}
		return STATE_FAULTED, cpu.fault
	}

	cpu.Ticks++

	return
}

// Run executes instructions until the CPU halts, awaits input, faults, or,
// with pause-on-output enabled, an output is pending.
func (cpu *Cpu) Run() (state State, err error) {
	for !(cpu.pause && cpu.hasOutput) {
		state, err = cpu.Step()
		if err != nil {
			return
		}
		if state == STATE_HALTED {
			return
		}
	}

	state = STATE_PAUSED
	return
}

// Next runs until an output is pending, and takes it.
// A pending output from an earlier Run is returned first.
// Returns ErrHalted if the program halts without producing an output.
func (cpu *Cpu) Next() (value int64, err error) {
	pause := cpu.pause
	cpu.pause = true
	defer func() { cpu.pause = pause }()

	state, err := cpu.Run()
	if err != nil {
		return
	}

	if state == STATE_HALTED {
		err = ErrHalted
		return
	}

	return cpu.TakeOutput()
}

// RunToHalt runs until the program halts, and returns every output
// produced on the way.
func (cpu *Cpu) RunToHalt() (outputs []int64, err error) {
	for {
		var value int64
		value, err = cpu.Next()
		if errors.Is(err, ErrHalted) {
			err = nil
			return
		}
		if err != nil {
			return
		}
		outputs = append(outputs, value)
	}
}

// readOperand consumes a parameter and resolves its value.
func (cpu *Cpu) readOperand(mode Mode) (value int64, err error) {
	raw, err := cpu.memory.Read(cpu.ip)
	if err != nil {
		return
	}
	cpu.ip++

	switch mode {
	case MODE_POSITION:
		value, err = cpu.memory.Read(raw)
	case MODE_IMMEDIATE:
		value = raw
	case MODE_RELATIVE:
		value, err = cpu.memory.Read(raw + cpu.base)
	default:
		err = errors.Join(ErrInvalidOpcode, ErrModeInvalid)
	}

	return
}

// writeOperand consumes a parameter and stores the value at its address.
func (cpu *Cpu) writeOperand(mode Mode, value int64) (err error) {
	raw, err := cpu.memory.Read(cpu.ip)
	if err != nil {
		return
	}
	cpu.ip++

	switch mode {
	case MODE_POSITION:
		err = cpu.memory.Write(raw, value)
	case MODE_RELATIVE:
		err = cpu.memory.Write(raw+cpu.base, value)
	case MODE_IMMEDIATE:
		err = ErrInvalidWrite
	default:
		err = errors.Join(ErrInvalidOpcode, ErrModeInvalid)
	}

	return
}

// execute executes a single decoded instruction. The instruction pointer
// is already past the instruction word.
func (cpu *Cpu) execute(code Code) (state State, err error) {
	op := code.Op()

	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		var a, b int64
		a, err = cpu.readOperand(code.Mode(1))
		if err != nil {
			return
		}
		b, err = cpu.readOperand(code.Mode(2))
		if err != nil {
			return
		}
		var value int64
		switch op {
		case OP_ADD:
			value = a + b
		case OP_MUL:
			value = a * b
		case OP_LT:
			if a < b {
				value = 1
			}
		case OP_EQ:
			if a == b {
				value = 1
			}
		}
		err = cpu.writeOperand(code.Mode(3), value)
	case OP_IN:
		if cpu.input == nil {
			err = io.ErrInputExhausted
			return
		}
		var value int64
		value, err = cpu.input.Receive()
		if err != nil {
			return
		}
		if cpu.Verbose {
			log.Printf("cpu: input %d", value)
		}
		err = cpu.writeOperand(code.Mode(1), value)
	case OP_OUT:
		var value int64
		value, err = cpu.readOperand(code.Mode(1))
		if err != nil {
			return
		}
		if cpu.out != nil {
			err = cpu.out.Send(value)
			if err != nil {
				return
			}
		}
		if cpu.Verbose {
			log.Printf("cpu: output %d", value)
		}
		cpu.output = value
		cpu.hasOutput = true
		if cpu.pause {
			state = STATE_PAUSED
		}
	case OP_JT, OP_JF:
		var a, target int64
		a, err = cpu.readOperand(code.Mode(1))
		if err != nil {
			return
		}
		target, err = cpu.readOperand(code.Mode(2))
		if err != nil {
			return
		}
		if (a != 0) == (op == OP_JT) {
			cpu.ip = target
		}
	case OP_ARB:
		var offset int64
		offset, err = cpu.readOperand(code.Mode(1))
		if err != nil {
			return
		}
		cpu.base += offset
	case OP_HALT:
		cpu.halted = true
		state = STATE_HALTED
	default:
		err = errors.Join(ErrInvalidOpcode, ErrOpcode(code))
	}

	return
}
