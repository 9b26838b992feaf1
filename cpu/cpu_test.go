package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/intcode/io"
)

const quine = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"

func mustParse(t *testing.T, text string) Program {
	prog, err := ParseProgram(text)
	require.NoError(t, err)
	return prog
}

func TestCpuMemory(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		program  string
		expected Program
	}){
		{"self_add", "1,0,0,0,99", Program{2, 0, 0, 0, 99}},
		{"add_mul", "1,9,10,3,2,3,11,0,99,30,40,50", Program{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}},
		{"mul", "2,3,0,3,99", Program{2, 3, 0, 6, 99}},
		{"mul_extend", "2,4,4,5,99,0", Program{2, 4, 4, 5, 99, 9801}},
		{"self_modify", "1,1,1,4,99,5,6,0,99", Program{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{"immediate", "1002,4,3,4,33", Program{1002, 4, 3, 4, 99}},
		{"negative", "1101,100,-1,4,0", Program{1101, 100, -1, 4, 99}},
	}

	for _, entry := range table {
		cpu := NewCpu(mustParse(t, entry.program))
		state, err := cpu.Run()
		assert.NoError(err, entry.name)
		assert.Equal(STATE_HALTED, state, entry.name)
		assert.True(cpu.Halted(), entry.name)
		mem, err := cpu.Memory()
		assert.NoError(err, entry.name)
		assert.Equal(entry.expected, mem, entry.name)
	}
}

func TestCpuOutputs(t *testing.T) {
	assert := assert.New(t)

	compare := "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

	table := [](struct {
		name     string
		program  string
		inputs   []int64
		expected []int64
	}){
		{"quine", quine, nil, []int64{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}},
		{"large_mul", "1102,34915192,34915192,7,4,7,99,0", nil, []int64{1219070632396864}},
		{"large_imm", "104,1125899906842624,99", nil, []int64{1125899906842624}},
		{"echo", "3,0,4,0,99", []int64{-42}, []int64{-42}},
		{"fifo", "3,10,3,11,4,10,4,11,99", []int64{5, 6}, []int64{5, 6}},
		{"eq_pos_8", "3,9,8,9,10,9,4,9,99,-1,8", []int64{8}, []int64{1}},
		{"eq_pos_7", "3,9,8,9,10,9,4,9,99,-1,8", []int64{7}, []int64{0}},
		{"lt_pos_7", "3,9,7,9,10,9,4,9,99,-1,8", []int64{7}, []int64{1}},
		{"lt_pos_9", "3,9,7,9,10,9,4,9,99,-1,8", []int64{9}, []int64{0}},
		{"eq_imm_8", "3,3,1108,-1,8,3,4,3,99", []int64{8}, []int64{1}},
		{"lt_imm_8", "3,3,1107,-1,8,3,4,3,99", []int64{8}, []int64{0}},
		{"jump_pos_0", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", []int64{0}, []int64{0}},
		{"jump_pos_5", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", []int64{5}, []int64{1}},
		{"jump_imm_0", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", []int64{0}, []int64{0}},
		{"jump_imm_5", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", []int64{5}, []int64{1}},
		{"compare_lt", compare, []int64{7}, []int64{999}},
		{"compare_eq", compare, []int64{8}, []int64{1000}},
		{"compare_gt", compare, []int64{9}, []int64{1001}},
		{"relative_read", "109,2000,109,19,204,-34,99", nil, []int64{0}},
		{"relative_write", "109,5,21101,3,4,0,204,0,99", nil, []int64{7}},
		{"far_memory", "1001,500,7,500,4,500,99", nil, []int64{7}},
	}

	for _, entry := range table {
		cpu := NewCpu(mustParse(t, entry.program))
		cpu.SetInputs(entry.inputs...)
		outputs, err := cpu.RunToHalt()
		assert.NoError(err, entry.name)
		assert.Equal(entry.expected, outputs, entry.name)
		assert.True(cpu.Halted(), entry.name)
	}
}

func TestCpuRelativeBase(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(mustParse(t, "109,2000,109,19,204,-34,99"))
	assert.NoError(cpu.Poke(1985, 77))

	value, err := cpu.Next()
	assert.NoError(err)
	assert.Equal(int64(77), value)
	assert.Equal(int64(2019), cpu.RelativeBase())
}

func TestCpuPauseResume(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(Program{104, 1, 104, 2, 104, 3, 99})
	cpu.SetPauseOnOutput(true)

	_, err := cpu.TakeOutput()
	assert.ErrorIs(err, ErrOutputUnavailable)

	for n, expected := range []int64{1, 2, 3} {
		state, err := cpu.Run()
		assert.NoError(err)
		assert.Equal(STATE_PAUSED, state)
		assert.True(cpu.HasOutput())
		assert.Equal(int64(2*(n+1)), cpu.Ip())

		// Not taking the output leaves the CPU paused in place.
		state, err = cpu.Run()
		assert.NoError(err)
		assert.Equal(STATE_PAUSED, state)
		assert.Equal(int64(2*(n+1)), cpu.Ip())

		value, err := cpu.TakeOutput()
		assert.NoError(err)
		assert.Equal(expected, value)
		assert.False(cpu.HasOutput())
	}

	state, err := cpu.Run()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)
	assert.Equal(4, cpu.Ticks)
}

func TestCpuNoPauseKeepsLastOutput(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(Program{104, 1, 104, 2, 99})
	state, err := cpu.Run()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)

	value, err := cpu.TakeOutput()
	assert.NoError(err)
	assert.Equal(int64(2), value)
}

func TestCpuNext(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(Program{104, 1, 99})
	value, err := cpu.Next()
	assert.NoError(err)
	assert.Equal(int64(1), value)

	_, err = cpu.Next()
	assert.ErrorIs(err, ErrHalted)
}

func TestCpuAwait(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(Program{3, 0, 4, 0, 99})

	state, err := cpu.Run()
	assert.ErrorIs(err, io.ErrInputExhausted)
	assert.Equal(STATE_AWAIT, state)
	assert.Equal(int64(0), cpu.Ip())
	assert.NoError(cpu.Fault())
	assert.False(cpu.Halted())

	assert.NoError(cpu.PushInput(7))
	state, err = cpu.Run()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)

	value, err := cpu.TakeOutput()
	assert.NoError(err)
	assert.Equal(int64(7), value)
}

func TestCpuRebind(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(mustParse(t, "3,10,3,11,4,10,4,11,99"))
	cpu.SetInputs(1)

	state, err := cpu.Run()
	assert.ErrorIs(err, io.ErrInputExhausted)
	assert.Equal(STATE_AWAIT, state)
	assert.Equal(int64(2), cpu.Ip())

	output := &io.Queue{}
	cpu.SetInput(io.NewQueue(2))
	cpu.SetOutput(output)
	assert.Equal(output, cpu.Output())

	state, err = cpu.Run()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)
	assert.Equal([]int64{1, 2}, output.Drain())
	assert.Equal(2, output.Sent())
}

func TestCpuOutputEndpoint(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, quine)
	output := &io.Queue{}

	cpu := NewCpu(prog)
	cpu.SetOutput(output)
	state, err := cpu.Run()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)
	assert.Equal(len(prog), output.Sent())
	assert.Equal([]int64(prog), output.Drain())
}

func TestCpuFaults(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		program  Program
		expected error
	}){
		{"opcode", Program{42, 0, 0, 0}, ErrInvalidOpcode},
		{"opcode_negative", Program{-1}, ErrInvalidOpcode},
		{"write_immediate", Program{11101, 1, 1, 1, 99}, ErrInvalidWrite},
		{"mode", Program{301, 0, 0, 0, 99}, ErrModeInvalid},
		{"address", Program{1, -1, 0, 0, 99}, ErrAddressNegative},
		{"jump_negative", Program{1105, 1, -5}, ErrAddressNegative},
	}

	for _, entry := range table {
		cpu := NewCpu(entry.program)
		state, err := cpu.Run()
		assert.ErrorIs(err, entry.expected, entry.name)
		assert.Equal(STATE_FAULTED, state, entry.name)

		var fault *ErrFault
		assert.True(errors.As(err, &fault), entry.name)

		// Faults are sticky.
		ticks := cpu.Ticks
		state, again := cpu.Step()
		assert.Equal(STATE_FAULTED, state, entry.name)
		assert.Equal(err, again, entry.name)
		assert.Equal(ticks, cpu.Ticks, entry.name)
	}
}

func TestCpuFaultLocation(t *testing.T) {
	assert := assert.New(t)

	// Patches address 4 with an undefined opcode before reaching it.
	cpu := NewCpu(Program{1101, 40, 2, 4, 99})
	_, err := cpu.Run()

	var fault *ErrFault
	assert.True(errors.As(err, &fault))
	assert.Equal(int64(4), fault.Ip)
	assert.Equal(Code(42), fault.Code)
	assert.True(errors.Is(err, ErrOpcode(0)))
}

func TestCpuHaltedStaysHalted(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(Program{99, 104, 1})
	state, err := cpu.Step()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)

	state, err = cpu.Step()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)
	assert.Equal(int64(1), cpu.Ip())
	assert.Equal(1, cpu.Ticks)
}

func TestCpuDeterministic(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, quine)

	run := func() ([]int64, Program) {
		cpu := NewCpu(prog)
		outputs, err := cpu.RunToHalt()
		assert.NoError(err)
		mem, err := cpu.Memory()
		assert.NoError(err)
		return outputs, mem
	}

	out1, mem1 := run()
	out2, mem2 := run()
	assert.Equal(out1, out2)
	assert.Equal(mem1, mem2)
}

func TestCpuClone(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(Program{3, 10, 4, 10, 99})
	cpu.SetInputs(1)
	dup := cpu.Clone()

	assert.NoError(cpu.Poke(3, 11))
	value, err := cpu.Next()
	assert.NoError(err)
	assert.Equal(int64(0), value)

	value, err = dup.Next()
	assert.NoError(err)
	assert.Equal(int64(1), value)
	assert.Equal(int64(10), dup.Peek(3))
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(Program{104, 5, 99})
	_, err := cpu.Run()
	assert.NoError(err)
	assert.Contains(cpu.String(), "output: 5")
	assert.Contains(cpu.String(), "halted: true")
}

func TestCpuMemoryFar(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(Program{1101, 7, 0, 1 << 62, 4, 4, 99})
	outputs, err := cpu.RunToHalt()
	assert.NoError(err)
	assert.Equal([]int64{4}, outputs)
	assert.Equal(int64(7), cpu.Peek(1<<62))

	mem, err := cpu.Memory()
	assert.Nil(mem)
	var large *ErrSnapshotTooLarge
	assert.ErrorAs(err, &large)
}

func TestCpuPatch(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(Program{4, 0, 99})
	assert.NoError(cpu.Patch(Patch{Address: 1, Value: 1 << 62}, Patch{Address: 1 << 62, Value: 42}))

	outputs, err := cpu.RunToHalt()
	assert.NoError(err)
	assert.Equal([]int64{42}, outputs)

	err = cpu.Patch(Patch{Address: -1, Value: 1})
	assert.ErrorIs(err, ErrAddressNegative)
}

func TestCpuPushInputChained(t *testing.T) {
	assert := assert.New(t)

	prog := Program{3, 20, 3, 21, 3, 22, 4, 20, 4, 21, 4, 22, 99}

	cpu := NewCpu(prog)
	cpu.SetInput(&io.Tape{Input: strings.NewReader("3\n")})
	assert.NoError(cpu.PushInput(1))
	assert.NoError(cpu.PushInput(2))
	assert.Len(*cpu.Input().(*io.Chain), 2)

	outputs, err := cpu.RunToHalt()
	assert.NoError(err)
	assert.Equal([]int64{1, 2, 3}, outputs)

	cpu = NewCpu(prog)
	cpu.SetInput(&io.Chain{io.NewQueue(1), &io.Tape{Input: strings.NewReader("3\n")}})
	assert.NoError(cpu.PushInput(2))
	assert.Len(*cpu.Input().(*io.Chain), 2)

	outputs, err = cpu.RunToHalt()
	assert.NoError(err)
	assert.Equal([]int64{1, 2, 3}, outputs)
}
