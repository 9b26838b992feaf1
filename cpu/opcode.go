package cpu

import (
	"fmt"
	"strconv"
)

// Op is an Intcode operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD  = Op(1)  // add
	OP_MUL  = Op(2)  // mul
	OP_IN   = Op(3)  // in
	OP_OUT  = Op(4)  // out
	OP_JT   = Op(5)  // jt
	OP_JF   = Op(6)  // jf
	OP_LT   = Op(7)  // lt
	OP_EQ   = Op(8)  // eq
	OP_ARB  = Op(9)  // arb
	OP_HALT = Op(99) // halt
)

// Operands returns the number of parameters the operation consumes,
// or -1 for an unknown operation.
func (op Op) Operands() int {
	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		return 3
	case OP_JT, OP_JF:
		return 2
	case OP_IN, OP_OUT, OP_ARB:
		return 1
	case OP_HALT:
		return 0
	}

	return -1
}

// Mode is a parameter addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // pos
	MODE_IMMEDIATE = Mode(1) // imm
	MODE_RELATIVE  = Mode(2) // rel
)

// Valid returns true if the mode is one of the defined addressing modes.
func (mode Mode) Valid() bool {
	return mode >= MODE_POSITION && mode <= MODE_RELATIVE
}

// Code is a single instruction word.
type Code int64

// MakeCode creates an instruction word from an operation and parameter modes.
func MakeCode(op Op, modes ...Mode) Code {
	word := int64(op)
	scale := int64(100)
	for _, mode := range modes {
		word += int64(mode) * scale
		scale *= 10
	}

	return Code(word)
}

// Op returns the operation, the low two decimal digits of the word.
func (code Code) Op() Op {
	return Op(code % 100)
}

// Mode returns the addressing mode of a parameter, numbered from 1.
// Missing digits are MODE_POSITION.
func (code Code) Mode(param int) Mode {
	word := int64(code) / 100
	for ; param > 1; param-- {
		word /= 10
	}

	return Mode(word % 10)
}

// String returns the instruction word with its decoded operation and modes.
func (code Code) String() (out string) {
	op := code.Op()
	out = fmt.Sprintf("%v %v", strconv.FormatInt(int64(code), 10), op.String())
	for param := 1; param <= op.Operands(); param++ {
		out += "." + code.Mode(param).String()
	}

	return
}
