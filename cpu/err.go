package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Program load errors
	ErrMalformedProgram = errors.New(f("malformed program"))
	ErrProgramEmpty     = errors.New(f("program empty"))

	// Cpu errors
	ErrInvalidOpcode     = errors.New(f("invalid opcode"))
	ErrInvalidWrite      = errors.New(f("invalid write to immediate parameter"))
	ErrModeInvalid       = errors.New(f("parameter mode invalid"))
	ErrAddressNegative   = errors.New(f("address negative"))
	ErrOutputUnavailable = errors.New(f("output unavailable"))
	ErrHalted            = errors.New(f("halted"))
)

// ErrOpcode is an instruction word that does not decode.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v", Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrParseNumber is a program value that is not a decimal number.
type ErrParseNumber struct {
	Index int
	Word  string
}

func (err *ErrParseNumber) Error() string {
	return f("value %v '%v' is not a number", strconv.Itoa(err.Index), err.Word)
}

// ErrFault is an unrecoverable program fault, with the location of the
// faulting instruction.
type ErrFault struct {
	Ip   int64
	Code Code
	Err  error
}

func (err *ErrFault) Error() string {
	return f("ip %v: %v: %v", strconv.FormatInt(err.Ip, 10), err.Code.String(), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrSnapshotTooLarge is a memory too sparse to copy densely.
type ErrSnapshotTooLarge struct {
	Extent int64
}

func (err *ErrSnapshotTooLarge) Error() string {
	return f("snapshot of %v cells exceeds %v", strconv.FormatInt(err.Extent, 10), strconv.Itoa(SNAPSHOT_LIMIT))
}
