package emulator

import (
	"errors"
	"strconv"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNoProgram = errors.New(f("no program loaded"))
	ErrNotReset  = errors.New(f("emulator not reset"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip  int64
	Err error
}

func (err *ErrRuntime) Error() string {
	// A fault already carries its location.
	var fault *cpu.ErrFault
	if errors.As(err.Err, &fault) {
		return err.Err.Error()
	}

	return f("ip %v: %v", strconv.FormatInt(err.Ip, 10), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
