package amplifier

import (
	"errors"
	"strconv"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNoPhases      = errors.New(f("no phase settings"))
	ErrNoSignal      = errors.New(f("amplifier produced no signal"))
	ErrFeedbackLimit = errors.New(f("feedback loop did not settle"))
)

// ErrStage is a failure of a single amplifier in a chain.
type ErrStage struct {
	Index int
	Err   error
}

func (err *ErrStage) Error() string {
	return f("amplifier %v: %v", strconv.Itoa(err.Index), err.Err)
}

func (err *ErrStage) Unwrap() error {
	return err.Err
}
