package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull    = errors.New(f("channel full"))
	ErrInputExhausted = errors.New(f("input exhausted"))
	ErrOutputMissing  = errors.New(f("output missing"))
)

// ErrInputInvalid is a line of console input that is not a number.
type ErrInputInvalid string

func (err ErrInputInvalid) Error() string {
	return f("'%v' is not a number", string(err))
}
