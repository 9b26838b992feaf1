package script

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrMachineFrozen = errors.New(f("machine is frozen"))
	ErrNoProgram     = errors.New(f("no program loaded"))
)
