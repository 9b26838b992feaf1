package network

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNicCount    = errors.New(f("nic count must be between 1 and 255"))
	ErrCapacity    = errors.New(f("queue capacity must be positive"))
	ErrThreshold   = errors.New(f("idle threshold must be positive"))
	ErrRoundLimit  = errors.New(f("round limit reached"))
	ErrNetworkDown = errors.New(f("every nic has stopped"))

	errUntil = errors.New("until")
)
