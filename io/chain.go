package io

import (
	"errors"
)

// Chain is an Input that receives from each of its inputs in turn.
// An exhausted input is dropped, unless it is the last one, which is
// retained so that it may be refilled.
type Chain []Input

var _ Input = (*Chain)(nil)

// Receive returns the next value from the first input that has one.
func (chain *Chain) Receive() (value int64, err error) {
	for len(*chain) > 0 {
		value, err = (*chain)[0].Receive()
		if !errors.Is(err, ErrInputExhausted) || len(*chain) == 1 {
			return
		}
		*chain = (*chain)[1:]
	}

	err = ErrInputExhausted
	return
}
