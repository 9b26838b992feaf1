package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	assert := assert.New(t)

	last := NewQueue()
	chain := &Chain{
		NewQueue(1, 2),
		&Tape{Input: strings.NewReader("3\n")},
		last,
	}

	var values []int64
	for range 3 {
		value, err := chain.Receive()
		assert.NoError(err)
		values = append(values, value)
	}
	assert.Equal([]int64{1, 2, 3}, values)

	_, err := chain.Receive()
	assert.ErrorIs(err, ErrInputExhausted)
	assert.Len(*chain, 1)

	assert.NoError(last.Push(4))
	value, err := chain.Receive()
	assert.NoError(err)
	assert.Equal(int64(4), value)

	_, err = (&Chain{}).Receive()
	assert.ErrorIs(err, ErrInputExhausted)
}

func TestChainInvalid(t *testing.T) {
	assert := assert.New(t)

	chain := &Chain{&Tape{Input: strings.NewReader("x\n")}, NewQueue(5)}
	_, err := chain.Receive()
	assert.ErrorIs(err, ErrInputInvalid("x"))
	assert.Len(*chain, 2)
}
