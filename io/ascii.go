package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/ezrec/intcode/internal"
)

// ASCII_LIMIT is the first value that is not printed as a character.
const ASCII_LIMIT = 0x80

// Ascii provides console I/O of characters.
// Each input byte is one value; lines from Lines are newline terminated.
// Output values below ASCII_LIMIT are written as characters, any other
// value is written in decimal on a line of its own.
type Ascii struct {
	Counter

	Input  io.Reader
	Lines  LineReader
	Output io.Writer

	reader  *bufio.Reader
	pending []int64
}

var _ Input = (*Ascii)(nil)
var _ Output = (*Ascii)(nil)

// asciiLine yields the characters of a line followed by a newline.
func asciiLine(line string) iter.Seq[int64] {
	var chars iter.Seq[int64] = func(yield func(int64) bool) {
		for _, ch := range []byte(line) {
			if !yield(int64(ch)) {
				return
			}
		}
	}

	return internal.IterSeqConcat(chars, internal.IterSeqOf[int64]('\n'))
}

// AsciiValues encodes lines as input values, each line newline terminated.
func AsciiValues(lines ...string) []int64 {
	seqs := make([]iter.Seq[int64], 0, len(lines))
	for _, line := range lines {
		seqs = append(seqs, asciiLine(line))
	}

	return slices.Collect(internal.IterSeqConcat(seqs...))
}

// Receive returns the next input character.
func (ac *Ascii) Receive() (value int64, err error) {
	if len(ac.pending) == 0 {
		switch {
		case ac.Lines != nil:
			var line string
			line, err = ac.Lines.Readline()
			if errors.Is(err, io.EOF) {
				err = ErrInputExhausted
			}
			if err != nil {
				return
			}
			ac.pending = AsciiValues(line)
		case ac.Input != nil:
			if ac.reader == nil {
				ac.reader = bufio.NewReader(ac.Input)
			}
			var ch byte
			ch, err = ac.reader.ReadByte()
			if errors.Is(err, io.EOF) {
				err = ErrInputExhausted
			}
			if err != nil {
				return
			}
			ac.pending = []int64{int64(ch)}
		default:
			err = ErrInputExhausted
			return
		}
	}

	value = ac.pending[0]
	ac.pending = ac.pending[1:]
	return
}

// Send writes the value as a character, or as a decimal line if it is
// outside of the ASCII range.
func (ac *Ascii) Send(value int64) (err error) {
	if ac.Output == nil {
		err = ErrOutputMissing
		return
	}

	if value >= 0 && value < ASCII_LIMIT {
		_, err = ac.Output.Write([]byte{byte(value)})
	} else {
		_, err = fmt.Fprintf(ac.Output, "%d\n", value)
	}
	if err != nil {
		return
	}

	ac.Tally()
	return
}

// Rewind zeros the sent counter, and drops any buffered input so that
// the next read starts on the current Input.
func (ac *Ascii) Rewind() {
	ac.Counter.Rewind()
	ac.pending = nil
	ac.reader = nil
}
