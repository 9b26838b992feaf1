package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tape provides console I/O of decimal values, one per line.
// Input lines come from Lines if set, otherwise from Input.
type Tape struct {
	Counter

	Input  io.Reader
	Lines  LineReader
	Output io.Writer
	Prompt string // If set, written to Output before reading from Input.

	scanner *bufio.Scanner
}

var _ Input = (*Tape)(nil)
var _ Output = (*Tape)(nil)

// readLine returns the next input line.
func (tc *Tape) readLine() (line string, err error) {
	if tc.Lines != nil {
		line, err = tc.Lines.Readline()
		if errors.Is(err, io.EOF) {
			err = ErrInputExhausted
		}
		return
	}

	if tc.Input == nil {
		err = ErrInputExhausted
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
	}

	if len(tc.Prompt) != 0 && tc.Output != nil {
		fmt.Fprint(tc.Output, tc.Prompt)
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = ErrInputExhausted
		}
		return
	}

	line = tc.scanner.Text()
	return
}

// Receive reads the next non-blank line and parses it as a decimal value.
func (tc *Tape) Receive() (value int64, err error) {
	var line string
	for len(line) == 0 {
		line, err = tc.readLine()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
	}

	value, err = strconv.ParseInt(line, 10, 64)
	if err != nil {
		err = ErrInputInvalid(line)
	}

	return
}

// Send writes the value as a decimal line.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrOutputMissing
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		return
	}

	tc.Tally()
	return
}

// Rewind zeros the sent counter, and drops any buffered input so that
// the next read starts on the current Input.
func (tc *Tape) Rewind() {
	tc.Counter.Rewind()
	tc.scanner = nil
}
