package cpu

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Program is an Intcode program image; index 0 is loaded at address 0.
type Program []int64

// Patch is a single memory cell set after a program is loaded.
type Patch struct {
	Address int64
	Value   int64
}

// ParseProgram parses a comma separated list of decimal values.
// Whitespace around values, including a trailing newline, is ignored.
func ParseProgram(text string) (prog Program, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = errors.Join(ErrMalformedProgram, ErrProgramEmpty)
		return
	}

	words := strings.Split(text, ",")
	prog = make(Program, 0, len(words))
	for n, word := range words {
		word = strings.TrimSpace(word)
		var value int64
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = errors.Join(ErrMalformedProgram, &ErrParseNumber{Index: n, Word: word})
			prog = nil
			return
		}
		prog = append(prog, value)
	}

	return
}

// ReadProgram parses a program from a reader, such as a puzzle input file.
func ReadProgram(input io.Reader) (prog Program, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		err = errors.Join(ErrMalformedProgram, err)
		return
	}

	return ParseProgram(string(data))
}

// String returns the program in its comma separated form.
func (prog Program) String() string {
	words := make([]string, len(prog))
	for n, value := range prog {
		words[n] = strconv.FormatInt(value, 10)
	}

	return strings.Join(words, ",")
}

// Clone returns an independent copy of the program.
func (prog Program) Clone() Program {
	return append(Program(nil), prog...)
}
