// Package io provides the input and output endpoints for the Intcode CPU.
// It includes a FIFO queue for programmatic pipelines (Queue), a decimal
// console tape (Tape), an ASCII console (Ascii), and output sinks that only
// count (Discard).
package io

// Input is the source of values for the input instruction.
type Input interface {
	// Receive returns the next value. ErrInputExhausted (or an error
	// wrapping it) reports that no value is available yet.
	Receive() (value int64, err error)
}

// Output is the sink for values from the output instruction.
type Output interface {
	// Send accepts a single value.
	Send(value int64) error
	// Sent returns the number of values accepted since the last Rewind.
	Sent() int
	// Rewind resets the output to its initial state.
	Rewind()
}

// LineReader is a source of input lines, such as a readline instance.
type LineReader interface {
	Readline() (line string, err error)
}

// Counter records how many values an Output has accepted.
// It is embedded by the Output implementations.
type Counter struct {
	sent int
}

// Sent returns the number of values tallied since the last Rewind.
func (ctr *Counter) Sent() int {
	return ctr.sent
}

// Tally counts one more sent value.
func (ctr *Counter) Tally() {
	ctr.sent++
}

// Rewind zeros the counter.
func (ctr *Counter) Rewind() {
	ctr.sent = 0
}

// Discard is an Output that only counts the values sent to it.
type Discard struct {
	Counter
}

var _ Output = (*Discard)(nil)

// Send counts and drops the value.
func (dc *Discard) Send(value int64) (err error) {
	dc.Tally()
	return
}
