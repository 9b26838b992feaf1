// Package cpu implements the Intcode virtual machine.
//
// The CPU consists of an instruction pointer, a relative base, and a sparse
// memory that grows on demand. Each instruction word holds an operation in
// its low two decimal digits and the addressing mode of each parameter in
// the digits above (position, immediate, or relative).
//
// Input and output go through the io.Input and io.Output interfaces, so the
// same CPU runs against a console, a preloaded queue, or a network channel.
// With pause-on-output enabled, Run returns after every output so that
// several CPUs can be chained cooperatively.
package cpu
