// Package script runs Starlark drivers for Intcode programs.
//
// A script sees the predeclared names:
//
//	program     the loaded program, as a list of ints
//	cpu(prog)   a new machine running prog, or the loaded program
//	ascii(*s)   the values of ASCII input lines, each ending in a newline
//
// and a machine has the methods push(*v), run(), next(), take(),
// peek(addr), poke(addr, v), and clone(), with the attributes halted, ip
// and outputs.
package script

import (
	"fmt"
	"io"
	"log"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/intcode/cpu"
	icio "github.com/ezrec/intcode/io"
)

// Host executes scripts against a program.
type Host struct {
	Verbose bool        // Set to enable verbose logging.
	Program cpu.Program // Program visible to scripts as 'program'.
	Patches []cpu.Patch // Applied to machines running Program.
	Output  io.Writer   // Destination of print(), os.Stdout if nil.
}

// predeclared returns the names visible to every script.
func (host *Host) predeclared() starlark.StringDict {
	return starlark.StringDict{
		"program": intList(host.Program),
		"cpu":     starlark.NewBuiltin("cpu", host.newCpu),
		"ascii":   starlark.NewBuiltin("ascii", asciiValues),
	}
}

// Exec runs a script; src is as for starlark.ExecFile.
// Returns the global names the script defines.
func (host *Host) Exec(filename string, src any) (globals starlark.StringDict, err error) {
	output := host.Output
	if output == nil {
		output = os.Stdout
	}

	thread := &starlark.Thread{
		Name: "intcode",
		Print: func(thread *starlark.Thread, msg string) {
			fmt.Fprintln(output, msg)
		},
	}

	opts := syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	if host.Verbose {
		log.Printf("script: exec %v", filename)
	}

	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, host.predeclared())
	return
}

func (host *Host) newCpu(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var list *starlark.List
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "program?", &list)
	if err != nil {
		return nil, err
	}

	prog := host.Program
	if list != nil {
		prog = make(cpu.Program, list.Len())
		for n := range prog {
			err = starlark.AsInt(list.Index(n), &prog[n])
			if err != nil {
				return nil, fmt.Errorf("%s: program[%d]: %w", fn.Name(), n, err)
			}
		}
	}

	if len(prog) == 0 {
		return nil, fmt.Errorf("%s: %w", fn.Name(), ErrNoProgram)
	}

	m := NewMachine(prog)
	m.cpu.Verbose = host.Verbose
	if list == nil {
		err = m.cpu.Patch(host.Patches...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
	}

	return m, nil
}

func asciiValues(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}

	lines := make([]string, len(args))
	for n, arg := range args {
		line, ok := starlark.AsString(arg)
		if !ok {
			return nil, fmt.Errorf("%s: for parameter %d: got %s, want string", fn.Name(), n+1, arg.Type())
		}
		lines[n] = line
	}

	return intList(icio.AsciiValues(lines...)), nil
}
