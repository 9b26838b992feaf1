package script

import (
	"errors"
	"fmt"
	"slices"

	"go.starlark.net/starlark"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// Machine is a Starlark value wrapping a single CPU.
// Every output is also collected, and visible as the 'outputs' attribute.
type Machine struct {
	cpu    *cpu.Cpu
	out    *io.Queue
	frozen bool
}

var _ starlark.HasAttrs = (*Machine)(nil)

// NewMachine creates a machine running a copy of the program.
func NewMachine(prog cpu.Program) (m *Machine) {
	m = &Machine{
		cpu: cpu.NewCpu(prog),
		out: &io.Queue{},
	}
	m.cpu.SetOutput(m.out)

	return
}

// Cpu returns the CPU behind the machine.
func (m *Machine) Cpu() *cpu.Cpu {
	return m.cpu
}

func (m *Machine) String() string {
	return fmt.Sprintf("<machine ip=%d halted=%v>", m.cpu.Ip(), m.cpu.Halted())
}

func (m *Machine) Type() string         { return "machine" }
func (m *Machine) Freeze()              { m.frozen = true }
func (m *Machine) Truth() starlark.Bool { return starlark.True }

func (m *Machine) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", m.Type())
}

var machineMethods = map[string]*starlark.Builtin{
	"clone": starlark.NewBuiltin("clone", machineClone),
	"next":  starlark.NewBuiltin("next", machineNext),
	"peek":  starlark.NewBuiltin("peek", machinePeek),
	"poke":  starlark.NewBuiltin("poke", machinePoke),
	"push":  starlark.NewBuiltin("push", machinePush),
	"run":   starlark.NewBuiltin("run", machineRun),
	"take":  starlark.NewBuiltin("take", machineTake),
}

// Attr returns a machine attribute or bound method.
func (m *Machine) Attr(name string) (value starlark.Value, err error) {
	switch name {
	case "halted":
		value = starlark.Bool(m.cpu.Halted())
	case "ip":
		value = starlark.MakeInt64(m.cpu.Ip())
	case "outputs":
		value = intList(m.out.Data)
	default:
		if method, ok := machineMethods[name]; ok {
			value = method.BindReceiver(m)
		}
	}

	return
}

// AttrNames returns the sorted attribute names.
func (m *Machine) AttrNames() (names []string) {
	names = []string{"halted", "ip", "outputs"}
	for name := range machineMethods {
		names = append(names, name)
	}
	slices.Sort(names)

	return
}

func intList(values []int64) *starlark.List {
	elems := make([]starlark.Value, len(values))
	for n, value := range values {
		elems[n] = starlark.MakeInt64(value)
	}
	return starlark.NewList(elems)
}

// receiver returns the machine of a bound method, failing if it is frozen
// and the method modifies it.
func receiver(fn *starlark.Builtin, modify bool) (m *Machine, err error) {
	m = fn.Receiver().(*Machine)
	if modify && m.frozen {
		err = fmt.Errorf("%s: %w", fn.Name(), ErrMachineFrozen)
	}
	return
}

func machinePush(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}

	m, err := receiver(fn, true)
	if err != nil {
		return nil, err
	}

	values := make([]int64, len(args))
	for n, arg := range args {
		err = starlark.AsInt(arg, &values[n])
		if err != nil {
			return nil, fmt.Errorf("%s: for parameter %d: %w", fn.Name(), n+1, err)
		}
	}

	err = m.cpu.PushInput(values...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}

	return starlark.None, nil
}

func machineRun(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	m, err := receiver(fn, true)
	if err != nil {
		return nil, err
	}

	state, err := m.cpu.Run()
	if err != nil && state != cpu.STATE_AWAIT {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}

	return starlark.String(state.String()), nil
}

func machineNext(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	m, err := receiver(fn, true)
	if err != nil {
		return nil, err
	}

	value, err := m.cpu.Next()
	if errors.Is(err, cpu.ErrHalted) {
		return starlark.None, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}

	return starlark.MakeInt64(value), nil
}

func machineTake(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	m, err := receiver(fn, true)
	if err != nil {
		return nil, err
	}

	value, err := m.cpu.TakeOutput()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}

	return starlark.MakeInt64(value), nil
}

func machinePeek(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int64
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr)
	if err != nil {
		return nil, err
	}

	m, err := receiver(fn, false)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt64(m.cpu.Peek(addr)), nil
}

func machinePoke(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr, value int64
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &addr, &value)
	if err != nil {
		return nil, err
	}

	m, err := receiver(fn, true)
	if err != nil {
		return nil, err
	}

	err = m.cpu.Poke(addr, value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}

	return starlark.None, nil
}

func machineClone(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	m, err := receiver(fn, false)
	if err != nil {
		return nil, err
	}

	dup := &Machine{
		cpu: m.cpu.Clone(),
		out: m.out.Clone(),
	}
	dup.cpu.SetOutput(dup.out)

	return dup, nil
}
