// Package network connects a set of Intcode CPUs through packet passing
// interfaces, supervised by a NAT that restarts traffic when every
// interface is idle.
package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/intcode/cpu"
)

const (
	NIC_COUNT      = 50     // Default number of interfaces.
	QUEUE_CAPACITY = 1000   // Default inbox capacity, in packets.
	IDLE_THRESHOLD = 100000 // Default idle polls before a NAT injection.
	NAT_ADDRESS    = 255    // Address of the NAT.
	NO_PACKET      = -1     // Input value when the inbox is empty.
)

// Packet is a single message between interfaces.
type Packet struct {
	Address int64
	X       int64
	Y       int64
}

func (p Packet) String() string {
	return fmt.Sprintf("%d:(%d,%d)", p.Address, p.X, p.Y)
}

// Event is a report from an interface to the NAT: either an idle poll, or
// a packet that was sent.
type Event struct {
	Idle   bool
	Packet Packet
}

// Config is the network configuration.
type Config struct {
	Nics      int `toml:"nics"`      // Number of interfaces.
	Capacity  int `toml:"capacity"`  // Inbox and event bus capacity.
	Threshold int `toml:"threshold"` // NAT idle threshold.
}

// DefaultConfig returns the default network configuration.
func DefaultConfig() Config {
	return Config{
		Nics:      NIC_COUNT,
		Capacity:  QUEUE_CAPACITY,
		Threshold: IDLE_THRESHOLD,
	}
}

// Validate checks the configuration.
func (cfg Config) Validate() (err error) {
	switch {
	case cfg.Nics < 1 || cfg.Nics >= NAT_ADDRESS:
		err = ErrNicCount
	case cfg.Capacity < 1:
		err = ErrCapacity
	case cfg.Threshold < 1:
		err = ErrThreshold
	}
	return
}

// Network is a set of interfaces running the same program.
type Network struct {
	Verbose bool // Set to enable verbose logging.

	Nat *Nat // Idle supervisor.

	dropped atomic.Int64
	nics    []*Nic
	bus     chan Event
	done    <-chan struct{}
}

// NewNetwork creates a network of cfg.Nics CPUs, each running a copy of
// the program with the patches applied, with addresses 0 to cfg.Nics-1.
func NewNetwork(prog cpu.Program, cfg Config, patches ...cpu.Patch) (net *Network, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	net = &Network{
		Nat:  &Nat{Threshold: cfg.Threshold},
		nics: make([]*Nic, cfg.Nics),
		bus:  make(chan Event, cfg.Capacity),
	}

	for n := range net.nics {
		nic := &Nic{
			Address: int64(n),
			cpu:     cpu.NewCpu(prog),
			net:     net,
			inbox:   make(chan Packet, cfg.Capacity),
		}
		err = nic.cpu.Patch(patches...)
		if err != nil {
			return nil, err
		}
		nic.cpu.SetInput(nic)
		nic.cpu.SetOutput(nic)
		net.nics[n] = nic
	}

	return
}

// Nic returns the interface at an address, or nil.
func (net *Network) Nic(addr int64) *Nic {
	if addr < 0 || addr >= int64(len(net.nics)) {
		return nil
	}
	return net.nics[addr]
}

// Dropped returns the number of packets lost to unknown addresses or
// full inboxes.
func (net *Network) Dropped() int {
	return int(net.dropped.Load())
}

// emit reports an event to the NAT.
func (net *Network) emit(event Event) {
	select {
	case net.bus <- event:
	case <-net.done:
	}
}

// deliver queues a packet on the inbox of its destination.
func (net *Network) deliver(packet Packet) {
	nic := net.Nic(packet.Address)
	if nic != nil && nic.deliver(packet) {
		return
	}

	net.dropped.Add(1)
	if net.Verbose {
		log.Printf("network: dropped %v", packet)
	}
}

// observe passes an event to the NAT, and delivers any injection.
func (net *Network) observe(event Event) {
	packet, inject := net.Nat.Observe(event)
	if inject {
		net.deliver(packet)
	}
}

// drain passes every waiting event to the NAT.
func (net *Network) drain() {
	for {
		select {
		case event := <-net.bus:
			net.observe(event)
		default:
			return
		}
	}
}

// settle passes every waiting event to the NAT, and returns true as soon
// as the condition holds.
func (net *Network) settle(until func(nat *Nat) bool) bool {
	for {
		select {
		case event := <-net.bus:
			net.observe(event)
			if until != nil && until(net.Nat) {
				return true
			}
		default:
			return false
		}
	}
}

// Tick steps every running interface by one instruction, in address
// order, letting the NAT observe after each one.
// Returns true once every interface has stopped.
func (net *Network) Tick() (done bool) {
	done = true
	for _, nic := range net.nics {
		if !nic.step() {
			done = false
		}
		net.drain()
	}

	return
}

// Loop runs Tick until the condition holds for the NAT.
// Returns ErrRoundLimit after limit rounds (0 for no limit), or
// ErrNetworkDown if every interface stops first.
func (net *Network) Loop(until func(nat *Nat) bool, limit int) (rounds int, err error) {
	for limit <= 0 || rounds < limit {
		if until != nil && until(net.Nat) {
			return
		}
		rounds++
		if net.Tick() {
			if until == nil || until(net.Nat) {
				return
			}
			err = ErrNetworkDown
			return
		}
	}

	if until != nil && until(net.Nat) {
		return
	}

	err = ErrRoundLimit
	return
}

// Run runs every interface in its own goroutine, with the NAT in another,
// until the condition holds for the NAT or the context is done.
// Interface scheduling is left to the Go runtime, so the order of events
// is not reproducible.
func (net *Network) Run(ctx context.Context, until func(nat *Nat) bool) (err error) {
	group, ctx := errgroup.WithContext(ctx)

	net.done = ctx.Done()
	defer func() { net.done = nil }()

	stopped := make(chan struct{})
	var running sync.WaitGroup

	for _, nic := range net.nics {
		running.Add(1)
		group.Go(func() error {
			defer running.Done()
			for ctx.Err() == nil {
				if nic.step() {
					return nil
				}
			}
			return nil
		})
	}

	group.Go(func() error {
		running.Wait()
		close(stopped)
		return nil
	})

	group.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case event := <-net.bus:
				net.observe(event)
				if until != nil && until(net.Nat) {
					return errUntil
				}
			case <-stopped:
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if net.settle(until) {
					return errUntil
				}
				return ErrNetworkDown
			}
		}
	})

	err = group.Wait()
	if errors.Is(err, errUntil) {
		err = nil
	}

	return
}
