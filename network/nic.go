package network

import (
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// Nic is the network interface of a single networked CPU.
// It is both the input and the output endpoint of that CPU.
type Nic struct {
	io.Counter

	Address int64

	cpu     *cpu.Cpu
	net     *Network
	inbox   chan Packet
	booted  bool
	pending int64 // Y of the packet being received.
	receive bool
	out     []int64
}

var _ io.Input = (*Nic)(nil)
var _ io.Output = (*Nic)(nil)

// Cpu returns the CPU behind the interface.
func (nic *Nic) Cpu() *cpu.Cpu {
	return nic.cpu
}

// Pending returns the number of packets waiting in the inbox.
func (nic *Nic) Pending() int {
	return len(nic.inbox)
}

// Receive returns the next input value: the address of the interface on
// the first call, then X and Y of each received packet in turn, or
// NO_PACKET when the inbox is empty.
func (nic *Nic) Receive() (value int64, err error) {
	if !nic.booted {
		nic.booted = true
		value = nic.Address
		return
	}

	if nic.receive {
		nic.receive = false
		value = nic.pending
		return
	}

	select {
	case packet := <-nic.inbox:
		nic.pending = packet.Y
		nic.receive = true
		value = packet.X
	default:
		nic.net.emit(Event{Idle: true})
		value = NO_PACKET
	}

	return
}

// Send collects output values; every third completes a packet, which is
// routed to its destination.
func (nic *Nic) Send(value int64) (err error) {
	nic.Tally()

	nic.out = append(nic.out, value)
	if len(nic.out) < 3 {
		return
	}

	packet := Packet{Address: nic.out[0], X: nic.out[1], Y: nic.out[2]}
	nic.out = nic.out[:0]

	if nic.net.Verbose {
		log.Printf("network: %d -> %v", nic.Address, packet)
	}

	nic.net.emit(Event{Packet: packet})
	if packet.Address != NAT_ADDRESS {
		nic.net.deliver(packet)
	}

	return
}

// Rewind drops any partial packet and zeros the sent counter.
func (nic *Nic) Rewind() {
	nic.Counter.Rewind()
	nic.out = nic.out[:0]
}

// deliver queues a packet, dropping it if the inbox is full.
func (nic *Nic) deliver(packet Packet) (ok bool) {
	select {
	case nic.inbox <- packet:
		ok = true
	default:
	}
	return
}

// stopped returns true once the CPU has halted or faulted.
func (nic *Nic) stopped() bool {
	return nic.cpu.Halted() || nic.cpu.Fault() != nil
}

// step executes a single instruction, and returns true if the CPU has
// stopped.
func (nic *Nic) step() (stopped bool) {
	if nic.stopped() {
		return true
	}

	state, err := nic.cpu.Step()
	if err != nil && nic.net.Verbose {
		log.Printf("network: nic %d: %v", nic.Address, err)
	}

	return state == cpu.STATE_HALTED || state == cpu.STATE_FAULTED
}
