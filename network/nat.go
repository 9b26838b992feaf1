package network

import (
	"log"
)

// Nat is the idle supervisor at NAT_ADDRESS. It remembers the last packet
// sent to it, and when the network has been idle for Threshold polls it
// sends that packet to address 0.
type Nat struct {
	Verbose   bool // Set to enable verbose logging.
	Threshold int  // Idle polls before an injection, 0 for IDLE_THRESHOLD.

	Received  int // Packets received at NAT_ADDRESS.
	Delivered int // Packets injected to address 0.

	idle    int
	last    Packet
	hasLast bool

	firstY       int64
	hasFirstY    bool
	deliveredY   int64
	repeatedY    int64
	hasRepeatedY bool
}

// Idle returns the number of idle polls since the last packet or injection.
func (nat *Nat) Idle() int {
	return nat.idle
}

// Last returns the last packet sent to NAT_ADDRESS.
func (nat *Nat) Last() (packet Packet, ok bool) {
	return nat.last, nat.hasLast
}

// FirstY returns the Y value of the first packet sent to NAT_ADDRESS.
func (nat *Nat) FirstY() (y int64, ok bool) {
	return nat.firstY, nat.hasFirstY
}

// RepeatedY returns the first Y value injected twice in a row.
func (nat *Nat) RepeatedY() (y int64, ok bool) {
	return nat.repeatedY, nat.hasRepeatedY
}

// Observe accounts for a single network event.
// If the event completes an idle period, the packet to inject is returned.
func (nat *Nat) Observe(event Event) (packet Packet, inject bool) {
	if event.Idle {
		nat.idle++
	} else {
		nat.idle = 0
		if event.Packet.Address == NAT_ADDRESS {
			nat.receive(event.Packet)
		}
	}

	threshold := nat.Threshold
	if threshold <= 0 {
		threshold = IDLE_THRESHOLD
	}

	if nat.idle < threshold {
		return
	}

	nat.idle = 0
	packet = Packet{Address: 0, X: nat.last.X, Y: nat.last.Y}
	inject = true

	if nat.Delivered > 0 && packet.Y == nat.deliveredY && !nat.hasRepeatedY {
		nat.repeatedY = packet.Y
		nat.hasRepeatedY = true
	}
	nat.deliveredY = packet.Y
	nat.Delivered++

	if nat.Verbose {
		log.Printf("nat: inject %v", packet)
	}

	return
}

func (nat *Nat) receive(packet Packet) {
	nat.last = packet
	nat.hasLast = true
	nat.Received++

	if !nat.hasFirstY {
		nat.firstY = packet.Y
		nat.hasFirstY = true
	}

	if nat.Verbose {
		log.Printf("nat: received %v", packet)
	}
}
