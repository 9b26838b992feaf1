package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNatThreshold(t *testing.T) {
	assert := assert.New(t)

	nat := &Nat{Threshold: 3}
	idle := Event{Idle: true}

	for range 2 {
		_, inject := nat.Observe(idle)
		assert.False(inject)
	}
	assert.Equal(2, nat.Idle())

	_, inject := nat.Observe(Event{Packet: Packet{Address: NAT_ADDRESS, X: 5, Y: 6}})
	assert.False(inject)
	assert.Equal(0, nat.Idle())
	assert.Equal(1, nat.Received)

	y, ok := nat.FirstY()
	assert.True(ok)
	assert.Equal(int64(6), y)

	for range 2 {
		_, inject = nat.Observe(idle)
		assert.False(inject)
	}

	packet, inject := nat.Observe(idle)
	assert.True(inject)
	assert.Equal(Packet{Address: 0, X: 5, Y: 6}, packet)
	assert.Equal(0, nat.Idle())
	assert.Equal(1, nat.Delivered)

	_, ok = nat.RepeatedY()
	assert.False(ok)

	injected := 0
	for range 3 {
		if _, inject := nat.Observe(idle); inject {
			injected++
		}
	}
	assert.Equal(1, injected)
	assert.Equal(2, nat.Delivered)

	y, ok = nat.RepeatedY()
	assert.True(ok)
	assert.Equal(int64(6), y)
}

func TestNatTraffic(t *testing.T) {
	assert := assert.New(t)

	nat := &Nat{Threshold: 2}
	nat.Observe(Event{Idle: true})
	nat.Observe(Event{Packet: Packet{Address: 3, X: 1, Y: 2}})
	assert.Equal(0, nat.Idle())
	assert.Equal(0, nat.Received)

	_, ok := nat.Last()
	assert.False(ok)

	nat.Observe(Event{Idle: true})
	packet, inject := nat.Observe(Event{Idle: true})
	assert.True(inject)
	assert.Equal(Packet{}, packet)
}

func TestNatDefaultThreshold(t *testing.T) {
	assert := assert.New(t)

	nat := &Nat{}
	for range IDLE_THRESHOLD - 1 {
		_, inject := nat.Observe(Event{Idle: true})
		assert.False(inject)
	}

	_, inject := nat.Observe(Event{Idle: true})
	assert.True(inject)
}
