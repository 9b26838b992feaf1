package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/intcode/cpu"
)

func TestNicReceive(t *testing.T) {
	assert := assert.New(t)

	net, err := NewNetwork(cpu.Program{99}, testConfig(2, 4))
	require.NoError(t, err)
	nic := net.Nic(1)

	value, err := nic.Receive()
	assert.NoError(err)
	assert.Equal(int64(1), value)

	value, err = nic.Receive()
	assert.NoError(err)
	assert.Equal(int64(NO_PACKET), value)
	assert.Equal(Event{Idle: true}, <-net.bus)

	net.deliver(Packet{Address: 1, X: 3, Y: 4})
	net.deliver(Packet{Address: 1, X: 5, Y: 6})
	assert.Equal(2, nic.Pending())

	var values []int64
	for range 4 {
		value, err = nic.Receive()
		assert.NoError(err)
		values = append(values, value)
	}
	assert.Equal([]int64{3, 4, 5, 6}, values)
	assert.Len(net.bus, 0)
}

func TestNicSend(t *testing.T) {
	assert := assert.New(t)

	net, err := NewNetwork(cpu.Program{99}, testConfig(2, 4))
	require.NoError(t, err)
	nic := net.Nic(0)

	for _, value := range []int64{1, 8, 9, NAT_ADDRESS, 10} {
		assert.NoError(nic.Send(value))
	}
	assert.Equal(5, nic.Sent())
	assert.Equal(Event{Packet: Packet{Address: 1, X: 8, Y: 9}}, <-net.bus)
	assert.Equal(1, net.Nic(1).Pending())
	assert.Len(net.bus, 0)

	// A partial packet is dropped on rewind.
	nic.Rewind()
	assert.Equal(0, nic.Sent())
	for _, value := range []int64{NAT_ADDRESS, 11, 12} {
		assert.NoError(nic.Send(value))
	}
	assert.Equal(Event{Packet: Packet{Address: NAT_ADDRESS, X: 11, Y: 12}}, <-net.bus)
	assert.Equal(1, net.Nic(1).Pending())
}

func TestNicInboxFull(t *testing.T) {
	assert := assert.New(t)

	net, err := NewNetwork(cpu.Program{99}, testConfig(1, 1))
	require.NoError(t, err)

	net.deliver(Packet{Address: 0, X: 1, Y: 2})
	net.deliver(Packet{Address: 0, X: 3, Y: 4})
	assert.Equal(1, net.Nic(0).Pending())
	assert.Equal(1, net.Dropped())
}
