// Package i2c simulates the bus transport around an emulated register-file
// slave. It models the transaction structure a hardware I2C peripheral
// presents to its interrupt handler: a start condition with a direction
// bit, a register pointer byte, sequential data bytes with an
// auto-incrementing address cursor, and a stop condition.
package i2c

import (
	"github.com/astoeckel/aravir-rtc/rtc"
)

// Device is the register-level protocol a slave exposes on the bus. It is
// satisfied by *rtc.Clock.
type Device interface {
	// Update commits pending time. The slave calls it exactly when the
	// device's contract allows: at a start condition and when a sequential
	// read wraps back to register zero.
	Update() bool

	// Read returns the register at the given address.
	Read(addr int) byte

	// Write stores a register and reports a side effect for the host.
	Write(addr int, v byte) rtc.Action

	// NextAddr maps an address to its successor in bus order.
	NextAddr(addr int) int
}

// Transaction states, following the slave's view of the wire: a write
// transaction carries the register pointer first, then data; a read
// transaction transmits from the current pointer.
const (
	stateIdle = iota
	stateStarted
	stateAddressed
	stateReceiving
	stateTransmitting
)

// Slave is one emulated chip listening on the bus.
type Slave struct {
	dev      Device
	addr     int
	cursor   int
	state    int
	onAction func(rtc.Action)
}

// NewSlave wraps a device as a bus slave with the given seven bit address.
func NewSlave(addr int, dev Device) *Slave {
	return &Slave{dev: dev, addr: addr & 0x7F}
}

// Addr returns the slave's seven bit bus address.
func (s *Slave) Addr() int {
	return s.addr
}

// OnAction registers a callback receiving the side-effect signals of
// register writes, so the host can resynchronise its pulse source or start
// a temperature conversion. The callback runs synchronously from the write.
func (s *Slave) OnAction(f func(rtc.Action)) {
	s.onAction = f
}

// start handles a (possibly repeated) start condition addressed to this
// slave. The bus is quiet between the address phase and the first data
// byte, which is the window the device commits pending seconds in.
func (s *Slave) start(write bool) {
	s.dev.Update()
	if write {
		s.state = stateStarted
	} else {
		s.state = stateTransmitting
	}
}

// receive handles one byte written by the master. The first byte of a
// write transaction sets the register pointer; every further byte is
// stored through the device and advances the pointer.
func (s *Slave) receive(v byte) {
	switch s.state {
	case stateStarted:
		s.cursor = int(v)
		s.state = stateAddressed
	case stateAddressed, stateReceiving:
		if a := s.dev.Write(s.cursor, v); a != rtc.ActionNone && s.onAction != nil {
			s.onAction(a)
		}
		s.cursor = s.dev.NextAddr(s.cursor)
		s.state = stateReceiving
	}
}

// send returns the next byte of a read transaction and advances the
// pointer. When the pointer wraps to register zero the device commits
// pending seconds, so an arbitrarily long sequential read keeps seeing an
// advancing clock.
func (s *Slave) send() byte {
	v := s.dev.Read(s.cursor)
	s.cursor = s.dev.NextAddr(s.cursor)
	if s.cursor == 0 {
		s.dev.Update()
	}
	return v
}

// stop handles a stop condition.
func (s *Slave) stop() {
	s.state = stateIdle
}
