package i2c

import (
	"log"

	"github.com/pkg/errors"
)

// Bus connects a set of slaves to a simulated master and exposes the
// master-side transaction primitives. A Bus is not safe for concurrent
// use; like the wire it stands in for, it carries one transaction at a
// time.
type Bus struct {
	slaves  []*Slave
	active  *Slave
	reading bool
}

// Connect attaches a slave to the bus.
// Fails if its address is already in use.
func (b *Bus) Connect(s *Slave) error {
	if b.find(s.Addr()) != nil {
		return errors.Errorf("i2c: address %#02x already in use", s.Addr())
	}
	b.slaves = append(b.slaves, s)
	log.Printf("i2c: device attached at %#02x", s.Addr())
	return nil
}

// find returns the slave listening on the given address, or nil.
func (b *Bus) find(addr int) *Slave {
	for _, s := range b.slaves {
		if s.Addr() == addr {
			return s
		}
	}
	return nil
}

// Start issues a start condition addressed to the given slave. Issuing a
// start while a transaction is active acts as a repeated start. Fails if
// no slave acknowledges the address.
func (b *Bus) Start(addr int, write bool) error {
	s := b.find(addr)
	if s == nil {
		return errors.Errorf("i2c: no acknowledge from address %#02x", addr)
	}
	if b.active != nil && b.active != s {
		b.active.stop()
	}
	b.active = s
	b.reading = !write
	s.start(write)
	return nil
}

// WriteByte sends one byte to the addressed slave.
func (b *Bus) WriteByte(v byte) error {
	if b.active == nil || b.reading {
		return errors.New("i2c: write outside an active write transaction")
	}
	b.active.receive(v)
	return nil
}

// ReadByte receives one byte from the addressed slave.
func (b *Bus) ReadByte() (byte, error) {
	if b.active == nil || !b.reading {
		return 0, errors.New("i2c: read outside an active read transaction")
	}
	return b.active.send(), nil
}

// Stop issues a stop condition, ending the active transaction. A stray
// stop on an idle bus is harmless.
func (b *Bus) Stop() {
	if b.active != nil {
		b.active.stop()
		b.active = nil
	}
}
