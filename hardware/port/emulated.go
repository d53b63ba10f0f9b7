// This file is part of hdmitx.
//
// hdmitx is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// hdmitx is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with hdmitx.  If not, see <https://www.gnu.org/licenses/>.

package port

import (
	"sync"

	"github.com/jetsetilly/hdmitx/hardware/regs"
)

// Access is a single recorded register write.
type Access struct {
	Reg   uint16
	Value uint8
}

// LockMode controls the PHY lock bit of the emulated register file.
type LockMode int

// List of valid LockMode values.
const (
	// the lock bit follows the PHY power, TMDS and PDDQ controls
	LockAuto LockMode = iota
	LockForced
	LockNever
)

// MaxWrites is the number of recorded writes kept by Emulated. When the
// record is full the oldest half is discarded.
const MaxWrites = 8192

// the interrupt status registers are write-one-to-clear.
var w1c = map[uint16]bool{
	regs.IHFCStat0:        true,
	regs.IHFCStat1:        true,
	regs.IHFCStat2:        true,
	regs.IHASStat0:        true,
	regs.IHPhyStat0:       true,
	regs.IHI2CMStat0:      true,
	regs.IHCECStat0:       true,
	regs.IHVPStat0:        true,
	regs.IHI2CMPhyStat0:   true,
	regs.IHAHBDMAAudStat0: true,
}

// Emulated is an in-memory register file. It models the parts of the
// transmitter that the bring-up sequence waits on:
//
//   - operations on the PHY I2C master latch a 16-bit word into (or out of) a
//     PHY register array and raise the done bit in IH_I2CMPHY_STAT0
//   - the TX PHY lock bit in PHY_STAT0 reflects the PHY power controls
//   - interrupt status registers are write-one-to-clear
//   - PlugCable() drives the HPD bit and raises the HPD interrupt
//
// The most recent writes are recorded and can be retrieved with Writes().
type Emulated struct {
	crit sync.Mutex

	mem [Window]uint8
	phy [256]uint16

	writes []Access

	// Lock controls the PHY lock bit.
	Lock LockMode

	// StallPhyBus stops the PHY I2C master from raising its done bit.
	StallPhyBus bool

	// number of operations on the PHY I2C master
	phyOps int
}

// NewEmulated is the preferred method of initialisation for the Emulated
// type. The identification registers are set to those of an i.MX6 part.
func NewEmulated() *Emulated {
	e := &Emulated{}
	e.mem[regs.DesignID] = 0x13
	e.mem[regs.RevisionID] = 0x0a
	e.mem[regs.ProductID0] = 0xa0
	e.mem[regs.ProductID1] = 0xc1
	e.mem[regs.IHMute] = regs.IHMuteWakeupInterrupt | regs.IHMuteAllInterrupt
	return e
}

// Read implements the Port interface.
func (e *Emulated) Read(reg uint16) uint8 {
	e.crit.Lock()
	defer e.crit.Unlock()

	if reg >= Window {
		return 0
	}

	if reg == regs.PhyStat0 {
		v := e.mem[reg] &^ regs.PhyStat0TXPhyLock
		if e.locked() {
			v |= regs.PhyStat0TXPhyLock
		}
		return v
	}

	return e.mem[reg]
}

// locked returns the state of the PHY lock bit. the critical section should
// be held.
func (e *Emulated) locked() bool {
	switch e.Lock {
	case LockForced:
		return true
	case LockNever:
		return false
	}
	c := e.mem[regs.PhyConf0]
	return c&regs.PhyConf0PDZ != 0 &&
		c&regs.PhyConf0ENTMDS != 0 &&
		c&regs.PhyConf0Gen2TXPwrOn != 0 &&
		c&regs.PhyConf0Gen2PDDQ == 0
}

// Write implements the Port interface.
func (e *Emulated) Write(reg uint16, v uint8) {
	e.crit.Lock()
	defer e.crit.Unlock()

	if reg >= Window {
		return
	}

	if len(e.writes) >= MaxWrites {
		n := copy(e.writes, e.writes[len(e.writes)-MaxWrites/2:])
		e.writes = e.writes[:n]
	}
	e.writes = append(e.writes, Access{Reg: reg, Value: v})

	if w1c[reg] {
		e.mem[reg] &^= v
		return
	}

	e.mem[reg] = v

	if reg == regs.PhyI2CMOperation {
		e.phyOperation(v)
	}
}

// the critical section should be held.
func (e *Emulated) phyOperation(op uint8) {
	e.phyOps++
	if e.StallPhyBus {
		return
	}

	addr := e.mem[regs.PhyI2CMAddress]
	switch op {
	case regs.PhyI2CMOperationWrite:
		e.phy[addr] = uint16(e.mem[regs.PhyI2CMDataO1])<<8 | uint16(e.mem[regs.PhyI2CMDataO0])
	case regs.PhyI2CMOperationRead:
		e.mem[regs.PhyI2CMDataI1] = uint8(e.phy[addr] >> 8)
		e.mem[regs.PhyI2CMDataI0] = uint8(e.phy[addr])
	default:
		e.mem[regs.IHI2CMPhyStat0] |= regs.IHI2CMPhyStat0Error
		return
	}
	e.mem[regs.IHI2CMPhyStat0] |= regs.IHI2CMPhyStat0Done
}

// PlugCable changes the state of the HPD line. The HPD interrupt is raised
// if the new state matches the polarity sense in PHY_POL0.
func (e *Emulated) PlugCable(plugged bool) {
	e.crit.Lock()
	defer e.crit.Unlock()

	if plugged {
		e.mem[regs.PhyStat0] |= regs.PhyHPD
	} else {
		e.mem[regs.PhyStat0] &^= regs.PhyHPD
	}

	pol := e.mem[regs.PhyPol0]&regs.PhyHPD != 0
	if pol == plugged {
		e.mem[regs.IHPhyStat0] |= regs.IHPhyStat0HPD
	}
}

// Peek returns the value of a register without side effects.
func (e *Emulated) Peek(reg uint16) uint8 {
	e.crit.Lock()
	defer e.crit.Unlock()
	if reg >= Window {
		return 0
	}
	return e.mem[reg]
}

// Poke sets the value of a register without side effects. The write is not
// recorded.
func (e *Emulated) Poke(reg uint16, v uint8) {
	e.crit.Lock()
	defer e.crit.Unlock()
	if reg < Window {
		e.mem[reg] = v
	}
}

// PhyReg returns the value of a register on the PHY sub-bus.
func (e *Emulated) PhyReg(addr uint8) uint16 {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.phy[addr]
}

// PhyOperations returns the number of operations triggered on the PHY I2C
// master since the last call to ClearWrites().
func (e *Emulated) PhyOperations() int {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.phyOps
}

// Writes returns a copy of the recorded writes. At most MaxWrites are kept.
func (e *Emulated) Writes() []Access {
	e.crit.Lock()
	defer e.crit.Unlock()
	w := make([]Access, len(e.writes))
	copy(w, e.writes)
	return w
}

// WritesTo returns the values written to a single register, in order.
func (e *Emulated) WritesTo(reg uint16) []uint8 {
	e.crit.Lock()
	defer e.crit.Unlock()
	var w []uint8
	for _, a := range e.writes {
		if a.Reg == reg {
			w = append(w, a.Value)
		}
	}
	return w
}

// ClearWrites forgets all recorded writes.
func (e *Emulated) ClearWrites() {
	e.crit.Lock()
	defer e.crit.Unlock()
	e.writes = e.writes[:0]
	e.phyOps = 0
}
