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

// Package phy drives the transmitter PHY. The PHY registers are not in the
// transmitter's register window. They are reached through an I2C master
// built into the transmitter, here called the sub-bus.
//
// The PHY is brought up by Init(), which runs the configuration sequence
// twice and then waits for the PLL to lock. The tuning values written during
// the sequence come from the MPLLTable and CurrentTable lookups.
package phy

import (
	"errors"
	"fmt"
	"time"

	"github.com/jetsetilly/hdmitx/hardware/clocks"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
)

// Sentinel errors.
var (
	ErrI2CTimeout = errors.New("phy sub-bus timeout")
	ErrI2CError   = errors.New("phy sub-bus error")
)

// Default bounds of the done-bit poll.
const (
	DefaultBusPolls    = 1000
	DefaultBusInterval = time.Microsecond
)

// Bus is the indirect sub-bus to the PHY registers.
type Bus struct {
	p     port.Port
	delay clocks.Delay

	// Polls is the number of times the done bit is checked before an
	// operation fails with ErrI2CTimeout. Interval is the delay between checks.
	Polls    int
	Interval time.Duration
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(p port.Port, delay clocks.Delay) *Bus {
	return &Bus{
		p:        p,
		delay:    delay,
		Polls:    DefaultBusPolls,
		Interval: DefaultBusInterval,
	}
}

// Write a 16-bit word to a PHY register.
func (b *Bus) Write(addr uint8, data uint16) error {
	b.p.Write(regs.IHI2CMPhyStat0, 0xff)
	b.p.Write(regs.PhyI2CMAddress, addr)
	b.p.Write(regs.PhyI2CMDataO1, uint8(data>>8))
	b.p.Write(regs.PhyI2CMDataO0, uint8(data))
	b.p.Write(regs.PhyI2CMOperation, regs.PhyI2CMOperationWrite)
	if err := b.wait(); err != nil {
		return fmt.Errorf("write %#02x: %w", addr, err)
	}
	return nil
}

// Read a 16-bit word from a PHY register.
func (b *Bus) Read(addr uint8) (uint16, error) {
	b.p.Write(regs.IHI2CMPhyStat0, 0xff)
	b.p.Write(regs.PhyI2CMAddress, addr)
	b.p.Write(regs.PhyI2CMOperation, regs.PhyI2CMOperationRead)
	if err := b.wait(); err != nil {
		return 0, fmt.Errorf("read %#02x: %w", addr, err)
	}
	msb := b.p.Read(regs.PhyI2CMDataI1)
	lsb := b.p.Read(regs.PhyI2CMDataI0)
	return uint16(msb)<<8 | uint16(lsb), nil
}

func (b *Bus) wait() error {
	for i := 0; ; i++ {
		stat := b.p.Read(regs.IHI2CMPhyStat0) & regs.IHI2CMPhyStat0Mask
		if stat&regs.IHI2CMPhyStat0Error != 0 {
			return ErrI2CError
		}
		if stat != 0 {
			return nil
		}
		if i >= b.Polls {
			return ErrI2CTimeout
		}
		b.delay.Sleep(b.Interval)
	}
}
