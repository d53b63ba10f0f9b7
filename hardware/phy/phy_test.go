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

package phy_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jetsetilly/hdmitx/hardware/clocks"
	"github.com/jetsetilly/hdmitx/hardware/phy"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/test"
)

func TestBandsHaveNoGaps(t *testing.T) {
	for _, d := range phy.Depths {
		for clk := 1000000; clk <= phy.MaxPixelClock; clk += 250000 {
			_, err := phy.LookupMPLL(clk, d)
			test.ExpectSuccess(t, err, clk, d)
			_, err = phy.LookupCurrent(clk, d)
			test.ExpectSuccess(t, err, clk, d)
		}

		// band edges are inclusive
		for _, b := range phy.CurrentTable {
			_, err := phy.LookupCurrent(b.MaxClock, d)
			test.ExpectSuccess(t, err, b.MaxClock, d)
		}

		_, err := phy.LookupMPLL(phy.MaxPixelClock+1, d)
		test.ExpectSuccess(t, errors.Is(err, phy.ErrUnsupportedClock))
		_, err = phy.LookupCurrent(phy.MaxPixelClock+1, d)
		test.ExpectSuccess(t, errors.Is(err, phy.ErrUnsupportedClock))
	}
}

func TestLookup(t *testing.T) {
	m, err := phy.LookupMPLL(clocks.TMDS148M5, 8)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, phy.MPLLSetting{OpMode: 0x00a0, GMP: 0x000a})

	m, err = phy.LookupMPLL(clocks.TMDS25M2, 10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, phy.MPLLSetting{OpMode: 0x21e1, GMP: 0x0000})

	// 12-bit takes the value of the band above
	m, _ = phy.LookupMPLL(clocks.TMDS74M25, 12)
	test.ExpectEquality(t, m, phy.MPLLSetting{OpMode: 0x40a2, GMP: 0x000a})
	m, _ = phy.LookupMPLL(clocks.TMDS148M5, 12)
	test.ExpectEquality(t, m, phy.MPLLSetting{OpMode: 0x4002, GMP: 0x000f})

	c, err := phy.LookupCurrent(clocks.TMDS74M25, 10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, 0x0b5c)
	c, _ = phy.LookupCurrent(clocks.TMDS27M, 12)
	test.ExpectEquality(t, c, 0x06dc)

	_, err = phy.LookupCurrent(clocks.TMDS27M, 16)
	test.ExpectSuccess(t, errors.Is(err, phy.ErrUnsupportedDepth))
}

func TestBus(t *testing.T) {
	e := port.NewEmulated()
	b := phy.NewBus(e, &clocks.Instant{})

	test.ExpectSuccess(t, b.Write(0x06, 0x1234))
	test.ExpectEquality(t, e.PhyReg(0x06), 0x1234)

	v, err := b.Read(0x06)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x1234)
}

func TestBusTimeout(t *testing.T) {
	e := port.NewEmulated()
	e.StallPhyBus = true

	d := &clocks.Instant{}
	b := phy.NewBus(e, d)

	err := b.Write(0x06, 0x1234)
	test.ExpectSuccess(t, errors.Is(err, phy.ErrI2CTimeout))
	test.ExpectEquality(t, d.Calls, phy.DefaultBusPolls)
	test.ExpectEquality(t, d.Total, phy.DefaultBusPolls*phy.DefaultBusInterval)
}

func TestInit(t *testing.T) {
	e := port.NewEmulated()
	p := phy.NewPHY(e, &clocks.Instant{})

	err := p.Init(phy.Params{PixelClock: clocks.TMDS148M5, Depth: 8})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.Enabled())

	// two passes of nine words
	test.ExpectEquality(t, e.PhyOperations(), 18)
	test.ExpectEquality(t, e.PhyReg(regs.PhyOpModePLLCfg), 0x00a0)
	test.ExpectEquality(t, e.PhyReg(regs.PhyPLLCurrCtrl), 0x06dc)
	test.ExpectEquality(t, e.PhyReg(regs.PhyCKSymTXCtrl), 0x8009)
	test.ExpectEquality(t, e.PhyReg(regs.PhyVLevCtrl), 0x0210)
	test.ExpectEquality(t, e.Peek(regs.PhyI2CMSlaveAddr), regs.PhyI2CSlaveAddr)
	test.ExpectEquality(t, len(e.WritesTo(regs.MCPhyRstz)), 4)

	// data enable polarity selected, PHY powered
	c := e.Peek(regs.PhyConf0)
	test.ExpectEquality(t, c&regs.PhyConf0SelDataEnPol, regs.PhyConf0SelDataEnPol)
	test.ExpectEquality(t, c&regs.PhyConf0Gen2PDDQ, 0)
	test.ExpectEquality(t, c&regs.PhyConf0PDZ, regs.PhyConf0PDZ)

	p.Disable()
	test.ExpectSuccess(t, !p.Enabled())
	test.ExpectEquality(t, e.Peek(regs.PhyConf0)&(regs.PhyConf0PDZ|regs.PhyConf0ENTMDS), 0)

	// disable is idempotent
	e.ClearWrites()
	p.Disable()
	test.ExpectEquality(t, len(e.Writes()), 0)
}

func TestInitHighRate(t *testing.T) {
	e := port.NewEmulated()
	p := phy.NewPHY(e, &clocks.Instant{})

	test.DemandSuccess(t, p.Init(phy.Params{PixelClock: 162000000, Depth: 8, CSC: true}))
	test.ExpectEquality(t, e.PhyReg(regs.PhyCKSymTXCtrl), 0x800b)
	test.ExpectEquality(t, e.PhyReg(regs.PhyVLevCtrl), 0x0129)
	test.ExpectEquality(t, e.Peek(regs.MCFlowCtrl), regs.MCFlowCtrlCSCInPath)
}

func TestInitNotLocked(t *testing.T) {
	e := port.NewEmulated()
	e.Lock = port.LockNever

	d := &clocks.Instant{}
	p := phy.NewPHY(e, d)

	err := p.Init(phy.Params{PixelClock: clocks.TMDS74M25, Depth: 8})
	test.ExpectSuccess(t, errors.Is(err, phy.ErrNotLocked))
	test.ExpectSuccess(t, !p.Enabled())

	// both passes polled four times
	test.ExpectEquality(t, d.Calls, 2*phy.DefaultLockPolls)
	test.ExpectEquality(t, d.Total, time.Duration(2*phy.DefaultLockPolls)*phy.DefaultLockInterval)

	// the unlocked PHY was left powered and is still turned off by Disable()
	test.ExpectEquality(t, e.Peek(regs.PhyConf0)&regs.PhyConf0PDZ, regs.PhyConf0PDZ)
	p.Disable()
	test.ExpectEquality(t, e.Peek(regs.PhyConf0)&(regs.PhyConf0PDZ|regs.PhyConf0ENTMDS), 0)
}

func TestInitInvalid(t *testing.T) {
	e := port.NewEmulated()
	p := phy.NewPHY(e, &clocks.Instant{})

	err := p.Init(phy.Params{PixelClock: clocks.TMDS74M25, Depth: 8, Repetition: 1})
	test.ExpectSuccess(t, errors.Is(err, phy.ErrInvalidParams))
	err = p.Init(phy.Params{PixelClock: 0, Depth: 8})
	test.ExpectFailure(t, err)
	err = p.Init(phy.Params{PixelClock: clocks.TMDS74M25, Depth: 16})
	test.ExpectSuccess(t, errors.Is(err, phy.ErrUnsupportedDepth))
	err = p.Init(phy.Params{PixelClock: clocks.TMDS297M, Depth: 8})
	test.ExpectSuccess(t, errors.Is(err, phy.ErrUnsupportedClock))

	test.ExpectEquality(t, len(e.Writes()), 0)
}
