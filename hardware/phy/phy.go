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

package phy

import (
	"errors"
	"fmt"
	"time"

	"github.com/jetsetilly/hdmitx/hardware/clocks"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/logger"
)

// Sentinel errors.
var (
	ErrNotLocked        = errors.New("phy pll not locked")
	ErrUnsupportedDepth = errors.New("unsupported colour depth")
	ErrInvalidParams    = errors.New("invalid phy parameters")
)

// Default bounds of the PLL lock poll.
const (
	DefaultLockPolls    = 4
	DefaultLockInterval = time.Millisecond
)

// clocks above this use the high rate pre-emphasis and level settings
const highRateClock = 148500000

// Params for one configuration of the PHY.
type Params struct {
	PixelClock int
	Depth      int

	// must be zero
	Repetition int

	// feed the colour space converter into the data path
	CSC bool
}

// Validate returns an error if the PHY cannot be configured with the
// parameters.
func (prm Params) Validate() error {
	if prm.Repetition != 0 {
		return fmt.Errorf("%w: pixel repetition %d", ErrInvalidParams, prm.Repetition)
	}
	if prm.PixelClock <= 0 {
		return fmt.Errorf("%w: pixel clock %d", ErrInvalidParams, prm.PixelClock)
	}
	if _, err := LookupMPLL(prm.PixelClock, prm.Depth); err != nil {
		return err
	}
	if _, err := LookupCurrent(prm.PixelClock, prm.Depth); err != nil {
		return err
	}
	return nil
}

// PHY is the transmitter PHY.
type PHY struct {
	p     port.Port
	bus   *Bus
	delay clocks.Delay

	LockPolls    int
	LockInterval time.Duration

	enabled bool

	// true from the first pass of Init() until Disable(), whether or not the
	// PLL locked
	powered bool
}

// NewPHY is the preferred method of initialisation for the PHY type.
func NewPHY(p port.Port, delay clocks.Delay) *PHY {
	return &PHY{
		p:            p,
		bus:          NewBus(p, delay),
		delay:        delay,
		LockPolls:    DefaultLockPolls,
		LockInterval: DefaultLockInterval,
	}
}

// Bus returns the sub-bus used to reach the PHY registers.
func (phy *PHY) Bus() *Bus {
	return phy.bus
}

// Enabled returns true if Init() has completed and Disable() has not been
// called since.
func (phy *PHY) Enabled() bool {
	return phy.enabled
}

func (phy *PHY) conf0(v bool, shift uint8, mask uint8) {
	var b uint8
	if v {
		b = 1
	}
	port.MaskWrite(phy.p, regs.PhyConf0, b, shift, mask)
}

func (phy *PHY) power(on bool) {
	phy.conf0(on, regs.PhyConf0PDZShift, regs.PhyConf0PDZ)
}

func (phy *PHY) tmds(on bool) {
	phy.conf0(on, regs.PhyConf0ENTMDSShift, regs.PhyConf0ENTMDS)
}

func (phy *PHY) pddq(on bool) {
	phy.conf0(on, regs.PhyConf0Gen2PDDQShift, regs.PhyConf0Gen2PDDQ)
}

func (phy *PHY) txPower(on bool) {
	phy.conf0(on, regs.PhyConf0Gen2TXPwrOnShift, regs.PhyConf0Gen2TXPwrOn)
}

func (phy *PHY) testClear(v bool) {
	var b uint8
	if v {
		b = 1
	}
	port.MaskWrite(phy.p, regs.PhyTst0, b, regs.PhyTst0TstClrShift, regs.PhyTst0TstClr)
}

type word struct {
	addr uint8
	data uint16
}

// Configure runs one pass of the configuration sequence and waits for the PLL
// to lock.
func (phy *PHY) Configure(prm Params) error {
	if err := prm.Validate(); err != nil {
		return fmt.Errorf("phy: %w", err)
	}
	mpll, _ := LookupMPLL(prm.PixelClock, prm.Depth)
	curr, _ := LookupCurrent(prm.PixelClock, prm.Depth)

	if prm.CSC {
		phy.p.Write(regs.MCFlowCtrl, regs.MCFlowCtrlCSCInPath)
	} else {
		phy.p.Write(regs.MCFlowCtrl, regs.MCFlowCtrlCSCBypass)
	}

	phy.txPower(false)
	phy.pddq(true)

	phy.p.Write(regs.MCPhyRstz, regs.MCPhyRstzDeassert)
	phy.p.Write(regs.MCPhyRstz, regs.MCPhyRstzAssert)
	phy.p.Write(regs.MCHEACPhyRst, regs.MCHEACPhyRstAssert)

	phy.testClear(true)
	phy.p.Write(regs.PhyI2CMSlaveAddr, regs.PhyI2CSlaveAddr)
	phy.testClear(false)

	seq := []word{
		{regs.PhyOpModePLLCfg, mpll.OpMode},
		{regs.PhyPLLGMPCtrl, mpll.GMP},
		{regs.PhyPLLCurrCtrl, curr},
		{regs.PhyPLLPhByCtrl, 0x0000},
		{regs.PhyPLLCfg17, 0x0006},
		{regs.PhyTXTerm, 0x0005},
		{regs.PhyCKSymTXCtrl, 0x8009},
		{regs.PhyVLevCtrl, 0x0210},
		{regs.PhyCKCalCtrl, 0x8000},
	}
	if prm.PixelClock > highRateClock {
		seq = append(seq, word{regs.PhyCKSymTXCtrl, 0x800b}, word{regs.PhyVLevCtrl, 0x0129})
	}
	for _, w := range seq {
		if err := phy.bus.Write(w.addr, w.data); err != nil {
			return fmt.Errorf("phy: %w", err)
		}
	}

	phy.power(true)
	phy.tmds(false)
	phy.tmds(true)
	phy.txPower(true)
	phy.pddq(false)

	for i := 0; ; i++ {
		if phy.p.Read(regs.PhyStat0)&regs.PhyStat0TXPhyLock != 0 {
			return nil
		}
		if i >= phy.LockPolls {
			return fmt.Errorf("phy: %w", ErrNotLocked)
		}
		phy.delay.Sleep(phy.LockInterval)
	}
}

// Init brings up the PHY. The configuration sequence is run twice. Failing to
// lock on the first pass is not an error.
func (phy *PHY) Init(prm Params) error {
	if err := prm.Validate(); err != nil {
		return fmt.Errorf("phy: %w", err)
	}

	logger.Logf(logger.Allow, "phy", "init: %s %d-bit csc=%v",
		clocks.Frequency(prm.PixelClock), prm.Depth, prm.CSC)

	phy.powered = true

	var err error
	for pass := 0; pass < 2; pass++ {
		phy.conf0(true, regs.PhyConf0SelDataEnPolShift, regs.PhyConf0SelDataEnPol)
		phy.conf0(false, regs.PhyConf0SelDIPIFShift, regs.PhyConf0SelDIPIF)
		phy.tmds(false)
		phy.power(false)

		err = phy.Configure(prm)
		if err != nil {
			if !errors.Is(err, ErrNotLocked) {
				return err
			}
			logger.Logf(logger.Allow, "phy", "pass %d: %v", pass, err)
		}
	}
	if err != nil {
		return err
	}

	phy.enabled = true
	return nil
}

// Disable turns off TMDS output and PHY power. It does nothing if Init() has
// not been called since the last Disable(). A PHY that failed to lock is still
// turned off.
func (phy *PHY) Disable() {
	if !phy.powered {
		return
	}
	phy.tmds(false)
	phy.power(false)
	phy.enabled = false
	phy.powered = false
	logger.Log(logger.Allow, "phy", "disabled")
}
