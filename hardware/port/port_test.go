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

package port_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/logger"
	"github.com/jetsetilly/hdmitx/test"
)

func TestMaskWrite(t *testing.T) {
	e := port.NewEmulated()
	e.Poke(regs.PhyConf0, 0xff)

	port.MaskWrite(e, regs.PhyConf0, 0, regs.PhyConf0ENTMDSShift, regs.PhyConf0ENTMDS)
	test.ExpectEquality(t, e.Peek(regs.PhyConf0), 0xbf)

	// bits outside the mask are ignored
	port.MaskWrite(e, regs.PhyConf0, 0xff, regs.PhyConf0ENTMDSShift, regs.PhyConf0ENTMDS)
	test.ExpectEquality(t, e.Peek(regs.PhyConf0), 0xff)

	port.Clear(e, regs.MCClkDis, 0x00)
	port.Set(e, regs.MCClkDis, regs.MCClkDisAll)
	port.Clear(e, regs.MCClkDis, regs.MCClkDisPixelClk)
	test.ExpectEquality(t, e.Peek(regs.MCClkDis), 0x7e)
}

func TestWriteOneToClear(t *testing.T) {
	e := port.NewEmulated()
	e.Poke(regs.IHPhyStat0, 0x3f)
	e.Write(regs.IHPhyStat0, regs.IHPhyStat0HPD)
	test.ExpectEquality(t, e.Peek(regs.IHPhyStat0), 0x3e)
}

func TestPhyBus(t *testing.T) {
	e := port.NewEmulated()

	e.Write(regs.PhyI2CMAddress, regs.PhyPLLCurrCtrl)
	e.Write(regs.PhyI2CMDataO1, 0x09)
	e.Write(regs.PhyI2CMDataO0, 0x1c)
	e.Write(regs.PhyI2CMOperation, regs.PhyI2CMOperationWrite)
	test.ExpectEquality(t, e.PhyReg(regs.PhyPLLCurrCtrl), 0x091c)
	test.ExpectEquality(t, e.Peek(regs.IHI2CMPhyStat0)&regs.IHI2CMPhyStat0Done, regs.IHI2CMPhyStat0Done)

	e.Write(regs.IHI2CMPhyStat0, 0xff)
	test.ExpectEquality(t, e.Peek(regs.IHI2CMPhyStat0), 0x00)

	e.Write(regs.PhyI2CMOperation, regs.PhyI2CMOperationRead)
	test.ExpectEquality(t, e.Read(regs.PhyI2CMDataI1), 0x09)
	test.ExpectEquality(t, e.Read(regs.PhyI2CMDataI0), 0x1c)
	test.ExpectEquality(t, e.PhyOperations(), 2)

	// a stalled bus never raises the done bit
	e.Write(regs.IHI2CMPhyStat0, 0xff)
	e.StallPhyBus = true
	e.Write(regs.PhyI2CMOperation, regs.PhyI2CMOperationWrite)
	test.ExpectEquality(t, e.Peek(regs.IHI2CMPhyStat0), 0x00)
}

func TestPhyLock(t *testing.T) {
	e := port.NewEmulated()
	test.ExpectEquality(t, e.Read(regs.PhyStat0)&regs.PhyStat0TXPhyLock, 0)

	e.Write(regs.PhyConf0, regs.PhyConf0PDZ|regs.PhyConf0ENTMDS|regs.PhyConf0Gen2TXPwrOn)
	test.ExpectEquality(t, e.Read(regs.PhyStat0)&regs.PhyStat0TXPhyLock, regs.PhyStat0TXPhyLock)

	// PDDQ set means no lock
	e.Write(regs.PhyConf0, regs.PhyConf0PDZ|regs.PhyConf0ENTMDS|regs.PhyConf0Gen2TXPwrOn|regs.PhyConf0Gen2PDDQ)
	test.ExpectEquality(t, e.Read(regs.PhyStat0)&regs.PhyStat0TXPhyLock, 0)

	e.Lock = port.LockForced
	test.ExpectEquality(t, e.Read(regs.PhyStat0)&regs.PhyStat0TXPhyLock, regs.PhyStat0TXPhyLock)
}

func TestPlugCable(t *testing.T) {
	e := port.NewEmulated()

	// polarity sense is for plug-in
	e.Poke(regs.PhyPol0, regs.PhyHPD)
	e.PlugCable(true)
	test.ExpectEquality(t, e.Peek(regs.IHPhyStat0), regs.IHPhyStat0HPD)
	test.ExpectEquality(t, e.Peek(regs.PhyStat0)&regs.PhyHPD, regs.PhyHPD)

	// unplugging with the same polarity sense does not interrupt
	e.Write(regs.IHPhyStat0, regs.IHPhyStat0HPD)
	e.PlugCable(false)
	test.ExpectEquality(t, e.Peek(regs.IHPhyStat0), 0x00)
}

func TestRecordedWrites(t *testing.T) {
	e := port.NewEmulated()
	e.Write(regs.FCInvidConf, 0x78)
	e.Write(regs.MCClkDis, 0x7f)
	e.Write(regs.FCInvidConf, 0x79)

	w := e.Writes()
	test.DemandEquality(t, len(w), 3)
	test.ExpectEquality(t, w[1], port.Access{Reg: regs.MCClkDis, Value: 0x7f})

	v := e.WritesTo(regs.FCInvidConf)
	test.DemandEquality(t, len(v), 2)
	test.ExpectEquality(t, v[1], 0x79)

	e.ClearWrites()
	test.ExpectEquality(t, len(e.Writes()), 0)
}

func TestRecordedWritesBounded(t *testing.T) {
	e := port.NewEmulated()
	for i := 0; i <= port.MaxWrites; i++ {
		e.Write(regs.FCInvidConf, uint8(i))
	}

	// the oldest half was discarded and the newest write is last
	half, last := port.MaxWrites/2, port.MaxWrites
	w := e.Writes()
	test.DemandEquality(t, len(w), half+1)
	test.ExpectEquality(t, w[0].Value, uint8(half))
	test.ExpectEquality(t, w[len(w)-1].Value, uint8(last))
	test.ExpectEquality(t, e.Peek(regs.FCInvidConf), uint8(last))
}

func TestTracer(t *testing.T) {
	logger.Clear()
	e := port.NewEmulated()
	tr := port.NewTracer(e)

	tr.Write(regs.MCSWRstz, 0xfd)
	_ = tr.Read(regs.MCSWRstz)

	tw := &test.CompareWriter{}
	logger.Write(tw)
	test.ExpectSuccess(t, strings.HasPrefix(tw.String(), "port: MC_SWRSTZ"))
	test.ExpectEquality(t, strings.Count(tw.String(), "\n"), 1)
	test.ExpectEquality(t, e.Peek(regs.MCSWRstz), 0xfd)
}

func TestEmulation(t *testing.T) {
	e := port.NewEmulated()

	v, ok := port.Emulation(e)
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, v == e)

	v, ok = port.Emulation(port.NewTracer(e))
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, v == e)

	_, ok = port.Emulation(&port.Mapped{})
	test.ExpectFailure(t, ok)
}
