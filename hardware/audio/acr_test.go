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

package audio_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/hdmitx/hardware/audio"
	"github.com/jetsetilly/hdmitx/hardware/clocks"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/test"
)

func TestComputeN(t *testing.T) {
	test.ExpectEquality(t, audio.ComputeN(32000, clocks.TMDS25M17, 150), 9152)
	test.ExpectEquality(t, audio.ComputeN(32000, clocks.TMDS25M17, 100), 4576)
	test.ExpectEquality(t, audio.ComputeN(48000, clocks.TMDS74M25, 100), 6144)
	test.ExpectEquality(t, audio.ComputeN(44100, clocks.TMDS74M25, 100), 6272)
	test.ExpectEquality(t, audio.ComputeN(44100, clocks.TMDS148M35, 150), 17836)
	test.ExpectEquality(t, audio.ComputeN(48000, clocks.TMDS148M35, 100), 5824)

	// multiples of the base rates
	test.ExpectEquality(t, audio.ComputeN(96000, clocks.TMDS74M25, 100), 12288)
	test.ExpectEquality(t, audio.ComputeN(192000, clocks.TMDS74M25, 100), 24576)
	test.ExpectEquality(t, audio.ComputeN(88200, clocks.TMDS25M17, 100), 14014)
	test.ExpectEquality(t, audio.ComputeN(176400, clocks.TMDS74M25, 100), 25088)

	// rates not in the table
	test.ExpectEquality(t, audio.ComputeN(22050, clocks.TMDS74M25, 100), 2822)
}

func TestComputeCTS(t *testing.T) {
	test.ExpectEquality(t, audio.ComputeCTS(48000, clocks.TMDS74M25, 100), 74250)
	test.ExpectEquality(t, audio.ComputeCTS(44100, clocks.TMDS27M, 100), 30000)
	test.ExpectEquality(t, audio.ComputeCTS(48000, 12345678, 100), 0)
	test.ExpectEquality(t, audio.ComputeCTS(32000, clocks.TMDS297M, 100), 222750)
	test.ExpectEquality(t, audio.ComputeCTS(32000, clocks.TMDS148M5, 100), 148500)
	test.ExpectEquality(t, audio.ComputeCTS(192000, clocks.TMDS297M, 100), 247500)
	test.ExpectEquality(t, audio.ComputeCTS(176400, clocks.TMDS148M5, 100), 165000)

	// the /1.001 clocks have no CTS
	test.ExpectEquality(t, audio.ComputeCTS(48000, clocks.TMDS74M17, 100), 0)

	// ratio scaling
	test.ExpectEquality(t, audio.ComputeCTS(48000, clocks.TMDS74M25, 150), 111375)
}

func TestUpdate(t *testing.T) {
	e := port.NewEmulated()
	e.Poke(regs.AudCTS3, 0xff)

	r := audio.NewRegenerator(e)
	_, ok := r.Current()
	test.ExpectSuccess(t, !ok)

	prm, err := r.Update(48000, clocks.TMDS74M25, 100)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, prm.N, 6144)
	test.ExpectEquality(t, prm.CTS, 74250)

	test.ExpectEquality(t, e.Peek(regs.AudN1), 0x00)
	test.ExpectEquality(t, e.Peek(regs.AudN2), 0x18)
	test.ExpectEquality(t, e.Peek(regs.AudN3), 0x00)
	test.ExpectEquality(t, e.Peek(regs.AudCTS1), 0x0a)
	test.ExpectEquality(t, e.Peek(regs.AudCTS2), 0x22)
	test.ExpectEquality(t, e.Peek(regs.AudCTS3), 0x11)

	// the manual bit is cleared before CTS is written and set by the last write
	w := e.WritesTo(regs.AudCTS3)
	test.DemandEquality(t, len(w), 3)
	test.ExpectEquality(t, w[0]&regs.AudCTS3NShiftMask, 0)
	test.ExpectEquality(t, w[1]&regs.AudCTS3CTSManual, 0)
	test.ExpectEquality(t, w[2]&regs.AudCTS3CTSManual, regs.AudCTS3CTSManual)

	cur, ok := r.Current()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, cur, prm)
}

func TestUpdateUnsupported(t *testing.T) {
	e := port.NewEmulated()
	r := audio.NewRegenerator(e)

	prm, err := r.Update(48000, 65000000, 100)
	test.ExpectSuccess(t, errors.Is(err, audio.ErrUnsupportedClock))
	test.ExpectEquality(t, prm.CTS, 0)
	test.ExpectEquality(t, len(e.Writes()), 0)
}

func TestUpdateForgetsPrevious(t *testing.T) {
	e := port.NewEmulated()
	r := audio.NewRegenerator(e)

	_, err := r.Update(48000, clocks.TMDS148M5, 100)
	test.DemandSuccess(t, err)
	_, ok := r.Current()
	test.ExpectSuccess(t, ok)

	_, err = r.Update(48000, 27027000, 100)
	test.ExpectSuccess(t, errors.Is(err, audio.ErrUnsupportedClock))
	prm, ok := r.Current()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prm.CTS, 0)

	_, err = r.Update(48000, clocks.TMDS74M25, 100)
	test.DemandSuccess(t, err)
	r.Invalidate()
	_, ok = r.Current()
	test.ExpectFailure(t, ok)
}

func TestEnableClock(t *testing.T) {
	e := port.NewEmulated()
	e.Poke(regs.MCClkDis, regs.MCClkDisAll)
	audio.EnableClock(e)
	test.ExpectEquality(t, e.Peek(regs.MCClkDis), regs.MCClkDisAll&^regs.MCClkDisAudio)
}

func TestIsSupportedRate(t *testing.T) {
	test.ExpectSuccess(t, audio.IsSupportedRate(44100))
	test.ExpectSuccess(t, !audio.IsSupportedRate(22050))
}
