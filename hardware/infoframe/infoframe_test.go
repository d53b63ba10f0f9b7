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

package infoframe_test

import (
	"testing"

	"github.com/jetsetilly/hdmitx/hardware/colour"
	"github.com/jetsetilly/hdmitx/hardware/infoframe"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/test"
)

func TestBuildRGB(t *testing.T) {
	avi := infoframe.Build(infoframe.Params{Out: colour.RGB, Colorimetry: colour.ITU709, VIC: 16})
	test.ExpectEquality(t, avi.Conf0, 0x40)
	test.ExpectEquality(t, avi.Conf1, 0x19)
	test.ExpectEquality(t, avi.Conf2, 0x00)
	test.ExpectEquality(t, avi.VID, 16)

	// incoming repetition is written plus one
	test.ExpectEquality(t, avi.PRConf, 0x10)
}

func TestBuildColorimetry(t *testing.T) {
	avi := infoframe.Build(infoframe.Params{Out: colour.YCbCr444, Colorimetry: colour.ITU601})
	test.ExpectEquality(t, avi.Conf0&0x03, regs.FCAVIConf0PixFmtYCbCr444)
	test.ExpectEquality(t, avi.Conf1&0xc0, regs.FCAVIConf1ColorimetrySMPTE)

	avi = infoframe.Build(infoframe.Params{Out: colour.YCbCr422, Colorimetry: colour.ITU709, Aspect: infoframe.Aspect16x9})
	test.ExpectEquality(t, avi.Conf0&0x03, regs.FCAVIConf0PixFmtYCbCr422)
	test.ExpectEquality(t, avi.Conf1, regs.FCAVIConf1ColorimetryITUR|regs.FCAVIConf1CodedAspect169|regs.FCAVIConf1ActiveAspect169)

	avi = infoframe.Build(infoframe.Params{Out: colour.XVYCC444, Colorimetry: colour.ITU709})
	test.ExpectEquality(t, avi.Conf1&0xc0, regs.FCAVIConf1ColorimetryExt)
	test.ExpectEquality(t, avi.Conf2, regs.FCAVIConf2ExtColorimetryXVYCC709)
}

func TestBuildRepetition(t *testing.T) {
	avi := infoframe.Build(infoframe.Params{VIC: 6, PixelRepetitionInput: 1, PixelRepetitionOutput: 1, Underscan: true})
	test.ExpectEquality(t, avi.PRConf, 0x21)
	test.ExpectEquality(t, avi.Conf0&regs.FCAVIConf0ScanInfoUnder, regs.FCAVIConf0ScanInfoUnder)
}

func TestWrite(t *testing.T) {
	e := port.NewEmulated()
	for _, r := range []uint16{regs.FCAVIETB0, regs.FCAVISRB1} {
		e.Poke(r, 0xff)
	}

	avi := infoframe.Build(infoframe.Params{Out: colour.RGB, VIC: 4})
	infoframe.Write(e, avi)
	test.ExpectEquality(t, e.Peek(regs.FCAVIConf0), avi.Conf0)
	test.ExpectEquality(t, e.Peek(regs.FCAVIVID), 4)
	test.ExpectEquality(t, e.Peek(regs.FCPRConf), avi.PRConf)
	test.ExpectEquality(t, e.Peek(regs.FCAVIETB0), 0)
	test.ExpectEquality(t, e.Peek(regs.FCAVISRB1), 0)
}
