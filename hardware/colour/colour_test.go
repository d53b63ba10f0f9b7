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

package colour_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/hdmitx/hardware/colour"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/test"
)

var formats = []colour.Format{colour.RGB, colour.YCbCr444, colour.YCbCr422, colour.XVYCC444}

func TestDataMap(t *testing.T) {
	m, err := colour.DataMap(colour.RGB, 8)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, 0x01)

	m, err = colour.DataMap(colour.YCbCr444, 16)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, 0x0f)

	m, err = colour.DataMap(colour.YCbCr422, 12)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, 0x12)

	// no fallback code for unsupported pairs
	_, err = colour.DataMap(colour.YCbCr422, 16)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, colour.ErrUnsupportedDepth))

	_, err = colour.DataMap(colour.RGB, 6)
	test.ExpectFailure(t, err)

	_, err = colour.DataMap(colour.XVYCC444, 8)
	test.ExpectSuccess(t, errors.Is(err, colour.ErrUnsupportedFormat))

	// every code fits the five bit mapping field
	for _, f := range formats {
		for _, d := range []int{8, 10, 12, 16} {
			if m, err := colour.DataMap(f, d); err == nil {
				test.ExpectEquality(t, m&^0x1f, 0, f, d)
			}
		}
	}
}

func TestDecimationInterpolation(t *testing.T) {
	for _, in := range formats {
		for _, out := range formats {
			cfg := colour.Config{In: in, Out: out, Depth: 8}
			test.ExpectSuccess(t, !(cfg.IsDecimation() && cfg.IsInterpolation()), cfg)
			if !cfg.IsConversion() {
				test.ExpectSuccess(t, !cfg.IsDecimation() && !cfg.IsInterpolation(), cfg)
			}
		}
	}

	cfg := colour.Config{In: colour.RGB, Out: colour.YCbCr422, Depth: 8}
	test.ExpectSuccess(t, cfg.IsDecimation())
	cfg = colour.Config{In: colour.YCbCr422, Out: colour.YCbCr444, Depth: 8}
	test.ExpectSuccess(t, cfg.IsInterpolation())
}

func TestSelectCoefficients(t *testing.T) {
	test.ExpectEquality(t, colour.SelectCoefficients(colour.Config{In: colour.RGB, Out: colour.RGB}).Name, colour.Identity.Name)

	c := colour.SelectCoefficients(colour.Config{In: colour.YCbCr444, Out: colour.RGB, Colorimetry: colour.ITU601})
	test.ExpectEquality(t, c.Name, colour.Inverse601.Name)
	c = colour.SelectCoefficients(colour.Config{In: colour.YCbCr444, Out: colour.RGB, Colorimetry: colour.ITU709})
	test.ExpectEquality(t, c.Name, colour.Inverse709.Name)
	c = colour.SelectCoefficients(colour.Config{In: colour.RGB, Out: colour.YCbCr422, Colorimetry: colour.ITU601})
	test.ExpectEquality(t, c.Name, colour.Forward601.Name)
	c = colour.SelectCoefficients(colour.Config{In: colour.RGB, Out: colour.YCbCr444, Colorimetry: colour.ITU709})
	test.ExpectEquality(t, c.Name, colour.Forward709.Name)
	test.ExpectEquality(t, c.Scale, 0)

	// neither side is RGB
	c = colour.SelectCoefficients(colour.Config{In: colour.YCbCr444, Out: colour.YCbCr422})
	test.ExpectEquality(t, c.Name, colour.Identity.Name)
	test.ExpectEquality(t, c.Scale, 1)

	// the four matrices are distinct
	all := []colour.Coefficients{colour.Inverse601, colour.Inverse709, colour.Forward601, colour.Forward709, colour.Identity}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			test.ExpectInequality(t, all[i].Matrix, all[j].Matrix, all[i].Name, all[j].Name)
		}
	}
}

func TestColorimetryForVIC(t *testing.T) {
	test.ExpectEquality(t, colour.ColorimetryForVIC(2), colour.ITU601)
	test.ExpectEquality(t, colour.ColorimetryForVIC(21), colour.ITU601)
	test.ExpectEquality(t, colour.ColorimetryForVIC(16), colour.ITU709)
	test.ExpectEquality(t, colour.ColorimetryForVIC(0), colour.ITU709)
}

func TestParseFormat(t *testing.T) {
	f, err := colour.ParseFormat("ycbcr422")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, f, colour.YCbCr422)
	_, err = colour.ParseFormat("cmyk")
	test.ExpectFailure(t, err)
}

func TestConfigureRGB8(t *testing.T) {
	e := port.NewEmulated()
	cfg := colour.Config{In: colour.RGB, Out: colour.RGB, Depth: 8, Colorimetry: colour.ITU709}
	test.DemandSuccess(t, colour.Configure(e, cfg))

	// bypass the packetizer at 8-bit
	test.ExpectEquality(t, e.Peek(regs.VPPRCD), 0x40)
	test.ExpectEquality(t, e.Peek(regs.VPConf),
		regs.VPConfBypassEn|regs.VPConfBypassSelectPacketizer|regs.VPConfOutputSelectorBypass)
	test.ExpectEquality(t, e.Peek(regs.VPStuff),
		regs.VPStuffIDefaultPhase|regs.VPStuffYCC422StuffingMode|regs.VPStuffPPStuffingMode|regs.VPStuffPRStuffingMode)
	test.ExpectEquality(t, e.Peek(regs.VPRemap), regs.VPRemapYCC422Size16)

	// identity matrix
	test.ExpectEquality(t, e.Peek(regs.CSCCfg), 0x00)
	test.ExpectEquality(t, e.Peek(regs.CSCScale), 0x01)
	test.ExpectEquality(t, e.Peek(regs.CSCCoef(0, 0)), 0x20)
	test.ExpectEquality(t, e.Peek(regs.CSCCoef(1, 1)), 0x20)
	test.ExpectEquality(t, e.Peek(regs.CSCCoef(2, 2)), 0x20)
	test.ExpectEquality(t, e.Peek(regs.CSCCoef(0, 1)), 0x00)

	test.ExpectEquality(t, e.Peek(regs.TXInvid0), 0x01)
	test.ExpectEquality(t, e.Peek(regs.TXInstuffing), 0x07)
}

func TestConfigureDecimation(t *testing.T) {
	e := port.NewEmulated()
	cfg := colour.Config{In: colour.RGB, Out: colour.YCbCr422, Depth: 10, Colorimetry: colour.ITU601}
	test.DemandSuccess(t, colour.Configure(e, cfg))

	test.ExpectEquality(t, e.Peek(regs.VPRemap), regs.VPRemapYCC422Size20)
	test.ExpectEquality(t, e.Peek(regs.VPConf)&regs.VPConfOutputSelectorMask, regs.VPConfOutputSelectorYCC422)
	test.ExpectEquality(t, e.Peek(regs.VPConf)&regs.VPConfYCC422En, regs.VPConfYCC422En)
	test.ExpectEquality(t, e.Peek(regs.CSCCfg), regs.CSCCfgDecModeChromaFormula3)
	test.ExpectEquality(t, e.Peek(regs.CSCScale), regs.CSCScaleColorDepth30)

	// forward 601: A1 is 0x2591, written LSB first
	test.ExpectEquality(t, e.Peek(regs.CSCCoef(0, 0)), 0x25)
	test.ExpectEquality(t, e.Peek(regs.CSCCoef(0, 0)+1), 0x91)
	w := e.WritesTo(regs.CSCCoef(0, 0) + 1)
	test.ExpectEquality(t, len(w), 1)
}

func TestConfigurePixelRepeater(t *testing.T) {
	e := port.NewEmulated()
	cfg := colour.Config{In: colour.RGB, Out: colour.RGB, Depth: 12, PixelRepetition: 2}
	pk, err := colour.Packetize(e, cfg)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pk.Path(), colour.PathPixelRepeater)
	test.ExpectEquality(t, e.Peek(regs.VPPRCD), 0x62)
	test.ExpectEquality(t, e.Peek(regs.VPConf)&regs.VPConfPREn, regs.VPConfPREn)
	test.ExpectEquality(t, e.Peek(regs.VPConf)&regs.VPConfBypassSelectPacketizer, 0)
	test.ExpectEquality(t, e.Peek(regs.VPConf)&regs.VPConfPPEn, regs.VPConfPPEn)

	cfg.PixelRepetition = 0
	pk, err = colour.Packetize(e, cfg)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pk.Path(), colour.PathPacketizer)
}

func TestConfigureInvalid(t *testing.T) {
	e := port.NewEmulated()

	err := colour.Configure(e, colour.Config{In: colour.YCbCr422, Out: colour.YCbCr422, Depth: 16})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, colour.ErrUnsupportedDepth))

	err = colour.Configure(e, colour.Config{In: colour.RGB, Out: colour.YCbCr444, Depth: 8, DVI: true})
	test.ExpectSuccess(t, errors.Is(err, colour.ErrInvalidConfig))

	// nothing written
	test.ExpectEquality(t, len(e.Writes()), 0)
}
