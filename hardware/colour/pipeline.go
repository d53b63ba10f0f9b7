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

package colour

import (
	"fmt"

	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/logger"
)

// Path is the route taken by pixel data out of the video packetizer.
type Path int

// List of valid Path values.
const (
	PathPixelRepeater Path = iota
	PathPacketizer
	PathYCC422
	PathBypass
)

func (p Path) String() string {
	switch p {
	case PathPixelRepeater:
		return "pixel repeater"
	case PathPacketizer:
		return "packetizer"
	case PathYCC422:
		return "YCC422"
	case PathBypass:
		return "bypass"
	}
	return fmt.Sprintf("Path(%d)", int(p))
}

// Packetizing is the packetizer set up derived from a Config.
type Packetizing struct {
	ColorDepth     uint8
	Remap          uint8
	OutputSelector uint8
	Repeater       bool
}

// Path returns the single route implied by the packetizer set up.
func (pk Packetizing) Path() Path {
	if pk.Repeater {
		return PathPixelRepeater
	}
	switch pk.OutputSelector {
	case regs.VPConfOutputSelectorYCC422:
		return PathYCC422
	case regs.VPConfOutputSelectorBypass:
		return PathBypass
	}
	return PathPacketizer
}

func packetizing(cfg Config) (Packetizing, error) {
	pk := Packetizing{
		Remap:          regs.VPRemapYCC422Size16,
		OutputSelector: regs.VPConfOutputSelectorPP,
		Repeater:       cfg.PixelRepetition > 1,
	}

	switch cfg.Out {
	case RGB, YCbCr444, XVYCC444:
		switch cfg.Depth {
		case 8:
			pk.ColorDepth = 4
			pk.OutputSelector = regs.VPConfOutputSelectorBypass
		case 10:
			pk.ColorDepth = 5
		case 12:
			pk.ColorDepth = 6
		case 16:
			pk.ColorDepth = 7
		default:
			return pk, fmt.Errorf("%w: %d-bit %s output", ErrUnsupportedDepth, cfg.Depth, cfg.Out)
		}
	case YCbCr422:
		switch cfg.Depth {
		case 8:
			pk.Remap = regs.VPRemapYCC422Size16
		case 10:
			pk.Remap = regs.VPRemapYCC422Size20
		case 12:
			pk.Remap = regs.VPRemapYCC422Size24
		default:
			return pk, fmt.Errorf("%w: %d-bit %s output", ErrUnsupportedDepth, cfg.Depth, cfg.Out)
		}
		pk.OutputSelector = regs.VPConfOutputSelectorYCC422
	default:
		return pk, fmt.Errorf("%w: %s output", ErrUnsupportedFormat, cfg.Out)
	}

	return pk, nil
}

// Packetize programs the video packetizer.
func Packetize(p port.Port, cfg Config) (Packetizing, error) {
	pk, err := packetizing(cfg)
	if err != nil {
		return pk, fmt.Errorf("packetizer: %w", err)
	}

	v := (pk.ColorDepth << regs.VPPRCDColorDepthShift) & regs.VPPRCDColorDepthMask
	v |= uint8(cfg.PixelRepetition) & regs.VPPRCDDesiredPRMask
	p.Write(regs.VPPRCD, v)

	port.Set(p, regs.VPStuff, regs.VPStuffPRStuffingMode)

	if pk.Repeater {
		port.MaskWrite(p, regs.VPConf, regs.VPConfPREn, 0, regs.VPConfPREn|regs.VPConfBypassSelectPacketizer)
	} else {
		port.MaskWrite(p, regs.VPConf, regs.VPConfBypassSelectPacketizer, 0, regs.VPConfPREn|regs.VPConfBypassSelectPacketizer)
	}

	port.Set(p, regs.VPStuff, regs.VPStuffIDefaultPhase)
	p.Write(regs.VPRemap, pk.Remap)

	var enable uint8
	switch pk.OutputSelector {
	case regs.VPConfOutputSelectorPP:
		enable = regs.VPConfPPEn
	case regs.VPConfOutputSelectorYCC422:
		enable = regs.VPConfYCC422En
	case regs.VPConfOutputSelectorBypass:
		enable = regs.VPConfBypassEn
	}
	port.MaskWrite(p, regs.VPConf, enable, 0, regs.VPConfBypassEn|regs.VPConfPPEn|regs.VPConfYCC422En)

	port.Set(p, regs.VPStuff, regs.VPStuffPPStuffingMode|regs.VPStuffYCC422StuffingMode)
	port.MaskWrite(p, regs.VPConf, pk.OutputSelector, 0, regs.VPConfOutputSelectorMask)

	return pk, nil
}

var cscDepths = map[int]uint8{
	8:  regs.CSCScaleColorDepth24,
	10: regs.CSCScaleColorDepth30,
	12: regs.CSCScaleColorDepth36,
	16: regs.CSCScaleColorDepth48,
}

// CSC programs the colour space converter and returns the matrix written.
func CSC(p port.Port, cfg Config) (Coefficients, error) {
	depth, ok := cscDepths[cfg.Depth]
	if !ok {
		return Coefficients{}, fmt.Errorf("csc: %w: %d-bit", ErrUnsupportedDepth, cfg.Depth)
	}

	var mode uint8
	if cfg.IsInterpolation() {
		mode = regs.CSCCfgIntModeChromaFormula1
	} else if cfg.IsDecimation() {
		mode = regs.CSCCfgDecModeChromaFormula3
	}
	p.Write(regs.CSCCfg, mode)
	port.MaskWrite(p, regs.CSCScale, depth, 0, regs.CSCScaleColorDepthMask)

	coeffs := SelectCoefficients(cfg)
	for row := range coeffs.Matrix {
		for col, c := range coeffs.Matrix[row] {
			msb := regs.CSCCoef(row, col)
			p.Write(msb+1, uint8(c))
			p.Write(msb, uint8(c>>8))
		}
	}
	port.MaskWrite(p, regs.CSCScale, coeffs.Scale, 0, regs.CSCScaleMask)

	return coeffs, nil
}

// Sample programs the video sampler with the input mapping and zeroes the
// data driven while data enable is inactive.
func Sample(p port.Port, cfg Config) error {
	m, err := DataMap(cfg.In, cfg.Depth)
	if err != nil {
		return fmt.Errorf("sampler: %w", err)
	}

	p.Write(regs.TXInvid0, regs.TXInvid0InternalDEGenDisable|(m&regs.TXInvid0VideoMappingMask))
	p.Write(regs.TXInstuffing, regs.TXInstuffingStuffing)
	for _, r := range []uint16{
		regs.TXGYData0, regs.TXGYData1,
		regs.TXRCRData0, regs.TXRCRData1,
		regs.TXBCBData0, regs.TXBCBData1,
	} {
		p.Write(r, 0x00)
	}

	return nil
}

// Configure validates the configuration and then programs the packetizer,
// the colour space converter and the sampler in that order. Nothing is
// written if the configuration is invalid.
func Configure(p port.Port, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("colour: %w", err)
	}

	pk, err := Packetize(p, cfg)
	if err != nil {
		return fmt.Errorf("colour: %w", err)
	}
	coeffs, err := CSC(p, cfg)
	if err != nil {
		return fmt.Errorf("colour: %w", err)
	}
	if err := Sample(p, cfg); err != nil {
		return fmt.Errorf("colour: %w", err)
	}

	logger.Logf(logger.Allow, "colour", "%s via %s (%s)", cfg, pk.Path(), coeffs.Name)

	return nil
}
