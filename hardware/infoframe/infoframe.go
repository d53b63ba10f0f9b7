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

// Package infoframe builds the AVI InfoFrame sent by the frame composer to
// HDMI sinks. DVI sinks do not receive InfoFrames.
package infoframe

import (
	"fmt"

	"github.com/jetsetilly/hdmitx/hardware/colour"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/logger"
)

// Aspect ratio of the picture.
type Aspect int

// List of valid Aspect values.
const (
	Aspect4x3 Aspect = iota
	Aspect16x9
)

func (a Aspect) String() string {
	if a == Aspect16x9 {
		return "16:9"
	}
	return "4:3"
}

// Params are the inputs to Build().
type Params struct {
	Out         colour.Format
	Colorimetry colour.Colorimetry
	Aspect      Aspect
	Underscan   bool
	VIC         int

	PixelRepetitionInput  int
	PixelRepetitionOutput int
}

// AVI is the content of the AVI InfoFrame registers.
type AVI struct {
	Conf0  uint8
	Conf1  uint8
	Conf2  uint8
	Conf3  uint8
	VID    uint8
	PRConf uint8
}

func (avi AVI) String() string {
	return fmt.Sprintf("conf=%02x %02x %02x %02x vic=%d pr=%02x",
		avi.Conf0, avi.Conf1, avi.Conf2, avi.Conf3, avi.VID, avi.PRConf)
}

// Build the AVI InfoFrame from the parameters.
func Build(prm Params) AVI {
	var avi AVI

	switch prm.Out {
	case colour.YCbCr444:
		avi.Conf0 = regs.FCAVIConf0PixFmtYCbCr444
	case colour.YCbCr422:
		avi.Conf0 = regs.FCAVIConf0PixFmtYCbCr422
	default:
		avi.Conf0 = regs.FCAVIConf0PixFmtRGB
	}
	if prm.Underscan {
		avi.Conf0 |= regs.FCAVIConf0ScanInfoUnder
	} else {
		avi.Conf0 |= regs.FCAVIConf0ScanInfoNoData
	}
	avi.Conf0 |= regs.FCAVIConf0ActiveFmtPresent

	if prm.Aspect == Aspect16x9 {
		avi.Conf1 = regs.FCAVIConf1CodedAspect169 | regs.FCAVIConf1ActiveAspect169
	} else {
		avi.Conf1 = regs.FCAVIConf1CodedAspect43 | regs.FCAVIConf1ActiveAspect43
	}

	ext := regs.FCAVIConf2ExtColorimetryXVYCC601
	switch prm.Out {
	case colour.XVYCC444:
		avi.Conf1 |= regs.FCAVIConf1ColorimetryExt
		if prm.Colorimetry == colour.ITU709 {
			ext = regs.FCAVIConf2ExtColorimetryXVYCC709
		}
	case colour.RGB:
		avi.Conf1 |= regs.FCAVIConf1ColorimetryNoData
	default:
		if prm.Colorimetry == colour.ITU601 {
			avi.Conf1 |= regs.FCAVIConf1ColorimetrySMPTE
		} else {
			avi.Conf1 |= regs.FCAVIConf1ColorimetryITUR
		}
	}

	avi.Conf2 = regs.FCAVIConf2ITContentNoData | ext | regs.FCAVIConf2RGBQuantDefault | regs.FCAVIConf2ScalingNone
	avi.Conf3 = regs.FCAVIConf3ITContentGraphics | regs.FCAVIConf3QuantRangeLimited
	avi.VID = uint8(prm.VIC)

	avi.PRConf = (uint8(prm.PixelRepetitionInput+1) << regs.FCPRConfIncomingShift) & regs.FCPRConfIncomingMask
	avi.PRConf |= uint8(prm.PixelRepetitionOutput) & regs.FCPRConfOutputMask

	return avi
}

// bar data is not sent
var barData = []uint16{
	regs.FCAVIETB0, regs.FCAVIETB1,
	regs.FCAVISBB0, regs.FCAVISBB1,
	regs.FCAVIELB0, regs.FCAVIELB1,
	regs.FCAVISRB0, regs.FCAVISRB1,
}

// Write the AVI InfoFrame to the frame composer.
func Write(p port.Port, avi AVI) {
	p.Write(regs.FCAVIConf0, avi.Conf0)
	p.Write(regs.FCAVIConf1, avi.Conf1)
	p.Write(regs.FCAVIConf2, avi.Conf2)
	p.Write(regs.FCAVIVID, avi.VID)
	p.Write(regs.FCPRConf, avi.PRConf)
	p.Write(regs.FCAVIConf3, avi.Conf3)
	for _, r := range barData {
		p.Write(r, 0x00)
	}
	logger.Logf(logger.Allow, "infoframe", "AVI %s", avi)
}
