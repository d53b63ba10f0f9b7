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


package edid

import (
	"fmt"

	"github.com/jetsetilly/hdmitx/hardware/video"
)

// cea describes one CEA-861 timing. Vertical values of interlaced timings
// are per field.
type cea struct {
	vic   int
	wide  bool
	clock int // kHz
	hact  int
	hfp   int
	hsync int
	hbp   int
	vact  int
	vfp   int
	vsync int
	vbp   int
	rate  int
	flags int
}

const (
	pos   = 0x01
	inter = 0x02
)

// the CEA timings known to the transmitter, ordered by VIC
var ceaTimings = []cea{
	{vic: 1, clock: 25175, hact: 640, hfp: 16, hsync: 96, hbp: 48, vact: 480, vfp: 10, vsync: 2, vbp: 33, rate: 60},
	{vic: 2, clock: 27000, hact: 720, hfp: 16, hsync: 62, hbp: 60, vact: 480, vfp: 9, vsync: 6, vbp: 30, rate: 60},
	{vic: 3, wide: true, clock: 27000, hact: 720, hfp: 16, hsync: 62, hbp: 60, vact: 480, vfp: 9, vsync: 6, vbp: 30, rate: 60},
	{vic: 4, wide: true, clock: 74250, hact: 1280, hfp: 110, hsync: 40, hbp: 220, vact: 720, vfp: 5, vsync: 5, vbp: 20, rate: 60, flags: pos},
	{vic: 5, wide: true, clock: 74250, hact: 1920, hfp: 88, hsync: 44, hbp: 148, vact: 540, vfp: 2, vsync: 5, vbp: 15, rate: 60, flags: pos | inter},
	{vic: 6, clock: 27000, hact: 1440, hfp: 38, hsync: 124, hbp: 114, vact: 240, vfp: 4, vsync: 3, vbp: 15, rate: 60, flags: inter},
	{vic: 7, wide: true, clock: 27000, hact: 1440, hfp: 38, hsync: 124, hbp: 114, vact: 240, vfp: 4, vsync: 3, vbp: 15, rate: 60, flags: inter},
	{vic: 16, wide: true, clock: 148500, hact: 1920, hfp: 88, hsync: 44, hbp: 148, vact: 1080, vfp: 4, vsync: 5, vbp: 36, rate: 60, flags: pos},
	{vic: 17, clock: 27000, hact: 720, hfp: 12, hsync: 64, hbp: 68, vact: 576, vfp: 5, vsync: 5, vbp: 39, rate: 50},
	{vic: 18, wide: true, clock: 27000, hact: 720, hfp: 12, hsync: 64, hbp: 68, vact: 576, vfp: 5, vsync: 5, vbp: 39, rate: 50},
	{vic: 19, wide: true, clock: 74250, hact: 1280, hfp: 440, hsync: 40, hbp: 220, vact: 720, vfp: 5, vsync: 5, vbp: 20, rate: 50, flags: pos},
	{vic: 20, wide: true, clock: 74250, hact: 1920, hfp: 528, hsync: 44, hbp: 148, vact: 540, vfp: 2, vsync: 5, vbp: 15, rate: 50, flags: pos | inter},
	{vic: 21, clock: 27000, hact: 1440, hfp: 24, hsync: 126, hbp: 138, vact: 288, vfp: 2, vsync: 3, vbp: 19, rate: 50, flags: inter},
	{vic: 22, wide: true, clock: 27000, hact: 1440, hfp: 24, hsync: 126, hbp: 138, vact: 288, vfp: 2, vsync: 3, vbp: 19, rate: 50, flags: inter},
	{vic: 31, wide: true, clock: 148500, hact: 1920, hfp: 528, hsync: 44, hbp: 148, vact: 1080, vfp: 4, vsync: 5, vbp: 36, rate: 50, flags: pos},
	{vic: 32, wide: true, clock: 74250, hact: 1920, hfp: 638, hsync: 44, hbp: 148, vact: 1080, vfp: 4, vsync: 5, vbp: 36, rate: 24, flags: pos},
	{vic: 33, wide: true, clock: 74250, hact: 1920, hfp: 528, hsync: 44, hbp: 148, vact: 1080, vfp: 4, vsync: 5, vbp: 36, rate: 25, flags: pos},
	{vic: 34, wide: true, clock: 74250, hact: 1920, hfp: 88, hsync: 44, hbp: 148, vact: 1080, vfp: 4, vsync: 5, vbp: 36, rate: 30, flags: pos},
	{vic: 39, wide: true, clock: 72000, hact: 1920, hfp: 32, hsync: 168, hbp: 184, vact: 540, vfp: 23, vsync: 5, vbp: 57, rate: 50, flags: pos | inter},
}

func (c cea) timing() video.Timing {
	t := video.Timing{
		Name:        fmt.Sprintf("CEA-%d", c.vic),
		Refresh:     c.rate,
		PixClock:    c.clock * 1000,
		XRes:        c.hact,
		RightMargin: c.hfp,
		HSyncLen:    c.hsync,
		LeftMargin:  c.hbp,
		YRes:        c.vact,
		LowerMargin: c.vfp,
		VSyncLen:    c.vsync,
		UpperMargin: c.vbp,
		HSyncHigh:   c.flags&pos != 0,
		VSyncHigh:   c.flags&pos != 0,
		Interlaced:  c.flags&inter != 0,
	}

	// VIC 39 has a negative vertical sync
	if c.vic == 39 {
		t.VSyncHigh = false
	}

	if t.Interlaced {
		t.YRes *= 2
	}
	return t
}

// VIC returns the timing for a CEA VIC. The bool is false if the VIC is not
// known.
func VIC(vic int) (video.Timing, bool) {
	for _, c := range ceaTimings {
		if c.vic == vic {
			return c.timing(), true
		}
	}
	return video.Timing{}, false
}

// IsWide returns true if the VIC has a 16:9 picture aspect ratio.
func IsWide(vic int) bool {
	for _, c := range ceaTimings {
		if c.vic == vic {
			return c.wide
		}
	}
	return false
}

// LookupVIC returns the VIC of the timing or zero if the timing is not a CEA
// timing. Where two VICs differ only in aspect ratio the lower is returned.
// The refresh rate may differ by one to allow for 59.94Hz timings.
func LookupVIC(t video.Timing) int {
	for _, c := range ceaTimings {
		ct := c.timing()
		if ct.XRes != t.XRes || ct.YRes != t.YRes || ct.Interlaced != t.Interlaced {
			continue
		}
		if ct.HTotal() != t.HTotal() || ct.VTotal() != t.VTotal() {
			continue
		}
		if ct.HSyncLen != t.HSyncLen || ct.RightMargin != t.RightMargin {
			continue
		}
		if d := ct.Refresh - t.Refresh; d < -1 || d > 1 {
			continue
		}
		return c.vic
	}
	return 0
}
