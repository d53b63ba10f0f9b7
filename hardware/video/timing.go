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

// Package video converts a requested display timing into the frame composer
// register fields of the transmitter.
//
// The Timing type describes the timing as supplied by the display-timing
// source. Compose() derives the operating Mode from it and programs the
// frame composer. Note that the operating pixel clock is recomputed from the
// totals and the refresh rate. The clock supplied with the timing is used
// only for reporting.
package video

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/hdmitx/hardware/clocks"
)

// ErrInvalidTiming is returned when a Timing cannot be used for a bring-up.
var ErrInvalidTiming = errors.New("invalid timing")

// Timing is a display timing in the form used by framebuffer drivers. The
// margins are measured from the edge of the active region, so LeftMargin is
// the back porch and RightMargin is the front porch.
type Timing struct {
	Name string

	// refresh rate in Hz
	Refresh int

	XRes int
	YRes int

	// pixel clock in Hz as supplied by the source
	PixClock int

	LeftMargin  int
	RightMargin int
	UpperMargin int
	LowerMargin int
	HSyncLen    int
	VSyncLen    int

	HSyncHigh  bool
	VSyncHigh  bool
	Interlaced bool
	DoubleScan bool
}

func (t Timing) String() string {
	s := fmt.Sprintf("%dx%d%s@%d", t.XRes, t.YRes, t.scan(), t.Refresh)
	if t.PixClock > 0 {
		s = fmt.Sprintf("%s (%s)", s, clocks.Frequency(t.PixClock))
	}
	if t.Name != "" {
		s = fmt.Sprintf("%s %s", t.Name, s)
	}
	return s
}

func (t Timing) scan() string {
	if t.Interlaced {
		return "i"
	}
	return "p"
}

// HTotal returns the width of the active region plus the horizontal blanking.
func (t Timing) HTotal() int {
	return t.XRes + t.HBlank()
}

// VTotal returns the height of the active region plus the vertical blanking.
func (t Timing) VTotal() int {
	return t.YRes + t.VBlank()
}

// HBlank returns the width of the horizontal blanking region.
func (t Timing) HBlank() int {
	return t.LeftMargin + t.RightMargin + t.HSyncLen
}

// VBlank returns the height of the vertical blanking region.
func (t Timing) VBlank() int {
	return t.UpperMargin + t.LowerMargin + t.VSyncLen
}

// Validate returns an error if the timing cannot be composed. Nothing in the
// timing is checked against a list of known modes.
func (t Timing) Validate() error {
	if t.XRes <= 0 || t.YRes <= 0 {
		return fmt.Errorf("%w: active region %dx%d", ErrInvalidTiming, t.XRes, t.YRes)
	}
	if t.Refresh <= 0 {
		return fmt.Errorf("%w: refresh rate %d", ErrInvalidTiming, t.Refresh)
	}
	if t.LeftMargin < 0 || t.RightMargin < 0 || t.UpperMargin < 0 || t.LowerMargin < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalidTiming)
	}
	if t.HSyncLen <= 0 || t.VSyncLen <= 0 {
		return fmt.Errorf("%w: sync length %d/%d", ErrInvalidTiming, t.HSyncLen, t.VSyncLen)
	}

	// register widths of the frame composer
	if t.XRes > 0xffff || t.YRes > 0xffff || t.HBlank() > 0xffff || t.RightMargin > 0xffff || t.HSyncLen > 0xffff {
		return fmt.Errorf("%w: horizontal field too large", ErrInvalidTiming)
	}
	if t.VBlank() > 0xff || t.LowerMargin > 0xff || t.VSyncLen > 0xff {
		return fmt.Errorf("%w: vertical blanking field too large", ErrInvalidTiming)
	}

	return nil
}

// PixelClock returns the pixel clock recomputed from the totals and the
// refresh rate.
func (t Timing) PixelClock() int {
	return t.HTotal() * t.VTotal() * t.Refresh
}
