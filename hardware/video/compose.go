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

package video

import (
	"fmt"

	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/logger"
)

// Mode is the operating mode derived from a Timing for one bring-up.
type Mode struct {
	VIC int
	DVI bool

	HSyncHigh      bool
	VSyncHigh      bool
	DataEnableHigh bool
	Interlaced     bool

	// pixel clock recomputed from the timing
	PixelClock int

	PixelRepetitionInput  int
	PixelRepetitionOutput int

	HDCP bool
}

// VICs that are interlaced and need pixel repetition. These force the
// pixel repetition output factor to one and the R/V blank polarity high.
var repetitionVICs = map[int]bool{
	10: true, 11: true, 12: true, 13: true, 14: true, 15: true,
	25: true, 26: true, 27: true, 28: true, 29: true, 30: true,
	35: true, 36: true, 37: true, 38: true,
}

// vicBlankHigh is 1920x1080i50 with 1250 total lines, which needs the R/V
// blank polarity high without pixel repetition.
const vicBlankHigh = 39

// IsRepetitionVIC returns true if the VIC is in the set of interlaced modes
// needing pixel repetition.
func IsRepetitionVIC(vic int) bool {
	return repetitionVICs[vic]
}

// Options for Compose().
type Options struct {
	VIC  int
	HDCP bool

	// DVI is forced when VIC is zero
	DVI bool
}

// NewMode derives the operating mode from the timing. It does not touch the
// hardware.
func NewMode(t Timing, opts Options) (Mode, error) {
	if err := t.Validate(); err != nil {
		return Mode{}, err
	}

	m := Mode{
		VIC:            opts.VIC,
		DVI:            opts.DVI || opts.VIC == 0,
		HSyncHigh:      t.HSyncHigh,
		VSyncHigh:      t.VSyncHigh,
		DataEnableHigh: true,
		Interlaced:     t.Interlaced,
		PixelClock:     t.PixelClock(),
		HDCP:           opts.HDCP,
	}

	if m.PixelClock <= 0 {
		return Mode{}, fmt.Errorf("%w: pixel clock %d", ErrInvalidTiming, m.PixelClock)
	}

	if IsRepetitionVIC(m.VIC) {
		m.PixelRepetitionOutput = 1
	}

	return m, nil
}

// InvidConf returns the value of FC_INVIDCONF for the mode.
func (m Mode) InvidConf() uint8 {
	var v uint8
	if m.HDCP {
		v |= regs.FCInvidConfHDCPKeepout
	}
	if m.VSyncHigh {
		v |= regs.FCInvidConfVSyncInPolHigh
	}
	if m.HSyncHigh {
		v |= regs.FCInvidConfHSyncInPolHigh
	}
	if m.DataEnableHigh {
		v |= regs.FCInvidConfDEInPolHigh
	}
	if m.Interlaced || m.VIC == vicBlankHigh || IsRepetitionVIC(m.VIC) {
		v |= regs.FCInvidConfRVBlankInOSCHigh
	}
	if m.Interlaced {
		v |= regs.FCInvidConfInIProgInterlaced
	}
	if !m.DVI {
		v |= regs.FCInvidConfDVIModeHDMI
	}
	return v
}

// Compose derives the operating mode from the timing and programs the frame
// composer with it. The timing is validated before any register is written.
func Compose(p port.Port, t Timing, opts Options) (Mode, error) {
	m, err := NewMode(t, opts)
	if err != nil {
		return Mode{}, fmt.Errorf("composer: %w", err)
	}

	logger.Logf(logger.Allow, "composer", "%s: pixel clock %d", t, m.PixelClock)

	p.Write(regs.FCInvidConf, m.InvidConf())

	writePair(p, regs.FCInHActv1, regs.FCInHActv0, t.XRes)
	writePair(p, regs.FCInVActv1, regs.FCInVActv0, t.YRes)
	writePair(p, regs.FCInHBlank1, regs.FCInHBlank0, t.HBlank())
	p.Write(regs.FCInVBlank, uint8(t.VBlank()))
	writePair(p, regs.FCHSyncInDelay1, regs.FCHSyncInDelay0, t.RightMargin)
	p.Write(regs.FCVSyncInDelay, uint8(t.LowerMargin))
	writePair(p, regs.FCHSyncInWidth1, regs.FCHSyncInWidth0, t.HSyncLen)
	p.Write(regs.FCVSyncInWidth, uint8(t.VSyncLen))

	return m, nil
}

// writes the high byte then the low byte of a value.
func writePair(p port.Port, hi uint16, lo uint16, v int) {
	p.Write(hi, uint8(v>>8))
	p.Write(lo, uint8(v))
}
